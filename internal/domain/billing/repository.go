package billing

import (
	"context"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ReadingFilter narrows meter reading queries
type ReadingFilter struct {
	shared.Filter
	RoomID    *uuid.UUID
	ServiceID *uuid.UUID
	Month     *valueobject.BillingMonth
	IsBilled  *bool
}

// InvoiceFilter narrows invoice queries
type InvoiceFilter struct {
	shared.Filter
	ContractID *uuid.UUID
	RoomID     *uuid.UUID
	TenantID   *uuid.UUID
	Month      *valueobject.BillingMonth
	Status     *InvoiceStatus
}

// ServiceRepository persists UtilityService aggregates
type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UtilityService, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]UtilityService, int64, error)
	FindEnabled(ctx context.Context) ([]UtilityService, error)
	Save(ctx context.Context, service *UtilityService) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReadingRepository persists MeterReading aggregates
type ReadingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MeterReading, error)
	FindAll(ctx context.Context, filter ReadingFilter) ([]MeterReading, int64, error)
	// FindUnbilledForUpdate locks the unbilled readings of a room and month
	// so concurrent invoice generation cannot bill them twice. Must run
	// inside a unit of work.
	FindUnbilledForUpdate(ctx context.Context, roomID uuid.UUID, month valueobject.BillingMonth) ([]MeterReading, error)
	FindLatestIndex(ctx context.Context, roomID, serviceID uuid.UUID) (*MeterReading, error)
	ExistsForMonth(ctx context.Context, roomID, serviceID uuid.UUID, month valueobject.BillingMonth) (bool, error)
	Save(ctx context.Context, reading *MeterReading) error
	SaveWithLock(ctx context.Context, reading *MeterReading) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvoiceRepository persists Invoice aggregates. NextCode draws from a
// database sequence, so codes are unique even across concurrent generation.
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByCode(ctx context.Context, code int64) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, int64, error)
	ExistsForContractMonth(ctx context.Context, contractID uuid.UUID, month valueobject.BillingMonth) (bool, error)
	NextCode(ctx context.Context) (int64, error)
	Save(ctx context.Context, invoice *Invoice) error
	SaveWithLock(ctx context.Context, invoice *Invoice) error
}

// TransactionRepository persists PaymentTransaction records
type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentTransaction, error)
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]PaymentTransaction, error)
	FindByExternalRef(ctx context.Context, ref string) (*PaymentTransaction, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PaymentTransaction, int64, error)
	// FindUnmatched returns bank transfers waiting for manual reconciliation
	FindUnmatched(ctx context.Context) ([]PaymentTransaction, error)
	Save(ctx context.Context, tx *PaymentTransaction) error
	Update(ctx context.Context, tx *PaymentTransaction) error
}

// UnitOfWork runs fn atomically. Repositories obtained from the UnitOfWork
// inside fn share one database transaction; fn returning an error rolls
// everything back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos RepositoryBundle) error) error
}

// RepositoryBundle exposes the billing repositories bound to one transaction
type RepositoryBundle interface {
	Readings() ReadingRepository
	Invoices() InvoiceRepository
	Transactions() TransactionRepository
}
