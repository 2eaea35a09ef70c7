package persistence

import (
	"context"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/leasing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/property"
	"gorm.io/gorm"
)

// GormUnitOfWork implements billing.UnitOfWork over a GORM transaction.
// Repositories handed to fn all share the transaction, so a failed invoice
// write rolls back the reading and payment writes with it.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside a database transaction
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos billing.RepositoryBundle) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &gormRepositoryBundle{tx: tx})
	})
}

type gormRepositoryBundle struct {
	tx *gorm.DB
}

func (b *gormRepositoryBundle) Readings() billing.ReadingRepository {
	return NewGormReadingRepository(b.tx)
}

func (b *gormRepositoryBundle) Invoices() billing.InvoiceRepository {
	return NewGormInvoiceRepository(b.tx)
}

func (b *gormRepositoryBundle) Transactions() billing.TransactionRepository {
	return NewGormTransactionRepository(b.tx)
}

// Ensure GormUnitOfWork implements UnitOfWork
var _ billing.UnitOfWork = (*GormUnitOfWork)(nil)

// GormLeasingUnitOfWork implements leasing.UnitOfWork over a GORM
// transaction, so a contract write and its room status write commit or
// roll back together.
type GormLeasingUnitOfWork struct {
	db *gorm.DB
}

// NewGormLeasingUnitOfWork creates a new GormLeasingUnitOfWork
func NewGormLeasingUnitOfWork(db *gorm.DB) *GormLeasingUnitOfWork {
	return &GormLeasingUnitOfWork{db: db}
}

// Execute runs fn inside a database transaction
func (u *GormLeasingUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos leasing.RepositoryBundle) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &gormLeasingBundle{tx: tx})
	})
}

type gormLeasingBundle struct {
	tx *gorm.DB
}

func (b *gormLeasingBundle) Contracts() leasing.ContractRepository {
	return NewGormContractRepository(b.tx)
}

func (b *gormLeasingBundle) Rooms() property.RoomRepository {
	return NewGormRoomRepository(b.tx)
}

// Ensure GormLeasingUnitOfWork implements UnitOfWork
var _ leasing.UnitOfWork = (*GormLeasingUnitOfWork)(nil)
