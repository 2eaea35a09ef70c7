package billing

import (
	"context"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/leasing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/property"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockServiceRepository is a mock implementation of billing.ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.UtilityService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.UtilityService), args.Error(1)
}

func (m *MockServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.UtilityService, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.UtilityService), args.Get(1).(int64), args.Error(2)
}

func (m *MockServiceRepository) FindEnabled(ctx context.Context) ([]billing.UtilityService, error) {
	args := m.Called(ctx)
	return args.Get(0).([]billing.UtilityService), args.Error(1)
}

func (m *MockServiceRepository) Save(ctx context.Context, service *billing.UtilityService) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReadingRepository is a mock implementation of billing.ReadingRepository
type MockReadingRepository struct {
	mock.Mock
}

func (m *MockReadingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MeterReading, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MeterReading), args.Error(1)
}

func (m *MockReadingRepository) FindAll(ctx context.Context, filter billing.ReadingFilter) ([]billing.MeterReading, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.MeterReading), args.Get(1).(int64), args.Error(2)
}

func (m *MockReadingRepository) FindUnbilledForUpdate(ctx context.Context, roomID uuid.UUID, month valueobject.BillingMonth) ([]billing.MeterReading, error) {
	args := m.Called(ctx, roomID, month)
	return args.Get(0).([]billing.MeterReading), args.Error(1)
}

func (m *MockReadingRepository) FindLatestIndex(ctx context.Context, roomID, serviceID uuid.UUID) (*billing.MeterReading, error) {
	args := m.Called(ctx, roomID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MeterReading), args.Error(1)
}

func (m *MockReadingRepository) ExistsForMonth(ctx context.Context, roomID, serviceID uuid.UUID, month valueobject.BillingMonth) (bool, error) {
	args := m.Called(ctx, roomID, serviceID, month)
	return args.Bool(0), args.Error(1)
}

func (m *MockReadingRepository) Save(ctx context.Context, reading *billing.MeterReading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *MockReadingRepository) SaveWithLock(ctx context.Context, reading *billing.MeterReading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *MockReadingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCode(ctx context.Context, code int64) (*billing.Invoice, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) ExistsForContractMonth(ctx context.Context, contractID uuid.UUID, month valueobject.BillingMonth) (bool, error) {
	args := m.Called(ctx, contractID, month)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) NextCode(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of billing.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.PaymentTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PaymentTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]billing.PaymentTransaction, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]billing.PaymentTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByExternalRef(ctx context.Context, ref string) (*billing.PaymentTransaction, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PaymentTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.PaymentTransaction, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.PaymentTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) FindUnmatched(ctx context.Context) ([]billing.PaymentTransaction, error) {
	args := m.Called(ctx)
	return args.Get(0).([]billing.PaymentTransaction), args.Error(1)
}

func (m *MockTransactionRepository) Save(ctx context.Context, tx *billing.PaymentTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *billing.PaymentTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockContractRepository is a mock implementation of leasing.ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Contract), args.Error(1)
}

func (m *MockContractRepository) FindActiveByRoom(ctx context.Context, roomID uuid.UUID) (*leasing.Contract, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]leasing.Contract, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]leasing.Contract), args.Error(1)
}

func (m *MockContractRepository) FindAll(ctx context.Context, filter leasing.ContractFilter) ([]leasing.Contract, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]leasing.Contract), args.Get(1).(int64), args.Error(2)
}

func (m *MockContractRepository) Save(ctx context.Context, contract *leasing.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) SaveWithLock(ctx context.Context, contract *leasing.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) ExistsActiveForRoom(ctx context.Context, roomID uuid.UUID) (bool, error) {
	args := m.Called(ctx, roomID)
	return args.Bool(0), args.Error(1)
}

// MockRoomRepository is a mock implementation of property.RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Room), args.Error(1)
}

func (m *MockRoomRepository) FindAll(ctx context.Context, filter property.RoomFilter) ([]property.Room, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]property.Room), args.Get(1).(int64), args.Error(2)
}

func (m *MockRoomRepository) FindByBuilding(ctx context.Context, buildingID uuid.UUID) ([]property.Room, error) {
	args := m.Called(ctx, buildingID)
	return args.Get(0).([]property.Room), args.Error(1)
}

func (m *MockRoomRepository) Save(ctx context.Context, room *property.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) SaveWithLock(ctx context.Context, room *property.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) CountByBuilding(ctx context.Context, buildingID uuid.UUID) (int64, error) {
	args := m.Called(ctx, buildingID)
	return args.Get(0).(int64), args.Error(1)
}

// fakeUnitOfWork runs the callback against the given repositories without a
// real database transaction
type fakeUnitOfWork struct {
	bundle fakeBundle
}

type fakeBundle struct {
	readings     billing.ReadingRepository
	invoices     billing.InvoiceRepository
	transactions billing.TransactionRepository
}

func (b fakeBundle) Readings() billing.ReadingRepository         { return b.readings }
func (b fakeBundle) Invoices() billing.InvoiceRepository         { return b.invoices }
func (b fakeBundle) Transactions() billing.TransactionRepository { return b.transactions }

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos billing.RepositoryBundle) error) error {
	return fn(ctx, u.bundle)
}
