package leasing

import (
	"context"
	"testing"
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/leasing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/property"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockContractRepository is a mock implementation of ContractRepository
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

// MockTenantRepository is a mock implementation of TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByPhone(ctx context.Context, phone string) (*leasing.Tenant, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*leasing.Tenant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]leasing.Tenant, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]leasing.Tenant), args.Get(1).(int64), args.Error(2)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *leasing.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
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

// fakeLeasingUnitOfWork runs the callback against the given repositories
// without a real database transaction
type fakeLeasingUnitOfWork struct {
	bundle fakeLeasingBundle
}

type fakeLeasingBundle struct {
	contracts leasing.ContractRepository
	rooms     property.RoomRepository
}

func (b fakeLeasingBundle) Contracts() leasing.ContractRepository { return b.contracts }
func (b fakeLeasingBundle) Rooms() property.RoomRepository        { return b.rooms }

func (u *fakeLeasingUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos leasing.RepositoryBundle) error) error {
	return fn(ctx, u.bundle)
}

func newContractFixture() (*ContractService, *MockContractRepository, *MockTenantRepository, *MockRoomRepository) {
	contractRepo := new(MockContractRepository)
	tenantRepo := new(MockTenantRepository)
	roomRepo := new(MockRoomRepository)
	uow := &fakeLeasingUnitOfWork{bundle: fakeLeasingBundle{contracts: contractRepo, rooms: roomRepo}}
	return NewContractService(uow, contractRepo, tenantRepo, roomRepo, nil), contractRepo, tenantRepo, roomRepo
}

func newTestRoom(t *testing.T) *property.Room {
	room, err := property.NewRoom(uuid.New(), "P101", valueobject.NewMoneyVNDFromInt(3000000))
	require.NoError(t, err)
	return room
}

func newTestTenant(t *testing.T) *leasing.Tenant {
	tenant, err := leasing.NewTenant("Nguyen Van A", "0901234567")
	require.NoError(t, err)
	return tenant
}

func TestContractService_Create(t *testing.T) {
	svc, contractRepo, tenantRepo, roomRepo := newContractFixture()

	room := newTestRoom(t)
	tenant := newTestTenant(t)

	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
	contractRepo.On("ExistsActiveForRoom", mock.Anything, room.ID).Return(false, nil)
	contractRepo.On("Save", mock.Anything, mock.AnythingOfType("*leasing.Contract")).Return(nil)
	roomRepo.On("SaveWithLock", mock.Anything, room).Return(nil)

	resp, err := svc.Create(context.Background(), CreateContractRequest{
		RoomID:    room.ID,
		TenantID:  tenant.ID,
		StartDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Price:     decimal.NewFromInt(3000000),
	})

	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.Equal(t, property.RoomStatusRented, room.Status)
	contractRepo.AssertExpectations(t)
	roomRepo.AssertExpectations(t)
}

func TestContractService_Create_RoomAlreadyRented(t *testing.T) {
	svc, contractRepo, tenantRepo, roomRepo := newContractFixture()

	room := newTestRoom(t)
	tenant := newTestTenant(t)

	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
	contractRepo.On("ExistsActiveForRoom", mock.Anything, room.ID).Return(true, nil)

	_, err := svc.Create(context.Background(), CreateContractRequest{
		RoomID:    room.ID,
		TenantID:  tenant.ID,
		StartDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Price:     decimal.NewFromInt(3000000),
	})

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "CONFLICT", derr.Code)
	contractRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestContractService_Create_RoomNotFound(t *testing.T) {
	svc, _, _, roomRepo := newContractFixture()

	roomID := uuid.New()
	roomRepo.On("FindByID", mock.Anything, roomID).Return(nil, shared.ErrNotFound)

	_, err := svc.Create(context.Background(), CreateContractRequest{
		RoomID:    roomID,
		TenantID:  uuid.New(),
		StartDate: time.Now(),
		Price:     decimal.NewFromInt(3000000),
	})

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_ROOM", derr.Code)
}

func TestContractService_Create_RoomSaveFailurePropagates(t *testing.T) {
	svc, contractRepo, tenantRepo, roomRepo := newContractFixture()

	room := newTestRoom(t)
	tenant := newTestTenant(t)

	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
	contractRepo.On("ExistsActiveForRoom", mock.Anything, room.ID).Return(false, nil)
	contractRepo.On("Save", mock.Anything, mock.AnythingOfType("*leasing.Contract")).Return(nil)
	roomRepo.On("SaveWithLock", mock.Anything, room).Return(shared.ErrConcurrencyConflict)

	// the room write failing inside the unit of work fails the whole
	// signing, so the contract insert rolls back with it
	_, err := svc.Create(context.Background(), CreateContractRequest{
		RoomID:    room.ID,
		TenantID:  tenant.ID,
		StartDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Price:     decimal.NewFromInt(3000000),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestContractService_Terminate(t *testing.T) {
	svc, contractRepo, _, roomRepo := newContractFixture()

	room := newTestRoom(t)
	require.NoError(t, room.MarkRented())

	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	contract, err := leasing.NewContract(room.ID, uuid.New(), start, nil,
		valueobject.NewMoneyVNDFromInt(3000000), valueobject.ZeroVND())
	require.NoError(t, err)

	contractRepo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	contractRepo.On("SaveWithLock", mock.Anything, contract).Return(nil)
	roomRepo.On("SaveWithLock", mock.Anything, room).Return(nil)

	resp, err := svc.Terminate(context.Background(), contract.ID, TerminateContractRequest{
		TerminatedAt: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Equal(t, property.RoomStatusAvailable, room.Status)
}

func TestTenantService_Create_DuplicatePhone(t *testing.T) {
	contractRepo := new(MockContractRepository)
	tenantRepo := new(MockTenantRepository)
	svc := NewTenantService(tenantRepo, contractRepo, nil)

	existing := newTestTenant(t)
	tenantRepo.On("FindByPhone", mock.Anything, "0901234567").Return(existing, nil)

	_, err := svc.Create(context.Background(), CreateTenantRequest{
		FullName: "Tran Thi B",
		Phone:    "0901234567",
	})

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_EXISTS", derr.Code)
}

func TestTenantService_Delete_WithContracts(t *testing.T) {
	contractRepo := new(MockContractRepository)
	tenantRepo := new(MockTenantRepository)
	svc := NewTenantService(tenantRepo, contractRepo, nil)

	tenant := newTestTenant(t)
	tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
	contractRepo.On("FindByTenant", mock.Anything, tenant.ID).Return([]leasing.Contract{{}}, nil)

	err := svc.Delete(context.Background(), tenant.ID)
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "CONFLICT", derr.Code)
}
