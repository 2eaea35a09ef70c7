package leasing

import (
	"context"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/property"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// ContractFilter narrows contract queries
type ContractFilter struct {
	shared.Filter
	RoomID   *uuid.UUID
	TenantID *uuid.UUID
	IsActive *bool
}

// TenantRepository persists Tenant aggregates
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByPhone(ctx context.Context, phone string) (*Tenant, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, int64, error)
	Save(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContractRepository persists Contract aggregates
type ContractRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	FindActiveByRoom(ctx context.Context, roomID uuid.UUID) (*Contract, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]Contract, error)
	FindAll(ctx context.Context, filter ContractFilter) ([]Contract, int64, error)
	Save(ctx context.Context, contract *Contract) error
	SaveWithLock(ctx context.Context, contract *Contract) error
	ExistsActiveForRoom(ctx context.Context, roomID uuid.UUID) (bool, error)
}

// UnitOfWork runs fn atomically. The contract write and the room status
// write of a signing or termination share one database transaction.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos RepositoryBundle) error) error
}

// RepositoryBundle exposes the leasing repositories bound to one transaction
type RepositoryBundle interface {
	Contracts() ContractRepository
	Rooms() property.RoomRepository
}
