package property

import (
	"context"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// RoomFilter narrows room queries
type RoomFilter struct {
	shared.Filter
	BuildingID *uuid.UUID
	Status     *RoomStatus
}

// BuildingRepository persists Building aggregates
type BuildingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Building, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Building, int64, error)
	Save(ctx context.Context, building *Building) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoomRepository persists Room aggregates
type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)
	FindAll(ctx context.Context, filter RoomFilter) ([]Room, int64, error)
	FindByBuilding(ctx context.Context, buildingID uuid.UUID) ([]Room, error)
	Save(ctx context.Context, room *Room) error
	SaveWithLock(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByBuilding(ctx context.Context, buildingID uuid.UUID) (int64, error)
}
