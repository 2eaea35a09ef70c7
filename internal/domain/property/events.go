package property

import (
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
)

// Event types for the property context
const (
	EventTypeBuildingCreated   = "property.building.created"
	EventTypeRoomCreated       = "property.room.created"
	EventTypeRoomStatusChanged = "property.room.status_changed"
)

// BuildingCreatedEvent is raised when a building is created
type BuildingCreatedEvent struct {
	shared.BaseDomainEvent
	Name    string `json:"name"`
	Address string `json:"address"`
}

// NewBuildingCreatedEvent creates a BuildingCreatedEvent
func NewBuildingCreatedEvent(b *Building) *BuildingCreatedEvent {
	return &BuildingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBuildingCreated, "Building", b.ID),
		Name:            b.Name,
		Address:         b.Address,
	}
}

// RoomCreatedEvent is raised when a room is created
type RoomCreatedEvent struct {
	shared.BaseDomainEvent
	BuildingID string `json:"building_id"`
	Name       string `json:"name"`
}

// NewRoomCreatedEvent creates a RoomCreatedEvent
func NewRoomCreatedEvent(r *Room) *RoomCreatedEvent {
	return &RoomCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomCreated, "Room", r.ID),
		BuildingID:      r.BuildingID.String(),
		Name:            r.Name,
	}
}

// RoomStatusChangedEvent is raised when a room changes occupancy status
type RoomStatusChangedEvent struct {
	shared.BaseDomainEvent
	Status RoomStatus `json:"status"`
}

// NewRoomStatusChangedEvent creates a RoomStatusChangedEvent
func NewRoomStatusChangedEvent(r *Room) *RoomStatusChangedEvent {
	return &RoomStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomStatusChanged, "Room", r.ID),
		Status:          r.Status,
	}
}
