package property

import (
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// RoomStatus represents the occupancy status of a room
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "AVAILABLE"
	RoomStatusRented      RoomStatus = "RENTED"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
)

// IsValid checks if the status is a valid RoomStatus
func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusRented, RoomStatusMaintenance:
		return true
	}
	return false
}

// String returns the string representation of RoomStatus
func (s RoomStatus) String() string {
	return string(s)
}

// Room represents a rentable room aggregate root.
// BuildingID is immutable after creation.
type Room struct {
	shared.BaseAggregateRoot
	BuildingID uuid.UUID         `json:"building_id"`
	Name       string            `json:"name"`
	Price      valueobject.Money `json:"price"`
	Status     RoomStatus        `json:"status"`
	Area       float64           `json:"area"`
	Note       string            `json:"note"`
}

// NewRoom creates a new room in the given building
func NewRoom(buildingID uuid.UUID, name string, price valueobject.Money) (*Room, error) {
	if buildingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUILDING", "Building ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ROOM_NAME", "Room name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_ROOM_NAME", "Room name cannot exceed 100 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ROOM_PRICE", "Room price cannot be negative")
	}

	r := &Room{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuildingID:        buildingID,
		Name:              name,
		Price:             price,
		Status:            RoomStatusAvailable,
	}
	r.AddDomainEvent(NewRoomCreatedEvent(r))
	return r, nil
}

// Update changes the room's mutable attributes. The owning building is fixed.
func (r *Room) Update(name string, price valueobject.Money, area float64, note string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_ROOM_NAME", "Room name cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_ROOM_PRICE", "Room price cannot be negative")
	}

	r.Name = name
	r.Price = price
	r.Area = area
	r.Note = note
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// MarkRented transitions the room to RENTED when a contract activates
func (r *Room) MarkRented() error {
	if r.Status == RoomStatusRented {
		return shared.NewDomainError("INVALID_STATE", "Room is already rented")
	}
	if r.Status == RoomStatusMaintenance {
		return shared.NewDomainError("INVALID_STATE", "Room under maintenance cannot be rented")
	}
	r.Status = RoomStatusRented
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.AddDomainEvent(NewRoomStatusChangedEvent(r))
	return nil
}

// MarkAvailable transitions the room back to AVAILABLE
func (r *Room) MarkAvailable() {
	if r.Status == RoomStatusAvailable {
		return
	}
	r.Status = RoomStatusAvailable
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.AddDomainEvent(NewRoomStatusChangedEvent(r))
}

// MarkMaintenance takes the room out of the rentable pool
func (r *Room) MarkMaintenance() error {
	if r.Status == RoomStatusRented {
		return shared.NewDomainError("INVALID_STATE", "Rented room cannot be moved to maintenance")
	}
	r.Status = RoomStatusMaintenance
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.AddDomainEvent(NewRoomStatusChangedEvent(r))
	return nil
}

// IsAvailable returns true if the room can accept a new contract
func (r *Room) IsAvailable() bool {
	return r.Status == RoomStatusAvailable
}
