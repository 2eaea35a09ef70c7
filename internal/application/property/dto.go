package property

import (
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/property"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBuildingRequest represents a request to create a building
type CreateBuildingRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address" binding:"required,min=1,max=500"`
	Note    string `json:"note" binding:"max=2000"`
}

// UpdateBuildingRequest represents a request to update a building
type UpdateBuildingRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address" binding:"required,min=1,max=500"`
	Note    string `json:"note" binding:"max=2000"`
}

// BuildingResponse represents a building in API responses
type BuildingResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Note      string    `json:"note"`
	RoomCount int64     `json:"room_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// CreateRoomRequest represents a request to create a room
type CreateRoomRequest struct {
	BuildingID uuid.UUID       `json:"building_id" binding:"required"`
	Name       string          `json:"name" binding:"required,min=1,max=100"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Area       float64         `json:"area"`
	Note       string          `json:"note" binding:"max=2000"`
}

// UpdateRoomRequest represents a request to update a room
type UpdateRoomRequest struct {
	Name  string          `json:"name" binding:"required,min=1,max=100"`
	Price decimal.Decimal `json:"price" binding:"required"`
	Area  float64         `json:"area"`
	Note  string          `json:"note" binding:"max=2000"`
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	ID         uuid.UUID       `json:"id"`
	BuildingID uuid.UUID       `json:"building_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Status     string          `json:"status"`
	Area       float64         `json:"area"`
	Note       string          `json:"note"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// ToBuildingResponse converts a domain building
func ToBuildingResponse(b *property.Building, roomCount int64) *BuildingResponse {
	return &BuildingResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Note:      b.Note,
		RoomCount: roomCount,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		Version:   b.Version,
	}
}

// ToRoomResponse converts a domain room
func ToRoomResponse(r *property.Room) *RoomResponse {
	return &RoomResponse{
		ID:         r.ID,
		BuildingID: r.BuildingID,
		Name:       r.Name,
		Price:      r.Price.Amount(),
		Status:     r.Status.String(),
		Area:       r.Area,
		Note:       r.Note,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		Version:    r.Version,
	}
}
