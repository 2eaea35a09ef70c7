package property

import (
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
)

// Building represents a rental building aggregate root.
// A building owns its rooms; rooms reference it by ID.
type Building struct {
	shared.BaseAggregateRoot
	Name    string `json:"name"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

// NewBuilding creates a new building
func NewBuilding(name, address string) (*Building, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_BUILDING_NAME", "Building name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_BUILDING_NAME", "Building name cannot exceed 200 characters")
	}
	if address == "" {
		return nil, shared.NewDomainError("INVALID_BUILDING_ADDRESS", "Building address cannot be empty")
	}

	b := &Building{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
	}
	b.AddDomainEvent(NewBuildingCreatedEvent(b))
	return b, nil
}

// Update changes the building's mutable attributes
func (b *Building) Update(name, address, note string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_BUILDING_NAME", "Building name cannot be empty")
	}
	if address == "" {
		return shared.NewDomainError("INVALID_BUILDING_ADDRESS", "Building address cannot be empty")
	}

	b.Name = name
	b.Address = address
	b.Note = note
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}
