package models

import (
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/property"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BuildingModel is the persistence model for the Building aggregate.
type BuildingModel struct {
	AggregateModel
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:varchar(500);not null"`
	Note    string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BuildingModel) TableName() string {
	return "buildings"
}

// ToDomain converts the persistence model to a domain Building
func (m *BuildingModel) ToDomain() *property.Building {
	return &property.Building{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Address:           m.Address,
		Note:              m.Note,
	}
}

// FromDomain populates the persistence model from a domain Building
func (m *BuildingModel) FromDomain(b *property.Building) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.Name = b.Name
	m.Address = b.Address
	m.Note = b.Note
}

// BuildingModelFromDomain creates a persistence model from a domain Building
func BuildingModelFromDomain(b *property.Building) *BuildingModel {
	m := &BuildingModel{}
	m.FromDomain(b)
	return m
}

// RoomModel is the persistence model for the Room aggregate.
type RoomModel struct {
	AggregateModel
	BuildingID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Name       string              `gorm:"type:varchar(100);not null"`
	Price      valueobject.Money   `gorm:"type:numeric(18,0);not null"`
	Status     property.RoomStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE';index"`
	Area       float64             `gorm:"type:numeric(10,2)"`
	Note       string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts the persistence model to a domain Room
func (m *RoomModel) ToDomain() *property.Room {
	return &property.Room{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BuildingID:        m.BuildingID,
		Name:              m.Name,
		Price:             m.Price,
		Status:            m.Status,
		Area:              m.Area,
		Note:              m.Note,
	}
}

// FromDomain populates the persistence model from a domain Room
func (m *RoomModel) FromDomain(r *property.Room) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.BuildingID = r.BuildingID
	m.Name = r.Name
	m.Price = r.Price
	m.Status = r.Status
	m.Area = r.Area
	m.Note = r.Note
}

// RoomModelFromDomain creates a persistence model from a domain Room
func RoomModelFromDomain(r *property.Room) *RoomModel {
	m := &RoomModel{}
	m.FromDomain(r)
	return m
}
