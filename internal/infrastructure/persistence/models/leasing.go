package models

import (
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/leasing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// TenantModel is the persistence model for the Tenant aggregate.
type TenantModel struct {
	AggregateModel
	FullName string     `gorm:"type:varchar(200);not null"`
	Phone    string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	Email    string     `gorm:"type:varchar(200)"`
	IDNumber string     `gorm:"type:varchar(20)"`
	UserID   *uuid.UUID `gorm:"type:uuid;index"`
	Note     string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant
func (m *TenantModel) ToDomain() *leasing.Tenant {
	return &leasing.Tenant{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FullName:          m.FullName,
		Phone:             m.Phone,
		Email:             m.Email,
		IDNumber:          m.IDNumber,
		UserID:            m.UserID,
		Note:              m.Note,
	}
}

// FromDomain populates the persistence model from a domain Tenant
func (m *TenantModel) FromDomain(t *leasing.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.FullName = t.FullName
	m.Phone = t.Phone
	m.Email = t.Email
	m.IDNumber = t.IDNumber
	m.UserID = t.UserID
	m.Note = t.Note
}

// TenantModelFromDomain creates a persistence model from a domain Tenant
func TenantModelFromDomain(t *leasing.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// ContractModel is the persistence model for the Contract aggregate.
// A partial unique index on (room_id) WHERE is_active guards the one
// active contract per room invariant at the database level.
type ContractModel struct {
	AggregateModel
	RoomID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	TenantID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	StartDate    time.Time         `gorm:"not null"`
	EndDate      *time.Time        ``
	Price        valueobject.Money `gorm:"type:numeric(18,0);not null"`
	PaidDeposit  valueobject.Money `gorm:"type:numeric(18,0);not null;default:0"`
	IsActive     bool              `gorm:"not null;default:true;index"`
	TerminatedAt *time.Time        ``
	Note         string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the persistence model to a domain Contract
func (m *ContractModel) ToDomain() *leasing.Contract {
	return &leasing.Contract{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		RoomID:            m.RoomID,
		TenantID:          m.TenantID,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Price:             m.Price,
		PaidDeposit:       m.PaidDeposit,
		IsActive:          m.IsActive,
		TerminatedAt:      m.TerminatedAt,
		Note:              m.Note,
	}
}

// FromDomain populates the persistence model from a domain Contract
func (m *ContractModel) FromDomain(c *leasing.Contract) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.RoomID = c.RoomID
	m.TenantID = c.TenantID
	m.StartDate = c.StartDate
	m.EndDate = c.EndDate
	m.Price = c.Price
	m.PaidDeposit = c.PaidDeposit
	m.IsActive = c.IsActive
	m.TerminatedAt = c.TerminatedAt
	m.Note = c.Note
}

// ContractModelFromDomain creates a persistence model from a domain Contract
func ContractModelFromDomain(c *leasing.Contract) *ContractModel {
	m := &ContractModel{}
	m.FromDomain(c)
	return m
}
