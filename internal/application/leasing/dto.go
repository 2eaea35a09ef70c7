package leasing

import (
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/leasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTenantRequest represents a request to register a tenant
type CreateTenantRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Phone    string `json:"phone" binding:"required,min=8,max=20"`
	Email    string `json:"email" binding:"omitempty,email"`
	IDNumber string `json:"id_number" binding:"max=20"`
	Note     string `json:"note" binding:"max=2000"`
}

// UpdateTenantRequest represents a request to update a tenant
type UpdateTenantRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Phone    string `json:"phone" binding:"required,min=8,max=20"`
	Email    string `json:"email" binding:"omitempty,email"`
	IDNumber string `json:"id_number" binding:"max=20"`
	Note     string `json:"note" binding:"max=2000"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID        uuid.UUID  `json:"id"`
	FullName  string     `json:"full_name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	IDNumber  string     `json:"id_number"`
	UserID    *uuid.UUID `json:"user_id"`
	Note      string     `json:"note"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Version   int        `json:"version"`
}

// CreateContractRequest represents a request to sign a contract
type CreateContractRequest struct {
	RoomID      uuid.UUID       `json:"room_id" binding:"required"`
	TenantID    uuid.UUID       `json:"tenant_id" binding:"required"`
	StartDate   time.Time       `json:"start_date" binding:"required"`
	EndDate     *time.Time      `json:"end_date"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	PaidDeposit decimal.Decimal `json:"paid_deposit"`
	Note        string          `json:"note" binding:"max=2000"`
}

// UpdateContractRequest represents a request to change contract terms
type UpdateContractRequest struct {
	Price       decimal.Decimal `json:"price" binding:"required"`
	PaidDeposit decimal.Decimal `json:"paid_deposit"`
	EndDate     *time.Time      `json:"end_date"`
	Note        string          `json:"note" binding:"max=2000"`
}

// TerminateContractRequest represents a request to end a contract
type TerminateContractRequest struct {
	TerminatedAt time.Time `json:"terminated_at" binding:"required"`
}

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID           uuid.UUID       `json:"id"`
	RoomID       uuid.UUID       `json:"room_id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      *time.Time      `json:"end_date"`
	Price        decimal.Decimal `json:"price"`
	PaidDeposit  decimal.Decimal `json:"paid_deposit"`
	IsActive     bool            `json:"is_active"`
	TerminatedAt *time.Time      `json:"terminated_at"`
	Note         string          `json:"note"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ToTenantResponse converts a domain tenant
func ToTenantResponse(t *leasing.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:        t.ID,
		FullName:  t.FullName,
		Phone:     t.Phone,
		Email:     t.Email,
		IDNumber:  t.IDNumber,
		UserID:    t.UserID,
		Note:      t.Note,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Version:   t.Version,
	}
}

// ToContractResponse converts a domain contract
func ToContractResponse(c *leasing.Contract) *ContractResponse {
	return &ContractResponse{
		ID:           c.ID,
		RoomID:       c.RoomID,
		TenantID:     c.TenantID,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Price:        c.Price.Amount(),
		PaidDeposit:  c.PaidDeposit.Amount(),
		IsActive:     c.IsActive,
		TerminatedAt: c.TerminatedAt,
		Note:         c.Note,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Version:      c.Version,
	}
}
