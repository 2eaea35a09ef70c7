package leasing

import (
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Tenant represents a renter aggregate root.
// A tenant may optionally be linked to a login account.
type Tenant struct {
	shared.BaseAggregateRoot
	FullName string     `json:"full_name"`
	Phone    string     `json:"phone"`
	Email    string     `json:"email"`
	IDNumber string     `json:"id_number"`
	UserID   *uuid.UUID `json:"user_id"`
	Note     string     `json:"note"`
}

// NewTenant creates a new tenant
func NewTenant(fullName, phone string) (*Tenant, error) {
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant full name cannot be empty")
	}
	if len(fullName) > 200 {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant full name cannot exceed 200 characters")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_PHONE", "Tenant phone cannot be empty")
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FullName:          fullName,
		Phone:             phone,
	}, nil
}

// Update changes the tenant's mutable attributes
func (t *Tenant) Update(fullName, phone, email, idNumber, note string) error {
	if fullName == "" {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant full name cannot be empty")
	}
	if phone == "" {
		return shared.NewDomainError("INVALID_TENANT_PHONE", "Tenant phone cannot be empty")
	}

	t.FullName = fullName
	t.Phone = phone
	t.Email = email
	t.IDNumber = idNumber
	t.Note = note
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// LinkUser attaches a login account to the tenant
func (t *Tenant) LinkUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if t.UserID != nil {
		return shared.NewDomainError("ALREADY_EXISTS", "Tenant is already linked to a user account")
	}
	t.UserID = &userID
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// UnlinkUser detaches the login account
func (t *Tenant) UnlinkUser() {
	if t.UserID == nil {
		return
	}
	t.UserID = nil
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}
