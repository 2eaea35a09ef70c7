package identity

import (
	"strings"
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
)

// Role determines what a user may do
type Role string

const (
	RoleAdmin  Role = "ADMIN"  // full access, manages users
	RoleStaff  Role = "STAFF"  // manages properties, readings, invoices, payments
	RoleTenant Role = "TENANT" // read-only access to own contracts and invoices
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff || r == RoleTenant
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// CanManage reports whether the role can mutate business data
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is a login account aggregate root
type User struct {
	shared.BaseAggregateRoot
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

// NewUser creates a new active user. The password hash is produced by the
// application layer; the domain never sees plaintext.
func NewUser(email, passwordHash, fullName string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Invalid role: "+role.String())
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
		FullName:          fullName,
		Role:              role,
		IsActive:          true,
	}, nil
}

// ChangePassword replaces the stored hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// RecordLogin stamps a successful authentication
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = time.Now()
}

// Deactivate blocks the account from logging in
func (u *User) Deactivate() error {
	if !u.IsActive {
		return shared.NewDomainError("INVALID_STATE", "User is already inactive")
	}
	u.IsActive = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// Activate restores a blocked account
func (u *User) Activate() {
	if u.IsActive {
		return
	}
	u.IsActive = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}
