package leasing

import (
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Contract represents a lease agreement aggregate root binding one tenant
// to one room for a date range at a fixed monthly price.
// At most one active contract may exist per room; the leasing service and a
// partial unique index enforce this at activation time.
type Contract struct {
	shared.BaseAggregateRoot
	RoomID       uuid.UUID         `json:"room_id"`
	TenantID     uuid.UUID         `json:"tenant_id"`
	StartDate    time.Time         `json:"start_date"`
	EndDate      *time.Time        `json:"end_date"` // nil = indefinite
	Price        valueobject.Money `json:"price"`
	PaidDeposit  valueobject.Money `json:"paid_deposit"`
	IsActive     bool              `json:"is_active"`
	TerminatedAt *time.Time        `json:"terminated_at"`
	Note         string            `json:"note"`
}

// NewContract creates a new active contract
func NewContract(roomID, tenantID uuid.UUID, startDate time.Time, endDate *time.Time, price, paidDeposit valueobject.Money) (*Contract, error) {
	if roomID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROOM", "Room ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_START_DATE", "Contract start date is required")
	}
	if endDate != nil && !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_END_DATE", "Contract end date must be after start date")
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Contract price must be positive")
	}
	if paidDeposit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DEPOSIT", "Paid deposit cannot be negative")
	}

	c := &Contract{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RoomID:            roomID,
		TenantID:          tenantID,
		StartDate:         startDate,
		EndDate:           endDate,
		Price:             price,
		PaidDeposit:       paidDeposit,
		IsActive:          true,
	}
	c.AddDomainEvent(NewContractActivatedEvent(c))
	return c, nil
}

// Terminate ends the contract. Terminated contracts stay for history and
// their invoices remain payable.
func (c *Contract) Terminate(at time.Time) error {
	if !c.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Contract is not active")
	}
	if at.Before(c.StartDate) {
		return shared.NewDomainError("INVALID_INPUT", "Termination date cannot precede contract start")
	}

	c.IsActive = false
	c.TerminatedAt = &at
	c.EndDate = &at
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	c.AddDomainEvent(NewContractTerminatedEvent(c))
	return nil
}

// UpdateTerms changes the negotiable attributes of an active contract
func (c *Contract) UpdateTerms(price, paidDeposit valueobject.Money, endDate *time.Time, note string) error {
	if !c.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a terminated contract")
	}
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Contract price must be positive")
	}
	if paidDeposit.IsNegative() {
		return shared.NewDomainError("INVALID_DEPOSIT", "Paid deposit cannot be negative")
	}
	if endDate != nil && !endDate.After(c.StartDate) {
		return shared.NewDomainError("INVALID_END_DATE", "Contract end date must be after start date")
	}

	c.Price = price
	c.PaidDeposit = paidDeposit
	c.EndDate = endDate
	c.Note = note
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// CoversMonth reports whether the contract overlaps the given billing month
func (c *Contract) CoversMonth(month valueobject.BillingMonth) bool {
	if c.StartDate.After(month.End().Add(-time.Nanosecond)) {
		return false
	}
	if c.EndDate != nil && c.EndDate.Before(month.Start()) {
		return false
	}
	return true
}

// StartDayInMonth returns the first occupied day of the contract inside the
// given month: the contract's start day when it begins in that month,
// otherwise 1.
func (c *Contract) StartDayInMonth(month valueobject.BillingMonth) int {
	if month.Contains(c.StartDate) {
		return c.StartDate.Day()
	}
	return 1
}
