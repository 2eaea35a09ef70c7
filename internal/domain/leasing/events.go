package leasing

import (
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
)

// Event types for the leasing context
const (
	EventTypeContractActivated  = "leasing.contract.activated"
	EventTypeContractTerminated = "leasing.contract.terminated"
)

// ContractActivatedEvent is raised when a contract becomes active
type ContractActivatedEvent struct {
	shared.BaseDomainEvent
	RoomID   string `json:"room_id"`
	TenantID string `json:"tenant_id"`
}

// NewContractActivatedEvent creates a ContractActivatedEvent
func NewContractActivatedEvent(c *Contract) *ContractActivatedEvent {
	return &ContractActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractActivated, "Contract", c.ID),
		RoomID:          c.RoomID.String(),
		TenantID:        c.TenantID.String(),
	}
}

// ContractTerminatedEvent is raised when a contract is terminated
type ContractTerminatedEvent struct {
	shared.BaseDomainEvent
	RoomID string `json:"room_id"`
}

// NewContractTerminatedEvent creates a ContractTerminatedEvent
func NewContractTerminatedEvent(c *Contract) *ContractTerminatedEvent {
	return &ContractTerminatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractTerminated, "Contract", c.ID),
		RoomID:          c.RoomID.String(),
	}
}
