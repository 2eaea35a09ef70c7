package billing

import (
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
)

// ServiceType classifies how a utility service is charged
type ServiceType string

const (
	ServiceTypeMetered ServiceType = "METERED" // charged per consumed unit, needs meter readings
	ServiceTypeFixed   ServiceType = "FIXED"   // flat monthly fee
)

// IsValid checks if the service type is valid
func (s ServiceType) IsValid() bool {
	return s == ServiceTypeMetered || s == ServiceTypeFixed
}

// String returns the string representation
func (s ServiceType) String() string {
	return string(s)
}

// UtilityService represents a billable service aggregate root, e.g.
// electricity at 3500 VND/kWh or a flat internet fee.
type UtilityService struct {
	shared.BaseAggregateRoot
	Name      string            `json:"name"`
	Type      ServiceType       `json:"type"`
	UnitPrice valueobject.Money `json:"unit_price"`
	Unit      string            `json:"unit"` // kWh, m3, month
	IsEnabled bool              `json:"is_enabled"`
}

// NewUtilityService creates a new utility service
func NewUtilityService(name string, serviceType ServiceType, unitPrice valueobject.Money, unit string) (*UtilityService, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE_NAME", "Service name cannot be empty")
	}
	if !serviceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SERVICE_TYPE", "Invalid service type: "+serviceType.String())
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Service unit price cannot be negative")
	}
	if serviceType == ServiceTypeMetered && unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Metered service requires a unit of measure")
	}

	return &UtilityService{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              serviceType,
		UnitPrice:         unitPrice,
		Unit:              unit,
		IsEnabled:         true,
	}, nil
}

// UpdatePrice changes the unit price. Readings already billed keep the
// price that was in effect when their invoice was generated.
func (s *UtilityService) UpdatePrice(unitPrice valueobject.Money) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_PRICE", "Service unit price cannot be negative")
	}
	s.UnitPrice = unitPrice
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Update changes the service's mutable attributes
func (s *UtilityService) Update(name string, unitPrice valueobject.Money, unit string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_SERVICE_NAME", "Service name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_PRICE", "Service unit price cannot be negative")
	}
	s.Name = name
	s.UnitPrice = unitPrice
	s.Unit = unit
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Disable removes the service from future invoice generation
func (s *UtilityService) Disable() {
	if !s.IsEnabled {
		return
	}
	s.IsEnabled = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Enable restores the service for invoice generation
func (s *UtilityService) Enable() {
	if s.IsEnabled {
		return
	}
	s.IsEnabled = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// IsMetered reports whether the service is billed from meter readings
func (s *UtilityService) IsMetered() bool {
	return s.Type == ServiceTypeMetered
}
