package billing

import (
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
)

// Event types for the billing context
const (
	EventTypeReadingRecorded = "billing.reading.recorded"
	EventTypeInvoiceIssued   = "billing.invoice.issued"
	EventTypeInvoicePaid     = "billing.invoice.paid"
)

// ReadingRecordedEvent is raised when a meter reading is recorded
type ReadingRecordedEvent struct {
	shared.BaseDomainEvent
	RoomID    string `json:"room_id"`
	ServiceID string `json:"service_id"`
	Month     string `json:"month"`
	Usage     int64  `json:"usage"`
}

// NewReadingRecordedEvent creates a ReadingRecordedEvent
func NewReadingRecordedEvent(r *MeterReading) *ReadingRecordedEvent {
	return &ReadingRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReadingRecorded, "MeterReading", r.ID),
		RoomID:          r.RoomID.String(),
		ServiceID:       r.ServiceID.String(),
		Month:           r.Month.String(),
		Usage:           r.Usage,
	}
}

// InvoiceIssuedEvent is raised when a draft invoice becomes payable
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	Code       int64  `json:"code"`
	ContractID string `json:"contract_id"`
	Month      string `json:"month"`
	Total      string `json:"total"`
}

// NewInvoiceIssuedEvent creates an InvoiceIssuedEvent
func NewInvoiceIssuedEvent(i *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceIssued, "Invoice", i.ID),
		Code:            i.Code,
		ContractID:      i.ContractID.String(),
		Month:           i.Month.String(),
		Total:           i.Total.String(),
	}
}

// InvoicePaidEvent is raised when an invoice is fully settled
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	Code int64 `json:"code"`
}

// NewInvoicePaidEvent creates an InvoicePaidEvent
func NewInvoicePaidEvent(i *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, "Invoice", i.ID),
		Code:            i.Code,
	}
}
