package billing

import (
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MeterReading records the meter indexes of one metered service for one room
// in one billing month. Usage is derived from the index pair at creation and
// UnitPrice snapshots the service rate at recording time, so a later rate
// change never moves an already recorded charge. A reading can feed at most
// one invoice.
type MeterReading struct {
	shared.BaseAggregateRoot
	RoomID       uuid.UUID                `json:"room_id"`
	ServiceID    uuid.UUID                `json:"service_id"`
	Month        valueobject.BillingMonth `json:"month"`
	OldIndex     int64                    `json:"old_index"`
	NewIndex     int64                    `json:"new_index"`
	Usage        int64                    `json:"usage"`
	UnitPrice    valueobject.Money        `json:"unit_price"`
	TotalCost    valueobject.Money        `json:"total_cost"`
	IsMeterReset bool                     `json:"is_meter_reset"`
	IsBilled     bool                     `json:"is_billed"`
	InvoiceID    *uuid.UUID               `json:"invoice_id"`
	Note         string                   `json:"note"`
}

func validateReadingInput(roomID, serviceID uuid.UUID, month valueobject.BillingMonth, oldIndex, newIndex int64, unitPrice valueobject.Money) error {
	if roomID == uuid.Nil {
		return shared.NewDomainError("INVALID_ROOM", "Room ID cannot be empty")
	}
	if serviceID == uuid.Nil {
		return shared.NewDomainError("INVALID_SERVICE", "Service ID cannot be empty")
	}
	if month.IsZero() {
		return shared.NewDomainError("INVALID_MONTH", "Billing month is required")
	}
	if oldIndex < 0 || newIndex < 0 {
		return shared.NewDomainError("INVALID_INDEX", "Meter indexes cannot be negative")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	return nil
}

// NewMeterReading creates a reading with usage = newIndex - oldIndex priced
// at the given rate. A new index below the old one is rejected; a wrapped
// meter must be recorded through NewMeterReadingReset instead.
func NewMeterReading(roomID, serviceID uuid.UUID, month valueobject.BillingMonth, oldIndex, newIndex int64, unitPrice valueobject.Money, note string) (*MeterReading, error) {
	if err := validateReadingInput(roomID, serviceID, month, oldIndex, newIndex, unitPrice); err != nil {
		return nil, err
	}
	if newIndex < oldIndex {
		return nil, shared.NewDomainError("INVALID_INPUT",
			"New index is below the old index; record a meter reset with the meter's maximum value")
	}

	usage := newIndex - oldIndex
	r := &MeterReading{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RoomID:            roomID,
		ServiceID:         serviceID,
		Month:             month,
		OldIndex:          oldIndex,
		NewIndex:          newIndex,
		Usage:             usage,
		UnitPrice:         unitPrice,
		TotalCost:         unitPrice.Multiply(decimal.NewFromInt(usage)),
		Note:              note,
	}
	r.AddDomainEvent(NewReadingRecordedEvent(r))
	return r, nil
}

// NewMeterReadingReset creates a reading for a meter that wrapped past its
// maximum: usage counts from the old index to the maximum and on from zero,
// e.g. old 95, new 5, max 100 gives (100-95)+5 = 10.
func NewMeterReadingReset(roomID, serviceID uuid.UUID, month valueobject.BillingMonth, oldIndex, newIndex, maxMeterValue int64, unitPrice valueobject.Money, note string) (*MeterReading, error) {
	if err := validateReadingInput(roomID, serviceID, month, oldIndex, newIndex, unitPrice); err != nil {
		return nil, err
	}
	if maxMeterValue <= oldIndex {
		return nil, shared.NewDomainError("INVALID_INPUT",
			"Meter maximum must be greater than the old index")
	}

	usage := (maxMeterValue - oldIndex) + newIndex
	r := &MeterReading{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RoomID:            roomID,
		ServiceID:         serviceID,
		Month:             month,
		OldIndex:          oldIndex,
		NewIndex:          newIndex,
		Usage:             usage,
		UnitPrice:         unitPrice,
		TotalCost:         unitPrice.Multiply(decimal.NewFromInt(usage)),
		IsMeterReset:      true,
		Note:              note,
	}
	r.AddDomainEvent(NewReadingRecordedEvent(r))
	return r, nil
}

// Correct replaces the index pair of an unbilled reading and recomputes
// usage and cost at the snapshotted rate. Reset readings cannot be
// corrected in place; delete and re-record.
func (r *MeterReading) Correct(oldIndex, newIndex int64, note string) error {
	if r.IsBilled {
		return shared.NewDomainError("INVALID_STATE", "Cannot correct a reading that is already billed")
	}
	if r.IsMeterReset {
		return shared.NewDomainError("INVALID_STATE", "Cannot correct a meter reset reading; delete and re-record it")
	}
	if oldIndex < 0 || newIndex < 0 {
		return shared.NewDomainError("INVALID_INDEX", "Meter indexes cannot be negative")
	}
	if newIndex < oldIndex {
		return shared.NewDomainError("INVALID_INPUT", "New index cannot be below the old index")
	}

	r.OldIndex = oldIndex
	r.NewIndex = newIndex
	r.Usage = newIndex - oldIndex
	r.TotalCost = r.UnitPrice.Multiply(decimal.NewFromInt(r.Usage))
	r.Note = note
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// MarkBilled binds the reading to the invoice that consumed it
func (r *MeterReading) MarkBilled(invoiceID uuid.UUID) error {
	if r.IsBilled {
		return shared.NewDomainError("CONFLICT", "Reading is already billed")
	}
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Invoice ID cannot be empty")
	}
	r.IsBilled = true
	r.InvoiceID = &invoiceID
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Unbill releases the reading when its invoice is cancelled
func (r *MeterReading) Unbill() {
	if !r.IsBilled {
		return
	}
	r.IsBilled = false
	r.InvoiceID = nil
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}
