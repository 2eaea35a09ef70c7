package billing

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusUnpaid    InvoiceStatus = "UNPAID"
	InvoiceStatusPartial   InvoiceStatus = "PARTIAL"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is valid
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusUnpaid, InvoiceStatusPartial,
		InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the invoice can change no further
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// CanReceivePayment reports whether a payment may be applied in this status
func (s InvoiceStatus) CanReceivePayment() bool {
	return s == InvoiceStatusUnpaid || s == InvoiceStatusPartial || s == InvoiceStatusOverdue
}

// String returns the string representation
func (s InvoiceStatus) String() string {
	return string(s)
}

// LineItemType classifies an invoice line
type LineItemType string

const (
	LineItemTypeRent     LineItemType = "RENT"
	LineItemTypeService  LineItemType = "SERVICE"
	LineItemTypeExtra    LineItemType = "EXTRA"
	LineItemTypeDiscount LineItemType = "DISCOUNT"
)

// LineItem is one charge on an invoice. Metered service lines keep the
// reading they were priced from so consumption stays auditable after
// service prices change.
type LineItem struct {
	Type        LineItemType      `json:"type"`
	Description string            `json:"description"`
	Quantity    decimal.Decimal   `json:"quantity"`
	UnitPrice   valueobject.Money `json:"unit_price"`
	Amount      valueobject.Money `json:"amount"`
	ServiceID   *uuid.UUID        `json:"service_id,omitempty"`
	ReadingID   *uuid.UUID        `json:"reading_id,omitempty"`
}

// LineItems is stored as a JSONB column
type LineItems []LineItem

// Value implements driver.Valuer
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *LineItems) Scan(value any) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into LineItems", value)
	}
	return json.Unmarshal(data, l)
}

// Total sums the line amounts
func (l LineItems) Total() valueobject.Money {
	total := valueobject.ZeroVND()
	for _, item := range l {
		total = total.MustAdd(item.Amount)
	}
	return total
}

// Invoice is the monthly bill aggregate root for one contract. Code is a
// human-facing sequence number; bank transfer contents reference invoices
// as "HD<code>".
type Invoice struct {
	shared.BaseAggregateRoot
	Code       int64                    `json:"code"`
	ContractID uuid.UUID                `json:"contract_id"`
	RoomID     uuid.UUID                `json:"room_id"`
	TenantID   uuid.UUID                `json:"tenant_id"`
	Month      valueobject.BillingMonth `json:"month"`
	LineItems  LineItems                `json:"line_items"`
	Total      valueobject.Money        `json:"total"`
	PaidAmount valueobject.Money        `json:"paid_amount"`
	Status     InvoiceStatus            `json:"status"`
	DueDate    *time.Time               `json:"due_date"`
	IssuedAt   *time.Time               `json:"issued_at"`
	Note       string                   `json:"note"`
}

// NewInvoice creates a draft invoice with the given line items
func NewInvoice(contractID, roomID, tenantID uuid.UUID, month valueobject.BillingMonth, items LineItems) (*Invoice, error) {
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Contract ID cannot be empty")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Billing month is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice requires at least one line item")
	}

	total := items.Total()
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice total cannot be negative")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ContractID:        contractID,
		RoomID:            roomID,
		TenantID:          tenantID,
		Month:             month,
		LineItems:         items,
		Total:             total,
		PaidAmount:        valueobject.ZeroVND(),
		Status:            InvoiceStatusDraft,
	}
	return inv, nil
}

// Reference returns the human-facing invoice reference, e.g. "HD50"
func (i *Invoice) Reference() string {
	return fmt.Sprintf("HD%d", i.Code)
}

// Outstanding returns the amount still owed
func (i *Invoice) Outstanding() valueobject.Money {
	return i.Total.MustSubtract(i.PaidAmount)
}

// AddLineItem appends a charge to a draft invoice and recomputes the total
func (i *Invoice) AddLineItem(item LineItem) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Line items can only be added to a draft invoice")
	}
	i.LineItems = append(i.LineItems, item)
	i.Total = i.LineItems.Total()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Issue finalizes a draft invoice and makes it payable
func (i *Invoice) Issue(dueDate *time.Time) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only a draft invoice can be issued")
	}
	if i.Total.IsNegative() {
		return shared.NewDomainError("INVALID_STATE", "Invoice total cannot be negative")
	}

	now := time.Now()
	i.IssuedAt = &now
	i.DueDate = dueDate
	if i.Total.IsZero() {
		i.Status = InvoiceStatusPaid
	} else {
		i.Status = InvoiceStatusUnpaid
	}
	i.UpdatedAt = now
	i.IncrementVersion()
	i.AddDomainEvent(NewInvoiceIssuedEvent(i))
	return nil
}

// RecordPayment applies a payment to the invoice. The amount must be
// positive and must not exceed the outstanding balance; overpayments are
// rejected so reconciliation mismatches surface instead of silently
// creating credit.
func (i *Invoice) RecordPayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount must be positive")
	}
	if !i.Status.CanReceivePayment() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot apply payment to invoice in status %s", i.Status))
	}

	outstanding := i.Outstanding()
	exceeds, err := amount.GreaterThan(outstanding)
	if err != nil {
		return err
	}
	if exceeds {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING",
			fmt.Sprintf("Payment %s exceeds outstanding balance %s", amount.String(), outstanding.String()))
	}

	i.PaidAmount = i.PaidAmount.MustAdd(amount)
	if i.PaidAmount.Equals(i.Total) {
		i.Status = InvoiceStatusPaid
		i.AddDomainEvent(NewInvoicePaidEvent(i))
	} else {
		i.Status = InvoiceStatusPartial
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// MarkOverdue transitions a payable invoice past its due date
func (i *Invoice) MarkOverdue(now time.Time) error {
	if i.Status != InvoiceStatusUnpaid && i.Status != InvoiceStatusPartial {
		return shared.NewDomainError("INVALID_STATE", "Only unpaid or partial invoices can become overdue")
	}
	if i.DueDate == nil || !now.After(*i.DueDate) {
		return shared.NewDomainError("INVALID_STATE", "Invoice is not past its due date")
	}
	i.Status = InvoiceStatusOverdue
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Cancel voids an invoice that has received no payments. Readings bound to
// it must be released by the caller.
func (i *Invoice) Cancel() error {
	if i.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already in a terminal status")
	}
	if i.PaidAmount.IsPositive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel an invoice with recorded payments")
	}
	i.Status = InvoiceStatusCancelled
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}
