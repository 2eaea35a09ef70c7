package billing

import (
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateServiceRequest represents a request to create a utility service
type CreateServiceRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=100"`
	Type      string          `json:"type" binding:"required,oneof=METERED FIXED"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Unit      string          `json:"unit" binding:"max=20"`
}

// UpdateServiceRequest represents a request to update a utility service
type UpdateServiceRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=100"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Unit      string          `json:"unit" binding:"max=20"`
}

// ServiceResponse represents a utility service in API responses
type ServiceResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Unit      string          `json:"unit"`
	IsEnabled bool            `json:"is_enabled"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// RecordReadingRequest represents a request to record a meter reading.
// OldIndex is optional; when omitted the previous reading's new index is
// carried forward. IsMeterReset marks a meter that wrapped past its maximum
// and requires MaxMeterValue; without it a new index below the old one is
// rejected.
type RecordReadingRequest struct {
	RoomID        uuid.UUID `json:"room_id" binding:"required"`
	ServiceID     uuid.UUID `json:"service_id" binding:"required"`
	Month         string    `json:"month" binding:"required,billmonth"`
	OldIndex      *int64    `json:"old_index" binding:"omitempty,min=0"`
	NewIndex      int64     `json:"new_index" binding:"min=0"`
	IsMeterReset  bool      `json:"is_meter_reset"`
	MaxMeterValue *int64    `json:"max_meter_value" binding:"omitempty,min=1"`
	Note          string    `json:"note" binding:"max=2000"`
}

// CorrectReadingRequest represents a request to fix an unbilled reading
type CorrectReadingRequest struct {
	OldIndex int64  `json:"old_index" binding:"min=0"`
	NewIndex int64  `json:"new_index" binding:"min=0"`
	Note     string `json:"note" binding:"max=2000"`
}

// ReadingResponse represents a meter reading in API responses
type ReadingResponse struct {
	ID           uuid.UUID       `json:"id"`
	RoomID       uuid.UUID       `json:"room_id"`
	ServiceID    uuid.UUID       `json:"service_id"`
	Month        string          `json:"month"`
	OldIndex     int64           `json:"old_index"`
	NewIndex     int64           `json:"new_index"`
	Usage        int64           `json:"usage"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	IsMeterReset bool            `json:"is_meter_reset"`
	IsBilled     bool            `json:"is_billed"`
	InvoiceID    *uuid.UUID      `json:"invoice_id"`
	Note         string          `json:"note"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ExtraItemRequest is an ad-hoc charge or discount added at generation time
type ExtraItemRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// LineItemRequest is one explicit invoice line in the manual-override path,
// typically a snapshot taken from a preview step
type LineItemRequest struct {
	Type        string          `json:"type" binding:"required,oneof=RENT SERVICE EXTRA DISCOUNT"`
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ServiceID   *uuid.UUID      `json:"service_id"`
	ReadingID   *uuid.UUID      `json:"reading_id"`
}

// GenerateInvoiceRequest represents a request to generate the monthly invoice
// for a contract. Draft keeps the invoice editable; it must be finalized
// before payments can be applied. ProratedRent fixes the rent line amount
// outright; StartDay prorates rent from that day instead of the contract's
// start day. Without either, rent is prorated only when the contract starts
// inside the billing month.
type GenerateInvoiceRequest struct {
	ContractID   uuid.UUID          `json:"contract_id" binding:"required"`
	Month        string             `json:"month" binding:"required,billmonth"`
	Draft        bool               `json:"draft"`
	DueDate      *time.Time         `json:"due_date"`
	ProratedRent *decimal.Decimal   `json:"prorated_rent"`
	StartDay     *int               `json:"start_day" binding:"omitempty,min=1,max=31"`
	ExtraItems   []ExtraItemRequest `json:"extra_items" binding:"omitempty,dive"`
	// LineItems overrides computation entirely; readings referenced by the
	// explicit lines are still marked billed
	LineItems []LineItemRequest `json:"line_items" binding:"omitempty,dive"`
	Note      string            `json:"note" binding:"max=2000"`
}

// UpdateInvoiceRequest appends extra charges or discounts to a draft invoice
type UpdateInvoiceRequest struct {
	ExtraItems []ExtraItemRequest `json:"extra_items" binding:"required,min=1,dive"`
}

// FinalizeInvoiceRequest issues a draft invoice and makes it payable
type FinalizeInvoiceRequest struct {
	DueDate *time.Time `json:"due_date"`
}

// LineItemResponse represents one invoice line in API responses
type LineItemResponse struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	ServiceID   *uuid.UUID      `json:"service_id,omitempty"`
	ReadingID   *uuid.UUID      `json:"reading_id,omitempty"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID          uuid.UUID          `json:"id"`
	Code        int64              `json:"code"`
	Reference   string             `json:"reference"`
	ContractID  uuid.UUID          `json:"contract_id"`
	RoomID      uuid.UUID          `json:"room_id"`
	TenantID    uuid.UUID          `json:"tenant_id"`
	Month       string             `json:"month"`
	LineItems   []LineItemResponse `json:"line_items"`
	Total       decimal.Decimal    `json:"total"`
	PaidAmount  decimal.Decimal    `json:"paid_amount"`
	Outstanding decimal.Decimal    `json:"outstanding"`
	Status      string             `json:"status"`
	DueDate     *time.Time         `json:"due_date"`
	IssuedAt    *time.Time         `json:"issued_at"`
	Note        string             `json:"note"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Version     int                `json:"version"`
}

// RecordPaymentRequest represents a manual payment entry
type RecordPaymentRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     string          `json:"method" binding:"required,oneof=CASH BANK_TRANSFER"`
	PaidAt     *time.Time      `json:"paid_at"`
	RecordedBy *uuid.UUID      `json:"-"`
}

// LinkTransactionRequest attaches an unmatched bank transfer to an invoice
type LinkTransactionRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" binding:"required"`
}

// TransactionResponse represents a payment transaction in API responses.
// A null invoice_id marks an unmatched bank transfer.
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   *uuid.UUID      `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Source      string          `json:"source"`
	ExternalRef string          `json:"external_ref,omitempty"`
	Content     string          `json:"content,omitempty"`
	PaidAt      time.Time       `json:"paid_at"`
	RecordedBy  *uuid.UUID      `json:"recorded_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BankWebhookRequest is the payload pushed by the bank integration for an
// incoming transfer
type BankWebhookRequest struct {
	TransactionID string          `json:"transaction_id" binding:"required,max=100"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Content       string          `json:"content" binding:"required,max=500"`
	TransferredAt *time.Time      `json:"transferred_at"`
}

// BankWebhookResponse reports what the webhook did with the transfer
type BankWebhookResponse struct {
	Matched          bool       `json:"matched"`
	AlreadyProcessed bool       `json:"already_processed,omitempty"`
	InvoiceID        *uuid.UUID `json:"invoice_id,omitempty"`
	InvoiceCode      *int64     `json:"invoice_code,omitempty"`
	InvoiceStatus    string     `json:"invoice_status,omitempty"`
	Reason           string     `json:"reason,omitempty"`
}

// ToServiceResponse converts a domain utility service
func ToServiceResponse(s *billing.UtilityService) *ServiceResponse {
	return &ServiceResponse{
		ID:        s.ID,
		Name:      s.Name,
		Type:      s.Type.String(),
		UnitPrice: s.UnitPrice.Amount(),
		Unit:      s.Unit,
		IsEnabled: s.IsEnabled,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}
}

// ToReadingResponse converts a domain meter reading
func ToReadingResponse(r *billing.MeterReading) *ReadingResponse {
	return &ReadingResponse{
		ID:           r.ID,
		RoomID:       r.RoomID,
		ServiceID:    r.ServiceID,
		Month:        r.Month.String(),
		OldIndex:     r.OldIndex,
		NewIndex:     r.NewIndex,
		Usage:        r.Usage,
		UnitPrice:    r.UnitPrice.Amount(),
		TotalCost:    r.TotalCost.Amount(),
		IsMeterReset: r.IsMeterReset,
		IsBilled:     r.IsBilled,
		InvoiceID:    r.InvoiceID,
		Note:         r.Note,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToInvoiceResponse converts a domain invoice
func ToInvoiceResponse(i *billing.Invoice) *InvoiceResponse {
	items := make([]LineItemResponse, 0, len(i.LineItems))
	for _, item := range i.LineItems {
		items = append(items, LineItemResponse{
			Type:        string(item.Type),
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Amount(),
			Amount:      item.Amount.Amount(),
			ServiceID:   item.ServiceID,
			ReadingID:   item.ReadingID,
		})
	}

	return &InvoiceResponse{
		ID:          i.ID,
		Code:        i.Code,
		Reference:   i.Reference(),
		ContractID:  i.ContractID,
		RoomID:      i.RoomID,
		TenantID:    i.TenantID,
		Month:       i.Month.String(),
		LineItems:   items,
		Total:       i.Total.Amount(),
		PaidAmount:  i.PaidAmount.Amount(),
		Outstanding: i.Outstanding().Amount(),
		Status:      i.Status.String(),
		DueDate:     i.DueDate,
		IssuedAt:    i.IssuedAt,
		Note:        i.Note,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
		Version:     i.Version,
	}
}

// ToTransactionResponse converts a domain payment transaction
func ToTransactionResponse(t *billing.PaymentTransaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		InvoiceID:   t.InvoiceID,
		Amount:      t.Amount.Amount(),
		Method:      string(t.Method),
		Source:      string(t.Source),
		ExternalRef: t.ExternalRef,
		Content:     t.Content,
		PaidAt:      t.PaidAt,
		RecordedBy:  t.RecordedBy,
		CreatedAt:   t.CreatedAt,
	}
}
