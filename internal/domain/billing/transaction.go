package billing

import (
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PaymentMethod is how money arrived
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash || m == PaymentMethodBankTransfer
}

// PaymentSource is who recorded the payment
type PaymentSource string

const (
	PaymentSourceManual  PaymentSource = "MANUAL"  // entered by a staff user
	PaymentSourceWebhook PaymentSource = "WEBHOOK" // matched from a bank notification
)

// PaymentTransaction records one payment event. A nil InvoiceID marks a
// bank transfer that could not be matched to an invoice and is waiting for
// manual reconciliation. ExternalRef carries the bank-side transaction id
// for webhook payments and doubles as the idempotency key.
type PaymentTransaction struct {
	shared.BaseEntity
	InvoiceID   *uuid.UUID        `json:"invoice_id"`
	Amount      valueobject.Money `json:"amount"`
	Method      PaymentMethod     `json:"method"`
	Source      PaymentSource     `json:"source"`
	ExternalRef string            `json:"external_ref"`
	Content     string            `json:"content"`
	PaidAt      time.Time         `json:"paid_at"`
	RecordedBy  *uuid.UUID        `json:"recorded_by"`
}

// NewPaymentTransaction creates a payment record
func NewPaymentTransaction(invoiceID uuid.UUID, amount valueobject.Money, method PaymentMethod, source PaymentSource, paidAt time.Time) (*PaymentTransaction, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Invalid payment method: "+string(method))
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	return &PaymentTransaction{
		BaseEntity: shared.NewBaseEntity(),
		InvoiceID:  &invoiceID,
		Amount:     amount,
		Method:     method,
		Source:     source,
		PaidAt:     paidAt,
	}, nil
}

// NewUnmatchedTransaction stores a bank transfer that could not be matched
// to an invoice, so the money is never lost and a staff user can link it
// later.
func NewUnmatchedTransaction(amount valueobject.Money, ref, content string, paidAt time.Time) (*PaymentTransaction, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount must be positive")
	}
	if ref == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bank transaction reference cannot be empty")
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	return &PaymentTransaction{
		BaseEntity:  shared.NewBaseEntity(),
		Amount:      amount,
		Method:      PaymentMethodBankTransfer,
		Source:      PaymentSourceWebhook,
		ExternalRef: ref,
		Content:     content,
		PaidAt:      paidAt,
	}, nil
}

// IsMatched reports whether the transaction is applied to an invoice
func (p *PaymentTransaction) IsMatched() bool {
	return p.InvoiceID != nil
}

// LinkToInvoice attaches an unmatched transaction to an invoice
func (p *PaymentTransaction) LinkToInvoice(invoiceID uuid.UUID) error {
	if p.InvoiceID != nil {
		return shared.NewDomainError("INVALID_STATE", "Transaction is already linked to an invoice")
	}
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	p.InvoiceID = &invoiceID
	p.UpdatedAt = time.Now()
	return nil
}

// WithExternalRef attaches the bank-side reference
func (p *PaymentTransaction) WithExternalRef(ref, content string) *PaymentTransaction {
	p.ExternalRef = ref
	p.Content = content
	return p
}

// WithRecordedBy attaches the staff user who entered the payment
func (p *PaymentTransaction) WithRecordedBy(userID uuid.UUID) *PaymentTransaction {
	p.RecordedBy = &userID
	return p
}
