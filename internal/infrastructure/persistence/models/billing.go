package models

import (
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ServiceModel is the persistence model for the UtilityService aggregate.
type ServiceModel struct {
	AggregateModel
	Name      string              `gorm:"type:varchar(200);not null"`
	Type      billing.ServiceType `gorm:"type:varchar(20);not null"`
	UnitPrice valueobject.Money   `gorm:"type:numeric(18,0);not null"`
	Unit      string              `gorm:"type:varchar(20)"`
	IsEnabled bool                `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ServiceModel) TableName() string {
	return "services"
}

// ToDomain converts the persistence model to a domain UtilityService
func (m *ServiceModel) ToDomain() *billing.UtilityService {
	return &billing.UtilityService{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Type:              m.Type,
		UnitPrice:         m.UnitPrice,
		Unit:              m.Unit,
		IsEnabled:         m.IsEnabled,
	}
}

// FromDomain populates the persistence model from a domain UtilityService
func (m *ServiceModel) FromDomain(s *billing.UtilityService) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.Type = s.Type
	m.UnitPrice = s.UnitPrice
	m.Unit = s.Unit
	m.IsEnabled = s.IsEnabled
}

// ServiceModelFromDomain creates a persistence model from a domain UtilityService
func ServiceModelFromDomain(s *billing.UtilityService) *ServiceModel {
	m := &ServiceModel{}
	m.FromDomain(s)
	return m
}

// ReadingModel is the persistence model for the MeterReading aggregate.
// A unique index on (room_id, service_id, month) guards against double
// entry for the same billing month. UnitPrice and TotalCost are the
// recording-time rate snapshot.
type ReadingModel struct {
	AggregateModel
	RoomID       uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_readings_room_service_month"`
	ServiceID    uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_readings_room_service_month"`
	Month        valueobject.BillingMonth `gorm:"type:varchar(7);not null;uniqueIndex:idx_readings_room_service_month"`
	OldIndex     int64                    `gorm:"not null"`
	NewIndex     int64                    `gorm:"not null"`
	Usage        int64                    `gorm:"column:usage;not null"`
	UnitPrice    valueobject.Money        `gorm:"type:numeric(18,0);not null"`
	TotalCost    valueobject.Money        `gorm:"type:numeric(18,0);not null"`
	IsMeterReset bool                     `gorm:"not null;default:false"`
	IsBilled     bool                     `gorm:"not null;default:false;index"`
	InvoiceID    *uuid.UUID               `gorm:"type:uuid;index"`
	Note         string                   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReadingModel) TableName() string {
	return "meter_readings"
}

// ToDomain converts the persistence model to a domain MeterReading
func (m *ReadingModel) ToDomain() *billing.MeterReading {
	return &billing.MeterReading{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		RoomID:            m.RoomID,
		ServiceID:         m.ServiceID,
		Month:             m.Month,
		OldIndex:          m.OldIndex,
		NewIndex:          m.NewIndex,
		Usage:             m.Usage,
		UnitPrice:         m.UnitPrice,
		TotalCost:         m.TotalCost,
		IsMeterReset:      m.IsMeterReset,
		IsBilled:          m.IsBilled,
		InvoiceID:         m.InvoiceID,
		Note:              m.Note,
	}
}

// FromDomain populates the persistence model from a domain MeterReading
func (m *ReadingModel) FromDomain(r *billing.MeterReading) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.RoomID = r.RoomID
	m.ServiceID = r.ServiceID
	m.Month = r.Month
	m.OldIndex = r.OldIndex
	m.NewIndex = r.NewIndex
	m.Usage = r.Usage
	m.UnitPrice = r.UnitPrice
	m.TotalCost = r.TotalCost
	m.IsMeterReset = r.IsMeterReset
	m.IsBilled = r.IsBilled
	m.InvoiceID = r.InvoiceID
	m.Note = r.Note
}

// ReadingModelFromDomain creates a persistence model from a domain MeterReading
func ReadingModelFromDomain(r *billing.MeterReading) *ReadingModel {
	m := &ReadingModel{}
	m.FromDomain(r)
	return m
}

// InvoiceModel is the persistence model for the Invoice aggregate.
// Code draws from the invoice_code_seq sequence; line items live in a
// JSONB column since they are only ever read through the invoice.
// Uniqueness of (contract_id, month) is a partial index in the schema,
// scoped to non-cancelled invoices so a cancelled month can be rebilled.
type InvoiceModel struct {
	AggregateModel
	Code       int64                    `gorm:"not null;uniqueIndex"`
	ContractID uuid.UUID                `gorm:"type:uuid;not null;index:idx_invoices_contract_month"`
	RoomID     uuid.UUID                `gorm:"type:uuid;not null;index"`
	TenantID   uuid.UUID                `gorm:"type:uuid;not null;index"`
	Month      valueobject.BillingMonth `gorm:"type:varchar(7);not null;index:idx_invoices_contract_month"`
	LineItems  billing.LineItems        `gorm:"type:jsonb;not null;default:'[]'"`
	Total      valueobject.Money        `gorm:"type:numeric(18,0);not null"`
	PaidAmount valueobject.Money        `gorm:"type:numeric(18,0);not null;default:0"`
	Status     billing.InvoiceStatus    `gorm:"type:varchar(20);not null;index"`
	DueDate    *time.Time               ``
	IssuedAt   *time.Time               ``
	Note       string                   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		ContractID:        m.ContractID,
		RoomID:            m.RoomID,
		TenantID:          m.TenantID,
		Month:             m.Month,
		LineItems:         m.LineItems,
		Total:             m.Total,
		PaidAmount:        m.PaidAmount,
		Status:            m.Status,
		DueDate:           m.DueDate,
		IssuedAt:          m.IssuedAt,
		Note:              m.Note,
	}
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(i *billing.Invoice) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.Code = i.Code
	m.ContractID = i.ContractID
	m.RoomID = i.RoomID
	m.TenantID = i.TenantID
	m.Month = i.Month
	m.LineItems = i.LineItems
	m.Total = i.Total
	m.PaidAmount = i.PaidAmount
	m.Status = i.Status
	m.DueDate = i.DueDate
	m.IssuedAt = i.IssuedAt
	m.Note = i.Note
}

// InvoiceModelFromDomain creates a persistence model from a domain Invoice
func InvoiceModelFromDomain(i *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(i)
	return m
}

// TransactionModel is the persistence model for PaymentTransaction records.
// InvoiceID is nullable: an unmatched bank transfer is stored without an
// invoice until a staff user links it. ExternalRef carries a unique index
// so a bank transaction can only ever be applied once.
type TransactionModel struct {
	BaseModel
	InvoiceID   *uuid.UUID            `gorm:"type:uuid;index"`
	Amount      valueobject.Money     `gorm:"type:numeric(18,0);not null"`
	Method      billing.PaymentMethod `gorm:"type:varchar(20);not null"`
	Source      billing.PaymentSource `gorm:"type:varchar(20);not null"`
	ExternalRef *string               `gorm:"type:varchar(100);uniqueIndex"`
	Content     string                `gorm:"type:text"`
	PaidAt      time.Time             `gorm:"not null;index"`
	RecordedBy  *uuid.UUID            `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "payment_transactions"
}

// ToDomain converts the persistence model to a domain PaymentTransaction
func (m *TransactionModel) ToDomain() *billing.PaymentTransaction {
	externalRef := ""
	if m.ExternalRef != nil {
		externalRef = *m.ExternalRef
	}
	return &billing.PaymentTransaction{
		BaseEntity:  m.BaseModel.ToDomain(),
		InvoiceID:   m.InvoiceID,
		Amount:      m.Amount,
		Method:      m.Method,
		Source:      m.Source,
		ExternalRef: externalRef,
		Content:     m.Content,
		PaidAt:      m.PaidAt,
		RecordedBy:  m.RecordedBy,
	}
}

// FromDomain populates the persistence model from a domain PaymentTransaction.
// An empty external ref is stored as NULL so the unique index only binds
// webhook payments.
func (m *TransactionModel) FromDomain(t *billing.PaymentTransaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.InvoiceID = t.InvoiceID
	m.Amount = t.Amount
	m.Method = t.Method
	m.Source = t.Source
	if t.ExternalRef != "" {
		ref := t.ExternalRef
		m.ExternalRef = &ref
	} else {
		m.ExternalRef = nil
	}
	m.Content = t.Content
	m.PaidAt = t.PaidAt
	m.RecordedBy = t.RecordedBy
}

// TransactionModelFromDomain creates a persistence model from a domain PaymentTransaction
func TransactionModelFromDomain(t *billing.PaymentTransaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}
