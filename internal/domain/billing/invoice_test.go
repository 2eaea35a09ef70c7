package billing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rentLine(amount int64) LineItem {
	return LineItem{
		Type:        LineItemTypeRent,
		Description: "Tien phong",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   valueobject.NewMoneyVNDFromInt(amount),
		Amount:      valueobject.NewMoneyVNDFromInt(amount),
	}
}

func createTestInvoice(t *testing.T, amount int64) *Invoice {
	inv, err := NewInvoice(uuid.New(), uuid.New(), uuid.New(), mustMonth(t, "03-2025"), LineItems{rentLine(amount)})
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	inv := createTestInvoice(t, 3500000)

	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	assert.True(t, inv.Total.Equals(valueobject.NewMoneyVNDFromInt(3500000)))
	assert.True(t, inv.PaidAmount.IsZero())
	assert.True(t, inv.Outstanding().Equals(inv.Total))
}

func TestNewInvoice_Validation(t *testing.T) {
	month := mustMonth(t, "03-2025")

	_, err := NewInvoice(uuid.Nil, uuid.New(), uuid.New(), month, LineItems{rentLine(100)})
	assert.Error(t, err)
	_, err = NewInvoice(uuid.New(), uuid.New(), uuid.New(), valueobject.BillingMonth{}, LineItems{rentLine(100)})
	assert.Error(t, err)
	_, err = NewInvoice(uuid.New(), uuid.New(), uuid.New(), month, LineItems{})
	assert.Error(t, err)
}

func TestInvoice_Reference(t *testing.T) {
	inv := createTestInvoice(t, 100)
	inv.Code = 50
	assert.Equal(t, "HD50", inv.Reference())
}

func TestInvoice_AddLineItem(t *testing.T) {
	inv := createTestInvoice(t, 3000000)

	serviceID := uuid.New()
	err := inv.AddLineItem(LineItem{
		Type:        LineItemTypeService,
		Description: "Dien",
		Quantity:    decimal.NewFromInt(30),
		UnitPrice:   valueobject.NewMoneyVNDFromInt(3500),
		Amount:      valueobject.NewMoneyVNDFromInt(105000),
		ServiceID:   &serviceID,
	})
	require.NoError(t, err)
	assert.True(t, inv.Total.Equals(valueobject.NewMoneyVNDFromInt(3105000)))

	require.NoError(t, inv.Issue(nil))
	assert.Error(t, inv.AddLineItem(rentLine(100)))
}

func TestInvoice_Issue(t *testing.T) {
	inv := createTestInvoice(t, 3500000)
	due := time.Now().AddDate(0, 0, 10)

	require.NoError(t, inv.Issue(&due))
	assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
	require.NotNil(t, inv.IssuedAt)
	assert.Len(t, inv.GetDomainEvents(), 1)

	assert.Error(t, inv.Issue(&due))
}

func TestInvoice_RecordPayment_PartialThenPaid(t *testing.T) {
	inv := createTestInvoice(t, 3500000)
	require.NoError(t, inv.Issue(nil))

	require.NoError(t, inv.RecordPayment(valueobject.NewMoneyVNDFromInt(2000000)))
	assert.Equal(t, InvoiceStatusPartial, inv.Status)
	assert.True(t, inv.Outstanding().Equals(valueobject.NewMoneyVNDFromInt(1500000)))

	require.NoError(t, inv.RecordPayment(valueobject.NewMoneyVNDFromInt(1500000)))
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.Outstanding().IsZero())

	// settled invoice takes no more payments
	assert.Error(t, inv.RecordPayment(valueobject.NewMoneyVNDFromInt(1)))
}

func TestInvoice_RecordPayment_Overpayment(t *testing.T) {
	inv := createTestInvoice(t, 3500000)
	require.NoError(t, inv.Issue(nil))

	err := inv.RecordPayment(valueobject.NewMoneyVNDFromInt(4000000))
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "EXCEEDS_OUTSTANDING", derr.Code)
	assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
	assert.True(t, inv.PaidAmount.IsZero())
}

func TestInvoice_RecordPayment_Rejections(t *testing.T) {
	inv := createTestInvoice(t, 100)

	// draft invoice is not payable
	assert.Error(t, inv.RecordPayment(valueobject.NewMoneyVNDFromInt(100)))

	require.NoError(t, inv.Issue(nil))
	assert.Error(t, inv.RecordPayment(valueobject.ZeroVND()))
	assert.Error(t, inv.RecordPayment(valueobject.NewMoneyVNDFromInt(-10)))
}

func TestInvoice_MarkOverdue(t *testing.T) {
	inv := createTestInvoice(t, 100)
	due := time.Now().AddDate(0, 0, -1)
	require.NoError(t, inv.Issue(&due))

	require.NoError(t, inv.MarkOverdue(time.Now()))
	assert.Equal(t, InvoiceStatusOverdue, inv.Status)

	// overdue invoices still take payments
	require.NoError(t, inv.RecordPayment(valueobject.NewMoneyVNDFromInt(100)))
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
}

func TestInvoice_MarkOverdue_NotDue(t *testing.T) {
	inv := createTestInvoice(t, 100)
	due := time.Now().AddDate(0, 0, 10)
	require.NoError(t, inv.Issue(&due))
	assert.Error(t, inv.MarkOverdue(time.Now()))
}

func TestInvoice_Cancel(t *testing.T) {
	inv := createTestInvoice(t, 100)
	require.NoError(t, inv.Issue(nil))
	require.NoError(t, inv.Cancel())
	assert.Equal(t, InvoiceStatusCancelled, inv.Status)

	inv2 := createTestInvoice(t, 100)
	require.NoError(t, inv2.Issue(nil))
	require.NoError(t, inv2.RecordPayment(valueobject.NewMoneyVNDFromInt(50)))
	assert.Error(t, inv2.Cancel())
}

func TestLineItems_ScanValue(t *testing.T) {
	serviceID := uuid.New()
	items := LineItems{
		rentLine(3000000),
		{
			Type:        LineItemTypeService,
			Description: "Nuoc",
			Quantity:    decimal.NewFromInt(4),
			UnitPrice:   valueobject.NewMoneyVNDFromInt(15000),
			Amount:      valueobject.NewMoneyVNDFromInt(60000),
			ServiceID:   &serviceID,
		},
	}

	v, err := items.Value()
	require.NoError(t, err)

	var scanned LineItems
	require.NoError(t, scanned.Scan(v))
	require.Len(t, scanned, 2)
	assert.Equal(t, LineItemTypeService, scanned[1].Type)
	assert.True(t, scanned[1].Amount.Equals(valueobject.NewMoneyVNDFromInt(60000)))
	assert.True(t, scanned.Total().Equals(valueobject.NewMoneyVNDFromInt(3060000)))
}

func TestLineItems_ScanNil(t *testing.T) {
	var items LineItems
	require.NoError(t, items.Scan(nil))
	assert.Empty(t, items)
}

func TestLineItem_JSONShape(t *testing.T) {
	data, err := json.Marshal(rentLine(3000000))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "RENT", m["type"])
	_, hasService := m["service_id"]
	assert.False(t, hasService)
}
