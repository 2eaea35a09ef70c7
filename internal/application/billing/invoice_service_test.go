package billing

import (
	"context"
	"testing"
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/leasing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGenerateFixture(t *testing.T) (*InvoiceService, *MockInvoiceRepository, *MockReadingRepository, *MockServiceRepository, *MockContractRepository) {
	invoiceRepo := new(MockInvoiceRepository)
	readingRepo := new(MockReadingRepository)
	serviceRepo := new(MockServiceRepository)
	contractRepo := new(MockContractRepository)
	transactionRepo := new(MockTransactionRepository)

	uow := &fakeUnitOfWork{bundle: fakeBundle{
		readings:     readingRepo,
		invoices:     invoiceRepo,
		transactions: transactionRepo,
	}}

	svc := NewInvoiceService(uow, invoiceRepo, serviceRepo, contractRepo, nil)
	return svc, invoiceRepo, readingRepo, serviceRepo, contractRepo
}

func newContractStarting(t *testing.T, start time.Time, price int64) *leasing.Contract {
	contract, err := leasing.NewContract(uuid.New(), uuid.New(), start, nil,
		valueobject.NewMoneyVNDFromInt(price), valueobject.ZeroVND())
	require.NoError(t, err)
	return contract
}

func newMeteredService(t *testing.T, name string, price int64, unit string) billing.UtilityService {
	service, err := billing.NewUtilityService(name, billing.ServiceTypeMetered, valueobject.NewMoneyVNDFromInt(price), unit)
	require.NoError(t, err)
	return *service
}

func newFixedService(t *testing.T, name string, price int64) billing.UtilityService {
	service, err := billing.NewUtilityService(name, billing.ServiceTypeFixed, valueobject.NewMoneyVNDFromInt(price), "month")
	require.NoError(t, err)
	return *service
}

func findLine(t *testing.T, resp *InvoiceResponse, itemType string, description string) *LineItemResponse {
	t.Helper()
	for i := range resp.LineItems {
		if resp.LineItems[i].Type == itemType && resp.LineItems[i].Description == description {
			return &resp.LineItems[i]
		}
	}
	t.Fatalf("line item %s %q not found", itemType, description)
	return nil
}

func TestInvoiceService_Generate_FullMonth(t *testing.T) {
	svc, invoiceRepo, readingRepo, serviceRepo, contractRepo := newGenerateFixture(t)

	// contract running since January, billed for a full June
	contract := newContractStarting(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3000000)
	electricity := newMeteredService(t, "Electricity", 3500, "kWh")
	internet := newFixedService(t, "Internet", 100000)

	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)
	reading, err := billing.NewMeterReading(contract.RoomID, electricity.ID, month, 120, 150, electricity.UnitPrice, "")
	require.NoError(t, err)

	contractRepo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	serviceRepo.On("FindEnabled", mock.Anything).Return([]billing.UtilityService{electricity, internet}, nil)
	invoiceRepo.On("ExistsForContractMonth", mock.Anything, contract.ID, month).Return(false, nil)
	readingRepo.On("FindUnbilledForUpdate", mock.Anything, contract.RoomID, month).Return([]billing.MeterReading{*reading}, nil)
	invoiceRepo.On("NextCode", mock.Anything).Return(int64(50), nil)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)
	readingRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*billing.MeterReading")).Return(nil)

	resp, err := svc.Generate(context.Background(), GenerateInvoiceRequest{
		ContractID: contract.ID,
		Month:      "06-2025",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), resp.Code)
	assert.Equal(t, "HD50", resp.Reference)
	assert.Equal(t, "UNPAID", resp.Status)

	rent := findLine(t, resp, "RENT", "Room rent")
	assert.True(t, rent.Amount.Equal(decimal.NewFromInt(3000000)))

	power := findLine(t, resp, "SERVICE", "Electricity (30 kWh)")
	assert.True(t, power.Amount.Equal(decimal.NewFromInt(105000)))

	net := findLine(t, resp, "SERVICE", "Internet")
	assert.True(t, net.Amount.Equal(decimal.NewFromInt(100000)))

	// 3,000,000 + 105,000 + 100,000
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(3205000)))

	readingRepo.AssertCalled(t, "SaveWithLock", mock.Anything, mock.MatchedBy(func(r *billing.MeterReading) bool {
		return r.IsBilled
	}))
}

func TestInvoiceService_Generate_ProratedRent(t *testing.T) {
	svc, invoiceRepo, readingRepo, serviceRepo, contractRepo := newGenerateFixture(t)

	// contract starts on day 15 of a 30-day month: 16 occupied days
	contract := newContractStarting(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), 3000000)
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)

	contractRepo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	serviceRepo.On("FindEnabled", mock.Anything).Return([]billing.UtilityService{}, nil)
	invoiceRepo.On("ExistsForContractMonth", mock.Anything, contract.ID, month).Return(false, nil)
	readingRepo.On("FindUnbilledForUpdate", mock.Anything, contract.RoomID, month).Return([]billing.MeterReading{}, nil)
	invoiceRepo.On("NextCode", mock.Anything).Return(int64(1), nil)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	resp, err := svc.Generate(context.Background(), GenerateInvoiceRequest{
		ContractID: contract.ID,
		Month:      "06-2025",
	})
	require.NoError(t, err)

	rent := findLine(t, resp, "RENT", "Room rent (16/30 days)")
	assert.True(t, rent.Amount.Equal(decimal.NewFromInt(1600000)),
		"got %s", rent.Amount.String())
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(1600000)))
}

func TestInvoiceService_Generate_RateChangeAfterRecording(t *testing.T) {
	svc, invoiceRepo, readingRepo, serviceRepo, contractRepo := newGenerateFixture(t)

	contract := newContractStarting(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3000000)
	electricity := newMeteredService(t, "Electricity", 3500, "kWh")

	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)
	reading, err := billing.NewMeterReading(contract.RoomID, electricity.ID, month, 120, 150, electricity.UnitPrice, "")
	require.NoError(t, err)

	// the rate goes up after the reading is taken
	repriced := electricity
	require.NoError(t, repriced.UpdatePrice(valueobject.NewMoneyVNDFromInt(4000)))

	contractRepo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	serviceRepo.On("FindEnabled", mock.Anything).Return([]billing.UtilityService{repriced}, nil)
	invoiceRepo.On("ExistsForContractMonth", mock.Anything, contract.ID, month).Return(false, nil)
	readingRepo.On("FindUnbilledForUpdate", mock.Anything, contract.RoomID, month).Return([]billing.MeterReading{*reading}, nil)
	invoiceRepo.On("NextCode", mock.Anything).Return(int64(60), nil)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)
	readingRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*billing.MeterReading")).Return(nil)

	resp, err := svc.Generate(context.Background(), GenerateInvoiceRequest{
		ContractID: contract.ID,
		Month:      "06-2025",
	})
	require.NoError(t, err)

	// the invoice charges the rate snapshotted at recording time, not the current one
	power := findLine(t, resp, "SERVICE", "Electricity (30 kWh)")
	assert.True(t, power.UnitPrice.Equal(decimal.NewFromInt(3500)))
	assert.True(t, power.Amount.Equal(decimal.NewFromInt(105000)),
		"got %s", power.Amount.String())
}

func TestInvoiceService_Generate_ExplicitStartDay(t *testing.T) {
	svc, invoiceRepo, readingRepo, serviceRepo, contractRepo := newGenerateFixture(t)

	// contract has run since January, but the caller asks for rent from day 15
	contract := newContractStarting(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3000000)
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)

	contractRepo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	serviceRepo.On("FindEnabled", mock.Anything).Return([]billing.UtilityService{}, nil)
	invoiceRepo.On("ExistsForContractMonth", mock.Anything, contract.ID, month).Return(false, nil)
	readingRepo.On("FindUnbilledForUpdate", mock.Anything, contract.RoomID, month).Return([]billing.MeterReading{}, nil)
	invoiceRepo.On("NextCode", mock.Anything).Return(int64(4), nil)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	startDay := 15
	resp, err := svc.Generate(context.Background(), GenerateInvoiceRequest{
		ContractID: contract.ID,
		Month:      "06-2025",
		StartDay:   &startDay,
	})
	require.NoError(t, err)

	rent := findLine(t, resp, "RENT", "Room rent (16/30 days)")
	assert.True(t, rent.Amount.Equal(decimal.NewFromInt(1600000)),
		"got %s", rent.Amount.String())
}

func TestInvoiceService_Generate_ExplicitStartDay_BeyondMonth(t *testing.T) {
	svc, invoiceRepo, readingRepo, serviceRepo, contractRepo := newGenerateFixture(t)

	contract := newContractStarting(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3000000)
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)

	contractRepo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	serviceRepo.On("FindEnabled", mock.Anything).Return([]billing.UtilityService{}, nil)
	invoiceRepo.On("ExistsForContractMonth", mock.Anything, contract.ID, month).Return(false, nil)
	readingRepo.On("FindUnbilledForUpdate", mock.Anything, contract.RoomID, month).Return([]billing.MeterReading{}, nil)

	startDay := 31 // June only has 30 days
	_, err = svc.Generate(context.Background(), GenerateInvoiceRequest{
		ContractID: contract.ID,
		Month:      "06-2025",
		StartDay:   &startDay,
	})
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_INPUT", derr.Code)
	invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvoiceService_Generate_ExplicitProratedRent(t *testing.T) {
	svc, invoiceRepo, readingRepo, serviceRepo, contractRepo := newGenerateFixture(t)

	contract := newContractStarting(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3000000)
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)

	contractRepo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	serviceRepo.On("FindEnabled", mock.Anything).Return([]billing.UtilityService{}, nil)
	invoiceRepo.On("ExistsForContractMonth", mock.Anything, contract.ID, month).Return(false, nil)
	readingRepo.On("FindUnbilledForUpdate", mock.Anything, contract.RoomID, month).Return([]billing.MeterReading{}, nil)
	invoiceRepo.On("NextCode", mock.Anything).Return(int64(6), nil)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	// the negotiated amount wins over any proration arithmetic
	prorated := decimal.NewFromInt(1234000)
	resp, err := svc.Generate(context.Background(), GenerateInvoiceRequest{
		ContractID:   contract.ID,
		Month:        "06-2025",
		ProratedRent: &prorated,
	})
	require.NoError(t, err)

	rent := findLine(t, resp, "RENT", "Room rent (prorated)")
	assert.True(t, rent.Amount.Equal(decimal.NewFromInt(1234000)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(1234000)))
}

func TestInvoiceService_Generate_Duplicate(t *testing.T) {
	svc, invoiceRepo, _, serviceRepo, contractRepo := newGenerateFixture(t)

	contract := newContractStarting(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3000000)
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)

	contractRepo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	serviceRepo.On("FindEnabled", mock.Anything).Return([]billing.UtilityService{}, nil)
	invoiceRepo.On("ExistsForContractMonth", mock.Anything, contract.ID, month).Return(true, nil)

	_, err = svc.Generate(context.Background(), GenerateInvoiceRequest{
		ContractID: contract.ID,
		Month:      "06-2025",
	})
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_EXISTS", derr.Code)
	invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvoiceService_Generate_MonthNotCovered(t *testing.T) {
	svc, _, _, _, contractRepo := newGenerateFixture(t)

	contract := newContractStarting(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), 3000000)
	contractRepo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)

	_, err := svc.Generate(context.Background(), GenerateInvoiceRequest{
		ContractID: contract.ID,
		Month:      "05-2025",
	})
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_INPUT", derr.Code)
}

func TestInvoiceService_Generate_WithExtrasAndDiscount(t *testing.T) {
	svc, invoiceRepo, readingRepo, serviceRepo, contractRepo := newGenerateFixture(t)

	contract := newContractStarting(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3000000)
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)

	contractRepo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	serviceRepo.On("FindEnabled", mock.Anything).Return([]billing.UtilityService{}, nil)
	invoiceRepo.On("ExistsForContractMonth", mock.Anything, contract.ID, month).Return(false, nil)
	readingRepo.On("FindUnbilledForUpdate", mock.Anything, contract.RoomID, month).Return([]billing.MeterReading{}, nil)
	invoiceRepo.On("NextCode", mock.Anything).Return(int64(2), nil)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	resp, err := svc.Generate(context.Background(), GenerateInvoiceRequest{
		ContractID: contract.ID,
		Month:      "06-2025",
		ExtraItems: []ExtraItemRequest{
			{Description: "Parking", Amount: decimal.NewFromInt(150000)},
			{Description: "Referral discount", Amount: decimal.NewFromInt(-100000)},
		},
	})
	require.NoError(t, err)

	parking := findLine(t, resp, "EXTRA", "Parking")
	assert.True(t, parking.Amount.Equal(decimal.NewFromInt(150000)))
	discount := findLine(t, resp, "DISCOUNT", "Referral discount")
	assert.True(t, discount.Amount.Equal(decimal.NewFromInt(-100000)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(3050000)))
}

func TestInvoiceService_Generate_ManualOverride(t *testing.T) {
	svc, invoiceRepo, readingRepo, serviceRepo, contractRepo := newGenerateFixture(t)

	contract := newContractStarting(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3000000)
	electricity := newMeteredService(t, "Electricity", 3500, "kWh")
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)
	reading, err := billing.NewMeterReading(contract.RoomID, electricity.ID, month, 120, 150, electricity.UnitPrice, "")
	require.NoError(t, err)

	contractRepo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	serviceRepo.On("FindEnabled", mock.Anything).Return([]billing.UtilityService{electricity}, nil)
	invoiceRepo.On("ExistsForContractMonth", mock.Anything, contract.ID, month).Return(false, nil)
	invoiceRepo.On("NextCode", mock.Anything).Return(int64(9), nil)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)
	readingRepo.On("FindByID", mock.Anything, reading.ID).Return(reading, nil)
	readingRepo.On("SaveWithLock", mock.Anything, reading).Return(nil)

	readingID := reading.ID
	resp, err := svc.Generate(context.Background(), GenerateInvoiceRequest{
		ContractID: contract.ID,
		Month:      "06-2025",
		LineItems: []LineItemRequest{
			{Type: "RENT", Description: "Room rent", Quantity: decimal.NewFromInt(1),
				UnitPrice: decimal.NewFromInt(2500000), Amount: decimal.NewFromInt(2500000)},
			{Type: "SERVICE", Description: "Electricity (30 kWh)", Quantity: decimal.NewFromInt(30),
				UnitPrice: decimal.NewFromInt(3500), Amount: decimal.NewFromInt(105000), ReadingID: &readingID},
		},
	})
	require.NoError(t, err)

	// the snapshot is used verbatim, no computed lines are added
	require.Len(t, resp.LineItems, 2)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(2605000)))
	assert.True(t, reading.IsBilled)

	// the explicit lines skip computation, so locking is never attempted
	readingRepo.AssertNotCalled(t, "FindUnbilledForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Generate_ManualOverride_BilledReading(t *testing.T) {
	svc, invoiceRepo, readingRepo, serviceRepo, contractRepo := newGenerateFixture(t)

	contract := newContractStarting(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3000000)
	electricity := newMeteredService(t, "Electricity", 3500, "kWh")
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)
	reading, err := billing.NewMeterReading(contract.RoomID, electricity.ID, month, 120, 150, electricity.UnitPrice, "")
	require.NoError(t, err)
	require.NoError(t, reading.MarkBilled(uuid.New()))

	contractRepo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	serviceRepo.On("FindEnabled", mock.Anything).Return([]billing.UtilityService{electricity}, nil)
	invoiceRepo.On("ExistsForContractMonth", mock.Anything, contract.ID, month).Return(false, nil)
	invoiceRepo.On("NextCode", mock.Anything).Return(int64(10), nil)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)
	readingRepo.On("FindByID", mock.Anything, reading.ID).Return(reading, nil)

	readingID := reading.ID
	_, err = svc.Generate(context.Background(), GenerateInvoiceRequest{
		ContractID: contract.ID,
		Month:      "06-2025",
		LineItems: []LineItemRequest{
			{Type: "SERVICE", Description: "Electricity", Quantity: decimal.NewFromInt(30),
				UnitPrice: decimal.NewFromInt(3500), Amount: decimal.NewFromInt(105000), ReadingID: &readingID},
		},
	})

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "CONFLICT", derr.Code)
}

func TestInvoiceService_Generate_Draft_ThenExtrasAndFinalize(t *testing.T) {
	svc, invoiceRepo, readingRepo, serviceRepo, contractRepo := newGenerateFixture(t)

	contract := newContractStarting(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3000000)
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)

	contractRepo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	serviceRepo.On("FindEnabled", mock.Anything).Return([]billing.UtilityService{}, nil)
	invoiceRepo.On("ExistsForContractMonth", mock.Anything, contract.ID, month).Return(false, nil)
	readingRepo.On("FindUnbilledForUpdate", mock.Anything, contract.RoomID, month).Return([]billing.MeterReading{}, nil)
	invoiceRepo.On("NextCode", mock.Anything).Return(int64(3), nil)

	var saved *billing.Invoice
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*billing.Invoice) }).Return(nil)

	resp, err := svc.Generate(context.Background(), GenerateInvoiceRequest{
		ContractID: contract.ID,
		Month:      "06-2025",
		Draft:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.Nil(t, resp.IssuedAt)

	// a draft accepts extra charges and the total follows
	invoiceRepo.On("FindByID", mock.Anything, saved.ID).Return(saved, nil)
	invoiceRepo.On("SaveWithLock", mock.Anything, saved).Return(nil)

	resp, err = svc.AddExtraCharges(context.Background(), saved.ID, UpdateInvoiceRequest{
		ExtraItems: []ExtraItemRequest{{Description: "Cleaning", Amount: decimal.NewFromInt(200000)}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(3200000)))
	assert.Equal(t, "DRAFT", resp.Status)

	due := time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)
	resp, err = svc.Finalize(context.Background(), saved.ID, FinalizeInvoiceRequest{DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, "UNPAID", resp.Status)
	require.NotNil(t, resp.DueDate)

	// once issued, further extra charges are rejected
	_, err = svc.AddExtraCharges(context.Background(), saved.ID, UpdateInvoiceRequest{
		ExtraItems: []ExtraItemRequest{{Description: "Late fee", Amount: decimal.NewFromInt(50000)}},
	})
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_STATE", derr.Code)
}

func TestInvoiceService_SweepOverdue(t *testing.T) {
	svc, invoiceRepo, _, _, _ := newGenerateFixture(t)

	month, err := valueobject.ParseBillingMonth("05-2025")
	require.NoError(t, err)

	due := time.Now().AddDate(0, 0, -5)
	overdue, err := billing.NewInvoice(uuid.New(), uuid.New(), uuid.New(), month, billing.LineItems{{
		Type:        billing.LineItemTypeRent,
		Description: "Room rent",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   valueobject.NewMoneyVNDFromInt(100),
		Amount:      valueobject.NewMoneyVNDFromInt(100),
	}})
	require.NoError(t, err)
	require.NoError(t, overdue.Issue(&due))

	unpaidStatus := billing.InvoiceStatusUnpaid
	partialStatus := billing.InvoiceStatusPartial
	invoiceRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f billing.InvoiceFilter) bool {
		return f.Status != nil && *f.Status == unpaidStatus
	})).Return([]billing.Invoice{*overdue}, int64(1), nil)
	invoiceRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f billing.InvoiceFilter) bool {
		return f.Status != nil && *f.Status == partialStatus
	})).Return([]billing.Invoice{}, int64(0), nil)
	invoiceRepo.On("SaveWithLock", mock.Anything, mock.MatchedBy(func(i *billing.Invoice) bool {
		return i.Status == billing.InvoiceStatusOverdue
	})).Return(nil)

	count, err := svc.SweepOverdue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	invoiceRepo.AssertExpectations(t)
}
