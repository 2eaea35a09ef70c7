package billing

import (
	"context"
	"testing"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/property"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReadingFixture(t *testing.T) (*ReadingService, *MockReadingRepository, *MockServiceRepository, *MockRoomRepository) {
	readingRepo := new(MockReadingRepository)
	serviceRepo := new(MockServiceRepository)
	roomRepo := new(MockRoomRepository)
	return NewReadingService(readingRepo, serviceRepo, roomRepo, nil), readingRepo, serviceRepo, roomRepo
}

func newBillingRoom(t *testing.T) *property.Room {
	room, err := property.NewRoom(uuid.New(), "P101", valueobject.NewMoneyVNDFromInt(3000000))
	require.NoError(t, err)
	return room
}

func TestReadingService_Record_CarriesForwardOldIndex(t *testing.T) {
	svc, readingRepo, serviceRepo, roomRepo := newReadingFixture(t)

	room := newBillingRoom(t)
	electricity := newMeteredService(t, "Electricity", 3500, "kWh")
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)
	prevMonth := month.Previous()

	previous, err := billing.NewMeterReading(room.ID, electricity.ID, prevMonth, 90, 120, electricity.UnitPrice, "")
	require.NoError(t, err)

	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	serviceRepo.On("FindByID", mock.Anything, electricity.ID).Return(&electricity, nil)
	readingRepo.On("ExistsForMonth", mock.Anything, room.ID, electricity.ID, month).Return(false, nil)
	readingRepo.On("FindLatestIndex", mock.Anything, room.ID, electricity.ID).Return(previous, nil)
	readingRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.MeterReading")).Return(nil)

	resp, err := svc.Record(context.Background(), RecordReadingRequest{
		RoomID:    room.ID,
		ServiceID: electricity.ID,
		Month:     "06-2025",
		NewIndex:  150,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(120), resp.OldIndex)
	assert.Equal(t, int64(30), resp.Usage)
	// 30 kWh at the current rate of 3,500
	assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(105000)))
}

func TestReadingService_Record_FirstReadingDefaultsToZero(t *testing.T) {
	svc, readingRepo, serviceRepo, roomRepo := newReadingFixture(t)

	room := newBillingRoom(t)
	water := newMeteredService(t, "Water", 15000, "m3")
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)

	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	serviceRepo.On("FindByID", mock.Anything, water.ID).Return(&water, nil)
	readingRepo.On("ExistsForMonth", mock.Anything, room.ID, water.ID, month).Return(false, nil)
	readingRepo.On("FindLatestIndex", mock.Anything, room.ID, water.ID).Return(nil, shared.ErrNotFound)
	readingRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Record(context.Background(), RecordReadingRequest{
		RoomID:    room.ID,
		ServiceID: water.ID,
		Month:     "06-2025",
		NewIndex:  8,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.OldIndex)
	assert.Equal(t, int64(8), resp.Usage)
}

func TestReadingService_Record_MeterReset(t *testing.T) {
	svc, readingRepo, serviceRepo, roomRepo := newReadingFixture(t)

	room := newBillingRoom(t)
	water := newMeteredService(t, "Water", 15000, "m3")
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)

	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	serviceRepo.On("FindByID", mock.Anything, water.ID).Return(&water, nil)
	readingRepo.On("ExistsForMonth", mock.Anything, room.ID, water.ID, month).Return(false, nil)
	readingRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	oldIndex := int64(95)
	maxValue := int64(100)
	resp, err := svc.Record(context.Background(), RecordReadingRequest{
		RoomID:        room.ID,
		ServiceID:     water.ID,
		Month:         "06-2025",
		OldIndex:      &oldIndex,
		NewIndex:      5,
		IsMeterReset:  true,
		MaxMeterValue: &maxValue,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.Usage)
	assert.True(t, resp.IsMeterReset)
}

func TestReadingService_Record_ResetWithoutMaxValue(t *testing.T) {
	svc, readingRepo, serviceRepo, roomRepo := newReadingFixture(t)

	room := newBillingRoom(t)
	water := newMeteredService(t, "Water", 15000, "m3")
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)

	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	serviceRepo.On("FindByID", mock.Anything, water.ID).Return(&water, nil)
	readingRepo.On("ExistsForMonth", mock.Anything, room.ID, water.ID, month).Return(false, nil)

	oldIndex := int64(95)
	_, err = svc.Record(context.Background(), RecordReadingRequest{
		RoomID:       room.ID,
		ServiceID:    water.ID,
		Month:        "06-2025",
		OldIndex:     &oldIndex,
		NewIndex:     5,
		IsMeterReset: true,
	})

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_INPUT", derr.Code)
	readingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReadingService_Record_DecreasingIndexWithoutReset(t *testing.T) {
	svc, readingRepo, serviceRepo, roomRepo := newReadingFixture(t)

	room := newBillingRoom(t)
	water := newMeteredService(t, "Water", 15000, "m3")
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)

	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	serviceRepo.On("FindByID", mock.Anything, water.ID).Return(&water, nil)
	readingRepo.On("ExistsForMonth", mock.Anything, room.ID, water.ID, month).Return(false, nil)

	oldIndex := int64(95)
	_, err = svc.Record(context.Background(), RecordReadingRequest{
		RoomID:    room.ID,
		ServiceID: water.ID,
		Month:     "06-2025",
		OldIndex:  &oldIndex,
		NewIndex:  5,
	})

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_INPUT", derr.Code)
	readingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReadingService_Record_DuplicateMonth(t *testing.T) {
	svc, readingRepo, serviceRepo, roomRepo := newReadingFixture(t)

	room := newBillingRoom(t)
	electricity := newMeteredService(t, "Electricity", 3500, "kWh")
	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)

	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	serviceRepo.On("FindByID", mock.Anything, electricity.ID).Return(&electricity, nil)
	readingRepo.On("ExistsForMonth", mock.Anything, room.ID, electricity.ID, month).Return(true, nil)

	_, err = svc.Record(context.Background(), RecordReadingRequest{
		RoomID:    room.ID,
		ServiceID: electricity.ID,
		Month:     "06-2025",
		NewIndex:  150,
	})

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_EXISTS", derr.Code)
}

func TestReadingService_Record_FixedServiceRejected(t *testing.T) {
	svc, _, serviceRepo, roomRepo := newReadingFixture(t)

	room := newBillingRoom(t)
	internet := newFixedService(t, "Internet", 100000)

	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	serviceRepo.On("FindByID", mock.Anything, internet.ID).Return(&internet, nil)

	_, err := svc.Record(context.Background(), RecordReadingRequest{
		RoomID:    room.ID,
		ServiceID: internet.ID,
		Month:     "06-2025",
		NewIndex:  10,
	})

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_SERVICE", derr.Code)
}

func TestReadingService_Delete_BilledRejected(t *testing.T) {
	svc, readingRepo, _, _ := newReadingFixture(t)

	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)
	reading, err := billing.NewMeterReading(uuid.New(), uuid.New(), month, 90, 120, valueobject.NewMoneyVNDFromInt(3500), "")
	require.NoError(t, err)
	require.NoError(t, reading.MarkBilled(uuid.New()))

	readingRepo.On("FindByID", mock.Anything, reading.ID).Return(reading, nil)

	err = svc.Delete(context.Background(), reading.ID)
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_STATE", derr.Code)
	readingRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
