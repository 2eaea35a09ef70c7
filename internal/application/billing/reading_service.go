package billing

import (
	"context"
	"errors"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/property"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReadingService records and maintains meter readings
type ReadingService struct {
	readingRepo billing.ReadingRepository
	serviceRepo billing.ServiceRepository
	roomRepo    property.RoomRepository
	logger      *zap.Logger
}

// NewReadingService creates a new ReadingService
func NewReadingService(
	readingRepo billing.ReadingRepository,
	serviceRepo billing.ServiceRepository,
	roomRepo property.RoomRepository,
	logger *zap.Logger,
) *ReadingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReadingService{
		readingRepo: readingRepo,
		serviceRepo: serviceRepo,
		roomRepo:    roomRepo,
		logger:      logger,
	}
}

// Record records a meter reading for one room, service and month. When the
// request omits the old index, the previous reading's new index is carried
// forward; the first reading of a meter defaults to zero.
func (s *ReadingService) Record(ctx context.Context, req RecordReadingRequest) (*ReadingResponse, error) {
	month, err := valueobject.ParseBillingMonth(req.Month)
	if err != nil {
		return nil, err
	}

	if _, err := s.roomRepo.FindByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_ROOM", "Room not found")
		}
		return nil, err
	}

	service, err := s.serviceRepo.FindByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_SERVICE", "Service not found")
		}
		return nil, err
	}
	if !service.IsMetered() {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Readings can only be recorded for metered services")
	}

	exists, err := s.readingRepo.ExistsForMonth(ctx, req.RoomID, req.ServiceID, month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A reading for this room, service and month already exists")
	}

	oldIndex := int64(0)
	if req.OldIndex != nil {
		oldIndex = *req.OldIndex
	} else {
		latest, err := s.readingRepo.FindLatestIndex(ctx, req.RoomID, req.ServiceID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if latest != nil {
			oldIndex = latest.NewIndex
		}
	}

	// the service rate is snapshotted onto the reading here; raising the
	// rate later never changes an already recorded charge
	var reading *billing.MeterReading
	if req.IsMeterReset {
		if req.MaxMeterValue == nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Meter reset requires the meter's maximum value")
		}
		reading, err = billing.NewMeterReadingReset(req.RoomID, req.ServiceID, month, oldIndex, req.NewIndex, *req.MaxMeterValue, service.UnitPrice, req.Note)
	} else {
		reading, err = billing.NewMeterReading(req.RoomID, req.ServiceID, month, oldIndex, req.NewIndex, service.UnitPrice, req.Note)
	}
	if err != nil {
		return nil, err
	}

	if err := s.readingRepo.Save(ctx, reading); err != nil {
		return nil, err
	}

	s.logger.Info("Meter reading recorded",
		zap.String("reading_id", reading.ID.String()),
		zap.String("room_id", req.RoomID.String()),
		zap.String("month", month.String()),
		zap.Int64("usage", reading.Usage))
	return ToReadingResponse(reading), nil
}

// Get returns one reading
func (s *ReadingService) Get(ctx context.Context, id uuid.UUID) (*ReadingResponse, error) {
	reading, err := s.readingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToReadingResponse(reading), nil
}

// List returns readings matching the filter
func (s *ReadingService) List(ctx context.Context, filter billing.ReadingFilter) ([]ReadingResponse, int64, error) {
	readings, total, err := s.readingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReadingResponse, 0, len(readings))
	for i := range readings {
		responses = append(responses, *ToReadingResponse(&readings[i]))
	}
	return responses, total, nil
}

// Correct fixes the indexes of an unbilled reading
func (s *ReadingService) Correct(ctx context.Context, id uuid.UUID, req CorrectReadingRequest) (*ReadingResponse, error) {
	reading, err := s.readingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := reading.Correct(req.OldIndex, req.NewIndex, req.Note); err != nil {
		return nil, err
	}

	if err := s.readingRepo.SaveWithLock(ctx, reading); err != nil {
		return nil, err
	}
	return ToReadingResponse(reading), nil
}

// Delete removes an unbilled reading
func (s *ReadingService) Delete(ctx context.Context, id uuid.UUID) error {
	reading, err := s.readingRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if reading.IsBilled {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a reading that is already billed")
	}
	return s.readingRepo.Delete(ctx, id)
}
