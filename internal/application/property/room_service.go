package property

import (
	"context"
	"errors"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/property"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoomService handles room-related business operations
type RoomService struct {
	roomRepo     property.RoomRepository
	buildingRepo property.BuildingRepository
	logger       *zap.Logger
}

// NewRoomService creates a new RoomService
func NewRoomService(roomRepo property.RoomRepository, buildingRepo property.BuildingRepository, logger *zap.Logger) *RoomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{
		roomRepo:     roomRepo,
		buildingRepo: buildingRepo,
		logger:       logger,
	}
}

// Create creates a new room inside a building
func (s *RoomService) Create(ctx context.Context, req CreateRoomRequest) (*RoomResponse, error) {
	if _, err := s.buildingRepo.FindByID(ctx, req.BuildingID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_BUILDING", "Building not found")
		}
		return nil, err
	}

	room, err := property.NewRoom(req.BuildingID, req.Name, valueobject.NewMoneyVND(req.Price))
	if err != nil {
		return nil, err
	}
	room.Area = req.Area
	room.Note = req.Note

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("building_id", req.BuildingID.String()),
		zap.String("name", room.Name))
	return ToRoomResponse(room), nil
}

// Get returns one room
func (s *RoomService) Get(ctx context.Context, id uuid.UUID) (*RoomResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToRoomResponse(room), nil
}

// List returns rooms matching the filter
func (s *RoomService) List(ctx context.Context, filter property.RoomFilter) ([]RoomResponse, int64, error) {
	rooms, total, err := s.roomRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RoomResponse, 0, len(rooms))
	for i := range rooms {
		responses = append(responses, *ToRoomResponse(&rooms[i]))
	}
	return responses, total, nil
}

// Update updates a room's attributes
func (s *RoomService) Update(ctx context.Context, id uuid.UUID, req UpdateRoomRequest) (*RoomResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := room.Update(req.Name, valueobject.NewMoneyVND(req.Price), req.Area, req.Note); err != nil {
		return nil, err
	}

	if err := s.roomRepo.SaveWithLock(ctx, room); err != nil {
		return nil, err
	}
	return ToRoomResponse(room), nil
}

// SetMaintenance toggles a room in or out of maintenance
func (s *RoomService) SetMaintenance(ctx context.Context, id uuid.UUID, maintenance bool) (*RoomResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if maintenance {
		if err := room.MarkMaintenance(); err != nil {
			return nil, err
		}
	} else {
		room.MarkAvailable()
	}

	if err := s.roomRepo.SaveWithLock(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("Room status changed",
		zap.String("room_id", room.ID.String()),
		zap.String("status", room.Status.String()))
	return ToRoomResponse(room), nil
}

// Delete removes a room that is not rented
func (s *RoomService) Delete(ctx context.Context, id uuid.UUID) error {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if room.Status == property.RoomStatusRented {
		return shared.NewDomainError("CONFLICT", "Cannot delete a rented room")
	}
	return s.roomRepo.Delete(ctx, id)
}
