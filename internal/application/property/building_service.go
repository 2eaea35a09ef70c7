package property

import (
	"context"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/property"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BuildingService handles building-related business operations
type BuildingService struct {
	buildingRepo property.BuildingRepository
	roomRepo     property.RoomRepository
	logger       *zap.Logger
}

// NewBuildingService creates a new BuildingService
func NewBuildingService(buildingRepo property.BuildingRepository, roomRepo property.RoomRepository, logger *zap.Logger) *BuildingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuildingService{
		buildingRepo: buildingRepo,
		roomRepo:     roomRepo,
		logger:       logger,
	}
}

// Create creates a new building
func (s *BuildingService) Create(ctx context.Context, req CreateBuildingRequest) (*BuildingResponse, error) {
	building, err := property.NewBuilding(req.Name, req.Address)
	if err != nil {
		return nil, err
	}
	building.Note = req.Note

	if err := s.buildingRepo.Save(ctx, building); err != nil {
		return nil, err
	}

	s.logger.Info("Building created",
		zap.String("building_id", building.ID.String()),
		zap.String("name", building.Name))
	return ToBuildingResponse(building, 0), nil
}

// Get returns one building with its room count
func (s *BuildingService) Get(ctx context.Context, id uuid.UUID) (*BuildingResponse, error) {
	building, err := s.buildingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.roomRepo.CountByBuilding(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBuildingResponse(building, count), nil
}

// List returns buildings matching the filter
func (s *BuildingService) List(ctx context.Context, filter shared.Filter) ([]BuildingResponse, int64, error) {
	buildings, total, err := s.buildingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BuildingResponse, 0, len(buildings))
	for i := range buildings {
		count, err := s.roomRepo.CountByBuilding(ctx, buildings[i].ID)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, *ToBuildingResponse(&buildings[i], count))
	}
	return responses, total, nil
}

// Update updates a building
func (s *BuildingService) Update(ctx context.Context, id uuid.UUID, req UpdateBuildingRequest) (*BuildingResponse, error) {
	building, err := s.buildingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := building.Update(req.Name, req.Address, req.Note); err != nil {
		return nil, err
	}

	if err := s.buildingRepo.Save(ctx, building); err != nil {
		return nil, err
	}

	count, err := s.roomRepo.CountByBuilding(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBuildingResponse(building, count), nil
}

// Delete removes a building without rooms
func (s *BuildingService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.buildingRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.roomRepo.CountByBuilding(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CONFLICT", "Cannot delete a building that still has rooms")
	}

	if err := s.buildingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Building deleted", zap.String("building_id", id.String()))
	return nil
}
