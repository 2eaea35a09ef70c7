package billing

import (
	"context"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UtilityServiceService manages the catalog of billable services
type UtilityServiceService struct {
	serviceRepo billing.ServiceRepository
	readingRepo billing.ReadingRepository
	logger      *zap.Logger
}

// NewUtilityServiceService creates a new UtilityServiceService
func NewUtilityServiceService(serviceRepo billing.ServiceRepository, readingRepo billing.ReadingRepository, logger *zap.Logger) *UtilityServiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UtilityServiceService{
		serviceRepo: serviceRepo,
		readingRepo: readingRepo,
		logger:      logger,
	}
}

// Create creates a new utility service
func (s *UtilityServiceService) Create(ctx context.Context, req CreateServiceRequest) (*ServiceResponse, error) {
	service, err := billing.NewUtilityService(req.Name, billing.ServiceType(req.Type), valueobject.NewMoneyVND(req.UnitPrice), req.Unit)
	if err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}

	s.logger.Info("Utility service created",
		zap.String("service_id", service.ID.String()),
		zap.String("name", service.Name),
		zap.String("type", service.Type.String()))
	return ToServiceResponse(service), nil
}

// Get returns one utility service
func (s *UtilityServiceService) Get(ctx context.Context, id uuid.UUID) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToServiceResponse(service), nil
}

// List returns utility services matching the filter
func (s *UtilityServiceService) List(ctx context.Context, filter shared.Filter) ([]ServiceResponse, int64, error) {
	services, total, err := s.serviceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ServiceResponse, 0, len(services))
	for i := range services {
		responses = append(responses, *ToServiceResponse(&services[i]))
	}
	return responses, total, nil
}

// Update updates a utility service. Invoices already generated keep their
// original line amounts.
func (s *UtilityServiceService) Update(ctx context.Context, id uuid.UUID, req UpdateServiceRequest) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := service.Update(req.Name, valueobject.NewMoneyVND(req.UnitPrice), req.Unit); err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}
	return ToServiceResponse(service), nil
}

// SetEnabled toggles the service in or out of invoice generation
func (s *UtilityServiceService) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if enabled {
		service.Enable()
	} else {
		service.Disable()
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}
	return ToServiceResponse(service), nil
}
