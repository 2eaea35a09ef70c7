package leasing

import (
	"context"
	"errors"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/leasing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantService handles tenant registration and maintenance
type TenantService struct {
	tenantRepo   leasing.TenantRepository
	contractRepo leasing.ContractRepository
	logger       *zap.Logger
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo leasing.TenantRepository, contractRepo leasing.ContractRepository, logger *zap.Logger) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{
		tenantRepo:   tenantRepo,
		contractRepo: contractRepo,
		logger:       logger,
	}
}

// Create registers a new tenant. Phone numbers are unique.
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	existing, err := s.tenantRepo.FindByPhone(ctx, req.Phone)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A tenant with this phone already exists")
	}

	tenant, err := leasing.NewTenant(req.FullName, req.Phone)
	if err != nil {
		return nil, err
	}
	tenant.Email = req.Email
	tenant.IDNumber = req.IDNumber
	tenant.Note = req.Note

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("Tenant registered",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("phone", tenant.Phone))
	return ToTenantResponse(tenant), nil
}

// Get returns one tenant
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTenantResponse(tenant), nil
}

// List returns tenants matching the filter
func (s *TenantService) List(ctx context.Context, filter shared.Filter) ([]TenantResponse, int64, error) {
	tenants, total, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		responses = append(responses, *ToTenantResponse(&tenants[i]))
	}
	return responses, total, nil
}

// Update updates a tenant
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if tenant.Phone != req.Phone {
		existing, err := s.tenantRepo.FindByPhone(ctx, req.Phone)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A tenant with this phone already exists")
		}
	}

	if err := tenant.Update(req.FullName, req.Phone, req.Email, req.IDNumber, req.Note); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return ToTenantResponse(tenant), nil
}

// Delete removes a tenant with no contract history
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tenantRepo.FindByID(ctx, id); err != nil {
		return err
	}

	contracts, err := s.contractRepo.FindByTenant(ctx, id)
	if err != nil {
		return err
	}
	if len(contracts) > 0 {
		return shared.NewDomainError("CONFLICT", "Cannot delete a tenant with contract history")
	}

	return s.tenantRepo.Delete(ctx, id)
}
