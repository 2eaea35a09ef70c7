package persistence

import (
	"context"
	"errors"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormServiceRepository implements ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByID finds a utility service by its ID
func (r *GormServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.UtilityService, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all utility services matching the filter
func (r *GormServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.UtilityService, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ServiceModel{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ServiceSortFields, "name")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var serviceModels []models.ServiceModel
	if err := query.Find(&serviceModels).Error; err != nil {
		return nil, 0, err
	}

	services := make([]billing.UtilityService, len(serviceModels))
	for i, model := range serviceModels {
		services[i] = *model.ToDomain()
	}
	return services, total, nil
}

// FindEnabled finds all enabled services in a stable order
func (r *GormServiceRepository) FindEnabled(ctx context.Context) ([]billing.UtilityService, error) {
	var serviceModels []models.ServiceModel
	if err := r.db.WithContext(ctx).
		Where("is_enabled = ?", true).
		Order("name ASC").
		Find(&serviceModels).Error; err != nil {
		return nil, err
	}

	services := make([]billing.UtilityService, len(serviceModels))
	for i, model := range serviceModels {
		services[i] = *model.ToDomain()
	}
	return services, nil
}

// Save creates or updates a utility service
func (r *GormServiceRepository) Save(ctx context.Context, service *billing.UtilityService) error {
	model := models.ServiceModelFromDomain(service)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a utility service
func (r *GormServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ServiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormServiceRepository implements ServiceRepository
var _ billing.ServiceRepository = (*GormServiceRepository)(nil)
