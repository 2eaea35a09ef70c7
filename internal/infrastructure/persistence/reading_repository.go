package persistence

import (
	"context"
	"errors"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReadingRepository implements ReadingRepository using GORM
type GormReadingRepository struct {
	db *gorm.DB
}

// NewGormReadingRepository creates a new GormReadingRepository
func NewGormReadingRepository(db *gorm.DB) *GormReadingRepository {
	return &GormReadingRepository{db: db}
}

// FindByID finds a meter reading by its ID
func (r *GormReadingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MeterReading, error) {
	var model models.ReadingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all meter readings matching the filter
func (r *GormReadingRepository) FindAll(ctx context.Context, filter billing.ReadingFilter) ([]billing.MeterReading, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReadingModel{})
	if filter.RoomID != nil {
		query = query.Where("room_id = ?", *filter.RoomID)
	}
	if filter.ServiceID != nil {
		query = query.Where("service_id = ?", *filter.ServiceID)
	}
	if filter.Month != nil {
		query = query.Where("month = ?", *filter.Month)
	}
	if filter.IsBilled != nil {
		query = query.Where("is_billed = ?", *filter.IsBilled)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ReadingSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var readingModels []models.ReadingModel
	if err := query.Find(&readingModels).Error; err != nil {
		return nil, 0, err
	}

	readings := make([]billing.MeterReading, len(readingModels))
	for i, model := range readingModels {
		readings[i] = *model.ToDomain()
	}
	return readings, total, nil
}

// FindUnbilledForUpdate locks the unbilled readings of a room and month with
// FOR UPDATE so concurrent invoice generation serializes on them. Only
// meaningful inside a transaction.
func (r *GormReadingRepository) FindUnbilledForUpdate(ctx context.Context, roomID uuid.UUID, month valueobject.BillingMonth) ([]billing.MeterReading, error) {
	var readingModels []models.ReadingModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_id = ? AND month = ? AND is_billed = ?", roomID, month, false).
		Order("created_at ASC").
		Find(&readingModels).Error; err != nil {
		return nil, err
	}

	readings := make([]billing.MeterReading, len(readingModels))
	for i, model := range readingModels {
		readings[i] = *model.ToDomain()
	}
	return readings, nil
}

// FindLatestIndex finds the most recent reading of a room and service,
// used to carry the closing index forward as the next opening index
func (r *GormReadingRepository) FindLatestIndex(ctx context.Context, roomID, serviceID uuid.UUID) (*billing.MeterReading, error) {
	var model models.ReadingModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND service_id = ?", roomID, serviceID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsForMonth reports whether a reading already exists for the room,
// service and month
func (r *GormReadingRepository) ExistsForMonth(ctx context.Context, roomID, serviceID uuid.UUID, month valueobject.BillingMonth) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReadingModel{}).
		Where("room_id = ? AND service_id = ? AND month = ?", roomID, serviceID, month).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a meter reading
func (r *GormReadingRepository) Save(ctx context.Context, reading *billing.MeterReading) error {
	model := models.ReadingModelFromDomain(reading)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a meter reading with optimistic locking (version check).
// Returns ErrConcurrencyConflict if the version has changed underneath.
func (r *GormReadingRepository) SaveWithLock(ctx context.Context, reading *billing.MeterReading) error {
	model := models.ReadingModelFromDomain(reading)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", reading.ID, reading.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a meter reading
func (r *GormReadingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReadingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormReadingRepository implements ReadingRepository
var _ billing.ReadingRepository = (*GormReadingRepository)(nil)
