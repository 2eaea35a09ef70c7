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

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a payment transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.PaymentTransaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoice finds all payments applied to an invoice, oldest first
func (r *GormTransactionRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]billing.PaymentTransaction, error) {
	var txModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("paid_at ASC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}

	txs := make([]billing.PaymentTransaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, nil
}

// FindByExternalRef finds a payment by its bank-side reference, the
// idempotency key for webhook payments
func (r *GormTransactionRepository) FindByExternalRef(ctx context.Context, ref string) (*billing.PaymentTransaction, error) {
	if ref == "" {
		return nil, shared.ErrNotFound
	}
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).First(&model, "external_ref = ?", ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all payment transactions matching the filter
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.PaymentTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("external_ref ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, TransactionSortFields, "paid_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var txModels []models.TransactionModel
	if err := query.Find(&txModels).Error; err != nil {
		return nil, 0, err
	}

	txs := make([]billing.PaymentTransaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, total, nil
}

// FindUnmatched returns bank transfers without an invoice, newest first
func (r *GormTransactionRepository) FindUnmatched(ctx context.Context) ([]billing.PaymentTransaction, error) {
	var txModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id IS NULL").
		Order("paid_at DESC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}

	txs := make([]billing.PaymentTransaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, nil
}

// Save creates a payment transaction
func (r *GormTransactionRepository) Save(ctx context.Context, tx *billing.PaymentTransaction) error {
	model := models.TransactionModelFromDomain(tx)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing transaction. The only mutation a
// transaction supports is linking it to an invoice.
func (r *GormTransactionRepository) Update(ctx context.Context, tx *billing.PaymentTransaction) error {
	model := models.TransactionModelFromDomain(tx)
	result := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"invoice_id": model.InvoiceID,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ billing.TransactionRepository = (*GormTransactionRepository)(nil)
