package repository

import (
	"context"
	"time"

	"rentdesk/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) WithTx(tx *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: tx}
}

func (r *BudgetRepository) Create(ctx context.Context, b *models.Budget) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BudgetRepository) GetByID(ctx context.Context, id string) (*models.Budget, error) {
	var b models.Budget
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepository) ListByProperty(ctx context.Context, propertyID string) ([]models.Budget, error) {
	var list []models.Budget
	err := r.db.WithContext(ctx).Where("property_id = ?", propertyID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// AddAmount atomically adds delta to current_amount.
func (r *BudgetRepository) AddAmount(ctx context.Context, id string, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&models.Budget{}).Where("id = ?", id).
		Update("current_amount", gorm.Expr("current_amount + ?", delta)).Error
}

// ResetFrequency zeroes every budget of the given frequency.
func (r *BudgetRepository) ResetFrequency(ctx context.Context, frequency string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Budget{}).Where("frequency = ?", frequency).
		Updates(map[string]interface{}{"current_amount": decimal.Zero, "last_reset_at": at})
	return res.RowsAffected, res.Error
}
