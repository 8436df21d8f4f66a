package repository

import (
	"context"
	"time"

	"rentdesk/internal/domain"
	"rentdesk/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) WithTx(tx *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: tx}
}

func (r *TransactionRepository) Create(ctx context.Context, txns ...*models.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(txns).Error
}

// TransactionFilter narrows listing queries. Zero values are ignored.
type TransactionFilter struct {
	UserID     string
	PropertyID string
	Type       string
	Status     string
	References []string
	From       time.Time // inclusive
	To         time.Time // exclusive
	Limit      int
	Offset     int
}

func (r *TransactionRepository) List(ctx context.Context, f TransactionFilter) ([]models.Transaction, error) {
	q := r.db.WithContext(ctx).Model(&models.Transaction{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.PropertyID != "" {
		q = q.Where("property_id = ?", f.PropertyID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if len(f.References) > 0 {
		q = q.Where("reference IN ?", f.References)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var list []models.Transaction
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *TransactionRepository) ListByReferenceID(ctx context.Context, referenceID string) ([]models.Transaction, error) {
	var list []models.Transaction
	err := r.db.WithContext(ctx).Where("reference_id = ?", referenceID).Order("created_at ASC").Find(&list).Error
	return list, err
}

// MarkCompleted flips one PENDING row to COMPLETED. It reports false when the
// row was already settled.
func (r *TransactionRepository) MarkCompleted(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, domain.TransactionStatusPending).
		Update("status", domain.TransactionStatusCompleted)
	return res.RowsAffected == 1, res.Error
}
