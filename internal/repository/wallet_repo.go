package repository

import (
	"context"
	"errors"

	"rentdesk/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInsufficientBalance = errors.New("insufficient wallet balance")

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) WithTx(tx *gorm.DB) *WalletRepository {
	return &WalletRepository{db: tx}
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetOrCreate(ctx context.Context, userID, currency string) (*models.Wallet, error) {
	w, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if currency == "" {
		currency = "USD"
	}
	w = &models.Wallet{UserID: userID, Balance: decimal.Zero, Currency: currency, IsActive: true}
	if err := r.db.WithContext(ctx).Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// Credit adds amount to the user's balance, creating the wallet if needed.
func (r *WalletRepository) Credit(ctx context.Context, userID string, amount decimal.Decimal) (*models.Wallet, error) {
	w, err := r.GetOrCreate(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Model(&models.Wallet{}).Where("id = ?", w.ID).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
	if err != nil {
		return nil, err
	}
	w.Balance = w.Balance.Add(amount)
	return w, nil
}

// Debit subtracts amount only if the balance covers it.
func (r *WalletRepository) Debit(ctx context.Context, userID string, amount decimal.Decimal) (*models.Wallet, error) {
	w, err := r.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInsufficientBalance
		}
		return nil, err
	}
	res := r.db.WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ? AND balance >= ?", w.ID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInsufficientBalance
	}
	w.Balance = w.Balance.Sub(amount)
	return w, nil
}
