package service

import (
	"context"
	"fmt"

	"rentdesk/internal/domain"
	"rentdesk/internal/models"
	"rentdesk/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransferService moves money between user wallets.
type TransferService struct {
	db      *gorm.DB
	wallets *repository.WalletRepository
	txns    *repository.TransactionRepository
}

func NewTransferService(db *gorm.DB, wallets *repository.WalletRepository, txns *repository.TransactionRepository) *TransferService {
	return &TransferService{db: db, wallets: wallets, txns: txns}
}

type TransferInput struct {
	SenderID    string
	ReceiverID  string
	Amount      decimal.Decimal
	Reference   string
	PropertyID  *string
	Description string
}

type TransferResult struct {
	Debit  *models.Transaction
	Credit *models.Transaction
}

// TransferFunds debits the sender and credits the receiver, recording a
// COMPLETED transaction for each side. When tx is nil the transfer runs in
// its own database transaction; otherwise it joins tx.
func (s *TransferService) TransferFunds(ctx context.Context, tx *gorm.DB, in TransferInput) (*TransferResult, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if in.SenderID == in.ReceiverID {
		return nil, ErrSelfPayment
	}
	if in.Reference == "" {
		in.Reference = domain.RefTransfer
	}
	if tx == nil {
		var out *TransferResult
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			out, err = s.transfer(ctx, tx, in)
			return err
		})
		return out, err
	}
	return s.transfer(ctx, tx, in)
}

func (s *TransferService) transfer(ctx context.Context, tx *gorm.DB, in TransferInput) (*TransferResult, error) {
	wallets := s.wallets.WithTx(tx)
	sender, err := wallets.Debit(ctx, in.SenderID, in.Amount)
	if err != nil {
		return nil, err
	}
	receiver, err := wallets.Credit(ctx, in.ReceiverID, in.Amount)
	if err != nil {
		return nil, fmt.Errorf("credit receiver: %w", err)
	}
	ref := "trf_" + uuid.NewString()
	debit := &models.Transaction{
		UserID:         in.SenderID,
		Amount:         in.Amount,
		Currency:       sender.Currency,
		Type:           domain.TransactionDebit,
		Status:         domain.TransactionStatusCompleted,
		Reference:      in.Reference,
		WalletID:       &sender.ID,
		PaymentGateway: domain.GatewayWallet,
		ReferenceID:    ref,
		PropertyID:     in.PropertyID,
		Description:    in.Description,
	}
	credit := &models.Transaction{
		UserID:         in.ReceiverID,
		Amount:         in.Amount,
		Currency:       receiver.Currency,
		Type:           domain.TransactionCredit,
		Status:         domain.TransactionStatusCompleted,
		Reference:      in.Reference,
		WalletID:       &receiver.ID,
		PaymentGateway: domain.GatewayWallet,
		ReferenceID:    ref,
		PropertyID:     in.PropertyID,
		Description:    in.Description,
	}
	if err := s.txns.WithTx(tx).Create(ctx, debit, credit); err != nil {
		return nil, err
	}
	return &TransferResult{Debit: debit, Credit: credit}, nil
}
