package service

import (
	"context"
	"testing"

	"rentdesk/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferFunds(t *testing.T) {
	f := newFixture(t)
	f.fund(t, f.tenant.ID, 500)

	res, err := f.transfers.TransferFunds(context.Background(), nil, TransferInput{
		SenderID:   f.tenant.ID,
		ReceiverID: f.landlord.ID,
		Amount:     decimal.NewFromInt(450),
		Reference:  domain.RefRentPayment,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionDebit, res.Debit.Type)
	assert.Equal(t, domain.TransactionCredit, res.Credit.Type)
	assert.Equal(t, res.Debit.ReferenceID, res.Credit.ReferenceID)
	assert.Equal(t, domain.GatewayWallet, res.Credit.PaymentGateway)
	assert.True(t, f.balance(t, f.tenant.ID).Equal(decimal.NewFromInt(50)))
	assert.True(t, f.balance(t, f.landlord.ID).Equal(decimal.NewFromInt(450)))
}

func TestTransferFunds_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.transfers.TransferFunds(ctx, nil, TransferInput{SenderID: f.tenant.ID, ReceiverID: f.landlord.ID, Amount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.transfers.TransferFunds(ctx, nil, TransferInput{SenderID: f.tenant.ID, ReceiverID: f.tenant.ID, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrSelfPayment)

	// No wallet yet.
	_, err = f.transfers.TransferFunds(ctx, nil, TransferInput{SenderID: f.tenant.ID, ReceiverID: f.landlord.ID, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.True(t, IsDomainRule(err))
}
