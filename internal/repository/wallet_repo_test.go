package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func walletRow(mock sqlmock.Sqlmock, id, userID, balance string) {
	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `wallets` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "user_id", "balance", "currency", "is_active"}).
			AddRow(id, now, now, userID, balance, "USD", true))
}

func TestWalletDebit_GuardsBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletRepository(db)

	walletRow(mock, "w1", "u1", "100.00")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `wallets` SET `balance`=balance - \\?.*WHERE \\(?id = \\? AND balance >= \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w, err := repo.Debit(context.Background(), "u1", decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(60)))

	walletRow(mock, "w1", "u1", "60.00")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `wallets` SET `balance`=balance - \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err = repo.Debit(context.Background(), "u1", decimal.NewFromInt(500))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletDebit_NoWallet(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `wallets`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewWalletRepository(db).Debit(context.Background(), "ghost", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletCredit_IncrementsInPlace(t *testing.T) {
	db, mock := newMockDB(t)
	walletRow(mock, "w1", "u1", "10.00")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `wallets` SET `balance`=balance \\+ \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w, err := NewWalletRepository(db).Credit(context.Background(), "u1", decimal.RequireFromString("2.50"))
	require.NoError(t, err)
	assert.Equal(t, "12.5", w.Balance.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
