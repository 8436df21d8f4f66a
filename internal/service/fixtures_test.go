package service

import (
	"context"
	"testing"

	"rentdesk/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/models"
	"rentdesk/internal/repository"
	"rentdesk/internal/testutil"
	"rentdesk/pkg/payment"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	wallets     *repository.WalletRepository
	txns        *repository.TransactionRepository
	maintenance *MaintenanceService
	finance     *FinanceService
	transfers   *TransferService
	catalog     *CatalogService
	properties  *PropertyService

	tenant   *models.User
	landlord *models.User
	vendor   *models.User
	category *models.Category
	subs     []models.SubCategory
	property *models.Property
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	log := zerolog.Nop()

	userRepo := repository.NewUserRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	notifSvc := NewNotificationService(repository.NewNotificationRepository(db), log)
	transfers := NewTransferService(db, walletRepo, txnRepo)

	f := &fixture{
		db:          db,
		wallets:     walletRepo,
		txns:        txnRepo,
		transfers:   transfers,
		maintenance: NewMaintenanceService(db, maintenanceRepo, categoryRepo, propertyRepo, repository.NewChatRepository(db), transfers, log),
		catalog:     NewCatalogService(categoryRepo),
		properties:  NewPropertyService(propertyRepo, repository.NewSettingRepository(db)),
		finance: NewFinanceService(FinanceDeps{
			DB:            db,
			Transactions:  txnRepo,
			Wallets:       walletRepo,
			Users:         userRepo,
			Budgets:       repository.NewBudgetRepository(db),
			Properties:    propertyRepo,
			Maintenance:   maintenanceRepo,
			Notifications: notifSvc,
			Gateways:      payment.NewSelector("STUB", false, &payment.StubProvider{}),
			Payment:       config.PaymentConfig{SuccessURL: "http://app/ok", CancelURL: "http://app/cancel"},
			Log:           log,
		}),
	}

	f.tenant = f.user(t, "tenant@example.com", domain.RoleTenant)
	f.landlord = f.user(t, "landlord@example.com", domain.RoleLandlord)
	f.vendor = f.user(t, "vendor@example.com", domain.RoleVendor)

	f.category = &models.Category{Name: "Plumbing"}
	require.NoError(t, db.Create(f.category).Error)
	f.subs = []models.SubCategory{
		{CategoryID: f.category.ID, Name: "Leaks"},
		{CategoryID: f.category.ID, Name: "Drains"},
	}
	require.NoError(t, db.Create(&f.subs).Error)

	f.property = &models.Property{LandlordID: f.landlord.ID, Name: "Maple Court", Country: "US"}
	require.NoError(t, db.Create(f.property).Error)
	return f
}

func (f *fixture) user(t *testing.T, email, role string) *models.User {
	t.Helper()
	u := &models.User{Email: email, FullName: role, Role: role}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) fund(t *testing.T, userID string, amount int64) {
	t.Helper()
	_, err := f.wallets.Credit(context.Background(), userID, decimal.NewFromInt(amount))
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T, userID string) decimal.Decimal {
	t.Helper()
	w, err := f.wallets.GetOrCreate(context.Background(), userID, "")
	require.NoError(t, err)
	return w.Balance
}

func (f *fixture) subIDs() []string {
	ids := make([]string, len(f.subs))
	for i, s := range f.subs {
		ids[i] = s.ID
	}
	return ids
}
