package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentdesk/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/models"
	"rentdesk/internal/repository"
	"rentdesk/internal/service"
	"rentdesk/internal/testutil"
	"rentdesk/internal/ws"
	"rentdesk/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() { gin.SetMode(gin.TestMode) }

type env struct {
	db          *gorm.DB
	hub         *ws.Hub
	maintenance *service.MaintenanceService
	finance     *service.FinanceService

	tenant, other, landlord, vendor *models.User
	category                        *models.Category
	sub                             *models.SubCategory
	service                         *models.Service
	property                        *models.Property
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	log := zerolog.Nop()

	walletRepo := repository.NewWalletRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	transfers := service.NewTransferService(db, walletRepo, txnRepo)

	e := &env{
		db:          db,
		hub:         ws.NewHub(),
		maintenance: service.NewMaintenanceService(db, maintenanceRepo, categoryRepo, propertyRepo, repository.NewChatRepository(db), transfers, log),
		finance: service.NewFinanceService(service.FinanceDeps{
			DB:            db,
			Transactions:  txnRepo,
			Wallets:       walletRepo,
			Users:         repository.NewUserRepository(db),
			Budgets:       repository.NewBudgetRepository(db),
			Properties:    propertyRepo,
			Maintenance:   maintenanceRepo,
			Notifications: service.NewNotificationService(repository.NewNotificationRepository(db), log),
			Gateways:      payment.NewSelector("STUB", false, &payment.StubProvider{}),
			Payment:       config.PaymentConfig{SuccessURL: "http://app/ok", CancelURL: "http://app/cancel"},
			Log:           log,
		}),
	}

	e.tenant = e.user(t, "tenant@example.com", domain.RoleTenant)
	e.other = e.user(t, "other@example.com", domain.RoleTenant)
	e.landlord = e.user(t, "landlord@example.com", domain.RoleLandlord)
	e.vendor = e.user(t, "vendor@example.com", domain.RoleVendor)

	e.category = &models.Category{Name: "Plumbing"}
	require.NoError(t, db.Create(e.category).Error)
	e.sub = &models.SubCategory{CategoryID: e.category.ID, Name: "Leaks"}
	require.NoError(t, db.Create(e.sub).Error)
	e.service = &models.Service{VendorID: e.vendor.ID, CategoryID: e.category.ID, SubcategoryID: &e.sub.ID, Name: "Leak repair", Price: decimal.NewFromInt(80)}
	require.NoError(t, db.Create(e.service).Error)
	e.property = &models.Property{LandlordID: e.landlord.ID, Name: "Maple Court", Country: "US"}
	require.NoError(t, db.Create(e.property).Error)
	return e
}

func (e *env) user(t *testing.T, email, role string) *models.User {
	t.Helper()
	u := &models.User{Email: email, FullName: role, Role: role}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

// as stands in for the JWT middleware and authenticates every request as u.
func as(u *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", u.ID)
		c.Set("role", u.Role)
		c.Set("email", u.Email)
		c.Set("user", u)
		c.Next()
	}
}

func send(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
