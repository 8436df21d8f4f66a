package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentdesk/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/models"
	"rentdesk/internal/observability"
	"rentdesk/internal/repository"
	"rentdesk/pkg/payment"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type FinanceService struct {
	db            *gorm.DB
	txns          *repository.TransactionRepository
	wallets       *repository.WalletRepository
	users         *repository.UserRepository
	budgets       *repository.BudgetRepository
	properties    *repository.PropertyRepository
	maintenance   *repository.MaintenanceRepository
	notifications *NotificationService
	gateways      *payment.Selector
	cfg           config.PaymentConfig
	loc           *time.Location
	now           func() time.Time
	log           zerolog.Logger
}

type FinanceDeps struct {
	DB            *gorm.DB
	Transactions  *repository.TransactionRepository
	Wallets       *repository.WalletRepository
	Users         *repository.UserRepository
	Budgets       *repository.BudgetRepository
	Properties    *repository.PropertyRepository
	Maintenance   *repository.MaintenanceRepository
	Notifications *NotificationService
	Gateways      *payment.Selector
	Payment       config.PaymentConfig
	Location      *time.Location
	Now           func() time.Time
	Log           zerolog.Logger
}

func NewFinanceService(d FinanceDeps) *FinanceService {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &FinanceService{
		db:            d.DB,
		txns:          d.Transactions,
		wallets:       d.Wallets,
		users:         d.Users,
		budgets:       d.Budgets,
		properties:    d.Properties,
		maintenance:   d.Maintenance,
		notifications: d.Notifications,
		gateways:      d.Gateways,
		cfg:           d.Payment,
		loc:           loc,
		now:           now,
		log:           d.Log,
	}
}

func financeTracer() trace.Tracer { return otel.Tracer("service/FinanceService") }

type MonthlyAnalysis struct {
	Month               int                        `json:"month"`
	Year                int                        `json:"year"`
	PropertyID          string                     `json:"propertyId,omitempty"`
	TotalRevenue        decimal.Decimal            `json:"totalRevenue"`
	TotalExpenses       decimal.Decimal            `json:"totalExpenses"`
	NetProfit           decimal.Decimal            `json:"netProfit"`
	RevenueByReference  map[string]decimal.Decimal `json:"revenueByReference"`
	ExpensesByReference map[string]decimal.Decimal `json:"expensesByReference"`
}

// GetMonthlyAnalysis sums the month's CREDIT revenue references and DEBIT
// expense references. The month spans [first day, first day of next month)
// in the finance timezone. Empty propertyID or userID means no filter.
func (s *FinanceService) GetMonthlyAnalysis(ctx context.Context, month, year int, propertyID, userID string) (*MonthlyAnalysis, error) {
	ctx, span := financeTracer().Start(ctx, "GetMonthlyAnalysis", trace.WithAttributes(
		attribute.Int("month", month), attribute.Int("year", year),
	))
	defer span.End()

	if month < 1 || month > 12 {
		return nil, ErrInvalidPeriod
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, 0)
	list, err := s.txns.List(ctx, repository.TransactionFilter{
		UserID:     userID,
		PropertyID: propertyID,
		From:       start.UTC(),
		To:         end.UTC(),
	})
	if err != nil {
		return nil, err
	}

	out := &MonthlyAnalysis{
		Month:               month,
		Year:                year,
		PropertyID:          propertyID,
		TotalRevenue:        decimal.Zero,
		TotalExpenses:       decimal.Zero,
		RevenueByReference:  map[string]decimal.Decimal{},
		ExpensesByReference: map[string]decimal.Decimal{},
	}
	for _, t := range list {
		switch {
		case t.Type == domain.TransactionCredit && contains(domain.RevenueReferences, t.Reference):
			out.TotalRevenue = out.TotalRevenue.Add(t.Amount)
			out.RevenueByReference[t.Reference] = out.RevenueByReference[t.Reference].Add(t.Amount)
		case t.Type == domain.TransactionDebit && contains(domain.ExpenseReferences, t.Reference):
			out.TotalExpenses = out.TotalExpenses.Add(t.Amount)
			out.ExpensesByReference[t.Reference] = out.ExpensesByReference[t.Reference].Add(t.Amount)
		}
	}
	out.NetProfit = out.TotalRevenue.Sub(out.TotalExpenses)
	return out, nil
}

type MonthlyIncome struct {
	Month   int             `json:"month"`
	Name    string          `json:"name"`
	Rent    decimal.Decimal `json:"rent"`
	LateFee decimal.Decimal `json:"lateFee"`
	Charges decimal.Decimal `json:"charges"`
}

type IncomeStatistics struct {
	Year   int             `json:"year"`
	Months []MonthlyIncome `json:"months"`
}

// GetIncomeStatistics buckets this year's COMPLETED rent, late fee and
// charges transactions by month.
func (s *FinanceService) GetIncomeStatistics(ctx context.Context, userID, propertyID string) (*IncomeStatistics, error) {
	year := s.now().In(s.loc).Year()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	list, err := s.txns.List(ctx, repository.TransactionFilter{
		UserID:     userID,
		PropertyID: propertyID,
		Status:     domain.TransactionStatusCompleted,
		References: []string{domain.RefRentPayment, domain.RefLateFee, domain.RefCharges},
		From:       start.UTC(),
		To:         start.AddDate(1, 0, 0).UTC(),
	})
	if err != nil {
		return nil, err
	}
	out := &IncomeStatistics{Year: year, Months: make([]MonthlyIncome, 12)}
	for i := range out.Months {
		out.Months[i] = MonthlyIncome{
			Month:   i + 1,
			Name:    time.Month(i + 1).String(),
			Rent:    decimal.Zero,
			LateFee: decimal.Zero,
			Charges: decimal.Zero,
		}
	}
	for _, t := range list {
		b := &out.Months[t.CreatedAt.In(s.loc).Month()-1]
		switch t.Reference {
		case domain.RefRentPayment:
			b.Rent = b.Rent.Add(t.Amount)
		case domain.RefLateFee:
			b.LateFee = b.LateFee.Add(t.Amount)
		case domain.RefCharges:
			b.Charges = b.Charges.Add(t.Amount)
		}
	}
	return out, nil
}

// GetIncome lists the user's income transactions.
func (s *FinanceService) GetIncome(ctx context.Context, userID, propertyID string) ([]models.Transaction, error) {
	return s.txns.List(ctx, repository.TransactionFilter{
		UserID:     userID,
		PropertyID: propertyID,
		Type:       domain.TransactionCredit,
		References: domain.IncomeReferences,
	})
}

// GetExpenses lists the maintenance requests raised against the landlord's properties.
func (s *FinanceService) GetExpenses(ctx context.Context, landlordID string) ([]models.Maintenance, error) {
	return s.maintenance.List(ctx, repository.MaintenanceFilter{LandlordID: landlordID})
}

func (s *FinanceService) GetAllTransactions(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.txns.List(ctx, repository.TransactionFilter{UserID: userID, Limit: limit, Offset: offset})
}

func (s *FinanceService) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	return s.wallets.GetOrCreate(ctx, userID, "")
}

type PaymentLinkInput struct {
	PayeeID     string
	Amount      decimal.Decimal
	Currency    string
	Description string
	PropertyID  string
}

type PaymentLink struct {
	PaymentURL  string              `json:"paymentUrl"`
	Reference   string              `json:"reference"`
	Gateway     string              `json:"gateway"`
	Transaction *models.Transaction `json:"transaction"`
	Counterpart *models.Transaction `json:"counterpart"`
}

// GeneratePaymentLink asks a gateway for a hosted payment page where payee
// pays creator, then records the payee's pending DEBIT and the creator's
// pending CREDIT under the gateway reference.
func (s *FinanceService) GeneratePaymentLink(ctx context.Context, creatorID string, in PaymentLinkInput) (*PaymentLink, error) {
	ctx, span := financeTracer().Start(ctx, "GeneratePaymentLink", trace.WithAttributes(
		attribute.String("creator.id", creatorID),
		attribute.String("payee.id", in.PayeeID),
	))
	defer span.End()

	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if creatorID == in.PayeeID {
		return nil, ErrSelfPayment
	}
	creator, err := s.users.GetByID(ctx, creatorID)
	if err != nil {
		return nil, lookupErr(err, "Creator or payee")
	}
	payee, err := s.users.GetByID(ctx, in.PayeeID)
	if err != nil {
		return nil, lookupErr(err, "Creator or payee")
	}
	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = "USD"
	}
	payeeWallet, err := s.wallets.GetOrCreate(ctx, payee.ID, currency)
	if err != nil {
		return nil, err
	}
	creatorWallet, err := s.wallets.GetOrCreate(ctx, creator.ID, currency)
	if err != nil {
		return nil, err
	}

	resp, err := s.initiate(ctx, payee, payment.PaymentRequest{
		Reference:     "pl_" + uuid.NewString(),
		Amount:        in.Amount,
		Currency:      currency,
		Description:   in.Description,
		CustomerEmail: payee.Email,
		Metadata:      map[string]string{"creatorId": creator.ID, "payeeId": payee.ID},
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	debit := &models.Transaction{
		UserID:         payee.ID,
		Amount:         in.Amount,
		Currency:       currency,
		Type:           domain.TransactionDebit,
		Status:         domain.TransactionStatusPending,
		Reference:      domain.RefMakePayment,
		WalletID:       &payeeWallet.ID,
		PaymentGateway: resp.Gateway,
		ReferenceID:    resp.Reference,
		PropertyID:     optional(in.PropertyID),
		Description:    in.Description,
	}
	credit := &models.Transaction{
		UserID:         creator.ID,
		Amount:         in.Amount,
		Currency:       currency,
		Type:           domain.TransactionCredit,
		Status:         domain.TransactionStatusPending,
		Reference:      domain.RefReceivePayment,
		WalletID:       &creatorWallet.ID,
		PaymentGateway: resp.Gateway,
		ReferenceID:    resp.Reference,
		PropertyID:     optional(in.PropertyID),
		Description:    in.Description,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.txns.WithTx(tx).Create(ctx, debit, credit)
	})
	if err != nil {
		return nil, err
	}
	observability.PaymentLinks.WithLabelValues(resp.Gateway).Inc()
	return &PaymentLink{
		PaymentURL:  resp.CheckoutURL,
		Reference:   resp.Reference,
		Gateway:     resp.Gateway,
		Transaction: debit,
		Counterpart: credit,
	}, nil
}

// FundWallet opens a hosted payment for topping up the user's own wallet.
func (s *FinanceService) FundWallet(ctx context.Context, userID string, amount decimal.Decimal, currency string) (*PaymentLink, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	currency = strings.ToUpper(currency)
	if currency == "" {
		currency = "USD"
	}
	w, err := s.wallets.GetOrCreate(ctx, u.ID, currency)
	if err != nil {
		return nil, err
	}
	resp, err := s.initiate(ctx, u, payment.PaymentRequest{
		Reference:     "fw_" + uuid.NewString(),
		Amount:        amount,
		Currency:      currency,
		Description:   "Wallet top-up",
		CustomerEmail: u.Email,
		Metadata:      map[string]string{"userId": u.ID, "purpose": domain.RefFundWallet},
	})
	if err != nil {
		return nil, err
	}
	credit := &models.Transaction{
		UserID:         u.ID,
		Amount:         amount,
		Currency:       currency,
		Type:           domain.TransactionCredit,
		Status:         domain.TransactionStatusPending,
		Reference:      domain.RefFundWallet,
		WalletID:       &w.ID,
		PaymentGateway: resp.Gateway,
		ReferenceID:    resp.Reference,
		Description:    "Wallet top-up",
	}
	if err := s.txns.Create(ctx, credit); err != nil {
		return nil, err
	}
	observability.PaymentLinks.WithLabelValues(resp.Gateway).Inc()
	return &PaymentLink{PaymentURL: resp.CheckoutURL, Reference: resp.Reference, Gateway: resp.Gateway, Transaction: credit}, nil
}

// initiate picks the gateway for payer and opens the hosted payment. The
// Stripe customer id is remembered on the user for later sessions.
func (s *FinanceService) initiate(ctx context.Context, payer *models.User, req payment.PaymentRequest) (*payment.PaymentResponse, error) {
	provider := s.gateways.ForCountry(payer.Country)
	if provider == nil {
		return nil, errors.New("no payment gateway configured")
	}
	isStripe := provider.Name() == domain.GatewayStripe
	if isStripe && payer.StripeCustomerID != nil {
		req.CustomerRef = *payer.StripeCustomerID
	}
	req.SuccessURL = s.cfg.SuccessURL
	req.CancelURL = s.cfg.CancelURL
	req.ExpiresIn = s.cfg.LinkTTL
	resp, err := provider.InitiatePayment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strings.ToLower(provider.Name()), err)
	}
	if resp.Gateway == "" {
		resp.Gateway = provider.Name()
	}
	if isStripe && resp.CustomerRef != "" && (payer.StripeCustomerID == nil || *payer.StripeCustomerID != resp.CustomerRef) {
		if err := s.users.UpdateFields(ctx, payer.ID, map[string]interface{}{"stripe_customer_id": resp.CustomerRef}); err != nil {
			s.log.Warn().Err(err).Str("user_id", payer.ID).Msg("store stripe customer id")
		}
	}
	return resp, nil
}

// ConfirmPayment settles every pending transaction under a gateway reference
// and credits wallets for the CREDIT side. Re-confirming is a no-op.
func (s *FinanceService) ConfirmPayment(ctx context.Context, reference, source string) ([]models.Transaction, error) {
	var settled []models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txns := s.txns.WithTx(tx)
		list, err := txns.ListByReferenceID(ctx, reference)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return notFound("transaction")
		}
		wallets := s.wallets.WithTx(tx)
		for _, t := range list {
			if t.Status != domain.TransactionStatusPending {
				continue
			}
			ok, err := txns.MarkCompleted(ctx, t.ID)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if t.Type == domain.TransactionCredit {
				if _, err := wallets.Credit(ctx, t.UserID, t.Amount); err != nil {
					return err
				}
			}
			t.Status = domain.TransactionStatusCompleted
			settled = append(settled, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(settled) > 0 {
		observability.PaymentsConfirmed.WithLabelValues(source).Inc()
	}
	for _, t := range settled {
		if t.Type != domain.TransactionCredit {
			continue
		}
		if err := s.notifications.NotifyPaymentCompleted(ctx, t.UserID, t.Amount, reference); err != nil {
			s.log.Warn().Err(err).Str("reference", reference).Msg("payment notification")
		}
	}
	return settled, nil
}

// VerifyPayment asks the gateway whether reference was paid and, if so,
// confirms it. The caller must own one of the reference's transactions.
func (s *FinanceService) VerifyPayment(ctx context.Context, userID, reference string) ([]models.Transaction, error) {
	list, err := s.txns.ListByReferenceID(ctx, reference)
	if err != nil {
		return nil, err
	}
	var gateway string
	for _, t := range list {
		if t.UserID == userID {
			gateway = t.PaymentGateway
			break
		}
	}
	if gateway == "" {
		return nil, notFound("transaction")
	}
	provider, ok := s.gateways.Get(gateway)
	if !ok {
		return nil, fmt.Errorf("gateway %s not configured", gateway)
	}
	paid, err := provider.VerifyPayment(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !paid {
		return nil, ErrPaymentUnverified
	}
	if _, err := s.ConfirmPayment(ctx, reference, "verify"); err != nil {
		return nil, err
	}
	return s.txns.ListByReferenceID(ctx, reference)
}

type BudgetInput struct {
	PropertyID      string
	TransactionType string
	BudgetAmount    decimal.Decimal
	Frequency       string
	AlertThreshold  float64
}

func (s *FinanceService) CreateBudget(ctx context.Context, landlordID string, in BudgetInput) (*models.Budget, error) {
	if err := s.requireOwnedProperty(ctx, landlordID, in.PropertyID); err != nil {
		return nil, err
	}
	threshold := in.AlertThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = domain.DefaultAlertThreshold
	}
	now := s.now().UTC()
	b := &models.Budget{
		PropertyID:      in.PropertyID,
		TransactionType: in.TransactionType,
		BudgetAmount:    in.BudgetAmount,
		CurrentAmount:   decimal.Zero,
		Frequency:       in.Frequency,
		AlertThreshold:  threshold,
		LastResetAt:     &now,
	}
	if err := s.budgets.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *FinanceService) ListBudgets(ctx context.Context, landlordID, propertyID string) ([]models.Budget, error) {
	if err := s.requireOwnedProperty(ctx, landlordID, propertyID); err != nil {
		return nil, err
	}
	return s.budgets.ListByProperty(ctx, propertyID)
}

// AuthorizeBudget checks that the budget belongs to one of landlordID's properties.
func (s *FinanceService) AuthorizeBudget(ctx context.Context, budgetID, landlordID string) error {
	b, err := s.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return lookupErr(err, "budget")
	}
	return s.requireOwnedProperty(ctx, landlordID, b.PropertyID)
}

// UpdateBudget adds delta to the running total and reports the alert level
// the new total reaches: AlertReached at or above the budget, AlertWarning
// at or above the threshold fraction of it.
func (s *FinanceService) UpdateBudget(ctx context.Context, id string, delta decimal.Decimal) (*models.Budget, string, error) {
	var b *models.Budget
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		budgets := s.budgets.WithTx(tx)
		if _, err := budgets.GetByID(ctx, id); err != nil {
			return lookupErr(err, "budget")
		}
		if err := budgets.AddAmount(ctx, id, delta); err != nil {
			return err
		}
		var err error
		b, err = budgets.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, domain.AlertNone, err
	}
	level := EvaluateBudgetAlert(b.CurrentAmount, b.BudgetAmount, b.AlertThreshold)
	if level != domain.AlertNone {
		s.raiseBudgetAlert(ctx, b, level)
	}
	return b, level, nil
}

// EvaluateBudgetAlert classifies current against budget.
func EvaluateBudgetAlert(current, budget decimal.Decimal, threshold float64) string {
	if current.GreaterThanOrEqual(budget) {
		return domain.AlertReached
	}
	if threshold <= 0 || threshold > 1 {
		threshold = domain.DefaultAlertThreshold
	}
	if current.GreaterThanOrEqual(budget.Mul(decimal.NewFromFloat(threshold))) {
		return domain.AlertWarning
	}
	return domain.AlertNone
}

func (s *FinanceService) raiseBudgetAlert(ctx context.Context, b *models.Budget, level string) {
	observability.BudgetAlerts.WithLabelValues(level).Inc()
	s.log.Warn().
		Str("budget_id", b.ID).
		Str("property_id", b.PropertyID).
		Str("current", b.CurrentAmount.String()).
		Str("budget", b.BudgetAmount.String()).
		Str("level", level).
		Msg("budget alert")
	p, err := s.properties.GetByID(ctx, b.PropertyID)
	if err != nil {
		s.log.Warn().Err(err).Str("budget_id", b.ID).Msg("budget alert: property lookup")
		return
	}
	if err := s.notifications.NotifyBudgetAlert(ctx, p.LandlordID, b, level); err != nil {
		s.log.Warn().Err(err).Str("budget_id", b.ID).Msg("budget alert: notify")
	}
}

func (s *FinanceService) requireOwnedProperty(ctx context.Context, landlordID, propertyID string) error {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return lookupErr(err, "property")
	}
	if p.LandlordID != landlordID {
		return ErrForbidden
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
