package service

import (
	"context"
	"encoding/json"

	"rentdesk/internal/domain"
	"rentdesk/internal/models"
	"rentdesk/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type NotificationService struct {
	repo *repository.NotificationRepository
	log  zerolog.Logger
}

func NewNotificationService(repo *repository.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

func (s *NotificationService) Notify(ctx context.Context, userID, notifType, title, body string, data map[string]interface{}) error {
	var payload []byte
	if data != nil {
		payload, _ = json.Marshal(data)
	}
	return s.repo.Create(ctx, &models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   payload,
	})
}

// NotifyBudgetAlert records a budget warning or overrun for the landlord.
func (s *NotificationService) NotifyBudgetAlert(ctx context.Context, landlordID string, b *models.Budget, level string) error {
	title := "Budget warning"
	body := "A budget is approaching its limit"
	if level == domain.AlertReached {
		title = "Budget reached"
		body = "A budget has reached its limit"
	}
	return s.Notify(ctx, landlordID, domain.NotificationBudgetAlert, title, body, map[string]interface{}{
		"budgetId":        b.ID,
		"propertyId":      b.PropertyID,
		"transactionType": b.TransactionType,
		"currentAmount":   b.CurrentAmount.String(),
		"budgetAmount":    b.BudgetAmount.String(),
		"level":           level,
	})
}

func (s *NotificationService) NotifyPaymentCompleted(ctx context.Context, userID string, amount decimal.Decimal, reference string) error {
	return s.Notify(ctx, userID, domain.NotificationPaymentCompleted, "Payment received",
		"A payment of "+amount.StringFixed(2)+" was completed", map[string]interface{}{"reference": reference})
}

func (s *NotificationService) NotifyMaintenance(ctx context.Context, userID, maintenanceID, title, body string) error {
	return s.Notify(ctx, userID, domain.NotificationMaintenance, title, body, map[string]interface{}{"maintenanceId": maintenanceID})
}

func (s *NotificationService) List(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}
