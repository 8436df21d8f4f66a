package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget accumulates spending for one property and transaction reference.
type Budget struct {
	Base
	PropertyID      string          `gorm:"size:36;not null;index" json:"propertyId"`
	TransactionType string          `gorm:"size:32;not null" json:"transactionType"`
	BudgetAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"budgetAmount"`
	CurrentAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"currentAmount"`
	Frequency       string          `gorm:"size:10;not null;index" json:"frequency"`
	AlertThreshold  float64         `gorm:"not null;default:0.8" json:"alertThreshold"`
	LastResetAt     *time.Time      `json:"lastResetAt"`
}
