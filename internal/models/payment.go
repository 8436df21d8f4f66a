package models

import (
	"github.com/shopspring/decimal"
)

// Transaction is a single money movement for one user. Gateway-initiated payments
// produce mirrored rows sharing ReferenceID.
type Transaction struct {
	Base
	UserID         string          `gorm:"size:36;not null;index" json:"userId"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency       string          `gorm:"size:3;default:'USD'" json:"currency"`
	Type           string          `gorm:"size:10;not null;index" json:"type"`   // DEBIT | CREDIT
	Status         string          `gorm:"size:20;not null;index" json:"status"` // PENDING | COMPLETED | FAILED
	Reference      string          `gorm:"size:32;not null;index" json:"reference"`
	WalletID       *string         `gorm:"size:36" json:"walletId"`
	PaymentGateway string          `gorm:"size:20" json:"paymentGateway"`
	ReferenceID    string          `gorm:"size:128;index" json:"referenceId"`
	PropertyID     *string         `gorm:"size:36;index" json:"propertyId"`
	Description    string          `gorm:"size:512" json:"description"`
}

func (Transaction) TableName() string {
	return "transactions"
}
