package models

import (
	"github.com/shopspring/decimal"
)

type Wallet struct {
	Base
	UserID   string          `gorm:"uniqueIndex;size:36;not null" json:"userId"`
	Balance  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"balance"`
	Currency string          `gorm:"size:3;default:'USD'" json:"currency"`
	IsActive bool            `gorm:"default:true" json:"isActive"`
}

func (Wallet) TableName() string {
	return "wallets"
}
