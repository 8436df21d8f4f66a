package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/plugin/soft_delete"
)

type Category struct {
	Base
	Name        string `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Subcategories []SubCategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

type SubCategory struct {
	Base
	CategoryID  string                `gorm:"size:36;not null;index" json:"categoryId"`
	Name        string                `gorm:"size:128;not null" json:"name"`
	Description string                `gorm:"type:text" json:"description"`
	IsDeleted   soft_delete.DeletedAt `gorm:"softDelete:flag;index" json:"-"`
}

func (SubCategory) TableName() string {
	return "subcategories"
}

// Service is an offering a vendor publishes under a category.
type Service struct {
	Base
	VendorID      string          `gorm:"size:36;not null;index" json:"vendorId"`
	CategoryID    string          `gorm:"size:36;not null;index" json:"categoryId"`
	SubcategoryID *string         `gorm:"size:36;index" json:"subcategoryId"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2)" json:"price"`
}
