package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

type Property struct {
	Base
	LandlordID  string                      `gorm:"size:36;not null;index" json:"landlordId"`
	Name        string                      `gorm:"size:255;not null" json:"name"`
	Address     string                      `gorm:"size:512" json:"address"`
	City        string                      `gorm:"size:128" json:"city"`
	Country     string                      `gorm:"size:2" json:"country"`
	Description string                      `gorm:"type:text" json:"description"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Showcase    bool                        `gorm:"not null;default:false;index" json:"showcase"`
	IsDeleted   soft_delete.DeletedAt       `gorm:"softDelete:flag;index" json:"-"`

	Apartments []Apartment `gorm:"foreignKey:PropertyID" json:"apartments,omitempty"`
}

type Apartment struct {
	Base
	PropertyID string          `gorm:"size:36;not null;index" json:"propertyId"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Rooms      int             `json:"rooms"`
	RentAmount decimal.Decimal `gorm:"type:decimal(18,2)" json:"rentAmount"`
	IsVacant   bool            `gorm:"default:true" json:"isVacant"`
}

// PropertySetting holds a landlord's rent collection rules, optionally per property.
type PropertySetting struct {
	Base
	LandlordID        string          `gorm:"size:36;not null;index" json:"landlordId"`
	PropertyID        *string         `gorm:"size:36;index" json:"propertyId"`
	LateFeePercentage decimal.Decimal `gorm:"type:decimal(5,2)" json:"lateFeePercentage"`
	GracePeriodDays   int             `json:"gracePeriodDays"`
	RentDueDay        int             `json:"rentDueDay"`
	SecurityDeposit   decimal.Decimal `gorm:"type:decimal(18,2)" json:"securityDeposit"`
}
