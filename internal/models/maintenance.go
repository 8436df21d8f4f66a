package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

type Maintenance struct {
	Base
	Description      string                      `gorm:"type:text" json:"description"`
	ScheduleDate     time.Time                   `gorm:"not null" json:"scheduleDate"`
	ReScheduleDate   *time.Time                  `json:"reScheduleDate"`
	ReScheduleMax    int                         `gorm:"not null;default:3" json:"reScheduleMax"`
	PaymentStatus    string                      `gorm:"size:20;not null;default:'PENDING';index" json:"paymentStatus"`
	LandlordDecision string                      `gorm:"size:20;not null;default:'PENDING'" json:"landlordDecision"`
	Amount           decimal.Decimal             `gorm:"type:decimal(18,2)" json:"amount"`
	TenantID         string                      `gorm:"size:36;not null;index" json:"tenantId"`
	LandlordID       *string                     `gorm:"size:36;index" json:"landlordId"`
	VendorID         *string                     `gorm:"size:36;index" json:"vendorId"`
	PropertyID       *string                     `gorm:"size:36;index" json:"propertyId"`
	ApartmentID      *string                     `gorm:"size:36" json:"apartmentId"`
	CategoryID       string                      `gorm:"size:36;not null;index" json:"categoryId"`
	ServiceID        *string                     `gorm:"size:36" json:"serviceId"`
	ChatRoomID       *string                     `gorm:"size:36" json:"chatRoomId"`
	Offer            datatypes.JSONSlice[string] `json:"offer"`
	CloudinaryURLs   datatypes.JSONSlice[string] `gorm:"column:cloudinary_urls" json:"cloudinaryUrls"`
	VideoURLs        datatypes.JSONSlice[string] `gorm:"column:cloudinary_video_urls" json:"cloudinaryVideoUrls"`
	DocumentURLs     datatypes.JSONSlice[string] `gorm:"column:cloudinary_document_urls" json:"cloudinaryDocumentUrls"`
	IsDeleted        soft_delete.DeletedAt       `gorm:"softDelete:flag;index" json:"-"`

	Category      *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Property      *Property     `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Subcategories []SubCategory `gorm:"many2many:maintenance_subcategories;" json:"subcategories,omitempty"`
}

func (Maintenance) TableName() string {
	return "maintenances"
}

// RescheduleHistory is append-only.
type RescheduleHistory struct {
	Base
	MaintenanceID string    `gorm:"size:36;not null;index" json:"maintenanceId"`
	OldDate       time.Time `json:"oldDate"`
	NewDate       time.Time `json:"newDate"`
}

func (RescheduleHistory) TableName() string {
	return "reschedule_histories"
}

// Whitelist pre-approves a category (optionally narrowed) for a landlord's property or apartment.
type Whitelist struct {
	Base
	LandlordID    string  `gorm:"size:36;not null;index:idx_whitelist_lookup" json:"landlordId"`
	CategoryID    string  `gorm:"size:36;not null;index:idx_whitelist_lookup" json:"categoryId"`
	SubcategoryID *string `gorm:"size:36" json:"subcategoryId"`
	PropertyID    *string `gorm:"size:36" json:"propertyId"`
	ApartmentID   *string `gorm:"size:36" json:"apartmentId"`
}

func (Whitelist) TableName() string {
	return "maintenance_whitelists"
}
