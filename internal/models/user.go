package models

import (
	"time"

	"rentdesk/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	Base
	Email            string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash     string         `gorm:"size:255" json:"-"`
	FullName         string         `gorm:"size:255" json:"fullName"`
	Role             string         `gorm:"size:20;not null;index" json:"role"` // LANDLORD | TENANT | VENDOR | ADMIN
	Phone            string         `gorm:"size:32" json:"phone"`
	Bio              string         `gorm:"type:text" json:"bio"`
	ProfileURL       string         `gorm:"size:512" json:"profileUrl"`
	Country          string         `gorm:"size:2" json:"country"` // ISO 3166-1 alpha-2, drives gateway routing
	StripeCustomerID *string        `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time     `json:"lastLoginAt,omitempty"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsLandlord() bool { return u.Role == domain.RoleLandlord }
func (u *User) IsTenant() bool   { return u.Role == domain.RoleTenant }
func (u *User) IsVendor() bool   { return u.Role == domain.RoleVendor }
func (u *User) IsAdmin() bool    { return u.Role == domain.RoleAdmin }
