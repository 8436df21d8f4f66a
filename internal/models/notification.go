package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	Base
	UserID string         `gorm:"size:36;not null;index" json:"userId"`
	Type   string         `gorm:"size:50;not null;index" json:"type"`
	Title  string         `gorm:"size:255" json:"title"`
	Body   string         `gorm:"type:text" json:"body"`
	Data   datatypes.JSON `json:"data"`
	ReadAt *time.Time     `json:"readAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
