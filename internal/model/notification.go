package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationLowStock      = "low-stock"
	NotificationSystemWarning = "system-warning"
)

// Notification is an in-app alert shown to staff.
type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Type        string     `gorm:"type:varchar(20);not null" json:"type"`
	Message     string     `gorm:"not null" json:"message"`
	ProductID   *uuid.UUID `gorm:"type:uuid" json:"product_id,omitempty"`
	ProductName string     `gorm:"not null;default:''" json:"product_name,omitempty"`
	Read        bool       `gorm:"index;not null;default:false" json:"read"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	assignID(&n.ID)
	return nil
}
