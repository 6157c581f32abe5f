package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a known buyer. Sales copy the name at commit time.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"index;not null" json:"name"`
	Phone     string    `gorm:"index;not null;default:''" json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Notes     string    `gorm:"not null;default:''" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}
