package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles with access to the back office.
const (
	RoleOwner       = "owner"
	RoleAdmin       = "admin"
	RoleSales       = "sales"
	RoleMaintenance = "maintenance"
)

// User stores staff accounts with role-based access.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	return nil
}
