package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RepairStatus moves strictly forward: PENDING → IN_PROGRESS → READY → COMPLETED.
type RepairStatus string

const (
	RepairPending    RepairStatus = "PENDING"
	RepairInProgress RepairStatus = "IN_PROGRESS"
	RepairReady      RepairStatus = "READY"
	RepairCompleted  RepairStatus = "COMPLETED"
)

var repairFlow = map[RepairStatus]RepairStatus{
	RepairPending:    RepairInProgress,
	RepairInProgress: RepairReady,
	RepairReady:      RepairCompleted,
}

// Next returns the status that follows s, or false when s is terminal or unknown.
func (s RepairStatus) Next() (RepairStatus, bool) {
	n, ok := repairFlow[s]
	return n, ok
}

func (s RepairStatus) Valid() bool {
	_, ok := repairFlow[s]
	return ok || s == RepairCompleted
}

// Repair is a tailoring job tracked from drop-off to pickup.
type Repair struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerName     string       `gorm:"not null" json:"customer_name"`
	Garment          string       `gorm:"not null" json:"garment"`
	Tag              string       `gorm:"index;not null;default:''" json:"tag"`
	IssueDescription string       `gorm:"not null;default:''" json:"issue_description"`
	Status           RepairStatus `gorm:"type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	ReceivedAt       time.Time    `gorm:"not null" json:"received_at"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
	TicketPath       *string      `json:"-"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func (r *Repair) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}
