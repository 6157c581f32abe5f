package dto

import "nedpos/internal/model"

type CreateRepairRequest struct {
	CustomerName     string `json:"customer_name"     validate:"required,min=2"`
	Garment          string `json:"garment"           validate:"required"`
	Tag              string `json:"tag"               validate:"max=40"`
	IssueDescription string `json:"issue_description" validate:"max=2000"`
}

type RepairStatusRequest struct {
	Status model.RepairStatus `json:"status" validate:"required,oneof=IN_PROGRESS READY COMPLETED"`
}

type RepairFilter struct {
	Status string `form:"status"` // empty = all
}
