package dto

import "nedpos/internal/model"

type CustomerRequest struct {
	Name  string  `json:"name"  validate:"required,min=2,max=120"`
	Phone string  `json:"phone" validate:"max=30"`
	Email *string `json:"email" validate:"omitempty,email"`
	Notes string  `json:"notes" validate:"max=2000"`
}

type CustomerFilter struct {
	Search string `form:"search"` // name or phone substring
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=500"`
}

type CustomerListResponse struct {
	Data  []model.Customer `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
