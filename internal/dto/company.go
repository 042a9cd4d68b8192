package dto

import "evalyze_backend/internal/models"

type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateCompanyRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type CreateJobRoleRequest struct {
	Title        string         `json:"title" validate:"required,min=2,max=200"`
	Description  string         `json:"description" validate:"omitempty,max=2000"`
	Requirements models.JSONMap `json:"requirements"`
}

type UpdateJobRoleRequest struct {
	Title        string         `json:"title" validate:"omitempty,min=2,max=200"`
	Description  string         `json:"description" validate:"omitempty,max=2000"`
	Requirements models.JSONMap `json:"requirements"`
}
