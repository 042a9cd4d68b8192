package dto

import (
	"time"

	"evalyze_backend/internal/models"
)

// UpdateProfileRequest carries the free-form profile document fields.
type UpdateProfileRequest struct {
	ProfileData models.JSONMap `json:"profileData" validate:"required"`
}

type UpdateProfileStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING COMPLETED"`
}

type CreateEmployeeProfileRequest struct {
	EmployeeEmail           string `json:"employeeEmail" validate:"required,email"`
	EmployeeName            string `json:"employeeName" validate:"required,min=2,max=200"`
	CurrentPosition         string `json:"currentPosition"`
	CurrentSkills           string `json:"currentSkills"`
	CurrentResponsibilities string `json:"currentResponsibilities"`
	DesiredPosition         string `json:"desiredPosition"`
	DesiredSkills           string `json:"desiredSkills"`
	CareerGoals             string `json:"careerGoals"`
}

type AssignJobRoleRequest struct {
	JobRoleID string `json:"jobRoleId" validate:"required"`
}

// AssignJobRoleFlexibleRequest resolves the target user by activation code
// first, then by email.
type AssignJobRoleFlexibleRequest struct {
	JobRoleID      string `json:"jobRoleId" validate:"required"`
	ActivationCode string `json:"activationCode"`
	Email          string `json:"email" validate:"omitempty,email"`
}

type ProfileResponse struct {
	UserID             string         `json:"userId"`
	ProfileData        models.JSONMap `json:"profileData"`
	CompanyID          *string        `json:"companyId,omitempty"`
	Status             string         `json:"status"`
	LastUpdated        time.Time      `json:"lastUpdated"`
	IsVerified         bool           `json:"isVerified"`
	AIProfileGenerated bool           `json:"aiProfileGenerated"`
}

// NewProfileResponse maps a profile model to its API shape.
func NewProfileResponse(p *models.Profile) *ProfileResponse {
	return &ProfileResponse{
		UserID:             p.UserID,
		ProfileData:        p.ProfileData,
		CompanyID:          p.CompanyID,
		Status:             string(p.Status),
		LastUpdated:        p.UpdatedAt,
		IsVerified:         p.IsCompleted(),
		AIProfileGenerated: false,
	}
}

// ProfileByEmailResponse is the employee self-service lookup shape.
type ProfileByEmailResponse struct {
	UserID        string         `json:"userId"`
	EmployeeEmail string         `json:"employeeEmail"`
	EmployeeName  string         `json:"employeeName"`
	ProfileData   models.JSONMap `json:"profileData"`
	Status        string         `json:"status"`
	IsVerified    bool           `json:"isVerified"`
	CompanyID     *string        `json:"companyId,omitempty"`
	CompanyName   string         `json:"companyName,omitempty"`
}

type AssignJobRoleResponse struct {
	Message      string `json:"message"`
	UserID       string `json:"userId"`
	UserEmail    string `json:"userEmail"`
	JobRoleID    string `json:"jobRoleId"`
	JobRoleTitle string `json:"jobRoleTitle"`
	Status       string `json:"status"`
}

type GenerateAIProfileResponse struct {
	Message         string `json:"message"`
	UserID          string `json:"userId"`
	UserEmail       string `json:"userEmail"`
	ActivationCode  string `json:"activationCode,omitempty"`
	Status          string `json:"status"`
	WebhookResponse string `json:"webhookResponse,omitempty"`
}

type CreateEmployeeProfileResponse struct {
	Message       string `json:"message"`
	UserID        string `json:"userId"`
	EmployeeEmail string `json:"employeeEmail"`
	EmployeeName  string `json:"employeeName"`
	Status        string `json:"status"`
}
