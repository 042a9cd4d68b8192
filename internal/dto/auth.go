package dto

import "evalyze_backend/internal/models"

type RegisterRequest struct {
	Email       string `json:"email" binding:"required" validate:"required,email"`
	FullName    string `json:"fullName" binding:"required" validate:"required,min=2,max=200"`
	Password    string `json:"password" validate:"omitempty,min=6"`
	Role        string `json:"role" validate:"omitempty,oneof=COMPANY EMPLOYEE"`
	CompanyName string `json:"companyName" validate:"omitempty,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ActivationCodeRequest struct {
	ActivationCode string `json:"activationCode" validate:"required"`
}

type CreateEmployeeRequest struct {
	Email          string `json:"email" validate:"required,email"`
	FullName       string `json:"fullName" validate:"required,min=2,max=200"`
	TelegramChatID string `json:"telegramChatId" validate:"omitempty,max=64"`
}

type UpdateUserRequest struct {
	FullName       string `json:"fullName" validate:"omitempty,min=2,max=200"`
	TelegramChatID string `json:"telegramChatId" validate:"omitempty,max=64"`
}

// UserResponse is the safe user shape (no password hash).
type UserResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	FullName       string  `json:"fullName"`
	Role           string  `json:"role"`
	Status         string  `json:"status"`
	ActivationCode string  `json:"activationCode,omitempty"`
	TelegramChatID string  `json:"telegramChatId,omitempty"`
	CompanyID      *string `json:"companyId,omitempty"`
	CompanyName    string  `json:"companyName,omitempty"`
}

// NewUserResponse maps a user model to its API shape.
func NewUserResponse(u *models.User) *UserResponse {
	resp := &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.APIRole(),
		Status:         string(u.Status),
		ActivationCode: u.ActivationCode,
		TelegramChatID: u.TelegramChatID,
		CompanyID:      u.CompanyID,
	}
	if u.Company != nil {
		resp.CompanyName = u.Company.Name
	}
	return resp
}

type AuthResponse struct {
	User    *UserResponse `json:"user"`
	Token   string        `json:"token"`
	Message string        `json:"message"`
}

type CreateEmployeeResponse struct {
	Employee       *UserResponse `json:"employee"`
	Message        string        `json:"message"`
	ActivationCode string        `json:"activationCode"`
}
