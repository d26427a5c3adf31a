package dto

import (
	"time"

	"github.com/google/uuid"

	model "dormku_backend/internals/features/users/auth/model"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

type CreateUserRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     string     `json:"role" validate:"required,oneof=admin tenant"`
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`
}

type UserResponse struct {
	UserID   uuid.UUID  `json:"user_id"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`
	IsActive bool       `json:"is_active"`
}

func FromUserModel(m model.UserModel) UserResponse {
	return UserResponse{
		UserID:   m.UserID,
		Email:    m.UserEmail,
		Role:     m.UserRole,
		TenantID: m.UserTenantID,
		IsActive: m.UserIsActive,
	}
}
