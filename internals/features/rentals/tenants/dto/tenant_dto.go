package dto

import (
	"time"

	"github.com/google/uuid"

	model "dormku_backend/internals/features/rentals/tenants/model"
)

type CreateTenantRequest struct {
	RoomID     uuid.UUID  `json:"room_id" validate:"required"`
	Name       string     `json:"name" validate:"required,max=100"`
	Phone      *string    `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email      *string    `json:"email,omitempty" validate:"omitempty,email"`
	MoveInDate time.Time  `json:"move_in_date" validate:"required"`
	LineUserID *string    `json:"line_user_id,omitempty" validate:"omitempty,max=64"`
}

type UpdateTenantRequest struct {
	RoomID      *uuid.UUID `json:"room_id,omitempty"`
	Name        *string    `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone       *string    `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email       *string    `json:"email,omitempty" validate:"omitempty,email"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=active inactive moved_out"`
	MoveOutDate *time.Time `json:"move_out_date,omitempty"`
	LineUserID  *string    `json:"line_user_id,omitempty" validate:"omitempty,max=64"`
}

type TenantResponse struct {
	TenantID    uuid.UUID          `json:"tenant_id"`
	RoomID      uuid.UUID          `json:"room_id"`
	Name        string             `json:"name"`
	Phone       *string            `json:"phone,omitempty"`
	Email       *string            `json:"email,omitempty"`
	MoveInDate  time.Time          `json:"move_in_date"`
	MoveOutDate *time.Time         `json:"move_out_date,omitempty"`
	Status      model.TenantStatus `json:"status"`
	LineUserID  *string            `json:"line_user_id,omitempty"`
}

func (r CreateTenantRequest) ToModel() *model.TenantModel {
	return &model.TenantModel{
		TenantRoomID:     r.RoomID,
		TenantName:       r.Name,
		TenantPhone:      r.Phone,
		TenantEmail:      r.Email,
		TenantMoveInDate: r.MoveInDate,
		TenantStatus:     model.TenantStatusActive,
		TenantLineUserID: r.LineUserID,
	}
}

func FromModel(m model.TenantModel) TenantResponse {
	return TenantResponse{
		TenantID:    m.TenantID,
		RoomID:      m.TenantRoomID,
		Name:        m.TenantName,
		Phone:       m.TenantPhone,
		Email:       m.TenantEmail,
		MoveInDate:  m.TenantMoveInDate,
		MoveOutDate: m.TenantMoveOutDate,
		Status:      m.TenantStatus,
		LineUserID:  m.TenantLineUserID,
	}
}

func FromModels(list []model.TenantModel) []TenantResponse {
	out := make([]TenantResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
