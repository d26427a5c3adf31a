package dto

import (
	"time"

	"github.com/google/uuid"

	model "dormku_backend/internals/features/rentals/maintenance/model"
)

type CreateMaintenanceRequest struct {
	Title       string  `json:"title" validate:"required,max=120"`
	Description *string `json:"description,omitempty"`
}

type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved cancelled"`
}

type MaintenanceResponse struct {
	MaintenanceRequestID uuid.UUID               `json:"maintenance_request_id"`
	TenantID             uuid.UUID               `json:"tenant_id"`
	RoomID               uuid.UUID               `json:"room_id"`
	Title                string                  `json:"title"`
	Description          *string                 `json:"description,omitempty"`
	Status               model.MaintenanceStatus `json:"status"`
	CreatedAt            time.Time               `json:"created_at"`
}

func FromModel(m model.MaintenanceRequestModel) MaintenanceResponse {
	return MaintenanceResponse{
		MaintenanceRequestID: m.MaintenanceRequestID,
		TenantID:             m.MaintenanceRequestTenantID,
		RoomID:               m.MaintenanceRequestRoomID,
		Title:                m.MaintenanceRequestTitle,
		Description:          m.MaintenanceRequestDescription,
		Status:               m.MaintenanceRequestStatus,
		CreatedAt:            m.MaintenanceRequestCreatedAt,
	}
}

func FromModels(list []model.MaintenanceRequestModel) []MaintenanceResponse {
	out := make([]MaintenanceResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
