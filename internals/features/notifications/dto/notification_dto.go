package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "dormku_backend/internals/features/notifications/model"
)

type NotificationResponse struct {
	NotificationID uuid.UUID                `json:"notification_id"`
	TenantID       uuid.UUID                `json:"tenant_id"`
	Type           model.NotificationType   `json:"type"`
	Status         model.NotificationStatus `json:"status"`
	Data           datatypes.JSON           `json:"data,omitempty"`
	Error          *string                  `json:"error,omitempty"`
	SentAt         *time.Time               `json:"sent_at,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
}

func FromModel(m model.NotificationModel) NotificationResponse {
	return NotificationResponse{
		NotificationID: m.NotificationID,
		TenantID:       m.NotificationTenantID,
		Type:           m.NotificationType,
		Status:         m.NotificationStatus,
		Data:           m.NotificationData,
		Error:          m.NotificationError,
		SentAt:         m.NotificationSentAt,
		CreatedAt:      m.NotificationCreatedAt,
	}
}

func FromModels(list []model.NotificationModel) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
