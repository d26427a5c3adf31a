package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaintenanceStatus string

const (
	MaintenanceStatusOpen       MaintenanceStatus = "open"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusResolved   MaintenanceStatus = "resolved"
	MaintenanceStatusCancelled  MaintenanceStatus = "cancelled"
)

type MaintenanceRequestModel struct {
	MaintenanceRequestID uuid.UUID `gorm:"column:maintenance_request_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"maintenance_request_id"`

	MaintenanceRequestTenantID uuid.UUID `gorm:"column:maintenance_request_tenant_id;type:uuid;not null;index" json:"maintenance_request_tenant_id"`
	MaintenanceRequestRoomID   uuid.UUID `gorm:"column:maintenance_request_room_id;type:uuid;not null;index" json:"maintenance_request_room_id"`

	MaintenanceRequestTitle       string  `gorm:"column:maintenance_request_title;type:varchar(120);not null" json:"maintenance_request_title"`
	MaintenanceRequestDescription *string `gorm:"column:maintenance_request_description;type:text" json:"maintenance_request_description,omitempty"`

	MaintenanceRequestStatus MaintenanceStatus `gorm:"column:maintenance_request_status;type:varchar(20);not null;default:'open';index" json:"maintenance_request_status"`

	MaintenanceRequestCreatedAt time.Time      `gorm:"column:maintenance_request_created_at;not null;default:now()" json:"maintenance_request_created_at"`
	MaintenanceRequestUpdatedAt time.Time      `gorm:"column:maintenance_request_updated_at;not null;default:now()" json:"maintenance_request_updated_at"`
	MaintenanceRequestDeletedAt gorm.DeletedAt `gorm:"column:maintenance_request_deleted_at;index" json:"-"`
}

func (MaintenanceRequestModel) TableName() string {
	return "maintenance_requests"
}

func (m *MaintenanceRequestModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.MaintenanceRequestCreatedAt.IsZero() {
		m.MaintenanceRequestCreatedAt = now
	}
	m.MaintenanceRequestUpdatedAt = now
	return nil
}

func (m *MaintenanceRequestModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.MaintenanceRequestUpdatedAt = time.Now()
	return nil
}
