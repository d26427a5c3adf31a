package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// ENUMS — notification type & delivery status
// =========================================================

type NotificationType string

const (
	NotificationTypeBillCreated        NotificationType = "bill_created"
	NotificationTypeBillDue            NotificationType = "bill_due"
	NotificationTypeBillOverdue        NotificationType = "bill_overdue"
	NotificationTypePaymentApproved    NotificationType = "payment_approved"
	NotificationTypePaymentRejected    NotificationType = "payment_rejected"
	NotificationTypeMaintenanceUpdated NotificationType = "maintenance_updated"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// =========================================================
// MODEL — append-only delivery audit trail, not a queue
// =========================================================

type NotificationModel struct {
	NotificationID uuid.UUID `gorm:"column:notification_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`

	// FK → tenants(tenant_id)
	NotificationTenantID uuid.UUID `gorm:"column:notification_tenant_id;type:uuid;not null;index" json:"notification_tenant_id"`

	NotificationType   NotificationType   `gorm:"column:notification_type;type:varchar(30);not null;index" json:"notification_type"`
	NotificationStatus NotificationStatus `gorm:"column:notification_status;type:varchar(20);not null;default:'pending';index" json:"notification_status"`

	// Snapshot of the payload actually sent (or attempted).
	NotificationData  datatypes.JSON `gorm:"column:notification_data;type:jsonb" json:"notification_data,omitempty"`
	NotificationError *string        `gorm:"column:notification_error;type:text" json:"notification_error,omitempty"`

	NotificationSentAt    *time.Time     `gorm:"column:notification_sent_at" json:"notification_sent_at,omitempty"`
	NotificationCreatedAt time.Time      `gorm:"column:notification_created_at;not null;default:now();index" json:"notification_created_at"`
	NotificationDeletedAt gorm.DeletedAt `gorm:"column:notification_deleted_at;index" json:"-"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) (err error) {
	if m.NotificationCreatedAt.IsZero() {
		m.NotificationCreatedAt = time.Now()
	}
	return nil
}
