package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — tenant status
// =========================================================

type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
	TenantStatusMovedOut TenantStatus = "moved_out"
)

// =========================================================
// MODEL
// =========================================================

type TenantModel struct {
	TenantID uuid.UUID `gorm:"column:tenant_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"tenant_id"`

	// FK → rooms(room_id)
	TenantRoomID uuid.UUID `gorm:"column:tenant_room_id;type:uuid;not null;index" json:"tenant_room_id"`

	TenantName  string  `gorm:"column:tenant_name;type:varchar(100);not null" json:"tenant_name"`
	TenantPhone *string `gorm:"column:tenant_phone;type:varchar(20)" json:"tenant_phone,omitempty"`
	TenantEmail *string `gorm:"column:tenant_email;type:varchar(120)" json:"tenant_email,omitempty"`

	TenantMoveInDate  time.Time  `gorm:"column:tenant_move_in_date;type:date;not null" json:"tenant_move_in_date"`
	TenantMoveOutDate *time.Time `gorm:"column:tenant_move_out_date;type:date" json:"tenant_move_out_date,omitempty"`

	TenantStatus TenantStatus `gorm:"column:tenant_status;type:varchar(20);not null;default:'active';index" json:"tenant_status"`

	// LINE messaging identity; bills/notifications go nowhere without it.
	TenantLineUserID *string `gorm:"column:tenant_line_user_id;type:varchar(64);index" json:"tenant_line_user_id,omitempty"`

	TenantCreatedAt time.Time      `gorm:"column:tenant_created_at;not null;default:now()" json:"tenant_created_at"`
	TenantUpdatedAt time.Time      `gorm:"column:tenant_updated_at;not null;default:now()" json:"tenant_updated_at"`
	TenantDeletedAt gorm.DeletedAt `gorm:"column:tenant_deleted_at;index" json:"-"`
}

func (TenantModel) TableName() string {
	return "tenants"
}

func (m *TenantModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.TenantCreatedAt.IsZero() {
		m.TenantCreatedAt = now
	}
	m.TenantUpdatedAt = now
	return nil
}

func (m *TenantModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.TenantUpdatedAt = time.Now()
	return nil
}
