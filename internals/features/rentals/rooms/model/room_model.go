package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — room status
// =========================================================

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// =========================================================
// MODEL
// =========================================================

type RoomModel struct {
	RoomID uuid.UUID `gorm:"column:room_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`

	// FK → buildings(building_id)
	RoomBuildingID uuid.UUID `gorm:"column:room_building_id;type:uuid;not null;index;uniqueIndex:uq_room_number,priority:1,where:room_deleted_at IS NULL" json:"room_building_id"`

	RoomNumber string `gorm:"column:room_number;type:varchar(20);not null;uniqueIndex:uq_room_number,priority:2,where:room_deleted_at IS NULL" json:"room_number"`

	RoomMonthlyRent  decimal.Decimal `gorm:"column:room_monthly_rent;type:numeric(12,2);not null" json:"room_monthly_rent"`
	RoomMaxOccupancy int             `gorm:"column:room_max_occupancy;not null;default:1;check:room_max_occupancy>0" json:"room_max_occupancy"`

	RoomStatus RoomStatus `gorm:"column:room_status;type:varchar(20);not null;default:'available';index" json:"room_status"`

	RoomCreatedAt time.Time      `gorm:"column:room_created_at;not null;default:now()" json:"room_created_at"`
	RoomUpdatedAt time.Time      `gorm:"column:room_updated_at;not null;default:now()" json:"room_updated_at"`
	RoomDeletedAt gorm.DeletedAt `gorm:"column:room_deleted_at;index" json:"-"`
}

func (RoomModel) TableName() string {
	return "rooms"
}

func (m *RoomModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.RoomCreatedAt.IsZero() {
		m.RoomCreatedAt = now
	}
	m.RoomUpdatedAt = now
	return nil
}

func (m *RoomModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.RoomUpdatedAt = time.Now()
	return nil
}
