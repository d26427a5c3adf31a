package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomUtilityModel is the metered snapshot for one room in one calendar
// month. Usage and cost columns are derived server-side, never trusted
// from the client.
type RoomUtilityModel struct {
	RoomUtilityID uuid.UUID `gorm:"column:room_utility_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"room_utility_id"`

	// FK → rooms(room_id); one record per room per month
	RoomUtilityRoomID uuid.UUID `gorm:"column:room_utility_room_id;type:uuid;not null;uniqueIndex:uq_room_utility_month,priority:1,where:room_utility_deleted_at IS NULL" json:"room_utility_room_id"`
	RoomUtilityMonth  time.Time `gorm:"column:room_utility_month;type:date;not null;uniqueIndex:uq_room_utility_month,priority:2,where:room_utility_deleted_at IS NULL" json:"room_utility_month"`

	// Water meter
	RoomUtilityWaterPrevious *decimal.Decimal `gorm:"column:room_utility_water_previous;type:numeric(12,2)" json:"room_utility_water_previous,omitempty"`
	RoomUtilityWaterCurrent  decimal.Decimal  `gorm:"column:room_utility_water_current;type:numeric(12,2);not null" json:"room_utility_water_current"`
	RoomUtilityWaterRate     decimal.Decimal  `gorm:"column:room_utility_water_rate;type:numeric(12,2);not null" json:"room_utility_water_rate"`
	RoomUtilityWaterUsage    decimal.Decimal  `gorm:"column:room_utility_water_usage;type:numeric(12,2);not null" json:"room_utility_water_usage"`
	RoomUtilityWaterCost     decimal.Decimal  `gorm:"column:room_utility_water_cost;type:numeric(12,2);not null" json:"room_utility_water_cost"`

	// Electricity meter
	RoomUtilityElectricityPrevious *decimal.Decimal `gorm:"column:room_utility_electricity_previous;type:numeric(12,2)" json:"room_utility_electricity_previous,omitempty"`
	RoomUtilityElectricityCurrent  decimal.Decimal  `gorm:"column:room_utility_electricity_current;type:numeric(12,2);not null" json:"room_utility_electricity_current"`
	RoomUtilityElectricityRate     decimal.Decimal  `gorm:"column:room_utility_electricity_rate;type:numeric(12,2);not null" json:"room_utility_electricity_rate"`
	RoomUtilityElectricityUsage    decimal.Decimal  `gorm:"column:room_utility_electricity_usage;type:numeric(12,2);not null" json:"room_utility_electricity_usage"`
	RoomUtilityElectricityCost     decimal.Decimal  `gorm:"column:room_utility_electricity_cost;type:numeric(12,2);not null" json:"room_utility_electricity_cost"`

	RoomUtilityCreatedAt time.Time      `gorm:"column:room_utility_created_at;not null;default:now()" json:"room_utility_created_at"`
	RoomUtilityUpdatedAt time.Time      `gorm:"column:room_utility_updated_at;not null;default:now()" json:"room_utility_updated_at"`
	RoomUtilityDeletedAt gorm.DeletedAt `gorm:"column:room_utility_deleted_at;index" json:"-"`
}

func (RoomUtilityModel) TableName() string {
	return "room_utilities"
}

func (m *RoomUtilityModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.RoomUtilityCreatedAt.IsZero() {
		m.RoomUtilityCreatedAt = now
	}
	m.RoomUtilityUpdatedAt = now
	return nil
}

func (m *RoomUtilityModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.RoomUtilityUpdatedAt = time.Now()
	return nil
}
