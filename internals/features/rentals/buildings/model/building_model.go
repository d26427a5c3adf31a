package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BuildingModel struct {
	BuildingID uuid.UUID `gorm:"column:building_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"building_id"`

	BuildingName    string  `gorm:"column:building_name;type:varchar(100);not null;uniqueIndex:uq_building_name,where:building_deleted_at IS NULL" json:"building_name"`
	BuildingAddress *string `gorm:"column:building_address;type:text" json:"building_address,omitempty"`

	BuildingCreatedAt time.Time      `gorm:"column:building_created_at;not null;default:now()" json:"building_created_at"`
	BuildingUpdatedAt time.Time      `gorm:"column:building_updated_at;not null;default:now()" json:"building_updated_at"`
	BuildingDeletedAt gorm.DeletedAt `gorm:"column:building_deleted_at;index" json:"-"`
}

func (BuildingModel) TableName() string {
	return "buildings"
}

func (m *BuildingModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.BuildingCreatedAt.IsZero() {
		m.BuildingCreatedAt = now
	}
	m.BuildingUpdatedAt = now
	return nil
}

func (m *BuildingModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.BuildingUpdatedAt = time.Now()
	return nil
}
