package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — bill item type (tagged kind, no free-text matching)
// =========================================================

type BillItemType string

const (
	BillItemTypeRent        BillItemType = "rent"
	BillItemTypeWater       BillItemType = "water"
	BillItemTypeElectricity BillItemType = "electricity"
	BillItemTypeUtility     BillItemType = "utility"
	BillItemTypeOther       BillItemType = "other"
)

// =========================================================
// MODEL — immutable once created; a correction is a new bill
// =========================================================

type BillItemModel struct {
	BillItemID uuid.UUID `gorm:"column:bill_item_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"bill_item_id"`

	// FK → bills(bill_id)
	BillItemBillID uuid.UUID `gorm:"column:bill_item_bill_id;type:uuid;not null;index" json:"bill_item_bill_id"`

	BillItemType        BillItemType `gorm:"column:bill_item_type;type:varchar(20);not null" json:"bill_item_type"`
	BillItemDescription string       `gorm:"column:bill_item_description;type:varchar(120);not null" json:"bill_item_description"`

	// amount = quantity * unit_price; rent keeps quantity = 1
	BillItemQuantity  decimal.Decimal `gorm:"column:bill_item_quantity;type:numeric(12,2);not null;default:1" json:"bill_item_quantity"`
	BillItemUnitPrice decimal.Decimal `gorm:"column:bill_item_unit_price;type:numeric(12,2);not null" json:"bill_item_unit_price"`
	BillItemAmount    decimal.Decimal `gorm:"column:bill_item_amount;type:numeric(12,2);not null" json:"bill_item_amount"`

	BillItemCreatedAt time.Time      `gorm:"column:bill_item_created_at;not null;default:now()" json:"bill_item_created_at"`
	BillItemDeletedAt gorm.DeletedAt `gorm:"column:bill_item_deleted_at;index" json:"-"`
}

func (BillItemModel) TableName() string {
	return "bill_items"
}

func (m *BillItemModel) BeforeCreate(tx *gorm.DB) (err error) {
	if m.BillItemCreatedAt.IsZero() {
		m.BillItemCreatedAt = time.Now()
	}
	return nil
}
