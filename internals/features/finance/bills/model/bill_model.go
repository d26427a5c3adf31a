package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — bill status
// =========================================================

type BillStatus string

const (
	BillStatusPending   BillStatus = "pending"
	BillStatusVerifying BillStatus = "verifying"
	BillStatusPaid      BillStatus = "paid"
	BillStatusOverdue   BillStatus = "overdue"
	BillStatusCancelled BillStatus = "cancelled"
)

// =========================================================
// MODEL
// =========================================================

type BillModel struct {
	BillID uuid.UUID `gorm:"column:bill_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"bill_id"`

	// FK → tenants(tenant_id); at most one live bill per tenant per month
	BillTenantID uuid.UUID `gorm:"column:bill_tenant_id;type:uuid;not null;index;uniqueIndex:uq_bill_tenant_month,priority:1,where:bill_deleted_at IS NULL" json:"bill_tenant_id"`
	// FK → rooms(room_id)
	BillRoomID uuid.UUID `gorm:"column:bill_room_id;type:uuid;not null;index" json:"bill_room_id"`

	// Always the first calendar day of the month (normalized on write).
	BillBillingMonth time.Time `gorm:"column:bill_billing_month;type:date;not null;uniqueIndex:uq_bill_tenant_month,priority:2,where:bill_deleted_at IS NULL" json:"bill_billing_month"`
	BillDueDate      time.Time `gorm:"column:bill_due_date;type:date;not null;index" json:"bill_due_date"`

	BillStatus BillStatus `gorm:"column:bill_status;type:varchar(20);not null;default:'pending';index" json:"bill_status"`

	BillSubtotal    decimal.Decimal `gorm:"column:bill_subtotal;type:numeric(12,2);not null" json:"bill_subtotal"`
	BillTotalAmount decimal.Decimal `gorm:"column:bill_total_amount;type:numeric(12,2);not null" json:"bill_total_amount"`
	BillPaidAmount  decimal.Decimal `gorm:"column:bill_paid_amount;type:numeric(12,2);not null;default:0" json:"bill_paid_amount"`

	// FK → room_utilities(room_utility_id); utility snapshot the water/
	// electricity items were derived from, when any.
	BillRoomUtilityID *uuid.UUID `gorm:"column:bill_room_utility_id;type:uuid;index" json:"bill_room_utility_id,omitempty"`

	BillNote *string `gorm:"column:bill_note;type:text" json:"bill_note,omitempty"`

	BillCreatedAt time.Time      `gorm:"column:bill_created_at;not null;default:now();index" json:"bill_created_at"`
	BillUpdatedAt time.Time      `gorm:"column:bill_updated_at;not null;default:now()" json:"bill_updated_at"`
	BillDeletedAt gorm.DeletedAt `gorm:"column:bill_deleted_at;index" json:"-"`

	BillItems []BillItemModel `gorm:"foreignKey:BillItemBillID;references:BillID" json:"bill_items,omitempty"`
}

func (BillModel) TableName() string {
	return "bills"
}

func (m *BillModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.BillCreatedAt.IsZero() {
		m.BillCreatedAt = now
	}
	m.BillUpdatedAt = now
	return nil
}

func (m *BillModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.BillUpdatedAt = time.Now()
	return nil
}

// RemainingAmount is total minus the approved-payment running sum.
func (m *BillModel) RemainingAmount() decimal.Decimal {
	return m.BillTotalAmount.Sub(m.BillPaidAmount)
}
