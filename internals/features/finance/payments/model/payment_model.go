package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// ENUMS — payment method & status
// =========================================================

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodLinePay      PaymentMethod = "line_pay"
	PaymentMethodPromptPay    PaymentMethod = "promptpay"
)

// SlipBased reports whether the method requires a transfer slip before an
// admin can approve it.
func (m PaymentMethod) SlipBased() bool {
	return m == PaymentMethodBankTransfer || m == PaymentMethodPromptPay
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodLinePay, PaymentMethodPromptPay:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// =========================================================
// MODEL
// =========================================================

type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_id"`

	// FK → bills(bill_id)
	PaymentBillID uuid.UUID `gorm:"column:payment_bill_id;type:uuid;not null;index" json:"payment_bill_id"`
	// FK → tenants(tenant_id)
	PaymentTenantID uuid.UUID `gorm:"column:payment_tenant_id;type:uuid;not null;index" json:"payment_tenant_id"`

	PaymentAmount decimal.Decimal `gorm:"column:payment_amount;type:numeric(12,2);not null;check:payment_amount>0" json:"payment_amount"`
	PaymentMethod PaymentMethod   `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`
	PaymentStatus PaymentStatus   `gorm:"column:payment_status;type:varchar(20);not null;default:'pending';index" json:"payment_status"`

	PaymentDate time.Time `gorm:"column:payment_date;type:date;not null" json:"payment_date"`

	// Slip reference, the file itself lives in external storage.
	PaymentReceiptURL *string `gorm:"column:payment_receipt_url;type:text" json:"payment_receipt_url,omitempty"`
	PaymentNotes      *string `gorm:"column:payment_notes;type:text" json:"payment_notes,omitempty"`

	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;not null;default:now();index" json:"payment_created_at"`
	PaymentUpdatedAt time.Time      `gorm:"column:payment_updated_at;not null;default:now()" json:"payment_updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"-"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.PaymentCreatedAt.IsZero() {
		m.PaymentCreatedAt = now
	}
	m.PaymentUpdatedAt = now
	return nil
}

func (m *PaymentModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.PaymentUpdatedAt = time.Now()
	return nil
}
