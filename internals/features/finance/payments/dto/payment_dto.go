package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "dormku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Requests
========================================================= */

type CreatePaymentRequest struct {
	BillID      uuid.UUID       `json:"bill_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Method      string          `json:"method" validate:"required,oneof=cash bank_transfer line_pay promptpay"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	ReceiptURL  *string         `json:"receipt_url,omitempty" validate:"omitempty,url"`
	Notes       *string         `json:"notes,omitempty"`
}

type RejectPaymentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

/* =========================================================
   Responses
========================================================= */

type PaymentResponse struct {
	PaymentID   uuid.UUID           `json:"payment_id"`
	BillID      uuid.UUID           `json:"bill_id"`
	TenantID    uuid.UUID           `json:"tenant_id"`
	Amount      decimal.Decimal     `json:"amount"`
	Method      model.PaymentMethod `json:"method"`
	Status      model.PaymentStatus `json:"status"`
	PaymentDate time.Time           `json:"payment_date"`
	ReceiptURL  *string             `json:"receipt_url,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

func FromModel(m model.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:   m.PaymentID,
		BillID:      m.PaymentBillID,
		TenantID:    m.PaymentTenantID,
		Amount:      m.PaymentAmount,
		Method:      m.PaymentMethod,
		Status:      m.PaymentStatus,
		PaymentDate: m.PaymentDate,
		ReceiptURL:  m.PaymentReceiptURL,
		Notes:       m.PaymentNotes,
		CreatedAt:   m.PaymentCreatedAt,
	}
}

func FromModels(list []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
