package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "dormku_backend/internals/features/finance/bills/model"
	service "dormku_backend/internals/features/finance/bills/service"
)

/* =========================================================
   Requests
========================================================= */

type BillItemRequest struct {
	Type        string          `json:"type" validate:"required,oneof=rent water electricity utility other"`
	Description string          `json:"description" validate:"required,max=120"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type CreateBillRequest struct {
	TenantID uuid.UUID `json:"tenant_id" validate:"required"`
	// Optional; when given it must be the tenant's current room.
	RoomID        *uuid.UUID        `json:"room_id,omitempty"`
	BillingMonth  time.Time         `json:"billing_month" validate:"required"`
	DueDate       time.Time         `json:"due_date" validate:"required"`
	Items         []BillItemRequest `json:"items" validate:"dive"`
	RoomUtilityID *uuid.UUID        `json:"room_utility_id,omitempty"`
	Note          *string           `json:"note,omitempty"`
}

func (r CreateBillRequest) ToItemInputs() []service.NewBillItemInput {
	out := make([]service.NewBillItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, service.NewBillItemInput{
			Type:        model.BillItemType(it.Type),
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}

type GenerateMonthlyRequest struct {
	BillingMonth time.Time  `json:"billing_month" validate:"required"`
	DueDate      *time.Time `json:"due_date,omitempty"`
}

type UpdateBillStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending verifying paid overdue cancelled"`
	Note   *string `json:"note,omitempty"`
}

/* =========================================================
   Responses
========================================================= */

type BillItemResponse struct {
	BillItemID  uuid.UUID          `json:"bill_item_id"`
	Type        model.BillItemType `json:"type"`
	Description string             `json:"description"`
	Quantity    decimal.Decimal    `json:"quantity"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
	Amount      decimal.Decimal    `json:"amount"`
}

type BillResponse struct {
	BillID          uuid.UUID          `json:"bill_id"`
	TenantID        uuid.UUID          `json:"tenant_id"`
	RoomID          uuid.UUID          `json:"room_id"`
	BillingMonth    time.Time          `json:"billing_month"`
	DueDate         time.Time          `json:"due_date"`
	Status          model.BillStatus   `json:"status"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	PaidAmount      decimal.Decimal    `json:"paid_amount"`
	RemainingAmount decimal.Decimal    `json:"remaining_amount"`
	RoomUtilityID   *uuid.UUID         `json:"room_utility_id,omitempty"`
	Note            *string            `json:"note,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	Items           []BillItemResponse `json:"items,omitempty"`
}

func FromItemModel(m model.BillItemModel) BillItemResponse {
	return BillItemResponse{
		BillItemID:  m.BillItemID,
		Type:        m.BillItemType,
		Description: m.BillItemDescription,
		Quantity:    m.BillItemQuantity,
		UnitPrice:   m.BillItemUnitPrice,
		Amount:      m.BillItemAmount,
	}
}

func FromModel(m model.BillModel) BillResponse {
	resp := BillResponse{
		BillID:          m.BillID,
		TenantID:        m.BillTenantID,
		RoomID:          m.BillRoomID,
		BillingMonth:    m.BillBillingMonth,
		DueDate:         m.BillDueDate,
		Status:          m.BillStatus,
		Subtotal:        m.BillSubtotal,
		TotalAmount:     m.BillTotalAmount,
		PaidAmount:      m.BillPaidAmount,
		RemainingAmount: m.RemainingAmount(),
		RoomUtilityID:   m.BillRoomUtilityID,
		Note:            m.BillNote,
		CreatedAt:       m.BillCreatedAt,
	}
	for _, it := range m.BillItems {
		resp.Items = append(resp.Items, FromItemModel(it))
	}
	return resp
}

func FromModels(list []model.BillModel) []BillResponse {
	out := make([]BillResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

type GenerateMonthlyResponse struct {
	CreatedCount int         `json:"created_count"`
	SkippedCount int         `json:"skipped_count"`
	FailedCount  int         `json:"failed_count"`
	BillIDs      []uuid.UUID `json:"bill_ids"`
}
