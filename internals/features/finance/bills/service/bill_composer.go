package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	billModel "dormku_backend/internals/features/finance/bills/model"
	roomModel "dormku_backend/internals/features/rentals/rooms/model"
	tenantModel "dormku_backend/internals/features/rentals/tenants/model"
	utilityModel "dormku_backend/internals/features/rentals/utilities/model"
	"dormku_backend/internals/helpers/dbtime"
)

// BillComposer assembles and persists bills: header plus line items as one
// atomic unit, totals recomputed server-side.
type BillComposer struct {
	DB *gorm.DB
}

func NewBillComposer(db *gorm.DB) *BillComposer {
	return &BillComposer{DB: db}
}

// NewBillItemInput is one caller-supplied line item.
type NewBillItemInput struct {
	Type        billModel.BillItemType
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

type CreateBillInput struct {
	TenantID      uuid.UUID
	RoomID        uuid.UUID
	BillingMonth  time.Time
	DueDate       time.Time
	Items         []NewBillItemInput
	RoomUtilityID *uuid.UUID
	Note          *string
}

/* =========================================================
   Pure composition — rent/utility auto-items + totals
========================================================= */

// ComposeItems fills in what the caller left implicit: a rent line from the
// room's monthly rent when none was given, and water/electricity lines from
// the utility snapshot when it is attached and those lines are absent.
// Amounts are always recomputed as quantity × unit price.
func ComposeItems(given []NewBillItemInput, monthlyRent decimal.Decimal, util *utilityModel.RoomUtilityModel) []billModel.BillItemModel {
	hasType := map[billModel.BillItemType]bool{}
	for _, it := range given {
		hasType[it.Type] = true
	}

	out := make([]billModel.BillItemModel, 0, len(given)+3)
	for _, it := range given {
		qty := it.Quantity
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		out = append(out, billModel.BillItemModel{
			BillItemType:        it.Type,
			BillItemDescription: it.Description,
			BillItemQuantity:    qty,
			BillItemUnitPrice:   it.UnitPrice,
			BillItemAmount:      qty.Mul(it.UnitPrice),
		})
	}

	if util != nil {
		if !hasType[billModel.BillItemTypeWater] {
			out = append(out, billModel.BillItemModel{
				BillItemType:        billModel.BillItemTypeWater,
				BillItemDescription: "Water usage",
				BillItemQuantity:    util.RoomUtilityWaterUsage,
				BillItemUnitPrice:   util.RoomUtilityWaterRate,
				BillItemAmount:      util.RoomUtilityWaterUsage.Mul(util.RoomUtilityWaterRate),
			})
		}
		if !hasType[billModel.BillItemTypeElectricity] {
			out = append(out, billModel.BillItemModel{
				BillItemType:        billModel.BillItemTypeElectricity,
				BillItemDescription: "Electricity usage",
				BillItemQuantity:    util.RoomUtilityElectricityUsage,
				BillItemUnitPrice:   util.RoomUtilityElectricityRate,
				BillItemAmount:      util.RoomUtilityElectricityUsage.Mul(util.RoomUtilityElectricityRate),
			})
		}
	}

	if !hasType[billModel.BillItemTypeRent] {
		out = append(out, billModel.BillItemModel{
			BillItemType:        billModel.BillItemTypeRent,
			BillItemDescription: "Monthly rent",
			BillItemQuantity:    decimal.NewFromInt(1),
			BillItemUnitPrice:   monthlyRent,
			BillItemAmount:      monthlyRent,
		})
	}

	return out
}

// SumItemAmounts is the bill total: the sum of its items' amounts.
func SumItemAmounts(items []billModel.BillItemModel) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.BillItemAmount)
	}
	return total
}

/* =========================================================
   CreateBill — all-or-nothing persistence
========================================================= */

func (s *BillComposer) CreateBill(ctx context.Context, in CreateBillInput) (*billModel.BillModel, error) {
	month := dbtime.NormalizeBillingMonth(in.BillingMonth)

	// Tenant must exist, be live (soft delete filtered by GORM) and active.
	var tenant tenantModel.TenantModel
	if err := s.DB.WithContext(ctx).
		Where("tenant_id = ?", in.TenantID).
		First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tenant not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if tenant.TenantStatus != tenantModel.TenantStatusActive {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tenant is not active")
	}

	var room roomModel.RoomModel
	if err := s.DB.WithContext(ctx).
		Where("room_id = ?", in.RoomID).
		First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Room not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// One live bill per tenant per billing month.
	var dupCount int64
	if err := s.DB.WithContext(ctx).
		Model(&billModel.BillModel{}).
		Where("bill_tenant_id = ? AND bill_billing_month = ?", in.TenantID, month).
		Count(&dupCount).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if dupCount > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Bill already exists for this tenant and month")
	}

	var util *utilityModel.RoomUtilityModel
	if in.RoomUtilityID != nil {
		var u utilityModel.RoomUtilityModel
		if err := s.DB.WithContext(ctx).
			Where("room_utility_id = ?", *in.RoomUtilityID).
			First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusNotFound, "Utility record not found")
			}
			return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		util = &u
	}

	items := ComposeItems(in.Items, room.RoomMonthlyRent, util)
	total := SumItemAmounts(items)

	bill := billModel.BillModel{
		BillTenantID:      in.TenantID,
		BillRoomID:        in.RoomID,
		BillBillingMonth:  month,
		BillDueDate:       in.DueDate,
		BillStatus:        billModel.BillStatusPending,
		BillSubtotal:      total,
		BillTotalAmount:   total,
		BillPaidAmount:    decimal.Zero,
		BillRoomUtilityID: in.RoomUtilityID,
		BillNote:          in.Note,
	}

	// Header and items land together or not at all.
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&bill).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].BillItemBillID = bill.BillID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			// Lost the race against a concurrent create for the same month.
			return nil, fiber.NewError(fiber.StatusConflict, "Bill already exists for this tenant and month")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create bill")
	}

	bill.BillItems = items
	return &bill, nil
}
