package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	billModel "dormku_backend/internals/features/finance/bills/model"
	tenantModel "dormku_backend/internals/features/rentals/tenants/model"
	utilityModel "dormku_backend/internals/features/rentals/utilities/model"
	"dormku_backend/internals/helpers/dbtime"
)

// GenerateResult is the aggregate outcome of one batch run. Skipped means
// the tenant already had a bill for the month; failures count separately.
type GenerateResult struct {
	CreatedCount int         `json:"created_count"`
	SkippedCount int         `json:"skipped_count"`
	FailedCount  int         `json:"failed_count"`
	BillIDs      []uuid.UUID `json:"bill_ids"`
}

// GenerateTenantBill creates one tenant's bill for the billing month,
// attaching that room's utility snapshot when one exists. created=false
// with a nil error means the tenant already had a bill (idempotent skip).
func (s *BillComposer) GenerateTenantBill(ctx context.Context, tenantID uuid.UUID, billingMonth, dueDate time.Time) (*billModel.BillModel, bool, error) {
	month := dbtime.NormalizeBillingMonth(billingMonth)

	var existing int64
	if err := s.DB.WithContext(ctx).
		Model(&billModel.BillModel{}).
		Where("bill_tenant_id = ? AND bill_billing_month = ?", tenantID, month).
		Count(&existing).Error; err != nil {
		return nil, false, err
	}
	if existing > 0 {
		return nil, false, nil
	}

	var tenant tenantModel.TenantModel
	if err := s.DB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fiber.NewError(fiber.StatusNotFound, "Tenant not found")
		}
		return nil, false, err
	}

	// Utility snapshot is optional: a rent-only bill is still a bill.
	var utilityID *uuid.UUID
	var util utilityModel.RoomUtilityModel
	err := s.DB.WithContext(ctx).
		Where("room_utility_room_id = ? AND room_utility_month = ?", tenant.TenantRoomID, month).
		First(&util).Error
	switch {
	case err == nil:
		utilityID = &util.RoomUtilityID
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no snapshot this month
	default:
		return nil, false, err
	}

	bill, err := s.CreateBill(ctx, CreateBillInput{
		TenantID:      tenantID,
		RoomID:        tenant.TenantRoomID,
		BillingMonth:  month,
		DueDate:       dueDate,
		RoomUtilityID: utilityID,
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code == fiber.StatusConflict {
			// Concurrent generation for the same tenant+month; treat as skip.
			return nil, false, nil
		}
		return nil, false, err
	}
	return bill, true, nil
}

// GenerateMonthlyBills runs the whole tenant roster for one billing month.
// Safe to re-run: tenants that already have a bill are counted as skipped.
// One tenant's failure is logged and does not abort the rest of the batch.
func (s *BillComposer) GenerateMonthlyBills(ctx context.Context, billingMonth, dueDate time.Time) (GenerateResult, error) {
	month := dbtime.NormalizeBillingMonth(billingMonth)
	endOfMonth := dbtime.EndOfMonth(month)

	var tenants []tenantModel.TenantModel
	if err := s.DB.WithContext(ctx).
		Where("tenant_status = ? AND tenant_move_in_date <= ?", tenantModel.TenantStatusActive, endOfMonth).
		Find(&tenants).Error; err != nil {
		return GenerateResult{}, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	res := GenerateResult{BillIDs: []uuid.UUID{}}
	for _, t := range tenants {
		bill, created, err := s.GenerateTenantBill(ctx, t.TenantID, month, dueDate)
		if err != nil {
			log.Printf("[BILLING] generate failed tenant=%s month=%s: %v", t.TenantID, month.Format("2006-01"), err)
			res.FailedCount++
			continue
		}
		if !created {
			res.SkippedCount++
			continue
		}
		res.CreatedCount++
		res.BillIDs = append(res.BillIDs, bill.BillID)
	}
	return res, nil
}

/* =========================================================
   Time-based status checks
========================================================= */

// MarkOverdueBills flips pending bills whose due date has passed to
// overdue and returns the affected bill rows.
func (s *BillComposer) MarkOverdueBills(ctx context.Context, now time.Time) ([]billModel.BillModel, error) {
	var bills []billModel.BillModel
	if err := s.DB.WithContext(ctx).
		Where("bill_status = ? AND bill_due_date < ?", billModel.BillStatusPending, now).
		Find(&bills).Error; err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return bills, nil
	}

	ids := make([]uuid.UUID, 0, len(bills))
	for _, b := range bills {
		ids = append(ids, b.BillID)
	}
	if err := s.DB.WithContext(ctx).
		Model(&billModel.BillModel{}).
		Where("bill_id IN ? AND bill_status = ?", ids, billModel.BillStatusPending).
		Updates(map[string]interface{}{
			"bill_status":     billModel.BillStatusOverdue,
			"bill_updated_at": time.Now(),
		}).Error; err != nil {
		return nil, err
	}
	for i := range bills {
		bills[i].BillStatus = billModel.BillStatusOverdue
	}
	return bills, nil
}

// ListBillsDueWithin returns unpaid pending bills whose due date falls in
// [now, now+days].
func (s *BillComposer) ListBillsDueWithin(ctx context.Context, now time.Time, days int) ([]billModel.BillModel, error) {
	var bills []billModel.BillModel
	until := now.AddDate(0, 0, days)
	err := s.DB.WithContext(ctx).
		Where("bill_status = ? AND bill_due_date >= ? AND bill_due_date <= ?", billModel.BillStatusPending, now, until).
		Find(&bills).Error
	return bills, err
}
