package controller

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dormku_backend/internals/constants"
	dto "dormku_backend/internals/features/finance/bills/dto"
	model "dormku_backend/internals/features/finance/bills/model"
	service "dormku_backend/internals/features/finance/bills/service"
	tenantModel "dormku_backend/internals/features/rentals/tenants/model"
	notifModel "dormku_backend/internals/features/notifications/model"
	helper "dormku_backend/internals/helpers"
	"dormku_backend/internals/helpers/dbtime"
	"dormku_backend/internals/mq"
)

type BillController struct {
	DB        *gorm.DB
	Composer  *service.BillComposer
	Publisher mq.Publisher
}

func NewBillController(db *gorm.DB, pub mq.Publisher) *BillController {
	return &BillController{DB: db, Composer: service.NewBillComposer(db), Publisher: pub}
}

var validate = validator.New()

/* =========================================================
   Admin endpoints
========================================================= */

// Create builds one bill for a tenant. The room (and its rent line) comes
// from the tenant's current room.
func (ctl *BillController) Create(c *fiber.Ctx) error {
	var req dto.CreateBillRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var tenant tenantModel.TenantModel
	if err := ctl.DB.Where("tenant_id = ?", req.TenantID).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tenant not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if req.RoomID != nil && *req.RoomID != tenant.TenantRoomID {
		return helper.JsonError(c, fiber.StatusBadRequest, "Room does not match the tenant's current room")
	}

	bill, err := ctl.Composer.CreateBill(c.Context(), service.CreateBillInput{
		TenantID:      req.TenantID,
		RoomID:        tenant.TenantRoomID,
		BillingMonth:  req.BillingMonth,
		DueDate:       req.DueDate,
		Items:         req.ToItemInputs(),
		RoomUtilityID: req.RoomUtilityID,
		Note:          req.Note,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ctl.enqueueBillNotification(*bill, notifModel.NotificationTypeBillCreated)

	return helper.JsonCreated(c, "Bill created", dto.FromModel(*bill))
}

// GenerateMonthly runs batch generation synchronously and reports the
// aggregate. Safe to re-run for the same month.
func (ctl *BillController) GenerateMonthly(c *fiber.Ctx) error {
	var req dto.GenerateMonthlyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	month := dbtime.NormalizeBillingMonth(req.BillingMonth)
	dueDate := month.AddDate(0, 0, 9) // default: day 10 of the billing month
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	res, err := ctl.Composer.GenerateMonthlyBills(c.Context(), month, dueDate)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Monthly bill generation finished", dto.GenerateMonthlyResponse{
		CreatedCount: res.CreatedCount,
		SkippedCount: res.SkippedCount,
		FailedCount:  res.FailedCount,
		BillIDs:      res.BillIDs,
	})
}

// List returns all bills, filterable by tenant, status and month.
func (ctl *BillController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.Model(&model.BillModel{})

	if tenantID := c.Query("tenant_id"); tenantID != "" {
		q = q.Where("bill_tenant_id = ?", tenantID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("bill_status = ?", status)
	}
	if month := c.Query("month"); month != "" {
		if t, err := time.Parse("2006-01", month); err == nil {
			q = q.Where("bill_billing_month = ?", dbtime.NormalizeBillingMonth(t))
		} else {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid month filter, expected YYYY-MM")
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.BillModel
	if err := q.Order("bill_billing_month DESC, bill_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Bills fetched",
		dto.FromModels(rows), helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GetByID returns one bill with its line items.
func (ctl *BillController) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var row model.BillModel
	if err := ctl.DB.Preload("BillItems").
		Where("bill_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bill not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "Bill fetched", dto.FromModel(row))
}

// UpdateStatus is the manual override for edge cases (cash settlement,
// disputed bill). It does not touch paid_amount.
func (ctl *BillController) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.UpdateBillStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var row model.BillModel
	if err := ctl.DB.Where("bill_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bill not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	row.BillStatus = model.BillStatus(req.Status)
	if req.Note != nil {
		row.BillNote = req.Note
	}
	if err := ctl.DB.Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "Bill status updated", dto.FromModel(row))
}

// Delete soft-deletes a bill, freeing its tenant+month slot for a redo.
func (ctl *BillController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	var row model.BillModel
	if err := ctl.DB.Where("bill_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bill not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if row.BillStatus == model.BillStatusPaid {
		return helper.JsonError(c, fiber.StatusBadRequest, "Paid bills cannot be deleted")
	}

	if err := ctl.DB.Delete(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "Bill deleted", fiber.Map{"bill_id": row.BillID})
}

/* =========================================================
   Tenant endpoints
========================================================= */

// ListMine returns the caller's own bills, newest month first.
func (ctl *BillController) ListMine(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.Model(&model.BillModel{}).Where("bill_tenant_id = ?", tenantID)

	if status := c.Query("status"); status != "" {
		q = q.Where("bill_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.BillModel
	if err := q.Order("bill_billing_month DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Bills fetched",
		dto.FromModels(rows), helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GetMine returns one of the caller's bills with items. Bills belonging to
// other tenants come back as 404, not 403, so ids cannot be probed.
func (ctl *BillController) GetMine(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id := c.Params("id")

	var row model.BillModel
	if err := ctl.DB.Preload("BillItems").
		Where("bill_id = ? AND bill_tenant_id = ?", id, tenantID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bill not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "Bill fetched", dto.FromModel(row))
}

/* =========================================================
   Notification fan-out
========================================================= */

// enqueueBillNotification is best effort: the bill is already committed.
func (ctl *BillController) enqueueBillNotification(bill model.BillModel, ntype notifModel.NotificationType) {
	if ctl.Publisher == nil {
		return
	}
	billID := bill.BillID
	job := mq.SendLineNotificationJob{
		TenantID:         bill.BillTenantID,
		BillID:           &billID,
		NotificationType: string(ntype),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mq.PublishJSON(ctx, ctl.Publisher, constants.QueueSendLineNotification, job); err != nil {
		log.Printf("[BILLING] failed to enqueue notification for bill %s: %v", bill.BillID, err)
	}
}
