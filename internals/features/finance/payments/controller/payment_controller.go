package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "dormku_backend/internals/features/finance/payments/dto"
	model "dormku_backend/internals/features/finance/payments/model"
	service "dormku_backend/internals/features/finance/payments/service"
	helper "dormku_backend/internals/helpers"
	"dormku_backend/internals/mq"
)

type PaymentController struct {
	DB         *gorm.DB
	Reconciler *service.PaymentReconciler
}

func NewPaymentController(db *gorm.DB, pub mq.Publisher) *PaymentController {
	return &PaymentController{DB: db, Reconciler: service.NewPaymentReconciler(db, pub)}
}

var validate = validator.New()

// Create is role-dispatched: admins record payments against any bill,
// tenants submit slips against their own bills only.
func (ctl *PaymentController) Create(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	method := model.PaymentMethod(req.Method)
	if !method.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown payment method")
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	in := service.RecordPaymentInput{
		BillID:      req.BillID,
		Amount:      req.Amount,
		Method:      method,
		PaymentDate: paymentDate,
		ReceiptURL:  req.ReceiptURL,
		Notes:       req.Notes,
	}

	var (
		payment *model.PaymentModel
		err     error
	)
	if helper.IsAdmin(c) {
		payment, err = ctl.Reconciler.RecordPayment(c.Context(), in)
	} else {
		tenantID, terr := helper.GetTenantIDFromToken(c)
		if terr != nil {
			return helper.FromFiberError(c, terr)
		}
		in.TenantID = tenantID
		payment, err = ctl.Reconciler.SubmitTenantPayment(c.Context(), in)
	}
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Payment submitted", dto.FromModel(*payment))
}

// Approve confirms a pending payment and reconciles its bill.
func (ctl *PaymentController) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payment id")
	}

	payment, err := ctl.Reconciler.ApprovePayment(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Payment approved", dto.FromModel(*payment))
}

// Reject turns a pending payment down, recording the reason.
func (ctl *PaymentController) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payment id")
	}

	var req dto.RejectPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	payment, err := ctl.Reconciler.RejectPayment(c.Context(), id, req.Reason)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Payment rejected", dto.FromModel(*payment))
}

// Delete removes a payment and re-reconciles its bill from the approved
// payments that remain.
func (ctl *PaymentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payment id")
	}

	if err := ctl.Reconciler.DeletePayment(c.Context(), id); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Payment deleted", fiber.Map{"payment_id": id})
}

// List returns all payments, filterable by bill, tenant and status.
func (ctl *PaymentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.Model(&model.PaymentModel{})

	if billID := c.Query("bill_id"); billID != "" {
		q = q.Where("payment_bill_id = ?", billID)
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		q = q.Where("payment_tenant_id = ?", tenantID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("payment_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.PaymentModel
	if err := q.Order("payment_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Payments fetched",
		dto.FromModels(rows), helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// ListMine returns the caller's own payments.
func (ctl *PaymentController) ListMine(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.Model(&model.PaymentModel{}).Where("payment_tenant_id = ?", tenantID)

	if status := c.Query("status"); status != "" {
		q = q.Where("payment_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.PaymentModel
	if err := q.Order("payment_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Payments fetched",
		dto.FromModels(rows), helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
