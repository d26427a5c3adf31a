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
	dto "dormku_backend/internals/features/rentals/maintenance/dto"
	model "dormku_backend/internals/features/rentals/maintenance/model"
	tenantModel "dormku_backend/internals/features/rentals/tenants/model"
	helper "dormku_backend/internals/helpers"
	"dormku_backend/internals/mq"
	notifModel "dormku_backend/internals/features/notifications/model"
)

type MaintenanceController struct {
	DB        *gorm.DB
	Publisher mq.Publisher
}

func NewMaintenanceController(db *gorm.DB, pub mq.Publisher) *MaintenanceController {
	return &MaintenanceController{DB: db, Publisher: pub}
}

var validate = validator.New()

// =========================================================
// Tenant endpoints
// =========================================================

// Create files a maintenance request for the caller's own room.
func (ctl *MaintenanceController) Create(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var tenant tenantModel.TenantModel
	if err := ctl.DB.Where("tenant_id = ?", tenantID).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tenant not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	row := model.MaintenanceRequestModel{
		MaintenanceRequestTenantID:    tenant.TenantID,
		MaintenanceRequestRoomID:      tenant.TenantRoomID,
		MaintenanceRequestTitle:       req.Title,
		MaintenanceRequestDescription: req.Description,
		MaintenanceRequestStatus:      model.MaintenanceStatusOpen,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Maintenance request submitted", dto.FromModel(row))
}

// ListMine returns the caller's own requests, newest first.
func (ctl *MaintenanceController) ListMine(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.Model(&model.MaintenanceRequestModel{}).
		Where("maintenance_request_tenant_id = ?", tenantID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.MaintenanceRequestModel
	if err := q.Order("maintenance_request_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Maintenance requests fetched",
		dto.FromModels(rows), helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =========================================================
// Admin endpoints
// =========================================================

// List returns all requests, filterable by status and room.
func (ctl *MaintenanceController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.Model(&model.MaintenanceRequestModel{})

	if status := c.Query("status"); status != "" {
		q = q.Where("maintenance_request_status = ?", status)
	}
	if roomID := c.Query("room_id"); roomID != "" {
		q = q.Where("maintenance_request_room_id = ?", roomID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.MaintenanceRequestModel
	if err := q.Order("maintenance_request_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Maintenance requests fetched",
		dto.FromModels(rows), helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func (ctl *MaintenanceController) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var row model.MaintenanceRequestModel
	if err := ctl.DB.Where("maintenance_request_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Maintenance request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "Maintenance request fetched", dto.FromModel(row))
}

func (ctl *MaintenanceController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	var row model.MaintenanceRequestModel
	if err := ctl.DB.Where("maintenance_request_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Maintenance request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctl.DB.Delete(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "Maintenance request deleted", fiber.Map{"maintenance_request_id": row.MaintenanceRequestID})
}

// UpdateStatus moves a request along its lifecycle and notifies the tenant.
func (ctl *MaintenanceController) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.UpdateMaintenanceStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var row model.MaintenanceRequestModel
	if err := ctl.DB.Where("maintenance_request_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Maintenance request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	row.MaintenanceRequestStatus = model.MaintenanceStatus(req.Status)
	if err := ctl.DB.Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ctl.enqueueStatusNotification(row)

	return helper.JsonOK(c, "Maintenance request updated", dto.FromModel(row))
}

// enqueueStatusNotification is best effort: a broker hiccup must not fail
// the status update itself.
func (ctl *MaintenanceController) enqueueStatusNotification(row model.MaintenanceRequestModel) {
	if ctl.Publisher == nil {
		return
	}
	job := mq.SendLineNotificationJob{
		TenantID:         row.MaintenanceRequestTenantID,
		NotificationType: string(notifModel.NotificationTypeMaintenanceUpdated),
		Extra: map[string]string{
			"title":  row.MaintenanceRequestTitle,
			"status": string(row.MaintenanceRequestStatus),
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mq.PublishJSON(ctx, ctl.Publisher, constants.QueueSendLineNotification, job); err != nil {
		log.Printf("[MAINTENANCE] failed to enqueue notification for request %s: %v", row.MaintenanceRequestID, err)
	}
}
