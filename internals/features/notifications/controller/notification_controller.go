package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "dormku_backend/internals/features/notifications/dto"
	model "dormku_backend/internals/features/notifications/model"
	helper "dormku_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// ListMine returns the caller's own delivery history, newest first.
func (ctl *NotificationController) ListMine(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.Model(&model.NotificationModel{}).
		Where("notification_tenant_id = ?", tenantID)

	if ntype := c.Query("type"); ntype != "" {
		q = q.Where("notification_type = ?", ntype)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.NotificationModel
	if err := q.Order("notification_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Notifications fetched",
		dto.FromModels(rows), helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// List is the admin view over the whole audit trail, filterable by tenant,
// type and delivery status.
func (ctl *NotificationController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.Model(&model.NotificationModel{})

	if tenantID := c.Query("tenant_id"); tenantID != "" {
		q = q.Where("notification_tenant_id = ?", tenantID)
	}
	if ntype := c.Query("type"); ntype != "" {
		q = q.Where("notification_type = ?", ntype)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("notification_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.NotificationModel
	if err := q.Order("notification_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Notifications fetched",
		dto.FromModels(rows), helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
