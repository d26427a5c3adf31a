package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	roomModel "dormku_backend/internals/features/rentals/rooms/model"
	dto "dormku_backend/internals/features/rentals/tenants/dto"
	model "dormku_backend/internals/features/rentals/tenants/model"
	helper "dormku_backend/internals/helpers"
)

type TenantController struct {
	DB *gorm.DB
}

func NewTenantController(db *gorm.DB) *TenantController {
	return &TenantController{DB: db}
}

// ensureRoomHasCapacity checks the occupancy invariant: active tenants in a
// room must stay at or below its max occupancy. Returns the room row.
func ensureRoomHasCapacity(tx *gorm.DB, roomID uuid.UUID, excludeTenant *uuid.UUID) (*roomModel.RoomModel, error) {
	var room roomModel.RoomModel
	if err := tx.Where("room_id = ?", roomID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Room not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	q := tx.Model(&model.TenantModel{}).
		Where("tenant_room_id = ? AND tenant_status = ?", roomID, model.TenantStatusActive)
	if excludeTenant != nil {
		q = q.Where("tenant_id <> ?", *excludeTenant)
	}
	var occupied int64
	if err := q.Count(&occupied).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if occupied >= int64(room.RoomMaxOccupancy) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Room is already at maximum occupancy")
	}
	return &room, nil
}

// refreshRoomStatus flips a room between available/occupied based on its
// active tenant count. Rooms in maintenance are left alone.
func refreshRoomStatus(tx *gorm.DB, roomID uuid.UUID) {
	var room roomModel.RoomModel
	if err := tx.Where("room_id = ?", roomID).First(&room).Error; err != nil {
		return
	}
	if room.RoomStatus == roomModel.RoomStatusMaintenance {
		return
	}
	var occupied int64
	if err := tx.Model(&model.TenantModel{}).
		Where("tenant_room_id = ? AND tenant_status = ?", roomID, model.TenantStatusActive).
		Count(&occupied).Error; err != nil {
		return
	}
	status := roomModel.RoomStatusAvailable
	if occupied > 0 {
		status = roomModel.RoomStatusOccupied
	}
	tx.Model(&roomModel.RoomModel{}).Where("room_id = ?", roomID).Update("room_status", status)
}

/* ======================= CREATE ======================= */
// POST /api/a/tenants
func (h *TenantController) Create(c *fiber.Ctx) error {
	var req dto.CreateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := ensureRoomHasCapacity(tx, req.RoomID, nil); err != nil {
			return err
		}
		if err := tx.Create(m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create tenant")
		}
		refreshRoomStatus(tx, req.RoomID)
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Tenant created", dto.FromModel(*m))
}

/* ======================= LIST ======================= */
// GET /api/a/tenants?room_id=&status=
func (h *TenantController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.TenantModel{})
	if v := c.Query("room_id"); v != "" {
		base = base.Where("tenant_room_id = ?", v)
	}
	if v := c.Query("status"); v != "" {
		base = base.Where("tenant_status = ?", v)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.TenantModel
	if err := base.
		Order("tenant_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModels(list), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/tenants/:id
func (h *TenantController) GetByID(c *fiber.Ctx) error {
	var row model.TenantModel
	if err := h.DB.Where("tenant_id = ?", c.Params("id")).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Tenant not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModel(row))
}

/* ======================= UPDATE (partial) ======================= */
// PUT /api/a/tenants/:id
func (h *TenantController) Update(c *fiber.Ctx) error {
	var req dto.UpdateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var curr model.TenantModel
	if err := h.DB.Where("tenant_id = ?", c.Params("id")).First(&curr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Tenant not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	patch := map[string]interface{}{}
	if req.Name != nil {
		patch["tenant_name"] = *req.Name
	}
	if req.Phone != nil {
		patch["tenant_phone"] = *req.Phone
	}
	if req.Email != nil {
		patch["tenant_email"] = *req.Email
	}
	if req.Status != nil {
		patch["tenant_status"] = *req.Status
	}
	if req.MoveOutDate != nil {
		patch["tenant_move_out_date"] = *req.MoveOutDate
	}
	if req.LineUserID != nil {
		patch["tenant_line_user_id"] = *req.LineUserID
	}
	if req.RoomID != nil {
		patch["tenant_room_id"] = *req.RoomID
	}
	if len(patch) == 0 {
		return helper.JsonOK(c, "No changes", dto.FromModel(curr))
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if req.RoomID != nil && *req.RoomID != curr.TenantRoomID {
			if _, err := ensureRoomHasCapacity(tx, *req.RoomID, &curr.TenantID); err != nil {
				return err
			}
		}
		if err := tx.Model(&model.TenantModel{}).
			Where("tenant_id = ?", curr.TenantID).
			Updates(patch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update tenant")
		}
		// Status or room moves change both rooms' occupancy.
		refreshRoomStatus(tx, curr.TenantRoomID)
		if req.RoomID != nil && *req.RoomID != curr.TenantRoomID {
			refreshRoomStatus(tx, *req.RoomID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	var updated model.TenantModel
	if err := h.DB.Where("tenant_id = ?", curr.TenantID).First(&updated).Error; err != nil {
		return helper.JsonOK(c, "Tenant updated", dto.FromModel(curr))
	}
	return helper.JsonOK(c, "Tenant updated", dto.FromModel(updated))
}

/* ======================= DELETE (soft) ======================= */
// DELETE /api/a/tenants/:id
func (h *TenantController) Delete(c *fiber.Ctx) error {
	var curr model.TenantModel
	if err := h.DB.Where("tenant_id = ?", c.Params("id")).First(&curr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Tenant not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&curr).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		refreshRoomStatus(tx, curr.TenantRoomID)
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Tenant deleted", fiber.Map{"id": curr.TenantID})
}
