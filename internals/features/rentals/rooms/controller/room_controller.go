package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	buildingModel "dormku_backend/internals/features/rentals/buildings/model"
	dto "dormku_backend/internals/features/rentals/rooms/dto"
	model "dormku_backend/internals/features/rentals/rooms/model"
	helper "dormku_backend/internals/helpers"
)

type RoomController struct {
	DB *gorm.DB
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{DB: db}
}

/* ======================= CREATE ======================= */
// POST /api/a/rooms
func (h *RoomController) Create(c *fiber.Ctx) error {
	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var count int64
	if err := h.DB.Model(&buildingModel.BuildingModel{}).
		Where("building_id = ?", req.BuildingID).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Building not found")
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Room number already exists in this building")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create room")
	}
	return helper.JsonCreated(c, "Room created", dto.FromModel(*m))
}

/* ======================= LIST ======================= */
// GET /api/a/rooms?building_id=&status=
func (h *RoomController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.RoomModel{})
	if v := c.Query("building_id"); v != "" {
		base = base.Where("room_building_id = ?", v)
	}
	if v := c.Query("status"); v != "" {
		base = base.Where("room_status = ?", v)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.RoomModel
	if err := base.
		Order("room_number ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModels(list), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/rooms/:id
func (h *RoomController) GetByID(c *fiber.Ctx) error {
	var row model.RoomModel
	if err := h.DB.Where("room_id = ?", c.Params("id")).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Room not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModel(row))
}

/* ======================= UPDATE (partial) ======================= */
// PUT /api/a/rooms/:id
func (h *RoomController) Update(c *fiber.Ctx) error {
	var req dto.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var curr model.RoomModel
	if err := h.DB.Where("room_id = ?", c.Params("id")).First(&curr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Room not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	patch := map[string]interface{}{}
	if req.Number != nil {
		patch["room_number"] = *req.Number
	}
	if req.MonthlyRent != nil {
		patch["room_monthly_rent"] = *req.MonthlyRent
	}
	if req.MaxOccupancy != nil {
		patch["room_max_occupancy"] = *req.MaxOccupancy
	}
	if req.Status != nil {
		patch["room_status"] = *req.Status
	}
	if len(patch) == 0 {
		return helper.JsonOK(c, "No changes", dto.FromModel(curr))
	}

	if err := h.DB.Model(&model.RoomModel{}).
		Where("room_id = ?", curr.RoomID).
		Updates(patch).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Room number already exists in this building")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update room")
	}

	var updated model.RoomModel
	if err := h.DB.Where("room_id = ?", curr.RoomID).First(&updated).Error; err != nil {
		return helper.JsonOK(c, "Room updated", dto.FromModel(curr))
	}
	return helper.JsonOK(c, "Room updated", dto.FromModel(updated))
}

/* ======================= DELETE (soft) ======================= */
// DELETE /api/a/rooms/:id
func (h *RoomController) Delete(c *fiber.Ctx) error {
	res := h.DB.Where("room_id = ?", c.Params("id")).Delete(&model.RoomModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Room not found")
	}
	return helper.JsonOK(c, "Room deleted", fiber.Map{"id": c.Params("id")})
}
