package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "dormku_backend/internals/features/rentals/buildings/dto"
	model "dormku_backend/internals/features/rentals/buildings/model"
	helper "dormku_backend/internals/helpers"
)

type BuildingController struct {
	DB *gorm.DB
}

func NewBuildingController(db *gorm.DB) *BuildingController {
	return &BuildingController{DB: db}
}

/* ======================= CREATE ======================= */
// POST /api/a/buildings
func (h *BuildingController) Create(c *fiber.Ctx) error {
	var req dto.CreateBuildingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Building name already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create building")
	}
	return helper.JsonCreated(c, "Building created", dto.FromModel(*m))
}

/* ======================= LIST ======================= */
// GET /api/a/buildings
func (h *BuildingController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := h.DB.Model(&model.BuildingModel{}).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.BuildingModel
	if err := h.DB.
		Order("building_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModels(list), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/buildings/:id
func (h *BuildingController) GetByID(c *fiber.Ctx) error {
	var row model.BuildingModel
	if err := h.DB.Where("building_id = ?", c.Params("id")).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Building not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModel(row))
}

/* ======================= UPDATE (partial) ======================= */
// PUT /api/a/buildings/:id
func (h *BuildingController) Update(c *fiber.Ctx) error {
	var req dto.UpdateBuildingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var curr model.BuildingModel
	if err := h.DB.Where("building_id = ?", c.Params("id")).First(&curr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Building not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	patch := map[string]interface{}{}
	if req.Name != nil {
		patch["building_name"] = *req.Name
	}
	if req.Address != nil {
		patch["building_address"] = *req.Address
	}
	if len(patch) == 0 {
		return helper.JsonOK(c, "No changes", dto.FromModel(curr))
	}

	if err := h.DB.Model(&model.BuildingModel{}).
		Where("building_id = ?", curr.BuildingID).
		Updates(patch).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Building name already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update building")
	}

	var updated model.BuildingModel
	if err := h.DB.Where("building_id = ?", curr.BuildingID).First(&updated).Error; err != nil {
		return helper.JsonOK(c, "Building updated", dto.FromModel(curr))
	}
	return helper.JsonOK(c, "Building updated", dto.FromModel(updated))
}

/* ======================= DELETE (soft) ======================= */
// DELETE /api/a/buildings/:id
func (h *BuildingController) Delete(c *fiber.Ctx) error {
	res := h.DB.Where("building_id = ?", c.Params("id")).Delete(&model.BuildingModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Building not found")
	}
	return helper.JsonOK(c, "Building deleted", fiber.Map{"id": c.Params("id")})
}
