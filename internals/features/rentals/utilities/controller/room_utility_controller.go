package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	roomModel "dormku_backend/internals/features/rentals/rooms/model"
	dto "dormku_backend/internals/features/rentals/utilities/dto"
	model "dormku_backend/internals/features/rentals/utilities/model"
	service "dormku_backend/internals/features/rentals/utilities/service"
	helper "dormku_backend/internals/helpers"
	"dormku_backend/internals/helpers/dbtime"
)

type RoomUtilityController struct {
	DB *gorm.DB
}

func NewRoomUtilityController(db *gorm.DB) *RoomUtilityController {
	return &RoomUtilityController{DB: db}
}

/* ======================= RECORD ======================= */
// POST /api/a/utilities
func (h *RoomUtilityController) Record(c *fiber.Ctx) error {
	var req dto.RecordUtilityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var count int64
	if err := h.DB.Model(&roomModel.RoomModel{}).
		Where("room_id = ?", req.RoomID).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Room not found")
	}

	month := dbtime.NormalizeBillingMonth(req.Month)

	var existing int64
	if err := h.DB.Model(&model.RoomUtilityModel{}).
		Where("room_utility_room_id = ? AND room_utility_month = ?", req.RoomID, month).
		Count(&existing).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if existing > 0 {
		return fiber.NewError(fiber.StatusConflict, "Utility record already exists for this room and month")
	}

	policy := service.CurrentMissingPreviousPolicy()
	waterUsage, ok := service.DeriveUsage(req.WaterPrevious, req.WaterCurrent, policy)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Previous water reading is required")
	}
	elecUsage, ok := service.DeriveUsage(req.ElectricityPrevious, req.ElectricityCurrent, policy)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Previous electricity reading is required")
	}

	m := model.RoomUtilityModel{
		RoomUtilityRoomID:              req.RoomID,
		RoomUtilityMonth:               month,
		RoomUtilityWaterPrevious:       req.WaterPrevious,
		RoomUtilityWaterCurrent:        req.WaterCurrent,
		RoomUtilityWaterRate:           req.WaterRate,
		RoomUtilityWaterUsage:          waterUsage,
		RoomUtilityWaterCost:           service.DeriveCost(waterUsage, req.WaterRate),
		RoomUtilityElectricityPrevious: req.ElectricityPrevious,
		RoomUtilityElectricityCurrent:  req.ElectricityCurrent,
		RoomUtilityElectricityRate:     req.ElectricityRate,
		RoomUtilityElectricityUsage:    elecUsage,
		RoomUtilityElectricityCost:     service.DeriveCost(elecUsage, req.ElectricityRate),
	}
	if err := h.DB.Create(&m).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Utility record already exists for this room and month")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record utility reading")
	}
	return helper.JsonCreated(c, "Utility reading recorded", dto.FromModel(m))
}

/* ======================= UPDATE ======================= */
// PUT /api/a/utilities/:id
// Derived usage/cost are recomputed whenever a reading or a rate changes.
func (h *RoomUtilityController) Update(c *fiber.Ctx) error {
	var req dto.UpdateUtilityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}

	var curr model.RoomUtilityModel
	if err := h.DB.Where("room_utility_id = ?", c.Params("id")).First(&curr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Utility record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	policy := service.CurrentMissingPreviousPolicy()
	changed := false

	if req.WaterPrevious != nil {
		curr.RoomUtilityWaterPrevious = req.WaterPrevious
		changed = true
	}
	if req.WaterCurrent != nil {
		curr.RoomUtilityWaterCurrent = *req.WaterCurrent
		changed = true
	}
	if req.WaterRate != nil {
		curr.RoomUtilityWaterRate = *req.WaterRate
		changed = true
	}
	if req.ElectricityPrevious != nil {
		curr.RoomUtilityElectricityPrevious = req.ElectricityPrevious
		changed = true
	}
	if req.ElectricityCurrent != nil {
		curr.RoomUtilityElectricityCurrent = *req.ElectricityCurrent
		changed = true
	}
	if req.ElectricityRate != nil {
		curr.RoomUtilityElectricityRate = *req.ElectricityRate
		changed = true
	}

	if !changed {
		return helper.JsonOK(c, "No changes", dto.FromModel(curr))
	}

	waterUsage, ok := service.DeriveUsage(curr.RoomUtilityWaterPrevious, curr.RoomUtilityWaterCurrent, policy)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Previous water reading is required")
	}
	elecUsage, ok := service.DeriveUsage(curr.RoomUtilityElectricityPrevious, curr.RoomUtilityElectricityCurrent, policy)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Previous electricity reading is required")
	}
	curr.RoomUtilityWaterUsage = waterUsage
	curr.RoomUtilityWaterCost = service.DeriveCost(waterUsage, curr.RoomUtilityWaterRate)
	curr.RoomUtilityElectricityUsage = elecUsage
	curr.RoomUtilityElectricityCost = service.DeriveCost(elecUsage, curr.RoomUtilityElectricityRate)

	if err := h.DB.Save(&curr).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update utility record")
	}
	return helper.JsonOK(c, "Utility record updated", dto.FromModel(curr))
}

/* ======================= LIST ======================= */
// GET /api/a/utilities?room_id=&month=
func (h *RoomUtilityController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.RoomUtilityModel{})
	if v := c.Query("room_id"); v != "" {
		base = base.Where("room_utility_room_id = ?", v)
	}
	if v := c.Query("month"); v != "" {
		base = base.Where("room_utility_month = ?", v)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.RoomUtilityModel
	if err := base.
		Order("room_utility_month DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModels(list), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/utilities/:id
func (h *RoomUtilityController) GetByID(c *fiber.Ctx) error {
	var row model.RoomUtilityModel
	if err := h.DB.Where("room_utility_id = ?", c.Params("id")).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Utility record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModel(row))
}
