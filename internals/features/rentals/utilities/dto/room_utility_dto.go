package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "dormku_backend/internals/features/rentals/utilities/model"
)

type RecordUtilityRequest struct {
	RoomID uuid.UUID `json:"room_id" validate:"required"`
	Month  time.Time `json:"month" validate:"required"`

	WaterPrevious *decimal.Decimal `json:"water_previous,omitempty"`
	WaterCurrent  decimal.Decimal  `json:"water_current" validate:"required"`
	WaterRate     decimal.Decimal  `json:"water_rate" validate:"required"`

	ElectricityPrevious *decimal.Decimal `json:"electricity_previous,omitempty"`
	ElectricityCurrent  decimal.Decimal  `json:"electricity_current" validate:"required"`
	ElectricityRate     decimal.Decimal  `json:"electricity_rate" validate:"required"`
}

type UpdateUtilityRequest struct {
	WaterPrevious *decimal.Decimal `json:"water_previous,omitempty"`
	WaterCurrent  *decimal.Decimal `json:"water_current,omitempty"`
	WaterRate     *decimal.Decimal `json:"water_rate,omitempty"`

	ElectricityPrevious *decimal.Decimal `json:"electricity_previous,omitempty"`
	ElectricityCurrent  *decimal.Decimal `json:"electricity_current,omitempty"`
	ElectricityRate     *decimal.Decimal `json:"electricity_rate,omitempty"`
}

type RoomUtilityResponse struct {
	RoomUtilityID uuid.UUID `json:"room_utility_id"`
	RoomID        uuid.UUID `json:"room_id"`
	Month         time.Time `json:"month"`

	WaterPrevious *decimal.Decimal `json:"water_previous,omitempty"`
	WaterCurrent  decimal.Decimal  `json:"water_current"`
	WaterRate     decimal.Decimal  `json:"water_rate"`
	WaterUsage    decimal.Decimal  `json:"water_usage"`
	WaterCost     decimal.Decimal  `json:"water_cost"`

	ElectricityPrevious *decimal.Decimal `json:"electricity_previous,omitempty"`
	ElectricityCurrent  decimal.Decimal  `json:"electricity_current"`
	ElectricityRate     decimal.Decimal  `json:"electricity_rate"`
	ElectricityUsage    decimal.Decimal  `json:"electricity_usage"`
	ElectricityCost     decimal.Decimal  `json:"electricity_cost"`
}

func FromModel(m model.RoomUtilityModel) RoomUtilityResponse {
	return RoomUtilityResponse{
		RoomUtilityID:       m.RoomUtilityID,
		RoomID:              m.RoomUtilityRoomID,
		Month:               m.RoomUtilityMonth,
		WaterPrevious:       m.RoomUtilityWaterPrevious,
		WaterCurrent:        m.RoomUtilityWaterCurrent,
		WaterRate:           m.RoomUtilityWaterRate,
		WaterUsage:          m.RoomUtilityWaterUsage,
		WaterCost:           m.RoomUtilityWaterCost,
		ElectricityPrevious: m.RoomUtilityElectricityPrevious,
		ElectricityCurrent:  m.RoomUtilityElectricityCurrent,
		ElectricityRate:     m.RoomUtilityElectricityRate,
		ElectricityUsage:    m.RoomUtilityElectricityUsage,
		ElectricityCost:     m.RoomUtilityElectricityCost,
	}
}

func FromModels(list []model.RoomUtilityModel) []RoomUtilityResponse {
	out := make([]RoomUtilityResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
