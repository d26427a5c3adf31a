package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "dormku_backend/internals/features/rentals/rooms/model"
)

type CreateRoomRequest struct {
	BuildingID   uuid.UUID       `json:"building_id" validate:"required"`
	Number       string          `json:"number" validate:"required,max=20"`
	MonthlyRent  decimal.Decimal `json:"monthly_rent" validate:"required"`
	MaxOccupancy int             `json:"max_occupancy" validate:"omitempty,min=1"`
}

type UpdateRoomRequest struct {
	Number       *string          `json:"number,omitempty" validate:"omitempty,max=20"`
	MonthlyRent  *decimal.Decimal `json:"monthly_rent,omitempty"`
	MaxOccupancy *int             `json:"max_occupancy,omitempty" validate:"omitempty,min=1"`
	Status       *string          `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance"`
}

type RoomResponse struct {
	RoomID       uuid.UUID        `json:"room_id"`
	BuildingID   uuid.UUID        `json:"building_id"`
	Number       string           `json:"number"`
	MonthlyRent  decimal.Decimal  `json:"monthly_rent"`
	MaxOccupancy int              `json:"max_occupancy"`
	Status       model.RoomStatus `json:"status"`
}

func (r CreateRoomRequest) ToModel() *model.RoomModel {
	occupancy := r.MaxOccupancy
	if occupancy <= 0 {
		occupancy = 1
	}
	return &model.RoomModel{
		RoomBuildingID:   r.BuildingID,
		RoomNumber:       r.Number,
		RoomMonthlyRent:  r.MonthlyRent,
		RoomMaxOccupancy: occupancy,
		RoomStatus:       model.RoomStatusAvailable,
	}
}

func FromModel(m model.RoomModel) RoomResponse {
	return RoomResponse{
		RoomID:       m.RoomID,
		BuildingID:   m.RoomBuildingID,
		Number:       m.RoomNumber,
		MonthlyRent:  m.RoomMonthlyRent,
		MaxOccupancy: m.RoomMaxOccupancy,
		Status:       m.RoomStatus,
	}
}

func FromModels(list []model.RoomModel) []RoomResponse {
	out := make([]RoomResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
