package dto

import (
	"github.com/google/uuid"

	model "dormku_backend/internals/features/rentals/buildings/model"
)

type CreateBuildingRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Address *string `json:"address,omitempty"`
}

type UpdateBuildingRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Address *string `json:"address,omitempty"`
}

type BuildingResponse struct {
	BuildingID uuid.UUID `json:"building_id"`
	Name       string    `json:"name"`
	Address    *string   `json:"address,omitempty"`
}

func (r CreateBuildingRequest) ToModel() *model.BuildingModel {
	return &model.BuildingModel{
		BuildingName:    r.Name,
		BuildingAddress: r.Address,
	}
}

func FromModel(m model.BuildingModel) BuildingResponse {
	return BuildingResponse{
		BuildingID: m.BuildingID,
		Name:       m.BuildingName,
		Address:    m.BuildingAddress,
	}
}

func FromModels(list []model.BuildingModel) []BuildingResponse {
	out := make([]BuildingResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
