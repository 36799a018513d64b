package dto

import (
	"lodge/internal/domains/room/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	Number       string          `json:"number"         validate:"required,max=10"`
	RoomType     string          `json:"room_type"      validate:"required,oneof=Standard Deluxe Suite"`
	Floor        int             `json:"floor"          validate:"omitempty,min=0"`
	RatePerNight decimal.Decimal `json:"rate_per_night" validate:"required"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:           uuid.NewString(),
		Number:       c.Number,
		RoomType:     c.RoomType,
		Floor:        c.Floor,
		RatePerNight: c.RatePerNight,
		Status:       model.StatusVacant,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Number       string           `db:"number"         json:"number"         validate:"omitempty,max=10"`
	RoomType     string           `db:"room_type"      json:"room_type"      validate:"omitempty,oneof=Standard Deluxe Suite"`
	Floor        *int             `db:"floor"          json:"floor"          validate:"omitempty,min=0"`
	RatePerNight *decimal.Decimal `db:"rate_per_night" json:"rate_per_night" validate:"omitempty"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Vacant Occupied Cleaning Maintenance"`
}

type RoomResponse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	RoomType     string          `json:"room_type"`
	Floor        int             `json:"floor"`
	RatePerNight decimal.Decimal `json:"rate_per_night"`
	Status       string          `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.RoomType = model.RoomType
	r.Floor = model.Floor
	r.RatePerNight = model.RatePerNight
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
