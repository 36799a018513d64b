package model

import (
	"lodge/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID           = "id"
	FieldNumber       = "number"
	FieldRoomType     = "room_type"
	FieldFloor        = "floor"
	FieldRatePerNight = "rate_per_night"
	FieldStatus       = "status"
)

const (
	StatusVacant      = "Vacant"
	StatusOccupied    = "Occupied"
	StatusCleaning    = "Cleaning"
	StatusMaintenance = "Maintenance"
)

const (
	TypeStandard = "Standard"
	TypeDeluxe   = "Deluxe"
	TypeSuite    = "Suite"
)

type Room struct {
	ID           string          `db:"id"`
	Number       string          `db:"number"`
	RoomType     string          `db:"room_type"`
	Floor        int             `db:"floor"`
	RatePerNight decimal.Decimal `db:"rate_per_night"`
	Status       string          `db:"status"`
	model.Metadata
}
