package dto

import (
	"lodge/internal/domains/booking/model"
	"lodge/shared"
	"lodge/shared/billing"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	RoomID         string          `json:"room_id"         validate:"required,uuid"`
	GuestID        string          `json:"guest_id"        validate:"required,uuid"`
	CheckIn        string          `json:"check_in"        validate:"required"`
	CheckOut       string          `json:"check_out"       validate:"required"`
	AdvancePayment decimal.Decimal `json:"advance_payment" validate:"omitempty"`
	Discount       decimal.Decimal `json:"discount"        validate:"omitempty"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn, err := timezone.Parse(constant.DateOnlyFormat, c.CheckIn)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("check_in must be a date in YYYY-MM-DD format") //nolint:wrapcheck
	}

	checkOut, err := timezone.Parse(constant.DateOnlyFormat, c.CheckOut)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("check_out must be a date in YYYY-MM-DD format") //nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return model.Booking{}, failure.BadRequestFromString("check_out must be after check_in") //nolint:wrapcheck
	}

	if c.AdvancePayment.IsNegative() || c.Discount.IsNegative() {
		return model.Booking{}, failure.BadRequestFromString("amounts cannot be negative") //nolint:wrapcheck
	}

	return model.Booking{
		ID:             uuid.NewString(),
		RoomID:         c.RoomID,
		GuestID:        c.GuestID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Status:         model.StatusPending,
		Items:          billing.Items{},
		Discount:       c.Discount,
		AdvancePayment: c.AdvancePayment,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// AddOnItemRequest is an extra charge attached to a stay, such as a meal or a
// service fee, billed at checkout.
type AddOnItemRequest struct {
	Description string          `json:"description" validate:"required,max=200"`
	Quantity    int             `json:"quantity"    validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"  validate:"required"`
	Category    string          `json:"category"    validate:"omitempty,oneof=Room 'Food & Beverage' Service Other"`
}

type UpdateBookingRequest struct {
	Status         string             `json:"status"          validate:"omitempty,oneof=Pending Confirmed Cancelled"`
	Discount       *decimal.Decimal   `json:"discount"        validate:"omitempty"`
	AdvancePayment *decimal.Decimal   `json:"advance_payment" validate:"omitempty"`
	AddOnItems     []AddOnItemRequest `json:"add_on_items"    validate:"omitempty,dive"`
}

type ShiftRoomRequest struct {
	RoomID string `json:"room_id" validate:"required,uuid"`
}

type BookingResponse struct {
	ID             string          `json:"id"`
	RoomID         string          `json:"room_id"`
	GuestID        string          `json:"guest_id"`
	CheckIn        string          `json:"check_in"`
	CheckOut       string          `json:"check_out"`
	Status         string          `json:"status"`
	Items          billing.Items   `json:"items"`
	Discount       decimal.Decimal `json:"discount"`
	AdvancePayment decimal.Decimal `json:"advance_payment"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	BillID         string          `json:"bill_id,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.GuestID = model.GuestID
	r.CheckIn = timezone.Format(model.CheckIn, constant.DateOnlyFormat)
	r.CheckOut = timezone.Format(model.CheckOut, constant.DateOnlyFormat)
	r.Status = model.Status
	r.Items = model.Items
	r.Discount = model.Discount
	r.AdvancePayment = model.AdvancePayment
	r.TotalAmount = model.TotalAmount
	if model.BillID.Valid {
		r.BillID = model.BillID.String
	}
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
