package model

import (
	"database/sql"
	"lodge/shared/billing"
	"lodge/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldRoomID         = "room_id"
	FieldGuestID        = "guest_id"
	FieldCheckIn        = "check_in"
	FieldCheckOut       = "check_out"
	FieldStatus         = "status"
	FieldItems          = "items"
	FieldDiscount       = "discount"
	FieldAdvancePayment = "advance_payment"
	FieldTotalAmount    = "total_amount"
	FieldBillID         = "bill_id"
)

const (
	StatusPending    = "Pending"
	StatusConfirmed  = "Confirmed"
	StatusCheckedIn  = "CheckedIn"
	StatusCheckedOut = "CheckedOut"
	StatusCancelled  = "Cancelled"
)

type Booking struct {
	ID             string          `db:"id"`
	RoomID         string          `db:"room_id"`
	GuestID        string          `db:"guest_id"`
	CheckIn        time.Time       `db:"check_in"`
	CheckOut       time.Time       `db:"check_out"`
	Status         string          `db:"status"`
	Items          billing.Items   `db:"items"`
	Discount       decimal.Decimal `db:"discount"`
	AdvancePayment decimal.Decimal `db:"advance_payment"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	BillID         sql.NullString  `db:"bill_id"`
	model.Metadata
}

// Active reports whether the booking currently holds its room.
func (b Booking) Active() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCheckedIn
}
