package model

import (
	"database/sql"
	"lodge/shared/billing"
	"lodge/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bills"
	EntityName = "bill"

	FieldID            = "id"
	FieldInvoiceNo     = "invoice_no"
	FieldBookingID     = "booking_id"
	FieldOrderID       = "order_id"
	FieldGuestID       = "guest_id"
	FieldRoomLabel     = "room_label"
	FieldItems         = "items"
	FieldDiscount      = "discount"
	FieldSubtotal      = "subtotal"
	FieldTaxAmount     = "tax_amount"
	FieldNetTotal      = "net_total"
	FieldPaymentStatus = "payment_status"
	FieldBillDate      = "bill_date"
)

const (
	PaymentStatusPaid          = "Paid"
	PaymentStatusPending       = "Pending"
	PaymentStatusPartiallyPaid = "PartiallyPaid"
)

type Bill struct {
	ID            string          `db:"id"`
	InvoiceNo     string          `db:"invoice_no"`
	BookingID     sql.NullString  `db:"booking_id"`
	OrderID       sql.NullString  `db:"order_id"`
	GuestID       sql.NullString  `db:"guest_id"`
	RoomLabel     string          `db:"room_label"`
	Items         billing.Items   `db:"items"`
	Discount      decimal.Decimal `db:"discount"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	TaxAmount     decimal.Decimal `db:"tax_amount"`
	NetTotal      decimal.Decimal `db:"net_total"`
	PaymentStatus string          `db:"payment_status"`
	BillDate      time.Time       `db:"bill_date"`
	model.Metadata
}
