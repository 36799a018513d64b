package model

import (
	"database/sql"
	"lodge/shared/billing"
	"lodge/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "orders"
	EntityName = "order"

	FieldID            = "id"
	FieldTableLabel    = "table_label"
	FieldItems         = "items"
	FieldDiscount      = "discount"
	FieldSubtotal      = "subtotal"
	FieldTaxAmount     = "tax_amount"
	FieldNetTotal      = "net_total"
	FieldPaymentStatus = "payment_status"
	FieldKotPrinted    = "kot_printed"
	FieldParentOrderID = "parent_order_id"
)

const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
)

// Order is a bar counter sale. Splitting a settled-in-parts order replaces
// it with two child orders carrying the parent's id in ParentOrderID.
type Order struct {
	ID            string          `db:"id"`
	TableLabel    *string         `db:"table_label"`
	Items         billing.Items   `db:"items"`
	Discount      decimal.Decimal `db:"discount"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	TaxAmount     decimal.Decimal `db:"tax_amount"`
	NetTotal      decimal.Decimal `db:"net_total"`
	PaymentStatus string          `db:"payment_status"`
	KotPrinted    bool            `db:"kot_printed"`
	ParentOrderID sql.NullString  `db:"parent_order_id"`
	model.Metadata
}
