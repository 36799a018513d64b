package model

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	gModel "lodge/shared/model"
)

const (
	ItemTableName  = "stock_items"
	ItemEntityName = "stock item"

	FieldID           = "id"
	FieldName         = "name"
	FieldCategory     = "category"
	FieldUnit         = "unit"
	FieldQuantity     = "quantity"
	FieldReorderLevel = "reorder_level"
	FieldCostPerUnit  = "cost_per_unit"
	FieldExpiryDate   = "expiry_date"
	FieldVendorID     = "vendor_id"

	CategoryFood         = "Food"
	CategoryBeverage     = "Beverage"
	CategoryHousekeeping = "Housekeeping"
	CategorySupplies     = "Supplies"
)

// StockItem is a consumable tracked by the back office, separate from the
// sellable menu. Quantity is decimal so loose units (kg, ltr) track fractions.
type StockItem struct {
	ID           string          `db:"id"`
	Name         string          `db:"name"`
	Category     string          `db:"category"`
	Unit         string          `db:"unit"`
	Quantity     decimal.Decimal `db:"quantity"`
	ReorderLevel decimal.Decimal `db:"reorder_level"`
	CostPerUnit  decimal.Decimal `db:"cost_per_unit"`
	ExpiryDate   sql.NullTime    `db:"expiry_date"`
	VendorID     sql.NullString  `db:"vendor_id"`
	gModel.Metadata
}

func (i *StockItem) LowStock() bool {
	return i.Quantity.LessThanOrEqual(i.ReorderLevel)
}

// ExpiringWithin reports whether the item expires on or before the horizon.
// Items without an expiry date never expire.
func (i *StockItem) ExpiringWithin(horizon time.Time) bool {
	return i.ExpiryDate.Valid && !i.ExpiryDate.Time.After(horizon)
}

const (
	TransactionTableName  = "stock_transactions"
	TransactionEntityName = "stock transaction"

	FieldItemID    = "item_id"
	FieldType      = "type"
	FieldReason    = "reason"
	FieldReference = "reference"

	TransactionStockIn    = "StockIn"
	TransactionStockOut   = "StockOut"
	TransactionAdjustment = "Adjustment"
	TransactionWastage    = "Wastage"
)

// StockTransaction is one movement in the ledger. StockIn and Adjustment add
// to the item quantity, StockOut and Wastage subtract from it.
type StockTransaction struct {
	ID        string          `db:"id"`
	ItemID    string          `db:"item_id"`
	Type      string          `db:"type"`
	Quantity  decimal.Decimal `db:"quantity"`
	Reason    *string         `db:"reason"`
	Reference *string         `db:"reference"`
	gModel.Metadata
}

// Delta is the signed effect of the transaction on the item quantity.
func (t *StockTransaction) Delta() decimal.Decimal {
	switch t.Type {
	case TransactionStockOut, TransactionWastage:
		return t.Quantity.Neg()
	default:
		return t.Quantity
	}
}
