package model

import (
	"database/sql"
	"lodge/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "menu_items"
	EntityName = "menu item"

	FieldID            = "id"
	FieldName          = "name"
	FieldCategory      = "category"
	FieldPrice         = "price"
	FieldStockQuantity = "stock_quantity"
	FieldBottleID      = "bottle_id"
	FieldAvailable     = "available"
)

const (
	CategoryFood     = "Food"
	CategoryBeverage = "Beverage"
	CategoryLiquor   = "Liquor"
	CategorySnacks   = "Snacks"
)

// MenuItem is a sellable unit at the bar counter. Liquor items link to a
// bulk bottle; selling one drains the bottle by the pour size times quantity.
type MenuItem struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	Category      string          `db:"category"`
	Price         decimal.Decimal `db:"price"`
	StockQuantity int             `db:"stock_quantity"`
	BottleID      sql.NullString  `db:"bottle_id"`
	Available     bool            `db:"available"`
	model.Metadata
}
