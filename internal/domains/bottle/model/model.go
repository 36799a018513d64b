package model

import (
	"lodge/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bottles"
	EntityName = "bottle"

	FieldID                = "id"
	FieldName              = "name"
	FieldBrand             = "brand"
	FieldTotalVolumeMl     = "total_volume_ml"
	FieldCurrentVolumeMl   = "current_volume_ml"
	FieldServingSizeMl     = "serving_size_ml"
	FieldWastageMl         = "wastage_ml"
	FieldLowStockThreshold = "low_stock_threshold_ml"
)

// Bottle tracks a bulk liquor container by volume. Pours drain it through
// the linked menu item; current volume is allowed to go negative so an
// over-pour is visible instead of silently clamped.
type Bottle struct {
	ID                string          `db:"id"`
	Name              string          `db:"name"`
	Brand             *string         `db:"brand"`
	TotalVolumeMl     decimal.Decimal `db:"total_volume_ml"`
	CurrentVolumeMl   decimal.Decimal `db:"current_volume_ml"`
	ServingSizeMl     decimal.Decimal `db:"serving_size_ml"`
	WastageMl         decimal.Decimal `db:"wastage_ml"`
	LowStockThreshold decimal.Decimal `db:"low_stock_threshold_ml"`
	model.Metadata
}

// ConsumedMl is the poured volume, wastage included.
func (b Bottle) ConsumedMl() decimal.Decimal {
	return b.TotalVolumeMl.Sub(b.CurrentVolumeMl)
}

// ServingsLeft reports how many full pours remain at the configured serving
// size.
func (b Bottle) ServingsLeft() int {
	if !b.ServingSizeMl.IsPositive() || !b.CurrentVolumeMl.IsPositive() {
		return 0
	}

	return int(b.CurrentVolumeMl.Div(b.ServingSizeMl).IntPart())
}

// LowStock reports whether the remaining volume dropped to the threshold.
func (b Bottle) LowStock() bool {
	return b.CurrentVolumeMl.LessThanOrEqual(b.LowStockThreshold)
}
