package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyTotals is one day of aggregated revenue from a single source, bills
// for the hotel side or orders for the bar side.
type DailyTotals struct {
	Day      time.Time       `db:"day"`
	Revenue  decimal.Decimal `db:"revenue"`
	Taxable  decimal.Decimal `db:"taxable"`
	Tax      decimal.Decimal `db:"tax"`
	Discount decimal.Decimal `db:"discount"`
}
