package dto

import (
	"github.com/shopspring/decimal"
)

// SalesReportRow aggregates one calendar day across both revenue streams.
type SalesReportRow struct {
	Date         string          `json:"date"`
	HotelRevenue decimal.Decimal `json:"hotel_revenue"`
	BarRevenue   decimal.Decimal `json:"bar_revenue"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Gst          decimal.Decimal `json:"gst"`
	Discounts    decimal.Decimal `json:"discounts"`
}

type SalesReportResponse struct {
	From           string           `json:"from"`
	To             string           `json:"to"`
	Rows           []SalesReportRow `json:"rows"`
	TotalRevenue   decimal.Decimal  `json:"total_revenue"`
	TotalGst       decimal.Decimal  `json:"total_gst"`
	TotalDiscounts decimal.Decimal  `json:"total_discounts"`
}

// GstReportRow splits the collected tax evenly between the central and state
// components, the usual intra-state treatment.
type GstReportRow struct {
	Date         string          `json:"date"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	GstCollected decimal.Decimal `json:"gst_collected"`
	Cgst         decimal.Decimal `json:"cgst"`
	Sgst         decimal.Decimal `json:"sgst"`
}

type GstReportResponse struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	Rows         []GstReportRow  `json:"rows"`
	TotalTaxable decimal.Decimal `json:"total_taxable"`
	TotalGst     decimal.Decimal `json:"total_gst"`
}
