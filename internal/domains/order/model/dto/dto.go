package dto

import (
	"lodge/internal/domains/order/model"
	"lodge/shared"
	"lodge/shared/billing"
	gDto "lodge/shared/dto"

	"github.com/shopspring/decimal"
)

type OrderLineRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"     validate:"required,min=1"`
}

type PlaceOrderRequest struct {
	TableLabel *string            `json:"table_label" validate:"omitempty,max=30"`
	Lines      []OrderLineRequest `json:"lines"     validate:"required,min=1,dive"`
	Discount   decimal.Decimal    `json:"discount"    validate:"omitempty"`
}

type UpdateOrderRequest struct {
	PaymentStatus string `json:"payment_status" validate:"omitempty,oneof=Paid Pending"`
	KotPrinted    *bool  `json:"kot_printed"    validate:"omitempty"`
}

type SplitOrderRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type OrderResponse struct {
	ID            string          `json:"id"`
	TableLabel    string          `json:"table_label,omitempty"`
	Items         billing.Items   `json:"items"`
	Discount      decimal.Decimal `json:"discount"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	NetTotal      decimal.Decimal `json:"net_total"`
	PaymentStatus string          `json:"payment_status"`
	KotPrinted    bool            `json:"kot_printed"`
	ParentOrderID string          `json:"parent_order_id,omitempty"`
	gDto.Metadata
}

func (r *OrderResponse) FromModel(model model.Order) {
	r.ID = model.ID
	r.Items = model.Items
	r.Discount = model.Discount
	r.Subtotal = model.Subtotal
	r.TaxAmount = model.TaxAmount
	r.NetTotal = model.NetTotal
	r.PaymentStatus = model.PaymentStatus
	r.KotPrinted = model.KotPrinted

	if model.TableLabel != nil {
		r.TableLabel = *model.TableLabel
	}

	if model.ParentOrderID.Valid {
		r.ParentOrderID = model.ParentOrderID.String
	}

	r.Metadata.FromModel(model.Metadata)
}

type SplitOrderResponse struct {
	PaidPart    OrderResponse `json:"paid_part"`
	PendingPart OrderResponse `json:"pending_part"`
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetOrdersResponse) FromModels(models []model.Order, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Orders = make([]OrderResponse, len(models))
	for i, mod := range models {
		r.Orders[i].FromModel(mod)
	}
}
