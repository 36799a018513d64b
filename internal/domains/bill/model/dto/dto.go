package dto

import (
	"database/sql"
	"lodge/internal/domains/bill/model"
	"lodge/shared"
	"lodge/shared/billing"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BillItemRequest struct {
	Description string          `json:"description" validate:"required,max=200"`
	Quantity    int             `json:"quantity"    validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"  validate:"required"`
	Category    string          `json:"category"    validate:"omitempty,oneof=Room 'Food & Beverage' Service Other"`
}

// CreateBillRequest creates a manual bill not tied to a checkout.
type CreateBillRequest struct {
	GuestID   string            `json:"guest_id"   validate:"omitempty,uuid"`
	RoomLabel string            `json:"room_label" validate:"omitempty,max=20"`
	Items     []BillItemRequest `json:"items"      validate:"required,min=1,dive"`
	Discount  decimal.Decimal   `json:"discount"   validate:"omitempty"`
}

func (c *CreateBillRequest) ToModel(user, invoiceNo string, taxRate decimal.Decimal) (model.Bill, error) {
	items := billing.Items{}

	var err error
	for _, item := range c.Items {
		category := item.Category
		if category == constant.Empty {
			category = billing.CategoryOther
		}

		items, err = billing.AddAdHocItem(items, item.Description, item.Quantity, item.UnitPrice, category)
		if err != nil {
			return model.Bill{}, err //nolint:wrapcheck
		}
	}

	if err = billing.ValidateDiscount(items, c.Discount, taxRate); err != nil {
		return model.Bill{}, err //nolint:wrapcheck
	}

	totals := billing.ComputeTotals(items, c.Discount, taxRate)

	bill := model.Bill{
		ID:            uuid.NewString(),
		InvoiceNo:     invoiceNo,
		RoomLabel:     c.RoomLabel,
		Items:         items,
		Discount:      c.Discount,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		NetTotal:      totals.NetTotal,
		PaymentStatus: model.PaymentStatusPending,
		BillDate:      timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if c.GuestID != constant.Empty {
		bill.GuestID = sql.NullString{String: c.GuestID, Valid: true}
	}

	return bill, nil
}

type UpdateBillRequest struct {
	RoomLabel string            `json:"room_label" validate:"omitempty,max=20"`
	Items     []BillItemRequest `json:"items"      validate:"omitempty,dive"`
	Discount  *decimal.Decimal  `json:"discount"   validate:"omitempty"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Paid Pending PartiallyPaid"`
}

type BillResponse struct {
	ID            string          `json:"id"`
	InvoiceNo     string          `json:"invoice_no"`
	BookingID     string          `json:"booking_id,omitempty"`
	OrderID       string          `json:"order_id,omitempty"`
	GuestID       string          `json:"guest_id,omitempty"`
	RoomLabel     string          `json:"room_label,omitempty"`
	Items         billing.Items   `json:"items"`
	Discount      decimal.Decimal `json:"discount"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	NetTotal      decimal.Decimal `json:"net_total"`
	PaymentStatus string          `json:"payment_status"`
	BillDate      string          `json:"bill_date"`
	gDto.Metadata
}

func (r *BillResponse) FromModel(model model.Bill) {
	r.ID = model.ID
	r.InvoiceNo = model.InvoiceNo
	r.BookingID = model.BookingID.String
	r.OrderID = model.OrderID.String
	r.GuestID = model.GuestID.String
	r.RoomLabel = model.RoomLabel
	r.Items = model.Items
	r.Discount = model.Discount
	r.Subtotal = model.Subtotal
	r.TaxAmount = model.TaxAmount
	r.NetTotal = model.NetTotal
	r.PaymentStatus = model.PaymentStatus
	r.BillDate = timezone.Format(model.BillDate, constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetBillsResponse struct {
	Bills     []BillResponse `json:"bills"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetBillsResponse) FromModels(models []model.Bill, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bills = make([]BillResponse, len(models))
	for i, mod := range models {
		r.Bills[i].FromModel(mod)
	}
}
