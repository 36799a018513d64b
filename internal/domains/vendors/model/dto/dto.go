package dto

import (
	"database/sql"
	"time"

	"lodge/internal/domains/vendors/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateVendorRequest struct {
	Name          string  `json:"name"           validate:"required,max=100"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=100"`
	Phone         string  `json:"phone"          validate:"required,max=20"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Address       *string `json:"address"        validate:"omitempty,max=300"`
	Gstin         *string `json:"gstin"          validate:"omitempty,max=20"`
}

func (c *CreateVendorRequest) ToModel(user string) model.Vendor {
	return model.Vendor{
		ID:            uuid.NewString(),
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		Gstin:         c.Gstin,
		Active:        true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateVendorRequest struct {
	Name          string  `db:"name"           json:"name"           validate:"omitempty,max=100"`
	ContactPerson *string `db:"contact_person" json:"contact_person" validate:"omitempty,max=100"`
	Phone         string  `db:"phone"          json:"phone"          validate:"omitempty,max=20"`
	Email         *string `db:"email"          json:"email"          validate:"omitempty,email"`
	Address       *string `db:"address"        json:"address"        validate:"omitempty,max=300"`
	Gstin         *string `db:"gstin"          json:"gstin"          validate:"omitempty,max=20"`
	Active        *bool   `json:"active"       validate:"omitempty"`
}

type VendorResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person,omitempty"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	Gstin         string `json:"gstin,omitempty"`
	Active        bool   `json:"active"`
	gDto.Metadata
}

func (r *VendorResponse) FromModel(model model.Vendor) {
	r.ID = model.ID
	r.Name = model.Name
	r.Phone = model.Phone
	r.Active = model.Active

	if model.ContactPerson != nil {
		r.ContactPerson = *model.ContactPerson
	}

	if model.Email != nil {
		r.Email = *model.Email
	}

	if model.Address != nil {
		r.Address = *model.Address
	}

	if model.Gstin != nil {
		r.Gstin = *model.Gstin
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetVendorsResponse struct {
	Vendors   []VendorResponse `json:"vendors"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetVendorsResponse) FromModels(models []model.Vendor, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Vendors = make([]VendorResponse, len(models))
	for i, mod := range models {
		r.Vendors[i].FromModel(mod)
	}
}

type PurchaseOrderLineRequest struct {
	ItemID      string          `json:"item_id"       validate:"required,uuid"`
	Quantity    decimal.Decimal `json:"quantity"      validate:"required"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit" validate:"omitempty"`
}

type CreatePurchaseOrderRequest struct {
	VendorID     string                     `json:"vendor_id"     validate:"required,uuid"`
	Lines        []PurchaseOrderLineRequest `json:"lines"         validate:"required,min=1,dive"`
	ExpectedDate *time.Time                 `json:"expected_date" validate:"omitempty"`
}

// ToModel builds a pending purchase order; line names and the total are
// filled in by the service once the stock items are resolved.
func (c *CreatePurchaseOrderRequest) ToModel(user string, lines model.PurchaseOrderLines) model.PurchaseOrder {
	order := model.PurchaseOrder{
		ID:       uuid.NewString(),
		VendorID: c.VendorID,
		Lines:    lines,
		Total:    lines.Total(),
		Status:   model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if c.ExpectedDate != nil {
		order.ExpectedDate = sql.NullTime{Time: *c.ExpectedDate, Valid: true}
	}

	return order
}

type UpdatePurchaseOrderRequest struct {
	Status       string     `json:"status"        validate:"omitempty,oneof=Pending Cancelled"`
	ExpectedDate *time.Time `db:"expected_date"   json:"expected_date" validate:"omitempty"`
}

type PurchaseOrderResponse struct {
	ID           string                   `json:"id"`
	VendorID     string                   `json:"vendor_id"`
	Lines        model.PurchaseOrderLines `json:"lines"`
	Total        decimal.Decimal          `json:"total"`
	Status       string                   `json:"status"`
	ExpectedDate *time.Time               `json:"expected_date,omitempty"`
	ReceivedAt   *time.Time               `json:"received_at,omitempty"`
	gDto.Metadata
}

func (r *PurchaseOrderResponse) FromModel(model model.PurchaseOrder) {
	r.ID = model.ID
	r.VendorID = model.VendorID
	r.Lines = model.Lines
	r.Total = model.Total
	r.Status = model.Status

	if model.ExpectedDate.Valid {
		expected := model.ExpectedDate.Time
		r.ExpectedDate = &expected
	}

	if model.ReceivedAt.Valid {
		received := model.ReceivedAt.Time
		r.ReceivedAt = &received
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetPurchaseOrdersResponse struct {
	PurchaseOrders []PurchaseOrderResponse `json:"purchase_orders"`
	TotalPage      int                     `json:"total_page"`
	TotalData      int                     `json:"total_data"`
}

func (r *GetPurchaseOrdersResponse) FromModels(models []model.PurchaseOrder, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.PurchaseOrders = make([]PurchaseOrderResponse, len(models))
	for i, mod := range models {
		r.PurchaseOrders[i].FromModel(mod)
	}
}
