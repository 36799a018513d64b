package dto

import (
	"database/sql"
	"time"

	"lodge/internal/domains/inventory/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateStockItemRequest struct {
	Name         string          `json:"name"          validate:"required,max=100"`
	Category     string          `json:"category"      validate:"required,oneof=Food Beverage Housekeeping Supplies"`
	Unit         string          `json:"unit"          validate:"required,max=20"`
	Quantity     decimal.Decimal `json:"quantity"      validate:"omitempty"`
	ReorderLevel decimal.Decimal `json:"reorder_level" validate:"omitempty"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit" validate:"omitempty"`
	ExpiryDate   *time.Time      `json:"expiry_date"   validate:"omitempty"`
	VendorID     string          `json:"vendor_id"     validate:"omitempty,uuid"`
}

func (c *CreateStockItemRequest) ToModel(user string) model.StockItem {
	item := model.StockItem{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Category:     c.Category,
		Unit:         c.Unit,
		Quantity:     c.Quantity,
		ReorderLevel: c.ReorderLevel,
		CostPerUnit:  c.CostPerUnit,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if c.ExpiryDate != nil {
		item.ExpiryDate = sql.NullTime{Time: *c.ExpiryDate, Valid: true}
	}

	if c.VendorID != "" {
		item.VendorID = sql.NullString{String: c.VendorID, Valid: true}
	}

	return item
}

type UpdateStockItemRequest struct {
	Name         string           `db:"name"          json:"name"          validate:"omitempty,max=100"`
	Category     string           `db:"category"      json:"category"      validate:"omitempty,oneof=Food Beverage Housekeeping Supplies"`
	Unit         string           `db:"unit"          json:"unit"          validate:"omitempty,max=20"`
	ReorderLevel *decimal.Decimal `db:"reorder_level" json:"reorder_level" validate:"omitempty"`
	CostPerUnit  *decimal.Decimal `db:"cost_per_unit" json:"cost_per_unit" validate:"omitempty"`
	ExpiryDate   *time.Time       `db:"expiry_date"   json:"expiry_date"   validate:"omitempty"`
	VendorID     *string          `json:"vendor_id"   validate:"omitempty"`
}

type StockItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	VendorID     string          `json:"vendor_id,omitempty"`
	LowStock     bool            `json:"low_stock"`
	gDto.Metadata
}

func (r *StockItemResponse) FromModel(model model.StockItem) {
	r.ID = model.ID
	r.Name = model.Name
	r.Category = model.Category
	r.Unit = model.Unit
	r.Quantity = model.Quantity
	r.ReorderLevel = model.ReorderLevel
	r.CostPerUnit = model.CostPerUnit
	r.LowStock = model.LowStock()

	if model.ExpiryDate.Valid {
		expiry := model.ExpiryDate.Time
		r.ExpiryDate = &expiry
	}

	if model.VendorID.Valid {
		r.VendorID = model.VendorID.String
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetStockItemsResponse struct {
	Items     []StockItemResponse `json:"items"`
	TotalPage int                 `json:"total_page"`
	TotalData int                 `json:"total_data"`
}

func (r *GetStockItemsResponse) FromModels(models []model.StockItem, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]StockItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

type RecordTransactionRequest struct {
	ItemID    string          `json:"item_id"   validate:"required,uuid"`
	Type      string          `json:"type"      validate:"required,oneof=StockIn StockOut Adjustment Wastage"`
	Quantity  decimal.Decimal `json:"quantity"  validate:"required"`
	Reason    *string         `json:"reason"    validate:"omitempty,max=200"`
	Reference *string         `json:"reference" validate:"omitempty,max=100"`
}

func (c *RecordTransactionRequest) ToModel(user string) model.StockTransaction {
	return model.StockTransaction{
		ID:        uuid.NewString(),
		ItemID:    c.ItemID,
		Type:      c.Type,
		Quantity:  c.Quantity,
		Reason:    c.Reason,
		Reference: c.Reference,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type TransactionResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason,omitempty"`
	Reference string          `json:"reference,omitempty"`
	gDto.Metadata
}

func (r *TransactionResponse) FromModel(model model.StockTransaction) {
	r.ID = model.ID
	r.ItemID = model.ItemID
	r.Type = model.Type
	r.Quantity = model.Quantity

	if model.Reason != nil {
		r.Reason = *model.Reason
	}

	if model.Reference != nil {
		r.Reference = *model.Reference
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTransactionsResponse) FromModels(models []model.StockTransaction, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Transactions = make([]TransactionResponse, len(models))
	for i, mod := range models {
		r.Transactions[i].FromModel(mod)
	}
}

// StockAlertsResponse lists items needing attention, either running low or
// approaching their expiry date.
type StockAlertsResponse struct {
	Items []StockItemResponse `json:"items"`
}

func (r *StockAlertsResponse) FromModels(models []model.StockItem) {
	r.Items = make([]StockItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}
