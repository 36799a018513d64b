package dto

import (
	"database/sql"

	"lodge/internal/domains/menu/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateMenuItemRequest struct {
	Name          string          `json:"name"           validate:"required,max=100"`
	Category      string          `json:"category"       validate:"required,oneof=Food Beverage Liquor Snacks"`
	Price         decimal.Decimal `json:"price"          validate:"required"`
	StockQuantity int             `json:"stock_quantity" validate:"omitempty,gte=0"`
	BottleID      string          `json:"bottle_id"      validate:"omitempty,uuid"`
}

func (c *CreateMenuItemRequest) ToModel(user string) model.MenuItem {
	item := model.MenuItem{
		ID:            uuid.NewString(),
		Name:          c.Name,
		Category:      c.Category,
		Price:         c.Price,
		StockQuantity: c.StockQuantity,
		Available:     true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if c.BottleID != constant.Empty {
		item.BottleID = sql.NullString{String: c.BottleID, Valid: true}
	}

	return item
}

type UpdateMenuItemRequest struct {
	Name          string           `db:"name"           json:"name"           validate:"omitempty,max=100"`
	Category      string           `db:"category"       json:"category"       validate:"omitempty,oneof=Food Beverage Liquor Snacks"`
	Price         *decimal.Decimal `db:"price"          json:"price"          validate:"omitempty"`
	StockQuantity *int             `db:"stock_quantity" json:"stock_quantity" validate:"omitempty,gte=0"`
	BottleID      *string          `db:"bottle_id"      json:"bottle_id"      validate:"omitempty"`
	Available     *bool            `db:"available"      json:"available"      validate:"omitempty"`
}

type MenuItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	BottleID      string          `json:"bottle_id,omitempty"`
	Available     bool            `json:"available"`
	gDto.Metadata
}

func (r *MenuItemResponse) FromModel(model model.MenuItem) {
	r.ID = model.ID
	r.Name = model.Name
	r.Category = model.Category
	r.Price = model.Price
	r.StockQuantity = model.StockQuantity
	r.Available = model.Available

	if model.BottleID.Valid {
		r.BottleID = model.BottleID.String
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetMenuItemsResponse struct {
	MenuItems []MenuItemResponse `json:"menu_items"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetMenuItemsResponse) FromModels(models []model.MenuItem, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.MenuItems = make([]MenuItemResponse, len(models))
	for i, mod := range models {
		r.MenuItems[i].FromModel(mod)
	}
}
