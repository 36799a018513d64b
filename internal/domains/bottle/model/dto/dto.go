package dto

import (
	"lodge/internal/domains/bottle/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBottleRequest struct {
	Name              string          `json:"name"                   validate:"required,max=100"`
	Brand             *string         `json:"brand"                  validate:"omitempty,max=100"`
	TotalVolumeMl     decimal.Decimal `json:"total_volume_ml"        validate:"required"`
	ServingSizeMl     decimal.Decimal `json:"serving_size_ml"        validate:"required"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold_ml" validate:"omitempty"`
}

func (c *CreateBottleRequest) ToModel(user string) model.Bottle {
	return model.Bottle{
		ID:                uuid.NewString(),
		Name:              c.Name,
		Brand:             c.Brand,
		TotalVolumeMl:     c.TotalVolumeMl,
		CurrentVolumeMl:   c.TotalVolumeMl,
		ServingSizeMl:     c.ServingSizeMl,
		WastageMl:         decimal.Zero,
		LowStockThreshold: c.LowStockThreshold,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBottleRequest struct {
	Name              string           `db:"name"                   json:"name"                   validate:"omitempty,max=100"`
	Brand             *string          `db:"brand"                  json:"brand"                  validate:"omitempty,max=100"`
	ServingSizeMl     *decimal.Decimal `db:"serving_size_ml"        json:"serving_size_ml"        validate:"omitempty"`
	LowStockThreshold *decimal.Decimal `db:"low_stock_threshold_ml" json:"low_stock_threshold_ml" validate:"omitempty"`
}

type RecordWastageRequest struct {
	AmountMl decimal.Decimal `json:"amount_ml" validate:"required"`
	Reason   string          `json:"reason"    validate:"omitempty,max=200"`
}

type BottleResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Brand             string          `json:"brand,omitempty"`
	TotalVolumeMl     decimal.Decimal `json:"total_volume_ml"`
	CurrentVolumeMl   decimal.Decimal `json:"current_volume_ml"`
	ServingSizeMl     decimal.Decimal `json:"serving_size_ml"`
	WastageMl         decimal.Decimal `json:"wastage_ml"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold_ml"`
	ServingsLeft      int             `json:"servings_left"`
	LowStock          bool            `json:"low_stock"`
	gDto.Metadata
}

func (r *BottleResponse) FromModel(model model.Bottle) {
	r.ID = model.ID
	r.Name = model.Name
	r.TotalVolumeMl = model.TotalVolumeMl
	r.CurrentVolumeMl = model.CurrentVolumeMl
	r.ServingSizeMl = model.ServingSizeMl
	r.WastageMl = model.WastageMl
	r.LowStockThreshold = model.LowStockThreshold
	r.ServingsLeft = model.ServingsLeft()
	r.LowStock = model.LowStock()

	if model.Brand != nil {
		r.Brand = *model.Brand
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBottlesResponse struct {
	Bottles   []BottleResponse `json:"bottles"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetBottlesResponse) FromModels(models []model.Bottle, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bottles = make([]BottleResponse, len(models))
	for i, mod := range models {
		r.Bottles[i].FromModel(mod)
	}
}

// BottleUsage is one row of the consumption report.
type BottleUsage struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	ConsumedMl      decimal.Decimal `json:"consumed_ml"`
	WastageMl       decimal.Decimal `json:"wastage_ml"`
	CurrentVolumeMl decimal.Decimal `json:"current_volume_ml"`
	ServingsLeft    int             `json:"servings_left"`
	LowStock        bool            `json:"low_stock"`
}

type BottleUsageResponse struct {
	Usage []BottleUsage `json:"usage"`
}

func (r *BottleUsageResponse) FromModels(models []model.Bottle) {
	r.Usage = make([]BottleUsage, len(models))
	for i, mod := range models {
		r.Usage[i] = BottleUsage{
			ID:              mod.ID,
			Name:            mod.Name,
			ConsumedMl:      mod.ConsumedMl(),
			WastageMl:       mod.WastageMl,
			CurrentVolumeMl: mod.CurrentVolumeMl,
			ServingsLeft:    mod.ServingsLeft(),
			LowStock:        mod.LowStock(),
		}
	}
}
