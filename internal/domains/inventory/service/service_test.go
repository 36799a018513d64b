package service_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	inventoryMocks "lodge/internal/domains/inventory/mocks"
	"lodge/internal/domains/inventory/model"
	"lodge/internal/domains/inventory/model/dto"
	"lodge/internal/domains/inventory/service"
	vendorMocks "lodge/internal/domains/vendors/mocks"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
)

func money(value string) decimal.Decimal {
	d, _ := decimal.NewFromString(value)

	return d
}

type inventoryFixture struct {
	items        *inventoryMocks.MockStockItem
	transactions *inventoryMocks.MockStockTransaction
	vendors      *vendorMocks.MockVendor
	cache        *cacheMocks.MockRedisCache
	sqlmock      sqlmock.Sqlmock
	svc          service.Inventory
}

func newInventoryFixture(t *testing.T, ctrl *gomock.Controller) inventoryFixture {
	t.Helper()

	db, smock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	f := inventoryFixture{
		items:        inventoryMocks.NewMockStockItem(ctrl),
		transactions: inventoryMocks.NewMockStockTransaction(ctrl),
		vendors:      vendorMocks.NewMockVendor(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		sqlmock:      smock,
	}

	f.items.EXPECT().BeginTx(gomock.Any()).DoAndReturn(func(ctx context.Context) (*sqlx.Tx, error) {
		return sqlxDB.BeginTxx(ctx, nil)
	}).AnyTimes()

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.items, f.transactions, f.vendors, cfg, f.cache, mocks.NewOtel())

	return f
}

func riceItem(quantity string) model.StockItem {
	return model.StockItem{
		ID:           "item-rice",
		Name:         "Basmati Rice",
		Category:     model.CategoryFood,
		Unit:         "kg",
		Quantity:     money(quantity),
		ReorderLevel: money("10"),
		CostPerUnit:  money("80"),
	}
}

func TestInventoryService_RecordTransaction(t *testing.T) {
	tests := []struct {
		name          string
		req           dto.RecordTransactionRequest
		have          string
		wantRemaining string
	}{
		{
			name:          "stock out deducts",
			req:           dto.RecordTransactionRequest{ItemID: "item-rice", Type: model.TransactionStockOut, Quantity: money("5")},
			have:          "25",
			wantRemaining: "20",
		},
		{
			name:          "stock in adds",
			req:           dto.RecordTransactionRequest{ItemID: "item-rice", Type: model.TransactionStockIn, Quantity: money("50")},
			have:          "25",
			wantRemaining: "75",
		},
		{
			name:          "wastage deducts",
			req:           dto.RecordTransactionRequest{ItemID: "item-rice", Type: model.TransactionWastage, Quantity: money("2.5")},
			have:          "25",
			wantRemaining: "22.5",
		},
		{
			name:          "negative adjustment deducts",
			req:           dto.RecordTransactionRequest{ItemID: "item-rice", Type: model.TransactionAdjustment, Quantity: money("-3")},
			have:          "25",
			wantRemaining: "22",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newInventoryFixture(t, ctrl)

			f.items.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(riceItem(tt.have), nil)

			f.sqlmock.ExpectBegin()
			f.sqlmock.ExpectCommit()

			f.transactions.EXPECT().
				InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, transaction model.StockTransaction) error {
					assert.Equal(t, tt.req.Type, transaction.Type)

					return nil
				})

			f.items.EXPECT().
				UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
					remaining, ok := fields[model.FieldQuantity].(decimal.Decimal)
					assert.True(t, ok)
					assert.True(t, remaining.Equal(money(tt.wantRemaining)), "remaining: got %s", remaining)

					return nil
				})

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "storekeeper")
			res, err := f.svc.RecordTransaction(ctx, tt.req)

			assert.NoError(t, err)
			assert.Equal(t, tt.req.Type, res.Type)
		})
	}
}

func TestInventoryService_RecordTransaction_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.RecordTransactionRequest
		have    string
		wantMsg string
	}{
		{
			name:    "stock out beyond quantity",
			req:     dto.RecordTransactionRequest{ItemID: "item-rice", Type: model.TransactionStockOut, Quantity: money("30")},
			have:    "25",
			wantMsg: "insufficient stock",
		},
		{
			name:    "adjustment below zero",
			req:     dto.RecordTransactionRequest{ItemID: "item-rice", Type: model.TransactionAdjustment, Quantity: money("-26")},
			have:    "25",
			wantMsg: "insufficient stock",
		},
		{
			name:    "non-positive stock out",
			req:     dto.RecordTransactionRequest{ItemID: "item-rice", Type: model.TransactionStockOut, Quantity: money("-1")},
			wantMsg: "must be positive",
		},
		{
			name:    "zero adjustment",
			req:     dto.RecordTransactionRequest{ItemID: "item-rice", Type: model.TransactionAdjustment, Quantity: decimal.Zero},
			wantMsg: "must not be zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newInventoryFixture(t, ctrl)

			if tt.have != "" {
				f.items.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(riceItem(tt.have), nil)
			}

			_, err := f.svc.RecordTransaction(context.Background(), tt.req)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestInventoryService_CreateItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInventoryFixture(t, ctrl)

	f.vendors.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	f.items.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil)

	req := dto.CreateStockItemRequest{
		Name:         "Basmati Rice",
		Category:     model.CategoryFood,
		Unit:         "kg",
		Quantity:     money("25"),
		ReorderLevel: money("10"),
		CostPerUnit:  money("80"),
		VendorID:     "vendor-1",
	}

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "storekeeper")
	res, err := f.svc.CreateItem(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, "Basmati Rice", res.Name)
	assert.False(t, res.LowStock)
}

func TestInventoryService_CreateItem_Rejected(t *testing.T) {
	tests := []struct {
		name        string
		req         dto.CreateStockItemRequest
		vendorKnown *bool
		wantCode    int
	}{
		{
			name:     "negative quantity",
			req:      dto.CreateStockItemRequest{Name: "Rice", Category: model.CategoryFood, Unit: "kg", Quantity: money("-1")},
			wantCode: 400,
		},
		{
			name:        "unknown vendor",
			req:         dto.CreateStockItemRequest{Name: "Rice", Category: model.CategoryFood, Unit: "kg", Quantity: money("5"), VendorID: "vendor-missing"},
			vendorKnown: boolPtr(false),
			wantCode:    404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newInventoryFixture(t, ctrl)

			if tt.vendorKnown != nil {
				f.vendors.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(*tt.vendorKnown, nil)
			}

			_, err := f.svc.CreateItem(context.Background(), tt.req)

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestInventoryService_LowStockAlerts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInventoryFixture(t, ctrl)

	low := riceItem("8")

	f.items.EXPECT().
		GetLowStock(gomock.Any()).
		Return([]model.StockItem{low}, nil)

	res, err := f.svc.LowStockAlerts(context.Background())

	assert.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.True(t, res.Items[0].LowStock)
}

func TestInventoryService_ExpiryAlerts_DefaultHorizon(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newInventoryFixture(t, ctrl)

	f.items.EXPECT().
		GetExpiringBefore(gomock.Any(), gomock.Any()).
		Return([]model.StockItem{}, nil)

	res, err := f.svc.ExpiryAlerts(context.Background(), 0)

	assert.NoError(t, err)
	assert.Empty(t, res.Items)
}

func boolPtr(b bool) *bool {
	return &b
}
