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
	invModel "lodge/internal/domains/inventory/model"
	vendorMocks "lodge/internal/domains/vendors/mocks"
	"lodge/internal/domains/vendors/model"
	"lodge/internal/domains/vendors/model/dto"
	"lodge/internal/domains/vendors/service"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
)

func money(value string) decimal.Decimal {
	d, _ := decimal.NewFromString(value)

	return d
}

type vendorFixture struct {
	vendors        *vendorMocks.MockVendor
	purchaseOrders *vendorMocks.MockPurchaseOrder
	items          *inventoryMocks.MockStockItem
	transactions   *inventoryMocks.MockStockTransaction
	cache          *cacheMocks.MockRedisCache
	sqlmock        sqlmock.Sqlmock
	svc            service.Vendor
}

func newVendorFixture(t *testing.T, ctrl *gomock.Controller) vendorFixture {
	t.Helper()

	db, smock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	f := vendorFixture{
		vendors:        vendorMocks.NewMockVendor(ctrl),
		purchaseOrders: vendorMocks.NewMockPurchaseOrder(ctrl),
		items:          inventoryMocks.NewMockStockItem(ctrl),
		transactions:   inventoryMocks.NewMockStockTransaction(ctrl),
		cache:          cacheMocks.NewMockRedisCache(ctrl),
		sqlmock:        smock,
	}

	f.items.EXPECT().BeginTx(gomock.Any()).DoAndReturn(func(ctx context.Context) (*sqlx.Tx, error) {
		return sqlxDB.BeginTxx(ctx, nil)
	}).AnyTimes()

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.vendors, f.purchaseOrders, f.items, f.transactions, cfg, f.cache, mocks.NewOtel())

	return f
}

func pendingPurchaseOrder() model.PurchaseOrder {
	return model.PurchaseOrder{
		ID:       "po-1",
		VendorID: "vendor-1",
		Lines: model.PurchaseOrderLines{
			{ItemID: "item-rice", Name: "Basmati Rice", Quantity: money("50"), CostPerUnit: money("80")},
			{ItemID: "item-oil", Name: "Sunflower Oil", Quantity: money("20"), CostPerUnit: money("150")},
		},
		Total:  money("7000"),
		Status: model.StatusPending,
	}
}

func stockItem(id, name, quantity string) invModel.StockItem {
	return invModel.StockItem{
		ID:       id,
		Name:     name,
		Category: invModel.CategoryFood,
		Unit:     "kg",
		Quantity: money(quantity),
	}
}

func TestVendorService_ReceivePurchaseOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newVendorFixture(t, ctrl)

	f.purchaseOrders.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(pendingPurchaseOrder(), nil)

	f.sqlmock.ExpectBegin()
	f.sqlmock.ExpectCommit()

	f.items.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(stockItem("item-rice", "Basmati Rice", "25"), nil)

	f.items.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(stockItem("item-oil", "Sunflower Oil", "5"), nil)

	var stockedIn []invModel.StockTransaction

	f.transactions.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, transaction invModel.StockTransaction) error {
			stockedIn = append(stockedIn, transaction)

			return nil
		}).
		Times(2)

	var quantities []decimal.Decimal

	f.items.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
			quantity, ok := fields[invModel.FieldQuantity].(decimal.Decimal)
			assert.True(t, ok)
			quantities = append(quantities, quantity)

			return nil
		}).
		Times(2)

	f.purchaseOrders.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
			assert.Equal(t, model.StatusReceived, fields[model.FieldStatus])

			return nil
		})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "storekeeper")
	res, err := f.svc.ReceivePurchaseOrder(ctx, "po-1")

	assert.NoError(t, err)
	assert.Equal(t, model.StatusReceived, res.Status)

	require.Len(t, stockedIn, 2)
	assert.Equal(t, invModel.TransactionStockIn, stockedIn[0].Type)
	require.NotNil(t, stockedIn[0].Reference)
	assert.Equal(t, "po-1", *stockedIn[0].Reference)

	require.Len(t, quantities, 2)
	assert.True(t, quantities[0].Equal(money("75")), "rice: got %s", quantities[0])
	assert.True(t, quantities[1].Equal(money("25")), "oil: got %s", quantities[1])
}

func TestVendorService_ReceivePurchaseOrder_AlreadyReceived(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newVendorFixture(t, ctrl)

	received := pendingPurchaseOrder()
	received.Status = model.StatusReceived

	// Receiving twice must not stock the lines in again.
	f.purchaseOrders.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(received, nil)

	res, err := f.svc.ReceivePurchaseOrder(context.Background(), "po-1")

	assert.NoError(t, err)
	assert.Equal(t, model.StatusReceived, res.Status)
}

func TestVendorService_ReceivePurchaseOrder_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newVendorFixture(t, ctrl)

	cancelled := pendingPurchaseOrder()
	cancelled.Status = model.StatusCancelled

	f.purchaseOrders.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(cancelled, nil)

	_, err := f.svc.ReceivePurchaseOrder(context.Background(), "po-1")

	assert.Error(t, err)
	assert.Equal(t, 409, failure.GetCode(err))
}

func TestVendorService_CreatePurchaseOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newVendorFixture(t, ctrl)

	f.vendors.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Vendor{ID: "vendor-1", Name: "Metro Supplies", Phone: "9800000001", Active: true}, nil)

	// The line omits the cost, so it falls back to the item's stored cost.
	f.items.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, _ ...string) (invModel.StockItem, error) {
			item := stockItem("item-rice", "Basmati Rice", "25")
			item.CostPerUnit = money("80")

			return item, nil
		})

	var inserted model.PurchaseOrder

	f.purchaseOrders.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, order model.PurchaseOrder) error {
			inserted = order

			return nil
		})

	req := dto.CreatePurchaseOrderRequest{
		VendorID: "vendor-1",
		Lines: []dto.PurchaseOrderLineRequest{
			{ItemID: "item-rice", Quantity: money("50")},
		},
	}

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "storekeeper")
	res, err := f.svc.CreatePurchaseOrder(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
	require.Len(t, inserted.Lines, 1)
	assert.True(t, inserted.Lines[0].CostPerUnit.Equal(money("80")))
	assert.True(t, inserted.Total.Equal(money("4000")), "total: got %s", inserted.Total)
}

func TestVendorService_CreatePurchaseOrder_InactiveVendor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newVendorFixture(t, ctrl)

	f.vendors.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Vendor{ID: "vendor-1", Name: "Metro Supplies", Phone: "9800000001", Active: false}, nil)

	req := dto.CreatePurchaseOrderRequest{
		VendorID: "vendor-1",
		Lines: []dto.PurchaseOrderLineRequest{
			{ItemID: "item-rice", Quantity: money("50")},
		},
	}

	_, err := f.svc.CreatePurchaseOrder(context.Background(), req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "vendor is inactive")
}

func TestVendorService_Delete_PendingPurchaseOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newVendorFixture(t, ctrl)

	f.vendors.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	f.purchaseOrders.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	err := f.svc.Delete(context.Background(), "vendor-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pending purchase orders")
}
