package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	kafkaMocks "lodge/infras/kafka/mocks"
	"lodge/infras/otel/mocks"
	bottleMocks "lodge/internal/domains/bottle/mocks"
	bottleModel "lodge/internal/domains/bottle/model"
	menuMocks "lodge/internal/domains/menu/mocks"
	menuModel "lodge/internal/domains/menu/model"
	orderMocks "lodge/internal/domains/order/mocks"
	"lodge/internal/domains/order/model"
	"lodge/internal/domains/order/model/dto"
	"lodge/internal/domains/order/service"
	"lodge/shared/billing"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

func money(value string) decimal.Decimal {
	d, _ := decimal.NewFromString(value)

	return d
}

type orderFixture struct {
	repo    *orderMocks.MockOrder
	menu    *menuMocks.MockMenu
	bottles *bottleMocks.MockBottle
	cache   *cacheMocks.MockRedisCache
	kafka   *kafkaMocks.MockClient
	sqlmock sqlmock.Sqlmock
	svc     service.Order
}

func newOrderFixture(t *testing.T, ctrl *gomock.Controller) orderFixture {
	t.Helper()

	db, smock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	f := orderFixture{
		repo:    orderMocks.NewMockOrder(ctrl),
		menu:    menuMocks.NewMockMenu(ctrl),
		bottles: bottleMocks.NewMockBottle(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
		sqlmock: smock,
	}

	f.repo.EXPECT().BeginTx(gomock.Any()).DoAndReturn(func(ctx context.Context) (*sqlx.Tx, error) {
		return sqlxDB.BeginTxx(ctx, nil)
	}).AnyTimes()

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Billing.TaxRatePercent = 18
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.menu, f.bottles, cfg, f.cache, mocks.NewOtel(), f.kafka)

	return f
}

func pegItem(stock int, bottleID string) menuModel.MenuItem {
	item := menuModel.MenuItem{
		ID:            "menu-peg",
		Name:          "Whiskey Peg",
		Category:      menuModel.CategoryLiquor,
		Price:         money("250"),
		StockQuantity: stock,
		Available:     true,
	}
	if bottleID != "" {
		item.BottleID = sql.NullString{String: bottleID, Valid: true}
	}

	return item
}

func TestOrderService_Place(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrderFixture(t, ctrl)

	bottle := bottleModel.Bottle{
		ID:              "bottle-1",
		Name:            "House Whiskey",
		TotalVolumeMl:   money("750"),
		CurrentVolumeMl: money("500"),
		ServingSizeMl:   money("30"),
	}

	req := dto.PlaceOrderRequest{
		Lines: []dto.OrderLineRequest{
			{MenuItemID: "menu-peg", Quantity: 3},
		},
		Discount: decimal.Zero,
	}

	f.menu.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(pegItem(10, "bottle-1"), nil)

	f.bottles.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(bottle, nil)

	f.sqlmock.ExpectBegin()
	f.sqlmock.ExpectCommit()

	f.menu.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
			assert.Equal(t, 7, fields[menuModel.FieldStockQuantity])

			return nil
		})

	f.bottles.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
			remaining, ok := fields[bottleModel.FieldCurrentVolumeMl].(decimal.Decimal)
			assert.True(t, ok)
			assert.True(t, remaining.Equal(money("410")), "remaining volume: got %s", remaining)

			return nil
		})

	var inserted model.Order

	f.repo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, order model.Order) error {
			inserted = order

			return nil
		})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "bartender")
	res, err := f.svc.Place(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, res.PaymentStatus)
	assert.True(t, inserted.Subtotal.Equal(money("750")), "subtotal: got %s", inserted.Subtotal)
	assert.True(t, inserted.TaxAmount.Equal(money("135")), "tax: got %s", inserted.TaxAmount)
	assert.True(t, inserted.NetTotal.Equal(money("885")), "net: got %s", inserted.NetTotal)
	require.Len(t, inserted.Items, 1)
	assert.Equal(t, 3, inserted.Items[0].Quantity)
}

func TestOrderService_Place_InsufficientStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrderFixture(t, ctrl)

	// No transaction expectations: a short line must fail the order before
	// anything is written.
	f.menu.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(pegItem(5, ""), nil)

	req := dto.PlaceOrderRequest{
		Lines: []dto.OrderLineRequest{
			{MenuItemID: "menu-peg", Quantity: 6},
		},
	}

	_, err := f.svc.Place(context.Background(), req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestOrderService_Place_RejectedLines(t *testing.T) {
	unavailable := pegItem(10, "")
	unavailable.Available = false

	tests := []struct {
		name    string
		item    menuModel.MenuItem
		getErr  error
		wantMsg string
	}{
		{
			name:    "unknown menu item",
			item:    menuModel.MenuItem{},
			wantMsg: "menu item not found",
		},
		{
			name:    "unavailable menu item",
			item:    unavailable,
			wantMsg: "not available",
		},
		{
			name:    "repository error",
			getErr:  errors.New("database error"),
			wantMsg: "failed to get menu item",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newOrderFixture(t, ctrl)

			f.menu.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tt.item, tt.getErr)

			req := dto.PlaceOrderRequest{
				Lines: []dto.OrderLineRequest{
					{MenuItemID: "menu-peg", Quantity: 1},
				},
			}

			_, err := f.svc.Place(context.Background(), req)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestOrderService_Place_RepeatedLinesAggregate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrderFixture(t, ctrl)

	// Two lines for the same item must be checked and deducted as one.
	f.menu.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(pegItem(5, ""), nil)

	req := dto.PlaceOrderRequest{
		Lines: []dto.OrderLineRequest{
			{MenuItemID: "menu-peg", Quantity: 3},
			{MenuItemID: "menu-peg", Quantity: 3},
		},
	}

	_, err := f.svc.Place(context.Background(), req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func pendingOrder(netTotal string) model.Order {
	items := billing.Items{
		{ID: "li-1", MenuItemID: "menu-peg", Description: "Whiskey Peg", Quantity: 4, UnitPrice: money("250"), LineTotal: money("1000"), Category: billing.CategoryFoodBeverage},
	}

	return model.Order{
		ID:            "order-1",
		Items:         items,
		Discount:      decimal.Zero,
		Subtotal:      money("1000"),
		TaxAmount:     money("180"),
		NetTotal:      money(netTotal),
		PaymentStatus: model.PaymentStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "bartender",
			ModifiedBy: "bartender",
		},
	}
}

func TestOrderService_Split(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrderFixture(t, ctrl)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(pendingOrder("1000"), nil)

	f.sqlmock.ExpectBegin()
	f.sqlmock.ExpectCommit()

	f.repo.EXPECT().
		DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	var parts []model.Order

	f.repo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, order model.Order) error {
			parts = append(parts, order)

			return nil
		}).
		Times(2)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "cashier")
	res, err := f.svc.Split(ctx, dto.SplitOrderRequest{Amount: money("400")}, "order-1")

	assert.NoError(t, err)
	require.Len(t, parts, 2)

	assert.Equal(t, "order-1-s1", parts[0].ID)
	assert.Equal(t, model.PaymentStatusPaid, parts[0].PaymentStatus)
	assert.True(t, parts[0].NetTotal.Equal(money("400")), "paid part: got %s", parts[0].NetTotal)
	assert.Equal(t, "order-1", parts[0].ParentOrderID.String)

	assert.Equal(t, "order-1-s2", parts[1].ID)
	assert.Equal(t, model.PaymentStatusPending, parts[1].PaymentStatus)
	assert.True(t, parts[1].NetTotal.Equal(money("600")), "pending part: got %s", parts[1].NetTotal)

	// Both parts settle the same item list.
	assert.Equal(t, parts[0].Items, parts[1].Items)

	assert.True(t, res.PaidPart.NetTotal.Equal(money("400")))
	assert.True(t, res.PendingPart.NetTotal.Equal(money("600")))
}

func TestOrderService_Split_InvalidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
	}{
		{name: "zero amount", amount: decimal.Zero},
		{name: "negative amount", amount: money("-10")},
		{name: "amount equal to net total", amount: money("1000")},
		{name: "amount above net total", amount: money("1200")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newOrderFixture(t, ctrl)

			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()

			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(pendingOrder("1000"), nil)

			_, err := f.svc.Split(context.Background(), dto.SplitOrderRequest{Amount: tt.amount}, "order-1")

			assert.Error(t, err)
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestOrderService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrderFixture(t, ctrl)

	f.repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	printed := true

	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			assert.Equal(t, model.PaymentStatusPaid, fields[model.FieldPaymentStatus])
			assert.Equal(t, true, fields[model.FieldKotPrinted])

			return nil
		})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "cashier")
	err := f.svc.Update(ctx, dto.UpdateOrderRequest{PaymentStatus: model.PaymentStatusPaid, KotPrinted: &printed}, "order-1")

	assert.NoError(t, err)
}

func TestOrderService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrderFixture(t, ctrl)

	f.repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	err := f.svc.Update(context.Background(), dto.UpdateOrderRequest{PaymentStatus: model.PaymentStatusPaid}, "missing")

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}
