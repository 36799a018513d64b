package service

import (
	"context"
	"database/sql"
	"fmt"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	bottleModel "lodge/internal/domains/bottle/model"
	bottleRepo "lodge/internal/domains/bottle/repository"
	menuModel "lodge/internal/domains/menu/model"
	menuRepo "lodge/internal/domains/menu/repository"
	"lodge/internal/domains/order/model"
	"lodge/internal/domains/order/model/dto"
	"lodge/internal/domains/order/repository"
	"lodge/shared"
	"lodge/shared/billing"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetOrder    = "order:get"
	cacheGetAllOrder = "order:gets"
	cacheCountOrder  = "order:count"

	cacheGetAllMenu   = "menu:gets"
	cacheGetAllBottle = "bottle:gets"
)

// KotTicket is published to the kitchen ticket topic when an order is placed.
type KotTicket struct {
	OrderID    string    `json:"order_id"`
	TableLabel string    `json:"table_label,omitempty"`
	Lines      []KotLine `json:"lines"`
	PlacedBy   string    `json:"placed_by"`
	PlacedAt   string    `json:"placed_at"`
}

type KotLine struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// orderLine pairs a menu item with the quantity ordered, plus the linked
// bottle drain when the item pours from a bulk container.
type orderLine struct {
	item     menuModel.MenuItem
	quantity int
	bottle   *bottleModel.Bottle
	drainMl  decimal.Decimal
}

type Order interface {
	Place(ctx context.Context, req dto.PlaceOrderRequest) (dto.OrderResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrdersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.OrderResponse, error)
	Update(ctx context.Context, req dto.UpdateOrderRequest, id string) error
	Split(ctx context.Context, req dto.SplitOrderRequest, id string) (dto.SplitOrderResponse, error)
}

type serviceImpl struct {
	repo    repository.Order
	menu    menuRepo.Menu
	bottles bottleRepo.Bottle
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	kafka   kafka.Client
}

func New(
	repo repository.Order,
	menu menuRepo.Menu,
	bottles bottleRepo.Bottle,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafkaClient kafka.Client,
) Order {
	return &serviceImpl{
		repo:    repo,
		menu:    menu,
		bottles: bottles,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		kafka:   kafkaClient,
	}
}

func (s *serviceImpl) taxRate() decimal.Decimal {
	return decimal.NewFromInt(int64(s.cfg.Billing.TaxRatePercent)).Div(decimal.NewFromInt(100))
}

// Place validates stock for every line before touching any of it, then
// deducts menu stock, drains linked bottles and writes the order in one
// transaction. A single short line rejects the whole order.
func (s *serviceImpl) Place(ctx context.Context, req dto.PlaceOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Place")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	lines, err := s.resolveLines(ctx, req.Lines)
	if err != nil {
		return res, err
	}

	items := billing.Items{}
	for _, line := range lines {
		items = billing.AddItem(items, line.item.ID, line.item.Name, line.item.Price, billing.CategoryFoodBeverage)

		for _, built := range items {
			if built.MenuItemID == line.item.ID {
				items = billing.SetQuantity(items, built.ID, line.quantity)

				break
			}
		}
	}

	if err = billing.ValidateDiscount(items, req.Discount, s.taxRate()); err != nil {
		return res, err
	}

	totals := billing.ComputeTotals(items, req.Discount, s.taxRate())

	order := model.Order{
		ID:            uuid.NewString(),
		TableLabel:    req.TableLabel,
		Items:         items,
		Discount:      req.Discount,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		NetTotal:      totals.NetTotal,
		PaymentStatus: model.PaymentStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback order placement")
			}
		}
	}()

	if err = s.applyDeductions(ctx, tx, lines, user); err != nil {
		return res, err
	}

	if err = s.repo.InsertTx(ctx, tx, order); err != nil {
		return res, fmt.Errorf("failed to insert order: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return res, fmt.Errorf("failed to commit order placement: %w", err)
	}

	s.publishKotTicket(ctx, order, user)
	s.invalidate(ctx, order.ID)

	res.FromModel(order)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOrder, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for orders")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders")

		return res, fmt.Errorf("failed to get orders: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save orders to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountOrder, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetOrder, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	order, err := s.getOrder(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(order)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOrderRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if order exists: %w", err)
	}

	if !exist {
		return failure.NotFound("order not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(struct {
		PaymentStatus string `db:"payment_status"`
	}{PaymentStatus: req.PaymentStatus}, user)

	if req.KotPrinted != nil {
		updatedFields[model.FieldKotPrinted] = *req.KotPrinted
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update order")

		return fmt.Errorf("failed to update order: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Split replaces an order with two parts settling the same item list: the
// first carries the paid amount, the second the remainder still owed. The
// amount must stay strictly inside the order's net total.
func (s *serviceImpl) Split(ctx context.Context, req dto.SplitOrderRequest, id string) (res dto.SplitOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Split")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	order, err := s.getOrder(ctx, id)
	if err != nil {
		return res, err
	}

	if !req.Amount.IsPositive() {
		return res, failure.InvalidSplitAmount("split amount must be positive") //nolint:wrapcheck
	}

	if req.Amount.GreaterThanOrEqual(order.NetTotal) {
		return res, failure.InvalidSplitAmount("split amount must be less than the order net total") //nolint:wrapcheck
	}

	now := timezone.Now()
	parent := sql.NullString{String: order.ID, Valid: true}

	paidPart := order
	paidPart.ID = order.ID + "-s1"
	paidPart.NetTotal = req.Amount
	paidPart.PaymentStatus = model.PaymentStatusPaid
	paidPart.ParentOrderID = parent
	paidPart.Metadata = gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: user, ModifiedBy: user}

	pendingPart := order
	pendingPart.ID = order.ID + "-s2"
	pendingPart.NetTotal = order.NetTotal.Sub(req.Amount)
	pendingPart.PaymentStatus = model.PaymentStatusPending
	pendingPart.ParentOrderID = parent
	pendingPart.Metadata = gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: user, ModifiedBy: user}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback order split")
			}
		}
	}()

	if err = s.repo.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return res, fmt.Errorf("failed to remove original order: %w", err)
	}

	if err = s.repo.InsertTx(ctx, tx, paidPart); err != nil {
		return res, fmt.Errorf("failed to insert paid part: %w", err)
	}

	if err = s.repo.InsertTx(ctx, tx, pendingPart); err != nil {
		return res, fmt.Errorf("failed to insert pending part: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return res, fmt.Errorf("failed to commit order split: %w", err)
	}

	s.invalidate(ctx, id)

	res.PaidPart.FromModel(paidPart)
	res.PendingPart.FromModel(pendingPart)

	return res, nil
}

// resolveLines loads every referenced menu item and linked bottle and checks
// stock for the whole order before anything is deducted.
func (s *serviceImpl) resolveLines(ctx context.Context, reqLines []dto.OrderLineRequest) ([]orderLine, error) {
	quantities := map[string]int{}
	sequence := []string{}

	for _, line := range reqLines {
		if _, seen := quantities[line.MenuItemID]; !seen {
			sequence = append(sequence, line.MenuItemID)
		}

		quantities[line.MenuItemID] += line.Quantity
	}

	lines := make([]orderLine, 0, len(sequence))

	for _, menuItemID := range sequence {
		quantity := quantities[menuItemID]

		item, err := s.menu.Get(ctx, shared.FilterByID(menuItemID, menuModel.FieldID, menuModel.TableName))
		if err != nil {
			return nil, fmt.Errorf("failed to get menu item: %w", err)
		}

		if item.ID == constant.Empty {
			return nil, failure.NotFound("menu item not found") //nolint:wrapcheck
		}

		if !item.Available {
			return nil, failure.Conflict(fmt.Sprintf("menu item is not available: %s", item.Name)) //nolint:wrapcheck
		}

		if item.StockQuantity < quantity {
			return nil, failure.InsufficientStock(item.Name) //nolint:wrapcheck
		}

		line := orderLine{item: item, quantity: quantity}

		if item.BottleID.Valid {
			bottle, err := s.bottles.Get(ctx, shared.FilterByID(item.BottleID.String, bottleModel.FieldID, bottleModel.TableName))
			if err != nil {
				return nil, fmt.Errorf("failed to get bottle: %w", err)
			}

			if bottle.ID == constant.Empty {
				return nil, failure.NotFound("bottle not found") //nolint:wrapcheck
			}

			line.bottle = &bottle
			line.drainMl = bottle.ServingSizeMl.Mul(decimal.NewFromInt(int64(quantity)))
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// applyDeductions decrements menu stock and drains linked bottles. Bottle
// volume is allowed to go negative; an over-pour is logged, not rejected.
func (s *serviceImpl) applyDeductions(ctx context.Context, tx *sqlx.Tx, lines []orderLine, user string) error {
	for _, line := range lines {
		stockFields := shared.TransformFields(struct{}{}, user)
		stockFields[menuModel.FieldStockQuantity] = line.item.StockQuantity - line.quantity

		err := s.menu.UpdateTx(ctx, tx, stockFields, shared.FilterByID(line.item.ID, menuModel.FieldID, menuModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to deduct menu stock: %w", err)
		}

		if line.bottle == nil {
			continue
		}

		remaining := line.bottle.CurrentVolumeMl.Sub(line.drainMl)
		if remaining.IsNegative() {
			log.Warn().
				Str("bottleID", line.bottle.ID).
				Str("currentVolumeMl", remaining.String()).
				Msg("bottle volume went negative after pour")
		}

		bottleFields := shared.TransformFields(struct{}{}, user)
		bottleFields[bottleModel.FieldCurrentVolumeMl] = remaining

		err = s.bottles.UpdateTx(ctx, tx, bottleFields, shared.FilterByID(line.bottle.ID, bottleModel.FieldID, bottleModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to drain bottle: %w", err)
		}
	}

	return nil
}

func (s *serviceImpl) getOrder(ctx context.Context, id string) (model.Order, error) {
	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return order, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return order, failure.NotFound("order not found") //nolint:wrapcheck
	}

	return order, nil
}

func (s *serviceImpl) publishKotTicket(ctx context.Context, order model.Order, user string) {
	ticket := KotTicket{
		OrderID:  order.ID,
		PlacedBy: user,
		PlacedAt: timezone.Format(timezone.Now(), constant.DateFormat),
	}

	if order.TableLabel != nil {
		ticket.TableLabel = *order.TableLabel
	}

	ticket.Lines = make([]KotLine, len(order.Items))
	for i, item := range order.Items {
		ticket.Lines[i] = KotLine{Description: item.Description, Quantity: item.Quantity}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.KitchenTickets, kafka.Message{
			Key:   order.ID,
			Value: ticket,
		})
		if err != nil {
			log.Error().Err(err).Str("orderID", order.ID).Msg("failed to publish kitchen ticket")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOrder, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete order cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllOrder)
		shared.InvalidateCaches(c, s.cache, cacheCountOrder)
		shared.InvalidateCaches(c, s.cache, cacheGetAllMenu)
		shared.InvalidateCaches(c, s.cache, cacheGetAllBottle)
	}()
}
