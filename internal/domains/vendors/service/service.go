package service

import (
	"context"
	"fmt"

	"lodge/config"
	"lodge/infras/otel"
	invModel "lodge/internal/domains/inventory/model"
	invRepo "lodge/internal/domains/inventory/repository"
	"lodge/internal/domains/vendors/model"
	"lodge/internal/domains/vendors/model/dto"
	"lodge/internal/domains/vendors/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetVendor    = "vendor:get"
	cacheGetAllVendor = "vendor:gets"
	cacheCountVendor  = "vendor:count"

	cacheGetPurchaseOrder    = "po:get"
	cacheGetAllPurchaseOrder = "po:gets"
	cacheCountPurchaseOrder  = "po:count"

	cacheGetAllStockItem = "inventory:item:gets"
	cacheCountStockItem  = "inventory:item:count"
)

type Vendor interface {
	Create(ctx context.Context, req dto.CreateVendorRequest) (dto.VendorResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetVendorsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.VendorResponse, error)
	Update(ctx context.Context, req dto.UpdateVendorRequest, id string) error
	Delete(ctx context.Context, id string) error

	CreatePurchaseOrder(ctx context.Context, req dto.CreatePurchaseOrderRequest) (dto.PurchaseOrderResponse, error)
	GetPurchaseOrders(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPurchaseOrdersResponse, error)
	GetPurchaseOrder(ctx context.Context, id string) (dto.PurchaseOrderResponse, error)
	UpdatePurchaseOrder(ctx context.Context, req dto.UpdatePurchaseOrderRequest, id string) error
	ReceivePurchaseOrder(ctx context.Context, id string) (dto.PurchaseOrderResponse, error)
	DeletePurchaseOrder(ctx context.Context, id string) error
}

type serviceImpl struct {
	vendors        repository.Vendor
	purchaseOrders repository.PurchaseOrder
	items          invRepo.StockItem
	transactions   invRepo.StockTransaction
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(
	vendors repository.Vendor,
	purchaseOrders repository.PurchaseOrder,
	items invRepo.StockItem,
	transactions invRepo.StockTransaction,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Vendor {
	return &serviceImpl{
		vendors:        vendors,
		purchaseOrders: purchaseOrders,
		items:          items,
		transactions:   transactions,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVendorRequest) (res dto.VendorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	vendor := req.ToModel(user)

	if err = s.vendors.Insert(ctx, vendor); err != nil {
		log.Error().Err(err).Msg("failed to insert vendor")

		return res, fmt.Errorf("failed to insert vendor: %w", err)
	}

	s.invalidateVendor(ctx, vendor.ID)

	res.FromModel(vendor)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVendorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVendor, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for vendors")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count vendors: %w", err)
	}

	vendors, err := s.vendors.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendors")

		return res, fmt.Errorf("failed to get vendors: %w", err)
	}

	res.FromModels(vendors, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save vendors to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountVendor, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.vendors.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count vendors")

		return res, fmt.Errorf("failed to count vendors: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save vendor count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VendorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetVendor, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	vendor, err := s.getVendor(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(vendor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save vendor to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateVendorRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.vendors.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if vendor exists: %w", err)
	}

	if !exist {
		return failure.NotFound("vendor not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	// IsZero skips *bool deactivation, so carry it over explicitly
	if req.Active != nil {
		updatedFields[model.FieldActive] = *req.Active
	}

	if err = s.vendors.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update vendor")

		return fmt.Errorf("failed to update vendor: %w", err)
	}

	s.invalidateVendor(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.vendors.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if vendor exists: %w", err)
	}

	if !exist {
		return failure.NotFound("vendor not found") //nolint:wrapcheck
	}

	pendingFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldVendorID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.PurchaseOrderTableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusPending,
				Table:    model.PurchaseOrderTableName,
			},
		},
	}

	hasPending, err := s.purchaseOrders.Exist(ctx, pendingFilter)
	if err != nil {
		return fmt.Errorf("failed to check pending purchase orders: %w", err)
	}

	if hasPending {
		return failure.Conflict("vendor has pending purchase orders") //nolint:wrapcheck
	}

	if err = s.vendors.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete vendor")

		return fmt.Errorf("failed to delete vendor: %w", err)
	}

	s.invalidateVendor(ctx, id)

	return nil
}

func (s *serviceImpl) CreatePurchaseOrder(ctx context.Context, req dto.CreatePurchaseOrderRequest) (res dto.PurchaseOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreatePurchaseOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	vendor, err := s.getVendor(ctx, req.VendorID)
	if err != nil {
		return res, err
	}

	if !vendor.Active {
		return res, failure.Conflict("vendor is inactive") //nolint:wrapcheck
	}

	lines, err := s.resolveLines(ctx, req.Lines)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	order := req.ToModel(user, lines)

	if err = s.purchaseOrders.Insert(ctx, order); err != nil {
		log.Error().Err(err).Msg("failed to insert purchase order")

		return res, fmt.Errorf("failed to insert purchase order: %w", err)
	}

	s.invalidatePurchaseOrder(ctx, order.ID)

	res.FromModel(order)

	return res, nil
}

func (s *serviceImpl) GetPurchaseOrders(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPurchaseOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPurchaseOrders")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPurchaseOrder, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for purchase orders")

		return res, nil
	}

	total, err := s.purchaseOrders.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count purchase orders")

		return res, fmt.Errorf("failed to count purchase orders: %w", err)
	}

	orders, err := s.purchaseOrders.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get purchase orders")

		return res, fmt.Errorf("failed to get purchase orders: %w", err)
	}

	res.FromModels(orders, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save purchase orders to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetPurchaseOrder(ctx context.Context, id string) (res dto.PurchaseOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPurchaseOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPurchaseOrder, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	order, err := s.getPurchaseOrder(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(order)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save purchase order to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdatePurchaseOrder(ctx context.Context, req dto.UpdatePurchaseOrderRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePurchaseOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	order, err := s.getPurchaseOrder(ctx, id)
	if err != nil {
		return err
	}

	if order.Received() {
		return failure.Conflict("received purchase orders cannot be edited") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := shared.TransformFields(req, user)

	if req.Status != "" {
		updatedFields[model.FieldStatus] = req.Status
	}

	filter := shared.FilterByID(id, model.FieldID, model.PurchaseOrderTableName)
	if err = s.purchaseOrders.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update purchase order")

		return fmt.Errorf("failed to update purchase order: %w", err)
	}

	s.invalidatePurchaseOrder(ctx, id)

	return nil
}

// ReceivePurchaseOrder stocks in every line and marks the order received, all
// in one transaction. Receiving an already received order returns it
// unchanged.
func (s *serviceImpl) ReceivePurchaseOrder(ctx context.Context, id string) (res dto.PurchaseOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReceivePurchaseOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	order, err := s.getPurchaseOrder(ctx, id)
	if err != nil {
		return res, err
	}

	if order.Received() {
		log.Info().Str("purchaseOrderID", order.ID).Msg("purchase order already received, skipping stock-in")

		res.FromModel(order)

		return res, nil
	}

	if order.Status == model.StatusCancelled {
		return res, failure.Conflict("cancelled purchase orders cannot be received") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	tx, err := s.items.BeginTx(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback purchase order receipt")
			}
		}
	}()

	for _, line := range order.Lines {
		item, lineErr := s.items.Get(ctx, shared.FilterByID(line.ItemID, invModel.FieldID, invModel.ItemTableName))
		if lineErr != nil {
			err = fmt.Errorf("failed to get stock item: %w", lineErr)

			return res, err
		}

		if item.ID == constant.Empty {
			err = failure.NotFound("stock item not found") //nolint:wrapcheck

			return res, err
		}

		reference := order.ID
		transaction := invModel.StockTransaction{
			ID:        uuid.NewString(),
			ItemID:    line.ItemID,
			Type:      invModel.TransactionStockIn,
			Quantity:  line.Quantity,
			Reference: &reference,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}

		if err = s.transactions.InsertTx(ctx, tx, transaction); err != nil {
			return res, fmt.Errorf("failed to insert stock transaction: %w", err)
		}

		updatedFields := shared.TransformFields(struct{}{}, user)
		updatedFields[invModel.FieldQuantity] = item.Quantity.Add(line.Quantity)

		if line.CostPerUnit.IsPositive() {
			updatedFields[invModel.FieldCostPerUnit] = line.CostPerUnit
		}

		itemFilter := shared.FilterByID(item.ID, invModel.FieldID, invModel.ItemTableName)
		if err = s.items.UpdateTx(ctx, tx, updatedFields, itemFilter); err != nil {
			return res, fmt.Errorf("failed to stock in purchase order line: %w", err)
		}
	}

	orderFields := shared.TransformFields(struct{}{}, user)
	orderFields[model.FieldStatus] = model.StatusReceived
	orderFields[model.FieldReceivedAt] = now

	orderFilter := shared.FilterByID(order.ID, model.FieldID, model.PurchaseOrderTableName)
	if err = s.purchaseOrders.UpdateTx(ctx, tx, orderFields, orderFilter); err != nil {
		return res, fmt.Errorf("failed to mark purchase order received: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return res, fmt.Errorf("failed to commit purchase order receipt: %w", err)
	}

	s.invalidatePurchaseOrder(ctx, id)

	order.MarkReceived(now)
	res.FromModel(order)

	return res, nil
}

func (s *serviceImpl) DeletePurchaseOrder(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeletePurchaseOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	order, err := s.getPurchaseOrder(ctx, id)
	if err != nil {
		return err
	}

	if order.Received() {
		return failure.Conflict("received purchase orders cannot be deleted") //nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.PurchaseOrderTableName)
	if err = s.purchaseOrders.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete purchase order")

		return fmt.Errorf("failed to delete purchase order: %w", err)
	}

	s.invalidatePurchaseOrder(ctx, id)

	return nil
}

// resolveLines checks every referenced stock item and fills in the display
// name and, when the request omits it, the current cost per unit.
func (s *serviceImpl) resolveLines(ctx context.Context, reqLines []dto.PurchaseOrderLineRequest) (model.PurchaseOrderLines, error) {
	lines := make(model.PurchaseOrderLines, 0, len(reqLines))

	for _, reqLine := range reqLines {
		if !reqLine.Quantity.IsPositive() {
			return nil, failure.BadRequestFromString("purchase order line quantity must be positive") //nolint:wrapcheck
		}

		if reqLine.CostPerUnit.IsNegative() {
			return nil, failure.BadRequestFromString("purchase order line cost must not be negative") //nolint:wrapcheck
		}

		item, err := s.items.Get(ctx, shared.FilterByID(reqLine.ItemID, invModel.FieldID, invModel.ItemTableName))
		if err != nil {
			return nil, fmt.Errorf("failed to get stock item: %w", err)
		}

		if item.ID == constant.Empty {
			return nil, failure.NotFound("stock item not found") //nolint:wrapcheck
		}

		cost := reqLine.CostPerUnit
		if cost.IsZero() {
			cost = item.CostPerUnit
		}

		lines = append(lines, model.PurchaseOrderLine{
			ItemID:      item.ID,
			Name:        item.Name,
			Quantity:    reqLine.Quantity,
			CostPerUnit: cost,
		})
	}

	return lines, nil
}

func (s *serviceImpl) getVendor(ctx context.Context, id string) (model.Vendor, error) {
	vendor, err := s.vendors.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendor")

		return vendor, fmt.Errorf("failed to get vendor: %w", err)
	}

	if vendor.ID == constant.Empty {
		return vendor, failure.NotFound("vendor not found") //nolint:wrapcheck
	}

	return vendor, nil
}

func (s *serviceImpl) getPurchaseOrder(ctx context.Context, id string) (model.PurchaseOrder, error) {
	order, err := s.purchaseOrders.Get(ctx, shared.FilterByID(id, model.FieldID, model.PurchaseOrderTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get purchase order")

		return order, fmt.Errorf("failed to get purchase order: %w", err)
	}

	if order.ID == constant.Empty {
		return order, failure.NotFound("purchase order not found") //nolint:wrapcheck
	}

	return order, nil
}

func (s *serviceImpl) invalidateVendor(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetVendor, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete vendor cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllVendor)
		shared.InvalidateCaches(c, s.cache, cacheCountVendor)
	}()
}

func (s *serviceImpl) invalidatePurchaseOrder(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPurchaseOrder, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete purchase order cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPurchaseOrder)
		shared.InvalidateCaches(c, s.cache, cacheCountPurchaseOrder)
		shared.InvalidateCaches(c, s.cache, cacheGetAllStockItem)
		shared.InvalidateCaches(c, s.cache, cacheCountStockItem)
	}()
}
