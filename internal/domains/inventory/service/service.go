package service

import (
	"context"
	"fmt"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/internal/domains/inventory/model"
	"lodge/internal/domains/inventory/model/dto"
	"lodge/internal/domains/inventory/repository"
	vendorModel "lodge/internal/domains/vendors/model"
	vendorRepo "lodge/internal/domains/vendors/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetItem    = "inventory:item:get"
	cacheGetAllItem = "inventory:item:gets"
	cacheCountItem  = "inventory:item:count"
)

type Inventory interface {
	CreateItem(ctx context.Context, req dto.CreateStockItemRequest) (dto.StockItemResponse, error)
	GetItems(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetStockItemsResponse, error)
	CountItems(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetItem(ctx context.Context, id string) (dto.StockItemResponse, error)
	UpdateItem(ctx context.Context, req dto.UpdateStockItemRequest, id string) error
	DeleteItem(ctx context.Context, id string) error
	RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (dto.TransactionResponse, error)
	GetTransactions(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTransactionsResponse, error)
	LowStockAlerts(ctx context.Context) (dto.StockAlertsResponse, error)
	ExpiryAlerts(ctx context.Context, days int) (dto.StockAlertsResponse, error)
}

type serviceImpl struct {
	items        repository.StockItem
	transactions repository.StockTransaction
	vendors      vendorRepo.Vendor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	items repository.StockItem,
	transactions repository.StockTransaction,
	vendors vendorRepo.Vendor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Inventory {
	return &serviceImpl{
		items:        items,
		transactions: transactions,
		vendors:      vendors,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) CreateItem(ctx context.Context, req dto.CreateStockItemRequest) (res dto.StockItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Quantity.IsNegative() || req.ReorderLevel.IsNegative() || req.CostPerUnit.IsNegative() {
		return res, failure.BadRequestFromString("quantity, reorder level and cost must not be negative") //nolint:wrapcheck
	}

	if req.VendorID != "" {
		if err = s.vendorExists(ctx, req.VendorID); err != nil {
			return res, err
		}
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	item := req.ToModel(user)

	if err = s.items.Insert(ctx, item); err != nil {
		log.Error().Err(err).Msg("failed to insert stock item")

		return res, fmt.Errorf("failed to insert stock item: %w", err)
	}

	s.invalidate(ctx, item.ID)

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) GetItems(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetStockItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetItems")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllItem, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for stock items")

		return res, nil
	}

	total, err := s.CountItems(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count stock items: %w", err)
	}

	items, err := s.items.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get stock items")

		return res, fmt.Errorf("failed to get stock items: %w", err)
	}

	res.FromModels(items, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save stock items to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) CountItems(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountItems")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountItem, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.items.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count stock items")

		return res, fmt.Errorf("failed to count stock items: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save stock item count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetItem(ctx context.Context, id string) (res dto.StockItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetItem, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	item, err := s.getItem(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(item)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save stock item to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateItem(ctx context.Context, req dto.UpdateStockItemRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.ItemTableName)

	exist, err := s.items.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if stock item exists: %w", err)
	}

	if !exist {
		return failure.NotFound("stock item not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	// pointer fields carrying zero values are skipped by IsZero, set them
	// explicitly so levels can be zeroed and the vendor link cleared
	if req.ReorderLevel != nil {
		updatedFields[model.FieldReorderLevel] = *req.ReorderLevel
	}

	if req.CostPerUnit != nil {
		updatedFields[model.FieldCostPerUnit] = *req.CostPerUnit
	}

	if req.VendorID != nil {
		if *req.VendorID == "" {
			updatedFields[model.FieldVendorID] = nil
		} else {
			if err = s.vendorExists(ctx, *req.VendorID); err != nil {
				return err
			}

			updatedFields[model.FieldVendorID] = *req.VendorID
		}
	}

	if err = s.items.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update stock item")

		return fmt.Errorf("failed to update stock item: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) DeleteItem(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.ItemTableName)

	exist, err := s.items.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if stock item exists: %w", err)
	}

	if !exist {
		return failure.NotFound("stock item not found") //nolint:wrapcheck
	}

	if err = s.items.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete stock item")

		return fmt.Errorf("failed to delete stock item: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// RecordTransaction writes a ledger entry and applies its signed delta to the
// item quantity in one transaction. StockOut and Wastage must not take the
// quantity below zero.
func (s *serviceImpl) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (res dto.TransactionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordTransaction")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Type != model.TransactionAdjustment && !req.Quantity.IsPositive() {
		return res, failure.BadRequestFromString("transaction quantity must be positive") //nolint:wrapcheck
	}

	if req.Type == model.TransactionAdjustment && req.Quantity.IsZero() {
		return res, failure.BadRequestFromString("adjustment quantity must not be zero") //nolint:wrapcheck
	}

	item, err := s.getItem(ctx, req.ItemID)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	transaction := req.ToModel(user)

	remaining := item.Quantity.Add(transaction.Delta())
	if remaining.IsNegative() {
		return res, failure.InsufficientStock(item.Name) //nolint:wrapcheck
	}

	tx, err := s.items.BeginTx(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback stock transaction")
			}
		}
	}()

	if err = s.transactions.InsertTx(ctx, tx, transaction); err != nil {
		return res, fmt.Errorf("failed to insert stock transaction: %w", err)
	}

	updatedFields := shared.TransformFields(struct{}{}, user)
	updatedFields[model.FieldQuantity] = remaining

	itemFilter := shared.FilterByID(item.ID, model.FieldID, model.ItemTableName)
	if err = s.items.UpdateTx(ctx, tx, updatedFields, itemFilter); err != nil {
		return res, fmt.Errorf("failed to apply stock movement: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return res, fmt.Errorf("failed to commit stock transaction: %w", err)
	}

	s.invalidate(ctx, item.ID)

	res.FromModel(transaction)

	return res, nil
}

func (s *serviceImpl) GetTransactions(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTransactions")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.transactions.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count stock transactions")

		return res, fmt.Errorf("failed to count stock transactions: %w", err)
	}

	transactions, err := s.transactions.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get stock transactions")

		return res, fmt.Errorf("failed to get stock transactions: %w", err)
	}

	res.FromModels(transactions, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) LowStockAlerts(ctx context.Context) (res dto.StockAlertsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".LowStockAlerts")
	defer scope.End()
	defer scope.TraceIfError(err)

	items, err := s.items.GetLowStock(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get low stock items")

		return res, fmt.Errorf("failed to get low stock items: %w", err)
	}

	res.FromModels(items)

	return res, nil
}

func (s *serviceImpl) ExpiryAlerts(ctx context.Context, days int) (res dto.StockAlertsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExpiryAlerts")
	defer scope.End()
	defer scope.TraceIfError(err)

	if days <= 0 {
		days = constant.DefaultExpiryAlertDays
	}

	horizon := timezone.Now().AddDate(0, 0, days)

	items, err := s.items.GetExpiringBefore(ctx, horizon)
	if err != nil {
		log.Error().Err(err).Msg("failed to get expiring items")

		return res, fmt.Errorf("failed to get expiring items: %w", err)
	}

	res.FromModels(items)

	return res, nil
}

func (s *serviceImpl) vendorExists(ctx context.Context, vendorID string) error {
	exist, err := s.vendors.Exist(ctx, shared.FilterByID(vendorID, vendorModel.FieldID, vendorModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to check if vendor exists: %w", err)
	}

	if !exist {
		return failure.NotFound("vendor not found") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) getItem(ctx context.Context, id string) (model.StockItem, error) {
	item, err := s.items.Get(ctx, shared.FilterByID(id, model.FieldID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get stock item")

		return item, fmt.Errorf("failed to get stock item: %w", err)
	}

	if item.ID == constant.Empty {
		return item, failure.NotFound("stock item not found") //nolint:wrapcheck
	}

	return item, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetItem, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete stock item cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllItem)
		shared.InvalidateCaches(c, s.cache, cacheCountItem)
	}()
}
