package service

import (
	"context"
	"fmt"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/internal/domains/bottle/model"
	"lodge/internal/domains/bottle/model/dto"
	"lodge/internal/domains/bottle/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBottle    = "bottle:get"
	cacheGetAllBottle = "bottle:gets"
	cacheCountBottle  = "bottle:count"
)

type Bottle interface {
	Create(ctx context.Context, req dto.CreateBottleRequest) (dto.BottleResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBottlesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BottleResponse, error)
	Update(ctx context.Context, req dto.UpdateBottleRequest, id string) error
	RecordWastage(ctx context.Context, req dto.RecordWastageRequest, id string) (dto.BottleResponse, error)
	Usage(ctx context.Context) (dto.BottleUsageResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Bottle
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Bottle, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Bottle {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBottleRequest) (res dto.BottleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !req.TotalVolumeMl.IsPositive() || !req.ServingSizeMl.IsPositive() {
		return res, failure.BadRequestFromString("total volume and serving size must be positive") //nolint:wrapcheck
	}

	if req.LowStockThreshold.IsNegative() {
		return res, failure.BadRequestFromString("low stock threshold cannot be negative") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	bottle := req.ToModel(user)

	if err = s.repo.Insert(ctx, bottle); err != nil {
		log.Error().Err(err).Msg("failed to insert bottle")

		return res, fmt.Errorf("failed to insert bottle: %w", err)
	}

	s.invalidate(ctx, bottle.ID)

	res.FromModel(bottle)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBottlesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBottle, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bottles")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bottles: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bottles")

		return res, fmt.Errorf("failed to get bottles: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bottles to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBottle, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bottles")

		return res, fmt.Errorf("failed to count bottles: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bottle count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BottleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBottle, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	bottle, err := s.getBottle(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(bottle)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bottle to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBottleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if bottle exists: %w", err)
	}

	if !exist {
		return failure.NotFound("bottle not found") //nolint:wrapcheck
	}

	if req.ServingSizeMl != nil && !req.ServingSizeMl.IsPositive() {
		return failure.BadRequestFromString("serving size must be positive") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update bottle")

		return fmt.Errorf("failed to update bottle: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// RecordWastage deducts a spilled or expired amount from the bottle and
// accumulates it so the usage report can separate pours from losses.
func (s *serviceImpl) RecordWastage(ctx context.Context, req dto.RecordWastageRequest, id string) (res dto.BottleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordWastage")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !req.AmountMl.IsPositive() {
		return res, failure.BadRequestFromString("wastage amount must be positive") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	bottle, err := s.getBottle(ctx, id)
	if err != nil {
		return res, err
	}

	bottle.CurrentVolumeMl = bottle.CurrentVolumeMl.Sub(req.AmountMl)
	bottle.WastageMl = bottle.WastageMl.Add(req.AmountMl)

	if bottle.CurrentVolumeMl.IsNegative() {
		log.Warn().
			Str("bottleID", bottle.ID).
			Str("currentVolumeMl", bottle.CurrentVolumeMl.String()).
			Msg("bottle volume went negative after wastage")
	}

	updatedFields := shared.TransformFields(struct{}{}, user)
	updatedFields[model.FieldCurrentVolumeMl] = bottle.CurrentVolumeMl
	updatedFields[model.FieldWastageMl] = bottle.WastageMl

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to record wastage")

		return res, fmt.Errorf("failed to record wastage: %w", err)
	}

	if req.Reason != constant.Empty {
		log.Info().Str("bottleID", id).Str("reason", req.Reason).Str("amountMl", req.AmountMl.String()).Msg("wastage recorded")
	}

	s.invalidate(ctx, id)

	res.FromModel(bottle)

	return res, nil
}

// Usage reports consumption, wastage and remaining servings for every bottle.
func (s *serviceImpl) Usage(ctx context.Context) (res dto.BottleUsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Usage")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bottles for usage report")

		return res, fmt.Errorf("failed to get bottles for usage report: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if bottle exists: %w", err)
	}

	if !exist {
		return failure.NotFound("bottle not found") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete bottle")

		return fmt.Errorf("failed to delete bottle: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) getBottle(ctx context.Context, id string) (model.Bottle, error) {
	bottle, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bottle")

		return bottle, fmt.Errorf("failed to get bottle: %w", err)
	}

	if bottle.ID == constant.Empty {
		return bottle, failure.NotFound("bottle not found") //nolint:wrapcheck
	}

	return bottle, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBottle, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete bottle cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBottle)
		shared.InvalidateCaches(c, s.cache, cacheCountBottle)
	}()
}
