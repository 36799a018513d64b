package service

import (
	"context"
	"fmt"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/internal/domains/bill/model"
	"lodge/internal/domains/bill/model/dto"
	"lodge/internal/domains/bill/repository"
	"lodge/shared"
	"lodge/shared/billing"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetBill    = "bill:get"
	cacheGetAllBill = "bill:gets"
	cacheCountBill  = "bill:count"
)

// BillingEvent is published to the billing events topic whenever a bill is
// created or settled.
type BillingEvent struct {
	BillID        string          `json:"bill_id"`
	InvoiceNo     string          `json:"invoice_no"`
	BookingID     string          `json:"booking_id,omitempty"`
	OrderID       string          `json:"order_id,omitempty"`
	NetTotal      decimal.Decimal `json:"net_total"`
	PaymentStatus string          `json:"payment_status"`
	OccurredAt    string          `json:"occurred_at"`
}

type Bill interface {
	Create(ctx context.Context, req dto.CreateBillRequest) (dto.BillResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBillsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BillResponse, error)
	Update(ctx context.Context, req dto.UpdateBillRequest, id string) error
	UpdatePaymentStatus(ctx context.Context, req dto.UpdatePaymentStatusRequest, id string) (dto.BillResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Bill
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	kafka kafka.Client
}

func New(repo repository.Bill, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafkaClient kafka.Client) Bill {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		kafka: kafkaClient,
	}
}

func (s *serviceImpl) taxRate() decimal.Decimal {
	return decimal.NewFromInt(int64(s.cfg.Billing.TaxRatePercent)).Div(decimal.NewFromInt(100))
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBillRequest) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	seq, err := s.repo.NextInvoiceSequence(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to draw invoice sequence")

		return res, fmt.Errorf("failed to draw invoice sequence: %w", err)
	}

	invoiceNo := fmt.Sprintf("%s-%05d", s.cfg.Billing.InvoicePrefix, seq)

	bill, err := req.ToModel(user, invoiceNo, s.taxRate())
	if err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, bill); err != nil {
		return res, err
	}

	s.publishBillingEvent(ctx, bill)
	s.invalidate(ctx, bill.ID)

	res.FromModel(bill)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBillsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBill, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bills")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bills: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bills")

		return res, fmt.Errorf("failed to get bills: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bills to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBill, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bills")

		return res, fmt.Errorf("failed to count bills: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bill count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBill, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	bill, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bill")

		return res, fmt.Errorf("failed to get bill: %w", err)
	}

	if bill.ID == constant.Empty {
		return res, failure.NotFound("bill not found") //nolint:wrapcheck
	}

	res.FromModel(bill)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bill to cache")
		}
	}()

	return res, nil
}

// Update edits an unsettled bill. Items and discount changes recompute the
// stored totals so the invariants hold at rest.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBillRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		return err
	}

	if current.ID == constant.Empty {
		return failure.NotFound("bill not found") //nolint:wrapcheck
	}

	if current.PaymentStatus == model.PaymentStatusPaid {
		return failure.Conflict("settled bills cannot be edited") //nolint:wrapcheck
	}

	items := current.Items
	if len(req.Items) > 0 {
		items = billing.Items{}

		for _, item := range req.Items {
			category := item.Category
			if category == constant.Empty {
				category = billing.CategoryOther
			}

			items, err = billing.AddAdHocItem(items, item.Description, item.Quantity, item.UnitPrice, category)
			if err != nil {
				return err
			}
		}
	}

	discount := current.Discount
	if req.Discount != nil {
		discount = *req.Discount
	}

	if err = billing.ValidateDiscount(items, discount, s.taxRate()); err != nil {
		return err
	}

	totals := billing.ComputeTotals(items, discount, s.taxRate())

	updatedFields := shared.TransformFields(struct {
		RoomLabel string `db:"room_label"`
	}{RoomLabel: req.RoomLabel}, user)

	updatedFields[model.FieldItems] = items
	updatedFields[model.FieldDiscount] = discount
	updatedFields[model.FieldSubtotal] = totals.Subtotal
	updatedFields[model.FieldTaxAmount] = totals.TaxAmount
	updatedFields[model.FieldNetTotal] = totals.NetTotal

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update bill")

		return fmt.Errorf("failed to update bill: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) UpdatePaymentStatus(ctx context.Context, req dto.UpdatePaymentStatusRequest, id string) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePaymentStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	bill, err := s.repo.Get(ctx, filter)
	if err != nil {
		return res, err
	}

	if bill.ID == constant.Empty {
		return res, failure.NotFound("bill not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(struct {
		PaymentStatus string `db:"payment_status"`
	}{PaymentStatus: req.Status}, user)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update bill payment status")

		return res, fmt.Errorf("failed to update bill payment status: %w", err)
	}

	bill.PaymentStatus = req.Status

	s.publishBillingEvent(ctx, bill)
	s.invalidate(ctx, id)

	res.FromModel(bill)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to check if bill exists: %w", err)
	}

	if !exist {
		return failure.NotFound("bill not found") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete bill")

		return fmt.Errorf("failed to delete bill: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) publishBillingEvent(ctx context.Context, bill model.Bill) {
	event := BillingEvent{
		BillID:        bill.ID,
		InvoiceNo:     bill.InvoiceNo,
		BookingID:     bill.BookingID.String,
		OrderID:       bill.OrderID.String,
		NetTotal:      bill.NetTotal,
		PaymentStatus: bill.PaymentStatus,
		OccurredAt:    timezone.Format(timezone.Now(), constant.DateFormat),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BillingEvents, kafka.Message{
			Key:   bill.ID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("billID", bill.ID).Msg("failed to publish billing event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBill, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete bill cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBill)
		shared.InvalidateCaches(c, s.cache, cacheCountBill)
	}()
}
