package service

import (
	"context"
	"database/sql"
	"fmt"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	billModel "lodge/internal/domains/bill/model"
	billDto "lodge/internal/domains/bill/model/dto"
	billRepo "lodge/internal/domains/bill/repository"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared"
	"lodge/shared/billing"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	cacheGetAllBill = "bill:gets"
	cacheCountBill  = "bill:count"
)

// BillingEvent mirrors the payload published by the bill service so both
// producers feed the same topic schema.
type BillingEvent struct {
	BillID        string          `json:"bill_id"`
	InvoiceNo     string          `json:"invoice_no"`
	BookingID     string          `json:"booking_id,omitempty"`
	OrderID       string          `json:"order_id,omitempty"`
	NetTotal      decimal.Decimal `json:"net_total"`
	PaymentStatus string          `json:"payment_status"`
	OccurredAt    string          `json:"occurred_at"`
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	CheckIn(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckOut(ctx context.Context, id string) (billDto.BillResponse, error)
	ShiftRoom(ctx context.Context, req dto.ShiftRoomRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Booking
	rooms roomRepo.Room
	bills billRepo.Bill
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	kafka kafka.Client
}

func New(
	repo repository.Booking,
	rooms roomRepo.Room,
	bills billRepo.Bill,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafkaClient kafka.Client,
) Booking {
	return &serviceImpl{
		repo:  repo,
		rooms: rooms,
		bills: bills,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		kafka: kafkaClient,
	}
}

func (s *serviceImpl) taxRate() decimal.Decimal {
	return decimal.NewFromInt(int64(s.cfg.Billing.TaxRatePercent)).Div(decimal.NewFromInt(100))
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return res, err
	}

	roomExist, err := s.rooms.Exist(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !roomExist {
		return res, failure.NotFound("room not found") //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to insert booking")

		return res, fmt.Errorf("failed to insert booking: %w", err)
	}

	s.invalidate(ctx, booking.ID)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update handles reservation edits plus the Pending -> Confirmed and
// Pending/Confirmed -> Cancelled transitions. Check-in, check-out and room
// shifts have their own endpoints.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(struct{}{}, user)

	if req.Status != constant.Empty && req.Status != booking.Status {
		switch req.Status {
		case model.StatusConfirmed:
			if booking.Status != model.StatusPending {
				return failure.InvalidTransition(booking.Status, req.Status) //nolint:wrapcheck
			}

			held, err := s.roomHeldByOther(ctx, booking.RoomID, booking.ID)
			if err != nil {
				return err
			}

			if held {
				return failure.Conflict("room already has an active booking") //nolint:wrapcheck
			}
		case model.StatusCancelled:
			if booking.Status != model.StatusPending && booking.Status != model.StatusConfirmed {
				return failure.InvalidTransition(booking.Status, req.Status) //nolint:wrapcheck
			}
		default:
			return failure.InvalidTransition(booking.Status, req.Status) //nolint:wrapcheck
		}

		updatedFields[model.FieldStatus] = req.Status
	}

	if req.Discount != nil {
		if req.Discount.IsNegative() {
			return failure.BadRequestFromString("discount cannot be negative") //nolint:wrapcheck
		}

		updatedFields[model.FieldDiscount] = *req.Discount
	}

	if req.AdvancePayment != nil {
		if req.AdvancePayment.IsNegative() {
			return failure.BadRequestFromString("advance payment cannot be negative") //nolint:wrapcheck
		}

		updatedFields[model.FieldAdvancePayment] = *req.AdvancePayment
	}

	if len(req.AddOnItems) > 0 {
		items := booking.Items

		for _, item := range req.AddOnItems {
			category := item.Category
			if category == constant.Empty {
				category = billing.CategoryOther
			}

			items, err = billing.AddAdHocItem(items, item.Description, item.Quantity, item.UnitPrice, category)
			if err != nil {
				return err
			}
		}

		updatedFields[model.FieldItems] = items
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// CheckIn moves a Pending or Confirmed booking to CheckedIn and marks the
// room Occupied, both inside a single transaction.
func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.Status != model.StatusPending && booking.Status != model.StatusConfirmed {
		return res, failure.InvalidTransition(booking.Status, model.StatusCheckedIn) //nolint:wrapcheck
	}

	held, err := s.roomHeldByOther(ctx, booking.RoomID, booking.ID)
	if err != nil {
		return res, err
	}

	if held {
		return res, failure.Conflict("room already has an active booking") //nolint:wrapcheck
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback check-in")
			}
		}
	}()

	bookingFields := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: model.StatusCheckedIn}, user)

	err = s.repo.UpdateTx(ctx, tx, bookingFields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	roomFields := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: roomModel.StatusOccupied}, user)

	err = s.rooms.UpdateTx(ctx, tx, roomFields, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to update room: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return res, fmt.Errorf("failed to commit check-in: %w", err)
	}

	s.invalidate(ctx, id)

	booking.Status = model.StatusCheckedIn
	res.FromModel(booking)

	return res, nil
}

// CheckOut settles a stay. It prices the room line from the nightly rate and
// the stay length, folds in the add-on items, writes the bill and flips the
// booking and room states in one transaction. Calling it again on a booking
// that already has a bill returns that bill untouched.
func (s *serviceImpl) CheckOut(ctx context.Context, id string) (res billDto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.BillID.Valid {
		log.Info().Str("bookingID", id).Str("billID", booking.BillID.String).Msg("booking already billed, skipping bill generation")

		existing, err := s.bills.Get(ctx, shared.FilterByID(booking.BillID.String, billModel.FieldID, billModel.TableName))
		if err != nil {
			return res, fmt.Errorf("failed to get existing bill: %w", err)
		}

		res.FromModel(existing)

		return res, nil
	}

	if booking.Status != model.StatusCheckedIn {
		return res, failure.InvalidTransition(booking.Status, model.StatusCheckedOut) //nolint:wrapcheck
	}

	room, err := s.rooms.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") //nolint:wrapcheck
	}

	bill, err := s.buildBill(ctx, booking, room, user)
	if err != nil {
		return res, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback check-out")
			}
		}
	}()

	if err = s.bills.InsertTx(ctx, tx, bill); err != nil {
		return res, fmt.Errorf("failed to insert bill: %w", err)
	}

	bookingFields := shared.TransformFields(struct{}{}, user)
	bookingFields[model.FieldStatus] = model.StatusCheckedOut
	bookingFields[model.FieldBillID] = bill.ID
	bookingFields[model.FieldItems] = bill.Items
	bookingFields[model.FieldTotalAmount] = bill.NetTotal

	err = s.repo.UpdateTx(ctx, tx, bookingFields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	roomFields := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: roomModel.StatusCleaning}, user)

	err = s.rooms.UpdateTx(ctx, tx, roomFields, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to update room: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return res, fmt.Errorf("failed to commit check-out: %w", err)
	}

	s.publishBillingEvent(ctx, bill)
	s.invalidate(ctx, id)

	res.FromModel(bill)

	return res, nil
}

// ShiftRoom moves an in-house guest to a vacant room. The vacated room goes
// to Cleaning and the target room to Occupied in the same transaction.
func (s *serviceImpl) ShiftRoom(ctx context.Context, req dto.ShiftRoomRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ShiftRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.Status != model.StatusCheckedIn {
		return res, failure.Conflict("room can only be shifted while the guest is checked in") //nolint:wrapcheck
	}

	if req.RoomID == booking.RoomID {
		return res, failure.BadRequestFromString("booking already occupies that room") //nolint:wrapcheck
	}

	target, err := s.rooms.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if target.ID == constant.Empty {
		return res, failure.NotFound("room not found") //nolint:wrapcheck
	}

	if target.Status != roomModel.StatusVacant {
		return res, failure.Conflict("target room is not vacant") //nolint:wrapcheck
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback room shift")
			}
		}
	}()

	bookingFields := shared.TransformFields(struct {
		RoomID string `db:"room_id"`
	}{RoomID: req.RoomID}, user)

	err = s.repo.UpdateTx(ctx, tx, bookingFields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	oldRoomFields := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: roomModel.StatusCleaning}, user)

	err = s.rooms.UpdateTx(ctx, tx, oldRoomFields, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to update vacated room: %w", err)
	}

	newRoomFields := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: roomModel.StatusOccupied}, user)

	err = s.rooms.UpdateTx(ctx, tx, newRoomFields, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to update target room: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return res, fmt.Errorf("failed to commit room shift: %w", err)
	}

	s.invalidate(ctx, id)

	booking.RoomID = req.RoomID
	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status == model.StatusCheckedIn {
		return failure.Conflict("checked-in bookings cannot be deleted") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

// roomHeldByOther reports whether another booking currently holds the room,
// keeping the one-active-booking-per-room invariant.
func (s *serviceImpl) roomHeldByOther(ctx context.Context, roomID, bookingID string) (bool, error) {
	exist, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: []string{model.StatusConfirmed, model.StatusCheckedIn}, Operator: gDto.FilterOperatorIn, Table: model.TableName},
			gDto.Filter{Field: model.FieldID, Value: bookingID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to check active bookings for room: %w", err)
	}

	return exist, nil
}

func (s *serviceImpl) buildBill(ctx context.Context, booking model.Booking, room roomModel.Room, user string) (bill billModel.Bill, err error) {
	nights := billing.RoomNights(booking.CheckIn, booking.CheckOut)

	roomLine := fmt.Sprintf("Room %s (%s)", room.Number, room.RoomType)

	items, err := billing.AddAdHocItem(billing.Items{}, roomLine, nights, room.RatePerNight, billing.CategoryRoom)
	if err != nil {
		return bill, err
	}

	items = append(items, booking.Items...)

	if err = billing.ValidateDiscount(items, booking.Discount, s.taxRate()); err != nil {
		return bill, err
	}

	totals := billing.ComputeTotals(items, booking.Discount, s.taxRate())

	seq, err := s.bills.NextInvoiceSequence(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to draw invoice sequence")

		return bill, fmt.Errorf("failed to draw invoice sequence: %w", err)
	}

	paymentStatus := billModel.PaymentStatusPending

	switch {
	case booking.AdvancePayment.GreaterThanOrEqual(totals.NetTotal) && totals.NetTotal.IsPositive():
		paymentStatus = billModel.PaymentStatusPaid
	case booking.AdvancePayment.IsPositive():
		paymentStatus = billModel.PaymentStatusPartiallyPaid
	}

	bill = billModel.Bill{
		ID:            uuid.NewString(),
		InvoiceNo:     fmt.Sprintf("%s-%05d", s.cfg.Billing.InvoicePrefix, seq),
		BookingID:     sql.NullString{String: booking.ID, Valid: true},
		GuestID:       sql.NullString{String: booking.GuestID, Valid: true},
		RoomLabel:     room.Number,
		Items:         items,
		Discount:      booking.Discount,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		NetTotal:      totals.NetTotal,
		PaymentStatus: paymentStatus,
		BillDate:      timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	return bill, nil
}

func (s *serviceImpl) publishBillingEvent(ctx context.Context, bill billModel.Bill) {
	event := BillingEvent{
		BillID:        bill.ID,
		InvoiceNo:     bill.InvoiceNo,
		BookingID:     bill.BookingID.String,
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

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheGetAllBill)
		shared.InvalidateCaches(c, s.cache, cacheCountBill)
	}()
}
