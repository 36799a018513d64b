package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	kafkaMocks "lodge/infras/kafka/mocks"
	"lodge/infras/otel/mocks"
	billMocks "lodge/internal/domains/bill/mocks"
	billModel "lodge/internal/domains/bill/model"
	bookingMocks "lodge/internal/domains/booking/mocks"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/service"
	roomMocks "lodge/internal/domains/room/mocks"
	roomModel "lodge/internal/domains/room/model"
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

func day(value string) time.Time {
	t, _ := time.Parse(constant.DateOnlyFormat, value)

	return t
}

type bookingFixture struct {
	repo    *bookingMocks.MockBooking
	rooms   *roomMocks.MockRoom
	bills   *billMocks.MockBill
	cache   *cacheMocks.MockRedisCache
	kafka   *kafkaMocks.MockClient
	sqlmock sqlmock.Sqlmock
	svc     service.Booking
}

func newBookingFixture(t *testing.T, ctrl *gomock.Controller) bookingFixture {
	t.Helper()

	db, smock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	f := bookingFixture{
		repo:    bookingMocks.NewMockBooking(ctrl),
		rooms:   roomMocks.NewMockRoom(ctrl),
		bills:   billMocks.NewMockBill(ctrl),
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
	cfg.Billing.InvoicePrefix = "INV-H"
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.rooms, f.bills, cfg, f.cache, mocks.NewOtel(), f.kafka)

	return f
}

func stayedBooking(status string) model.Booking {
	return model.Booking{
		ID:             "booking-1",
		RoomID:         "room-1",
		GuestID:        "guest-1",
		CheckIn:        day("2024-07-20"),
		CheckOut:       day("2024-07-25"),
		Status:         status,
		Items:          billing.Items{},
		Discount:       money("100"),
		AdvancePayment: decimal.Zero,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "reception",
			ModifiedBy: "reception",
		},
	}
}

func deluxeRoom() roomModel.Room {
	return roomModel.Room{
		ID:           "room-1",
		Number:       "101",
		RoomType:     roomModel.TypeDeluxe,
		Floor:        1,
		RatePerNight: money("1500"),
		Status:       roomModel.StatusOccupied,
	}
}

func TestBookingService_CheckOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	booking := stayedBooking(model.StatusCheckedIn)
	booking.Items, _ = billing.AddAdHocItem(billing.Items{}, "Dinner", 1, money("1200"), billing.CategoryFoodBeverage)

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(booking, nil)

	f.rooms.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(deluxeRoom(), nil)

	f.bills.EXPECT().
		NextInvoiceSequence(gomock.Any()).
		Return(42, nil)

	f.sqlmock.ExpectBegin()
	f.sqlmock.ExpectCommit()

	var inserted billModel.Bill

	f.bills.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, bill billModel.Bill) error {
			inserted = bill

			return nil
		})

	f.repo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
			assert.Equal(t, model.StatusCheckedOut, fields[model.FieldStatus])

			return nil
		})

	f.rooms.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
			assert.Equal(t, roomModel.StatusCleaning, fields[roomModel.FieldStatus])

			return nil
		})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "reception")
	res, err := f.svc.CheckOut(ctx, "booking-1")

	assert.NoError(t, err)
	assert.Equal(t, "INV-H-00042", inserted.InvoiceNo)

	// 5 nights at 1500 plus a 1200 dinner, 100 off, 18% tax.
	assert.True(t, inserted.Subtotal.Equal(money("8700")), "subtotal: got %s", inserted.Subtotal)
	assert.True(t, inserted.TaxAmount.Equal(money("1566")), "tax: got %s", inserted.TaxAmount)
	assert.True(t, inserted.NetTotal.Equal(money("10166")), "net: got %s", inserted.NetTotal)

	assert.Equal(t, billModel.PaymentStatusPending, inserted.PaymentStatus)
	assert.Equal(t, "booking-1", inserted.BookingID.String)
	assert.Equal(t, res.InvoiceNo, inserted.InvoiceNo)
}

func TestBookingService_CheckOut_AlreadyBilled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	booking := stayedBooking(model.StatusCheckedOut)
	booking.BillID = sql.NullString{String: "bill-1", Valid: true}

	existing := billModel.Bill{
		ID:            "bill-1",
		InvoiceNo:     "INV-H-00042",
		NetTotal:      money("10166"),
		PaymentStatus: billModel.PaymentStatusPending,
	}

	// A second check-out must return the stored bill without drawing a new
	// invoice number or opening a transaction.
	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(booking, nil)

	f.bills.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(existing, nil)

	res, err := f.svc.CheckOut(context.Background(), "booking-1")

	assert.NoError(t, err)
	assert.Equal(t, "INV-H-00042", res.InvoiceNo)
	assert.True(t, res.NetTotal.Equal(money("10166")))
}

func TestBookingService_CheckOut_InvalidStatus(t *testing.T) {
	tests := []string{model.StatusPending, model.StatusConfirmed, model.StatusCancelled}

	for _, status := range tests {
		t.Run(status, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newBookingFixture(t, ctrl)

			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(stayedBooking(status), nil)

			_, err := f.svc.CheckOut(context.Background(), "booking-1")

			assert.Error(t, err)
			assert.Equal(t, 409, failure.GetCode(err))
		})
	}
}

func TestBookingService_CheckIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(stayedBooking(model.StatusConfirmed), nil)

	f.repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	f.sqlmock.ExpectBegin()
	f.sqlmock.ExpectCommit()

	f.repo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
			assert.Equal(t, model.StatusCheckedIn, fields[model.FieldStatus])

			return nil
		})

	f.rooms.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
			assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldStatus])

			return nil
		})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "reception")
	res, err := f.svc.CheckIn(ctx, "booking-1")

	assert.NoError(t, err)
	assert.Equal(t, model.StatusCheckedIn, res.Status)
}

func TestBookingService_CheckIn_RoomHeld(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(stayedBooking(model.StatusPending), nil)

	f.repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	_, err := f.svc.CheckIn(context.Background(), "booking-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "active booking")
}

func TestBookingService_ShiftRoom(t *testing.T) {
	target := deluxeRoom()
	target.ID = "room-2"
	target.Number = "102"
	target.Status = roomModel.StatusVacant

	occupied := deluxeRoom()
	occupied.ID = "room-2"
	occupied.Number = "102"

	tests := []struct {
		name      string
		booking   model.Booking
		req       dto.ShiftRoomRequest
		target    roomModel.Room
		wantErr   string
		wantShift bool
	}{
		{
			name:      "successful shift to vacant room",
			booking:   stayedBooking(model.StatusCheckedIn),
			req:       dto.ShiftRoomRequest{RoomID: "room-2"},
			target:    target,
			wantShift: true,
		},
		{
			name:    "guest not checked in",
			booking: stayedBooking(model.StatusConfirmed),
			req:     dto.ShiftRoomRequest{RoomID: "room-2"},
			wantErr: "checked in",
		},
		{
			name:    "same room",
			booking: stayedBooking(model.StatusCheckedIn),
			req:     dto.ShiftRoomRequest{RoomID: "room-1"},
			wantErr: "already occupies",
		},
		{
			name:    "target room not vacant",
			booking: stayedBooking(model.StatusCheckedIn),
			req:     dto.ShiftRoomRequest{RoomID: "room-2"},
			target:  occupied,
			wantErr: "not vacant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newBookingFixture(t, ctrl)

			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tt.booking, nil)

			if tt.target.ID != "" {
				f.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tt.target, nil)
			}

			if tt.wantShift {
				f.sqlmock.ExpectBegin()
				f.sqlmock.ExpectCommit()

				f.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.rooms.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)
			}

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "reception")
			res, err := f.svc.ShiftRoom(ctx, tt.req, "booking-1")

			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "room-2", res.RoomID)
		})
	}
}

func TestBookingService_Update_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		next     string
		roomHeld bool
		wantErr  bool
	}{
		{name: "pending to confirmed", current: model.StatusPending, next: model.StatusConfirmed},
		{name: "pending to cancelled", current: model.StatusPending, next: model.StatusCancelled},
		{name: "confirmed to cancelled", current: model.StatusConfirmed, next: model.StatusCancelled},
		{name: "confirmed to pending", current: model.StatusConfirmed, next: model.StatusPending, wantErr: true},
		{name: "cancelled to confirmed", current: model.StatusCancelled, next: model.StatusConfirmed, wantErr: true},
		{name: "pending to checked in via update", current: model.StatusPending, next: model.StatusCheckedIn, wantErr: true},
		{name: "confirm while room held", current: model.StatusPending, next: model.StatusConfirmed, roomHeld: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newBookingFixture(t, ctrl)

			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(stayedBooking(tt.current), nil)

			if tt.next == model.StatusConfirmed && tt.current == model.StatusPending {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(tt.roomHeld, nil)
			}

			if !tt.wantErr {
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			}

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "reception")
			err := f.svc.Update(ctx, dto.UpdateBookingRequest{Status: tt.next}, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 409, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Delete_CheckedIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(stayedBooking(model.StatusCheckedIn), nil)

	err := f.svc.Delete(context.Background(), "booking-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be deleted")
}

func TestBookingService_Create_RoomMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	f.rooms.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	req := dto.CreateBookingRequest{
		RoomID:   "room-missing",
		GuestID:  "guest-1",
		CheckIn:  "2024-07-20",
		CheckOut: "2024-07-25",
	}

	_, err := f.svc.Create(context.Background(), req)

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestBookingService_Create_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	f.rooms.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(errors.New("database error"))

	req := dto.CreateBookingRequest{
		RoomID:   "room-1",
		GuestID:  "guest-1",
		CheckIn:  "2024-07-20",
		CheckOut: "2024-07-25",
	}

	_, err := f.svc.Create(context.Background(), req)

	assert.Error(t, err)
}
