package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	roomMocks "lodge/internal/domains/room/mocks"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/model/dto"
	"lodge/internal/domains/room/service"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
)

func money(value string) decimal.Decimal {
	d, _ := decimal.NewFromString(value)

	return d
}

type roomFixture struct {
	repo     *roomMocks.MockRoom
	bookings *bookingMocks.MockBooking
	cache    *cacheMocks.MockRedisCache
	svc      service.Room
}

func newRoomFixture(t *testing.T, ctrl *gomock.Controller) roomFixture {
	t.Helper()

	f := roomFixture{
		repo:     roomMocks.NewMockRoom(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.bookings, cfg, f.cache, mocks.NewOtel())

	return f
}

func occupiedRoom() model.Room {
	return model.Room{
		ID:           "room-1",
		Number:       "101",
		RoomType:     model.TypeDeluxe,
		Floor:        1,
		RatePerNight: money("1500"),
		Status:       model.StatusOccupied,
	}
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f roomFixture)
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func(f roomFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "duplicate room number",
			setupMock: func(f roomFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			setupMock: func(f roomFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newRoomFixture(t, ctrl)
			tt.setupMock(f)

			req := dto.CreateRoomRequest{
				Number:       "101",
				RoomType:     model.TypeDeluxe,
				Floor:        1,
				RatePerNight: money("1500"),
			}

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "manager")
			err := f.svc.Create(ctx, req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		occupied bool
		wantErr  bool
	}{
		{name: "occupied to cleaning", status: model.StatusCleaning},
		{name: "occupied to maintenance", status: model.StatusMaintenance},
		{name: "vacant while no guest holds the room", status: model.StatusVacant},
		{name: "vacant while a guest is checked in", status: model.StatusVacant, occupied: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newRoomFixture(t, ctrl)

			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(occupiedRoom(), nil)

			if tt.status == model.StatusVacant {
				f.bookings.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(tt.occupied, nil)
			}

			if !tt.wantErr {
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, tt.status, fields[model.FieldStatus])

						return nil
					})
			}

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "housekeeping")
			err := f.svc.UpdateStatus(ctx, dto.UpdateRoomStatusRequest{Status: tt.status}, "room-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 409, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRoomFixture(t, ctrl)

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Room{}, nil)

	err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{Number: "102"}, "missing")

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestRoomService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRoomFixture(t, ctrl)

	f.repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	err := f.svc.Delete(context.Background(), "missing")

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}
