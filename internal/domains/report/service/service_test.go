package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/infras/otel/mocks"
	reportMocks "lodge/internal/domains/report/mocks"
	"lodge/internal/domains/report/model"
	"lodge/internal/domains/report/service"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/timezone"
)

func money(value string) decimal.Decimal {
	d, _ := decimal.NewFromString(value)

	return d
}

func reportDay(value string) time.Time {
	t, _ := timezone.Parse(constant.DateOnlyFormat, value)

	return t
}

func TestReportService_Sales(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reportMocks.NewMockReport(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	billRows := []model.DailyTotals{
		{Day: reportDay("2024-07-21"), Revenue: money("10166"), Taxable: money("8700"), Tax: money("1566"), Discount: money("100")},
	}

	// Bar-only day lands before the hotel day; rows must still come out in
	// date order.
	orderRows := []model.DailyTotals{
		{Day: reportDay("2024-07-20"), Revenue: money("885"), Taxable: money("750"), Tax: money("135"), Discount: decimal.Zero},
		{Day: reportDay("2024-07-21"), Revenue: money("540"), Taxable: money("500"), Tax: money("90"), Discount: money("50")},
	}

	mockRepo.EXPECT().
		BillDailyTotals(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(billRows, nil)

	mockRepo.EXPECT().
		OrderDailyTotals(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(orderRows, nil)

	res, err := svc.Sales(context.Background(), reportDay("2024-07-20"), reportDay("2024-07-21"))

	assert.NoError(t, err)
	assert.Equal(t, "2024-07-20", res.From)
	assert.Equal(t, "2024-07-21", res.To)
	require.Len(t, res.Rows, 2)

	assert.Equal(t, "2024-07-20", res.Rows[0].Date)
	assert.True(t, res.Rows[0].HotelRevenue.IsZero())
	assert.True(t, res.Rows[0].BarRevenue.Equal(money("885")))
	assert.True(t, res.Rows[0].TotalRevenue.Equal(money("885")))

	assert.Equal(t, "2024-07-21", res.Rows[1].Date)
	assert.True(t, res.Rows[1].HotelRevenue.Equal(money("10166")))
	assert.True(t, res.Rows[1].BarRevenue.Equal(money("540")))
	assert.True(t, res.Rows[1].TotalRevenue.Equal(money("10706")))
	assert.True(t, res.Rows[1].Gst.Equal(money("1656")))
	assert.True(t, res.Rows[1].Discounts.Equal(money("150")))

	assert.True(t, res.TotalRevenue.Equal(money("11591")), "total revenue: got %s", res.TotalRevenue)
	assert.True(t, res.TotalGst.Equal(money("1791")), "total gst: got %s", res.TotalGst)
	assert.True(t, res.TotalDiscounts.Equal(money("150")))
}

func TestReportService_Gst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reportMocks.NewMockReport(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	billRows := []model.DailyTotals{
		{Day: reportDay("2024-07-21"), Revenue: money("10166"), Taxable: money("8700"), Tax: money("1566"), Discount: money("100")},
	}

	// An odd paisa tax total must still split without losing a paisa.
	orderRows := []model.DailyTotals{
		{Day: reportDay("2024-07-21"), Revenue: money("100.05"), Taxable: money("84.79"), Tax: money("15.27"), Discount: decimal.Zero},
	}

	mockRepo.EXPECT().
		BillDailyTotals(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(billRows, nil)

	mockRepo.EXPECT().
		OrderDailyTotals(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(orderRows, nil)

	res, err := svc.Gst(context.Background(), reportDay("2024-07-21"), reportDay("2024-07-21"))

	assert.NoError(t, err)
	require.Len(t, res.Rows, 1)

	row := res.Rows[0]
	assert.True(t, row.TaxableValue.Equal(money("8784.79")))
	assert.True(t, row.GstCollected.Equal(money("1581.27")))
	assert.True(t, row.Cgst.Add(row.Sgst).Equal(row.GstCollected), "cgst %s + sgst %s != %s", row.Cgst, row.Sgst, row.GstCollected)
}

func TestReportService_RangeValidation(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
	}{
		{name: "only from set", from: reportDay("2024-07-01")},
		{name: "only to set", to: reportDay("2024-07-31")},
		{name: "to before from", from: reportDay("2024-07-31"), to: reportDay("2024-07-01")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := reportMocks.NewMockReport(ctrl)
			svc := service.New(mockRepo, mocks.NewOtel())

			_, err := svc.Sales(context.Background(), tt.from, tt.to)

			assert.Error(t, err)
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestReportService_DefaultRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reportMocks.NewMockReport(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	var gotFrom, gotTo time.Time

	mockRepo.EXPECT().
		BillDailyTotals(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, from, to time.Time) ([]model.DailyTotals, error) {
			gotFrom, gotTo = from, to

			return nil, nil
		})

	mockRepo.EXPECT().
		OrderDailyTotals(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	_, err := svc.Sales(context.Background(), time.Time{}, time.Time{})

	assert.NoError(t, err)
	assert.True(t, gotTo.After(gotFrom))
	assert.InDelta(t, 31, gotTo.Sub(gotFrom).Hours()/24, 1)
}
