package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lodge/infras/otel"
	"lodge/internal/domains/report/model"
	"lodge/internal/domains/report/model/dto"
	"lodge/internal/domains/report/repository"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Report interface {
	Sales(ctx context.Context, from, to time.Time) (dto.SalesReportResponse, error)
	Gst(ctx context.Context, from, to time.Time) (dto.GstReportResponse, error)
}

type serviceImpl struct {
	repo repository.Report
	otel otel.Otel
}

func New(repo repository.Report, otel otel.Otel) Report {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

var two = decimal.NewFromInt(2)

// Sales merges the hotel (bills) and bar (orders) daily aggregates into one
// row per calendar day.
func (s *serviceImpl) Sales(ctx context.Context, from, to time.Time) (res dto.SalesReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sales")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, to, err = normalizeRange(from, to)
	if err != nil {
		return res, err
	}

	billRows, err := s.repo.BillDailyTotals(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate bill totals")

		return res, fmt.Errorf("failed to aggregate bill totals: %w", err)
	}

	orderRows, err := s.repo.OrderDailyTotals(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate order totals")

		return res, fmt.Errorf("failed to aggregate order totals: %w", err)
	}

	res.From = timezone.Format(from, constant.DateOnlyFormat)
	res.To = timezone.Format(to.AddDate(0, 0, -1), constant.DateOnlyFormat)
	res.TotalRevenue = decimal.Zero
	res.TotalGst = decimal.Zero
	res.TotalDiscounts = decimal.Zero

	rows := map[string]*dto.SalesReportRow{}
	days := []string{}

	appendRow := func(day string) *dto.SalesReportRow {
		row, ok := rows[day]
		if !ok {
			row = &dto.SalesReportRow{
				Date:         day,
				HotelRevenue: decimal.Zero,
				BarRevenue:   decimal.Zero,
				TotalRevenue: decimal.Zero,
				Gst:          decimal.Zero,
				Discounts:    decimal.Zero,
			}
			rows[day] = row
			days = append(days, day)
		}

		return row
	}

	for _, billRow := range billRows {
		row := appendRow(timezone.Format(billRow.Day, constant.DateOnlyFormat))
		row.HotelRevenue = row.HotelRevenue.Add(billRow.Revenue)
		row.Gst = row.Gst.Add(billRow.Tax)
		row.Discounts = row.Discounts.Add(billRow.Discount)
	}

	for _, orderRow := range orderRows {
		row := appendRow(timezone.Format(orderRow.Day, constant.DateOnlyFormat))
		row.BarRevenue = row.BarRevenue.Add(orderRow.Revenue)
		row.Gst = row.Gst.Add(orderRow.Tax)
		row.Discounts = row.Discounts.Add(orderRow.Discount)
	}

	sort.Strings(days)

	res.Rows = make([]dto.SalesReportRow, 0, len(days))
	for _, day := range days {
		row := rows[day]
		row.TotalRevenue = row.HotelRevenue.Add(row.BarRevenue)

		res.Rows = append(res.Rows, *row)
		res.TotalRevenue = res.TotalRevenue.Add(row.TotalRevenue)
		res.TotalGst = res.TotalGst.Add(row.Gst)
		res.TotalDiscounts = res.TotalDiscounts.Add(row.Discounts)
	}

	return res, nil
}

func (s *serviceImpl) Gst(ctx context.Context, from, to time.Time) (res dto.GstReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Gst")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, to, err = normalizeRange(from, to)
	if err != nil {
		return res, err
	}

	billRows, err := s.repo.BillDailyTotals(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate bill totals")

		return res, fmt.Errorf("failed to aggregate bill totals: %w", err)
	}

	orderRows, err := s.repo.OrderDailyTotals(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate order totals")

		return res, fmt.Errorf("failed to aggregate order totals: %w", err)
	}

	res.From = timezone.Format(from, constant.DateOnlyFormat)
	res.To = timezone.Format(to.AddDate(0, 0, -1), constant.DateOnlyFormat)
	res.TotalTaxable = decimal.Zero
	res.TotalGst = decimal.Zero

	merged := map[string]*model.DailyTotals{}
	days := []string{}

	for _, sourceRows := range [][]model.DailyTotals{billRows, orderRows} {
		for _, sourceRow := range sourceRows {
			day := timezone.Format(sourceRow.Day, constant.DateOnlyFormat)

			row, ok := merged[day]
			if !ok {
				row = &model.DailyTotals{
					Taxable: decimal.Zero,
					Tax:     decimal.Zero,
				}
				merged[day] = row
				days = append(days, day)
			}

			row.Taxable = row.Taxable.Add(sourceRow.Taxable)
			row.Tax = row.Tax.Add(sourceRow.Tax)
		}
	}

	sort.Strings(days)

	res.Rows = make([]dto.GstReportRow, 0, len(days))
	for _, day := range days {
		row := merged[day]
		half := row.Tax.Div(two).Round(2)

		res.Rows = append(res.Rows, dto.GstReportRow{
			Date:         day,
			TaxableValue: row.Taxable,
			GstCollected: row.Tax,
			Cgst:         half,
			Sgst:         row.Tax.Sub(half),
		})

		res.TotalTaxable = res.TotalTaxable.Add(row.Taxable)
		res.TotalGst = res.TotalGst.Add(row.Tax)
	}

	return res, nil
}

// normalizeRange widens the window to whole days and makes the upper bound
// exclusive. An empty range defaults to the last thirty days.
func normalizeRange(from, to time.Time) (time.Time, time.Time, error) {
	if from.IsZero() && to.IsZero() {
		to = timezone.Now()
		from = to.AddDate(0, 0, -constant.DefaultReportRangeDays)
	}

	if from.IsZero() || to.IsZero() {
		return from, to, failure.BadRequestFromString("both from and to are required") //nolint:wrapcheck
	}

	if to.Before(from) {
		return from, to, failure.BadRequestFromString("to must not be before from") //nolint:wrapcheck
	}

	return startOfDay(from), startOfDay(to).AddDate(0, 0, 1), nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
