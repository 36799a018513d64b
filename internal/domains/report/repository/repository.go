package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/report/model"
	"lodge/shared/constant"
)

const billTotalsQuery = `
SELECT date_trunc('day', created_at) AS day,
       COALESCE(SUM(net_total), 0)   AS revenue,
       COALESCE(SUM(subtotal), 0)    AS taxable,
       COALESCE(SUM(tax_amount), 0)  AS tax,
       COALESCE(SUM(discount), 0)    AS discount
FROM bills
WHERE created_at >= $1 AND created_at < $2
GROUP BY 1
ORDER BY 1 ASC`

const orderTotalsQuery = `
SELECT date_trunc('day', created_at) AS day,
       COALESCE(SUM(net_total), 0)   AS revenue,
       COALESCE(SUM(subtotal)   FILTER (WHERE parent_order_id IS NULL OR id LIKE '%-s1'), 0) AS taxable,
       COALESCE(SUM(tax_amount) FILTER (WHERE parent_order_id IS NULL OR id LIKE '%-s1'), 0) AS tax,
       COALESCE(SUM(discount)   FILTER (WHERE parent_order_id IS NULL OR id LIKE '%-s1'), 0) AS discount
FROM orders
WHERE created_at >= $1 AND created_at < $2
GROUP BY 1
ORDER BY 1 ASC`

type Report interface {
	BillDailyTotals(ctx context.Context, from, to time.Time) ([]model.DailyTotals, error)
	OrderDailyTotals(ctx context.Context, from, to time.Time) ([]model.DailyTotals, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Report {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) BillDailyTotals(ctx context.Context, from, to time.Time) (rows []model.DailyTotals, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".BillDailyTotals")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Read.SelectContext(ctx, &rows, billTotalsQuery, from, to)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return rows, nil
}

// OrderDailyTotals sums net totals across every order, but counts subtotal,
// tax and discount only once per split family; both split parts carry the
// parent's full figures.
func (repo *repositoryImpl) OrderDailyTotals(ctx context.Context, from, to time.Time) (rows []model.DailyTotals, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".OrderDailyTotals")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Read.SelectContext(ctx, &rows, orderTotalsQuery, from, to)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return rows, nil
}
