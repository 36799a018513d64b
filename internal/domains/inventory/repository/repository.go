package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/inventory/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gRepo "lodge/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

type StockItem interface {
	Insert(ctx context.Context, model model.StockItem) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.StockItem, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.StockItem, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetLowStock(ctx context.Context) ([]model.StockItem, error)
	GetExpiringBefore(ctx context.Context, horizon time.Time) ([]model.StockItem, error)
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
}

type itemRepositoryImpl struct {
	gRepo.Repository[model.StockItem]
	db   *postgres.Connection
	otel otel.Otel
}

func NewStockItem(db *postgres.Connection, otel otel.Otel) StockItem {
	return &itemRepositoryImpl{
		Repository: gRepo.NewRepository[model.StockItem](model.ItemEntityName, model.ItemTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetLowStock compares quantity against each row's own reorder level, which
// the filter builder cannot express with literal values.
func (repo *itemRepositoryImpl) GetLowStock(ctx context.Context) (items []model.StockItem, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetLowStock")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("SELECT * FROM %s WHERE quantity <= reorder_level ORDER BY name ASC", model.ItemTableName)

	err = repo.db.Read.SelectContext(ctx, &items, query)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return items, nil
}

func (repo *itemRepositoryImpl) GetExpiringBefore(ctx context.Context, horizon time.Time) (items []model.StockItem, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetExpiringBefore")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("SELECT * FROM %s WHERE expiry_date IS NOT NULL AND expiry_date <= $1 ORDER BY expiry_date ASC", model.ItemTableName)

	err = repo.db.Read.SelectContext(ctx, &items, query, horizon)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return items, nil
}

func (repo *itemRepositoryImpl) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return repo.db.Write.BeginTxx(ctx, nil) //nolint:wrapcheck
}

type StockTransaction interface {
	Insert(ctx context.Context, model model.StockTransaction) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.StockTransaction) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.StockTransaction, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.StockTransaction, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type transactionRepositoryImpl struct {
	gRepo.Repository[model.StockTransaction]
	db   *postgres.Connection
	otel otel.Otel
}

func NewStockTransaction(db *postgres.Connection, otel otel.Otel) StockTransaction {
	return &transactionRepositoryImpl{
		Repository: gRepo.NewRepository[model.StockTransaction](model.TransactionEntityName, model.TransactionTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
