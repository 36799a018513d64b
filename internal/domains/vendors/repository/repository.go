package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/vendors/model"
	gDto "lodge/shared/dto"
	gRepo "lodge/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Vendor interface {
	Insert(ctx context.Context, model model.Vendor) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Vendor, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Vendor, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type vendorRepositoryImpl struct {
	gRepo.Repository[model.Vendor]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Vendor {
	return &vendorRepositoryImpl{
		Repository: gRepo.NewRepository[model.Vendor](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type PurchaseOrder interface {
	Insert(ctx context.Context, model model.PurchaseOrder) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PurchaseOrder, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PurchaseOrder, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type purchaseOrderRepositoryImpl struct {
	gRepo.Repository[model.PurchaseOrder]
	db   *postgres.Connection
	otel otel.Otel
}

func NewPurchaseOrder(db *postgres.Connection, otel otel.Otel) PurchaseOrder {
	return &purchaseOrderRepositoryImpl{
		Repository: gRepo.NewRepository[model.PurchaseOrder](model.PurchaseOrderEntityName, model.PurchaseOrderTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
