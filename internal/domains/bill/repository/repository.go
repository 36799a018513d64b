package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/bill/model"
	gDto "lodge/shared/dto"
	gRepo "lodge/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Bill interface {
	Insert(ctx context.Context, model model.Bill) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Bill) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Bill, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Bill, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	NextInvoiceSequence(ctx context.Context) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Bill]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Bill {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Bill](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// NextInvoiceSequence draws the next value from the invoice sequence so
// invoice numbers stay unique across concurrent checkouts.
func (repo *repositoryImpl) NextInvoiceSequence(ctx context.Context) (int, error) {
	var seq int

	err := repo.db.Write.GetContext(ctx, &seq, "SELECT nextval('bill_invoice_seq')")
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return seq, nil
}
