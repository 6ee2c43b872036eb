package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostal/infras/otel"
	"hostal/infras/postgres"
	"hostal/internal/domains/paypal/model"
	gDto "hostal/shared/dto"
	gRepo "hostal/shared/repository"
)

type PaypalPayment interface {
	Insert(ctx context.Context, model model.PaypalPayment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PaypalPayment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PaypalPayment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.PaypalPayment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) PaypalPayment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PaypalPayment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
