package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hostal/infras/otel"
	"hostal/infras/postgres"
	"hostal/internal/domains/reservation/model"
	"hostal/shared"
	"hostal/shared/constant"
	gDto "hostal/shared/dto"
	"hostal/shared/logger"
	gRepo "hostal/shared/repository"
)

type Reservation interface {
	CreateWithClient(ctx context.Context, reservation model.Reservation, client model.Client) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	DeleteWithClient(ctx context.Context, reservationID, clientID string) error
	GetClient(ctx context.Context, clientID string) (model.Client, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	clientRepo gRepo.Repository[model.Client]
	db         *postgres.Connection
	otel       otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		clientRepo: gRepo.NewRepository[model.Client](model.ClientEntityName, model.ClientTableName, model.ClientFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CreateWithClient inserts the client row and the reservation row in one
// transaction so a reservation never exists without its client.
func (repo *repositoryImpl) CreateWithClient(ctx context.Context, reservation model.Reservation, client model.Client) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CreateWithClient")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.Beginx()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = repo.clientRepo.InsertTx(ctx, tx, client); err != nil {
		return err //nolint:wrapcheck
	}

	if err = repo.InsertTx(ctx, tx, reservation); err != nil {
		return err //nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteWithClient removes the reservation and its client row in one
// transaction; a deleted reservation cascades to its client.
func (repo *repositoryImpl) DeleteWithClient(ctx context.Context, reservationID, clientID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.DeleteWithClient")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.Beginx()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = repo.DeleteTx(ctx, tx, shared.FilterByID(reservationID, model.FieldID, model.TableName)); err != nil {
		return err //nolint:wrapcheck
	}

	if clientID != constant.Empty {
		if err = repo.clientRepo.DeleteTx(ctx, tx, shared.FilterByID(clientID, model.ClientFieldID, model.ClientTableName)); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) GetClient(ctx context.Context, clientID string) (model.Client, error) {
	return repo.clientRepo.Get(ctx, shared.FilterByID(clientID, model.ClientFieldID, model.ClientTableName)) //nolint:wrapcheck
}
