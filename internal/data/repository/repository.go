package repository

import (
	"context"
	"fmt"

	"movies-api/pkg/database"

	"go.uber.org/zap"
)

// Store opens units of work. Repository is the Postgres implementation.
type Store interface {
	Begin(ctx context.Context) (UnitOfWork, error)
	Ping(ctx context.Context) error
}

type Repository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log,
	}
}

// Begin starts a transaction; the returned unit of work must be completed or rolled back.
func (r *Repository) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return newUnitOfWork(tx, r.log), nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
