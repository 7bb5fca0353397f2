package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// UnitOfWork groups the repositories of one transaction. Nothing is visible to other
// units until Complete succeeds. Rollback after Complete is a no-op, so it is safe to defer.
type UnitOfWork interface {
	Movies() MovieRepository
	Actors() ActorRepository
	Reviews() ReviewRepository
	Genres() GenreRepository

	Complete(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type unitOfWork struct {
	tx  pgx.Tx
	log *zap.Logger

	movies  MovieRepository
	actors  ActorRepository
	reviews ReviewRepository
	genres  GenreRepository
}

func newUnitOfWork(tx pgx.Tx, log *zap.Logger) *unitOfWork {
	return &unitOfWork{tx: tx, log: log}
}

func (u *unitOfWork) Movies() MovieRepository {
	if u.movies == nil {
		u.movies = NewMovieRepository(u.tx, u.log)
	}
	return u.movies
}

func (u *unitOfWork) Actors() ActorRepository {
	if u.actors == nil {
		u.actors = NewActorRepository(u.tx, u.log)
	}
	return u.actors
}

func (u *unitOfWork) Reviews() ReviewRepository {
	if u.reviews == nil {
		u.reviews = NewReviewRepository(u.tx, u.log)
	}
	return u.reviews
}

func (u *unitOfWork) Genres() GenreRepository {
	if u.genres == nil {
		u.genres = NewGenreRepository(u.tx, u.log)
	}
	return u.genres
}

// Complete commits. Serialization failures come back as ErrEditConflict.
func (u *unitOfWork) Complete(ctx context.Context) error {
	if err := u.tx.Commit(ctx); err != nil {
		err = translateError(err)
		if !isSentinel(err) {
			u.log.Error("Failed to commit transaction", zap.Error(err))
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		u.log.Error("Failed to rollback transaction", zap.Error(err))
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}
