package usecase

import (
	"context"
	"time"

	"movies-api/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Genre  GenreService
	Movie  MovieService
	Actor  ActorService
	Review ReviewService
}

func NewService(store repository.Store, log *zap.Logger) *Service {
	return &Service{
		Genre:  NewGenreService(store, log),
		Movie:  NewMovieService(store, log),
		Actor:  NewActorService(store, log),
		Review: NewReviewService(store, log, time.Now),
	}
}

// inUnitOfWork runs fn in a new unit of work and completes it when fn succeeds.
// The unit is rolled back before inUnitOfWork returns, so callers may open another one.
func inUnitOfWork(ctx context.Context, store repository.Store, fn func(uow repository.UnitOfWork) error) error {
	uow, err := store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	if err := fn(uow); err != nil {
		return err
	}
	return uow.Complete(ctx)
}
