package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movies-api/internal/data/entity"
	"movies-api/internal/data/repository"
	"movies-api/internal/dto/request"
	"movies-api/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ActorService interface {
	Any(ctx context.Context, id uuid.UUID) (bool, error)
	GetAll(ctx context.Context, params request.PaginatedRequest) (*response.PaginatedResponse[response.ActorResponse], error)
	Get(ctx context.Context, id uuid.UUID) (*response.ActorResponse, error)
	Create(ctx context.Context, req *request.ActorRequest) (*response.ActorResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.ActorRequest) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AddActorToMovie casts an actor. An existing pair is reported as CastAlreadyExists, not as an error.
	AddActorToMovie(ctx context.Context, movieID uuid.UUID, req *request.CastRequest) (response.CastResult, error)
	RemoveActorFromMovie(ctx context.Context, movieID, actorID uuid.UUID) error
	IsActorInMovie(ctx context.Context, movieID, actorID uuid.UUID) (bool, error)
}

type actorService struct {
	store repository.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewActorService(store repository.Store, log *zap.Logger) ActorService {
	return &actorService{
		store: store,
		log:   log.With(zap.String("service", "actor")),
		now:   time.Now,
	}
}

func (s *actorService) Any(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) (err error) {
		exists, err = uow.Actors().Any(ctx, id)
		return err
	})
	return exists, err
}

func (s *actorService) GetAll(ctx context.Context, params request.PaginatedRequest) (*response.PaginatedResponse[response.ActorResponse], error) {
	var resp *response.PaginatedResponse[response.ActorResponse]
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		actors, meta, err := uow.Actors().FindAll(ctx, false, params, repository.ActorWithMovies)
		if err != nil {
			return err
		}
		resp = response.NewPaginatedResponse(response.ActorsToResponse(actors), meta)
		return nil
	})
	if err != nil {
		s.log.Error("Failed to get actors", zap.Error(err))
		return nil, fmt.Errorf("get actors: %w", err)
	}
	return resp, nil
}

func (s *actorService) Get(ctx context.Context, id uuid.UUID) (*response.ActorResponse, error) {
	var actor *entity.Actor
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) (err error) {
		actor, err = uow.Actors().FindByID(ctx, id, false, repository.ActorWithMovies)
		return err
	})
	if err != nil {
		s.log.Error("Failed to get actor", zap.Error(err), zap.String("actor_id", id.String()))
		return nil, fmt.Errorf("get actor: %w", err)
	}
	if actor == nil {
		return nil, NotFoundError("actor not found")
	}

	resp := response.ActorToResponse(actor)
	return &resp, nil
}

func (s *actorService) Create(ctx context.Context, req *request.ActorRequest) (*response.ActorResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	actor := &entity.Actor{
		Base:      entity.NewBase(s.now()),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthYear: req.BirthYear,
	}

	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		return uow.Actors().Create(ctx, actor)
	})
	if err != nil {
		return nil, s.translate(ctx, actor.ID, "create", err)
	}

	s.log.Info("Actor created",
		zap.String("actor_id", actor.ID.String()),
		zap.String("name", actor.FullName()),
	)

	resp := response.ActorToResponse(actor)
	return &resp, nil
}

func (s *actorService) Update(ctx context.Context, id uuid.UUID, req *request.ActorRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		actor, err := uow.Actors().FindByID(ctx, id, true)
		if err != nil {
			return err
		}
		if actor == nil {
			return NotFoundError("actor not found")
		}

		if req.Version != nil {
			actor.Version = *req.Version
		}
		actor.FirstName = req.FirstName
		actor.LastName = req.LastName
		actor.BirthYear = req.BirthYear
		actor.UpdatedAt = s.now()
		return uow.Actors().Update(ctx, actor)
	})
	if err != nil {
		return s.translate(ctx, id, "update", err)
	}

	s.log.Info("Actor updated", zap.String("actor_id", id.String()))
	return nil
}

func (s *actorService) Delete(ctx context.Context, id uuid.UUID) error {
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		actor, err := uow.Actors().FindByID(ctx, id, true)
		if err != nil {
			return err
		}
		if actor == nil {
			return NotFoundError("actor not found")
		}
		return uow.Actors().Delete(ctx, id)
	})
	if err != nil {
		return s.translate(ctx, id, "delete", err)
	}

	s.log.Info("Actor deleted", zap.String("actor_id", id.String()))
	return nil
}

func (s *actorService) AddActorToMovie(ctx context.Context, movieID uuid.UUID, req *request.CastRequest) (response.CastResult, error) {
	if err := validate(req); err != nil {
		return "", err
	}
	actorID, err := parseID(req.ActorID, "actorId")
	if err != nil {
		return "", err
	}

	result := response.CastAdded
	err = inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		// Locking the movie serializes casting on it, so the size check below holds until commit.
		movie, err := uow.Movies().FindByID(ctx, movieID, true)
		if err != nil {
			return err
		}
		if movie == nil {
			return NotFoundError("movie not found")
		}

		exists, err := uow.Actors().Any(ctx, actorID)
		if err != nil {
			return err
		}
		if !exists {
			return NotFoundError("actor not found")
		}

		cast, err := uow.Actors().IsActorInMovie(ctx, movieID, actorID)
		if err != nil {
			return err
		}
		if cast {
			result = response.CastAlreadyExists
			return nil
		}

		reached, err := actorLimitReached(ctx, uow, movieID)
		if err != nil {
			return err
		}
		if reached {
			return ValidationError(
				fmt.Sprintf("actor limit reached: documentaries may have at most %d actors", MaxDocumentaryActors),
				nil,
			)
		}

		return uow.Actors().AddActorToMovie(ctx, &entity.MovieActor{
			MovieID: movieID,
			ActorID: actorID,
			Role:    req.Role,
		})
	})

	var svcErr *Error
	switch {
	case err == nil:
	case errors.As(err, &svcErr):
		return "", err
	case errors.Is(err, repository.ErrDuplicate):
		result = response.CastAlreadyExists
	case errors.Is(err, repository.ErrForeignKey):
		return "", NotFoundError("movie or actor not found")
	default:
		s.log.Error("Failed to add actor to movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.String("actor_id", actorID.String()),
		)
		return "", fmt.Errorf("add actor to movie: %w", err)
	}

	s.log.Info("Actor cast",
		zap.String("movie_id", movieID.String()),
		zap.String("actor_id", actorID.String()),
		zap.String("result", string(result)),
	)
	return result, nil
}

func (s *actorService) RemoveActorFromMovie(ctx context.Context, movieID, actorID uuid.UUID) error {
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		removed, err := uow.Actors().RemoveActorFromMovie(ctx, movieID, actorID)
		if err != nil {
			return err
		}
		if !removed {
			return NotFoundError("actor is not cast in this movie")
		}
		return nil
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return err
		}
		s.log.Error("Failed to remove actor from movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.String("actor_id", actorID.String()),
		)
		return fmt.Errorf("remove actor from movie: %w", err)
	}

	s.log.Info("Actor removed from movie",
		zap.String("movie_id", movieID.String()),
		zap.String("actor_id", actorID.String()),
	)
	return nil
}

func (s *actorService) IsActorInMovie(ctx context.Context, movieID, actorID uuid.UUID) (bool, error) {
	var cast bool
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) (err error) {
		cast, err = uow.Actors().IsActorInMovie(ctx, movieID, actorID)
		return err
	})
	return cast, err
}

func (s *actorService) translate(ctx context.Context, id uuid.UUID, op string, err error) error {
	var svcErr *Error
	switch {
	case errors.As(err, &svcErr):
		return err
	case errors.Is(err, repository.ErrEditConflict):
		return resolveEditConflict(ctx, s.store, err, "actor", func(ctx context.Context, uow repository.UnitOfWork) (bool, error) {
			return uow.Actors().Any(ctx, id)
		})
	}

	s.log.Error("Failed to "+op+" actor", zap.Error(err), zap.String("actor_id", id.String()))
	return fmt.Errorf("%s actor: %w", op, err)
}
