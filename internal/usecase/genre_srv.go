package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movies-api/internal/data/entity"
	"movies-api/internal/data/repository"
	"movies-api/internal/dto/request"
	"movies-api/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenreService interface {
	Any(ctx context.Context, id uuid.UUID) (bool, error)
	GetAll(ctx context.Context, params request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error)
	Get(ctx context.Context, id uuid.UUID) (*response.GenreResponse, error)
	GetWithMovies(ctx context.Context, id uuid.UUID) (*response.GenreMoviesResponse, error)

	Create(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.GenreRequest) error
	// Delete removes the genre together with its movies.
	Delete(ctx context.Context, id uuid.UUID) error
}

type genreService struct {
	store repository.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewGenreService(store repository.Store, log *zap.Logger) GenreService {
	return &genreService{
		store: store,
		log:   log.With(zap.String("service", "genre")),
		now:   time.Now,
	}
}

func (s *genreService) Any(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) (err error) {
		exists, err = uow.Genres().Any(ctx, id)
		return err
	})
	return exists, err
}

func (s *genreService) GetAll(ctx context.Context, params request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error) {
	var resp *response.PaginatedResponse[response.GenreResponse]
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		genres, meta, err := uow.Genres().FindAll(ctx, false, params)
		if err != nil {
			return err
		}
		resp = response.NewPaginatedResponse(response.GenresToResponse(genres), meta)
		return nil
	})
	if err != nil {
		s.log.Error("Failed to get genres", zap.Error(err))
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return resp, nil
}

func (s *genreService) find(ctx context.Context, id uuid.UUID, includeMovies bool) (*entity.Genre, error) {
	var genre *entity.Genre
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) (err error) {
		genre, err = uow.Genres().FindByID(ctx, id, false, includeMovies)
		return err
	})
	if err != nil {
		s.log.Error("Failed to get genre", zap.Error(err), zap.String("genre_id", id.String()))
		return nil, fmt.Errorf("get genre: %w", err)
	}
	if genre == nil {
		return nil, NotFoundError("genre not found")
	}
	return genre, nil
}

func (s *genreService) Get(ctx context.Context, id uuid.UUID) (*response.GenreResponse, error) {
	genre, err := s.find(ctx, id, false)
	if err != nil {
		return nil, err
	}
	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) GetWithMovies(ctx context.Context, id uuid.UUID) (*response.GenreMoviesResponse, error) {
	genre, err := s.find(ctx, id, true)
	if err != nil {
		return nil, err
	}
	resp := response.GenreToMoviesResponse(genre)
	return &resp, nil
}

// validateGenre checks the request with the name as it will be stored.
func validateGenre(req *request.GenreRequest) (string, error) {
	trimmed := *req
	trimmed.Name = strings.TrimSpace(req.Name)
	if err := validate(&trimmed); err != nil {
		return "", err
	}
	return trimmed.Name, nil
}

func (s *genreService) Create(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	name, err := validateGenre(req)
	if err != nil {
		return nil, err
	}

	genre := &entity.Genre{
		Base: entity.NewBase(s.now()),
		Name: name,
	}

	err = inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		exists, err := uow.Genres().ExistsByName(ctx, name, nil)
		if err != nil {
			return err
		}
		if exists {
			return ConflictError(fmt.Sprintf("genre %q already exists", name))
		}
		return uow.Genres().Create(ctx, genre)
	})
	if err != nil {
		return nil, s.translate(ctx, genre.ID, name, "create", err)
	}

	s.log.Info("Genre created",
		zap.String("genre_id", genre.ID.String()),
		zap.String("name", genre.Name),
	)

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) Update(ctx context.Context, id uuid.UUID, req *request.GenreRequest) error {
	name, err := validateGenre(req)
	if err != nil {
		return err
	}

	err = inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		genre, err := uow.Genres().FindByID(ctx, id, true, false)
		if err != nil {
			return err
		}
		if genre == nil {
			return NotFoundError("genre not found")
		}

		exists, err := uow.Genres().ExistsByName(ctx, name, &id)
		if err != nil {
			return err
		}
		if exists {
			return ConflictError(fmt.Sprintf("genre %q already exists", name))
		}

		if req.Version != nil {
			genre.Version = *req.Version
		}
		genre.Name = name
		genre.UpdatedAt = s.now()
		return uow.Genres().Update(ctx, genre)
	})
	if err != nil {
		return s.translate(ctx, id, name, "update", err)
	}

	s.log.Info("Genre updated", zap.String("genre_id", id.String()), zap.String("name", name))
	return nil
}

func (s *genreService) Delete(ctx context.Context, id uuid.UUID) error {
	var cascaded int
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		genre, err := uow.Genres().FindByID(ctx, id, true, false)
		if err != nil {
			return err
		}
		if genre == nil {
			return NotFoundError("genre not found")
		}

		// Lock the movies the cascade removes so reviews and casting on them wait for the delete.
		movies, err := uow.Movies().FindByGenreID(ctx, id, true)
		if err != nil {
			return err
		}
		cascaded = len(movies)
		return uow.Genres().Delete(ctx, id)
	})
	if err != nil {
		return s.translate(ctx, id, "", "delete", err)
	}

	s.log.Info("Genre deleted",
		zap.String("genre_id", id.String()),
		zap.Int("movies_deleted", cascaded),
	)
	return nil
}

func (s *genreService) translate(ctx context.Context, id uuid.UUID, name, op string, err error) error {
	var svcErr *Error
	switch {
	case errors.As(err, &svcErr):
		return err
	case errors.Is(err, repository.ErrDuplicate):
		return ConflictError(fmt.Sprintf("genre %q already exists", name))
	case errors.Is(err, repository.ErrEditConflict):
		return resolveEditConflict(ctx, s.store, err, "genre", func(ctx context.Context, uow repository.UnitOfWork) (bool, error) {
			return uow.Genres().Any(ctx, id)
		})
	}

	s.log.Error("Failed to "+op+" genre", zap.Error(err), zap.String("genre_id", id.String()))
	return fmt.Errorf("%s genre: %w", op, err)
}
