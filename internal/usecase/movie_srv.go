package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"movies-api/internal/data/entity"
	"movies-api/internal/data/repository"
	"movies-api/internal/dto/request"
	"movies-api/internal/dto/response"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Documentary limits.
const (
	MaxDocumentaryBudget = 1_000_000
	MaxDocumentaryActors = 10
)

type MovieService interface {
	Any(ctx context.Context, id uuid.UUID) (bool, error)
	GetAll(ctx context.Context, params request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	Get(ctx context.Context, id uuid.UUID) (*response.MovieResponse, error)
	// GetDetailed includes genre, details, cast with filmographies and reviews.
	GetDetailed(ctx context.Context, id uuid.UUID) (*response.MovieDetailResponse, error)

	Create(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.MovieRequest) error
	// GetUpdateRequest returns the current mutable state, the base document for Patch.
	GetUpdateRequest(ctx context.Context, id uuid.UUID) (*request.MovieRequest, error)
	// Patch applies an RFC 6902 document to the update request and runs Update.
	Patch(ctx context.Context, id uuid.UUID, patch []byte) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Documentary rules
	IsGenreIDDocumentary(ctx context.Context, genreID uuid.UUID) (bool, error)
	IsMovieDocumentary(ctx context.Context, movieID uuid.UUID) (bool, error)
	IsDocumentaryActorLimitReached(ctx context.Context, movieID uuid.UUID) (bool, error)
	IsDocumentaryBudgetLimitReached(ctx context.Context, genreID uuid.UUID, budget *int) (bool, error)
}

type movieService struct {
	store repository.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewMovieService(store repository.Store, log *zap.Logger) MovieService {
	return &movieService{
		store: store,
		log:   log.With(zap.String("service", "movie")),
		now:   time.Now,
	}
}

func budgetLimitExceeded(genre *entity.Genre, budget *int) bool {
	return genre.IsDocumentary() && budget != nil && *budget > MaxDocumentaryBudget
}

func invalidGenreError() error {
	return ValidationError("invalid genre reference", map[string]string{"genreId": "Genre does not exist"})
}

func budgetLimitError() error {
	return ValidationError(
		fmt.Sprintf("documentary budget cannot exceed %d", MaxDocumentaryBudget),
		map[string]string{"budget": fmt.Sprintf("Must be less than or equal to %d for documentaries", MaxDocumentaryBudget)},
	)
}

func (s *movieService) Any(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) (err error) {
		exists, err = uow.Movies().Any(ctx, id)
		return err
	})
	return exists, err
}

func (s *movieService) GetAll(ctx context.Context, params request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	var resp *response.PaginatedResponse[response.MovieResponse]
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		movies, meta, err := uow.Movies().FindAll(ctx, false, params, repository.MovieWithGenre, repository.MovieWithDetails)
		if err != nil {
			return err
		}
		resp = response.NewPaginatedResponse(response.MoviesToResponse(movies), meta)
		return nil
	})
	if err != nil {
		s.log.Error("Failed to get movies", zap.Error(err))
		return nil, fmt.Errorf("get movies: %w", err)
	}
	return resp, nil
}

func (s *movieService) find(ctx context.Context, id uuid.UUID, includes ...repository.Include[entity.Movie]) (*entity.Movie, error) {
	var movie *entity.Movie
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) (err error) {
		movie, err = uow.Movies().FindByID(ctx, id, false, includes...)
		return err
	})
	if err != nil {
		s.log.Error("Failed to get movie", zap.Error(err), zap.String("movie_id", id.String()))
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, NotFoundError("movie not found")
	}
	return movie, nil
}

func (s *movieService) Get(ctx context.Context, id uuid.UUID) (*response.MovieResponse, error) {
	movie, err := s.find(ctx, id, repository.MovieWithGenre, repository.MovieWithDetails)
	if err != nil {
		return nil, err
	}
	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) GetDetailed(ctx context.Context, id uuid.UUID) (*response.MovieDetailResponse, error) {
	movie, err := s.find(ctx, id,
		repository.MovieWithGenre,
		repository.MovieWithDetails,
		repository.MovieWithCast,
		repository.MovieWithReviews,
	)
	if err != nil {
		return nil, err
	}
	resp := response.MovieToDetailResponse(movie)
	return &resp, nil
}

func (s *movieService) Create(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	genreID, err := parseID(req.GenreID, "genreId")
	if err != nil {
		return nil, err
	}

	now := s.now()
	movie := &entity.Movie{
		Base:              entity.NewBase(now),
		Title:             req.Title,
		Year:              req.Year,
		DurationInMinutes: req.DurationInMinutes,
		GenreID:           genreID,
		Details: &entity.MovieDetails{
			Synopsis: req.Synopsis,
			Language: req.Language,
			Budget:   req.Budget,
		},
	}

	err = inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		genre, err := uow.Genres().FindByID(ctx, genreID, false, false)
		if err != nil {
			return err
		}
		if genre == nil {
			return invalidGenreError()
		}
		if budgetLimitExceeded(genre, req.Budget) {
			return budgetLimitError()
		}
		movie.Genre = genre
		return uow.Movies().Create(ctx, movie)
	})
	if err != nil {
		return nil, s.translate(ctx, movie.ID, "create", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
		zap.String("genre_id", genreID.String()),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) Update(ctx context.Context, id uuid.UUID, req *request.MovieRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	genreID, err := parseID(req.GenreID, "genreId")
	if err != nil {
		return err
	}

	err = inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		movie, err := uow.Movies().FindByID(ctx, id, true, repository.MovieWithDetails)
		if err != nil {
			return err
		}
		if movie == nil {
			return NotFoundError("movie not found")
		}

		genre, err := uow.Genres().FindByID(ctx, genreID, false, false)
		if err != nil {
			return err
		}
		if genre == nil {
			return invalidGenreError()
		}
		if budgetLimitExceeded(genre, req.Budget) {
			return budgetLimitError()
		}

		if req.Version != nil {
			movie.Version = *req.Version
		}
		movie.Title = req.Title
		movie.Year = req.Year
		movie.DurationInMinutes = req.DurationInMinutes
		movie.GenreID = genreID
		movie.UpdatedAt = s.now()
		movie.Details = &entity.MovieDetails{
			MovieID:  movie.ID,
			Synopsis: req.Synopsis,
			Language: req.Language,
			Budget:   req.Budget,
		}
		return uow.Movies().Update(ctx, movie)
	})
	if err != nil {
		return s.translate(ctx, id, "update", err)
	}

	s.log.Info("Movie updated", zap.String("movie_id", id.String()))
	return nil
}

func (s *movieService) GetUpdateRequest(ctx context.Context, id uuid.UUID) (*request.MovieRequest, error) {
	movie, err := s.find(ctx, id, repository.MovieWithDetails)
	if err != nil {
		return nil, err
	}
	req := request.NewMovieUpdateRequest(movie)
	version := movie.Version
	req.Version = &version
	return &req, nil
}

func (s *movieService) Patch(ctx context.Context, id uuid.UUID, patch []byte) error {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return &Error{Kind: KindValidation, Message: "invalid patch document", Err: err}
	}

	current, err := s.GetUpdateRequest(ctx, id)
	if err != nil {
		return err
	}

	doc, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("marshal movie update request: %w", err)
	}
	patched, err := ops.Apply(doc)
	if err != nil {
		return &Error{Kind: KindValidation, Message: "patch could not be applied", Err: err}
	}

	var req request.MovieRequest
	if err := json.Unmarshal(patched, &req); err != nil {
		return &Error{Kind: KindValidation, Message: "patched movie is malformed", Err: err}
	}
	return s.Update(ctx, id, &req)
}

func (s *movieService) Delete(ctx context.Context, id uuid.UUID) error {
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		movie, err := uow.Movies().FindByID(ctx, id, true)
		if err != nil {
			return err
		}
		if movie == nil {
			return NotFoundError("movie not found")
		}
		return uow.Movies().Delete(ctx, id)
	})
	if err != nil {
		return s.translate(ctx, id, "delete", err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

func (s *movieService) IsGenreIDDocumentary(ctx context.Context, genreID uuid.UUID) (bool, error) {
	var documentary bool
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		genre, err := uow.Genres().FindByID(ctx, genreID, false, false)
		if err != nil {
			return err
		}
		documentary = genre.IsDocumentary()
		return nil
	})
	return documentary, err
}

func (s *movieService) IsMovieDocumentary(ctx context.Context, movieID uuid.UUID) (bool, error) {
	var documentary bool
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) (err error) {
		documentary, err = uow.Movies().IsOfGenre(ctx, movieID, entity.GenreDocumentary)
		return err
	})
	return documentary, err
}

func (s *movieService) IsDocumentaryActorLimitReached(ctx context.Context, movieID uuid.UUID) (bool, error) {
	var reached bool
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) (err error) {
		reached, err = actorLimitReached(ctx, uow, movieID)
		return err
	})
	return reached, err
}

func (s *movieService) IsDocumentaryBudgetLimitReached(ctx context.Context, genreID uuid.UUID, budget *int) (bool, error) {
	var reached bool
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		genre, err := uow.Genres().FindByID(ctx, genreID, false, false)
		if err != nil {
			return err
		}
		reached = budgetLimitExceeded(genre, budget)
		return nil
	})
	return reached, err
}

// actorLimitReached reports whether a documentary already has MaxDocumentaryActors cast members.
func actorLimitReached(ctx context.Context, uow repository.UnitOfWork, movieID uuid.UUID) (bool, error) {
	documentary, err := uow.Movies().IsOfGenre(ctx, movieID, entity.GenreDocumentary)
	if err != nil || !documentary {
		return false, err
	}
	count, err := uow.Actors().CountByMovie(ctx, movieID)
	if err != nil {
		return false, err
	}
	return count >= MaxDocumentaryActors, nil
}

func (s *movieService) translate(ctx context.Context, id uuid.UUID, op string, err error) error {
	var svcErr *Error
	switch {
	case errors.As(err, &svcErr):
		return err
	case errors.Is(err, repository.ErrForeignKey):
		return invalidGenreError()
	case errors.Is(err, repository.ErrEditConflict):
		return resolveEditConflict(ctx, s.store, err, "movie", func(ctx context.Context, uow repository.UnitOfWork) (bool, error) {
			return uow.Movies().Any(ctx, id)
		})
	}

	s.log.Error("Failed to "+op+" movie", zap.Error(err), zap.String("movie_id", id.String()))
	return fmt.Errorf("%s movie: %w", op, err)
}
