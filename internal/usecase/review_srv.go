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

// Review caps by movie age in years.
const (
	RecentMovieMaxAge     = 20
	MaxReviewsRecentMovie = 10
	MaxReviewsOlderMovie  = 5
)

type ReviewService interface {
	Any(ctx context.Context, id uuid.UUID) (bool, error)
	GetAll(ctx context.Context, params request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	Get(ctx context.Context, id uuid.UUID) (*response.ReviewResponse, error)
	GetByMovie(ctx context.Context, movieID uuid.UUID, params request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)

	Create(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.UpdateReviewRequest) error
	Delete(ctx context.Context, id uuid.UUID) error

	// IsMaxReviews reports whether the movie has reached its review cap.
	IsMaxReviews(ctx context.Context, movieID uuid.UUID) (bool, error)
}

type reviewService struct {
	store repository.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewReviewService(store repository.Store, log *zap.Logger, now func() time.Time) ReviewService {
	return &reviewService{
		store: store,
		log:   log.With(zap.String("service", "review")),
		now:   now,
	}
}

// reviewLimit is the cap for a movie released in year, as of now.
func reviewLimit(year int, now time.Time) int {
	if now.Year()-year < RecentMovieMaxAge {
		return MaxReviewsRecentMovie
	}
	return MaxReviewsOlderMovie
}

func (s *reviewService) maxReviewsReached(ctx context.Context, uow repository.UnitOfWork, movie *entity.Movie) (bool, error) {
	count, err := uow.Reviews().CountByMovie(ctx, movie.ID)
	if err != nil {
		return false, err
	}
	return count >= reviewLimit(movie.Year, s.now()), nil
}

func invalidMovieError() error {
	return ValidationError("invalid movie reference", map[string]string{"movieId": "Movie does not exist"})
}

func (s *reviewService) Any(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) (err error) {
		exists, err = uow.Reviews().Any(ctx, id)
		return err
	})
	return exists, err
}

func (s *reviewService) GetAll(ctx context.Context, params request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	var resp *response.PaginatedResponse[response.ReviewResponse]
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		reviews, meta, err := uow.Reviews().FindAll(ctx, false, params)
		if err != nil {
			return err
		}
		resp = response.NewPaginatedResponse(response.ReviewsToResponse(reviews), meta)
		return nil
	})
	if err != nil {
		s.log.Error("Failed to get reviews", zap.Error(err))
		return nil, fmt.Errorf("get reviews: %w", err)
	}
	return resp, nil
}

func (s *reviewService) Get(ctx context.Context, id uuid.UUID) (*response.ReviewResponse, error) {
	var review *entity.Review
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) (err error) {
		review, err = uow.Reviews().FindByID(ctx, id, false)
		return err
	})
	if err != nil {
		s.log.Error("Failed to get review", zap.Error(err), zap.String("review_id", id.String()))
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review == nil {
		return nil, NotFoundError("review not found")
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetByMovie(ctx context.Context, movieID uuid.UUID, params request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	var resp *response.PaginatedResponse[response.ReviewResponse]
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		exists, err := uow.Movies().Any(ctx, movieID)
		if err != nil {
			return err
		}
		if !exists {
			return NotFoundError("movie not found")
		}

		reviews, meta, err := uow.Reviews().FindByMovieID(ctx, movieID, params)
		if err != nil {
			return err
		}
		resp = response.NewPaginatedResponse(response.ReviewsToResponse(reviews), meta)
		return nil
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return nil, err
		}
		s.log.Error("Failed to get movie reviews", zap.Error(err), zap.String("movie_id", movieID.String()))
		return nil, fmt.Errorf("get movie reviews: %w", err)
	}
	return resp, nil
}

func (s *reviewService) Create(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	movieID, err := parseID(req.MovieID, "movieId")
	if err != nil {
		return nil, err
	}

	review := &entity.Review{
		Base:         entity.NewBase(s.now()),
		MovieID:      movieID,
		ReviewerName: req.ReviewerName,
		Comment:      req.Comment,
		Rating:       req.Rating,
	}

	err = inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		// The movie row lock makes count-then-insert atomic against other reviewers.
		movie, err := uow.Movies().FindByID(ctx, movieID, true)
		if err != nil {
			return err
		}
		if movie == nil {
			return invalidMovieError()
		}

		reached, err := s.maxReviewsReached(ctx, uow, movie)
		if err != nil {
			return err
		}
		if reached {
			return ValidationError(
				fmt.Sprintf("review limit reached: movie allows at most %d reviews", reviewLimit(movie.Year, s.now())),
				nil,
			)
		}
		return uow.Reviews().Create(ctx, review)
	})
	if err != nil {
		return nil, s.translate(ctx, review.ID, "create", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("movie_id", movieID.String()),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, id uuid.UUID, req *request.UpdateReviewRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		review, err := uow.Reviews().FindByID(ctx, id, true)
		if err != nil {
			return err
		}
		if review == nil {
			return NotFoundError("review not found")
		}

		if req.Version != nil {
			review.Version = *req.Version
		}
		review.ReviewerName = req.ReviewerName
		review.Comment = req.Comment
		review.Rating = req.Rating
		review.UpdatedAt = s.now()
		return uow.Reviews().Update(ctx, review)
	})
	if err != nil {
		return s.translate(ctx, id, "update", err)
	}

	s.log.Info("Review updated", zap.String("review_id", id.String()))
	return nil
}

func (s *reviewService) Delete(ctx context.Context, id uuid.UUID) error {
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		review, err := uow.Reviews().FindByID(ctx, id, true)
		if err != nil {
			return err
		}
		if review == nil {
			return NotFoundError("review not found")
		}
		return uow.Reviews().Delete(ctx, id)
	})
	if err != nil {
		return s.translate(ctx, id, "delete", err)
	}

	s.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

func (s *reviewService) IsMaxReviews(ctx context.Context, movieID uuid.UUID) (bool, error) {
	var reached bool
	err := inUnitOfWork(ctx, s.store, func(uow repository.UnitOfWork) error {
		movie, err := uow.Movies().FindByID(ctx, movieID, false)
		if err != nil {
			return err
		}
		if movie == nil {
			return NotFoundError("movie not found")
		}
		reached, err = s.maxReviewsReached(ctx, uow, movie)
		return err
	})
	return reached, err
}

func (s *reviewService) translate(ctx context.Context, id uuid.UUID, op string, err error) error {
	var svcErr *Error
	switch {
	case errors.As(err, &svcErr):
		return err
	case errors.Is(err, repository.ErrForeignKey):
		return invalidMovieError()
	case errors.Is(err, repository.ErrEditConflict):
		return resolveEditConflict(ctx, s.store, err, "review", func(ctx context.Context, uow repository.UnitOfWork) (bool, error) {
			return uow.Reviews().Any(ctx, id)
		})
	}

	s.log.Error("Failed to "+op+" review", zap.Error(err), zap.String("review_id", id.String()))
	return fmt.Errorf("%s review: %w", op, err)
}
