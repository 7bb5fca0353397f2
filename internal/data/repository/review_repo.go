package repository

import (
	"context"

	"movies-api/internal/data/entity"
	"movies-api/internal/dto/request"
	"movies-api/pkg/database"
	"movies-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const reviewColumns = "id, movie_id, reviewer_name, comment, rating, version, created_at, updated_at"

type ReviewRepository interface {
	Any(ctx context.Context, id uuid.UUID) (bool, error)
	FindAll(ctx context.Context, trackChanges bool, params request.PaginatedRequest) ([]*entity.Review, utils.PaginationMetadata, error)
	FindByID(ctx context.Context, id uuid.UUID, trackChanges bool) (*entity.Review, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID, params request.PaginatedRequest) ([]*entity.Review, utils.PaginationMetadata, error)
	CountByMovie(ctx context.Context, movieID uuid.UUID) (int, error)
	Create(ctx context.Context, review *entity.Review) error
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	table[entity.Review]
}

func NewReviewRepository(db database.DBTX, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		table: table[entity.Review]{
			db:      db,
			log:     log.With(zap.String("repository", "review")),
			name:    "reviews",
			columns: reviewColumns,
			orderBy: "created_at, id",
			scan:    scanReview,
		},
	}
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.MovieID,
		&review.ReviewerName,
		&review.Comment,
		&review.Rating,
		&review.Version,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Any(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, id)
}

func (r *reviewRepository) FindAll(ctx context.Context, trackChanges bool, params request.PaginatedRequest) ([]*entity.Review, utils.PaginationMetadata, error) {
	return r.findPage(ctx, trackChanges, params, "", nil)
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID, trackChanges bool) (*entity.Review, error) {
	return r.findByID(ctx, id, trackChanges)
}

func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID, params request.PaginatedRequest) ([]*entity.Review, utils.PaginationMetadata, error) {
	return r.findPage(ctx, false, params, "movie_id = $1", []any{movieID})
}

func (r *reviewRepository) CountByMovie(ctx context.Context, movieID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE movie_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, movieID).Scan(&count); err != nil {
		return 0, r.fail("Failed to count reviews", err, zap.String("movie_id", movieID.String()))
	}
	return count, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, movie_id, reviewer_name, comment, rating, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.MovieID,
		review.ReviewerName,
		review.Comment,
		review.Rating,
		review.Version,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return r.fail("Failed to create review", err, zap.String("movie_id", review.MovieID.String()))
	}
	return nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET reviewer_name = $1, comment = $2, rating = $3, updated_at = $4, version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	err := r.db.QueryRow(ctx, query,
		review.ReviewerName,
		review.Comment,
		review.Rating,
		review.UpdatedAt,
		review.ID,
		review.Version,
	).Scan(&review.Version)
	if err == pgx.ErrNoRows {
		err = ErrEditConflict
	}
	if err != nil {
		return r.fail("Failed to update review", err, zap.String("review_id", review.ID.String()))
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, id)
}
