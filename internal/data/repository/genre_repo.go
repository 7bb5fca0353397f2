package repository

import (
	"context"
	"strings"

	"movies-api/internal/data/entity"
	"movies-api/internal/dto/request"
	"movies-api/pkg/database"
	"movies-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GenreRepository interface {
	Any(ctx context.Context, id uuid.UUID) (bool, error)
	FindAll(ctx context.Context, trackChanges bool, params request.PaginatedRequest) ([]*entity.Genre, utils.PaginationMetadata, error)
	FindByID(ctx context.Context, id uuid.UUID, trackChanges, includeMovies bool) (*entity.Genre, error)
	// ExistsByName matches case-insensitively, ignoring excludeID when set.
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, genre *entity.Genre) error
	Update(ctx context.Context, genre *entity.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type genreRepository struct {
	table[entity.Genre]
}

func NewGenreRepository(db database.DBTX, log *zap.Logger) GenreRepository {
	return &genreRepository{
		table: table[entity.Genre]{
			db:      db,
			log:     log.With(zap.String("repository", "genre")),
			name:    "genres",
			columns: "id, name, version, created_at, updated_at",
			orderBy: "name, id",
			scan:    scanGenre,
		},
	}
}

func scanGenre(row pgx.Row) (*entity.Genre, error) {
	var genre entity.Genre
	err := row.Scan(
		&genre.ID,
		&genre.Name,
		&genre.Version,
		&genre.CreatedAt,
		&genre.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) Any(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, id)
}

func (r *genreRepository) FindAll(ctx context.Context, trackChanges bool, params request.PaginatedRequest) ([]*entity.Genre, utils.PaginationMetadata, error) {
	return r.findPage(ctx, trackChanges, params, "", nil)
}

func (r *genreRepository) FindByID(ctx context.Context, id uuid.UUID, trackChanges, includeMovies bool) (*entity.Genre, error) {
	var includes []Include[entity.Genre]
	if includeMovies {
		includes = append(includes, GenreWithMovies)
	}
	return r.findByID(ctx, id, trackChanges, includes...)
}

func (r *genreRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM genres WHERE LOWER(name) = LOWER($1) AND ($2::uuid IS NULL OR id <> $2::uuid))`

	var exclude *string
	if excludeID != nil {
		s := excludeID.String()
		exclude = &s
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, strings.TrimSpace(name), exclude).Scan(&exists); err != nil {
		return false, r.fail("Failed to check genre name", err, zap.String("name", name))
	}
	return exists, nil
}

func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	query := `
		INSERT INTO genres (id, name, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		genre.ID,
		genre.Name,
		genre.Version,
		genre.CreatedAt,
		genre.UpdatedAt,
	)
	if err != nil {
		return r.fail("Failed to create genre", err, zap.String("name", genre.Name))
	}
	return nil
}

// Update renames the genre if its version still matches and advances genre.Version.
func (r *genreRepository) Update(ctx context.Context, genre *entity.Genre) error {
	query := `
		UPDATE genres
		SET name = $1, updated_at = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	err := r.db.QueryRow(ctx, query, genre.Name, genre.UpdatedAt, genre.ID, genre.Version).Scan(&genre.Version)
	if err == pgx.ErrNoRows {
		err = ErrEditConflict
	}
	if err != nil {
		return r.fail("Failed to update genre", err, zap.String("genre_id", genre.ID.String()))
	}
	return nil
}

func (r *genreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, id)
}

// GenreWithMovies attaches each genre's movies, ordered by title.
func GenreWithMovies(ctx context.Context, db database.DBTX, genres []*entity.Genre) error {
	ids := make([]uuid.UUID, 0, len(genres))
	byID := make(map[uuid.UUID]*entity.Genre, len(genres))
	for _, g := range genres {
		ids = append(ids, g.ID)
		byID[g.ID] = g
		g.Movies = []*entity.Movie{}
	}

	query := `SELECT ` + movieColumns + ` FROM movies WHERE genre_id = ANY($1::uuid[]) ORDER BY title, id`
	rows, err := db.Query(ctx, query, idStrings(ids))
	if err != nil {
		return err
	}
	movies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Movie, error) {
		return scanMovie(row)
	})
	if err != nil {
		return err
	}

	for _, m := range movies {
		if g, ok := byID[m.GenreID]; ok {
			g.Movies = append(g.Movies, m)
		}
	}
	return nil
}
