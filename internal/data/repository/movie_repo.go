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

const movieColumns = "id, title, year, duration_in_minutes, genre_id, version, created_at, updated_at"

type MovieRepository interface {
	Any(ctx context.Context, id uuid.UUID) (bool, error)
	FindAll(ctx context.Context, trackChanges bool, params request.PaginatedRequest, includes ...Include[entity.Movie]) ([]*entity.Movie, utils.PaginationMetadata, error)
	FindByID(ctx context.Context, id uuid.UUID, trackChanges bool, includes ...Include[entity.Movie]) (*entity.Movie, error)
	FindByGenreID(ctx context.Context, genreID uuid.UUID, trackChanges bool) ([]*entity.Movie, error)

	// Create inserts the movie and its details row.
	Create(ctx context.Context, movie *entity.Movie) error
	// Update replaces the movie's mutable fields and details if movie.Version still matches.
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error

	// IsOfGenre compares genre names trimmed and case-insensitively.
	IsOfGenre(ctx context.Context, movieID uuid.UUID, genreName string) (bool, error)
}

type movieRepository struct {
	table[entity.Movie]
}

func NewMovieRepository(db database.DBTX, log *zap.Logger) MovieRepository {
	return &movieRepository{
		table: table[entity.Movie]{
			db:      db,
			log:     log.With(zap.String("repository", "movie")),
			name:    "movies",
			columns: movieColumns,
			orderBy: "title, id",
			scan:    scanMovie,
		},
	}
}

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Year,
		&movie.DurationInMinutes,
		&movie.GenreID,
		&movie.Version,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Any(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, id)
}

func (r *movieRepository) FindAll(ctx context.Context, trackChanges bool, params request.PaginatedRequest, includes ...Include[entity.Movie]) ([]*entity.Movie, utils.PaginationMetadata, error) {
	return r.findPage(ctx, trackChanges, params, "", nil, includes...)
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID, trackChanges bool, includes ...Include[entity.Movie]) (*entity.Movie, error) {
	return r.findByID(ctx, id, trackChanges, includes...)
}

func (r *movieRepository) FindByGenreID(ctx context.Context, genreID uuid.UUID, trackChanges bool) ([]*entity.Movie, error) {
	return r.findWhere(ctx, trackChanges, "genre_id = $1", []any{genreID})
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, year, duration_in_minutes, genre_id,
		                    version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Year,
		movie.DurationInMinutes,
		movie.GenreID,
		movie.Version,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		return r.fail("Failed to create movie", err, zap.String("title", movie.Title))
	}

	return r.saveDetails(ctx, movie)
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, year = $2, duration_in_minutes = $3, genre_id = $4,
		    updated_at = $5, version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	err := r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Year,
		movie.DurationInMinutes,
		movie.GenreID,
		movie.UpdatedAt,
		movie.ID,
		movie.Version,
	).Scan(&movie.Version)
	if err == pgx.ErrNoRows {
		err = ErrEditConflict
	}
	if err != nil {
		return r.fail("Failed to update movie", err, zap.String("movie_id", movie.ID.String()))
	}

	return r.saveDetails(ctx, movie)
}

func (r *movieRepository) saveDetails(ctx context.Context, movie *entity.Movie) error {
	if movie.Details == nil {
		return nil
	}
	movie.Details.MovieID = movie.ID

	query := `
		INSERT INTO movie_details (movie_id, synopsis, language, budget)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (movie_id) DO UPDATE
		SET synopsis = EXCLUDED.synopsis, language = EXCLUDED.language, budget = EXCLUDED.budget
	`

	_, err := r.db.Exec(ctx, query,
		movie.Details.MovieID,
		movie.Details.Synopsis,
		movie.Details.Language,
		movie.Details.Budget,
	)
	if err != nil {
		return r.fail("Failed to save movie details", err, zap.String("movie_id", movie.ID.String()))
	}
	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, id)
}

func (r *movieRepository) IsOfGenre(ctx context.Context, movieID uuid.UUID, genreName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM movies m
			INNER JOIN genres g ON g.id = m.genre_id
			WHERE m.id = $1 AND LOWER(TRIM(g.name)) = LOWER($2)
		)
	`

	var ok bool
	if err := r.db.QueryRow(ctx, query, movieID, strings.TrimSpace(genreName)).Scan(&ok); err != nil {
		return false, r.fail("Failed to check movie genre", err, zap.String("movie_id", movieID.String()))
	}
	return ok, nil
}

func movieIndex(movies []*entity.Movie) ([]uuid.UUID, map[uuid.UUID]*entity.Movie) {
	ids := make([]uuid.UUID, 0, len(movies))
	byID := make(map[uuid.UUID]*entity.Movie, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
		byID[m.ID] = m
	}
	return ids, byID
}

// MovieWithGenre attaches each movie's genre.
func MovieWithGenre(ctx context.Context, db database.DBTX, movies []*entity.Movie) error {
	ids := make([]uuid.UUID, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.GenreID)
	}

	rows, err := db.Query(ctx, `SELECT id, name, version, created_at, updated_at FROM genres WHERE id = ANY($1::uuid[])`, idStrings(ids))
	if err != nil {
		return err
	}
	genres, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Genre, error) {
		return scanGenre(row)
	})
	if err != nil {
		return err
	}

	byID := make(map[uuid.UUID]*entity.Genre, len(genres))
	for _, g := range genres {
		byID[g.ID] = g
	}
	for _, m := range movies {
		m.Genre = byID[m.GenreID]
	}
	return nil
}

// MovieWithDetails attaches the 1:1 details row.
func MovieWithDetails(ctx context.Context, db database.DBTX, movies []*entity.Movie) error {
	ids, byID := movieIndex(movies)

	rows, err := db.Query(ctx, `SELECT movie_id, synopsis, language, budget FROM movie_details WHERE movie_id = ANY($1::uuid[])`, idStrings(ids))
	if err != nil {
		return err
	}
	details, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.MovieDetails, error) {
		var d entity.MovieDetails
		if err := row.Scan(&d.MovieID, &d.Synopsis, &d.Language, &d.Budget); err != nil {
			return nil, err
		}
		return &d, nil
	})
	if err != nil {
		return err
	}

	for _, d := range details {
		if m, ok := byID[d.MovieID]; ok {
			m.Details = d
		}
	}
	return nil
}

// MovieWithCast attaches the cast, each actor carrying its own filmography.
func MovieWithCast(ctx context.Context, db database.DBTX, movies []*entity.Movie) error {
	ids, byID := movieIndex(movies)
	for _, m := range movies {
		m.Cast = []*entity.MovieActor{}
	}

	query := `
		SELECT ma.movie_id, ma.role, ` + prefixed("a", actorColumns) + `
		FROM movie_actors ma
		INNER JOIN actors a ON a.id = ma.actor_id
		WHERE ma.movie_id = ANY($1::uuid[])
		ORDER BY a.last_name, a.first_name, a.id
	`
	rows, err := db.Query(ctx, query, idStrings(ids))
	if err != nil {
		return err
	}
	cast, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.MovieActor, error) {
		var ma entity.MovieActor
		var a entity.Actor
		err := row.Scan(&ma.MovieID, &ma.Role,
			&a.ID, &a.FirstName, &a.LastName, &a.BirthYear, &a.Version, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, err
		}
		ma.ActorID = a.ID
		ma.Actor = &a
		return &ma, nil
	})
	if err != nil {
		return err
	}

	actors := make([]*entity.Actor, 0, len(cast))
	for _, ma := range cast {
		if m, ok := byID[ma.MovieID]; ok {
			m.Cast = append(m.Cast, ma)
		}
		actors = append(actors, ma.Actor)
	}
	if len(actors) == 0 {
		return nil
	}
	return ActorWithMovies(ctx, db, actors)
}

// MovieWithReviews attaches reviews, oldest first.
func MovieWithReviews(ctx context.Context, db database.DBTX, movies []*entity.Movie) error {
	ids, byID := movieIndex(movies)
	for _, m := range movies {
		m.Reviews = []*entity.Review{}
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE movie_id = ANY($1::uuid[]) ORDER BY created_at, id`
	rows, err := db.Query(ctx, query, idStrings(ids))
	if err != nil {
		return err
	}
	reviews, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Review, error) {
		return scanReview(row)
	})
	if err != nil {
		return err
	}

	for _, rv := range reviews {
		if m, ok := byID[rv.MovieID]; ok {
			m.Reviews = append(m.Reviews, rv)
		}
	}
	return nil
}

// prefixed qualifies a comma separated column list with a table alias.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
