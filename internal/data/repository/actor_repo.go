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

const actorColumns = "id, first_name, last_name, birth_year, version, created_at, updated_at"

type ActorRepository interface {
	Any(ctx context.Context, id uuid.UUID) (bool, error)
	FindAll(ctx context.Context, trackChanges bool, params request.PaginatedRequest, includes ...Include[entity.Actor]) ([]*entity.Actor, utils.PaginationMetadata, error)
	FindByID(ctx context.Context, id uuid.UUID, trackChanges bool, includes ...Include[entity.Actor]) (*entity.Actor, error)
	Create(ctx context.Context, actor *entity.Actor) error
	Update(ctx context.Context, actor *entity.Actor) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Casting
	IsActorInMovie(ctx context.Context, movieID, actorID uuid.UUID) (bool, error)
	AddActorToMovie(ctx context.Context, cast *entity.MovieActor) error
	RemoveActorFromMovie(ctx context.Context, movieID, actorID uuid.UUID) (bool, error)
	CountByMovie(ctx context.Context, movieID uuid.UUID) (int, error)
}

type actorRepository struct {
	table[entity.Actor]
}

func NewActorRepository(db database.DBTX, log *zap.Logger) ActorRepository {
	return &actorRepository{
		table: table[entity.Actor]{
			db:      db,
			log:     log.With(zap.String("repository", "actor")),
			name:    "actors",
			columns: actorColumns,
			orderBy: "last_name, first_name, id",
			scan:    scanActor,
		},
	}
}

func scanActor(row pgx.Row) (*entity.Actor, error) {
	var actor entity.Actor
	err := row.Scan(
		&actor.ID,
		&actor.FirstName,
		&actor.LastName,
		&actor.BirthYear,
		&actor.Version,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

func (r *actorRepository) Any(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, id)
}

func (r *actorRepository) FindAll(ctx context.Context, trackChanges bool, params request.PaginatedRequest, includes ...Include[entity.Actor]) ([]*entity.Actor, utils.PaginationMetadata, error) {
	return r.findPage(ctx, trackChanges, params, "", nil, includes...)
}

func (r *actorRepository) FindByID(ctx context.Context, id uuid.UUID, trackChanges bool, includes ...Include[entity.Actor]) (*entity.Actor, error) {
	return r.findByID(ctx, id, trackChanges, includes...)
}

func (r *actorRepository) Create(ctx context.Context, actor *entity.Actor) error {
	query := `
		INSERT INTO actors (id, first_name, last_name, birth_year, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		actor.ID,
		actor.FirstName,
		actor.LastName,
		actor.BirthYear,
		actor.Version,
		actor.CreatedAt,
		actor.UpdatedAt,
	)
	if err != nil {
		return r.fail("Failed to create actor", err, zap.String("name", actor.FullName()))
	}
	return nil
}

func (r *actorRepository) Update(ctx context.Context, actor *entity.Actor) error {
	query := `
		UPDATE actors
		SET first_name = $1, last_name = $2, birth_year = $3, updated_at = $4, version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	err := r.db.QueryRow(ctx, query,
		actor.FirstName,
		actor.LastName,
		actor.BirthYear,
		actor.UpdatedAt,
		actor.ID,
		actor.Version,
	).Scan(&actor.Version)
	if err == pgx.ErrNoRows {
		err = ErrEditConflict
	}
	if err != nil {
		return r.fail("Failed to update actor", err, zap.String("actor_id", actor.ID.String()))
	}
	return nil
}

func (r *actorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, id)
}

func (r *actorRepository) IsActorInMovie(ctx context.Context, movieID, actorID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM movie_actors WHERE movie_id = $1 AND actor_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, movieID, actorID).Scan(&exists); err != nil {
		return false, r.fail("Failed to check cast", err,
			zap.String("movie_id", movieID.String()),
			zap.String("actor_id", actorID.String()),
		)
	}
	return exists, nil
}

// AddActorToMovie inserts the pair. A duplicate pair surfaces as ErrDuplicate.
func (r *actorRepository) AddActorToMovie(ctx context.Context, cast *entity.MovieActor) error {
	query := `INSERT INTO movie_actors (movie_id, actor_id, role) VALUES ($1, $2, $3)`

	if _, err := r.db.Exec(ctx, query, cast.MovieID, cast.ActorID, cast.Role); err != nil {
		return r.fail("Failed to add actor to movie", err,
			zap.String("movie_id", cast.MovieID.String()),
			zap.String("actor_id", cast.ActorID.String()),
		)
	}
	return nil
}

// RemoveActorFromMovie reports whether a row was deleted.
func (r *actorRepository) RemoveActorFromMovie(ctx context.Context, movieID, actorID uuid.UUID) (bool, error) {
	query := `DELETE FROM movie_actors WHERE movie_id = $1 AND actor_id = $2`

	tag, err := r.db.Exec(ctx, query, movieID, actorID)
	if err != nil {
		return false, r.fail("Failed to remove actor from movie", err,
			zap.String("movie_id", movieID.String()),
			zap.String("actor_id", actorID.String()),
		)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *actorRepository) CountByMovie(ctx context.Context, movieID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM movie_actors WHERE movie_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, movieID).Scan(&count); err != nil {
		return 0, r.fail("Failed to count cast", err, zap.String("movie_id", movieID.String()))
	}
	return count, nil
}

// ActorWithMovies attaches each actor's filmography as Roles, ordered by title.
func ActorWithMovies(ctx context.Context, db database.DBTX, actors []*entity.Actor) error {
	ids := make([]uuid.UUID, 0, len(actors))
	byID := make(map[uuid.UUID][]*entity.Actor, len(actors))
	for _, a := range actors {
		ids = append(ids, a.ID)
		byID[a.ID] = append(byID[a.ID], a)
		a.Roles = []*entity.MovieActor{}
	}

	query := `
		SELECT ma.actor_id, ma.role, ` + prefixed("m", movieColumns) + `
		FROM movie_actors ma
		INNER JOIN movies m ON m.id = ma.movie_id
		WHERE ma.actor_id = ANY($1::uuid[])
		ORDER BY m.title, m.id
	`
	rows, err := db.Query(ctx, query, idStrings(ids))
	if err != nil {
		return err
	}
	roles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.MovieActor, error) {
		var ma entity.MovieActor
		var m entity.Movie
		err := row.Scan(&ma.ActorID, &ma.Role,
			&m.ID, &m.Title, &m.Year, &m.DurationInMinutes, &m.GenreID, &m.Version, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, err
		}
		ma.MovieID = m.ID
		ma.Movie = &m
		return &ma, nil
	})
	if err != nil {
		return err
	}

	for _, role := range roles {
		for _, a := range byID[role.ActorID] {
			a.Roles = append(a.Roles, role)
		}
	}
	return nil
}
