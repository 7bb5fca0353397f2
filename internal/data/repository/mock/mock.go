// Package mock is an in-memory repository.Store for service and handler tests.
//
// Writes apply to shared state immediately and are undone on Rollback, so a unit of work
// sees its own changes and other units see them too (read uncommitted). Row locks taken by
// finders with trackChanges=true are held until Complete or Rollback. Includes are ignored:
// every finder returns entities with all relations populated.
package mock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"movies-api/internal/data/entity"
	"movies-api/internal/data/repository"
	"movies-api/internal/dto/request"
	"movies-api/pkg/utils"

	"github.com/google/uuid"
)

// Table names passed to BeforeWrite and the test helpers.
const (
	TableGenres      = "genres"
	TableMovies      = "movies"
	TableActors      = "actors"
	TableReviews     = "reviews"
	TableMovieActors = "movie_actors"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

type castKey struct {
	movieID uuid.UUID
	actorID uuid.UUID
}

// Store is a mock implementation of repository.Store.
type Store struct {
	mu sync.Mutex

	genres  map[uuid.UUID]entity.Genre
	movies  map[uuid.UUID]entity.Movie
	details map[uuid.UUID]entity.MovieDetails
	actors  map[uuid.UUID]entity.Actor
	cast    map[castKey]string
	reviews map[uuid.UUID]entity.Review

	rowLocks map[uuid.UUID]*sync.Mutex

	// BeforeWrite, when set, runs before every write outside the store lock. For cast writes
	// id is the movie id. Tests use it to interleave a concurrent change.
	BeforeWrite func(table string, op Op, id uuid.UUID)

	// Error simulation
	BeginError    error
	CompleteError error
	PingError     error
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		genres:   make(map[uuid.UUID]entity.Genre),
		movies:   make(map[uuid.UUID]entity.Movie),
		details:  make(map[uuid.UUID]entity.MovieDetails),
		actors:   make(map[uuid.UUID]entity.Actor),
		cast:     make(map[castKey]string),
		reviews:  make(map[uuid.UUID]entity.Review),
		rowLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *Store) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	if s.BeginError != nil {
		return nil, s.BeginError
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &unitOfWork{s: s, locks: make(map[uuid.UUID]*sync.Mutex)}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.PingError
}

// Test helpers. They bypass units of work and hooks.

func (s *Store) PutGenre(g *entity.Genre) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *g
	v.Movies = nil
	s.genres[g.ID] = v
}

// PutMovie stores the movie and, when set, its details.
func (s *Store) PutMovie(m *entity.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *m
	if m.Details != nil {
		d := *m.Details
		d.MovieID = m.ID
		s.details[m.ID] = d
	}
	v.Genre, v.Details, v.Cast, v.Reviews = nil, nil, nil, nil
	s.movies[m.ID] = v
}

func (s *Store) PutActor(a *entity.Actor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *a
	v.Roles = nil
	s.actors[a.ID] = v
}

func (s *Store) PutReview(r *entity.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[r.ID] = *r
}

func (s *Store) PutCast(movieID, actorID uuid.UUID, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cast[castKey{movieID, actorID}] = role
}

// DeleteRow removes a row with the same cascades as the schema.
func (s *Store) DeleteRow(table string, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(table, id)
}

// BumpVersion simulates a concurrent update of the row.
func (s *Store) BumpVersion(table string, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch table {
	case TableGenres:
		if v, ok := s.genres[id]; ok {
			v.Version++
			s.genres[id] = v
		}
	case TableMovies:
		if v, ok := s.movies[id]; ok {
			v.Version++
			s.movies[id] = v
		}
	case TableActors:
		if v, ok := s.actors[id]; ok {
			v.Version++
			s.actors[id] = v
		}
	case TableReviews:
		if v, ok := s.reviews[id]; ok {
			v.Version++
			s.reviews[id] = v
		}
	}
}

// CountReviews returns the stored review count for a movie.
func (s *Store) CountReviews(movieID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countReviewsLocked(movieID)
}

// CountCast returns the stored cast size for a movie.
func (s *Store) CountCast(movieID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countCastLocked(movieID)
}

func (s *Store) countReviewsLocked(movieID uuid.UUID) int {
	n := 0
	for _, r := range s.reviews {
		if r.MovieID == movieID {
			n++
		}
	}
	return n
}

func (s *Store) countCastLocked(movieID uuid.UUID) int {
	n := 0
	for k := range s.cast {
		if k.movieID == movieID {
			n++
		}
	}
	return n
}

func (s *Store) rowLock(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.rowLocks[id]
	if !ok {
		m = &sync.Mutex{}
		s.rowLocks[id] = m
	}
	return m
}

// removeLocked deletes a row and everything that cascades from it, returning the undo.
func (s *Store) removeLocked(table string, id uuid.UUID) func() {
	switch table {
	case TableGenres:
		g, ok := s.genres[id]
		if !ok {
			return func() {}
		}
		var undo []func()
		for mid, m := range s.movies {
			if m.GenreID == id {
				undo = append(undo, s.removeLocked(TableMovies, mid))
			}
		}
		delete(s.genres, id)
		return func() {
			s.genres[id] = g
			for _, u := range undo {
				u()
			}
		}

	case TableMovies:
		m, ok := s.movies[id]
		if !ok {
			return func() {}
		}
		d, hasDetails := s.details[id]
		var reviews []entity.Review
		for rid, r := range s.reviews {
			if r.MovieID == id {
				reviews = append(reviews, r)
				delete(s.reviews, rid)
			}
		}
		cast := make(map[castKey]string)
		for k, role := range s.cast {
			if k.movieID == id {
				cast[k] = role
				delete(s.cast, k)
			}
		}
		delete(s.movies, id)
		delete(s.details, id)
		return func() {
			s.movies[id] = m
			if hasDetails {
				s.details[id] = d
			}
			for _, r := range reviews {
				s.reviews[r.ID] = r
			}
			for k, role := range cast {
				s.cast[k] = role
			}
		}

	case TableActors:
		a, ok := s.actors[id]
		if !ok {
			return func() {}
		}
		cast := make(map[castKey]string)
		for k, role := range s.cast {
			if k.actorID == id {
				cast[k] = role
				delete(s.cast, k)
			}
		}
		delete(s.actors, id)
		return func() {
			s.actors[id] = a
			for k, role := range cast {
				s.cast[k] = role
			}
		}

	case TableReviews:
		r, ok := s.reviews[id]
		if !ok {
			return func() {}
		}
		delete(s.reviews, id)
		return func() { s.reviews[id] = r }
	}
	return func() {}
}

// Read model builders. Callers hold s.mu.

func (s *Store) genreLocked(g entity.Genre, withMovies bool) *entity.Genre {
	out := g
	if withMovies {
		out.Movies = []*entity.Movie{}
		for _, m := range s.movies {
			if m.GenreID == g.ID {
				mm := m
				out.Movies = append(out.Movies, &mm)
			}
		}
		sort.Slice(out.Movies, func(i, j int) bool { return movieLess(out.Movies[i], out.Movies[j]) })
	}
	return &out
}

func (s *Store) movieLocked(m entity.Movie) *entity.Movie {
	out := m
	if g, ok := s.genres[m.GenreID]; ok {
		out.Genre = &g
	}
	if d, ok := s.details[m.ID]; ok {
		if d.Budget != nil {
			budget := *d.Budget
			d.Budget = &budget
		}
		out.Details = &d
	}

	out.Cast = []*entity.MovieActor{}
	for k, role := range s.cast {
		if k.movieID != m.ID {
			continue
		}
		a, ok := s.actors[k.actorID]
		if !ok {
			continue
		}
		out.Cast = append(out.Cast, &entity.MovieActor{
			MovieID: k.movieID,
			ActorID: k.actorID,
			Role:    role,
			Actor:   s.actorLocked(a),
		})
	}
	sort.Slice(out.Cast, func(i, j int) bool { return actorLess(out.Cast[i].Actor, out.Cast[j].Actor) })

	out.Reviews = []*entity.Review{}
	for _, r := range s.reviews {
		if r.MovieID == m.ID {
			rr := r
			out.Reviews = append(out.Reviews, &rr)
		}
	}
	sort.Slice(out.Reviews, func(i, j int) bool { return reviewLess(out.Reviews[i], out.Reviews[j]) })
	return &out
}

func (s *Store) actorLocked(a entity.Actor) *entity.Actor {
	out := a
	out.Roles = []*entity.MovieActor{}
	for k, role := range s.cast {
		if k.actorID != a.ID {
			continue
		}
		m, ok := s.movies[k.movieID]
		if !ok {
			continue
		}
		out.Roles = append(out.Roles, &entity.MovieActor{
			MovieID: k.movieID,
			ActorID: k.actorID,
			Role:    role,
			Movie:   &m,
		})
	}
	sort.Slice(out.Roles, func(i, j int) bool { return movieLess(out.Roles[i].Movie, out.Roles[j].Movie) })
	return &out
}

func movieLess(a, b *entity.Movie) bool {
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.ID.String() < b.ID.String()
}

func actorLess(a, b *entity.Actor) bool {
	if a.LastName != b.LastName {
		return a.LastName < b.LastName
	}
	if a.FirstName != b.FirstName {
		return a.FirstName < b.FirstName
	}
	return a.ID.String() < b.ID.String()
}

func reviewLess(a, b *entity.Review) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

func genreLess(a, b *entity.Genre) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID.String() < b.ID.String()
}

func paginate[T any](items []*T, params request.PaginatedRequest) ([]*T, utils.PaginationMetadata) {
	params = params.Normalize()
	total := len(items)
	start := min(params.Offset(), total)
	end := min(start+params.Limit(), total)
	return items[start:end], utils.NewPaginationMetadata(int64(total), params.PageSize, params.Page)
}

func sameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
