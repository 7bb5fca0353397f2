package mock

import (
	"context"
	"sort"
	"strings"

	"movies-api/internal/data/entity"
	"movies-api/internal/data/repository"
	"movies-api/internal/dto/request"
	"movies-api/pkg/utils"

	"github.com/google/uuid"
)

type movieRepo struct {
	u *unitOfWork
}

func (r *movieRepo) Any(ctx context.Context, id uuid.UUID) (bool, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	_, ok := r.u.s.movies[id]
	return ok, nil
}

func (r *movieRepo) FindAll(ctx context.Context, trackChanges bool, params request.PaginatedRequest, _ ...repository.Include[entity.Movie]) ([]*entity.Movie, utils.PaginationMetadata, error) {
	s := r.u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*entity.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		items = append(items, s.movieLocked(m))
	}
	sort.Slice(items, func(i, j int) bool { return movieLess(items[i], items[j]) })

	page, meta := paginate(items, params)
	return page, meta, nil
}

func (r *movieRepo) FindByID(ctx context.Context, id uuid.UUID, trackChanges bool, _ ...repository.Include[entity.Movie]) (*entity.Movie, error) {
	if trackChanges {
		r.u.lock(id)
	}
	s := r.u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movies[id]
	if !ok {
		return nil, nil
	}
	return s.movieLocked(m), nil
}

func (r *movieRepo) FindByGenreID(ctx context.Context, genreID uuid.UUID, trackChanges bool) ([]*entity.Movie, error) {
	find := func() []*entity.Movie {
		s := r.u.s
		s.mu.Lock()
		defer s.mu.Unlock()

		items := []*entity.Movie{}
		for _, m := range s.movies {
			if m.GenreID == genreID {
				items = append(items, s.movieLocked(m))
			}
		}
		sort.Slice(items, func(i, j int) bool { return movieLess(items[i], items[j]) })
		return items
	}

	items := find()
	if !trackChanges {
		return items, nil
	}
	for _, m := range items {
		r.u.lock(m.ID)
	}
	// Re-read under the locks, dropping rows deleted while waiting.
	return find(), nil
}

func (r *movieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	return r.u.write(ctx, TableMovies, OpCreate, movie.ID, func() (func(), error) {
		s := r.u.s
		if _, ok := s.movies[movie.ID]; ok {
			return nil, wrap("create movie", repository.ErrDuplicate)
		}
		if _, ok := s.genres[movie.GenreID]; !ok {
			return nil, wrap("create movie", repository.ErrForeignKey)
		}
		s.movies[movie.ID] = stripMovie(movie)
		if movie.Details != nil {
			movie.Details.MovieID = movie.ID
			s.details[movie.ID] = *movie.Details
		}
		return func() {
			delete(s.movies, movie.ID)
			delete(s.details, movie.ID)
		}, nil
	})
}

func (r *movieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	return r.u.write(ctx, TableMovies, OpUpdate, movie.ID, func() (func(), error) {
		s := r.u.s
		old, ok := s.movies[movie.ID]
		if !ok || old.Version != movie.Version {
			return nil, wrap("update movie", repository.ErrEditConflict)
		}
		if _, ok := s.genres[movie.GenreID]; !ok {
			return nil, wrap("update movie", repository.ErrForeignKey)
		}
		oldDetails, hadDetails := s.details[movie.ID]

		movie.Version++
		s.movies[movie.ID] = stripMovie(movie)
		if movie.Details != nil {
			movie.Details.MovieID = movie.ID
			s.details[movie.ID] = *movie.Details
		}
		return func() {
			s.movies[movie.ID] = old
			if hadDetails {
				s.details[movie.ID] = oldDetails
			} else {
				delete(s.details, movie.ID)
			}
		}, nil
	})
}

func (r *movieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.u.write(ctx, TableMovies, OpDelete, id, func() (func(), error) {
		s := r.u.s
		if _, ok := s.movies[id]; !ok {
			return nil, wrap("delete movie", repository.ErrEditConflict)
		}
		return s.removeLocked(TableMovies, id), nil
	})
}

func (r *movieRepo) IsOfGenre(ctx context.Context, movieID uuid.UUID, genreName string) (bool, error) {
	s := r.u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movies[movieID]
	if !ok {
		return false, nil
	}
	g, ok := s.genres[m.GenreID]
	if !ok {
		return false, nil
	}
	return strings.EqualFold(strings.TrimSpace(g.Name), strings.TrimSpace(genreName)), nil
}

func stripMovie(m *entity.Movie) entity.Movie {
	v := *m
	v.Genre, v.Details, v.Cast, v.Reviews = nil, nil, nil, nil
	return v
}
