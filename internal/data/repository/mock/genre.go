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

type genreRepo struct {
	u *unitOfWork
}

func (r *genreRepo) Any(ctx context.Context, id uuid.UUID) (bool, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	_, ok := r.u.s.genres[id]
	return ok, nil
}

func (r *genreRepo) FindAll(ctx context.Context, trackChanges bool, params request.PaginatedRequest) ([]*entity.Genre, utils.PaginationMetadata, error) {
	s := r.u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*entity.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		items = append(items, s.genreLocked(g, false))
	}
	sort.Slice(items, func(i, j int) bool { return genreLess(items[i], items[j]) })

	page, meta := paginate(items, params)
	return page, meta, nil
}

func (r *genreRepo) FindByID(ctx context.Context, id uuid.UUID, trackChanges, includeMovies bool) (*entity.Genre, error) {
	if trackChanges {
		r.u.lock(id)
	}
	s := r.u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.genres[id]
	if !ok {
		return nil, nil
	}
	return s.genreLocked(g, includeMovies), nil
}

func (r *genreRepo) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	s := r.u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	for id, g := range s.genres {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if sameName(g.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *genreRepo) Create(ctx context.Context, genre *entity.Genre) error {
	return r.u.write(ctx, TableGenres, OpCreate, genre.ID, func() (func(), error) {
		s := r.u.s
		if _, ok := s.genres[genre.ID]; ok {
			return nil, wrap("create genre", repository.ErrDuplicate)
		}
		for _, g := range s.genres {
			if sameName(g.Name, genre.Name) {
				return nil, wrap("create genre", repository.ErrDuplicate)
			}
		}
		v := *genre
		v.Movies = nil
		s.genres[genre.ID] = v
		return func() { delete(s.genres, genre.ID) }, nil
	})
}

func (r *genreRepo) Update(ctx context.Context, genre *entity.Genre) error {
	return r.u.write(ctx, TableGenres, OpUpdate, genre.ID, func() (func(), error) {
		s := r.u.s
		old, ok := s.genres[genre.ID]
		if !ok || old.Version != genre.Version {
			return nil, wrap("update genre", repository.ErrEditConflict)
		}
		for id, g := range s.genres {
			if id != genre.ID && sameName(g.Name, genre.Name) {
				return nil, wrap("update genre", repository.ErrDuplicate)
			}
		}
		genre.Version++
		v := *genre
		v.Movies = nil
		s.genres[genre.ID] = v
		return func() { s.genres[genre.ID] = old }, nil
	})
}

func (r *genreRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.u.write(ctx, TableGenres, OpDelete, id, func() (func(), error) {
		s := r.u.s
		if _, ok := s.genres[id]; !ok {
			return nil, wrap("delete genre", repository.ErrEditConflict)
		}
		return s.removeLocked(TableGenres, id), nil
	})
}
