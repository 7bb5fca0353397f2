package mock

import (
	"context"
	"sort"

	"movies-api/internal/data/entity"
	"movies-api/internal/data/repository"
	"movies-api/internal/dto/request"
	"movies-api/pkg/utils"

	"github.com/google/uuid"
)

type reviewRepo struct {
	u *unitOfWork
}

func (r *reviewRepo) Any(ctx context.Context, id uuid.UUID) (bool, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	_, ok := r.u.s.reviews[id]
	return ok, nil
}

func (r *reviewRepo) FindAll(ctx context.Context, trackChanges bool, params request.PaginatedRequest) ([]*entity.Review, utils.PaginationMetadata, error) {
	return r.find(params, func(entity.Review) bool { return true })
}

func (r *reviewRepo) FindByMovieID(ctx context.Context, movieID uuid.UUID, params request.PaginatedRequest) ([]*entity.Review, utils.PaginationMetadata, error) {
	return r.find(params, func(rv entity.Review) bool { return rv.MovieID == movieID })
}

func (r *reviewRepo) find(params request.PaginatedRequest, match func(entity.Review) bool) ([]*entity.Review, utils.PaginationMetadata, error) {
	s := r.u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	items := []*entity.Review{}
	for _, rv := range s.reviews {
		if match(rv) {
			v := rv
			items = append(items, &v)
		}
	}
	sort.Slice(items, func(i, j int) bool { return reviewLess(items[i], items[j]) })

	page, meta := paginate(items, params)
	return page, meta, nil
}

func (r *reviewRepo) FindByID(ctx context.Context, id uuid.UUID, trackChanges bool) (*entity.Review, error) {
	if trackChanges {
		r.u.lock(id)
	}
	s := r.u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rv, ok := s.reviews[id]
	if !ok {
		return nil, nil
	}
	return &rv, nil
}

func (r *reviewRepo) CountByMovie(ctx context.Context, movieID uuid.UUID) (int, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	return r.u.s.countReviewsLocked(movieID), nil
}

func (r *reviewRepo) Create(ctx context.Context, review *entity.Review) error {
	return r.u.write(ctx, TableReviews, OpCreate, review.ID, func() (func(), error) {
		s := r.u.s
		if _, ok := s.reviews[review.ID]; ok {
			return nil, wrap("create review", repository.ErrDuplicate)
		}
		if _, ok := s.movies[review.MovieID]; !ok {
			return nil, wrap("create review", repository.ErrForeignKey)
		}
		s.reviews[review.ID] = *review
		return func() { delete(s.reviews, review.ID) }, nil
	})
}

func (r *reviewRepo) Update(ctx context.Context, review *entity.Review) error {
	return r.u.write(ctx, TableReviews, OpUpdate, review.ID, func() (func(), error) {
		s := r.u.s
		old, ok := s.reviews[review.ID]
		if !ok || old.Version != review.Version {
			return nil, wrap("update review", repository.ErrEditConflict)
		}
		review.Version++
		s.reviews[review.ID] = *review
		return func() { s.reviews[review.ID] = old }, nil
	})
}

func (r *reviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.u.write(ctx, TableReviews, OpDelete, id, func() (func(), error) {
		s := r.u.s
		if _, ok := s.reviews[id]; !ok {
			return nil, wrap("delete review", repository.ErrEditConflict)
		}
		return s.removeLocked(TableReviews, id), nil
	})
}
