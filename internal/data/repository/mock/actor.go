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

type actorRepo struct {
	u *unitOfWork
}

func (r *actorRepo) Any(ctx context.Context, id uuid.UUID) (bool, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	_, ok := r.u.s.actors[id]
	return ok, nil
}

func (r *actorRepo) FindAll(ctx context.Context, trackChanges bool, params request.PaginatedRequest, _ ...repository.Include[entity.Actor]) ([]*entity.Actor, utils.PaginationMetadata, error) {
	s := r.u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*entity.Actor, 0, len(s.actors))
	for _, a := range s.actors {
		items = append(items, s.actorLocked(a))
	}
	sort.Slice(items, func(i, j int) bool { return actorLess(items[i], items[j]) })

	page, meta := paginate(items, params)
	return page, meta, nil
}

func (r *actorRepo) FindByID(ctx context.Context, id uuid.UUID, trackChanges bool, _ ...repository.Include[entity.Actor]) (*entity.Actor, error) {
	if trackChanges {
		r.u.lock(id)
	}
	s := r.u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.actors[id]
	if !ok {
		return nil, nil
	}
	return s.actorLocked(a), nil
}

func (r *actorRepo) Create(ctx context.Context, actor *entity.Actor) error {
	return r.u.write(ctx, TableActors, OpCreate, actor.ID, func() (func(), error) {
		s := r.u.s
		if _, ok := s.actors[actor.ID]; ok {
			return nil, wrap("create actor", repository.ErrDuplicate)
		}
		v := *actor
		v.Roles = nil
		s.actors[actor.ID] = v
		return func() { delete(s.actors, actor.ID) }, nil
	})
}

func (r *actorRepo) Update(ctx context.Context, actor *entity.Actor) error {
	return r.u.write(ctx, TableActors, OpUpdate, actor.ID, func() (func(), error) {
		s := r.u.s
		old, ok := s.actors[actor.ID]
		if !ok || old.Version != actor.Version {
			return nil, wrap("update actor", repository.ErrEditConflict)
		}
		actor.Version++
		v := *actor
		v.Roles = nil
		s.actors[actor.ID] = v
		return func() { s.actors[actor.ID] = old }, nil
	})
}

func (r *actorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.u.write(ctx, TableActors, OpDelete, id, func() (func(), error) {
		s := r.u.s
		if _, ok := s.actors[id]; !ok {
			return nil, wrap("delete actor", repository.ErrEditConflict)
		}
		return s.removeLocked(TableActors, id), nil
	})
}

func (r *actorRepo) IsActorInMovie(ctx context.Context, movieID, actorID uuid.UUID) (bool, error) {
	s := r.u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cast[castKey{movieID, actorID}]
	return ok, nil
}

func (r *actorRepo) AddActorToMovie(ctx context.Context, cast *entity.MovieActor) error {
	return r.u.write(ctx, TableMovieActors, OpCreate, cast.MovieID, func() (func(), error) {
		s := r.u.s
		key := castKey{cast.MovieID, cast.ActorID}
		if _, ok := s.cast[key]; ok {
			return nil, wrap("add actor to movie", repository.ErrDuplicate)
		}
		if _, ok := s.movies[cast.MovieID]; !ok {
			return nil, wrap("add actor to movie", repository.ErrForeignKey)
		}
		if _, ok := s.actors[cast.ActorID]; !ok {
			return nil, wrap("add actor to movie", repository.ErrForeignKey)
		}
		s.cast[key] = cast.Role
		return func() { delete(s.cast, key) }, nil
	})
}

func (r *actorRepo) RemoveActorFromMovie(ctx context.Context, movieID, actorID uuid.UUID) (bool, error) {
	removed := false
	err := r.u.write(ctx, TableMovieActors, OpDelete, movieID, func() (func(), error) {
		s := r.u.s
		key := castKey{movieID, actorID}
		role, ok := s.cast[key]
		if !ok {
			return func() {}, nil
		}
		delete(s.cast, key)
		removed = true
		return func() { s.cast[key] = role }, nil
	})
	return removed, err
}

func (r *actorRepo) CountByMovie(ctx context.Context, movieID uuid.UUID) (int, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	return r.u.s.countCastLocked(movieID), nil
}
