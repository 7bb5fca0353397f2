package mock

import (
	"context"
	"sync"

	"movies-api/internal/data/repository"

	"github.com/google/uuid"
)

type unitOfWork struct {
	s     *Store
	undo  []func()
	locks map[uuid.UUID]*sync.Mutex
	done  bool
}

func (u *unitOfWork) Movies() repository.MovieRepository   { return &movieRepo{u: u} }
func (u *unitOfWork) Actors() repository.ActorRepository   { return &actorRepo{u: u} }
func (u *unitOfWork) Reviews() repository.ReviewRepository { return &reviewRepo{u: u} }
func (u *unitOfWork) Genres() repository.GenreRepository   { return &genreRepo{u: u} }

func (u *unitOfWork) Complete(ctx context.Context) error {
	if u.done {
		return nil
	}
	if u.s.CompleteError != nil {
		return u.s.CompleteError
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.undo = nil
	u.finish()
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.s.mu.Lock()
	for i := len(u.undo) - 1; i >= 0; i-- {
		u.undo[i]()
	}
	u.s.mu.Unlock()
	u.undo = nil
	u.finish()
	return nil
}

func (u *unitOfWork) finish() {
	u.done = true
	for id, m := range u.locks {
		m.Unlock()
		delete(u.locks, id)
	}
}

// lock takes the row lock once per unit of work, like SELECT ... FOR UPDATE.
func (u *unitOfWork) lock(id uuid.UUID) {
	if _, held := u.locks[id]; held {
		return
	}
	m := u.s.rowLock(id)
	m.Lock()
	u.locks[id] = m
}

// write runs the hook, then fn under the store lock. fn returns the undo for a successful write.
func (u *unitOfWork) write(ctx context.Context, table string, op Op, id uuid.UUID, fn func() (func(), error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if u.s.BeforeWrite != nil {
		u.s.BeforeWrite(table, op, id)
	}

	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	undo, err := fn()
	if err != nil {
		return err
	}
	u.undo = append(u.undo, undo)
	return nil
}
