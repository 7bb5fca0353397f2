package entity

import (
	"github.com/google/uuid"
)

// MovieActor is one casting assignment, keyed by (MovieID, ActorID).
type MovieActor struct {
	MovieID uuid.UUID `db:"movie_id"`
	ActorID uuid.UUID `db:"actor_id"`
	Role    string    `db:"role"`

	Movie *Movie
	Actor *Actor
}
