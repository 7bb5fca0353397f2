package entity

import (
	"github.com/google/uuid"
)

type Movie struct {
	Base
	Title             string    `db:"title"`
	Year              int       `db:"year"`
	DurationInMinutes int       `db:"duration_in_minutes"`
	GenreID           uuid.UUID `db:"genre_id"`

	// Loaded on request by repository includes.
	Genre   *Genre
	Details *MovieDetails
	Cast    []*MovieActor
	Reviews []*Review
}

// MovieDetails is 1:1 with Movie and shares its key.
type MovieDetails struct {
	MovieID  uuid.UUID `db:"movie_id"`
	Synopsis string    `db:"synopsis"`
	Language string    `db:"language"`
	Budget   *int      `db:"budget"`
}
