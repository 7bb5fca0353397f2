package response

import (
	"movies-api/internal/data/entity"

	"github.com/samber/lo"
)

type ActorResponse struct {
	ID        string               `json:"id"`
	FirstName string               `json:"firstName"`
	LastName  string               `json:"lastName"`
	FullName  string               `json:"fullName"`
	BirthYear int                  `json:"birthYear"`
	Version   int                  `json:"version"`
	Movies    []MovieTitleResponse `json:"movies"`
}

// MovieTitleResponse is one entry of an actor's filmography.
type MovieTitleResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Role  string `json:"role"`
}

func ActorToResponse(actor *entity.Actor) ActorResponse {
	return ActorResponse{
		ID:        actor.ID.String(),
		FirstName: actor.FirstName,
		LastName:  actor.LastName,
		FullName:  actor.FullName(),
		BirthYear: actor.BirthYear,
		Version:   actor.Version,
		Movies: lo.FilterMap(actor.Roles, func(ma *entity.MovieActor, _ int) (MovieTitleResponse, bool) {
			if ma.Movie == nil {
				return MovieTitleResponse{}, false
			}
			return MovieTitleResponse{
				ID:    ma.MovieID.String(),
				Title: ma.Movie.Title,
				Role:  ma.Role,
			}, true
		}),
	}
}

func ActorsToResponse(actors []*entity.Actor) []ActorResponse {
	return lo.Map(actors, func(a *entity.Actor, _ int) ActorResponse {
		return ActorToResponse(a)
	})
}

// CastResult is the outcome of casting an actor that is not an error.
type CastResult string

const (
	CastAdded         CastResult = "added"
	CastAlreadyExists CastResult = "already_exists"
)
