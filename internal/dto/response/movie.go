package response

import (
	"movies-api/internal/data/entity"

	"github.com/samber/lo"
)

type MovieResponse struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Year              int    `json:"year"`
	GenreID           string `json:"genreId"`
	Genre             string `json:"genre,omitempty"`
	DurationInMinutes int    `json:"durationInMinutes"`
	Synopsis          string `json:"synopsis,omitempty"`
	Language          string `json:"language,omitempty"`
	Budget            *int   `json:"budget,omitempty"`
	Version           int    `json:"version"`
}

type MovieDetailResponse struct {
	MovieResponse
	Actors  []ActorResponse  `json:"actors"`
	Reviews []ReviewResponse `json:"reviews"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	resp := MovieResponse{
		ID:                movie.ID.String(),
		Title:             movie.Title,
		Year:              movie.Year,
		GenreID:           movie.GenreID.String(),
		DurationInMinutes: movie.DurationInMinutes,
		Version:           movie.Version,
	}
	if movie.Genre != nil {
		resp.Genre = movie.Genre.Name
	}
	if movie.Details != nil {
		resp.Synopsis = movie.Details.Synopsis
		resp.Language = movie.Details.Language
		resp.Budget = movie.Details.Budget
	}
	return resp
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	return lo.Map(movies, func(m *entity.Movie, _ int) MovieResponse {
		return MovieToResponse(m)
	})
}

// MovieToDetailResponse includes the cast, each actor with its filmography, and the reviews.
func MovieToDetailResponse(movie *entity.Movie) MovieDetailResponse {
	return MovieDetailResponse{
		MovieResponse: MovieToResponse(movie),
		Actors: lo.FilterMap(movie.Cast, func(ma *entity.MovieActor, _ int) (ActorResponse, bool) {
			if ma.Actor == nil {
				return ActorResponse{}, false
			}
			return ActorToResponse(ma.Actor), true
		}),
		Reviews: ReviewsToResponse(movie.Reviews),
	}
}
