package response

import (
	"movies-api/internal/data/entity"

	"github.com/samber/lo"
)

type GenreResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version int    `json:"version"`
}

type GenreMoviesResponse struct {
	GenreResponse
	Movies []MovieSummaryResponse `json:"movies"`
}

// MovieSummaryResponse is a movie listed under its genre.
type MovieSummaryResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// Helper converter
func GenreToResponse(genre *entity.Genre) GenreResponse {
	return GenreResponse{
		ID:      genre.ID.String(),
		Name:    genre.Name,
		Version: genre.Version,
	}
}

func GenreToMoviesResponse(genre *entity.Genre) GenreMoviesResponse {
	return GenreMoviesResponse{
		GenreResponse: GenreToResponse(genre),
		Movies: lo.Map(genre.Movies, func(m *entity.Movie, _ int) MovieSummaryResponse {
			return MovieSummaryResponse{
				ID:    m.ID.String(),
				Title: m.Title,
				Year:  m.Year,
			}
		}),
	}
}

func GenresToResponse(genres []*entity.Genre) []GenreResponse {
	return lo.Map(genres, func(g *entity.Genre, _ int) GenreResponse {
		return GenreToResponse(g)
	})
}
