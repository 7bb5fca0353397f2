package request

import "movies-api/internal/data/entity"

// MovieRequest is used for create and full-replace update. Version, when sent on update,
// is the token the client last read.
type MovieRequest struct {
	Title             string `json:"title" validate:"required,max=200"`
	Year              int    `json:"year" validate:"required,gte=1878,lte=2100"`
	GenreID           string `json:"genreId" validate:"required,uuid"`
	DurationInMinutes int    `json:"durationInMinutes" validate:"required,gte=1,lte=55000"`
	Synopsis          string `json:"synopsis" validate:"required,max=2000"`
	Language          string `json:"language" validate:"required,max=50"`
	Budget            *int   `json:"budget" validate:"omitempty,gte=0,lte=2147483647"`
	Version           *int   `json:"version,omitempty" validate:"omitempty,min=1"`
}

// NewMovieUpdateRequest snapshots the mutable fields of a movie, used as the PATCH base document.
func NewMovieUpdateRequest(movie *entity.Movie) MovieRequest {
	req := MovieRequest{
		Title:             movie.Title,
		Year:              movie.Year,
		GenreID:           movie.GenreID.String(),
		DurationInMinutes: movie.DurationInMinutes,
	}
	if movie.Details != nil {
		req.Synopsis = movie.Details.Synopsis
		req.Language = movie.Details.Language
		if movie.Details.Budget != nil {
			budget := *movie.Details.Budget
			req.Budget = &budget
		}
	}
	return req
}
