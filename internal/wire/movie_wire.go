package wire

import (
	"net/http"

	"movies-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, admin func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies - List movies, X-Pagination header carries the page metadata
	r.Get("/api/movies", movieHandler.GetMovies)
	r.Get("/api/movies/{id}", movieHandler.GetMovie)
	r.Get("/api/movies/{id}/detailed", movieHandler.GetMovieDetailed)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(admin)

		r.Post("/api/movies", movieHandler.CreateMovie)
		r.Put("/api/movies/{id}", movieHandler.UpdateMovie)
		r.Patch("/api/movies/{id}", movieHandler.PatchMovie) // JSON Patch (RFC 6902)
		r.Delete("/api/movies/{id}", movieHandler.DeleteMovie)
	})
}
