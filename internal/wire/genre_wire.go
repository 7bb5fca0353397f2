package wire

import (
	"net/http"

	"movies-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireGenre(r chi.Router, genreHandler *adaptor.GenreHandler, admin func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/genres", genreHandler.GetGenres)
	r.Get("/api/genres/{id}", genreHandler.GetGenre)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(admin)

		r.Post("/api/genres", genreHandler.CreateGenre)
		r.Put("/api/genres/{id}", genreHandler.UpdateGenre)
		r.Delete("/api/genres/{id}", genreHandler.DeleteGenre) // cascades to the genre's movies
	})
}
