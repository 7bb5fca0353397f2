package wire

import (
	"net/http"

	"movies-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, admin func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/reviews", reviewHandler.GetReviews)
	r.Get("/api/reviews/{id}", reviewHandler.GetReview)
	r.Get("/api/movies/{id}/reviews", reviewHandler.GetMovieReviews)

	// Anyone may post a review; the per-movie cap applies
	r.Post("/api/reviews", reviewHandler.CreateReview)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(admin)

		r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
	})
}
