package wire

import (
	"net/http"

	"movies-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireActor(r chi.Router, actorHandler *adaptor.ActorHandler, admin func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/actors", actorHandler.GetActors)
	r.Get("/api/actors/{id}", actorHandler.GetActor)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(admin)

		r.Post("/api/actors", actorHandler.CreateActor)
		r.Put("/api/actors/{id}", actorHandler.UpdateActor)
		r.Delete("/api/actors/{id}", actorHandler.DeleteActor)

		// Casting
		r.Post("/api/movies/{id}/actors", actorHandler.AddActorToMovie)
		r.Delete("/api/movies/{id}/actors/{actorId}", actorHandler.RemoveActorFromMovie)
	})
}
