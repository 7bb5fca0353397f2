package wire

import (
	"net/http"

	"movies-api/internal/adaptor"
	"movies-api/internal/data/repository"
	"movies-api/internal/usecase"
	"movies-api/pkg/middleware"
	"movies-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies
func Wiring(store repository.Store, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(store, logger)
	handler := adaptor.NewHandler(service, store, logger)

	return &App{
		Router: setupRouter(handler, config, logger),
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	// Mutating routes share one guard
	admin := middleware.AdminToken(config.Admin.TokenHash, logger)

	wireGenre(r, handler.Genre, admin)
	wireMovie(r, handler.Movie, admin)
	wireActor(r, handler.Actor, admin)
	wireReview(r, handler.Review, admin)

	r.Get("/health", handler.Health.Check)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	return r
}
