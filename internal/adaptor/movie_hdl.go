package adaptor

import (
	"net/http"

	"movies-api/internal/dto/request"
	"movies-api/internal/usecase"
	"movies-api/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetAll(r.Context(), parsePagination(r))
	if err != nil {
		writeServiceError(w, h.log, err, "get movies", http.StatusBadRequest)
		return
	}
	writePage(w, "Movies retrieved successfully", page.Data, page.Pagination)
}

// GetMovie handles GET /api/movies/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	movie, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get movie", http.StatusBadRequest)
		return
	}
	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// GetMovieDetailed handles GET /api/movies/{id}/detailed
func (h *MovieHandler) GetMovieDetailed(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	movie, err := h.service.GetDetailed(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get detailed movie", http.StatusBadRequest)
		return
	}
	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// CreateMovie handles POST /api/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	movie, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create movie", http.StatusUnprocessableEntity)
		return
	}

	logMutation(h.log, r, "Movie created", zap.String("movie_id", movie.ID))
	utils.ResponseCreated(w, "/api/movies/"+movie.ID, "Movie created successfully", movie)
}

// UpdateMovie handles PUT /api/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req request.MovieRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Update(r.Context(), id, &req); err != nil {
		writeServiceError(w, h.log, err, "update movie", http.StatusBadRequest)
		return
	}

	logMutation(h.log, r, "Movie updated", zap.String("movie_id", id.String()))
	utils.ResponseNoContent(w)
}

// PatchMovie handles PATCH /api/movies/{id} with a JSON Patch body.
func (h *MovieHandler) PatchMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	patch, ok := readBody(w, r)
	if !ok {
		return
	}

	if err := h.service.Patch(r.Context(), id, patch); err != nil {
		writeServiceError(w, h.log, err, "patch movie", http.StatusBadRequest)
		return
	}

	logMutation(h.log, r, "Movie patched", zap.String("movie_id", id.String()))
	utils.ResponseNoContent(w)
}

// DeleteMovie handles DELETE /api/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete movie", http.StatusBadRequest)
		return
	}

	logMutation(h.log, r, "Movie deleted", zap.String("movie_id", id.String()))
	utils.ResponseNoContent(w)
}
