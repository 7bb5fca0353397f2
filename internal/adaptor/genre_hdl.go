package adaptor

import (
	"net/http"

	"movies-api/internal/dto/request"
	"movies-api/internal/usecase"
	"movies-api/pkg/utils"

	"go.uber.org/zap"
)

type GenreHandler struct {
	service usecase.GenreService
	log     *zap.Logger
}

func NewGenreHandler(service usecase.GenreService, log *zap.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		log:     log.With(zap.String("handler", "genre")),
	}
}

// GetGenres handles GET /api/genres
func (h *GenreHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetAll(r.Context(), parsePagination(r))
	if err != nil {
		writeServiceError(w, h.log, err, "get genres", http.StatusBadRequest)
		return
	}
	writePage(w, "Genres retrieved successfully", page.Data, page.Pagination)
}

// GetGenre handles GET /api/genres/{id}?includeMovies=true
func (h *GenreHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var (
		genre any
		err   error
	)
	if utils.ParseBool(r.URL.Query().Get("includeMovies")) {
		genre, err = h.service.GetWithMovies(r.Context(), id)
	} else {
		genre, err = h.service.Get(r.Context(), id)
	}
	if err != nil {
		writeServiceError(w, h.log, err, "get genre", http.StatusBadRequest)
		return
	}
	utils.ResponseSuccess(w, "Genre retrieved successfully", genre)
}

// CreateGenre handles POST /api/genres
func (h *GenreHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req request.GenreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	genre, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create genre", http.StatusBadRequest)
		return
	}

	logMutation(h.log, r, "Genre created", zap.String("genre_id", genre.ID))
	utils.ResponseCreated(w, "/api/genres/"+genre.ID, "Genre created successfully", genre)
}

// UpdateGenre handles PUT /api/genres/{id}
func (h *GenreHandler) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req request.GenreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Update(r.Context(), id, &req); err != nil {
		writeServiceError(w, h.log, err, "update genre", http.StatusBadRequest)
		return
	}

	logMutation(h.log, r, "Genre updated", zap.String("genre_id", id.String()))
	utils.ResponseNoContent(w)
}

// DeleteGenre handles DELETE /api/genres/{id}. Movies of the genre are deleted with it.
func (h *GenreHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete genre", http.StatusBadRequest)
		return
	}

	logMutation(h.log, r, "Genre deleted", zap.String("genre_id", id.String()))
	utils.ResponseNoContent(w)
}
