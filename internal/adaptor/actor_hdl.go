package adaptor

import (
	"net/http"

	"movies-api/internal/dto/request"
	"movies-api/internal/dto/response"
	"movies-api/internal/usecase"
	"movies-api/pkg/utils"

	"go.uber.org/zap"
)

type ActorHandler struct {
	service usecase.ActorService
	log     *zap.Logger
}

func NewActorHandler(service usecase.ActorService, log *zap.Logger) *ActorHandler {
	return &ActorHandler{
		service: service,
		log:     log.With(zap.String("handler", "actor")),
	}
}

// GetActors handles GET /api/actors
func (h *ActorHandler) GetActors(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetAll(r.Context(), parsePagination(r))
	if err != nil {
		writeServiceError(w, h.log, err, "get actors", http.StatusBadRequest)
		return
	}
	writePage(w, "Actors retrieved successfully", page.Data, page.Pagination)
}

// GetActor handles GET /api/actors/{id}
func (h *ActorHandler) GetActor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	actor, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get actor", http.StatusBadRequest)
		return
	}
	utils.ResponseSuccess(w, "Actor retrieved successfully", actor)
}

// CreateActor handles POST /api/actors
func (h *ActorHandler) CreateActor(w http.ResponseWriter, r *http.Request) {
	var req request.ActorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	actor, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create actor", http.StatusBadRequest)
		return
	}

	logMutation(h.log, r, "Actor created", zap.String("actor_id", actor.ID))
	utils.ResponseCreated(w, "/api/actors/"+actor.ID, "Actor created successfully", actor)
}

// UpdateActor handles PUT /api/actors/{id}
func (h *ActorHandler) UpdateActor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req request.ActorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Update(r.Context(), id, &req); err != nil {
		writeServiceError(w, h.log, err, "update actor", http.StatusBadRequest)
		return
	}

	logMutation(h.log, r, "Actor updated", zap.String("actor_id", id.String()))
	utils.ResponseNoContent(w)
}

// DeleteActor handles DELETE /api/actors/{id}
func (h *ActorHandler) DeleteActor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete actor", http.StatusBadRequest)
		return
	}

	logMutation(h.log, r, "Actor deleted", zap.String("actor_id", id.String()))
	utils.ResponseNoContent(w)
}

// AddActorToMovie handles POST /api/movies/{id}/actors
func (h *ActorHandler) AddActorToMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req request.CastRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.AddActorToMovie(r.Context(), movieID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "add actor to movie", http.StatusBadRequest)
		return
	}
	if result == response.CastAlreadyExists {
		utils.ResponseBadRequest(w, "Actor is already cast in this movie", nil)
		return
	}

	logMutation(h.log, r, "Actor added to movie",
		zap.String("movie_id", movieID.String()),
		zap.String("actor_id", req.ActorID),
	)
	utils.ResponseNoContent(w)
}

// RemoveActorFromMovie handles DELETE /api/movies/{id}/actors/{actorId}
func (h *ActorHandler) RemoveActorFromMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	actorID, ok := parseIDParam(w, r, "actorId")
	if !ok {
		return
	}

	if err := h.service.RemoveActorFromMovie(r.Context(), movieID, actorID); err != nil {
		writeServiceError(w, h.log, err, "remove actor from movie", http.StatusBadRequest)
		return
	}

	logMutation(h.log, r, "Actor removed from movie",
		zap.String("movie_id", movieID.String()),
		zap.String("actor_id", actorID.String()),
	)
	utils.ResponseNoContent(w)
}
