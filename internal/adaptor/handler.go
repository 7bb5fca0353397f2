package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"movies-api/internal/dto/request"
	"movies-api/internal/usecase"
	"movies-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	Genre  *GenreHandler
	Movie  *MovieHandler
	Actor  *ActorHandler
	Review *ReviewHandler
	Health *HealthHandler
}

func NewHandler(service *usecase.Service, pinger Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Genre:  NewGenreHandler(service.Genre, log),
		Movie:  NewMovieHandler(service.Movie, log),
		Actor:  NewActorHandler(service.Actor, log),
		Review: NewReviewHandler(service.Review, log),
		Health: NewHealthHandler(pinger, log),
	}
}

// parseIDParam reads a UUID path parameter. Malformed and nil ids are answered with 400.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil || id == uuid.Nil {
		utils.ResponseBadRequest(w, "Invalid "+name, map[string]string{name: "Must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:     utils.ParseInt(query.Get("page"), request.DefaultPage),
		PageSize: utils.ParseInt(query.Get("pageSize"), request.DefaultPageSize),
	}.Normalize()
}

// decodeJSON answers 400 itself when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil || len(body) == 0 {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return nil, false
	}
	return body, true
}

// writePage sets X-Pagination and writes the items as the response data.
func writePage(w http.ResponseWriter, message string, data any, meta utils.PaginationMetadata) {
	if header, err := json.Marshal(meta); err == nil {
		w.Header().Set("X-Pagination", string(header))
	}
	utils.ResponseSuccess(w, message, data)
}

// writeServiceError maps service error kinds to statuses. Validation failures use
// validationStatus, which differs between routes. Internal errors are logged, never echoed.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string, validationStatus int) {
	var svcErr *usecase.Error
	if !errors.As(err, &svcErr) {
		if errors.Is(err, context.Canceled) {
			log.Warn(operation+" canceled", zap.Error(err))
		} else {
			log.Error(operation+" failed", zap.Error(err), zap.String("operation", operation))
		}
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	var fields any
	if len(svcErr.Fields) > 0 {
		fields = svcErr.Fields
	}

	switch svcErr.Kind {
	case usecase.KindValidation:
		log.Warn(operation+" validation failed", zap.Error(err))
		if validationStatus == http.StatusUnprocessableEntity {
			utils.ResponseUnprocessable(w, svcErr.Message, fields)
			return
		}
		utils.ResponseBadRequest(w, svcErr.Message, fields)

	case usecase.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, svcErr.Message)

	case usecase.KindConflict, usecase.KindConcurrencyConflict:
		log.Warn(operation+" failed - conflict", zap.Error(err), zap.String("kind", string(svcErr.Kind)))
		utils.ResponseConflict(w, svcErr.Message)

	default:
		log.Error(operation+" failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// logMutation records who changed what; admin is true when the request passed the admin token check.
func logMutation(log *zap.Logger, r *http.Request, msg string, fields ...zap.Field) {
	fields = append(fields, zap.Bool("admin", utils.IsAdminFromContext(r.Context())))
	log.Info(msg, fields...)
}
