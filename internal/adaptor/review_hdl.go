package adaptor

import (
	"net/http"

	"movies-api/internal/dto/request"
	"movies-api/internal/usecase"
	"movies-api/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// GetReviews handles GET /api/reviews
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetAll(r.Context(), parsePagination(r))
	if err != nil {
		writeServiceError(w, h.log, err, "get reviews", http.StatusBadRequest)
		return
	}
	writePage(w, "Reviews retrieved successfully", page.Data, page.Pagination)
}

// GetMovieReviews handles GET /api/movies/{id}/reviews
func (h *ReviewHandler) GetMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	page, err := h.service.GetByMovie(r.Context(), movieID, parsePagination(r))
	if err != nil {
		writeServiceError(w, h.log, err, "get movie reviews", http.StatusBadRequest)
		return
	}
	writePage(w, "Reviews retrieved successfully", page.Data, page.Pagination)
}

// GetReview handles GET /api/reviews/{id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	review, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get review", http.StatusBadRequest)
		return
	}
	utils.ResponseSuccess(w, "Review retrieved successfully", review)
}

// CreateReview handles POST /api/reviews. Rule violations answer 422.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create review", http.StatusUnprocessableEntity)
		return
	}

	logMutation(h.log, r, "Review created",
		zap.String("review_id", review.ID),
		zap.String("movie_id", review.MovieID),
	)
	utils.ResponseCreated(w, "/api/reviews/"+review.ID, "Review created successfully", review)
}

// UpdateReview handles PUT /api/reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Update(r.Context(), id, &req); err != nil {
		writeServiceError(w, h.log, err, "update review", http.StatusBadRequest)
		return
	}

	logMutation(h.log, r, "Review updated", zap.String("review_id", id.String()))
	utils.ResponseNoContent(w)
}

// DeleteReview handles DELETE /api/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete review", http.StatusBadRequest)
		return
	}

	logMutation(h.log, r, "Review deleted", zap.String("review_id", id.String()))
	utils.ResponseNoContent(w)
}
