package response

import (
	"time"

	"movies-api/internal/data/entity"

	"github.com/samber/lo"
)

type ReviewResponse struct {
	ID           string    `json:"id"`
	MovieID      string    `json:"movieId"`
	ReviewerName string    `json:"reviewerName"`
	Comment      string    `json:"comment"`
	Rating       int       `json:"rating"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Helper converter
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:           review.ID.String(),
		MovieID:      review.MovieID.String(),
		ReviewerName: review.ReviewerName,
		Comment:      review.Comment,
		Rating:       review.Rating,
		Version:      review.Version,
		CreatedAt:    review.CreatedAt,
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	return lo.Map(reviews, func(r *entity.Review, _ int) ReviewResponse {
		return ReviewToResponse(r)
	})
}
