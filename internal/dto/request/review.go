package request

type CreateReviewRequest struct {
	MovieID      string `json:"movieId" validate:"required,uuid"`
	ReviewerName string `json:"reviewerName" validate:"required,max=100"`
	Comment      string `json:"comment" validate:"required,max=1000"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
}

type UpdateReviewRequest struct {
	ReviewerName string `json:"reviewerName" validate:"required,max=100"`
	Comment      string `json:"comment" validate:"required,max=1000"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Version      *int   `json:"version,omitempty" validate:"omitempty,min=1"`
}
