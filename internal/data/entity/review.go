package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	Base
	MovieID      uuid.UUID `db:"movie_id"`
	ReviewerName string    `db:"reviewer_name"`
	Comment      string    `db:"comment"`
	Rating       int       `db:"rating"` // 1-5
}
