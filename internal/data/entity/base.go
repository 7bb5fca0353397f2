package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded by every entity with its own identity. Version is the optimistic
// concurrency token; it starts at 1 and is incremented by each successful update.
type Base struct {
	ID        uuid.UUID `db:"id"`
	Version   int       `db:"version"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewBase stamps a fresh identity at version 1.
func NewBase(now time.Time) Base {
	return Base{
		ID:        uuid.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
