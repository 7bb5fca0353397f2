package request

import (
	"math"
	"testing"

	"movies-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validMovieRequest(budget int) MovieRequest {
	return MovieRequest{
		Title:             "Heat",
		Year:              1995,
		GenreID:           uuid.NewString(),
		DurationInMinutes: 170,
		Synopsis:          "Cops and robbers",
		Language:          "English",
		Budget:            &budget,
	}
}

func TestMovieRequestBudgetRange(t *testing.T) {
	tests := []struct {
		name    string
		budget  int
		wantErr bool
	}{
		{name: "zero", budget: 0},
		{name: "int4 max", budget: math.MaxInt32},
		{name: "past int4 max", budget: 3_000_000_000, wantErr: true},
		{name: "negative", budget: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validMovieRequest(tt.budget)
			errs := utils.ValidateStruct(&req)
			if tt.wantErr {
				assert.Contains(t, errs, "budget")
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestMovieRequestNoBudget(t *testing.T) {
	req := validMovieRequest(0)
	req.Budget = nil
	assert.Empty(t, utils.ValidateStruct(&req))
}
