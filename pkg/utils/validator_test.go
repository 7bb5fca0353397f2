package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name   string `json:"name" validate:"required,max=5"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	ID     string `json:"id" validate:"required,uuid"`
	Year   int    `json:"year" validate:"omitempty,gte=1878"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(sample{Name: "toolong", Rating: 9, ID: "nope", Year: 1500})

	assert.Equal(t, map[string]string{
		"name":   "Maximum length is 5",
		"rating": "Maximum value is 5",
		"id":     "Must be a valid UUID",
		"year":   "Must be greater than or equal to 1878",
	}, errs)

	assert.Nil(t, ValidateStruct(sample{Name: "ok", Rating: 3, ID: "0b7e3c2a-5f6d-4c1e-9a8b-7d6e5f4a3b2c"}))
}

func TestValidateStructRequired(t *testing.T) {
	errs := ValidateStruct(sample{})
	assert.Equal(t, "This field is required", errs["name"])
	assert.Equal(t, "This field is required", errs["rating"])
	assert.NotContains(t, errs, "year")
}

func TestFormatValidationErrors(t *testing.T) {
	got := FormatValidationErrors(map[string]string{
		"title": "This field is required",
		"year":  "Must be less than or equal to 2100",
	})
	assert.Equal(t, "title: This field is required; year: Must be less than or equal to 2100", got)
}
