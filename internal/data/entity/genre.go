package entity

import "strings"

const GenreDocumentary = "documentary"

type Genre struct {
	Base
	Name string `db:"name"`

	Movies []*Movie
}

// IsDocumentary compares the trimmed name case-insensitively.
func (g *Genre) IsDocumentary() bool {
	return g != nil && IsDocumentaryName(g.Name)
}

func IsDocumentaryName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), GenreDocumentary)
}
