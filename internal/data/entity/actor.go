package entity

import "strings"

type Actor struct {
	Base
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	BirthYear int    `db:"birth_year"`

	Roles []*MovieActor
}

func (a *Actor) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
