package request

type ActorRequest struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	BirthYear int    `json:"birthYear" validate:"required,gte=1850,lte=2100"`
	Version   *int   `json:"version,omitempty" validate:"omitempty,min=1"`
}

type CastRequest struct {
	ActorID string `json:"actorId" validate:"required,uuid"`
	Role    string `json:"role" validate:"required,max=100"`
}
