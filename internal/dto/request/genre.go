package request

type GenreRequest struct {
	Name    string `json:"name" validate:"required,max=50"`
	Version *int   `json:"version,omitempty" validate:"omitempty,min=1"`
}
