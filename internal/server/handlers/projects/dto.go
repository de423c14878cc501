package projects

import (
	"time"

	"github.com/autocrea/autocrea/internal/projects"
	"github.com/google/uuid"
)

// CreateRequest represents the request payload for creating a project.
type CreateRequest struct {
	Name        string `json:"name"                validate:"required,min=1,max=100"`
	Description string `json:"description"         validate:"max=500"`
	Template    string `json:"template,omitempty"  validate:"max=100"`
}

// ProjectResponse represents the response payload for a project.
type ProjectResponse struct {
	CreateRequest

	ID        uuid.UUID `json:"id"`
	OwnerID   string    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newProjectResponse(domain *projects.Project) ProjectResponse {
	return ProjectResponse{
		CreateRequest: CreateRequest{
			Name:        domain.Name,
			Description: domain.Description,
			Template:    domain.Template,
		},
		ID:        domain.ID,
		OwnerID:   domain.OwnerID,
		CreatedAt: domain.CreatedAt,
		UpdatedAt: domain.UpdatedAt,
	}
}
