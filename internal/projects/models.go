package projects

import (
	"time"

	"github.com/autocrea/autocrea/internal/storage"
	"github.com/google/uuid"
)

// projectModel represents a stored user project.
type projectModel struct {
	storage.BaseEntity

	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     string `json:"owner_id"`
	Template    string `json:"template"`
}

func newProjectModel(draft *ProjectDraft) *projectModel {
	if draft == nil {
		return nil
	}

	now := time.Now()
	return &projectModel{
		BaseEntity: storage.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        draft.Name,
		Description: draft.Description,
		OwnerID:     draft.OwnerID,
		Template:    draft.Template,
	}
}

func newProject(model *projectModel) *Project {
	if model == nil {
		return nil
	}

	return &Project{
		ProjectDraft: ProjectDraft{
			Name:        model.Name,
			Description: model.Description,
			OwnerID:     model.OwnerID,
			Template:    model.Template,
		},
		ID:        model.ID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
