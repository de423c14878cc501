package deployments

import (
	"time"

	"github.com/autocrea/autocrea/internal/storage"
	"github.com/google/uuid"
)

// deploymentModel represents a stored deployment record.
type deploymentModel struct {
	storage.BaseEntity

	// References
	ProjectID uuid.UUID `json:"project_id"`
	UserID    string    `json:"user_id"`

	// Target
	Provider        Provider    `json:"provider"`
	Environment     Environment `json:"environment"`
	Source          *Source     `json:"source,omitempty"`
	BuildCommand    string      `json:"build_command,omitempty"`
	OutputDirectory string      `json:"output_directory,omitempty"`
	EnvVars         []EnvVar    `json:"env_vars,omitempty"`
	Domain          string      `json:"domain,omitempty"`

	// Status
	Status       Status `json:"status"`
	ExternalID   string `json:"external_id,omitempty"`
	URL          string `json:"url,omitempty"`
	Error        string `json:"error,omitempty"`
	ErrorCode    string `json:"error_code,omitempty"`
	PollFailures int    `json:"poll_failures,omitempty"`

	// Logs
	BuildLogs string `json:"build_logs,omitempty"`

	// Timestamps
	DeployedAt *time.Time `json:"deployed_at,omitempty"`

	// Rollback Information
	RollbackOf *uuid.UUID `json:"rollback_of,omitempty"`
}

func newDeploymentModel(draft *DeploymentDraft) *deploymentModel {
	if draft == nil {
		return nil
	}

	now := time.Now().UTC()
	return &deploymentModel{
		BaseEntity: storage.BaseEntity{
			ID:        uuid.Must(uuid.NewV7()),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProjectID:       draft.ProjectID,
		UserID:          draft.UserID,
		Provider:        draft.Provider,
		Environment:     draft.Environment,
		Source:          draft.Source,
		BuildCommand:    draft.BuildCommand,
		OutputDirectory: draft.OutputDirectory,
		EnvVars:         draft.EnvVars,
		Domain:          draft.Domain,
		Status:          draft.Status,
		ExternalID:      draft.ExternalID,
		URL:             draft.URL,
		Error:           draft.Error,
		ErrorCode:       draft.ErrorCode,
		PollFailures:    draft.PollFailures,
		BuildLogs:       draft.BuildLogs,
		DeployedAt:      draft.DeployedAt,
		RollbackOf:      draft.RollbackOf,
	}
}

func newDeploymentUpdateModel(source *deploymentModel, draft *DeploymentDraft) *deploymentModel {
	updated := newDeploymentModel(draft)
	updated.ID = source.ID
	updated.CreatedAt = source.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	return updated
}

func newDeployment(model *deploymentModel) *Deployment {
	if model == nil {
		return nil
	}

	return &Deployment{
		DeploymentDraft: DeploymentDraft{
			ProjectID:       model.ProjectID,
			UserID:          model.UserID,
			Provider:        model.Provider,
			Environment:     model.Environment,
			Source:          model.Source,
			BuildCommand:    model.BuildCommand,
			OutputDirectory: model.OutputDirectory,
			EnvVars:         model.EnvVars,
			Domain:          model.Domain,
			Status:          model.Status,
			ExternalID:      model.ExternalID,
			URL:             model.URL,
			Error:           model.Error,
			ErrorCode:       model.ErrorCode,
			PollFailures:    model.PollFailures,
			BuildLogs:       model.BuildLogs,
			DeployedAt:      model.DeployedAt,
			RollbackOf:      model.RollbackOf,
		},
		ID:        model.ID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
