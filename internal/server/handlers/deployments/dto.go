package deployments

import (
	"time"

	"github.com/autocrea/autocrea/internal/deployments"
	"github.com/google/uuid"
)

// EnvVar is a single build-time environment variable.
type EnvVar struct {
	Key   string `json:"key"   validate:"required,min=1,max=255"`
	Value string `json:"value"`
}

// Source references the repository to build from.
type Source struct {
	RepoURL string `json:"repo_url" validate:"required,url"`
	Branch  string `json:"branch"   validate:"max=100"`
}

// CreateRequest represents the request payload for creating a deployment.
type CreateRequest struct {
	ProjectID       uuid.UUID `json:"project_id"                 validate:"required"`
	Provider        string    `json:"provider"                   validate:"required,oneof=vercel netlify railway"`
	Environment     string    `json:"environment"                validate:"required,oneof=production preview development"`
	Source          *Source   `json:"source,omitempty"`
	BuildCommand    string    `json:"build_command,omitempty"    validate:"max=500"`
	OutputDirectory string    `json:"output_directory,omitempty" validate:"max=255"`
	EnvVars         []EnvVar  `json:"env_vars,omitempty"         validate:"dive"`
	Domain          string    `json:"domain,omitempty"           validate:"omitempty,hostname_rfc1123"`
}

// AppendLogsRequest represents the request payload for appending build logs.
type AppendLogsRequest struct {
	Logs string `json:"logs" validate:"required"`
}

// CleanupRequest represents the request payload for pruning old deployments.
type CleanupRequest struct {
	ProjectID      uuid.UUID `json:"project_id"      validate:"required"`
	OlderThan      string    `json:"older_than"      validate:"required"`
	KeepSuccessful int       `json:"keep_successful" validate:"min=0"`
}

// DeploymentResponse represents the response payload for a deployment.
type DeploymentResponse struct {
	ID uuid.UUID `json:"id"`

	// References
	ProjectID uuid.UUID `json:"project_id"`
	UserID    string    `json:"user_id,omitempty"`

	// Target
	Provider        string   `json:"provider"`
	Environment     string   `json:"environment"`
	Source          *Source  `json:"source,omitempty"`
	BuildCommand    string   `json:"build_command,omitempty"`
	OutputDirectory string   `json:"output_directory,omitempty"`
	EnvVars         []EnvVar `json:"env_vars,omitempty"`
	Domain          string   `json:"domain,omitempty"`

	// Status
	Status     string `json:"status"`
	ExternalID string `json:"external_id,omitempty"`
	URL        string `json:"url,omitempty"`
	Error      string `json:"error,omitempty"`
	ErrorCode  string `json:"error_code,omitempty"`

	// Timestamps
	DeployedAt *time.Time `json:"deployed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Rollback Information
	RollbackOf *uuid.UUID `json:"rollback_of,omitempty"`
}

// LogsResponse represents the response payload for a deployment's build logs.
type LogsResponse struct {
	ID   uuid.UUID `json:"id"`
	Logs string    `json:"logs"`
}

// CleanupResponse represents the response payload for a cleanup run.
type CleanupResponse struct {
	Deleted int `json:"deleted"`
}

func newDeploymentResponse(domain *deployments.Deployment) DeploymentResponse {
	response := DeploymentResponse{
		ID:              domain.ID,
		ProjectID:       domain.ProjectID,
		UserID:          domain.UserID,
		Provider:        string(domain.Provider),
		Environment:     string(domain.Environment),
		BuildCommand:    domain.BuildCommand,
		OutputDirectory: domain.OutputDirectory,
		Domain:          domain.Domain,
		Status:          string(domain.Status),
		ExternalID:      domain.ExternalID,
		URL:             domain.URL,
		Error:           domain.Error,
		ErrorCode:       domain.ErrorCode,
		DeployedAt:      domain.DeployedAt,
		CreatedAt:       domain.CreatedAt,
		UpdatedAt:       domain.UpdatedAt,
		RollbackOf:      domain.RollbackOf,
	}

	if domain.Source != nil {
		response.Source = &Source{
			RepoURL: domain.Source.RepoURL,
			Branch:  domain.Source.Branch,
		}
	}

	if len(domain.EnvVars) > 0 {
		response.EnvVars = make([]EnvVar, len(domain.EnvVars))
		for i, v := range domain.EnvVars {
			response.EnvVars[i] = EnvVar{Key: v.Key, Value: v.Value}
		}
	}

	return response
}

func newDeploymentRequest(req *CreateRequest, userID string) deployments.DeploymentRequest {
	request := deployments.DeploymentRequest{
		ProjectID:       req.ProjectID,
		UserID:          userID,
		Provider:        deployments.Provider(req.Provider),
		Environment:     deployments.Environment(req.Environment),
		BuildCommand:    req.BuildCommand,
		OutputDirectory: req.OutputDirectory,
		Domain:          req.Domain,
	}

	if req.Source != nil {
		request.Source = &deployments.Source{
			RepoURL: req.Source.RepoURL,
			Branch:  req.Source.Branch,
		}
	}

	if len(req.EnvVars) > 0 {
		request.EnvVars = make([]deployments.EnvVar, len(req.EnvVars))
		for i, v := range req.EnvVars {
			request.EnvVars[i] = deployments.EnvVar{Key: v.Key, Value: v.Value}
		}
	}

	return request
}

// StatsResponse represents the response payload for deployment stats.
type StatsResponse struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"by_status"`
	ByProvider    map[string]int `json:"by_provider"`
	ByEnvironment map[string]int `json:"by_environment"`
	SuccessRate   float64        `json:"success_rate"`
	LastSuccess   *time.Time     `json:"last_success,omitempty"`
}

func newStatsResponse(stats *deployments.Stats) StatsResponse {
	response := StatsResponse{
		Total:         stats.Total,
		ByStatus:      make(map[string]int, len(stats.ByStatus)),
		ByProvider:    make(map[string]int, len(stats.ByProvider)),
		ByEnvironment: make(map[string]int, len(stats.ByEnvironment)),
		SuccessRate:   stats.SuccessRate,
		LastSuccess:   stats.LastSuccess,
	}

	for status, count := range stats.ByStatus {
		response.ByStatus[string(status)] = count
	}
	for provider, count := range stats.ByProvider {
		response.ByProvider[string(provider)] = count
	}
	for environment, count := range stats.ByEnvironment {
		response.ByEnvironment[string(environment)] = count
	}

	return response
}
