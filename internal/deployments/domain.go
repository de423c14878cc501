package deployments

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Provider identifies the hosting provider a deployment targets.
type Provider string

const (
	ProviderVercel  Provider = "vercel"
	ProviderNetlify Provider = "netlify"
	ProviderRailway Provider = "railway"
)

// Environment is the deployment target environment.
type Environment string

const (
	EnvironmentProduction  Environment = "production"
	EnvironmentPreview     Environment = "preview"
	EnvironmentDevelopment Environment = "development"
)

type Status string

const (
	StatusPending   Status = "pending"   // Record created, provider not yet contacted
	StatusBuilding  Status = "building"  // Provider accepted the deployment and is building
	StatusSuccess   Status = "success"   // Deployment is live
	StatusFailed    Status = "failed"    // Deployment failed
	StatusCancelled Status = "cancelled" // Deployment was cancelled
)

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusCancelled
}

var supportedProviders = map[Provider]struct{}{
	ProviderVercel:  {},
	ProviderNetlify: {},
	ProviderRailway: {},
}

var supportedEnvironments = map[Environment]struct{}{
	EnvironmentProduction:  {},
	EnvironmentPreview:     {},
	EnvironmentDevelopment: {},
}

// EnvVar is one build-time environment variable. Order is preserved as
// submitted.
type EnvVar struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Source references the repository a provider builds from.
type Source struct {
	RepoURL string `json:"repo_url"`
	Branch  string `json:"branch"`
}

// DeploymentRequest is the caller's instruction to deploy a project. It
// is not persisted itself; its fields are copied verbatim onto the
// created record and are immutable afterwards.
type DeploymentRequest struct {
	ProjectID uuid.UUID
	UserID    string

	Provider    Provider
	Environment Environment

	Source          *Source
	BuildCommand    string
	OutputDirectory string
	EnvVars         []EnvVar
	Domain          string
}

// Validate checks the request against the supported enums before any
// provider is contacted.
func (r DeploymentRequest) Validate() error {
	if r.ProjectID == uuid.Nil {
		return fmt.Errorf("%w: project id is required", ErrValidation)
	}

	if _, ok := supportedProviders[r.Provider]; !ok {
		return fmt.Errorf("%w: unsupported provider %q", ErrValidation, r.Provider)
	}

	if _, ok := supportedEnvironments[r.Environment]; !ok {
		return fmt.Errorf("%w: unsupported environment %q", ErrValidation, r.Environment)
	}

	for _, env := range r.EnvVars {
		if env.Key == "" {
			return fmt.Errorf("%w: environment variable with empty key", ErrValidation)
		}
	}

	return nil
}

type DeploymentDraft struct {
	// References
	ProjectID uuid.UUID
	UserID    string

	// Target, copied from the request and immutable afterwards
	Provider        Provider
	Environment     Environment
	Source          *Source
	BuildCommand    string
	OutputDirectory string
	EnvVars         []EnvVar
	Domain          string

	// Status
	Status       Status
	ExternalID   string // Provider-assigned deployment/build id
	URL          string // Live address once the provider confirms one
	Error        string // Populated only when Status is failed
	ErrorCode    string
	PollFailures int // Consecutive failed status refreshes

	// Logs
	BuildLogs string

	// Timestamps
	DeployedAt *time.Time // Stamped exactly once, on the success transition

	// Rollback Information
	RollbackOf *uuid.UUID // Original deployment this one reproduces
}

type Deployment struct {
	DeploymentDraft

	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Terminal reports whether the record reached a terminal status.
func (d *Deployment) Terminal() bool {
	return d.Status.Terminal()
}

// MarkBuilding records the provider's acceptance of the deployment.
func (d *Deployment) MarkBuilding(externalID, url string) {
	d.Status = StatusBuilding
	d.ExternalID = externalID
	if url != "" {
		d.URL = url
	}
}

// MarkDeployed transitions the record to success, stamping DeployedAt on
// the first transition only.
func (d *Deployment) MarkDeployed(deployedAt time.Time) {
	d.Status = StatusSuccess
	if d.DeployedAt == nil {
		d.DeployedAt = &deployedAt
	}
}

// MarkFailed transitions the record to failed.
func (d *Deployment) MarkFailed(message, code string) {
	d.Status = StatusFailed
	d.Error = message
	d.ErrorCode = code
}

// MarkCancelled transitions the record to cancelled.
func (d *Deployment) MarkCancelled() {
	d.Status = StatusCancelled
}

// EnvMap flattens the ordered variable list for providers that take a
// plain map. Later duplicates win.
func (d *DeploymentDraft) EnvMap() map[string]string {
	if len(d.EnvVars) == 0 {
		return nil
	}

	env := make(map[string]string, len(d.EnvVars))
	for _, v := range d.EnvVars {
		env[v.Key] = v.Value
	}
	return env
}

// Request reconstructs the originating request, used by rollback to
// reproduce a deployment's configuration.
func (d *Deployment) Request() DeploymentRequest {
	return DeploymentRequest{
		ProjectID:       d.ProjectID,
		UserID:          d.UserID,
		Provider:        d.Provider,
		Environment:     d.Environment,
		Source:          d.Source,
		BuildCommand:    d.BuildCommand,
		OutputDirectory: d.OutputDirectory,
		EnvVars:         d.EnvVars,
		Domain:          d.Domain,
	}
}
