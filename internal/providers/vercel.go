package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// VercelAdapter speaks the Vercel REST deployments API (v13).
type VercelAdapter struct {
	api    *apiClient
	config Config
	logger *zap.Logger
}

func NewVercelAdapter(config Config, logger *zap.Logger) *VercelAdapter {
	return &VercelAdapter{
		api:    newAPIClient(NameVercel, config.Vercel, vercelErrMessage),
		config: config,
		logger: logger,
	}
}

func vercelErrMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error.Message
}

type vercelGitSource struct {
	Type string `json:"type"`
	Repo string `json:"repo"`
	Ref  string `json:"ref"`
}

type vercelCreateRequest struct {
	Name            string            `json:"name"`
	GitSource       *vercelGitSource  `json:"gitSource,omitempty"`
	BuildCommand    string            `json:"buildCommand,omitempty"`
	OutputDirectory string            `json:"outputDirectory,omitempty"`
	Target          string            `json:"target,omitempty"`
	Env             map[string]string `json:"env,omitempty"`
}

type vercelDeployment struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	ReadyState string `json:"readyState"`
}

// Name implements Adapter.
func (a *VercelAdapter) Name() Name {
	return NameVercel
}

// Create implements Adapter.
func (a *VercelAdapter) Create(ctx context.Context, config CreateConfig) (CreateResult, error) {
	const op = "create"

	if !a.api.hasToken() {
		return CreateResult{}, missingCredential(NameVercel, op)
	}

	body := vercelCreateRequest{
		Name:            config.ProjectName,
		BuildCommand:    config.BuildCommand,
		OutputDirectory: config.OutputDirectory,
		Target:          config.Environment,
		Env:             config.EnvVars,
	}
	if config.RepoURL != "" {
		body.GitSource = &vercelGitSource{
			Type: "github",
			Repo: config.RepoURL,
			Ref:  branchOrMain(config.Branch),
		}
	}

	var deployment vercelDeployment
	err := a.api.do(ctx, op, http.MethodPost, "/v13/deployments", body, &deployment, a.config.createTimeout())
	if err != nil {
		return CreateResult{}, err
	}

	a.logger.Debug("vercel deployment created", zap.String("external_id", deployment.ID))

	return CreateResult{
		ExternalID: deployment.ID,
		URL:        ensureScheme(deployment.URL),
	}, nil
}

// Status implements Adapter.
func (a *VercelAdapter) Status(ctx context.Context, externalID string) (RawStatus, error) {
	const op = "status"

	if !a.api.hasToken() {
		return RawStatus{}, missingCredential(NameVercel, op)
	}

	var deployment vercelDeployment
	err := a.api.do(ctx, op, http.MethodGet, "/v13/deployments/"+externalID, nil, &deployment, a.config.statusTimeout())
	if err != nil {
		return RawStatus{}, err
	}

	return RawStatus{
		Status: deployment.ReadyState,
		URL:    ensureScheme(deployment.URL),
	}, nil
}

// Cancel implements Adapter.
func (a *VercelAdapter) Cancel(ctx context.Context, externalID string) error {
	const op = "cancel"

	if !a.api.hasToken() {
		return missingCredential(NameVercel, op)
	}

	return a.api.do(ctx, op, http.MethodPatch, "/v13/deployments/"+externalID+"/cancel", nil, nil, a.config.cancelTimeout())
}

var _ Adapter = (*VercelAdapter)(nil)

func branchOrMain(branch string) string {
	if branch == "" {
		return "main"
	}
	return branch
}

// ensureScheme upgrades bare hostnames, which Vercel returns, to https
// addresses.
func ensureScheme(url string) string {
	if url == "" || strings.Contains(url, "://") {
		return url
	}
	return "https://" + url
}
