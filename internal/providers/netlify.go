package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// NetlifyAdapter speaks the Netlify REST API. Creation is a two-step
// sequence: register the site, then trigger a deploy against it. A
// failure between the steps is reported with the site id attached so the
// half-created resource stays auditable.
type NetlifyAdapter struct {
	api    *apiClient
	config Config
	logger *zap.Logger
}

func NewNetlifyAdapter(config Config, logger *zap.Logger) *NetlifyAdapter {
	return &NetlifyAdapter{
		api:    newAPIClient(NameNetlify, config.Netlify, netlifyErrMessage),
		config: config,
		logger: logger,
	}
}

func netlifyErrMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

type netlifyRepo struct {
	Provider string `json:"provider"`
	Repo     string `json:"repo"`
	Branch   string `json:"branch"`
}

type netlifyBuildSettings struct {
	Cmd string            `json:"cmd,omitempty"`
	Dir string            `json:"dir,omitempty"`
	Env map[string]string `json:"env,omitempty"`
}

type netlifyCreateSiteRequest struct {
	Name          string               `json:"name"`
	CustomDomain  string               `json:"custom_domain,omitempty"`
	Repo          netlifyRepo          `json:"repo"`
	BuildSettings netlifyBuildSettings `json:"build_settings"`
}

type netlifySite struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type netlifyDeploy struct {
	ID           string `json:"id"`
	State        string `json:"state"`
	DeploySSLURL string `json:"deploy_ssl_url"`
	Summary      struct {
		Messages []string `json:"messages"`
	} `json:"summary"`
}

// Name implements Adapter.
func (a *NetlifyAdapter) Name() Name {
	return NameNetlify
}

// Create implements Adapter.
func (a *NetlifyAdapter) Create(ctx context.Context, config CreateConfig) (CreateResult, error) {
	const op = "create"

	if !a.api.hasToken() {
		return CreateResult{}, missingCredential(NameNetlify, op)
	}

	if config.RepoURL == "" {
		return CreateResult{}, rejected(NameNetlify, op, "git url is required for netlify deployment")
	}

	siteBody := netlifyCreateSiteRequest{
		Name:         config.ProjectName,
		CustomDomain: config.Domain,
		Repo: netlifyRepo{
			Provider: "github",
			Repo:     config.RepoURL,
			Branch:   branchOrMain(config.Branch),
		},
		BuildSettings: netlifyBuildSettings{
			Cmd: config.BuildCommand,
			Dir: config.OutputDirectory,
			Env: config.EnvVars,
		},
	}

	var site netlifySite
	if err := a.api.do(ctx, op, http.MethodPost, "/api/v1/sites", siteBody, &site, a.config.createTimeout()); err != nil {
		return CreateResult{}, err
	}

	a.logger.Debug("netlify site created", zap.String("site_id", site.ID))

	var deploy netlifyDeploy
	if err := a.api.do(ctx, op, http.MethodPost, "/api/v1/sites/"+site.ID+"/deploys", struct{}{}, &deploy, a.config.createTimeout()); err != nil {
		// Site exists but no deploy was triggered. Attach the site id so
		// the failure record still points at the orphaned resource.
		var adapterErr *Error
		if errors.As(err, &adapterErr) {
			adapterErr.PartialID = site.ID
			adapterErr.Message = "site created but deploy trigger failed: " + adapterErr.Message
			return CreateResult{}, adapterErr
		}
		return CreateResult{}, err
	}

	return CreateResult{
		ExternalID: deploy.ID,
		URL:        site.URL,
	}, nil
}

// Status implements Adapter.
func (a *NetlifyAdapter) Status(ctx context.Context, externalID string) (RawStatus, error) {
	const op = "status"

	if !a.api.hasToken() {
		return RawStatus{}, missingCredential(NameNetlify, op)
	}

	var deploy netlifyDeploy
	err := a.api.do(ctx, op, http.MethodGet, "/api/v1/deploys/"+externalID, nil, &deploy, a.config.statusTimeout())
	if err != nil {
		return RawStatus{}, err
	}

	return RawStatus{
		Status: deploy.State,
		URL:    deploy.DeploySSLURL,
		Logs:   strings.Join(deploy.Summary.Messages, "\n"),
	}, nil
}

// Cancel implements Adapter.
func (a *NetlifyAdapter) Cancel(ctx context.Context, externalID string) error {
	const op = "cancel"

	if !a.api.hasToken() {
		return missingCredential(NameNetlify, op)
	}

	return a.api.do(ctx, op, http.MethodPost, "/api/v1/deploys/"+externalID+"/cancel", struct{}{}, nil, a.config.cancelTimeout())
}

var _ Adapter = (*NetlifyAdapter)(nil)
