package providers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RailwayAdapter speaks Railway's GraphQL API. Railway exposes no
// cancellation endpoint, so Cancel always fails with KindUnsupported.
type RailwayAdapter struct {
	api    *apiClient
	config Config
	logger *zap.Logger
}

func NewRailwayAdapter(config Config, logger *zap.Logger) *RailwayAdapter {
	return &RailwayAdapter{
		api:    newAPIClient(NameRailway, config.Railway, nil),
		config: config,
		logger: logger,
	}
}

const railwayDeployMutation = `
	mutation deployProject($input: DeployInput!) {
		deploy(input: $input) {
			id
			url
			status
		}
	}
`

const railwayDeploymentQuery = `
	query deployment($id: String!) {
		deployment(id: $id) {
			id
			url
			status
		}
	}
`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type railwayDeployment struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

type railwayResponse struct {
	Data struct {
		Deploy     *railwayDeployment `json:"deploy"`
		Deployment *railwayDeployment `json:"deployment"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// Name implements Adapter.
func (a *RailwayAdapter) Name() Name {
	return NameRailway
}

// Create implements Adapter.
func (a *RailwayAdapter) Create(ctx context.Context, config CreateConfig) (CreateResult, error) {
	const op = "create"

	if !a.api.hasToken() {
		return CreateResult{}, missingCredential(NameRailway, op)
	}

	body := graphqlRequest{
		Query: railwayDeployMutation,
		Variables: map[string]any{
			"input": map[string]any{
				"projectName":  config.ProjectName,
				"repo":         config.RepoURL,
				"branch":       branchOrMain(config.Branch),
				"buildCommand": config.BuildCommand,
				"environment":  config.Environment,
				"envVars":      config.EnvVars,
			},
		},
	}

	resp, err := a.query(ctx, op, body, a.config.createTimeout())
	if err != nil {
		return CreateResult{}, err
	}

	if resp.Data.Deploy == nil {
		return CreateResult{}, rejected(NameRailway, op, "deploy mutation returned no deployment")
	}

	a.logger.Debug("railway deployment created", zap.String("external_id", resp.Data.Deploy.ID))

	return CreateResult{
		ExternalID: resp.Data.Deploy.ID,
		URL:        resp.Data.Deploy.URL,
	}, nil
}

// Status implements Adapter.
func (a *RailwayAdapter) Status(ctx context.Context, externalID string) (RawStatus, error) {
	const op = "status"

	if !a.api.hasToken() {
		return RawStatus{}, missingCredential(NameRailway, op)
	}

	body := graphqlRequest{
		Query:     railwayDeploymentQuery,
		Variables: map[string]any{"id": externalID},
	}

	resp, err := a.query(ctx, op, body, a.config.statusTimeout())
	if err != nil {
		return RawStatus{}, err
	}

	if resp.Data.Deployment == nil {
		return RawStatus{}, rejected(NameRailway, op, "deployment not found: "+externalID)
	}

	return RawStatus{
		Status: resp.Data.Deployment.Status,
		URL:    resp.Data.Deployment.URL,
	}, nil
}

// Cancel implements Adapter.
func (a *RailwayAdapter) Cancel(_ context.Context, _ string) error {
	return unsupported(NameRailway, "cancel")
}

// query performs one GraphQL round trip. GraphQL errors arrive in a 200
// response, so they are checked after transport succeeds.
func (a *RailwayAdapter) query(ctx context.Context, op string, body graphqlRequest, timeout time.Duration) (railwayResponse, error) {
	var resp railwayResponse
	if err := a.api.do(ctx, op, http.MethodPost, "/graphql/v2", body, &resp, timeout); err != nil {
		return railwayResponse{}, err
	}

	if len(resp.Errors) > 0 {
		return railwayResponse{}, rejected(NameRailway, op, resp.Errors[0].Message)
	}

	return resp, nil
}

var _ Adapter = (*RailwayAdapter)(nil)
