package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func netlifyConfig(baseURL string) Config {
	return Config{
		Netlify: ProviderConfig{Token: "test-token", BaseURL: baseURL},
	}
}

func TestNetlifyAdapter_Create_TwoStep(t *testing.T) {
	var sitesCalled, deploysCalled bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/sites":
			sitesCalled = true
			require.Equal(t, http.MethodPost, r.Method)

			var body netlifyCreateSiteRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "my-site", body.Name)
			assert.Equal(t, "github", body.Repo.Provider)
			assert.Equal(t, "main", body.Repo.Branch)

			_ = json.NewEncoder(w).Encode(netlifySite{ID: "site_1", URL: "https://my-site.netlify.app"})
		case "/api/v1/sites/site_1/deploys":
			deploysCalled = true
			require.Equal(t, http.MethodPost, r.Method)

			_ = json.NewEncoder(w).Encode(netlifyDeploy{ID: "deploy_1", State: "new"})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	adapter := NewNetlifyAdapter(netlifyConfig(server.URL), zap.NewNop())

	result, err := adapter.Create(context.Background(), CreateConfig{
		ProjectName: "my-site",
		RepoURL:     "github.com/acme/my-site",
	})
	require.NoError(t, err)

	assert.True(t, sitesCalled)
	assert.True(t, deploysCalled)
	assert.Equal(t, "deploy_1", result.ExternalID)
	assert.Equal(t, "https://my-site.netlify.app", result.URL)
}

func TestNetlifyAdapter_Create_RequiresRepoURL(t *testing.T) {
	adapter := NewNetlifyAdapter(netlifyConfig("http://unused"), zap.NewNop())

	_, err := adapter.Create(context.Background(), CreateConfig{ProjectName: "my-site"})
	require.Error(t, err)

	assert.Equal(t, KindRejected, ErrorKind(err))
	assert.Contains(t, err.Error(), "git url is required")
}

func TestNetlifyAdapter_Create_DeployTriggerFailureKeepsSiteID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/sites":
			_ = json.NewEncoder(w).Encode(netlifySite{ID: "site_1"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"build image unavailable"}`))
		}
	}))
	defer server.Close()

	adapter := NewNetlifyAdapter(netlifyConfig(server.URL), zap.NewNop())

	_, err := adapter.Create(context.Background(), CreateConfig{
		ProjectName: "my-site",
		RepoURL:     "github.com/acme/my-site",
	})
	require.Error(t, err)

	assert.Equal(t, "site_1", PartialID(err))
	assert.Contains(t, err.Error(), "site created but deploy trigger failed")
	assert.Contains(t, err.Error(), "build image unavailable")
}

func TestNetlifyAdapter_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/deploys/deploy_1", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"id": "deploy_1",
			"state": "ready",
			"deploy_ssl_url": "https://my-site.netlify.app",
			"summary": {"messages": ["built in 20s", "published"]}
		}`))
	}))
	defer server.Close()

	adapter := NewNetlifyAdapter(netlifyConfig(server.URL), zap.NewNop())

	status, err := adapter.Status(context.Background(), "deploy_1")
	require.NoError(t, err)

	assert.Equal(t, "ready", status.Status)
	assert.Equal(t, "https://my-site.netlify.app", status.URL)
	assert.Equal(t, "built in 20s\npublished", status.Logs)
}

func TestNetlifyAdapter_Cancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/deploys/deploy_1/cancel", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	adapter := NewNetlifyAdapter(netlifyConfig(server.URL), zap.NewNop())

	require.NoError(t, adapter.Cancel(context.Background(), "deploy_1"))
}

func TestNetlifyAdapter_MissingToken(t *testing.T) {
	adapter := NewNetlifyAdapter(Config{}, zap.NewNop())

	_, err := adapter.Status(context.Background(), "deploy_1")
	assert.Equal(t, KindMissingCredential, ErrorKind(err))

	err = adapter.Cancel(context.Background(), "deploy_1")
	assert.Equal(t, KindMissingCredential, ErrorKind(err))
}
