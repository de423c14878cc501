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

func railwayConfig(baseURL string) Config {
	return Config{
		Railway: ProviderConfig{Token: "test-token", BaseURL: baseURL},
	}
}

func TestRailwayAdapter_Create(t *testing.T) {
	var gotBody graphqlRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/graphql/v2", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{"data":{"deploy":{"id":"rw_1","url":"https://my-app.up.railway.app","status":"QUEUED"}}}`))
	}))
	defer server.Close()

	adapter := NewRailwayAdapter(railwayConfig(server.URL), zap.NewNop())

	result, err := adapter.Create(context.Background(), CreateConfig{
		ProjectName: "my-app",
		RepoURL:     "github.com/acme/my-app",
		Branch:      "develop",
		Environment: "production",
	})
	require.NoError(t, err)

	assert.Equal(t, "rw_1", result.ExternalID)
	assert.Equal(t, "https://my-app.up.railway.app", result.URL)

	assert.Contains(t, gotBody.Query, "mutation deployProject")
	input, ok := gotBody.Variables["input"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "my-app", input["projectName"])
	assert.Equal(t, "develop", input["branch"])
}

func TestRailwayAdapter_Create_GraphQLErrorIn200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{},"errors":[{"message":"project quota exceeded"}]}`))
	}))
	defer server.Close()

	adapter := NewRailwayAdapter(railwayConfig(server.URL), zap.NewNop())

	_, err := adapter.Create(context.Background(), CreateConfig{ProjectName: "my-app"})
	require.Error(t, err)

	assert.Equal(t, KindRejected, ErrorKind(err))
	assert.Contains(t, err.Error(), "project quota exceeded")
}

func TestRailwayAdapter_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body.Query, "query deployment")
		assert.Equal(t, "rw_1", body.Variables["id"])

		_, _ = w.Write([]byte(`{"data":{"deployment":{"id":"rw_1","url":"https://my-app.up.railway.app","status":"SUCCESS"}}}`))
	}))
	defer server.Close()

	adapter := NewRailwayAdapter(railwayConfig(server.URL), zap.NewNop())

	status, err := adapter.Status(context.Background(), "rw_1")
	require.NoError(t, err)

	assert.Equal(t, "SUCCESS", status.Status)
	assert.Equal(t, "https://my-app.up.railway.app", status.URL)
}

func TestRailwayAdapter_Status_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	adapter := NewRailwayAdapter(railwayConfig(server.URL), zap.NewNop())

	_, err := adapter.Status(context.Background(), "rw_missing")
	require.Error(t, err)

	assert.Equal(t, KindRejected, ErrorKind(err))
	assert.Contains(t, err.Error(), "deployment not found")
}

func TestRailwayAdapter_Cancel_Unsupported(t *testing.T) {
	adapter := NewRailwayAdapter(railwayConfig("http://unused"), zap.NewNop())

	err := adapter.Cancel(context.Background(), "rw_1")
	require.Error(t, err)

	assert.True(t, IsUnsupported(err))
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry(
		NewVercelAdapter(Config{}, zap.NewNop()),
		NewNetlifyAdapter(Config{}, zap.NewNop()),
		NewRailwayAdapter(Config{}, zap.NewNop()),
	)

	for _, name := range []Name{NameVercel, NameNetlify, NameRailway} {
		adapter, err := registry.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, adapter.Name())
		assert.True(t, registry.Supported(name))
	}

	_, err := registry.Get("heroku")
	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.False(t, registry.Supported("heroku"))
}
