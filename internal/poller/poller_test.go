package poller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/autocrea/autocrea/internal/deployments"
	"github.com/autocrea/autocrea/internal/git"
	"github.com/autocrea/autocrea/internal/projects"
	"github.com/autocrea/autocrea/internal/providers"
	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// The poller owns no state machine logic of its own; this exercises the
// full loop: an active record is picked up from the index, refreshed
// against the provider, and dropped from the active set once terminal.
func TestPoller_DrivesDeploymentToCompletion(t *testing.T) {
	var (
		mu         sync.Mutex
		readyState = "BUILDING"
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		switch {
		case r.Method == http.MethodPost:
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "dpl_123", "readyState": "QUEUED"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "dpl_123", "readyState": readyState})
		}
	}))
	defer server.Close()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := zap.NewNop()
	ctx := context.Background()

	projectsSvc := projects.NewService(projects.NewRepository(db), logger)
	project, err := projectsSvc.Create(ctx, &projects.ProjectDraft{Name: "demo-app", OwnerID: "user-1"})
	require.NoError(t, err)

	providerCfg := providers.Config{
		Vercel: providers.ProviderConfig{Token: "test-token", BaseURL: server.URL},
	}
	registry := providers.NewRegistry(
		providers.NewVercelAdapter(providerCfg, logger),
		providers.NewNetlifyAdapter(providerCfg, logger),
		providers.NewRailwayAdapter(providerCfg, logger),
	)

	deploymentsSvc := deployments.NewService(
		deployments.NewRepository(db),
		projectsSvc,
		git.NewService(git.Config{}, logger),
		registry,
		deployments.Config{},
		logger,
	)

	deployment, err := deploymentsSvc.Create(ctx, deployments.DeploymentRequest{
		ProjectID:   project.ID,
		UserID:      "user-1",
		Provider:    deployments.ProviderVercel,
		Environment: deployments.EnvironmentProduction,
	})
	require.NoError(t, err)
	require.Equal(t, deployments.StatusBuilding, deployment.Status)

	poller := New(deploymentsSvc, Config{Interval: 10 * time.Millisecond, Workers: 2}, logger)
	poller.Start()
	defer poller.Stop()

	// While the provider reports BUILDING the record must stay active.
	require.Eventually(t, func() bool {
		got, getErr := deploymentsSvc.Get(ctx, deployment.ID)
		return getErr == nil && got.Status == deployments.StatusBuilding
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	readyState = "READY"
	mu.Unlock()

	require.Eventually(t, func() bool {
		got, getErr := deploymentsSvc.Get(ctx, deployment.ID)
		return getErr == nil && got.Status == deployments.StatusSuccess
	}, 2*time.Second, 10*time.Millisecond)

	got, err := deploymentsSvc.Get(ctx, deployment.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DeployedAt)

	active, err := deploymentsSvc.ListActiveIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, defaultInterval, cfg.interval())
	assert.Equal(t, defaultWorkers, cfg.workers())

	cfg = Config{Interval: time.Minute, Workers: 8}
	assert.Equal(t, time.Minute, cfg.interval())
	assert.Equal(t, 8, cfg.workers())
}
