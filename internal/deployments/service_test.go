package deployments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/autocrea/autocrea/internal/git"
	"github.com/autocrea/autocrea/internal/projects"
	"github.com/autocrea/autocrea/internal/providers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeVercel is a minimal in-process Vercel API: one deployment whose
// ready state (or outright status-endpoint failure) the test controls.
type fakeVercel struct {
	mu sync.Mutex

	readyState  string
	statusCode  int
	cancelCalls int
}

func (f *fakeVercel) setReadyState(state string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readyState = state
}

func (f *fakeVercel) setStatusCode(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCode = code
}

func (f *fakeVercel) cancelled() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelCalls
}

func (f *fakeVercel) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v13/deployments":
			_ = json.NewEncoder(w).Encode(map[string]string{
				"id":         "dpl_123",
				"url":        "my-app.vercel.app",
				"readyState": "QUEUED",
			})
		case r.Method == http.MethodGet && r.URL.Path == "/v13/deployments/dpl_123":
			if f.statusCode != 0 {
				w.WriteHeader(f.statusCode)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{
				"id":         "dpl_123",
				"url":        "my-app.vercel.app",
				"readyState": f.readyState,
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/v13/deployments/dpl_123/cancel":
			f.cancelCalls++
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newTestService(t *testing.T, providerCfg providers.Config, config Config) (*Service, uuid.UUID) {
	t.Helper()

	db := newTestDB(t)
	logger := zap.NewNop()

	projectsSvc := projects.NewService(projects.NewRepository(db), logger)
	project, err := projectsSvc.Create(context.Background(), &projects.ProjectDraft{
		Name:    "demo-app",
		OwnerID: "user-1",
	})
	require.NoError(t, err)

	registry := providers.NewRegistry(
		providers.NewVercelAdapter(providerCfg, logger),
		providers.NewNetlifyAdapter(providerCfg, logger),
		providers.NewRailwayAdapter(providerCfg, logger),
	)

	gitSvc := git.NewService(git.Config{}, logger)
	service := NewService(NewRepository(db), projectsSvc, gitSvc, registry, config, logger)

	return service, project.ID
}

func vercelTestConfig(baseURL string) providers.Config {
	return providers.Config{
		Vercel: providers.ProviderConfig{Token: "test-token", BaseURL: baseURL},
	}
}

func buildingRequest(projectID uuid.UUID) DeploymentRequest {
	return DeploymentRequest{
		ProjectID:   projectID,
		UserID:      "user-1",
		Provider:    ProviderVercel,
		Environment: EnvironmentProduction,
		Source:      &Source{RepoURL: "github.com/acme/demo-app", Branch: "main"},
		EnvVars:     []EnvVar{{Key: "API_KEY", Value: "secret"}},
	}
}

func TestService_Create(t *testing.T) {
	fake := &fakeVercel{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	service, projectID := newTestService(t, vercelTestConfig(server.URL), Config{})

	deployment, err := service.Create(context.Background(), buildingRequest(projectID))
	require.NoError(t, err)

	assert.Equal(t, StatusBuilding, deployment.Status)
	assert.Equal(t, "dpl_123", deployment.ExternalID)
	assert.Equal(t, "https://my-app.vercel.app", deployment.URL)
	assert.Empty(t, deployment.Error)
	assert.Nil(t, deployment.DeployedAt)

	// The record must be retrievable and listed as active.
	got, err := service.Get(context.Background(), deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusBuilding, got.Status)

	active, err := service.ListActiveIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{deployment.ID}, active)
}

func TestService_Create_MissingCredentialPersistsFailedRecord(t *testing.T) {
	service, projectID := newTestService(t, providers.Config{}, Config{})

	deployment, err := service.Create(context.Background(), buildingRequest(projectID))
	require.NoError(t, err, "a provider failure still yields a persisted record")

	assert.Equal(t, StatusFailed, deployment.Status)
	assert.Contains(t, deployment.Error, "credential")
	assert.Equal(t, string(providers.KindMissingCredential), deployment.ErrorCode)
	assert.Empty(t, deployment.ExternalID)

	got, err := service.Get(context.Background(), deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
}

func TestService_Create_UnknownProject(t *testing.T) {
	service, _ := newTestService(t, providers.Config{}, Config{})

	_, err := service.Create(context.Background(), buildingRequest(uuid.New()))
	assert.ErrorIs(t, err, projects.ErrNotFound)
}

func TestService_Create_ValidationErrors(t *testing.T) {
	service, projectID := newTestService(t, providers.Config{}, Config{})

	req := buildingRequest(projectID)
	req.Provider = "heroku"
	_, err := service.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)

	req = buildingRequest(projectID)
	req.Environment = "staging"
	_, err = service.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)

	req = buildingRequest(projectID)
	req.EnvVars = []EnvVar{{Key: "", Value: "x"}}
	_, err = service.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Refresh_SuccessStampsDeployedAtOnce(t *testing.T) {
	fake := &fakeVercel{readyState: "BUILDING"}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	service, projectID := newTestService(t, vercelTestConfig(server.URL), Config{})
	ctx := context.Background()

	deployment, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)

	refreshed, err := service.Refresh(ctx, deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusBuilding, refreshed.Status)
	assert.Nil(t, refreshed.DeployedAt)

	fake.setReadyState("READY")

	refreshed, err = service.Refresh(ctx, deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, refreshed.Status)
	require.NotNil(t, refreshed.DeployedAt)

	deployedAt := *refreshed.DeployedAt

	// Terminal records are not refreshed again: the status endpoint could
	// now report anything without touching the record.
	fake.setReadyState("ERROR")

	again, err := service.Refresh(ctx, deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, again.Status)
	require.NotNil(t, again.DeployedAt)
	assert.Equal(t, deployedAt, *again.DeployedAt)

	active, err := service.ListActiveIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestService_Refresh_BoundedRetryBudget(t *testing.T) {
	fake := &fakeVercel{readyState: "BUILDING"}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	service, projectID := newTestService(t, vercelTestConfig(server.URL), Config{MaxRefreshAttempts: 2})
	ctx := context.Background()

	deployment, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)

	fake.setStatusCode(http.StatusInternalServerError)

	refreshed, err := service.Refresh(ctx, deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusBuilding, refreshed.Status, "one failed poll is not fatal")
	assert.Equal(t, 1, refreshed.PollFailures)

	refreshed, err = service.Refresh(ctx, deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, refreshed.Status)
	assert.Equal(t, string(providers.KindTimeout), refreshed.ErrorCode)
	assert.Contains(t, refreshed.Error, "2 attempts")
}

func TestService_Refresh_RecoveryResetsFailureCount(t *testing.T) {
	fake := &fakeVercel{readyState: "BUILDING"}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	service, projectID := newTestService(t, vercelTestConfig(server.URL), Config{MaxRefreshAttempts: 3})
	ctx := context.Background()

	deployment, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)

	fake.setStatusCode(http.StatusInternalServerError)
	refreshed, err := service.Refresh(ctx, deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.PollFailures)

	fake.setStatusCode(0)
	refreshed, err = service.Refresh(ctx, deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, refreshed.PollFailures)
	assert.Equal(t, StatusBuilding, refreshed.Status)
}

func TestService_Cancel(t *testing.T) {
	fake := &fakeVercel{readyState: "BUILDING"}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	service, projectID := newTestService(t, vercelTestConfig(server.URL), Config{})
	ctx := context.Background()

	deployment, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)

	cancelled, err := service.Cancel(ctx, deployment.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, 1, fake.cancelled())
}

func TestService_Cancel_TerminalIsInvalid(t *testing.T) {
	fake := &fakeVercel{readyState: "READY"}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	service, projectID := newTestService(t, vercelTestConfig(server.URL), Config{})
	ctx := context.Background()

	deployment, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)

	_, err = service.Refresh(ctx, deployment.ID)
	require.NoError(t, err)

	_, err = service.Cancel(ctx, deployment.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	// The failed cancel must not have mutated the record.
	got, err := service.Get(ctx, deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Equal(t, 0, fake.cancelled())
}

func TestService_Cancel_UnsupportedLeavesRecordUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"deploy":{"id":"rw_1","url":"","status":"QUEUED"}}}`))
	}))
	defer server.Close()

	service, projectID := newTestService(t, providers.Config{
		Railway: providers.ProviderConfig{Token: "test-token", BaseURL: server.URL},
	}, Config{})
	ctx := context.Background()

	req := buildingRequest(projectID)
	req.Provider = ProviderRailway

	deployment, err := service.Create(ctx, req)
	require.NoError(t, err)
	require.Equal(t, StatusBuilding, deployment.Status)

	_, err = service.Cancel(ctx, deployment.ID)
	assert.ErrorIs(t, err, ErrCancelUnsupported)

	got, err := service.Get(ctx, deployment.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusBuilding, got.Status, "the deployment keeps running on the provider")
}

func TestService_Cancel_DuringProviderCreateStaysCancelled(t *testing.T) {
	fake := &fakeVercel{}

	createStarted := make(chan struct{})
	createRelease := make(chan struct{})

	// Hold the provider's create endpoint open so a cancel can land while
	// the record is still pending.
	var once sync.Once
	inner := fake.handler()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/v13/deployments" {
			once.Do(func() { close(createStarted) })
			<-createRelease
		}
		inner.ServeHTTP(w, r)
	}))
	defer server.Close()

	service, projectID := newTestService(t, vercelTestConfig(server.URL), Config{})
	ctx := context.Background()

	var (
		created   *Deployment
		createErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		created, createErr = service.Create(ctx, buildingRequest(projectID))
	}()

	<-createStarted

	pending, err := service.ListByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, StatusPending, pending[0].Status)

	cancelled, err := service.Cancel(ctx, pending[0].ID)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, cancelled.Status)

	close(createRelease)
	<-done

	// The provider's late answer must not reopen the terminal record.
	require.NoError(t, createErr)
	assert.Equal(t, StatusCancelled, created.Status)
	assert.Empty(t, created.ExternalID)

	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, cancelled.UpdatedAt, got.UpdatedAt)

	active, err := service.ListActiveIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	// The now-orphaned provider deployment was cancelled best effort.
	assert.Equal(t, 1, fake.cancelled())
}

func TestService_ListByStatus(t *testing.T) {
	fake := &fakeVercel{readyState: "READY"}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	service, projectID := newTestService(t, vercelTestConfig(server.URL), Config{})
	ctx := context.Background()

	first, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	second, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)

	_, err = service.Cancel(ctx, second.ID)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	third, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)

	building, err := service.ListByStatus(ctx, projectID, StatusBuilding)
	require.NoError(t, err)
	require.Len(t, building, 2)
	assert.Equal(t, third.ID, building[0].ID, "newest first")
	assert.Equal(t, first.ID, building[1].ID)

	cancelled, err := service.ListByStatus(ctx, projectID, StatusCancelled)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, second.ID, cancelled[0].ID)

	// Records from other projects never leak into the result.
	none, err := service.ListByStatus(ctx, uuid.New(), StatusBuilding)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_Rollback(t *testing.T) {
	fake := &fakeVercel{readyState: "READY"}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	service, projectID := newTestService(t, vercelTestConfig(server.URL), Config{})
	ctx := context.Background()

	original, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)

	original, err = service.Refresh(ctx, original.ID)
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, original.Status)

	rollback, err := service.Rollback(ctx, original.ID)
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, rollback.ID, "rollback spawns a new record")
	require.NotNil(t, rollback.RollbackOf)
	assert.Equal(t, original.ID, *rollback.RollbackOf)
	assert.Equal(t, StatusBuilding, rollback.Status)
	assert.Equal(t, original.Provider, rollback.Provider)
	assert.Equal(t, original.EnvVars, rollback.EnvVars)
	assert.Equal(t, original.Source, rollback.Source)

	// The original record must be untouched.
	got, err := service.Get(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Equal(t, original.UpdatedAt, got.UpdatedAt)
}

func TestService_Rollback_RequiresSuccess(t *testing.T) {
	fake := &fakeVercel{readyState: "BUILDING"}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	service, projectID := newTestService(t, vercelTestConfig(server.URL), Config{})
	ctx := context.Background()

	deployment, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)

	_, err = service.Rollback(ctx, deployment.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_AppendLogs(t *testing.T) {
	fake := &fakeVercel{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	service, projectID := newTestService(t, vercelTestConfig(server.URL), Config{})
	ctx := context.Background()

	deployment, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)

	updated, err := service.AppendLogs(ctx, deployment.ID, "cloning repository")
	require.NoError(t, err)
	assert.Equal(t, "cloning repository", updated.BuildLogs)

	updated, err = service.AppendLogs(ctx, deployment.ID, "installing dependencies")
	require.NoError(t, err)
	assert.Equal(t, "cloning repository\ninstalling dependencies", updated.BuildLogs)
}

func TestService_Cleanup(t *testing.T) {
	fake := &fakeVercel{readyState: "READY"}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	service, projectID := newTestService(t, vercelTestConfig(server.URL), Config{})
	ctx := context.Background()

	oldSuccess, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)
	_, err = service.Refresh(ctx, oldSuccess.ID)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	newSuccess, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)
	_, err = service.Refresh(ctx, newSuccess.ID)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	inFlight, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)

	deleted, err := service.Cleanup(ctx, projectID, time.Now().Add(time.Hour), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	// The newest successful record survives as a rollback target; the
	// in-flight record is never touched by cleanup.
	_, err = service.Get(ctx, oldSuccess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.Get(ctx, newSuccess.ID)
	assert.NoError(t, err)

	_, err = service.Get(ctx, inFlight.ID)
	assert.NoError(t, err)
}

func TestService_Stats(t *testing.T) {
	fake := &fakeVercel{readyState: "READY"}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	service, projectID := newTestService(t, vercelTestConfig(server.URL), Config{})
	ctx := context.Background()

	first, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)
	_, err = service.Refresh(ctx, first.ID)
	require.NoError(t, err)

	second, err := service.Create(ctx, buildingRequest(projectID))
	require.NoError(t, err)
	_, err = service.Cancel(ctx, second.ID)
	require.NoError(t, err)

	stats, err := service.Stats(ctx, projectID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, map[Status]int{StatusSuccess: 1, StatusCancelled: 1}, stats.ByStatus)
	assert.Equal(t, map[Provider]int{ProviderVercel: 2}, stats.ByProvider)
	assert.Equal(t, map[Environment]int{EnvironmentProduction: 2}, stats.ByEnvironment)
	assert.InDelta(t, 0.5, stats.SuccessRate, 0.001)
	assert.NotNil(t, stats.LastSuccess)

	userStats, err := service.StatsByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, stats.Total, userStats.Total)

	empty, err := service.StatsByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.SuccessRate)
}
