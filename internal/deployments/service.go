package deployments

import (
	"context"
	"fmt"
	"time"

	"github.com/autocrea/autocrea/internal/git"
	"github.com/autocrea/autocrea/internal/projects"
	"github.com/autocrea/autocrea/internal/providers"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Config struct {
	// MaxRefreshAttempts is how many consecutive failed status refreshes
	// a building deployment survives before it is marked failed.
	MaxRefreshAttempts int
}

const defaultMaxRefreshAttempts = 5

func (c Config) maxRefreshAttempts() int {
	if c.MaxRefreshAttempts <= 0 {
		return defaultMaxRefreshAttempts
	}
	return c.MaxRefreshAttempts
}

// Service owns the deployment state machine. Every mutation of a
// deployment record goes through here; adapters and handlers never write
// records themselves.
type Service struct {
	deployments *Repository

	projectsSvc *projects.Service
	gitSvc      *git.Service
	registry    *providers.Registry

	config Config
	locks  *recordLocks
	logger *zap.Logger

	now func() time.Time
}

func NewService(
	deployments *Repository,
	projectsSvc *projects.Service,
	gitSvc *git.Service,
	registry *providers.Registry,
	config Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		deployments: deployments,

		projectsSvc: projectsSvc,
		gitSvc:      gitSvc,
		registry:    registry,

		config: config,
		locks:  newRecordLocks(),
		logger: logger,

		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the request, persists a pending record, and drives the
// provider's create call. The record is always persisted, even when the
// provider rejects the deployment immediately, so failed attempts stay
// auditable; the returned record's status is building or failed, never
// pending.
func (s *Service) Create(ctx context.Context, req DeploymentRequest) (*Deployment, error) {
	return s.create(ctx, req, nil)
}

func (s *Service) create(ctx context.Context, req DeploymentRequest, rollbackOf *uuid.UUID) (*Deployment, error) {
	logger := s.logger.With(
		zap.String("project_id", req.ProjectID.String()),
		zap.String("provider", string(req.Provider)),
	)

	if err := req.Validate(); err != nil {
		logger.Warn("rejecting deployment request", zap.Error(err))
		return nil, err
	}

	project, err := s.projectsSvc.Get(ctx, req.ProjectID)
	if err != nil {
		logger.Error("failed to get project for deployment", zap.Error(err))
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.Source != nil {
		if srcErr := s.gitSvc.ValidateSource(ctx, req.Source.RepoURL, req.Source.Branch); srcErr != nil {
			logger.Warn("source validation failed", zap.Error(srcErr))
			return nil, fmt.Errorf("%w: %w", ErrValidation, srcErr)
		}
	}

	adapter, err := s.registry.Get(providers.Name(req.Provider))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	deployment, err := s.deployments.Create(ctx, &DeploymentDraft{
		ProjectID:       req.ProjectID,
		UserID:          req.UserID,
		Provider:        req.Provider,
		Environment:     req.Environment,
		Source:          req.Source,
		BuildCommand:    req.BuildCommand,
		OutputDirectory: req.OutputDirectory,
		EnvVars:         req.EnvVars,
		Domain:          req.Domain,
		Status:          StatusPending,
		RollbackOf:      rollbackOf,
	})
	if err != nil {
		logger.Error("failed to persist deployment", zap.Error(err))
		return nil, err
	}

	logger = logger.With(zap.String("deployment_id", deployment.ID.String()))
	logger.Info("deployment created, contacting provider")

	result, createErr := adapter.Create(ctx, providers.CreateConfig{
		ProjectName:     project.Name,
		RepoURL:         sourceURL(req.Source),
		Branch:          sourceBranch(req.Source),
		BuildCommand:    req.BuildCommand,
		OutputDirectory: req.OutputDirectory,
		EnvVars:         deployment.EnvMap(),
		Environment:     string(req.Environment),
		Domain:          req.Domain,
	})

	unlock := s.locks.Lock(deployment.ID)
	defer unlock()

	// A Cancel may have landed while the provider round trip was in
	// flight. A terminal record must stay exactly as it is, so the
	// provider's answer only ever applies to a still-pending record.
	current, err := s.deployments.GetByID(ctx, deployment.ID)
	if err != nil {
		return nil, err
	}

	if current.Terminal() {
		logger.Info("deployment reached a terminal state during the provider call",
			zap.String("status", string(current.Status)))

		if createErr == nil && result.ExternalID != "" {
			s.cancelOrphan(ctx, adapter, result.ExternalID, logger)
		}

		return current, nil
	}

	if createErr != nil {
		logger.Error("provider rejected deployment", zap.Error(createErr))

		return s.deployments.Update(ctx, deployment.ID, func(d *Deployment) error {
			d.MarkFailed(createErr.Error(), string(providers.ErrorKind(createErr)))
			// Keep whatever resource the provider created before failing.
			d.ExternalID = providers.PartialID(createErr)
			return nil
		})
	}

	logger.Info("provider accepted deployment", zap.String("external_id", result.ExternalID))

	return s.deployments.Update(ctx, deployment.ID, func(d *Deployment) error {
		d.MarkBuilding(result.ExternalID, result.URL)
		return nil
	})
}

// cancelOrphan stops a provider deployment whose local record was
// cancelled before the create call returned. Best effort: the record is
// already terminal either way.
func (s *Service) cancelOrphan(ctx context.Context, adapter providers.Adapter, externalID string, logger *zap.Logger) {
	if err := adapter.Cancel(ctx, externalID); err != nil && !providers.IsUnsupported(err) {
		logger.Warn("failed to cancel orphaned provider deployment",
			zap.String("external_id", externalID), zap.Error(err))
	}
}

// Get retrieves a deployment by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Deployment, error) {
	s.logger.Debug("getting deployment", zap.String("id", id.String()))

	deployment, err := s.deployments.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get deployment", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	return deployment, nil
}

// ListByProject retrieves deployments for a project, newest first.
func (s *Service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]Deployment, error) {
	result, err := s.deployments.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("failed to list deployments", zap.Error(err))
		return nil, err
	}

	return result, nil
}

// ListByUser retrieves deployments created by a user, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Deployment, error) {
	result, err := s.deployments.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list deployments", zap.Error(err))
		return nil, err
	}

	return result, nil
}

// ListByStatus retrieves deployments for a project filtered by status,
// newest first.
func (s *Service) ListByStatus(ctx context.Context, projectID uuid.UUID, status Status) ([]Deployment, error) {
	result, err := s.deployments.List(ctx, func(d *Deployment) bool {
		return d.ProjectID == projectID && d.Status == status
	})
	if err != nil {
		s.logger.Error("failed to list deployments", zap.Error(err))
		return nil, err
	}

	// Primary keys are v7 uuids, so the scan yields oldest first.
	lo.Reverse(result)

	return result, nil
}

// ListActiveIDs returns every deployment still in flight.
func (s *Service) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.deployments.ListActiveIDs(ctx)
}

// Refresh asks the provider for the deployment's current status and
// persists the resulting transition. Terminal records are returned
// unchanged. A failing provider call does not fail the deployment until
// the bounded retry budget is exhausted; transient blips just leave the
// record as is for the next poll.
func (s *Service) Refresh(ctx context.Context, id uuid.UUID) (*Deployment, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	deployment, err := s.deployments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if deployment.Terminal() {
		return deployment, nil
	}

	// A record without an external id is still inside Create's provider
	// round trip; there is nothing to ask the provider about yet.
	if deployment.ExternalID == "" {
		return deployment, nil
	}

	logger := s.logger.With(
		zap.String("deployment_id", id.String()),
		zap.String("provider", string(deployment.Provider)),
		zap.String("external_id", deployment.ExternalID),
	)

	adapter, err := s.registry.Get(providers.Name(deployment.Provider))
	if err != nil {
		return nil, err
	}

	raw, statusErr := adapter.Status(ctx, deployment.ExternalID)
	if statusErr != nil {
		failures := deployment.PollFailures + 1
		if failures >= s.config.maxRefreshAttempts() {
			logger.Error("status refresh retries exhausted, failing deployment",
				zap.Int("attempts", failures), zap.Error(statusErr))

			return s.deployments.Update(ctx, id, func(d *Deployment) error {
				d.MarkFailed(
					fmt.Sprintf("status refresh timed out after %d attempts: %v", failures, statusErr),
					string(providers.KindTimeout),
				)
				return nil
			})
		}

		logger.Warn("status refresh failed, will retry",
			zap.Int("attempts", failures), zap.Error(statusErr))

		return s.deployments.Update(ctx, id, func(d *Deployment) error {
			d.PollFailures = failures
			return nil
		})
	}

	state := providers.Normalize(providers.Name(deployment.Provider), raw.Status)
	now := s.now()

	return s.deployments.Update(ctx, id, func(d *Deployment) error {
		d.PollFailures = 0

		if raw.URL != "" {
			d.URL = raw.URL
		}
		if raw.Logs != "" {
			d.BuildLogs = raw.Logs
		}

		switch state {
		case providers.StateSuccess:
			d.MarkDeployed(now)
			logger.Info("deployment succeeded", zap.String("url", d.URL))
		case providers.StateFailed:
			d.MarkFailed("provider reported a failed deployment: "+raw.Status, "provider_failed")
			logger.Warn("deployment failed", zap.String("raw_status", raw.Status))
		case providers.StateCancelled:
			d.MarkCancelled()
			logger.Info("deployment cancelled on provider side")
		case providers.StateBuilding:
			d.Status = StatusBuilding
		case providers.StatePending:
			// Leave the current status; an unknown raw value must never
			// regress or corrupt the state machine.
		}

		return nil
	})
}

// Cancel stops an in-flight deployment. Terminal records fail with
// ErrInvalidState. When the provider offers no cancellation endpoint the
// record is left untouched and ErrCancelUnsupported is returned; the
// deployment keeps running on the provider's side.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Deployment, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	deployment, err := s.deployments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if deployment.Terminal() {
		return nil, fmt.Errorf("%w: cannot cancel a %s deployment", ErrInvalidState, deployment.Status)
	}

	logger := s.logger.With(
		zap.String("deployment_id", id.String()),
		zap.String("provider", string(deployment.Provider)),
	)

	// Nothing exists provider-side yet; the record can be cancelled
	// locally.
	if deployment.ExternalID != "" {
		adapter, err := s.registry.Get(providers.Name(deployment.Provider))
		if err != nil {
			return nil, err
		}

		if cancelErr := adapter.Cancel(ctx, deployment.ExternalID); cancelErr != nil {
			if providers.IsUnsupported(cancelErr) {
				logger.Info("provider does not support cancellation")
				return nil, fmt.Errorf("%w: %s", ErrCancelUnsupported, deployment.Provider)
			}

			logger.Error("failed to cancel deployment", zap.Error(cancelErr))
			return nil, cancelErr
		}
	}

	logger.Info("deployment cancelled")

	return s.deployments.Update(ctx, id, func(d *Deployment) error {
		d.MarkCancelled()
		return nil
	})
}

// Rollback reproduces a previously successful deployment's configuration
// as a brand-new record. The original record is never mutated.
func (s *Service) Rollback(ctx context.Context, id uuid.UUID) (*Deployment, error) {
	original, err := s.deployments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if original.Status != StatusSuccess {
		return nil, fmt.Errorf("%w: can only roll back a successful deployment, not %s", ErrInvalidState, original.Status)
	}

	s.logger.Info("rolling back deployment",
		zap.String("deployment_id", id.String()),
		zap.String("project_id", original.ProjectID.String()))

	return s.create(ctx, original.Request(), &original.ID)
}

// AppendLogs appends build output to the deployment's log text.
func (s *Service) AppendLogs(ctx context.Context, id uuid.UUID, logs string) (*Deployment, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	return s.deployments.Update(ctx, id, func(d *Deployment) error {
		if d.BuildLogs == "" {
			d.BuildLogs = logs
			return nil
		}
		d.BuildLogs += "\n" + logs
		return nil
	})
}

func sourceURL(source *Source) string {
	if source == nil {
		return ""
	}
	return source.RepoURL
}

func sourceBranch(source *Source) string {
	if source == nil {
		return ""
	}
	return source.Branch
}
