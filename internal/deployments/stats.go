package deployments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Stats aggregates a set of deployment records.
type Stats struct {
	Total         int                 `json:"total"`
	ByStatus      map[Status]int      `json:"by_status"`
	ByProvider    map[Provider]int    `json:"by_provider"`
	ByEnvironment map[Environment]int `json:"by_environment"`
	SuccessRate   float64             `json:"success_rate"`
	LastSuccess   *time.Time          `json:"last_success,omitempty"`
}

// Stats summarizes every deployment ever recorded for a project.
func (s *Service) Stats(ctx context.Context, projectID uuid.UUID) (*Stats, error) {
	all, err := s.deployments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return newStats(all), nil
}

// StatsByUser summarizes every deployment a user has created.
func (s *Service) StatsByUser(ctx context.Context, userID string) (*Stats, error) {
	all, err := s.deployments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return newStats(all), nil
}

func newStats(all []Deployment) *Stats {
	stats := &Stats{
		Total:         len(all),
		ByStatus:      lo.CountValuesBy(all, func(d Deployment) Status { return d.Status }),
		ByProvider:    lo.CountValuesBy(all, func(d Deployment) Provider { return d.Provider }),
		ByEnvironment: lo.CountValuesBy(all, func(d Deployment) Environment { return d.Environment }),
	}

	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.ByStatus[StatusSuccess]) / float64(stats.Total)
	}

	succeeded := lo.Filter(all, func(d Deployment, _ int) bool {
		return d.Status == StatusSuccess && d.DeployedAt != nil
	})
	if len(succeeded) > 0 {
		last := lo.MaxBy(succeeded, func(a, b Deployment) bool {
			return a.DeployedAt.After(*b.DeployedAt)
		})
		stats.LastSuccess = last.DeployedAt
	}

	return stats
}

// Cleanup deletes a project's terminal deployment records created before
// the cutoff. The most recent keepSuccessful successful records survive
// regardless of age so rollback targets are never swept away. In-flight
// records are never touched.
func (s *Service) Cleanup(ctx context.Context, projectID uuid.UUID, before time.Time, keepSuccessful int) (int, error) {
	all, err := s.deployments.ListByProject(ctx, projectID)
	if err != nil {
		return 0, err
	}

	kept := 0
	deleted := 0

	// ListByProject is newest first, so the first successful records seen
	// are the ones to keep.
	for _, d := range all {
		if d.Status == StatusSuccess && kept < keepSuccessful {
			kept++
			continue
		}

		if !d.Terminal() || !d.CreatedAt.Before(before) {
			continue
		}

		if err := s.deployments.Delete(ctx, d.ID); err != nil {
			s.logger.Error("failed to delete deployment during cleanup",
				zap.String("deployment_id", d.ID.String()), zap.Error(err))
			return deleted, err
		}
		deleted++
	}

	s.logger.Info("cleaned up old deployments",
		zap.String("project_id", projectID.String()), zap.Int("deleted", deleted))

	return deleted, nil
}
