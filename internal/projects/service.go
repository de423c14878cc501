package projects

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	projects *Repository

	logger *zap.Logger
}

func NewService(projects *Repository, logger *zap.Logger) *Service {
	return &Service{
		projects: projects,
		logger:   logger,
	}
}

// Create registers a new project.
func (s *Service) Create(ctx context.Context, draft *ProjectDraft) (*Project, error) {
	s.logger.Info("creating project", zap.String("name", draft.Name))

	project, err := s.projects.Create(ctx, draft)
	if err != nil {
		s.logger.Error("failed to create project", zap.Error(err))
		return nil, err
	}

	s.logger.Info("project created", zap.String("id", project.ID.String()))
	return project, nil
}

// Get retrieves a project by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	s.logger.Debug("getting project", zap.String("id", id.String()))

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get project", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	return project, nil
}

// ListByOwner retrieves all projects owned by a user.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Project, error) {
	s.logger.Debug("listing projects", zap.String("owner_id", ownerID))

	result, err := s.projects.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list projects", zap.Error(err))
		return nil, err
	}

	return result, nil
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("deleting project", zap.String("id", id.String()))

	if err := s.projects.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete project", zap.String("id", id.String()), zap.Error(err))
		return err
	}

	return nil
}
