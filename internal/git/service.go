package git

import (
	"context"
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v6"
	gitconfig "github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/storage/memory"
	"go.uber.org/zap"
)

type Config struct {
	// ValidateSource gates the remote check entirely. When disabled,
	// ValidateSource accepts every reference without touching the network.
	ValidateSource bool
	Timeout        time.Duration
}

// Service checks that a deployment's source reference actually exists
// before any provider is asked to build it.
type Service struct {
	config Config
	logger *zap.Logger
}

func NewService(config Config, logger *zap.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// ValidateSource lists the remote's references and confirms the branch is
// among them. An empty branch only checks reachability.
func (s *Service) ValidateSource(ctx context.Context, url, branch string) error {
	if !s.config.ValidateSource {
		return nil
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	s.logger.Debug("validating source repository",
		zap.String("url", url),
		zap.String("branch", branch))

	remote := gogit.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	refs, err := remote.ListContext(ctx, &gogit.ListOptions{})
	if err != nil {
		s.logger.Warn("failed to list remote references", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrRepositoryUnreachable, url, err)
	}

	if branch == "" {
		return nil
	}

	for _, ref := range refs {
		if ref.Name().IsBranch() && ref.Name().Short() == branch {
			return nil
		}
	}

	return fmt.Errorf("%w: %s in %s", ErrBranchNotFound, branch, url)
}
