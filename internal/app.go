package internal

import (
	"context"

	"github.com/autocrea/autocrea/internal/auth"
	"github.com/autocrea/autocrea/internal/config"
	"github.com/autocrea/autocrea/internal/deployments"
	"github.com/autocrea/autocrea/internal/git"
	"github.com/autocrea/autocrea/internal/poller"
	"github.com/autocrea/autocrea/internal/projects"
	"github.com/autocrea/autocrea/internal/providers"
	"github.com/autocrea/autocrea/internal/server"
	"github.com/autocrea/autocrea/pkg/badgerfx"
	"github.com/autocrea/autocrea/pkg/openapifx"
	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Run() {
	fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		healthfx.Module(),
		fiberfx.Module(),
		validator.Module,
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		openapifx.Module(),
		auth.Module(),
		git.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: "1.0.0", ReleaseID: 1} }),
		projects.Module(),
		providers.Module(),
		deployments.Module(),
		poller.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("🚀 AUTOCREA application starting up")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("🛑 AUTOCREA application shutting down gracefully")
					return nil
				},
			})
		}),
	).Run()
}
