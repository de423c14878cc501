package config

import (
	"github.com/autocrea/autocrea/internal/auth"
	"github.com/autocrea/autocrea/internal/deployments"
	"github.com/autocrea/autocrea/internal/git"
	"github.com/autocrea/autocrea/internal/poller"
	"github.com/autocrea/autocrea/internal/providers"
	"github.com/autocrea/autocrea/pkg/badgerfx"
	"github.com/autocrea/autocrea/pkg/openapifx"
	"github.com/go-core-fx/fiberfx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir: cfg.Storage.DataDir,
			}
		}),
		fx.Provide(func(cfg Config) openapifx.Config {
			return openapifx.Config{
				Enabled:    cfg.HTTP.OpenAPI.Enabled,
				PublicHost: cfg.HTTP.OpenAPI.PublicHost,
				PublicPath: cfg.HTTP.OpenAPI.PublicPath,
			}
		}),
		fx.Provide(func(cfg Config) auth.Config {
			return auth.Config{
				Secret: []byte(cfg.Auth.Secret),
				Issuer: cfg.Auth.Issuer,
			}
		}),
		fx.Provide(func(cfg Config) providers.Config {
			return providers.Config{
				Vercel: providers.ProviderConfig{
					Token:   cfg.Providers.Vercel.Token,
					BaseURL: cfg.Providers.Vercel.BaseURL,
				},
				Netlify: providers.ProviderConfig{
					Token:   cfg.Providers.Netlify.Token,
					BaseURL: cfg.Providers.Netlify.BaseURL,
				},
				Railway: providers.ProviderConfig{
					Token:   cfg.Providers.Railway.Token,
					BaseURL: cfg.Providers.Railway.BaseURL,
				},
				CreateTimeout: cfg.Providers.CreateTimeout,
				StatusTimeout: cfg.Providers.StatusTimeout,
				CancelTimeout: cfg.Providers.CancelTimeout,
			}
		}),
		fx.Provide(func(cfg Config) poller.Config {
			return poller.Config{
				Interval: cfg.Poller.Interval,
				Workers:  cfg.Poller.Workers,
			}
		}),
		fx.Provide(func(cfg Config) deployments.Config {
			return deployments.Config{
				MaxRefreshAttempts: cfg.Poller.MaxAttempts,
			}
		}),
		fx.Provide(func(cfg Config) git.Config {
			return git.Config{
				ValidateSource: cfg.Git.ValidateSource,
				Timeout:        cfg.Git.Timeout,
			}
		}),
	)
}
