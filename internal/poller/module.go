package poller

import (
	"context"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"poller",
		logger.WithNamedLogger("poller"),
		fx.Provide(New),
		fx.Invoke(func(lc fx.Lifecycle, p *Poller) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					p.Start()
					return nil
				},
				OnStop: func(context.Context) error {
					p.Stop()
					return nil
				},
			})
		}),
	)
}
