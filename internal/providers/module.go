package providers

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"providers",
		logger.WithNamedLogger("providers"),
		fx.Provide(NewVercelAdapter, fx.Private),
		fx.Provide(NewNetlifyAdapter, fx.Private),
		fx.Provide(NewRailwayAdapter, fx.Private),
		fx.Provide(NewRegistry),
	)
}
