package warehouse

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module(
		"warehouse",
		fx.Provide(NewClient),
	)
}
