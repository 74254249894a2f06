package session

import (
	"github.com/Talonmortem/SHM/internal/warehouse"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module("session",
		fx.Provide(func(client *warehouse.Client, logger *zap.Logger) *Session {
			return New(client, logger)
		}),
	)
}
