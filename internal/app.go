package internal

import (
	"context"

	"github.com/Talonmortem/SHM/internal/cli"
	"github.com/Talonmortem/SHM/internal/config"
	"github.com/Talonmortem/SHM/internal/logging"
	"github.com/Talonmortem/SHM/internal/session"
	"github.com/Talonmortem/SHM/internal/warehouse"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Run() error {
	var runner *cli.Runner

	app := fx.New(
		logger.Module(),
		logger.WithFxDefaultLogger(),
		config.Module(),
		logging.Module(),
		warehouse.Module(),
		session.Module(),
		cli.Module(),
		fx.Populate(&runner),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(ctx)
	}()

	return runner.Execute()
}
