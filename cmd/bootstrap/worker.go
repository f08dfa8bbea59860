package bootstrap

import (
	"context"

	"cinebook/internal/pkg/clock"
	"cinebook/internal/pkg/config"
	"cinebook/internal/usecase/shared"
	"cinebook/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewReclaimer,
	),
	fx.Invoke(registerReclaimer),
)

func NewReclaimer(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) *worker.Reclaimer {
	return worker.NewReclaimer(uow, clk, worker.ReclaimerConfig{
		Interval:  cfg.Booking.ReclaimInterval,
		BatchSize: cfg.Booking.ReclaimBatchSize,
	})
}

func registerReclaimer(lc fx.Lifecycle, reclaimer *worker.Reclaimer) {
	lc.Append(fx.Hook{
		// The start hook context is cancelled once startup finishes, so the
		// sweep loop runs on its own context and is torn down via Stop.
		OnStart: func(_ context.Context) error {
			return reclaimer.Start(context.Background())
		},
		OnStop: func(_ context.Context) error {
			reclaimer.Stop()
			return nil
		},
	})
}
