package fx

import (
	"context"
	"time"

	"Ecclesia/internal/domain/recurrence"
	"Ecclesia/internal/scheduler"

	"go.uber.org/fx"
)

// SchedulerModule fornece a varredura periódica de recorrências
var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		newSweeper,
	),
	fx.Invoke(
		startSweeper,
	),
)

func newSweeper(recurrenceSvc *recurrence.Service) *scheduler.Sweeper {
	return scheduler.NewSweeper(recurrenceSvc, time.Hour)
}

func startSweeper(lc fx.Lifecycle, sweeper *scheduler.Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return sweeper.Stop(ctx)
		},
	})
}
