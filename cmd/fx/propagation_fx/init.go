package propagation_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"nudgeup/internal/notify"
	"nudgeup/internal/repositories"
	"nudgeup/internal/services"
)

var Module = fx.Provide(providePropagationService)

func providePropagationService(
	habitRepo repositories.HabitRepositoryInterface,
	groupRepo repositories.GroupRepositoryInterface,
	roster services.RosterServiceInterface,
	notifier notify.Notifier,
	logger *zap.Logger,
) services.PropagationServiceInterface {
	onChange := func(ctx context.Context, userID string) {
		_ = notifier.HabitsChanged(ctx, userID)
	}
	return services.NewPropagationService(habitRepo, groupRepo, roster, onChange, logger)
}
