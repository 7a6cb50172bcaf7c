package nudges_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"nudgeup/internal/notify"
	"nudgeup/internal/repositories"
	"nudgeup/internal/services"
)

var Module = fx.Provide(provideNudgeService)

func provideNudgeService(
	nudgeRepo repositories.NudgeRepositoryInterface,
	habitRepo repositories.HabitRepositoryInterface,
	completionRepo repositories.CompletionRepositoryInterface,
	roster services.RosterServiceInterface,
	notifier notify.Notifier,
	logger *zap.Logger,
) services.NudgeServiceInterface {
	onNudge := func(ctx context.Context, userID string) {
		_ = notifier.NudgeReceived(ctx, userID)
	}
	return services.NewNudgeService(nudgeRepo, habitRepo, completionRepo, roster, onNudge, logger)
}
