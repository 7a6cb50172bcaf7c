package repositories_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"nudgeup/internal/repositories"
	"nudgeup/internal/store"
)

var Module = fx.Provide(
	provideHabitRepo, provideCompletionRepo, provideGroupRepo, provideNudgeRepo)

func provideHabitRepo(st store.PartitionStore, logger *zap.Logger) repositories.HabitRepositoryInterface {
	return repositories.NewHabitRepository(st, logger)
}

func provideCompletionRepo(st store.PartitionStore, logger *zap.Logger) repositories.CompletionRepositoryInterface {
	return repositories.NewCompletionRepository(st, logger)
}

func provideGroupRepo(st store.PartitionStore, logger *zap.Logger) repositories.GroupRepositoryInterface {
	return repositories.NewGroupRepository(st, logger)
}

func provideNudgeRepo(st store.PartitionStore, logger *zap.Logger) repositories.NudgeRepositoryInterface {
	return repositories.NewNudgeRepository(st, logger)
}
