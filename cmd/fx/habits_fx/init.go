package habits_fx

import (
	"go.uber.org/fx"
	"nudgeup/internal/repositories"
	"nudgeup/internal/services"
)

var Module = fx.Provide(
	provideCompletionService, provideHabitService)

func provideCompletionService(
	habitRepo repositories.HabitRepositoryInterface,
	completionRepo repositories.CompletionRepositoryInterface,
) services.CompletionServiceInterface {
	return services.NewCompletionService(habitRepo, completionRepo)
}

func provideHabitService(
	habitRepo repositories.HabitRepositoryInterface,
	completionRepo repositories.CompletionRepositoryInterface,
	groupRepo repositories.GroupRepositoryInterface,
	propagation services.PropagationServiceInterface,
) services.HabitServiceInterface {
	return services.NewHabitService(habitRepo, completionRepo, groupRepo, propagation)
}
