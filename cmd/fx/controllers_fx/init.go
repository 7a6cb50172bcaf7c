package controllers_fx

import (
	"go.uber.org/fx"
	"nudgeup/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewHabitsController),
	fx.Provide(controllers.NewGroupsController),
	fx.Provide(controllers.NewNudgesController))
