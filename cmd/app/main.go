package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"nudgeup/cmd/fx/controllers_fx"
	"nudgeup/cmd/fx/groups_fx"
	"nudgeup/cmd/fx/habits_fx"
	"nudgeup/cmd/fx/logger_fx"
	"nudgeup/cmd/fx/notify_fx"
	"nudgeup/cmd/fx/nudges_fx"
	"nudgeup/cmd/fx/propagation_fx"
	"nudgeup/cmd/fx/repositories_fx"
	"nudgeup/cmd/fx/store_fx"
	"nudgeup/internal/api/controllers"
	"nudgeup/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		logger_fx.Module,
		store_fx.Module,
		repositories_fx.Module,
		notify_fx.Module,
		propagation_fx.Module,
		habits_fx.Module,
		groups_fx.Module,
		nudges_fx.Module,
		controllers_fx.Module,

		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	habitsController *controllers.HabitsController,
	groupsController *controllers.GroupsController,
	nudgesController *controllers.NudgesController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, habitsController, groupsController, nudgesController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	habitsController *controllers.HabitsController,
	groupsController *controllers.GroupsController,
	nudgesController *controllers.NudgesController) {

	authed := r.Group("/")
	authed.Use(middleware.JWTAuthMiddleware())

	habits := authed.Group("/habits")
	habits.POST("", habitsController.CreateHabitHandler)
	habits.GET("", habitsController.ListHabitsHandler)
	habits.DELETE("/:id", habitsController.DeleteHabitHandler)
	habits.POST("/:id/toggle", habitsController.ToggleCompletionHandler)
	habits.GET("/:id/streak", habitsController.StreakHandler)
	habits.POST("/:id/share", habitsController.ShareHabitHandler)

	authed.GET("/days/:date/bucket", habitsController.DayBucketHandler)
	authed.POST("/reconcile", groupsController.ReconcileHandler)

	groups := authed.Group("/groups")
	groups.POST("", groupsController.CreateGroupHandler)
	groups.GET("", groupsController.ListGroupsHandler)
	groups.POST("/join", groupsController.JoinGroupHandler)
	groups.GET("/:id/members", groupsController.MembersHandler)
	groups.POST("/:id/nudges", nudgesController.NudgeGroupHandler)

	nudges := authed.Group("/nudges")
	nudges.POST("", nudgesController.SendNudgeHandler)
	nudges.GET("", nudgesController.ListNudgesHandler)
	nudges.POST("/:id/resolve", nudgesController.ResolveNudgeHandler)
}
