package store_fx

import (
	"context"
	"log"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"nudgeup/internal/infra"
	"nudgeup/internal/store"
)

var Module = fx.Provide(
	provideDB, provideStore)

func provideDB(lc fx.Lifecycle) *gorm.DB {
	db := infra.InitPostgresql()
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
	return db
}

func provideStore(db *gorm.DB) store.PartitionStore {
	st, err := store.NewPostgresStore(db)
	if err != nil {
		log.Fatalf("Failed to initialize partition store: %v", err)
	}
	return st
}
