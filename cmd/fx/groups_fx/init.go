package groups_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"nudgeup/internal/repositories"
	"nudgeup/internal/services"
	"nudgeup/pkg/memcache"
)

var Module = fx.Provide(
	provideInviteCache, provideRosterService, provideGroupService)

func provideInviteCache() memcache.InviteCodeCache {
	return memcache.NewInviteCodes()
}

func provideRosterService(groupRepo repositories.GroupRepositoryInterface, logger *zap.Logger) services.RosterServiceInterface {
	return services.NewRosterService(groupRepo, logger)
}

func provideGroupService(
	groupRepo repositories.GroupRepositoryInterface,
	propagation services.PropagationServiceInterface,
	inviteCache memcache.InviteCodeCache,
	logger *zap.Logger,
) services.GroupServiceInterface {
	return services.NewGroupService(groupRepo, propagation, inviteCache, logger)
}
