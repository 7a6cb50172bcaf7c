package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/repositories"
	"nudgeup/pkg/utils"
)

// PropagationService clones shared habits into group members' own
// partitions so each member tracks an independent copy. There is no
// cross-partition transaction: every effect is a fresh write into the
// target member's partition, deduplicated at read time by
// (owner, name, group), so re-running is always safe.
type PropagationServiceInterface interface {
	PropagateHabit(ctx context.Context, habit *db_models.Habit, addedGroupIDs []string)
	ReconcileForUser(ctx context.Context, userID string) error
}

type PropagationService struct {
	habitRepo repositories.HabitRepositoryInterface
	groupRepo repositories.GroupRepositoryInterface
	roster    RosterServiceInterface
	notifier  NotifierFunc
	logger    *zap.Logger
	now       func() time.Time
}

// NotifierFunc decouples the service from the notify package so tests
// can observe fan-out without a broker.
type NotifierFunc func(ctx context.Context, userID string)

func NewPropagationService(
	habitRepo repositories.HabitRepositoryInterface,
	groupRepo repositories.GroupRepositoryInterface,
	roster RosterServiceInterface,
	notifier NotifierFunc,
	logger *zap.Logger,
) *PropagationService {
	return &PropagationService{
		habitRepo: habitRepo,
		groupRepo: groupRepo,
		roster:    roster,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// PropagateHabit pushes the habit into every current member of the
// newly added groups, excluding the owner. Failures are collected per
// member; one unreachable partition never aborts the rest, and the
// next reconciliation retries it.
func (s *PropagationService) PropagateHabit(ctx context.Context, habit *db_models.Habit, addedGroupIDs []string) {
	var errs error
	notified := make(map[string]bool)

	for _, groupID := range addedGroupIDs {
		roster, err := s.roster.CanonicalRoster(ctx, groupID)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		for memberID := range roster {
			if memberID == habit.OwnerID {
				continue
			}
			created, err := s.ensureCopy(ctx, memberID, habit, groupID)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			if created && !notified[memberID] {
				notified[memberID] = true
				s.notifier(ctx, memberID)
			}
		}
	}

	if errs != nil {
		s.logger.Warn("habit propagation partially failed",
			zap.String("habit", habit.ID), zap.Error(errs))
	}
}

// ensureCopy is idempotent on (member, name, group): each member's
// copy has its own id, so the source habit id cannot be the dedup key.
func (s *PropagationService) ensureCopy(ctx context.Context, memberID string, source *db_models.Habit, groupID string) (bool, error) {
	existing, err := s.habitRepo.ListByOwner(ctx, memberID)
	if err != nil {
		return false, err
	}
	for i := range existing {
		if existing[i].Name == source.Name && existing[i].HasGroup(groupID) {
			return false, nil
		}
	}

	groupIDs := []string{groupID}
	for _, id := range source.GroupIDs {
		if id != groupID {
			groupIDs = append(groupIDs, id)
		}
	}
	clone := &db_models.Habit{
		ID:           uuid.New().String(),
		OwnerID:      memberID,
		Name:         source.Name,
		Icon:         source.Icon,
		Frequency:    source.Frequency,
		TimesPerWeek: source.TimesPerWeek,
		GroupIDs:     groupIDs,
		CreatedAt:    utils.DayKey(s.now()),
	}
	return true, s.habitRepo.Save(ctx, clone)
}

// ReconcileForUser is the pull side: for every group in the user's
// partition, it walks the other members' shared habits and clones any
// the user is missing. Triggered on login or visibility change; safe
// to abort mid-scan, since a partial pass just leaves some copies for
// the next trigger.
func (s *PropagationService) ReconcileForUser(ctx context.Context, userID string) error {
	groups, err := s.groupRepo.ListGroups(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		roster, err := s.roster.CanonicalRoster(ctx, group.ID)
		if err != nil {
			s.logger.Warn("skipping group during reconciliation",
				zap.String("group", group.ID), zap.Error(err))
			continue
		}
		pulled := false
		for memberID := range roster {
			if memberID == userID {
				continue
			}
			theirHabits, err := s.habitRepo.ListByOwner(ctx, memberID)
			if err != nil {
				s.logger.Warn("skipping partition during reconciliation",
					zap.String("partition", memberID), zap.Error(err))
				continue
			}
			for i := range theirHabits {
				habit := &theirHabits[i]
				if !habit.HasGroup(group.ID) {
					continue
				}
				created, err := s.ensureCopy(ctx, userID, habit, group.ID)
				if err != nil {
					s.logger.Warn("failed to clone shared habit",
						zap.String("habit", habit.ID), zap.Error(err))
					continue
				}
				pulled = pulled || created
			}
		}
		if pulled {
			s.notifier(ctx, userID)
		}
	}
	return nil
}
