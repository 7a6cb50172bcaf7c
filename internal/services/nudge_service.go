package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/models/response_models"
	"nudgeup/internal/repositories"
	"nudgeup/pkg/utils"
)

// A repeat send for the same target inside this window is silently
// skipped; the caller learns no send occurred, but it is not an error.
const nudgeCooldown = time.Hour

// Members with no completion in this many days count as inactive.
const inactiveWindowDays = 7

type NudgeServiceInterface interface {
	SendNudge(ctx context.Context, fromUserID, toUserID, habitID, groupID string) (*response_models.SendResult, error)
	NudgeGroup(ctx context.Context, fromUserID, groupID string, kind db_models.NudgeKind) ([]response_models.SendResult, error)
	ResolveNudge(ctx context.Context, userID, nudgeID string) error
	ListUnresolvedFor(ctx context.Context, userID string) ([]response_models.NudgeResponse, error)
}

type NudgeService struct {
	nudgeRepo      repositories.NudgeRepositoryInterface
	habitRepo      repositories.HabitRepositoryInterface
	completionRepo repositories.CompletionRepositoryInterface
	roster         RosterServiceInterface
	notifier       NotifierFunc
	logger         *zap.Logger
	now            func() time.Time
}

func NewNudgeService(
	nudgeRepo repositories.NudgeRepositoryInterface,
	habitRepo repositories.HabitRepositoryInterface,
	completionRepo repositories.CompletionRepositoryInterface,
	roster RosterServiceInterface,
	notifier NotifierFunc,
	logger *zap.Logger,
) *NudgeService {
	return &NudgeService{
		nudgeRepo:      nudgeRepo,
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		roster:         roster,
		notifier:       notifier,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *NudgeService) SendNudge(ctx context.Context, fromUserID, toUserID, habitID, groupID string) (*response_models.SendResult, error) {
	roster, err := s.roster.CanonicalRoster(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if _, ok := roster[fromUserID]; !ok {
		return nil, utils.ErrNotGroupMember
	}
	if _, ok := roster[toUserID]; !ok {
		return nil, utils.ErrNotGroupMember
	}

	history, err := s.nudgeRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	since := s.now().Add(-nudgeCooldown).UnixMilli()
	if pairOnCooldown(history, groupID, toUserID, habitID, since) {
		return &response_models.SendResult{Sent: false, Skipped: "cooldown"}, nil
	}

	nudge, err := s.create(ctx, fromUserID, toUserID, habitID, groupID, db_models.NudgeKindDirect)
	if err != nil {
		return nil, err
	}
	return &response_models.SendResult{Sent: true, NudgeID: nudge.ID}, nil
}

// NudgeGroup runs a bulk campaign: eligible recipients crossed with
// their habits shared into the group. Each pair is an independent
// send; failures are collected and logged, never aborting the rest.
func (s *NudgeService) NudgeGroup(ctx context.Context, fromUserID, groupID string, kind db_models.NudgeKind) ([]response_models.SendResult, error) {
	switch kind {
	case db_models.NudgeKindGroup, db_models.NudgeKindPending, db_models.NudgeKindInactive:
	default:
		return nil, utils.ErrInvalidInput
	}

	roster, err := s.roster.CanonicalRoster(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if _, ok := roster[fromUserID]; !ok {
		return nil, utils.ErrNotGroupMember
	}

	history, err := s.nudgeRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	now := s.now()
	since := now.Add(-nudgeCooldown).UnixMilli()
	if campaignOnCooldown(history, groupID, kind, since) {
		return []response_models.SendResult{{Sent: false, Skipped: "cooldown"}}, nil
	}

	var results []response_models.SendResult
	var errs error
	for memberID := range roster {
		if memberID == fromUserID {
			continue
		}
		habits, eligible, err := s.eligibleHabits(ctx, memberID, groupID, kind, now)
		if err != nil {
			errs = multierr.Append(errs, err)
			results = append(results, response_models.SendResult{Sent: false, Skipped: "error"})
			continue
		}
		if !eligible {
			continue
		}
		for i := range habits {
			if pairOnCooldown(history, groupID, memberID, habits[i].ID, since) {
				results = append(results, response_models.SendResult{Sent: false, Skipped: "cooldown"})
				continue
			}
			nudge, err := s.create(ctx, fromUserID, memberID, habits[i].ID, groupID, kind)
			if err != nil {
				errs = multierr.Append(errs, err)
				results = append(results, response_models.SendResult{Sent: false, Skipped: "error"})
				continue
			}
			results = append(results, response_models.SendResult{Sent: true, NudgeID: nudge.ID})
		}
	}

	if errs != nil {
		s.logger.Warn("bulk nudge partially failed",
			zap.String("group", groupID), zap.String("kind", string(kind)), zap.Error(errs))
	}
	return results, nil
}

// eligibleHabits returns the member's habits shared into the group
// that the campaign kind targets, and whether the member is an
// eligible recipient at all.
func (s *NudgeService) eligibleHabits(ctx context.Context, memberID, groupID string, kind db_models.NudgeKind, now time.Time) ([]db_models.Habit, bool, error) {
	all, err := s.habitRepo.ListByOwner(ctx, memberID)
	if err != nil {
		return nil, false, err
	}
	var shared []db_models.Habit
	for i := range all {
		if all[i].HasGroup(groupID) {
			shared = append(shared, all[i])
		}
	}
	if len(shared) == 0 {
		return nil, false, nil
	}

	switch kind {
	case db_models.NudgeKindGroup:
		return shared, true, nil

	case db_models.NudgeKindPending:
		today := utils.DayKey(now)
		var pending []db_models.Habit
		for i := range shared {
			event, err := s.completionRepo.Get(ctx, memberID, shared[i].ID, today)
			if err != nil {
				return nil, false, err
			}
			if event == nil || !event.Completed {
				pending = append(pending, shared[i])
			}
		}
		return pending, len(pending) > 0, nil

	case db_models.NudgeKindInactive:
		cutoff := utils.DayKey(now.AddDate(0, 0, -inactiveWindowDays))
		for i := range shared {
			log, err := s.completionRepo.Log(ctx, memberID, shared[i].ID)
			if err != nil {
				return nil, false, err
			}
			for day, completed := range log {
				if completed && day >= cutoff {
					return nil, false, nil
				}
			}
		}
		return shared, true, nil
	}
	return nil, false, nil
}

func (s *NudgeService) create(ctx context.Context, fromUserID, toUserID, habitID, groupID string, kind db_models.NudgeKind) (*db_models.Nudge, error) {
	nudge := &db_models.Nudge{
		ID:         uuid.New().String(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		HabitID:    habitID,
		GroupID:    groupID,
		Kind:       kind,
		CreatedAt:  s.now().UnixMilli(),
	}
	if err := s.nudgeRepo.Save(ctx, nudge); err != nil {
		return nil, err
	}
	s.notifier(ctx, toUserID)
	return nudge, nil
}

// ResolveNudge marks the nudge read/dismissed. Either party may
// resolve; the record is retained for the cooldown history.
func (s *NudgeService) ResolveNudge(ctx context.Context, userID, nudgeID string) error {
	nudge, err := s.nudgeRepo.GetByID(ctx, nudgeID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if nudge == nil {
		return utils.ErrNudgeNotFound
	}
	if nudge.FromUserID != userID && nudge.ToUserID != userID {
		return utils.ErrNudgeNotFound
	}
	if nudge.Resolved() {
		return nil
	}
	resolvedAt := s.now().UnixMilli()
	nudge.ResolvedAt = &resolvedAt
	return s.nudgeRepo.Save(ctx, nudge)
}

func (s *NudgeService) ListUnresolvedFor(ctx context.Context, userID string) ([]response_models.NudgeResponse, error) {
	all, err := s.nudgeRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.NudgeResponse, 0)
	for i := range all {
		if all[i].ToUserID != userID || all[i].Resolved() {
			continue
		}
		out = append(out, toNudgeResponse(&all[i]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func toNudgeResponse(n *db_models.Nudge) response_models.NudgeResponse {
	return response_models.NudgeResponse{
		ID:         n.ID,
		ToUserID:   n.ToUserID,
		FromUserID: n.FromUserID,
		HabitID:    n.HabitID,
		GroupID:    n.GroupID,
		Kind:       string(n.Kind),
		CreatedAt:  n.CreatedAt,
		ResolvedAt: n.ResolvedAt,
	}
}

func pairOnCooldown(history []db_models.Nudge, groupID, toUserID, habitID string, since int64) bool {
	for i := range history {
		n := &history[i]
		if n.GroupID == groupID && n.ToUserID == toUserID && n.HabitID == habitID && n.CreatedAt > since {
			return true
		}
	}
	return false
}

func campaignOnCooldown(history []db_models.Nudge, groupID string, kind db_models.NudgeKind, since int64) bool {
	for i := range history {
		n := &history[i]
		if n.GroupID == groupID && n.Kind == kind && n.CreatedAt > since {
			return true
		}
	}
	return false
}
