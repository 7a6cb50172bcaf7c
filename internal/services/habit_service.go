package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/repositories"
	"nudgeup/pkg/utils"
)

type CreateHabitRequest struct {
	Name         string   `json:"name"`
	Icon         string   `json:"icon"`
	Frequency    string   `json:"frequency"`
	TimesPerWeek int      `json:"timesPerWeek"`
	GroupIDs     []string `json:"groupIds"`
}

type HabitServiceInterface interface {
	CreateHabit(ctx context.Context, ownerID string, req CreateHabitRequest) (*db_models.Habit, error)
	ListHabits(ctx context.Context, ownerID string) ([]db_models.Habit, error)
	GetHabit(ctx context.Context, ownerID, habitID string) (*db_models.Habit, error)
	DeleteHabit(ctx context.Context, ownerID, habitID string) error
	ShareHabit(ctx context.Context, ownerID, habitID string, groupIDs []string) (*db_models.Habit, error)
}

type HabitService struct {
	habitRepo      repositories.HabitRepositoryInterface
	completionRepo repositories.CompletionRepositoryInterface
	groupRepo      repositories.GroupRepositoryInterface
	propagation    PropagationServiceInterface
	now            func() time.Time
}

func NewHabitService(
	habitRepo repositories.HabitRepositoryInterface,
	completionRepo repositories.CompletionRepositoryInterface,
	groupRepo repositories.GroupRepositoryInterface,
	propagation PropagationServiceInterface,
) *HabitService {
	return &HabitService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		groupRepo:      groupRepo,
		propagation:    propagation,
		now:            time.Now,
	}
}

func (s *HabitService) CreateHabit(ctx context.Context, ownerID string, req CreateHabitRequest) (*db_models.Habit, error) {
	if req.Name == "" {
		return nil, utils.ErrInvalidInput
	}
	frequency := db_models.Frequency(req.Frequency)
	if frequency == "" {
		frequency = db_models.FrequencyDaily
	}
	if frequency != db_models.FrequencyDaily && frequency != db_models.FrequencyWeekly {
		return nil, utils.ErrInvalidInput
	}
	if frequency == db_models.FrequencyWeekly && req.TimesPerWeek < 1 {
		return nil, utils.ErrInvalidInput
	}

	habit := &db_models.Habit{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      req.Name,
		Icon:      req.Icon,
		Frequency: frequency,
		CreatedAt: utils.DayKey(s.now()),
	}
	if frequency == db_models.FrequencyWeekly {
		habit.TimesPerWeek = req.TimesPerWeek
	}
	if err := s.habitRepo.Save(ctx, habit); err != nil {
		return nil, err
	}

	if len(req.GroupIDs) > 0 {
		shared, err := s.ShareHabit(ctx, ownerID, habit.ID, req.GroupIDs)
		if err != nil {
			return nil, err
		}
		habit = shared
	}
	return habit, nil
}

func (s *HabitService) ListHabits(ctx context.Context, ownerID string) ([]db_models.Habit, error) {
	return s.habitRepo.ListByOwner(ctx, ownerID)
}

func (s *HabitService) GetHabit(ctx context.Context, ownerID, habitID string) (*db_models.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, ownerID, habitID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if habit == nil {
		return nil, utils.ErrHabitNotFound
	}
	return habit, nil
}

// DeleteHabit removes the habit and its completion history together.
// Already-propagated copies in other members' partitions are theirs
// and stay untouched.
func (s *HabitService) DeleteHabit(ctx context.Context, ownerID, habitID string) error {
	if err := s.completionRepo.DeleteLog(ctx, ownerID, habitID); err != nil {
		return utils.ErrDatabaseError
	}
	return s.habitRepo.Delete(ctx, ownerID, habitID)
}

// ShareHabit replaces the habit's group set. Only newly added groups
// trigger propagation; removing a group never retracts copies already
// cloned into other members' partitions.
func (s *HabitService) ShareHabit(ctx context.Context, ownerID, habitID string, groupIDs []string) (*db_models.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, ownerID, habitID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if habit == nil {
		return nil, utils.ErrHabitNotFound
	}

	previous := make(map[string]bool, len(habit.GroupIDs))
	for _, id := range habit.GroupIDs {
		previous[id] = true
	}

	var added []string
	for _, groupID := range groupIDs {
		if previous[groupID] {
			continue
		}
		// Sharing is only meaningful into groups the owner holds a
		// copy of.
		group, err := s.groupRepo.GetGroup(ctx, ownerID, groupID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if group == nil {
			return nil, utils.ErrGroupNotFound
		}
		added = append(added, groupID)
	}

	habit.GroupIDs = append([]string{}, groupIDs...)
	if err := s.habitRepo.Save(ctx, habit); err != nil {
		return nil, err
	}

	if len(added) > 0 {
		s.propagation.PropagateHabit(ctx, habit, added)
	}
	return habit, nil
}
