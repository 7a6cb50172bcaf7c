package services

import (
	"context"
	"time"

	"nudgeup/internal/models/db_models"
	"nudgeup/internal/models/response_models"
	"nudgeup/internal/repositories"
	"nudgeup/pkg/utils"
)

type CompletionServiceInterface interface {
	ToggleCompletion(ctx context.Context, ownerID, habitID string, date time.Time) (bool, error)
	IsCompleted(ctx context.Context, ownerID, habitID string, date time.Time) (bool, error)
	DailyStreak(ctx context.Context, ownerID, habitID string) (int, error)
	WeeklyCompletionCount(ctx context.Context, ownerID, habitID string) (int, error)
	WeeklyStreak(ctx context.Context, ownerID, habitID string, timesPerWeek int) (int, error)
	CompletionBucket(ctx context.Context, ownerID string, date time.Time) (response_models.Bucket, error)
}

type CompletionService struct {
	habitRepo      repositories.HabitRepositoryInterface
	completionRepo repositories.CompletionRepositoryInterface
	now            func() time.Time
}

func NewCompletionService(
	habitRepo repositories.HabitRepositoryInterface,
	completionRepo repositories.CompletionRepositoryInterface,
) *CompletionService {
	return &CompletionService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		now:            time.Now,
	}
}

// ToggleCompletion flips the day's completed flag, inserting a
// completed event if none exists, and returns the resulting state.
// Future dates are rejected: completion can never be recorded ahead
// of time. The habit's cached completed/streak fields are refreshed
// as a side effect; they are a materialized view, never the source
// of truth.
func (s *CompletionService) ToggleCompletion(ctx context.Context, ownerID, habitID string, date time.Time) (bool, error) {
	if date.IsZero() {
		date = s.now()
	}
	if utils.DayAfter(date, s.now()) {
		return false, utils.ErrInvalidInput
	}
	dayKey := utils.DayKey(date)

	event, err := s.completionRepo.Get(ctx, ownerID, habitID, dayKey)
	if err != nil {
		return false, utils.ErrDatabaseError
	}
	if event == nil {
		event = &db_models.CompletionEvent{HabitID: habitID, Date: dayKey, Completed: true}
	} else {
		event.Completed = !event.Completed
	}
	if err := s.completionRepo.Put(ctx, ownerID, event); err != nil {
		return false, err
	}

	if err := s.refreshCachedState(ctx, ownerID, habitID); err != nil {
		return false, err
	}
	return event.Completed, nil
}

// IsCompleted is false for any future date; no forward completion.
func (s *CompletionService) IsCompleted(ctx context.Context, ownerID, habitID string, date time.Time) (bool, error) {
	if utils.DayAfter(date, s.now()) {
		return false, nil
	}
	event, err := s.completionRepo.Get(ctx, ownerID, habitID, utils.DayKey(date))
	if err != nil {
		return false, utils.ErrDatabaseError
	}
	return event != nil && event.Completed, nil
}

// DailyStreak walks backward day by day starting at today. An
// incomplete today is the terminating gap, so today must be completed
// for the streak to count it. The walk also stops, without counting,
// at any day before the habit's creation date.
func (s *CompletionService) DailyStreak(ctx context.Context, ownerID, habitID string) (int, error) {
	habit, err := s.habitRepo.GetByID(ctx, ownerID, habitID)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	if habit == nil {
		return 0, nil
	}
	log, err := s.completionRepo.Log(ctx, ownerID, habitID)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	return dailyStreak(log, habit.CreatedAt, s.now()), nil
}

// WeeklyCompletionCount counts completed days from the most recent
// Sunday through today, both inclusive.
func (s *CompletionService) WeeklyCompletionCount(ctx context.Context, ownerID, habitID string) (int, error) {
	log, err := s.completionRepo.Log(ctx, ownerID, habitID)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	return weeklyCount(log, utils.StartOfWeek(s.now()), s.now()), nil
}

// WeeklyStreak counts consecutive fully elapsed Sunday-aligned weeks,
// ending with last week, whose completion count met the goal. The
// in-progress week is reported through WeeklyCompletionCount instead;
// it cannot fail the goal before it ends, so it neither counts nor
// breaks the streak.
func (s *CompletionService) WeeklyStreak(ctx context.Context, ownerID, habitID string, timesPerWeek int) (int, error) {
	if timesPerWeek < 1 {
		return 0, nil
	}
	habit, err := s.habitRepo.GetByID(ctx, ownerID, habitID)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	if habit == nil {
		return 0, nil
	}
	log, err := s.completionRepo.Log(ctx, ownerID, habitID)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	return weeklyStreak(log, habit.CreatedAt, timesPerWeek, s.now()), nil
}

// CompletionBucket aggregates the owner's daily habits created on or
// before the date: the fraction completed that day, mapped up to the
// nearest quarter. Weekly habits are excluded; future dates are none.
func (s *CompletionService) CompletionBucket(ctx context.Context, ownerID string, date time.Time) (response_models.Bucket, error) {
	if utils.DayAfter(date, s.now()) {
		return response_models.BucketNone, nil
	}
	habits, err := s.habitRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return response_models.BucketNone, utils.ErrDatabaseError
	}

	dayKey := utils.DayKey(date)
	total, completed := 0, 0
	for i := range habits {
		habit := &habits[i]
		if habit.Frequency != db_models.FrequencyDaily || habit.CreatedAt > dayKey {
			continue
		}
		total++
		event, err := s.completionRepo.Get(ctx, ownerID, habit.ID, dayKey)
		if err != nil {
			return response_models.BucketNone, utils.ErrDatabaseError
		}
		if event != nil && event.Completed {
			completed++
		}
	}
	return bucketFor(completed, total), nil
}

func (s *CompletionService) refreshCachedState(ctx context.Context, ownerID, habitID string) error {
	habit, err := s.habitRepo.GetByID(ctx, ownerID, habitID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if habit == nil {
		// The event log outlives nothing: a toggle against an unknown
		// habit still records, it just has no cache to refresh.
		return nil
	}
	log, err := s.completionRepo.Log(ctx, ownerID, habitID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	now := s.now()
	habit.Completed = log[utils.DayKey(now)]
	if habit.Frequency == db_models.FrequencyWeekly {
		habit.Streak = weeklyStreak(log, habit.CreatedAt, habit.TimesPerWeek, now)
	} else {
		habit.Streak = dailyStreak(log, habit.CreatedAt, now)
	}
	return s.habitRepo.Save(ctx, habit)
}

func dailyStreak(log map[string]bool, createdAt string, now time.Time) int {
	streak := 0
	for day := utils.StartOfDay(now); ; day = day.AddDate(0, 0, -1) {
		key := utils.DayKey(day)
		if createdAt != "" && key < createdAt {
			break
		}
		if !log[key] {
			break
		}
		streak++
	}
	return streak
}

func weeklyCount(log map[string]bool, weekStart, until time.Time) int {
	count := 0
	end := utils.StartOfDay(until)
	for day := weekStart; !day.After(end); day = day.AddDate(0, 0, 1) {
		if log[utils.DayKey(day)] {
			count++
		}
	}
	return count
}

func weeklyStreak(log map[string]bool, createdAt string, timesPerWeek int, now time.Time) int {
	if timesPerWeek < 1 {
		return 0
	}
	streak := 0
	for weekStart := utils.StartOfWeek(now).AddDate(0, 0, -7); ; weekStart = weekStart.AddDate(0, 0, -7) {
		weekEnd := weekStart.AddDate(0, 0, 6)
		if createdAt != "" && utils.DayKey(weekEnd) < createdAt {
			break
		}
		if weeklyCount(log, weekStart, weekEnd) < timesPerWeek {
			break
		}
		streak++
	}
	return streak
}

// Buckets round up: any nonzero fraction reaches at least 25%.
func bucketFor(completed, total int) response_models.Bucket {
	if total == 0 || completed == 0 {
		return response_models.BucketNone
	}
	switch f := float64(completed) / float64(total); {
	case f <= 0.25:
		return response_models.Bucket25
	case f <= 0.50:
		return response_models.Bucket50
	case f <= 0.75:
		return response_models.Bucket75
	default:
		return response_models.Bucket100
	}
}
