package repositories

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/store"
)

type HabitRepositoryInterface interface {
	Save(ctx context.Context, habit *db_models.Habit) error
	GetByID(ctx context.Context, ownerID, habitID string) (*db_models.Habit, error)
	ListByOwner(ctx context.Context, ownerID string) ([]db_models.Habit, error)
	Delete(ctx context.Context, ownerID, habitID string) error
}

func NewHabitRepository(st store.PartitionStore, logger *zap.Logger) HabitRepositoryInterface {
	return &HabitRepository{store: st, logger: logger}
}

type HabitRepository struct {
	store  store.PartitionStore
	logger *zap.Logger
}

func (r *HabitRepository) Save(ctx context.Context, habit *db_models.Habit) error {
	raw, err := json.Marshal(habit)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, habit.OwnerID, store.KindHabits, habit.ID, raw)
}

func (r *HabitRepository) GetByID(ctx context.Context, ownerID, habitID string) (*db_models.Habit, error) {
	raw, err := r.store.Get(ctx, ownerID, store.KindHabits, habitID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var habit db_models.Habit
	if err := json.Unmarshal(raw, &habit); err != nil {
		// Corrupt record, treat as absent.
		r.logger.Warn("dropping unreadable habit record",
			zap.String("owner", ownerID), zap.String("key", habitID), zap.Error(err))
		return nil, nil
	}
	return &habit, nil
}

func (r *HabitRepository) ListByOwner(ctx context.Context, ownerID string) ([]db_models.Habit, error) {
	records, err := r.store.ReadPartition(ctx, ownerID, store.KindHabits)
	if err != nil {
		return nil, err
	}
	habits := make([]db_models.Habit, 0, len(records))
	for key, raw := range records {
		var habit db_models.Habit
		if err := json.Unmarshal(raw, &habit); err != nil {
			r.logger.Warn("dropping unreadable habit record",
				zap.String("owner", ownerID), zap.String("key", key), zap.Error(err))
			continue
		}
		habits = append(habits, habit)
	}
	return habits, nil
}

func (r *HabitRepository) Delete(ctx context.Context, ownerID, habitID string) error {
	return r.store.Delete(ctx, ownerID, store.KindHabits, habitID)
}
