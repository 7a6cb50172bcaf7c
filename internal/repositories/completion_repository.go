package repositories

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/store"
)

// Completion events are keyed "<habitID>/<dayKey>", which makes the
// per-habit log one prefix scan and guarantees at most one event per
// (habit, day): a toggle overwrites the same key.
type CompletionRepositoryInterface interface {
	Get(ctx context.Context, ownerID, habitID, dayKey string) (*db_models.CompletionEvent, error)
	Put(ctx context.Context, ownerID string, event *db_models.CompletionEvent) error
	Log(ctx context.Context, ownerID, habitID string) (map[string]bool, error)
	DeleteLog(ctx context.Context, ownerID, habitID string) error
}

func NewCompletionRepository(st store.PartitionStore, logger *zap.Logger) CompletionRepositoryInterface {
	return &CompletionRepository{store: st, logger: logger}
}

type CompletionRepository struct {
	store  store.PartitionStore
	logger *zap.Logger
}

func completionKey(habitID, dayKey string) string {
	return habitID + "/" + dayKey
}

func (r *CompletionRepository) Get(ctx context.Context, ownerID, habitID, dayKey string) (*db_models.CompletionEvent, error) {
	raw, err := r.store.Get(ctx, ownerID, store.KindCompletions, completionKey(habitID, dayKey))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var event db_models.CompletionEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		r.logger.Warn("dropping unreadable completion event",
			zap.String("owner", ownerID), zap.String("habit", habitID), zap.Error(err))
		return nil, nil
	}
	return &event, nil
}

func (r *CompletionRepository) Put(ctx context.Context, ownerID string, event *db_models.CompletionEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, ownerID, store.KindCompletions, completionKey(event.HabitID, event.Date), raw)
}

// Log returns the habit's full completion history as dayKey -> completed.
func (r *CompletionRepository) Log(ctx context.Context, ownerID, habitID string) (map[string]bool, error) {
	keys, err := r.store.ListKeys(ctx, ownerID, store.KindCompletions, habitID+"/")
	if err != nil {
		return nil, err
	}
	log := make(map[string]bool, len(keys))
	for _, key := range keys {
		raw, err := r.store.Get(ctx, ownerID, store.KindCompletions, key)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}
		var event db_models.CompletionEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			r.logger.Warn("dropping unreadable completion event",
				zap.String("owner", ownerID), zap.String("key", key), zap.Error(err))
			continue
		}
		dayKey := strings.TrimPrefix(key, habitID+"/")
		log[dayKey] = event.Completed
	}
	return log, nil
}

func (r *CompletionRepository) DeleteLog(ctx context.Context, ownerID, habitID string) error {
	keys, err := r.store.ListKeys(ctx, ownerID, store.KindCompletions, habitID+"/")
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := r.store.Delete(ctx, ownerID, store.KindCompletions, key); err != nil {
			return err
		}
	}
	return nil
}
