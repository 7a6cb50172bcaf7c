package repositories

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/store"
)

// Nudges live in the shared partition, keyed by nudge id. The log is
// append-and-resolve: records are overwritten to set resolvedAt but
// never deleted, so cooldown checks can always consult history.
type NudgeRepositoryInterface interface {
	Save(ctx context.Context, nudge *db_models.Nudge) error
	GetByID(ctx context.Context, nudgeID string) (*db_models.Nudge, error)
	ListAll(ctx context.Context) ([]db_models.Nudge, error)
}

func NewNudgeRepository(st store.PartitionStore, logger *zap.Logger) NudgeRepositoryInterface {
	return &NudgeRepository{store: st, logger: logger}
}

type NudgeRepository struct {
	store  store.PartitionStore
	logger *zap.Logger
}

func (r *NudgeRepository) Save(ctx context.Context, nudge *db_models.Nudge) error {
	raw, err := json.Marshal(nudge)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.SharedPartition, store.KindNudges, nudge.ID, raw)
}

func (r *NudgeRepository) GetByID(ctx context.Context, nudgeID string) (*db_models.Nudge, error) {
	raw, err := r.store.Get(ctx, store.SharedPartition, store.KindNudges, nudgeID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var nudge db_models.Nudge
	if err := json.Unmarshal(raw, &nudge); err != nil {
		r.logger.Warn("dropping unreadable nudge record",
			zap.String("key", nudgeID), zap.Error(err))
		return nil, nil
	}
	return &nudge, nil
}

func (r *NudgeRepository) ListAll(ctx context.Context) ([]db_models.Nudge, error) {
	records, err := r.store.ReadPartition(ctx, store.SharedPartition, store.KindNudges)
	if err != nil {
		return nil, err
	}
	nudges := make([]db_models.Nudge, 0, len(records))
	for key, raw := range records {
		var nudge db_models.Nudge
		if err := json.Unmarshal(raw, &nudge); err != nil {
			r.logger.Warn("dropping unreadable nudge record",
				zap.String("key", key), zap.Error(err))
			continue
		}
		nudges = append(nudges, nudge)
	}
	return nudges, nil
}
