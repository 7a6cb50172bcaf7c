package repositories

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/store"
)

// Groups are keyed by group id; member records are keyed
// "<groupID>/<memberRef>". Every read takes an explicit partition
// owner: cross-partition reconciliation scans partitions one at a
// time through ListPartitions.
type GroupRepositoryInterface interface {
	SaveGroup(ctx context.Context, ownerID string, group *db_models.Group) error
	GetGroup(ctx context.Context, ownerID, groupID string) (*db_models.Group, error)
	ListGroups(ctx context.Context, ownerID string) ([]db_models.Group, error)
	SaveMember(ctx context.Context, ownerID, groupID string, member *db_models.GroupMember) error
	ListMembers(ctx context.Context, ownerID, groupID string) ([]db_models.GroupMember, error)
	ListPartitions(ctx context.Context) ([]string, error)
}

func NewGroupRepository(st store.PartitionStore, logger *zap.Logger) GroupRepositoryInterface {
	return &GroupRepository{store: st, logger: logger}
}

type GroupRepository struct {
	store  store.PartitionStore
	logger *zap.Logger
}

func (r *GroupRepository) SaveGroup(ctx context.Context, ownerID string, group *db_models.Group) error {
	raw, err := json.Marshal(group)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, ownerID, store.KindGroups, group.ID, raw)
}

func (r *GroupRepository) GetGroup(ctx context.Context, ownerID, groupID string) (*db_models.Group, error) {
	raw, err := r.store.Get(ctx, ownerID, store.KindGroups, groupID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var group db_models.Group
	if err := json.Unmarshal(raw, &group); err != nil {
		r.logger.Warn("dropping unreadable group record",
			zap.String("owner", ownerID), zap.String("key", groupID), zap.Error(err))
		return nil, nil
	}
	return &group, nil
}

func (r *GroupRepository) ListGroups(ctx context.Context, ownerID string) ([]db_models.Group, error) {
	records, err := r.store.ReadPartition(ctx, ownerID, store.KindGroups)
	if err != nil {
		return nil, err
	}
	groups := make([]db_models.Group, 0, len(records))
	for key, raw := range records {
		var group db_models.Group
		if err := json.Unmarshal(raw, &group); err != nil {
			r.logger.Warn("dropping unreadable group record",
				zap.String("owner", ownerID), zap.String("key", key), zap.Error(err))
			continue
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (r *GroupRepository) SaveMember(ctx context.Context, ownerID, groupID string, member *db_models.GroupMember) error {
	raw, err := json.Marshal(member)
	if err != nil {
		return err
	}
	key := groupID + "/" + member.ID.String()
	return r.store.Set(ctx, ownerID, store.KindMembers, key, raw)
}

func (r *GroupRepository) ListMembers(ctx context.Context, ownerID, groupID string) ([]db_models.GroupMember, error) {
	keys, err := r.store.ListKeys(ctx, ownerID, store.KindMembers, groupID+"/")
	if err != nil {
		return nil, err
	}
	members := make([]db_models.GroupMember, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.Get(ctx, ownerID, store.KindMembers, key)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}
		var member db_models.GroupMember
		if err := json.Unmarshal(raw, &member); err != nil {
			r.logger.Warn("dropping unreadable member record",
				zap.String("owner", ownerID), zap.String("key", key), zap.Error(err))
			continue
		}
		if member.ID.String() == "" {
			member.ID = db_models.ParseUserRef(strings.TrimPrefix(key, groupID+"/"))
		}
		members = append(members, member)
	}
	return members, nil
}

func (r *GroupRepository) ListPartitions(ctx context.Context) ([]string, error) {
	return r.store.ListPartitions(ctx)
}
