package store

import "context"

// Entity kinds, one key space per kind inside each owner's partition.
const (
	KindHabits      = "habits"
	KindCompletions = "completions"
	KindGroups      = "groups"
	KindMembers     = "members"
	KindNudges      = "nudges"
)

// SharedPartition holds records that are logically global rather than
// per-owner. Nudges live here: they carry real to/from ids, so they
// can be centralized without an owner.
const SharedPartition = "_shared"

// PartitionStore is per-owner, per-kind key-value persistence with
// JSON values. There are no cross-key transactions; within a
// partition, last write wins per key.
//
// ListPartitions/ReadPartition are the only sanctioned way to look at
// other owners' data. Reconciliation code goes through them so a real
// multi-tenant backend can put an access-control check in one place.
type PartitionStore interface {
	// Get returns nil, nil when the key is absent.
	Get(ctx context.Context, ownerID, kind, key string) ([]byte, error)
	Set(ctx context.Context, ownerID, kind, key string, value []byte) error
	Delete(ctx context.Context, ownerID, kind, key string) error
	ListKeys(ctx context.Context, ownerID, kind, prefix string) ([]string, error)

	ListPartitions(ctx context.Context) ([]string, error)
	ReadPartition(ctx context.Context, ownerID, kind string) (map[string][]byte, error)
}
