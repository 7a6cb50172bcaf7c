package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/models/response_models"
	"nudgeup/internal/repositories"
)

// flakyGroupRepo fails member reads for one partition and delegates
// everything else.
type flakyGroupRepo struct {
	repositories.GroupRepositoryInterface
	failOwner string
}

func (r *flakyGroupRepo) ListMembers(ctx context.Context, ownerID, groupID string) ([]db_models.GroupMember, error) {
	if ownerID == r.failOwner {
		return nil, errors.New("partition unavailable")
	}
	return r.GroupRepositoryInterface.ListMembers(ctx, ownerID, groupID)
}

func (e *testEnv) seedMember(t *testing.T, partitionOwner, groupID string, ref db_models.UserRef, name string, joinedAt int64) {
	t.Helper()
	require.NoError(t, e.groupRepo.SaveMember(context.Background(), partitionOwner, groupID, &db_models.GroupMember{
		ID:       ref,
		Name:     name,
		JoinedAt: joinedAt,
	}))
}

func TestRosterMergeCanonicalizesSelfAlias(t *testing.T) {
	env := newTestEnv()
	svc := NewRosterService(env.groupRepo, zap.NewNop())
	ctx := context.Background()

	// Alice's own partition knows her only under the self alias with
	// the generic label; Bob's partition holds her real id and name.
	env.seedMember(t, "u123", "g1", db_models.SelfRef(), db_models.SelfLabel, 100)
	env.seedMember(t, "bob", "g1", db_models.CanonicalRef("u123"), "Alice", 100)
	env.seedMember(t, "bob", "g1", db_models.SelfRef(), "Bob", 200)

	roster, err := svc.CanonicalRoster(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Alice", roster["u123"].Name)
	assert.Equal(t, "Bob", roster["bob"].Name)

	// Third party sees Alice under her real id and stored name.
	third, err := svc.MergedRoster(ctx, "g1", "carol")
	require.NoError(t, err)
	require.Len(t, third, 2)
	assert.Contains(t, third, response_models.RosterEntry{ID: "u123", Name: "Alice", JoinedAt: 100})

	// Alice sees herself relabeled to the generic self entry.
	own, err := svc.MergedRoster(ctx, "g1", "u123")
	require.NoError(t, err)
	assert.Contains(t, own, response_models.RosterEntry{
		ID:       db_models.SelfAliasID,
		Name:     db_models.SelfLabel,
		JoinedAt: 100,
	})
}

func TestRosterOwnPartitionWinsAmongNamedCopies(t *testing.T) {
	env := newTestEnv()
	svc := NewRosterService(env.groupRepo, zap.NewNop())

	// Alice renamed herself; Bob's partition still has the old name.
	env.seedMember(t, "alice", "g1", db_models.SelfRef(), "Alice v2", 100)
	env.seedMember(t, "bob", "g1", db_models.CanonicalRef("alice"), "Alice", 100)

	roster, err := svc.CanonicalRoster(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "Alice v2", roster["alice"].Name)
}

func TestRosterFallbackDisplayName(t *testing.T) {
	env := newTestEnv()
	svc := NewRosterService(env.groupRepo, zap.NewNop())

	// A member who never set a name must not leak as "You" into a
	// third party's view.
	env.seedMember(t, "abcdefgh1234", "g1", db_models.SelfRef(), db_models.SelfLabel, 100)

	roster, err := svc.MergedRoster(context.Background(), "g1", "viewer")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "abcdefgh1234", roster[0].ID)
	assert.Equal(t, "User abcdefgh", roster[0].Name)
}

func TestRosterSkipsUnreadablePartition(t *testing.T) {
	env := newTestEnv()
	seedGroupOfThree(t, env)

	repo := &flakyGroupRepo{GroupRepositoryInterface: env.groupRepo, failOwner: "bob"}
	svc := NewRosterService(repo, zap.NewNop())

	// One dead partition costs its own records, never the merge.
	roster, err := svc.CanonicalRoster(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Contains(t, roster, "alice")
	assert.Contains(t, roster, "carol")
}

func TestRosterToleratesPartialPartitions(t *testing.T) {
	env := newTestEnv()
	svc := NewRosterService(env.groupRepo, zap.NewNop())

	// Only one of three partitions knows about the group yet.
	env.seedMember(t, "alice", "g1", db_models.SelfRef(), "Alice", 100)
	env.seedMember(t, "bob", "other-group", db_models.SelfRef(), "Bob", 100)

	roster, err := svc.CanonicalRoster(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Alice", roster["alice"].Name)
}
