package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"nudgeup/internal/models/db_models"
	"nudgeup/pkg/memcache"
	"nudgeup/pkg/utils"
)

func TestCreateGroupWritesSelfMember(t *testing.T) {
	env := newTestEnv()
	propagation := newPropagationService(env, nil)
	svc := NewGroupService(env.groupRepo, propagation, memcache.NewInviteCodes(), zap.NewNop())
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "alice", CreateGroupRequest{Name: "Crew", TotalDays: 30, MemberName: "Alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, group.ID)
	assert.Len(t, group.InviteCode, 6)

	members, err := env.groupRepo.ListMembers(ctx, "alice", group.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.True(t, members[0].ID.IsSelf())
	assert.Equal(t, "Alice", members[0].Name)
}

func TestJoinGroupByCodeAndLink(t *testing.T) {
	env := newTestEnv()
	propagation := newPropagationService(env, nil)
	svc := NewGroupService(env.groupRepo, propagation, memcache.NewInviteCodes(), zap.NewNop())
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "alice", CreateGroupRequest{Name: "Crew", MemberName: "Alice"})
	require.NoError(t, err)

	joined, err := svc.JoinGroup(ctx, "bob", group.InviteCode, "Bob", "")
	require.NoError(t, err)
	assert.Equal(t, group.ID, joined.ID)

	// The group copy and membership land in Bob's own partition.
	copied, err := env.groupRepo.GetGroup(ctx, "bob", group.ID)
	require.NoError(t, err)
	require.NotNil(t, copied)
	assert.Equal(t, group.InviteCode, copied.InviteCode)

	members, err := env.groupRepo.ListMembers(ctx, "bob", group.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.True(t, members[0].ID.IsSelf())

	// Join links resolve the same way as bare codes.
	joinedByLink, err := svc.JoinGroup(ctx, "carol", "https://nudgeup.app/join/"+group.InviteCode, "Carol", "")
	require.NoError(t, err)
	assert.Equal(t, group.ID, joinedByLink.ID)

	roster := NewRosterService(env.groupRepo, zap.NewNop())
	merged, err := roster.CanonicalRoster(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, merged, 3)
}

func TestJoinGroupPullsSharedHabits(t *testing.T) {
	env := newTestEnv()
	propagation := newPropagationService(env, nil)
	svc := NewGroupService(env.groupRepo, propagation, memcache.NewInviteCodes(), zap.NewNop())
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "alice", CreateGroupRequest{Name: "Crew", MemberName: "Alice"})
	require.NoError(t, err)

	shared := env.seedHabit(t, "alice", "meditate", "2024-03-01", db_models.FrequencyDaily, 0)
	shared.GroupIDs = []string{group.ID}
	require.NoError(t, env.habitRepo.Save(ctx, shared))

	_, err = svc.JoinGroup(ctx, "bob", group.InviteCode, "Bob", "")
	require.NoError(t, err)

	habits, err := env.habitRepo.ListByOwner(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "meditate", habits[0].Name)
}

func TestCreateGroupRegeneratesCollidingInviteCode(t *testing.T) {
	env := newTestEnv()
	propagation := newPropagationService(env, nil)
	svc := NewGroupService(env.groupRepo, propagation, memcache.NewInviteCodes(), zap.NewNop())
	ctx := context.Background()

	existing, err := svc.CreateGroup(ctx, "alice", CreateGroupRequest{Name: "Crew", MemberName: "Alice"})
	require.NoError(t, err)

	// First draw collides with the existing group's code.
	codes := []string{existing.InviteCode, "BBBBBB"}
	svc.newCode = func() string {
		code := codes[0]
		if len(codes) > 1 {
			codes = codes[1:]
		}
		return code
	}

	group, err := svc.CreateGroup(ctx, "bob", CreateGroupRequest{Name: "Other crew", MemberName: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, "BBBBBB", group.InviteCode)

	// Both codes still resolve to their own group.
	joined, err := svc.JoinGroup(ctx, "carol", existing.InviteCode, "Carol", "")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, joined.ID)
}

func TestJoinGroupBadCode(t *testing.T) {
	env := newTestEnv()
	propagation := newPropagationService(env, nil)
	svc := NewGroupService(env.groupRepo, propagation, memcache.NewInviteCodes(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.JoinGroup(ctx, "bob", "", "Bob", "")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.JoinGroup(ctx, "bob", "NOHOPE", "Bob", "")
	assert.ErrorIs(t, err, utils.ErrGroupNotFound)
}
