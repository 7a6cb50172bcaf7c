package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/repositories"
)

// flakyHabitRepo fails habit listings for one partition and delegates
// everything else.
type flakyHabitRepo struct {
	repositories.HabitRepositoryInterface
	failOwner string
}

func (r *flakyHabitRepo) ListByOwner(ctx context.Context, ownerID string) ([]db_models.Habit, error) {
	if ownerID == r.failOwner {
		return nil, errors.New("partition unavailable")
	}
	return r.HabitRepositoryInterface.ListByOwner(ctx, ownerID)
}

func newPropagationService(env *testEnv, notified *[]string) *PropagationService {
	roster := NewRosterService(env.groupRepo, zap.NewNop())
	notifier := func(ctx context.Context, userID string) {
		if notified != nil {
			*notified = append(*notified, userID)
		}
	}
	svc := NewPropagationService(env.habitRepo, env.groupRepo, roster, notifier, zap.NewNop())
	svc.now = dayClock("2024-04-01")
	return svc
}

func seedGroupOfThree(t *testing.T, env *testEnv) {
	t.Helper()
	for _, member := range []string{"alice", "bob", "carol"} {
		env.seedMember(t, member, "g1", db_models.SelfRef(), member, 100)
	}
}

func TestPropagationClonesToEveryOtherMember(t *testing.T) {
	env := newTestEnv()
	var notified []string
	svc := newPropagationService(env, &notified)
	ctx := context.Background()

	seedGroupOfThree(t, env)
	source := env.seedHabit(t, "alice", "meditate", "2024-03-01", db_models.FrequencyDaily, 0)
	source.GroupIDs = []string{"g1"}

	svc.PropagateHabit(ctx, source, []string{"g1"})

	for _, member := range []string{"bob", "carol"} {
		habits, err := env.habitRepo.ListByOwner(ctx, member)
		require.NoError(t, err)
		require.Len(t, habits, 1, "member %s", member)
		clone := habits[0]
		assert.Equal(t, "meditate", clone.Name)
		assert.Equal(t, member, clone.OwnerID)
		assert.NotEqual(t, source.ID, clone.ID)
		assert.True(t, clone.HasGroup("g1"))
		assert.False(t, clone.Completed)
		assert.Zero(t, clone.Streak)
		assert.Equal(t, "2024-04-01", clone.CreatedAt)
	}
	assert.ElementsMatch(t, []string{"bob", "carol"}, notified)

	owned, err := env.habitRepo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestPropagationIsIdempotent(t *testing.T) {
	env := newTestEnv()
	svc := newPropagationService(env, nil)
	ctx := context.Background()

	seedGroupOfThree(t, env)
	source := env.seedHabit(t, "alice", "meditate", "2024-03-01", db_models.FrequencyDaily, 0)
	source.GroupIDs = []string{"g1"}

	svc.PropagateHabit(ctx, source, []string{"g1"})
	svc.PropagateHabit(ctx, source, []string{"g1"})
	svc.PropagateHabit(ctx, source, []string{"g1"})

	for _, member := range []string{"alice", "bob", "carol"} {
		habits, err := env.habitRepo.ListByOwner(ctx, member)
		require.NoError(t, err)
		assert.Len(t, habits, 1, "member %s", member)
	}
}

func TestReconcileSkipsUnreadablePartition(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	roster := NewRosterService(env.groupRepo, zap.NewNop())
	habitRepo := &flakyHabitRepo{HabitRepositoryInterface: env.habitRepo, failOwner: "bob"}
	svc := NewPropagationService(habitRepo, env.groupRepo, roster, func(context.Context, string) {}, zap.NewNop())
	svc.now = dayClock("2024-04-01")

	seedGroupOfThree(t, env)
	env.seedMember(t, "dave", "g1", db_models.SelfRef(), "Dave", 300)
	source := env.seedHabit(t, "alice", "meditate", "2024-03-01", db_models.FrequencyDaily, 0)
	source.GroupIDs = []string{"g1"}
	require.NoError(t, env.habitRepo.Save(ctx, source))
	require.NoError(t, env.groupRepo.SaveGroup(ctx, "dave", &db_models.Group{ID: "g1", Name: "Crew"}))

	// Bob's partition is unreadable; Alice's shared habit still reaches
	// Dave and the pass reports success.
	require.NoError(t, svc.ReconcileForUser(ctx, "dave"))

	habits, err := env.habitRepo.ListByOwner(ctx, "dave")
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "meditate", habits[0].Name)
}

func TestReconcilePullsSharedHabitsForJoiner(t *testing.T) {
	env := newTestEnv()
	var notified []string
	svc := newPropagationService(env, &notified)
	ctx := context.Background()

	// Alice shared a habit into g1 before Dave joined; Dave's copy of
	// the group exists but propagation never reached him.
	env.seedMember(t, "alice", "g1", db_models.SelfRef(), "Alice", 100)
	env.seedMember(t, "dave", "g1", db_models.SelfRef(), "Dave", 200)
	source := env.seedHabit(t, "alice", "meditate", "2024-03-01", db_models.FrequencyDaily, 0)
	source.GroupIDs = []string{"g1"}
	require.NoError(t, env.habitRepo.Save(ctx, source))
	require.NoError(t, env.groupRepo.SaveGroup(ctx, "dave", &db_models.Group{ID: "g1", Name: "Morning crew"}))

	require.NoError(t, svc.ReconcileForUser(ctx, "dave"))

	habits, err := env.habitRepo.ListByOwner(ctx, "dave")
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "meditate", habits[0].Name)
	assert.True(t, habits[0].HasGroup("g1"))
	assert.Equal(t, []string{"dave"}, notified)

	// A second pass finds nothing new and stays quiet.
	notified = notified[:0]
	require.NoError(t, svc.ReconcileForUser(ctx, "dave"))
	habits, err = env.habitRepo.ListByOwner(ctx, "dave")
	require.NoError(t, err)
	assert.Len(t, habits, 1)
	assert.Empty(t, notified)
}
