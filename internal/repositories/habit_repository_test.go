package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/store"
)

func TestHabitRepositorySaveAndGet(t *testing.T) {
	st := store.NewMemoryStore()
	repo := NewHabitRepository(st, zap.NewNop())
	ctx := context.Background()

	habit := &db_models.Habit{
		ID:        "h1",
		OwnerID:   "alice",
		Name:      "read",
		Frequency: db_models.FrequencyDaily,
		GroupIDs:  []string{"g1"},
		CreatedAt: "2024-04-01",
	}
	require.NoError(t, repo.Save(ctx, habit))

	got, err := repo.GetByID(ctx, "alice", "h1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, habit, got)

	missing, err := repo.GetByID(ctx, "alice", "h2")
	require.NoError(t, err)
	assert.Nil(t, missing)

	otherPartition, err := repo.GetByID(ctx, "bob", "h1")
	require.NoError(t, err)
	assert.Nil(t, otherPartition)
}

func TestHabitRepositoryCorruptRecordIsAbsent(t *testing.T) {
	st := store.NewMemoryStore()
	repo := NewHabitRepository(st, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "alice", store.KindHabits, "h1", []byte("{not json")))
	require.NoError(t, repo.Save(ctx, &db_models.Habit{ID: "h2", OwnerID: "alice", Name: "read"}))

	got, err := repo.GetByID(ctx, "alice", "h1")
	require.NoError(t, err)
	assert.Nil(t, got)

	habits, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "h2", habits[0].ID)
}

func TestCompletionRepositoryLogAndDelete(t *testing.T) {
	st := store.NewMemoryStore()
	repo := NewCompletionRepository(st, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "alice", &db_models.CompletionEvent{HabitID: "h1", Date: "2024-04-01", Completed: true}))
	require.NoError(t, repo.Put(ctx, "alice", &db_models.CompletionEvent{HabitID: "h1", Date: "2024-04-02", Completed: false}))
	require.NoError(t, repo.Put(ctx, "alice", &db_models.CompletionEvent{HabitID: "h2", Date: "2024-04-01", Completed: true}))

	log, err := repo.Log(ctx, "alice", "h1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"2024-04-01": true, "2024-04-02": false}, log)

	// Overwrite, not append: one event per (habit, day).
	require.NoError(t, repo.Put(ctx, "alice", &db_models.CompletionEvent{HabitID: "h1", Date: "2024-04-02", Completed: true}))
	log, err = repo.Log(ctx, "alice", "h1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"2024-04-01": true, "2024-04-02": true}, log)

	require.NoError(t, repo.DeleteLog(ctx, "alice", "h1"))
	log, err = repo.Log(ctx, "alice", "h1")
	require.NoError(t, err)
	assert.Empty(t, log)

	// Other habits keep their history.
	other, err := repo.Log(ctx, "alice", "h2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}
