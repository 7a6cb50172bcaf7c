package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePrefixListing(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "alice", KindCompletions, "h1/2024-04-01", []byte(`{}`)))
	require.NoError(t, st.Set(ctx, "alice", KindCompletions, "h1/2024-04-02", []byte(`{}`)))
	require.NoError(t, st.Set(ctx, "alice", KindCompletions, "h2/2024-04-01", []byte(`{}`)))

	keys, err := st.ListKeys(ctx, "alice", KindCompletions, "h1/")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"h1/2024-04-01", "h1/2024-04-02"}, keys)

	all, err := st.ListKeys(ctx, "alice", KindCompletions, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "alice", KindHabits, "h1", []byte(`1`)))
	require.NoError(t, st.Set(ctx, "alice", KindHabits, "h1", []byte(`2`)))

	v, err := st.Get(ctx, "alice", KindHabits, "h1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`2`), v)

	require.NoError(t, st.Delete(ctx, "alice", KindHabits, "h1"))
	v, err = st.Get(ctx, "alice", KindHabits, "h1")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMemoryStorePartitionScan(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "alice", KindGroups, "g1", []byte(`{}`)))
	require.NoError(t, st.Set(ctx, "bob", KindGroups, "g1", []byte(`{}`)))
	require.NoError(t, st.Set(ctx, SharedPartition, KindNudges, "n1", []byte(`{}`)))

	owners, err := st.ListPartitions(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, owners)

	records, err := st.ReadPartition(ctx, "bob", KindGroups)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	// Mutating the returned map must not touch the store.
	delete(records, "g1")
	again, err := st.ReadPartition(ctx, "bob", KindGroups)
	require.NoError(t, err)
	assert.Len(t, again, 1)
}
