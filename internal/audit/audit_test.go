package audit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLog(t *testing.T) *Log {
	t.Helper()

	log, err := Open(filepath.Join(t.TempDir(), "audit.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log
}

func TestRecordAndRecent(t *testing.T) {
	log := setupTestLog(t)
	ctx := context.Background()

	require.NoError(t, log.Record(ctx, KindCategoryOverride, "sony a7iv", "video"))
	require.NoError(t, log.Record(ctx, KindStatusOverride, "alice_2026-08-28T09:00:00.000Z", "ready"))
	require.NoError(t, log.Record(ctx, KindCuratedLists, "curated-lists", "replaced"))

	entries, err := log.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, KindCuratedLists, entries[0].Kind)
	assert.Equal(t, KindCategoryOverride, entries[2].Kind)
	assert.Equal(t, "sony a7iv", entries[2].Key)
	assert.Equal(t, "video", entries[2].Value)

	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	}
}

func TestRecent_Limit(t *testing.T) {
	log := setupTestLog(t)
	ctx := context.Background()

	for range 5 {
		require.NoError(t, log.Record(ctx, KindStatusOverride, "key", "preparing"))
	}

	entries, err := log.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestOpen_WithoutLogger(t *testing.T) {
	// A nil logger is valid; Open must not touch it.
	log, err := Open(filepath.Join(t.TempDir(), "audit.db"), nil)
	require.NoError(t, err)

	require.NoError(t, log.Record(context.Background(), KindStatusOverride, "key", "ready"))
	require.NoError(t, log.Close())
}

func TestRecent_Empty(t *testing.T) {
	log := setupTestLog(t)

	entries, err := log.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
