package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitboardapp/kitboard-server/internal/category"
)

// setupTestStore creates a temporary store for testing
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "kitboard-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := New(dbPath, nil)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

func TestCategoryOverrides_EmptyByDefault(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	overrides, err := store.CategoryOverrides(context.Background())
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestSetCategoryOverride(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SetCategoryOverride(ctx, "sony a7iv", category.Video))
	require.NoError(t, store.SetCategoryOverride(ctx, "astera titan tube", category.Lighting))

	overrides, err := store.CategoryOverrides(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]category.Category{
		"sony a7iv":         category.Video,
		"astera titan tube": category.Lighting,
	}, overrides)

	// Last writer wins for the same name.
	require.NoError(t, store.SetCategoryOverride(ctx, "sony a7iv", category.Grip))
	overrides, err = store.CategoryOverrides(ctx)
	require.NoError(t, err)
	assert.Equal(t, category.Grip, overrides["sony a7iv"])
}

func TestStatusOverrides(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	overrides, err := store.StatusOverrides(ctx)
	require.NoError(t, err)
	assert.Empty(t, overrides)

	key := "alice_2026-08-28T09:00:00.000Z"
	require.NoError(t, store.SetStatusOverride(ctx, key, "ready"))

	overrides, err = store.StatusOverrides(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{key: "ready"}, overrides)

	require.NoError(t, store.DeleteStatusOverride(ctx, key))

	overrides, err = store.StatusOverrides(ctx)
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestDeleteStatusOverride_MissingKeyIsNoop(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NoError(t, store.DeleteStatusOverride(context.Background(), "never-set"))
}

func TestCuratedLists_SeedWhenUnset(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	lists, err := store.CuratedLists(context.Background())
	require.NoError(t, err)
	seed := category.DefaultCuratedLists()
	assert.Equal(t, &seed, lists)
}

func TestUpdateCuratedLists(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	want := category.CuratedLists{
		Video:    []string{"sony a7iv"},
		Sound:    []string{"rode ntg5"},
		Lighting: []string{"astera titan tube"},
		Grip:     []string{"c-stand"},
	}
	require.NoError(t, store.UpdateCuratedLists(ctx, &want))

	got, err := store.CuratedLists(ctx)
	require.NoError(t, err)
	assert.Equal(t, &want, got)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "kitboard-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	store, err := New(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, store.SetCategoryOverride(ctx, "sony a7iv", category.Video))
	require.NoError(t, store.Close())

	store, err = New(dbPath, nil)
	require.NoError(t, err)
	defer store.Close()

	overrides, err := store.CategoryOverrides(ctx)
	require.NoError(t, err)
	assert.Equal(t, category.Video, overrides["sony a7iv"])
}
