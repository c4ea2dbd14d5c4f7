package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitboardapp/kitboard-server/internal/audit"
	"github.com/kitboardapp/kitboard-server/internal/category"
	"github.com/kitboardapp/kitboard-server/internal/errors"
)

func setupOverrideService(t *testing.T) *OverrideService {
	t.Helper()

	st := setupTestStore(t)
	log, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })

	return NewOverrideService(st, log, testLogger())
}

func TestSetCategoryOverride_CanonicalizesKey(t *testing.T) {
	svc := setupOverrideService(t)
	ctx := context.Background()

	key, err := svc.SetCategoryOverride(ctx, SetCategoryOverrideRequest{AssetName: "  SONY A7IV ", Category: "video"})
	require.NoError(t, err)
	assert.Equal(t, "sony a7iv", key)

	overrides, err := svc.CategoryOverrides(ctx)
	require.NoError(t, err)
	assert.Equal(t, category.Video, overrides["sony a7iv"])
}

func TestSetCategoryOverride_RejectsBadInput(t *testing.T) {
	svc := setupOverrideService(t)
	ctx := context.Background()

	_, err := svc.SetCategoryOverride(ctx, SetCategoryOverrideRequest{AssetName: "Sony A7IV", Category: "cameras"})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, err = svc.SetCategoryOverride(ctx, SetCategoryOverrideRequest{AssetName: "   ", Category: "video"})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	// Nothing persisted on rejection.
	overrides, err := svc.CategoryOverrides(ctx)
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestSetStatusOverride_SetAndClear(t *testing.T) {
	svc := setupOverrideService(t)
	ctx := context.Background()
	key := "Alice_2026-08-28T09:00:00.000Z"

	require.NoError(t, svc.SetStatusOverride(ctx, SetStatusOverrideRequest{GroupKey: key, Value: "Ready"}))

	overrides, err := svc.StatusOverrides(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ready", overrides[key])

	require.NoError(t, svc.SetStatusOverride(ctx, SetStatusOverrideRequest{GroupKey: key, Value: "clear"}))

	overrides, err = svc.StatusOverrides(ctx)
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestSetStatusOverride_RejectsUnknownValue(t *testing.T) {
	svc := setupOverrideService(t)

	err := svc.SetStatusOverride(context.Background(), SetStatusOverrideRequest{GroupKey: "some_key", Value: "done"})
	assert.True(t, errors.Is(err, errors.ErrValidation))
	// The rejection names the accepted vocabulary.
	assert.Contains(t, err.Error(), "preparing")
	assert.Contains(t, err.Error(), "clear")
}

func TestUpdateCuratedLists_CleansEntries(t *testing.T) {
	svc := setupOverrideService(t)
	ctx := context.Background()

	saved, err := svc.UpdateCuratedLists(ctx, &category.CuratedLists{
		Video:    []string{"Sony A7IV", "  ", ""},
		Sound:    []string{"Zoom H6"},
		Lighting: []string{"Astera Titan Tube"},
		Grip:     []string{"C-Stand"},
	})
	require.NoError(t, err)
	// Display casing survives; only blanks are dropped.
	assert.Equal(t, []string{"Sony A7IV"}, saved.Video)

	lists, err := svc.CuratedLists(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, lists)
}

func TestOverrideWrites_AreAudited(t *testing.T) {
	svc := setupOverrideService(t)
	ctx := context.Background()

	_, err := svc.SetCategoryOverride(ctx, SetCategoryOverrideRequest{AssetName: "Sony A7IV", Category: "video"})
	require.NoError(t, err)
	require.NoError(t, svc.SetStatusOverride(ctx, SetStatusOverrideRequest{GroupKey: "Alice_x", Value: "preparing"}))
	_, err = svc.UpdateCuratedLists(ctx, &category.CuratedLists{})
	require.NoError(t, err)

	entries, err := svc.RecentAudit(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, audit.KindCuratedLists, entries[0].Kind)
	assert.Equal(t, audit.KindCategoryOverride, entries[2].Kind)
}

func TestRecentAudit_LimitValidated(t *testing.T) {
	svc := setupOverrideService(t)

	_, err := svc.RecentAudit(context.Background(), 0)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}
