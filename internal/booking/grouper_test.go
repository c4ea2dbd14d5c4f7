package booking

import (
	"testing"
	"time"

	"github.com/kitboardapp/kitboard-server/internal/category"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDay() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func testParams() GroupParams {
	return GroupParams{
		Day:    testDay(),
		Window: 5 * time.Minute,
		Categorizer: category.NewResolver(category.CuratedLists{
			Video: []string{"Sony A7IV"},
			Sound: []string{"Zoom H6"},
		}),
	}
}

func TestBuildGroups_SingleRowScenario(t *testing.T) {
	rows := []RawRow{{
		Username:      "Alice",
		AssetName:     "Sony A7IV",
		StartDateTime: "01/06/2024 10:02:00",
		CurrentStatus: "Picked Up",
	}}

	groups := BuildGroups(rows, testParams())
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "Alice", g.Username)
	assert.Equal(t, "2024-06-01T10:00:00.000Z", g.BucketStart)
	assert.Equal(t, "Alice_2024-06-01T10:00:00.000Z", g.GroupKey)
	require.Len(t, g.Assets, 1)
	assert.Equal(t, "Sony A7IV", g.Assets[0].Name)
	assert.Equal(t, category.Video, g.Assets[0].Category)
	assert.Equal(t, StatusReady, g.Status)
}

func TestBuildGroups_MixedStatusesPreparing(t *testing.T) {
	rows := []RawRow{
		{Username: "Alice", AssetName: "Sony A7IV", StartDateTime: "01/06/2024 10:02:00", CurrentStatus: "Issued"},
		{Username: "Alice", AssetName: "Zoom H6", StartDateTime: "01/06/2024 10:04:00", CurrentStatus: "Awaiting Collection"},
	}

	groups := BuildGroups(rows, testParams())
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Assets, 2)
	assert.Equal(t, StatusPreparing, groups[0].Status)
}

func TestBuildGroups_StatusOverrideForcesNotPicked(t *testing.T) {
	p := testParams()
	p.StatusOverrides = map[string]string{
		"Alice_2024-06-01T10:00:00.000Z": "notpicked",
	}

	rows := []RawRow{
		{Username: "Alice", AssetName: "Sony A7IV", StartDateTime: "01/06/2024 10:02:00", CurrentStatus: "Picked Up"},
		{Username: "Alice", AssetName: "Zoom H6", StartDateTime: "01/06/2024 10:03:00", CurrentStatus: "Collected"},
	}

	groups := BuildGroups(rows, p)
	require.Len(t, groups, 1)
	assert.Equal(t, StatusNotPicked, groups[0].Status)
}

func TestBuildGroups_UnparseableTimestampStillGroups(t *testing.T) {
	rows := []RawRow{
		{Username: "Alice", AssetName: "Sony A7IV", StartDateTime: "garbage", CurrentStatus: "Pending"},
		{Username: "Alice", AssetName: "Zoom H6", StartDateTime: "garbage", CurrentStatus: "Pending"},
	}

	groups := BuildGroups(rows, testParams())
	require.Len(t, groups, 1)
	assert.Equal(t, "garbage", groups[0].BucketStart)
	assert.Equal(t, "Alice_garbage", groups[0].GroupKey)
	assert.Len(t, groups[0].Assets, 2)
}

func TestBuildGroups_RowFilter(t *testing.T) {
	rows := []RawRow{
		// Wrong day.
		{Username: "Alice", AssetName: "Sony A7IV", StartDateTime: "02/06/2024 10:00:00", CurrentStatus: "Pending"},
		// Empty status.
		{Username: "Bob", AssetName: "Zoom H6", StartDateTime: "01/06/2024 10:00:00", CurrentStatus: "  "},
		// Reservation placeholder.
		{Username: "Cara", AssetName: "Zoom H6", StartDateTime: "01/06/2024 10:00:00", CurrentStatus: "New Booking Request"},
		// Kept.
		{Username: "Dan", AssetName: "Zoom H6", StartDateTime: "01/06/2024 10:00:00", CurrentStatus: "Pending"},
	}

	groups := BuildGroups(rows, testParams())
	require.Len(t, groups, 1)
	assert.Equal(t, "Dan", groups[0].Username)
}

func TestBuildGroups_IdentityFallbacks(t *testing.T) {
	rows := []RawRow{
		{Username: "  ", UserBarcode: "BC-42", AssetName: "Zoom H6", StartDateTime: "01/06/2024 10:00:00", CurrentStatus: "Pending"},
		{Username: "", UserBarcode: "", AssetName: "Zoom H6", StartDateTime: "01/06/2024 10:00:00", CurrentStatus: "Pending"},
	}

	groups := BuildGroups(rows, testParams())
	require.Len(t, groups, 2)

	names := []string{groups[0].Username, groups[1].Username}
	assert.Contains(t, names, "BC-42")
	assert.Contains(t, names, "Unknown")
}

func TestBuildGroups_SeparateBucketsSeparateGroups(t *testing.T) {
	rows := []RawRow{
		{Username: "Alice", AssetName: "Sony A7IV", StartDateTime: "01/06/2024 10:04:00", CurrentStatus: "Pending"},
		{Username: "Alice", AssetName: "Zoom H6", StartDateTime: "01/06/2024 10:06:00", CurrentStatus: "Pending"},
	}

	groups := BuildGroups(rows, testParams())
	require.Len(t, groups, 2)
	assert.NotEqual(t, groups[0].GroupKey, groups[1].GroupKey)
	// Deterministic order: earlier bucket first.
	assert.Equal(t, "2024-06-01T10:00:00.000Z", groups[0].BucketStart)
	assert.Equal(t, "2024-06-01T10:05:00.000Z", groups[1].BucketStart)
}

func TestBuildGroups_CategoryOverrideApplied(t *testing.T) {
	p := testParams()
	p.CategoryOverrides = map[string]category.Category{
		"sony a7iv": category.Grip,
	}

	rows := []RawRow{
		{Username: "Alice", AssetName: "Sony A7IV", StartDateTime: "01/06/2024 10:02:00", CurrentStatus: "Pending"},
	}

	groups := BuildGroups(rows, p)
	require.Len(t, groups, 1)
	assert.Equal(t, category.Grip, groups[0].Assets[0].Category)
}
