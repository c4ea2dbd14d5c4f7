package booking

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus_Automatic(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     PickupStatus
	}{
		{"none fulfilled", []string{"Awaiting Collection", "Pending"}, StatusNotPicked},
		{"some fulfilled", []string{"Issued", "Awaiting Collection"}, StatusPreparing},
		{"all fulfilled", []string{"Picked Up", "Collected"}, StatusReady},
		{"single fulfilled", []string{"Returned"}, StatusReady},
		{"keyword is substring", []string{"Fully Completed"}, StatusReady},
		{"case insensitive", []string{"PICKED UP"}, StatusReady},
		{"empty group", nil, StatusNotPicked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.statuses, "k", nil))
		})
	}
}

func TestDeriveStatus_Monotonic(t *testing.T) {
	// Holding total fixed, raising the fulfilled count never lowers rank.
	total := 4
	prev := -1
	for fulfilled := 0; fulfilled <= total; fulfilled++ {
		statuses := make([]string, 0, total)
		for i := range total {
			if i < fulfilled {
				statuses = append(statuses, "Issued")
			} else {
				statuses = append(statuses, "Awaiting Collection")
			}
		}
		rank := DeriveStatus(statuses, "k", nil).Rank()
		assert.GreaterOrEqual(t, rank, prev,
			fmt.Sprintf("rank dropped at fulfilled=%d", fulfilled))
		prev = rank
	}
}

func TestDeriveStatus_OverrideReplacesComputed(t *testing.T) {
	// Fully fulfilled group forced to Not Picked by a manual override.
	overrides := map[string]string{"Alice_2024-06-01T10:00:00.000Z": "notpicked"}
	got := DeriveStatus([]string{"Picked Up", "Issued"}, "Alice_2024-06-01T10:00:00.000Z", overrides)
	assert.Equal(t, StatusNotPicked, got)

	// Other keys are untouched.
	got = DeriveStatus([]string{"Picked Up"}, "Bob_2024-06-01T10:00:00.000Z", overrides)
	assert.Equal(t, StatusReady, got)
}

func TestDeriveStatus_OverrideMapping(t *testing.T) {
	key := "k"
	tests := []struct {
		value string
		want  PickupStatus
	}{
		{"preparing", StatusPreparing},
		{"ready", StatusReady},
		{"notpicked", StatusNotPicked},
		{"not picked", StatusNotPicked},
	}
	for _, tt := range tests {
		got := DeriveStatus([]string{"Pending"}, key, map[string]string{key: tt.value})
		assert.Equal(t, tt.want, got, tt.value)
	}
}

func TestDeriveStatus_ClearedOverrideRestoresAutomatic(t *testing.T) {
	key := "Alice_bucket"
	auto := DeriveStatus([]string{"Issued", "Pending"}, key, nil)

	withOverride := DeriveStatus([]string{"Issued", "Pending"}, key, map[string]string{key: "ready"})
	assert.Equal(t, StatusReady, withOverride)

	// Removing the entry restores exactly the automatic value.
	cleared := DeriveStatus([]string{"Issued", "Pending"}, key, map[string]string{})
	assert.Equal(t, auto, cleared)
}

func TestParseStatusOverride(t *testing.T) {
	got, ok := ParseStatusOverride("READY")
	assert.True(t, ok)
	assert.Equal(t, StatusReady, got)

	_, ok = ParseStatusOverride("clear")
	assert.False(t, ok)
	_, ok = ParseStatusOverride("bogus")
	assert.False(t, ok)

	assert.True(t, ValidStatusOverride("clear"))
	assert.True(t, ValidStatusOverride("not picked"))
	assert.False(t, ValidStatusOverride("bogus"))
}

func TestValidStatusOverride_AcceptsVocabulary(t *testing.T) {
	for _, v := range StatusOverrideValues {
		assert.True(t, ValidStatusOverride(v), v)
		assert.True(t, ValidStatusOverride("  "+strings.ToUpper(v)+" "), v)
	}
}
