package booking

import "strings"

// PickupStatus is the human-facing readiness of one group.
type PickupStatus string

// Pickup statuses, in rank order.
const (
	StatusNotPicked PickupStatus = "Not Picked"
	StatusPreparing PickupStatus = "Preparing"
	StatusReady     PickupStatus = "Ready for Collection"
)

// Rank orders statuses for monotonicity: NotPicked < Preparing < Ready.
func (s PickupStatus) Rank() int {
	switch s {
	case StatusPreparing:
		return 1
	case StatusReady:
		return 2
	default:
		return 0
	}
}

// fulfilledKeywords mark a per-asset status text as fulfilled. Matched as
// case-insensitive substrings.
//
//nolint:gochecknoglobals // Static keyword table
var fulfilledKeywords = []string{
	"picked", "ready", "collected", "complete", "completed", "returned", "issued",
}

// StatusOverrideValues are the accepted manual status-override inputs.
// "clear" removes the override instead of setting one.
//
//nolint:gochecknoglobals // Static vocabulary table
var StatusOverrideValues = []string{"preparing", "ready", "notpicked", "not picked", "clear"}

// ParseStatusOverride maps a stored override value to a pickup status.
func ParseStatusOverride(v string) (PickupStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "preparing":
		return StatusPreparing, true
	case "ready":
		return StatusReady, true
	case "notpicked", "not picked":
		return StatusNotPicked, true
	default:
		return "", false
	}
}

// ValidStatusOverride reports whether v is an accepted override input,
// including the "clear" sentinel.
func ValidStatusOverride(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, accepted := range StatusOverrideValues {
		if v == accepted {
			return true
		}
	}
	return false
}

// isFulfilled reports whether one per-asset status text counts as
// fulfilled.
func isFulfilled(status string) bool {
	s := strings.ToLower(status)
	for _, kw := range fulfilledKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// DeriveStatus computes the pickup status for one group from its per-asset
// statuses, then layers any manual override for the group key on top. The
// override always fully replaces the computed value until cleared.
//
// Pure function: mutation of the override map happens only through the
// status-override operation.
func DeriveStatus(statuses []string, groupKey string, overrides map[string]string) PickupStatus {
	fulfilled := 0
	for _, st := range statuses {
		if isFulfilled(st) {
			fulfilled++
		}
	}

	var auto PickupStatus
	switch {
	case fulfilled == 0:
		auto = StatusNotPicked
	case fulfilled < len(statuses):
		auto = StatusPreparing
	default:
		auto = StatusReady
	}

	if raw, ok := overrides[groupKey]; ok {
		if forced, valid := ParseStatusOverride(raw); valid {
			return forced
		}
	}

	return auto
}
