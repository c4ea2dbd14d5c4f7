package booking

import (
	"sort"
	"strings"
	"time"

	"github.com/kitboardapp/kitboard-server/internal/category"
)

// reservationMarker excludes rows that are placeholders rather than real
// bookings.
const reservationMarker = "booking request"

// Categorizer resolves one raw row to an equipment category.
type Categorizer interface {
	Resolve(assetName string, hints []string, overrides map[string]category.Category) category.Category
}

// GroupParams carries everything one grouping pass needs.
type GroupParams struct {
	// Day is the calendar day to keep rows for.
	Day time.Time
	// Window is the time-quantization window; zero means DefaultWindow.
	Window time.Duration
	// Categorizer classifies each asset.
	Categorizer Categorizer
	// CategoryOverrides is keyed by canonical asset name.
	CategoryOverrides map[string]category.Category
	// StatusOverrides is keyed by group key.
	StatusOverrides map[string]string
}

// includeRow applies the row filter: current-day rows with a real status.
// Rows whose timestamp cannot be parsed stay in; they degrade to an opaque
// bucket key rather than being silently dropped.
func includeRow(row RawRow, day time.Time) bool {
	status := strings.TrimSpace(row.CurrentStatus)
	if status == "" {
		return false
	}
	if strings.Contains(strings.ToLower(status), reservationMarker) {
		return false
	}

	if t, ok := parseTimestamp(row.StartDateTime); ok {
		y1, m1, d1 := t.Date()
		y2, m2, d2 := day.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	return true
}

// identity picks the grouping identity for a row: username, then barcode,
// then the literal "Unknown".
func identity(row RawRow) string {
	if u := strings.TrimSpace(row.Username); u != "" {
		return u
	}
	if b := strings.TrimSpace(row.UserBarcode); b != "" {
		return b
	}
	return "Unknown"
}

// BuildGroups runs the full grouping pass: filter, categorize, bucket,
// and derive statuses. Output order is deterministic: bucket instant
// first, then username.
func BuildGroups(rows []RawRow, p GroupParams) []Group {
	window := p.Window
	if window <= 0 {
		window = DefaultWindow
	}

	byKey := make(map[string]*Group)
	statuses := make(map[string][]string)
	var order []string

	for _, row := range rows {
		if !includeRow(row, p.Day) {
			continue
		}

		user := identity(row)
		bucket := BucketTime(row.StartDateTime, window)
		key := user + "_" + bucket

		g, ok := byKey[key]
		if !ok {
			g = &Group{
				Username:    user,
				BucketStart: bucket,
				GroupKey:    key,
			}
			byKey[key] = g
			order = append(order, key)
		}

		cat := category.Uncategorised
		if p.Categorizer != nil {
			cat = p.Categorizer.Resolve(row.AssetName, row.CategoryHints, p.CategoryOverrides)
		}
		g.Assets = append(g.Assets, Asset{Name: row.AssetName, Category: cat})
		statuses[key] = append(statuses[key], row.CurrentStatus)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		g.Status = DeriveStatus(statuses[key], key, p.StatusOverrides)
		groups = append(groups, *g)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].BucketStart != groups[j].BucketStart {
			return groups[i].BucketStart < groups[j].BucketStart
		}
		return groups[i].Username < groups[j].Username
	})

	return groups
}
