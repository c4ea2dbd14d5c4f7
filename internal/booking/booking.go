// Package booking turns raw upstream booking rows into deterministic
// per-user/time-slot groups with categories and pickup statuses.
package booking

import (
	"time"

	"github.com/kitboardapp/kitboard-server/internal/category"
)

// RawRow is one booking record as the upstream API reports it. All fields
// are free text; the upstream is not consistent about casing, date formats,
// or which category-hint fields it populates.
type RawRow struct {
	Username      string
	UserBarcode   string
	AssetName     string
	StartDateTime string
	CurrentStatus string

	// CategoryHints collects every populated category-hint field
	// (assetCategoryName, categoryName, department, ...) in upstream order.
	CategoryHints []string
}

// Asset is one classified item inside a group.
type Asset struct {
	Name     string            `json:"name"`
	Category category.Category `json:"category"`
}

// Group is one logical party: every row from the same user inside the same
// time-quantization bucket. Groups are derived per request and never
// persisted.
type Group struct {
	Username    string       `json:"username"`
	BucketStart string       `json:"bucketStartTime"`
	GroupKey    string       `json:"groupKey"`
	Assets      []Asset      `json:"assets"`
	Status      PickupStatus `json:"status"`
}

// DefaultWindow is the time-quantization window collapsing near-simultaneous
// bookings into one group.
const DefaultWindow = 5 * time.Minute
