// Package category classifies booked assets into equipment categories.
//
// Classification walks a fixed precedence chain: manual override, curated
// list exact match, curated list fuzzy match, strong lighting name
// patterns, upstream metadata synonyms, then a generic keyword fallback.
// Upstream metadata is known to be unreliable for a subset of products,
// which is why the curated and pattern evidence outranks it.
package category

// Category is one label from the fixed equipment vocabulary.
type Category string

// Equipment categories.
const (
	Video         Category = "video"
	Sound         Category = "sound"
	Lighting      Category = "lighting"
	Grip          Category = "grip"
	Uncategorised Category = "uncategorised"
)

// All returns every valid category label, curated-list priority first.
func All() []Category {
	return []Category{Video, Sound, Lighting, Grip, Uncategorised}
}

// Parse returns the category for a label, reporting whether it is valid.
func Parse(s string) (Category, bool) {
	for _, c := range All() {
		if Category(s) == c {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c is a member of the fixed vocabulary.
func (c Category) Valid() bool {
	_, ok := Parse(string(c))
	return ok
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}
