package category

import (
	"regexp"
	"strings"

	"github.com/kitboardapp/kitboard-server/internal/normalize"
)

// strongLightingPatterns identify lighting fixtures whose product names
// collide with grip/support naming (tubes, panels, mounts). They run
// before the upstream metadata check because the upstream category data
// for these products is wrong often enough that it cannot be trusted.
//
//nolint:gochecknoglobals // Static pattern table
var strongLightingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(astera|pavotube|quasar|skypanel|litemat|gemini)\b`),
	regexp.MustCompile(`\btube\s*light\b`),
	regexp.MustCompile(`\blight\s*(panel|dome|mat)\b`),
	regexp.MustCompile(`\b(led|cob)\b.*\b(fresnel|panel|tube)\b`),
}

// metadataSynonyms maps each category to the terms accepted in upstream
// category-hint fields. Checked in metadataOrder; first hit wins.
//
//nolint:gochecknoglobals // Static synonym table
var metadataSynonyms = map[Category][]string{
	Lighting: {"lighting", "light", "lights", "led", "fixture", "lamp", "luminaire"},
	Video:    {"video", "camera", "cameras", "lens", "lenses", "optics", "monitor", "cinematography"},
	Sound:    {"sound", "audio", "microphone", "microphones", "recording", "recorder"},
	Grip:     {"grip", "support", "supports", "tripod", "tripods", "rigging", "stand", "stands"},
}

// metadataOrder is the fixed evaluation order for metadata synonyms.
//
//nolint:gochecknoglobals // Static priority table
var metadataOrder = []Category{Lighting, Video, Sound, Grip}

// nameKeywords maps each category to the generic keyword fallback applied
// to the asset name itself when every stronger evidence source missed.
//
//nolint:gochecknoglobals // Static keyword table
var nameKeywords = map[Category][]string{
	Video:    {"camera", "camcorder", "cam", "lens", "dslr", "mirrorless"},
	Sound:    {"mic", "microphone", "recorder", "audio", "headphone", "boom"},
	Lighting: {"light", "led", "lamp", "fresnel", "softbox"},
	Grip:     {"tripod", "stand", "clamp", "dolly", "slider", "monopod", "rig"},
}

// keywordOrder is the fixed evaluation order for the keyword fallback.
//
//nolint:gochecknoglobals // Static priority table
var keywordOrder = []Category{Video, Sound, Lighting, Grip}

// Resolver classifies asset names against a curated-list snapshot.
// Exact matches hit a precomputed set; the bidirectional substring scan
// only runs on a miss.
type Resolver struct {
	exact   map[Category]map[string]struct{}
	entries map[Category][]string
}

// NewResolver builds a resolver over one curated-list snapshot.
// Resolvers are cheap to construct and built fresh per request so that
// list edits take effect immediately.
func NewResolver(lists CuratedLists) *Resolver {
	r := &Resolver{
		exact:   make(map[Category]map[string]struct{}, len(listOrder)),
		entries: make(map[Category][]string, len(listOrder)),
	}
	for _, c := range listOrder {
		set := make(map[string]struct{})
		var canonical []string
		for _, entry := range lists.For(c) {
			key := normalize.Canonical(entry)
			if key == "" {
				continue
			}
			set[key] = struct{}{}
			canonical = append(canonical, key)
		}
		r.exact[c] = set
		r.entries[c] = canonical
	}
	return r
}

// Resolve classifies one asset. hints carries the upstream category-hint
// field values in the order they appeared; overrides is keyed by
// canonical asset name. The precedence chain is fixed: the first evidence
// source that matches decides.
func (r *Resolver) Resolve(assetName string, hints []string, overrides map[string]Category) Category {
	name := normalize.Canonical(assetName)

	// 1. Manual override.
	if c, ok := overrides[name]; ok && c.Valid() {
		return c
	}

	if name != "" {
		// 2. Curated list exact match.
		for _, c := range listOrder {
			if _, ok := r.exact[c][name]; ok {
				return c
			}
		}

		// 3. Curated list fuzzy match: bidirectional substring.
		for _, c := range listOrder {
			for _, entry := range r.entries[c] {
				if strings.Contains(name, entry) || strings.Contains(entry, name) {
					return c
				}
			}
		}

		// 4. Strong lighting name patterns. These outrank upstream
		// metadata, which misclassifies exactly these products.
		for _, pat := range strongLightingPatterns {
			if pat.MatchString(name) {
				return Lighting
			}
		}
	}

	// 5. Upstream metadata synonyms over the concatenated hint fields.
	if blob := normalize.Canonical(strings.Join(hints, " ")); blob != "" {
		for _, c := range metadataOrder {
			if containsAnyWord(blob, metadataSynonyms[c]) {
				return c
			}
		}
	}

	// 6. Generic keyword fallback on the asset name.
	if name != "" {
		for _, c := range keywordOrder {
			if containsAnyWord(name, nameKeywords[c]) {
				return c
			}
		}
	}

	// 7. Nothing matched.
	return Uncategorised
}

// containsAnyWord reports whether any candidate occurs in s as a whole
// space-delimited word.
func containsAnyWord(s string, candidates []string) bool {
	fields := strings.FieldsSeq(s)
	words := make(map[string]struct{})
	for f := range fields {
		words[f] = struct{}{}
	}
	for _, cand := range candidates {
		if _, ok := words[cand]; ok {
			return true
		}
	}
	return false
}
