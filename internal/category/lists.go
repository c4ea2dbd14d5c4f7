package category

// CuratedLists holds the technician-maintained asset-name lists, one per
// equipment category. Entries are compared in canonical form, so callers
// may store them in display casing.
type CuratedLists struct {
	Video    []string `json:"video"`
	Sound    []string `json:"sound"`
	Lighting []string `json:"lighting"`
	Grip     []string `json:"grip"`
}

// listOrder is the fixed priority order for curated-list checks.
//
//nolint:gochecknoglobals // Static priority table
var listOrder = []Category{Video, Sound, Lighting, Grip}

// For returns the list entries for a category. Uncategorised has no list.
func (l CuratedLists) For(c Category) []string {
	switch c {
	case Video:
		return l.Video
	case Sound:
		return l.Sound
	case Lighting:
		return l.Lighting
	case Grip:
		return l.Grip
	default:
		return nil
	}
}

// DefaultCuratedLists returns the starter lists seeded on first run.
// Technicians replace these through the curated-lists endpoint.
func DefaultCuratedLists() CuratedLists {
	return CuratedLists{
		Video: []string{
			"Sony A7IV",
			"Sony FX30",
			"Canon C70",
			"Blackmagic Pocket 6K",
			"Canon EF 24-70mm f/2.8",
		},
		Sound: []string{
			"Zoom H6",
			"Rode NT1",
			"Sennheiser MKE 600",
			"Tascam DR-40X",
		},
		Lighting: []string{
			"Aputure 300d",
			"Nanlite Forza 60",
			"Astera Titan Tube",
			"Godox SL60W",
		},
		Grip: []string{
			"Manfrotto 504X",
			"C-Stand",
			"Sachtler Ace XL",
			"Shoulder Rig",
		},
	}
}
