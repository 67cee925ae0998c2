package profile

// Profile holds the rasterization parameters selected by a compression level.
type Profile struct {
	Quality int     `json:"quality"` // lossy image quality, (0,100]
	Scale   float64 `json:"scale"`   // page dimension multiplier, (0,1]
	DPI     int     `json:"dpi"`     // render resolution in dots per inch
}

// tier pairs a minimum level with the profile it selects.
type tier struct {
	minLevel int
	profile  Profile
}

// tiers is ordered most aggressive first; Resolve takes the first tier whose
// threshold the level meets, so any level at or above the top threshold
// clamps to the top profile.
var tiers = []tier{
	{10, Profile{Quality: 5, Scale: 0.20, DPI: 72}},
	{9, Profile{Quality: 10, Scale: 0.30, DPI: 72}},
	{8, Profile{Quality: 15, Scale: 0.40, DPI: 96}},
	{7, Profile{Quality: 20, Scale: 0.50, DPI: 120}},
	{6, Profile{Quality: 25, Scale: 0.60, DPI: 144}},
	{5, Profile{Quality: 30, Scale: 0.70, DPI: 168}},
	{3, Profile{Quality: 40, Scale: 0.80, DPI: 192}},
	{2, Profile{Quality: 50, Scale: 0.85, DPI: 216}},
}

// weakest applies to level 1 and anything below it.
var weakest = Profile{Quality: 60, Scale: 0.90, DPI: 240}

// Resolve maps a compression level to its rasterization profile. It is a pure
// lookup: same level in, same profile out, no side effects.
func Resolve(level int) Profile {
	for _, t := range tiers {
		if level >= t.minLevel {
			return t.profile
		}
	}
	return weakest
}
