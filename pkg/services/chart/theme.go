package chart

// Palette holds the per-series colors for one theme. Styling is attached per
// series, not per point.
type Palette struct {
	Listings string
	Payouts  string
}

const DefaultTheme = "light"

var palettes = map[string]Palette{
	"light": {Listings: "#EC4899", Payouts: "#3B82F6"},
	"dark":  {Listings: "#F472B6", Payouts: "#60A5FA"},
}

// ThemePalette resolves a theme name, falling back to the default for
// unknown names.
func ThemePalette(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[DefaultTheme]
}
