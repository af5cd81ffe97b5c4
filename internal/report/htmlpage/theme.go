package htmlpage

// Theme selects the report color scheme.
type Theme string

const (
	// ThemeLight is the light color scheme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color scheme.
	ThemeDark Theme = "dark"
)

// ThemeConfig holds the styling values the page template and chart options
// consume.
type ThemeConfig struct {
	Background  string
	Surface     string
	Border      string
	TextPrimary string
	TextMuted   string
	Accent      string

	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// EChartsTheme names a built-in echarts theme; empty keeps the default.
	EChartsTheme string
}

// Palette holds chart series colors for a theme. Stable marks unchanged
// transition groups so they read apart from real changes.
type Palette struct {
	Series []string
	Stable string
}

// Color returns the series color for index i, cycling the palette.
func (p Palette) Color(i int) string {
	return p.Series[i%len(p.Series)]
}

// GetThemeConfig returns the configuration for a theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

// GetPalette returns the chart palette for a theme.
func GetPalette(theme Theme) Palette {
	if theme == ThemeDark {
		return darkPalette
	}

	return lightPalette
}

var lightTheme = ThemeConfig{
	Background:  "#fafaf9", // stone-50.
	Surface:     "#ffffff",
	Border:      "#e7e5e4", // stone-200.
	TextPrimary: "#1c1917", // stone-900.
	TextMuted:   "#78716c", // stone-500.
	Accent:      "#a16207", // amber-700.

	ChartBackground: "transparent",
	ChartGrid:       "#e7e5e4", // stone-200.
	ChartAxis:       "#a8a29e", // stone-400.
	ChartText:       "#44403c", // stone-700.
	ChartTextMuted:  "#78716c", // stone-500.

	EChartsTheme: "",
}

var darkTheme = ThemeConfig{
	Background:  "#0c0a09", // stone-950.
	Surface:     "#1c1917", // stone-900.
	Border:      "#44403c", // stone-700.
	TextPrimary: "#fafaf9", // stone-50.
	TextMuted:   "#a8a29e", // stone-400.
	Accent:      "#d97706", // amber-600.

	ChartBackground: "transparent",
	ChartGrid:       "#44403c", // stone-700.
	ChartAxis:       "#57534e", // stone-600.
	ChartText:       "#d6d3d1", // stone-300.
	ChartTextMuted:  "#a8a29e", // stone-400.

	EChartsTheme: "",
}

var lightPalette = Palette{
	Series: []string{
		"#a16207", // amber-700.
		"#0369a1", // sky-700.
		"#4d7c0f", // lime-700.
		"#7c3aed", // violet-600.
		"#be185d", // pink-700.
		"#0891b2", // cyan-600.
		"#c2410c", // orange-700.
		"#4338ca", // indigo-700.
	},
	Stable: "#78716c", // stone-500.
}

var darkPalette = Palette{
	Series: []string{
		"#fbbf24", // amber-400.
		"#38bdf8", // sky-400.
		"#a3e635", // lime-400.
		"#a78bfa", // violet-400.
		"#f472b6", // pink-400.
		"#22d3ee", // cyan-400.
		"#fb923c", // orange-400.
		"#818cf8", // indigo-400.
	},
	Stable: "#a8a29e", // stone-400.
}
