package figkit

// Theme groups the visual constants shared by both backends.
type Theme struct {
	Name        string
	Description string
	Colors      []string
	FontFamily  string
	FontSize    float64
	LineWidth   float64
	MarkerSize  float64
	Background  string
	GridColor   string
	AxisColor   string
	Dark        bool
}

var themes = map[string]Theme{
	"nature": {
		Name:        "Nature",
		Description: "journal style, blue/red/teal",
		Colors:      []string{"#0077B6", "#D62828", "#2A9D8F", "#E9C46A", "#264653"},
		FontFamily:  "Arial",
		FontSize:    12,
		LineWidth:   2,
		MarkerSize:  8,
		Background:  "#FFFFFF",
		GridColor:   "#E0E0E0",
		AxisColor:   "#333333",
	},
	"science": {
		Name:        "Science",
		Description: "journal style, muted primaries",
		Colors:      []string{"#1B4F72", "#922B21", "#196F3D", "#B9770E", "#5B2C6F"},
		FontFamily:  "Helvetica",
		FontSize:    11,
		LineWidth:   1.5,
		MarkerSize:  7,
		Background:  "#FFFFFF",
		GridColor:   "#D5D8DC",
		AxisColor:   "#2C3E50",
	},
	"ieee": {
		Name:        "IEEE",
		Description: "technical publication style",
		Colors:      []string{"#00629B", "#E87722", "#78BE20", "#C4D600", "#A05EB5"},
		FontFamily:  "Times New Roman",
		FontSize:    10,
		LineWidth:   1.5,
		MarkerSize:  6,
		Background:  "#FFFFFF",
		GridColor:   "#E8E8E8",
		AxisColor:   "#1A1A1A",
	},
	"modern_dark": {
		Name:        "Modern Dark",
		Description: "dark background, neon accents",
		Colors:      []string{"#00D4FF", "#FF6B6B", "#4ECDC4", "#FFE66D", "#C792EA"},
		FontFamily:  "Inter",
		FontSize:    12,
		LineWidth:   2,
		MarkerSize:  8,
		Background:  "#1A1A2E",
		GridColor:   "#2D2D44",
		AxisColor:   "#EAEAEA",
		Dark:        true,
	},
	"minimal": {
		Name:        "Minimal",
		Description: "no grid, plain strokes",
		Colors:      []string{"#2C3E50", "#E74C3C", "#27AE60", "#F39C12", "#8E44AD"},
		FontFamily:  "Open Sans",
		FontSize:    11,
		LineWidth:   1.5,
		MarkerSize:  7,
		Background:  "#FFFFFF",
		GridColor:   "#FFFFFF",
		AxisColor:   "#333333",
	},
	"seaborn": {
		Name:        "Seaborn",
		Description: "grey canvas, white grid",
		Colors:      []string{"#4C72B0", "#DD8452", "#55A868", "#C44E52", "#8172B3"},
		FontFamily:  "DejaVu Sans",
		FontSize:    11,
		LineWidth:   1.75,
		MarkerSize:  7,
		Background:  "#EAEAF2",
		GridColor:   "#FFFFFF",
		AxisColor:   "#333333",
	},
	"vibrant": {
		Name:        "Vibrant",
		Description: "saturated palette",
		Colors:      []string{"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF"},
		FontFamily:  "Roboto",
		FontSize:    12,
		LineWidth:   2.5,
		MarkerSize:  9,
		Background:  "#FFFFFF",
		GridColor:   "#F0F0F0",
		AxisColor:   "#333333",
	},
	"academic": {
		Name:        "Academic",
		Description: "greyscale, serif",
		Colors:      []string{"#000000", "#666666", "#999999", "#CCCCCC", "#333333"},
		FontFamily:  "Georgia",
		FontSize:    11,
		LineWidth:   1.5,
		MarkerSize:  6,
		Background:  "#FFFFFF",
		GridColor:   "#D0D0D0",
		AxisColor:   "#000000",
	},
}

var palettes = map[string][]string{
	"default":    {"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A", "#19D3F3", "#FF6692", "#B6E880"},
	"pastel":     {"#B4D4E7", "#F8B4B4", "#B4E7B4", "#E7B4E7", "#F8E7B4", "#B4F8F8", "#F8B4D4", "#E7F8B4"},
	"bold":       {"#E41A1C", "#377EB8", "#4DAF4A", "#984EA3", "#FF7F00", "#FFFF33", "#A65628", "#F781BF"},
	"colorblind": {"#0072B2", "#D55E00", "#009E73", "#CC79A7", "#F0E442", "#56B4E9", "#E69F00", "#000000"},
	"grayscale":  {"#000000", "#333333", "#666666", "#999999", "#BBBBBB", "#DDDDDD", "#EEEEEE", "#F5F5F5"},
}

// GetTheme looks a theme up by key, falling back to nature.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["nature"]
}

// ThemeNames returns the available theme keys.
func ThemeNames() []string {
	return []string{"nature", "science", "ieee", "modern_dark", "minimal", "seaborn", "vibrant", "academic"}
}

// GetPalette looks a palette up by key, falling back to default.
func GetPalette(name string) []string {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["default"]
}

// SeriesColors resolves the colors to cycle through for a config:
// explicit colors win, then the named palette, then the theme.
func (c ChartConfig) SeriesColors() []string {
	if len(c.Colors) > 0 {
		return c.Colors
	}
	if c.Palette != "" {
		return GetPalette(c.Palette)
	}
	return GetTheme(c.Theme).Colors
}
