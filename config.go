// Package figkit describes charts as plain configuration values. A
// ChartConfig is the single source of truth shared by the renderer,
// the code generator and the template store.
package figkit

type ChartType string

const (
	TypeLine        ChartType = "line"
	TypeScatter     ChartType = "scatter"
	TypeBar         ChartType = "bar"
	TypeHistogram   ChartType = "histogram"
	TypeBox         ChartType = "box"
	TypeViolin      ChartType = "violin"
	TypeHeatmap     ChartType = "heatmap"
	TypeArea        ChartType = "area"
	TypePie         ChartType = "pie"
	TypeBubble      ChartType = "bubble"
	TypeFunnel      ChartType = "funnel"
	TypeTreemap     ChartType = "treemap"
	TypeSunburst    ChartType = "sunburst"
	TypeRadar       ChartType = "radar"
	TypeParallel    ChartType = "parallel"
	TypeCandlestick ChartType = "candlestick"
	TypeWaterfall   ChartType = "waterfall"
	TypePolar       ChartType = "polar"
	TypeContour     ChartType = "contour"
	TypeDensity     ChartType = "density"
)

// CorrelationColumn is the x_column sentinel that switches a heatmap
// into correlation-matrix mode.
const CorrelationColumn = "__correlation__"

const (
	DefaultWidth  = 1200
	DefaultHeight = 800
	DefaultDPI    = 300
)

type AxisConfig struct {
	Label      string   `json:"label,omitempty" yaml:"label,omitempty"`
	Min        *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max        *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	LogScale   bool     `json:"log_scale,omitempty" yaml:"log_scale,omitempty"`
	ShowGrid   bool     `json:"show_grid" yaml:"show_grid"`
	TickFormat string   `json:"tick_format,omitempty" yaml:"tick_format,omitempty"`
	StartZero  bool     `json:"start_zero,omitempty" yaml:"start_zero,omitempty"`
}

type GridConfig struct {
	Show    bool    `json:"show" yaml:"show"`
	Color   string  `json:"color" yaml:"color"`
	Width   float64 `json:"width" yaml:"width"`
	Style   string  `json:"style" yaml:"style"` // solid, dashed, dotted, dashdot
	Opacity float64 `json:"opacity" yaml:"opacity"`
}

// LegendPositions lists the 12 accepted legend anchors: 6 outside the
// plotting area, 6 inside it.
var LegendPositions = []string{
	"right", "left", "top", "bottom", "top_center", "bottom_center",
	"inside_top_right", "inside_top_left", "inside_top_center",
	"inside_bottom_right", "inside_bottom_left", "inside_bottom_center",
}

type LegendConfig struct {
	Show            bool    `json:"show" yaml:"show"`
	Position        string  `json:"position" yaml:"position"`
	Orientation     string  `json:"orientation" yaml:"orientation"` // vertical, horizontal
	Title           string  `json:"title,omitempty" yaml:"title,omitempty"`
	FontSize        int     `json:"font_size" yaml:"font_size"`
	BackgroundAlpha float64 `json:"background_alpha" yaml:"background_alpha"`
}

type RegressionType string

const (
	RegressionLinear     RegressionType = "linear"
	RegressionPolynomial RegressionType = "polynomial"
)

type RegressionConfig struct {
	Enabled      bool           `json:"enabled" yaml:"enabled"`
	Type         RegressionType `json:"type" yaml:"type"`
	Degree       int            `json:"degree" yaml:"degree"` // polynomial, 2..6
	ShowEquation bool           `json:"show_equation" yaml:"show_equation"`
	ShowR2       bool           `json:"show_r2" yaml:"show_r2"`
	LineColor    string         `json:"line_color" yaml:"line_color"`
	LineWidth    float64        `json:"line_width" yaml:"line_width"`
	LineStyle    string         `json:"line_style" yaml:"line_style"` // solid, dash, dot
}

// ChartConfig is the complete description of one chart: data mapping,
// styling, annotations and overlays. It is immutable by convention —
// the UI layer builds a fresh value per render.
type ChartConfig struct {
	ChartType ChartType `json:"chart_type" yaml:"chart_type"`

	XColumn     string   `json:"x_column,omitempty" yaml:"x_column,omitempty"`
	YColumns    []string `json:"y_columns,omitempty" yaml:"y_columns,omitempty"`
	Y2Columns   []string `json:"y2_columns,omitempty" yaml:"y2_columns,omitempty"`
	ColorColumn string   `json:"color_column,omitempty" yaml:"color_column,omitempty"`
	SizeColumn  string   `json:"size_column,omitempty" yaml:"size_column,omitempty"`
	FacetColumn string   `json:"facet_column,omitempty" yaml:"facet_column,omitempty"`

	Aggregation string `json:"aggregation,omitempty" yaml:"aggregation,omitempty"` // mean, sum, count, min, max
	GroupBy     string `json:"group_by,omitempty" yaml:"group_by,omitempty"`

	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`

	XAxis  AxisConfig `json:"x_axis" yaml:"x_axis"`
	YAxis  AxisConfig `json:"y_axis" yaml:"y_axis"`
	Y2Axis AxisConfig `json:"y2_axis" yaml:"y2_axis"`

	Legend LegendConfig `json:"legend" yaml:"legend"`
	Grid   GridConfig   `json:"grid" yaml:"grid"`

	Theme       string   `json:"theme" yaml:"theme"`
	Palette     string   `json:"palette,omitempty" yaml:"palette,omitempty"`
	Colors      []string `json:"colors,omitempty" yaml:"colors,omitempty"`
	MarkerSize  float64  `json:"marker_size" yaml:"marker_size"`
	LineWidth   float64  `json:"line_width" yaml:"line_width"`
	Opacity     float64  `json:"opacity" yaml:"opacity"`
	MarkerStyle string   `json:"marker_style" yaml:"marker_style"` // circle, square, diamond, cross, x, triangle-up, triangle-down, star
	LineStyle   string   `json:"line_style" yaml:"line_style"`     // solid, dash, dot, dashdot

	ShowValues  bool        `json:"show_values,omitempty" yaml:"show_values,omitempty"`
	Annotations Annotations `json:"annotations,omitempty" yaml:"annotations,omitempty"`

	Regression RegressionConfig `json:"regression" yaml:"regression"`
}

// ExportConfig sizes a rendered artifact. Zero fields fall back to
// the package defaults.
type ExportConfig struct {
	Format      string  `json:"format" yaml:"format"` // png, svg, pdf, eps, tiff, html
	Width       int     `json:"width" yaml:"width"`
	Height      int     `json:"height" yaml:"height"`
	DPI         int     `json:"dpi" yaml:"dpi"`
	Transparent bool    `json:"transparent,omitempty" yaml:"transparent,omitempty"`
	FontFamily  string  `json:"font_family,omitempty" yaml:"font_family,omitempty"`
	FontScale   float64 `json:"font_scale,omitempty" yaml:"font_scale,omitempty"`
}

func DefaultExport() ExportConfig {
	return ExportConfig{
		Format: "png",
		Width:  DefaultWidth,
		Height: DefaultHeight,
		DPI:    DefaultDPI,
	}
}

func DefaultAxis() AxisConfig {
	return AxisConfig{ShowGrid: true}
}

func DefaultConfig() ChartConfig {
	return ChartConfig{
		ChartType: TypeScatter,
		Title:     "Figure",
		XAxis:     DefaultAxis(),
		YAxis:     DefaultAxis(),
		Y2Axis:    DefaultAxis(),
		Legend: LegendConfig{
			Show:            true,
			Position:        "right",
			Orientation:     "vertical",
			FontSize:        10,
			BackgroundAlpha: 0.8,
		},
		Grid: GridConfig{
			Show:    true,
			Color:   "#CCCCCC",
			Width:   1,
			Style:   "solid",
			Opacity: 0.5,
		},
		Theme:       "nature",
		MarkerSize:  8,
		LineWidth:   2,
		Opacity:     0.8,
		MarkerStyle: "circle",
		LineStyle:   "solid",
		Regression: RegressionConfig{
			Type:         RegressionLinear,
			Degree:       2,
			ShowEquation: true,
			ShowR2:       true,
			LineColor:    "#ff0000",
			LineWidth:    2,
			LineStyle:    "dash",
		},
	}
}

// Correlation reports whether the config selects the correlation
// heatmap mode.
func (c ChartConfig) Correlation() bool {
	return c.ChartType == TypeHeatmap && (c.XColumn == "" || c.XColumn == CorrelationColumn)
}

// Normalize drops every column reference that is not present in
// columns, so a saved configuration can be replayed against a table
// with a different shape. Unrelated fields are left untouched.
func (c ChartConfig) Normalize(columns []string) ChartConfig {
	known := make(map[string]struct{}, len(columns))
	for _, n := range columns {
		known[n] = struct{}{}
	}
	keep := func(name string) string {
		if name == "" || name == CorrelationColumn {
			return name
		}
		if _, ok := known[name]; ok {
			return name
		}
		return ""
	}
	keepAll := func(names []string) []string {
		var out []string
		for _, n := range names {
			if kept := keep(n); kept != "" {
				out = append(out, kept)
			}
		}
		return out
	}
	c.XColumn = keep(c.XColumn)
	c.YColumns = keepAll(c.YColumns)
	c.Y2Columns = keepAll(c.Y2Columns)
	c.ColorColumn = keep(c.ColorColumn)
	c.SizeColumn = keep(c.SizeColumn)
	c.FacetColumn = keep(c.FacetColumn)
	c.GroupBy = keep(c.GroupBy)
	return c
}
