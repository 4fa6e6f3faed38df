package render

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/figkit/figkit"
)

// legendAnchors maps the 12 accepted legend positions onto echarts
// placement. The inside variants land within the plotting area via
// percentage insets.
var legendAnchors = map[string]opts.Legend{
	"right":                {Left: "right", Top: "middle", Orient: "vertical"},
	"left":                 {Left: "left", Top: "middle", Orient: "vertical"},
	"top":                  {Left: "right", Top: "top", Orient: "horizontal"},
	"bottom":               {Left: "right", Top: "bottom", Orient: "horizontal"},
	"top_center":           {Left: "center", Top: "top", Orient: "horizontal"},
	"bottom_center":        {Left: "center", Top: "bottom", Orient: "horizontal"},
	"inside_top_right":     {Left: "75%", Top: "12%", Orient: "vertical"},
	"inside_top_left":      {Left: "12%", Top: "12%", Orient: "vertical"},
	"inside_top_center":    {Left: "center", Top: "12%", Orient: "horizontal"},
	"inside_bottom_right":  {Left: "75%", Top: "80%", Orient: "vertical"},
	"inside_bottom_left":   {Left: "12%", Top: "80%", Orient: "vertical"},
	"inside_bottom_center": {Left: "center", Top: "80%", Orient: "horizontal"},
}

var markerSymbols = map[string]string{
	"circle":        "circle",
	"square":        "rect",
	"diamond":       "diamond",
	"cross":         "pin",
	"x":             "pin",
	"triangle-up":   "triangle",
	"triangle-down": "triangle",
	"star":          "pin",
}

var dashStyles = map[string]string{
	"solid":   "solid",
	"dash":    "dashed",
	"dashed":  "dashed",
	"dot":     "dotted",
	"dotted":  "dotted",
	"dashdot": "dashed",
}

func symbolOf(style string) string {
	if s, ok := markerSymbols[style]; ok {
		return s
	}
	return "circle"
}

// symbolCycle is indexed by trace position, the interactive twin of
// the publication glyph cycle, so every series keeps a distinct marker.
var symbolCycle = []string{
	"circle", "rect", "triangle", "diamond",
	"roundRect", "pin", "arrow", "emptyCircle",
}

func symbolAt(i int) string {
	return symbolCycle[i%len(symbolCycle)]
}

func dashOf(style string) string {
	if s, ok := dashStyles[style]; ok {
		return s
	}
	return "solid"
}

func colorAt(colors []string, i int) string {
	if len(colors) == 0 {
		return ""
	}
	return colors[i%len(colors)]
}

// globalOpts assembles the option set every interactive chart shares:
// canvas, title, colors, legend and tooltip.
func globalOpts(cfg figkit.ChartConfig, trigger string) []charts.GlobalOpts {
	theme := figkit.GetTheme(cfg.Theme)
	out := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       cfg.Title,
			Width:           fmt.Sprintf("%dpx", figkit.DefaultWidth),
			Height:          fmt.Sprintf("%dpx", figkit.DefaultHeight),
			BackgroundColor: theme.Background,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    cfg.Title,
			Subtitle: cfg.Subtitle,
		}),
		charts.WithColorsOpts(opts.Colors(cfg.SeriesColors())),
		charts.WithLegendOpts(legendOpts(cfg.Legend)),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: trigger}),
	}
	return out
}

func legendOpts(lc figkit.LegendConfig) opts.Legend {
	legend := legendAnchors["right"]
	if anchor, ok := legendAnchors[lc.Position]; ok {
		legend = anchor
	}
	if lc.Orientation != "" {
		legend.Orient = lc.Orientation
	}
	legend.Show = opts.Bool(lc.Show)
	if lc.FontSize > 0 {
		legend.TextStyle = &opts.TextStyle{FontSize: lc.FontSize}
	}
	return legend
}

// axisOpts translates one axis config into echarts options, shared by
// x and y sides.
func xAxisOpts(cfg figkit.ChartConfig, category bool) charts.GlobalOpts {
	ax := opts.XAxis{
		Name:      cfg.XAxis.Label,
		SplitLine: &opts.SplitLine{Show: opts.Bool(cfg.XAxis.ShowGrid && cfg.Grid.Show)},
	}
	if category {
		ax.Type = "category"
	} else {
		ax.Type = "value"
		if cfg.XAxis.LogScale {
			ax.Type = "log"
		}
		if cfg.XAxis.Min != nil {
			ax.Min = *cfg.XAxis.Min
		}
		if cfg.XAxis.Max != nil {
			ax.Max = *cfg.XAxis.Max
		}
	}
	return charts.WithXAxisOpts(ax)
}

func yAxisOpts(cfg figkit.ChartConfig) charts.GlobalOpts {
	ax := opts.YAxis{
		Name:      cfg.YAxis.Label,
		Type:      "value",
		SplitLine: &opts.SplitLine{Show: opts.Bool(cfg.YAxis.ShowGrid && cfg.Grid.Show)},
	}
	if cfg.YAxis.LogScale {
		ax.Type = "log"
	}
	if cfg.YAxis.Min != nil {
		ax.Min = *cfg.YAxis.Min
	} else if cfg.YAxis.StartZero {
		ax.Min = 0
	}
	if cfg.YAxis.Max != nil {
		ax.Max = *cfg.YAxis.Max
	}
	return charts.WithYAxisOpts(ax)
}

// secondYAxis is the dashed right-hand axis used by y2 series.
func secondYAxis(cfg figkit.ChartConfig) opts.YAxis {
	return opts.YAxis{
		Name:      cfg.Y2Axis.Label,
		Type:      "value",
		SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
	}
}

// yAxisIndex routes a series to the secondary axis.
func yAxisIndex(i int) charts.SeriesOpts {
	return func(s *charts.SingleSeries) {
		s.YAxisIndex = i
	}
}
