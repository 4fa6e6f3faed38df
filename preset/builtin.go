package preset

import "github.com/figkit/figkit"

var builtinNames = []string{
	"scatter_simple", "line_clean", "bar_grouped", "publication_nature",
}

var builtins = map[string]Entry{
	"scatter_simple": {
		Name:        "scatter_simple",
		Description: "plain scatter with a linear trend",
		Builtin:     true,
		Config: func() figkit.ChartConfig {
			cfg := figkit.DefaultConfig()
			cfg.ChartType = figkit.TypeScatter
			cfg.Regression.Enabled = true
			return cfg
		}(),
	},
	"line_clean": {
		Name:        "line_clean",
		Description: "minimal line chart, no grid",
		Builtin:     true,
		Config: func() figkit.ChartConfig {
			cfg := figkit.DefaultConfig()
			cfg.ChartType = figkit.TypeLine
			cfg.Theme = "minimal"
			cfg.Grid.Show = false
			cfg.XAxis.ShowGrid = false
			cfg.YAxis.ShowGrid = false
			return cfg
		}(),
	},
	"bar_grouped": {
		Name:        "bar_grouped",
		Description: "grouped bars with value labels",
		Builtin:     true,
		Config: func() figkit.ChartConfig {
			cfg := figkit.DefaultConfig()
			cfg.ChartType = figkit.TypeBar
			cfg.ShowValues = true
			cfg.YAxis.StartZero = true
			return cfg
		}(),
	},
	"publication_nature": {
		Name:        "publication_nature",
		Description: "journal-ready styling on the nature theme",
		Builtin:     true,
		Config: func() figkit.ChartConfig {
			cfg := figkit.DefaultConfig()
			cfg.ChartType = figkit.TypeLine
			cfg.Theme = "nature"
			cfg.LineWidth = 1.5
			cfg.MarkerSize = 6
			cfg.Legend.Position = "top_center"
			cfg.Legend.Orientation = "horizontal"
			return cfg
		}(),
	},
}
