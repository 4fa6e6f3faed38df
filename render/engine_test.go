package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figkit/figkit"
	"github.com/figkit/figkit/dataset"
)

func sampleTable(t *testing.T) *dataset.Table {
	t.Helper()
	csv := strings.Join([]string{
		"month,sales,cost,profit,units",
		"jan,10,4,6,100",
		"feb,12,5,7,120",
		"mar,14,6,8,90",
		"apr,11,4,7,140",
		"may,15,7,8,110",
	}, "\n")
	tbl, err := dataset.LoadReader(strings.NewReader(csv), dataset.FormatCSV)
	require.NoError(t, err)
	return tbl
}

func baseConfig(ct figkit.ChartType) figkit.ChartConfig {
	cfg := figkit.DefaultConfig()
	cfg.ChartType = ct
	cfg.XColumn = "month"
	cfg.YColumns = []string{"sales", "cost"}
	return cfg
}

func TestInteractiveCoversEveryChartType(t *testing.T) {
	tbl := sampleTable(t)
	eng := New(nil)
	for _, ct := range figkit.ChartTypes() {
		cfg := baseConfig(ct)
		switch ct {
		case figkit.TypeHistogram:
			cfg.XColumn = "sales"
			cfg.YColumns = nil
		case figkit.TypeHeatmap:
			cfg.XColumn = figkit.CorrelationColumn
			cfg.YColumns = []string{"sales", "cost", "profit"}
		case figkit.TypeCandlestick:
			cfg.YColumns = []string{"cost", "sales", "cost", "profit"}
		case figkit.TypeScatter, figkit.TypeBubble,
			figkit.TypeContour, figkit.TypeDensity:
			cfg.XColumn = "units"
		}
		res, err := eng.Render(cfg, tbl, Interactive)
		require.NoError(t, err, "chart type %s", ct)
		require.NotNil(t, res.HTML, "chart type %s", ct)

		var buf bytes.Buffer
		require.NoError(t, res.WriteHTML(&buf), "chart type %s", ct)
		assert.NotZero(t, buf.Len(), "chart type %s", ct)
	}
}

func TestPublicationSupportedSet(t *testing.T) {
	tbl := sampleTable(t)
	eng := New(nil)
	for _, ct := range figkit.ChartTypes() {
		spec, ok := figkit.SpecOf(ct)
		require.True(t, ok)
		cfg := baseConfig(ct)
		if ct == figkit.TypeHistogram {
			cfg.XColumn = "sales"
			cfg.YColumns = nil
		}
		if ct == figkit.TypeHeatmap {
			cfg.XColumn = figkit.CorrelationColumn
			cfg.YColumns = []string{"sales", "cost", "profit"}
		}
		if ct == figkit.TypeScatter {
			cfg.XColumn = "units"
		}
		res, err := eng.Render(cfg, tbl, Publication)
		if !spec.Publication {
			assert.Error(t, err, "chart type %s", ct)
			continue
		}
		require.NoError(t, err, "chart type %s", ct)
		require.NotNil(t, res.Plot, "chart type %s", ct)
	}
}

func TestRenderRejectsUnconfigured(t *testing.T) {
	tbl := sampleTable(t)
	eng := New(nil)
	cfg := figkit.DefaultConfig()
	cfg.ChartType = figkit.TypeHistogram // needs x

	_, err := eng.Render(cfg, tbl, Interactive)
	require.Error(t, err)
	assert.ErrorIs(t, err, figkit.ErrNotConfigured)
}

func TestRenderDropsStaleColumns(t *testing.T) {
	tbl := sampleTable(t)
	eng := New(nil)
	cfg := baseConfig(figkit.TypeLine)
	cfg.YColumns = []string{"sales", "deleted_column"}

	res, err := eng.Render(cfg, tbl, Interactive)
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "deleted_column")
	assert.Equal(t, []string{"sales"}, res.Config.YColumns)
}

func TestInteractiveAnnotationsAllApply(t *testing.T) {
	tbl := sampleTable(t)
	eng := New(nil)
	cfg := baseConfig(figkit.TypeLine)
	cfg.Annotations = figkit.Annotations{
		figkit.TextNote{Text: "note", X: 1, Y: 10},
		figkit.Arrow{Text: "here", X: 2, Y: 12, XEnd: figkit.Float(1), YEnd: figkit.Float(10)},
		figkit.Segment{X: 0, Y: 10, XEnd: figkit.Float(4), YEnd: figkit.Float(15)},
		figkit.Box{X: 1, Y: 10, XEnd: figkit.Float(3), YEnd: figkit.Float(14), Color: "#00FF00"},
		figkit.VLine{X: 2, Text: "launch"},
		figkit.HLine{Y: 12},
	}
	res, err := eng.Render(cfg, tbl, Interactive)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	var buf bytes.Buffer
	require.NoError(t, res.WriteHTML(&buf))
	html := buf.String()
	assert.Contains(t, html, "markPoint")
	assert.Contains(t, html, "markLine")
	assert.Contains(t, html, "markArea")
}

func TestInteractiveIncompleteAnnotationWarns(t *testing.T) {
	tbl := sampleTable(t)
	eng := New(nil)
	cfg := baseConfig(figkit.TypeLine)
	cfg.Annotations = figkit.Annotations{
		figkit.Segment{X: 1, Y: 2}, // missing end point
	}
	res, err := eng.Render(cfg, tbl, Interactive)
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "line annotation")
}

func TestLineSymbolsCycleByTrace(t *testing.T) {
	tbl := sampleTable(t)
	eng := New(nil)
	cfg := baseConfig(figkit.TypeLine)
	cfg.YColumns = []string{"sales", "cost", "profit"}

	res, err := eng.Render(cfg, tbl, Interactive)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, res.WriteHTML(&buf))
	html := buf.String()
	assert.Contains(t, html, `"symbol":"circle"`)
	assert.Contains(t, html, `"symbol":"rect"`)
	assert.Contains(t, html, `"symbol":"triangle"`)
}

func TestBarMergesDuplicateCategories(t *testing.T) {
	csv := "cat,val\nA,1\nB,2\nA,3\nB,4\nA,5\n"
	tbl, err := dataset.LoadReader(strings.NewReader(csv), dataset.FormatCSV)
	require.NoError(t, err)

	cats, values, err := aggregated(tbl, "cat", "val", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, cats)
	assert.Equal(t, []float64{9, 6}, values)
}

func TestRegressionOverlaysBeyondScatter(t *testing.T) {
	tbl := sampleTable(t)
	eng := New(nil)
	cfg := baseConfig(figkit.TypeLine)
	cfg.XColumn = "units"
	cfg.YColumns = []string{"sales"}
	cfg.Regression.Enabled = true

	res, err := eng.Render(cfg, tbl, Interactive)
	require.NoError(t, err)
	for _, w := range res.Warnings {
		assert.NotContains(t, w, "regression")
	}
	var buf bytes.Buffer
	require.NoError(t, res.WriteHTML(&buf))
	assert.Contains(t, buf.String(), "R²")

	res, err = eng.Render(cfg, tbl, Publication)
	require.NoError(t, err)
	for _, w := range res.Warnings {
		assert.NotContains(t, w, "regression")
	}
}

func TestColorColumnSplitsSeries(t *testing.T) {
	csv := strings.Join([]string{
		"x,y,region",
		"1,10,north",
		"2,12,south",
		"3,14,north",
		"4,11,south",
		"5,15,north",
	}, "\n")
	tbl, err := dataset.LoadReader(strings.NewReader(csv), dataset.FormatCSV)
	require.NoError(t, err)
	eng := New(nil)

	for _, ct := range []figkit.ChartType{figkit.TypeScatter, figkit.TypeLine, figkit.TypeBar} {
		cfg := figkit.DefaultConfig()
		cfg.ChartType = ct
		cfg.XColumn = "x"
		cfg.YColumns = []string{"y"}
		cfg.ColorColumn = "region"

		res, err := eng.Render(cfg, tbl, Interactive)
		require.NoError(t, err, "chart type %s", ct)
		var buf bytes.Buffer
		require.NoError(t, res.WriteHTML(&buf))
		html := buf.String()
		assert.Contains(t, html, "north", "chart type %s", ct)
		assert.Contains(t, html, "south", "chart type %s", ct)
	}
}

func TestCorrelationHeatmapShowsValues(t *testing.T) {
	tbl := sampleTable(t)
	eng := New(nil)
	cfg := baseConfig(figkit.TypeHeatmap)
	cfg.XColumn = figkit.CorrelationColumn
	cfg.YColumns = []string{"sales", "cost", "profit"}

	res, err := eng.Render(cfg, tbl, Interactive)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, res.WriteHTML(&buf))
	assert.Contains(t, buf.String(), `"label"`)
}

func TestPublicationAnnotationsAllApply(t *testing.T) {
	tbl := sampleTable(t)
	eng := New(nil)
	cfg := baseConfig(figkit.TypeScatter)
	cfg.XColumn = "units"
	cfg.YColumns = []string{"sales"}
	cfg.Annotations = figkit.Annotations{
		figkit.TextNote{Text: "peak", X: 110, Y: 15},
		figkit.Arrow{Text: "here", X: 110, Y: 15, XEnd: figkit.Float(100), YEnd: figkit.Float(10)},
		figkit.Segment{X: 90, Y: 10, XEnd: figkit.Float(140), YEnd: figkit.Float(12)},
		figkit.Box{X: 100, Y: 10, XEnd: figkit.Float(120), YEnd: figkit.Float(12), Color: "#00FF00"},
		figkit.VLine{X: 120},
		figkit.HLine{Y: 12},
	}
	res, err := eng.Render(cfg, tbl, Publication)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
}

func TestIncompleteAnnotationWarnsNotFails(t *testing.T) {
	tbl := sampleTable(t)
	eng := New(nil)
	cfg := baseConfig(figkit.TypeScatter)
	cfg.XColumn = "units"
	cfg.YColumns = []string{"sales"}
	cfg.Annotations = figkit.Annotations{
		figkit.Segment{X: 1, Y: 2}, // missing end point
	}
	res, err := eng.Render(cfg, tbl, Publication)
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "line annotation")
}

func TestInteractiveImageExportNeedsSnapshot(t *testing.T) {
	tbl := sampleTable(t)
	eng := New(nil)
	res, err := eng.Render(baseConfig(figkit.TypeLine), tbl, Interactive)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = res.WriteImage(&buf, "png")
	assert.ErrorIs(t, err, ErrNeedsSnapshot)
}

func TestSecondaryAxisWarnsOnPublication(t *testing.T) {
	tbl := sampleTable(t)
	eng := New(nil)
	cfg := baseConfig(figkit.TypeLine)
	cfg.YColumns = []string{"sales"}
	cfg.Y2Columns = []string{"units"}

	res, err := eng.Render(cfg, tbl, Publication)
	require.NoError(t, err)
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "units") {
			found = true
		}
	}
	assert.True(t, found)

	// units span 90..140 raw; rescaled they stay inside the sales range
	assert.InDelta(t, 10, res.Plot.Y.Min, 1e-9)
	assert.InDelta(t, 15, res.Plot.Y.Max, 1e-9)
}
