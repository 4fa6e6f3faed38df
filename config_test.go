package figkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func annotatedConfig() ChartConfig {
	cfg := DefaultConfig()
	cfg.ChartType = TypeScatter
	cfg.XColumn = "x"
	cfg.YColumns = []string{"a", "b"}
	cfg.Y2Columns = []string{"c"}
	cfg.Title = "Round Trip"
	cfg.Annotations = Annotations{
		TextNote{Text: "note", X: 1, Y: 2, FontSize: 12, Color: "#112233"},
		Arrow{Text: "look", X: 3, Y: 4, XEnd: Float(1), YEnd: Float(2), Head: HeadTriangle},
		Segment{X: 0, Y: 0, XEnd: Float(5), YEnd: Float(5), Color: "#000000"},
		Box{X: 1, Y: 1, XEnd: Float(2), YEnd: Float(2), FillOpacity: 0.3},
		VLine{X: 2.5, Text: "cutoff"},
		HLine{Y: 7, Text: "target", LineWidth: 2},
	}
	return cfg
}

func TestJSONRoundTripPreservesAnnotations(t *testing.T) {
	cfg := annotatedConfig()
	data, err := cfg.ToJSON()
	require.NoError(t, err)

	got, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestYAMLRoundTripPreservesAnnotations(t *testing.T) {
	cfg := annotatedConfig()
	data, err := cfg.ToYAML()
	require.NoError(t, err)

	got, err := FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestTripleConvertIsStable(t *testing.T) {
	cfg := annotatedConfig()
	first, err := cfg.ToJSON()
	require.NoError(t, err)

	back, err := FromJSON(first)
	require.NoError(t, err)
	asYAML, err := back.ToYAML()
	require.NoError(t, err)
	again, err := FromYAML(asYAML)
	require.NoError(t, err)

	second, err := again.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestFromJSONIgnoresUnknownAndDefaultsMissing(t *testing.T) {
	got, err := FromJSON([]byte(`{"chart_type":"bar","mystery_field":1}`))
	require.NoError(t, err)
	assert.Equal(t, TypeBar, got.ChartType)
	assert.Equal(t, "nature", got.Theme)
	assert.True(t, got.Legend.Show)
	assert.Equal(t, 8.0, got.MarkerSize)
}

func TestUnknownAnnotationTypeFails(t *testing.T) {
	_, err := FromJSON([]byte(`{"annotations":[{"type":"sparkle"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sparkle")
}

func TestNormalizeDropsStaleReferences(t *testing.T) {
	cfg := annotatedConfig()
	cfg.ColorColumn = "missing"
	cfg.GroupBy = "also_missing"

	got := cfg.Normalize([]string{"x", "a", "c"})
	assert.Equal(t, "x", got.XColumn)
	assert.Equal(t, []string{"a"}, got.YColumns)
	assert.Equal(t, []string{"c"}, got.Y2Columns)
	assert.Empty(t, got.ColorColumn)
	assert.Empty(t, got.GroupBy)
	assert.Equal(t, cfg.Title, got.Title)
	assert.Len(t, got.Annotations, len(cfg.Annotations))
}

func TestNormalizeKeepsCorrelationSentinel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChartType = TypeHeatmap
	cfg.XColumn = CorrelationColumn
	cfg.YColumns = []string{"a", "b"}

	got := cfg.Normalize([]string{"a", "b"})
	assert.Equal(t, CorrelationColumn, got.XColumn)
	assert.True(t, got.Correlation())
}

func TestValidatePerChartType(t *testing.T) {
	for _, ct := range ChartTypes() {
		spec, ok := SpecOf(ct)
		require.True(t, ok, "descriptor missing for %s", ct)

		empty := DefaultConfig()
		empty.ChartType = ct
		err := empty.Validate()
		require.Error(t, err, "empty mapping must not validate for %s", ct)
		assert.ErrorIs(t, err, ErrNotConfigured, "chart type %s", ct)

		full := DefaultConfig()
		full.ChartType = ct
		full.XColumn = "x"
		full.YColumns = []string{"a", "b"}
		assert.NoError(t, full.Validate(), "chart type %s", ct)

		if spec.NeedsX {
			cfg := full
			cfg.XColumn = ""
			assert.Error(t, cfg.Validate(), "%s requires x", ct)
		}
	}
}

func TestValidateUnknownType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChartType = "hologram"
	err := cfg.Validate()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotConfigured)
}

func TestThemesAndPalettes(t *testing.T) {
	assert.Len(t, ThemeNames(), 8)
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		assert.NotEmpty(t, th.Colors, name)
		assert.NotEmpty(t, th.Background, name)
	}
	assert.Equal(t, GetTheme("nature"), GetTheme("no_such_theme"))
	assert.Len(t, GetPalette("colorblind"), 8)
	assert.Equal(t, GetPalette("default"), GetPalette("no_such_palette"))
}

func TestSeriesColorsPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, GetTheme("nature").Colors, cfg.SeriesColors())

	cfg.Palette = "bold"
	assert.Equal(t, GetPalette("bold"), cfg.SeriesColors())

	cfg.Colors = []string{"#010203"}
	assert.Equal(t, []string{"#010203"}, cfg.SeriesColors())
}
