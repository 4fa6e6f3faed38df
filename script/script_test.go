package script

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figkit/figkit"
	"github.com/figkit/figkit/render"
)

func configFor(ct figkit.ChartType) figkit.ChartConfig {
	cfg := figkit.DefaultConfig()
	cfg.ChartType = ct
	cfg.XColumn = "x"
	cfg.YColumns = []string{"a", "b"}
	if ct == figkit.TypeHistogram {
		cfg.YColumns = nil
	}
	return cfg
}

func TestGenerateCoversEveryChartType(t *testing.T) {
	for _, ct := range figkit.ChartTypes() {
		src, err := Generate(configFor(ct), render.Interactive, Options{})
		require.NoError(t, err, "chart type %s", ct)
		assert.Contains(t, src, "package main", "chart type %s", ct)
		assert.Contains(t, src, string(ct), "chart type %s", ct)
		assert.Contains(t, src, "render.Interactive", "chart type %s", ct)
	}
}

func TestGeneratePublicationMatchesDescriptor(t *testing.T) {
	for _, ct := range figkit.ChartTypes() {
		spec, ok := figkit.SpecOf(ct)
		require.True(t, ok)
		src, err := Generate(configFor(ct), render.Publication, Options{})
		require.NoError(t, err, "chart type %s", ct)
		if !spec.Publication {
			assert.Contains(t, src, "no publication form", "chart type %s", ct)
			assert.NotContains(t, src, "render.Publication", "chart type %s", ct)
			continue
		}
		assert.Contains(t, src, "render.Publication", "chart type %s", ct)
		assert.Contains(t, src, "figure.png", "chart type %s", ct)
	}
}

func TestGenerateCombined(t *testing.T) {
	src, err := GenerateCombined(configFor(figkit.TypeScatter), Options{})
	require.NoError(t, err)
	assert.Contains(t, src, "render.Interactive")
	assert.Contains(t, src, "render.Publication")
	assert.Contains(t, src, "figure.html")
	assert.Contains(t, src, "figure.png")

	src, err = GenerateCombined(configFor(figkit.TypeRadar), Options{})
	require.NoError(t, err)
	assert.Contains(t, src, "render.Interactive")
	assert.NotContains(t, src, "render.Publication")
}

func TestGenerateEmbedsConfig(t *testing.T) {
	cfg := configFor(figkit.TypeScatter)
	cfg.Title = "Embedded Title"
	src, err := Generate(cfg, render.Interactive, Options{DataPath: "sales.csv", OutputPath: "out.html"})
	require.NoError(t, err)
	assert.Contains(t, src, "Embedded Title")
	assert.Contains(t, src, `"sales.csv"`)
	assert.Contains(t, src, `"out.html"`)
	assert.Contains(t, src, "// Columns used: x, a, b")
	assert.Equal(t, "Embedded Title", embeddedConfig(t, src).Title)
}

func TestGenerateRejectsUnconfigured(t *testing.T) {
	cfg := figkit.DefaultConfig()
	cfg.ChartType = figkit.TypeHistogram // no x column set
	_, err := Generate(cfg, render.Interactive, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, figkit.ErrNotConfigured)
}

func embeddedConfig(t *testing.T, src string) figkit.ChartConfig {
	t.Helper()
	const marker = "const configJSON = "
	start := strings.Index(src, marker)
	require.Greater(t, start, 0)
	rest := src[start+len(marker):]
	end := strings.Index(rest, "\n")
	require.Greater(t, end, 0)

	raw, err := strconv.Unquote(rest[:end])
	require.NoError(t, err)
	parsed, err := figkit.FromJSON([]byte(raw))
	require.NoError(t, err)
	return parsed
}

func TestGeneratedSourceRoundTripsConfig(t *testing.T) {
	cfg := configFor(figkit.TypeLine)
	src, err := Generate(cfg, render.Interactive, Options{})
	require.NoError(t, err)

	parsed := embeddedConfig(t, src)
	assert.Equal(t, cfg.ChartType, parsed.ChartType)
	assert.Equal(t, cfg.YColumns, parsed.YColumns)
}

func TestGenerateSurvivesBacktickInTitle(t *testing.T) {
	cfg := configFor(figkit.TypeScatter)
	cfg.Title = "Revenue per `region`"
	src, err := Generate(cfg, render.Interactive, Options{})
	require.NoError(t, err)
	assert.NotContains(t, src, "configJSON = `")

	parsed := embeddedConfig(t, src)
	assert.Equal(t, cfg.Title, parsed.Title)
}
