package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/figkit/figkit"
	"github.com/figkit/figkit/dataset"
)

// glyphCycle is indexed by trace position so every series in a figure
// gets a distinct marker before the cycle repeats.
var glyphCycle = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.SquareGlyph{},
	draw.TriangleGlyph{},
	draw.CrossGlyph{},
	draw.PlusGlyph{},
	draw.RingGlyph{},
	draw.BoxGlyph{},
	draw.PyramidGlyph{},
}

func glyphAt(i int) draw.GlyphDrawer {
	return glyphCycle[i%len(glyphCycle)]
}

func (e *Engine) renderPublication(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) error {
	spec, ok := figkit.SpecOf(cfg.ChartType)
	if !ok || !spec.Publication {
		return fmt.Errorf("%s is not supported by the publication backend", cfg.ChartType)
	}
	p := plot.New()
	applyFigureStyle(p, cfg)

	var err error
	switch cfg.ChartType {
	case figkit.TypeLine:
		err = pubLine(res, p, cfg, tbl)
	case figkit.TypeScatter:
		err = pubScatter(res, p, cfg, tbl)
	case figkit.TypeBar:
		err = pubBar(res, p, cfg, tbl)
	case figkit.TypeHistogram:
		err = pubHistogram(res, p, cfg, tbl)
	case figkit.TypeBox:
		err = pubBox(res, p, cfg, tbl)
	case figkit.TypeHeatmap:
		err = pubHeatmap(res, p, cfg, tbl)
	}
	if err != nil {
		return err
	}
	if cfg.Regression.Enabled {
		pubRegression(res, p, cfg, tbl)
	}
	applyAxisLimits(p, cfg)
	plotAnnotations(res, p, cfg)
	res.Plot = p
	return nil
}

// pubRegression overlays the fitted curve on any chart carrying an x/y
// mapping; a mapping that cannot be coerced to numeric pairs warns.
func pubRegression(res *Result, p *plot.Plot, cfg figkit.ChartConfig, tbl *dataset.Table) {
	cols := seriesColumns(cfg, tbl)
	if cfg.XColumn == "" || cfg.XColumn == figkit.CorrelationColumn || len(cols) == 0 {
		res.warnf("regression skipped: needs an x column and a y column")
		return
	}
	xs, ys, err := pairedXY(tbl, cfg.XColumn, cols[0])
	if err != nil {
		res.warnf("regression skipped: %v", err)
		return
	}
	fit, err := fitRegression(cfg.Regression, xs, ys)
	if err != nil {
		res.warnf("regression skipped: %v", err)
		return
	}
	ln, err := plotter.NewLine(xysOf(fit.Xs, fit.Ys))
	if err != nil {
		res.warnf("regression skipped: %v", err)
		return
	}
	ln.Color = parseColor(cfg.Regression.LineColor)
	ln.Width = vg.Points(cfg.Regression.LineWidth)
	applyDashes(ln, cfg.Regression.LineStyle)
	p.Add(ln)
	p.Legend.Add(fit.Label(cfg.Regression), ln)
}

func applyFigureStyle(p *plot.Plot, cfg figkit.ChartConfig) {
	theme := figkit.GetTheme(cfg.Theme)
	p.Title.Text = cfg.Title
	if cfg.Subtitle != "" {
		p.Title.Text = cfg.Title + "\n" + cfg.Subtitle
	}
	p.Title.TextStyle.Font.Size = vg.Points(theme.FontSize + 2)
	p.X.Label.Text = cfg.XAxis.Label
	p.Y.Label.Text = cfg.YAxis.Label
	p.BackgroundColor = parseColor(theme.Background)
	if cfg.Grid.Show && (cfg.XAxis.ShowGrid || cfg.YAxis.ShowGrid) {
		g := plotter.NewGrid()
		g.Vertical.Color = parseColor(cfg.Grid.Color)
		g.Horizontal.Color = parseColor(cfg.Grid.Color)
		if !cfg.XAxis.ShowGrid {
			g.Vertical.Width = 0
		}
		if !cfg.YAxis.ShowGrid {
			g.Horizontal.Width = 0
		}
		p.Add(g)
	}
	if cfg.XAxis.LogScale {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if cfg.YAxis.LogScale {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Legend.Top = true
	p.Legend.Left = cfg.Legend.Position == "left" || cfg.Legend.Position == "inside_top_left"
}

// applyAxisLimits runs after the data plotters so explicit bounds win
// over the automatic range.
func applyAxisLimits(p *plot.Plot, cfg figkit.ChartConfig) {
	if cfg.XAxis.Min != nil {
		p.X.Min = *cfg.XAxis.Min
	}
	if cfg.XAxis.Max != nil {
		p.X.Max = *cfg.XAxis.Max
	}
	if cfg.YAxis.Min != nil {
		p.Y.Min = *cfg.YAxis.Min
	} else if cfg.YAxis.StartZero && p.Y.Min > 0 {
		p.Y.Min = 0
	}
	if cfg.YAxis.Max != nil {
		p.Y.Max = *cfg.YAxis.Max
	}
}

func xysOf(xs, ys []float64) plotter.XYs {
	out := make(plotter.XYs, len(xs))
	for i := range xs {
		out[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return out
}

func pubLine(res *Result, p *plot.Plot, cfg figkit.ChartConfig, tbl *dataset.Table) error {
	colors := cfg.SeriesColors()
	added := 0
	var lo, hi float64
	seeded := false
	for _, col := range seriesColumns(cfg, tbl) {
		xs, ys, err := pairedOrIndexed(tbl, cfg.XColumn, col)
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		ln, err := plotter.NewLine(xysOf(xs, ys))
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		ln.Color = parseColor(colorAt(colors, added))
		ln.Width = vg.Points(cfg.LineWidth)
		applyDashes(ln, cfg.LineStyle)
		p.Add(ln)
		p.Legend.Add(col, ln)
		for _, v := range ys {
			if math.IsNaN(v) {
				continue
			}
			if !seeded {
				lo, hi = v, v
				seeded = true
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		added++
	}
	if added == 0 {
		return fmt.Errorf("no plottable series")
	}
	// one shared scale, so secondary series are mapped into the
	// primary range and flagged in the legend
	for i, col := range cfg.Y2Columns {
		xs, ys, err := pairedOrIndexed(tbl, cfg.XColumn, col)
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		rescale(ys, lo, hi)
		ln, err := plotter.NewLine(xysOf(xs, ys))
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		ln.Color = parseColor(colorAt(colors, added+i))
		ln.Width = vg.Points(cfg.LineWidth)
		ln.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		p.Add(ln)
		p.Legend.Add(col+" (secondary, rescaled)", ln)
		res.warnf("secondary axis rendered on the primary scale for %s", col)
	}
	return nil
}

func pubScatter(res *Result, p *plot.Plot, cfg figkit.ChartConfig, tbl *dataset.Table) error {
	colors := cfg.SeriesColors()
	added := 0
	for _, col := range seriesColumns(cfg, tbl) {
		xs, ys, err := pairedXY(tbl, cfg.XColumn, col)
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		sc, err := plotter.NewScatter(xysOf(xs, ys))
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		sc.GlyphStyle.Color = withAlpha(parseColor(colorAt(colors, added)), cfg.Opacity)
		sc.GlyphStyle.Radius = vg.Points(cfg.MarkerSize / 2)
		sc.GlyphStyle.Shape = glyphAt(added)
		p.Add(sc)
		p.Legend.Add(col, sc)
		added++
	}
	if added == 0 {
		return fmt.Errorf("no plottable series")
	}
	return nil
}

func pubBar(res *Result, p *plot.Plot, cfg figkit.ChartConfig, tbl *dataset.Table) error {
	colors := cfg.SeriesColors()
	cols := seriesColumns(cfg, tbl)
	width := vg.Points(18)
	added := 0
	var cats []string
	for _, col := range cols {
		c, values, err := aggregated(tbl, cfg.XColumn, col, cfg.Aggregation)
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		bars, err := plotter.NewBarChart(plotter.Values(values), width)
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		bars.Color = parseColor(colorAt(colors, added))
		bars.Offset = width * vg.Length(added)
		p.Add(bars)
		p.Legend.Add(col, bars)
		if cats == nil {
			cats = c
		}
		added++
	}
	if added == 0 {
		return fmt.Errorf("no plottable series")
	}
	p.NominalX(cats...)
	return nil
}

func pubHistogram(res *Result, p *plot.Plot, cfg figkit.ChartConfig, tbl *dataset.Table) error {
	values, err := numeric(tbl, cfg.XColumn)
	if err != nil {
		return err
	}
	clean := dropNaN(values)
	if len(clean) == 0 {
		return fmt.Errorf("column %s has no numeric values", cfg.XColumn)
	}
	h, err := plotter.NewHist(plotter.Values(clean), 30)
	if err != nil {
		return err
	}
	h.FillColor = withAlpha(parseColor(colorAt(cfg.SeriesColors(), 0)), cfg.Opacity)
	p.Add(h)
	return nil
}

func pubBox(res *Result, p *plot.Plot, cfg figkit.ChartConfig, tbl *dataset.Table) error {
	var names []string
	added := 0
	for _, col := range seriesColumns(cfg, tbl) {
		values, err := numeric(tbl, col)
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		clean := dropNaN(values)
		if len(clean) == 0 {
			res.warnf("series %s skipped: no numeric values", col)
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(added), plotter.Values(clean))
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		p.Add(box)
		names = append(names, col)
		added++
	}
	if added == 0 {
		return fmt.Errorf("no plottable series")
	}
	p.NominalX(names...)
	return nil
}

// valueGrid adapts a matrix to the heat map plotter.
type valueGrid struct {
	xs, ys []float64
	z      [][]float64 // indexed [row][col]
}

func (g valueGrid) Dims() (int, int)   { return len(g.xs), len(g.ys) }
func (g valueGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g valueGrid) X(c int) float64    { return g.xs[c] }
func (g valueGrid) Y(r int) float64    { return g.ys[r] }

func pubHeatmap(res *Result, p *plot.Plot, cfg figkit.ChartConfig, tbl *dataset.Table) error {
	var (
		matrix [][]float64
		err    error
	)
	cols := cfg.YColumns
	if cfg.Correlation() {
		matrix, err = correlationMatrix(tbl, cols)
		if err != nil {
			return err
		}
	} else {
		matrix = make([][]float64, len(cols))
		for i, col := range cols {
			values, verr := numeric(tbl, col)
			if verr != nil {
				return verr
			}
			matrix[i] = values
		}
	}
	rows := len(matrix)
	width := 0
	for _, r := range matrix {
		if len(r) > width {
			width = len(r)
		}
	}
	if rows == 0 || width == 0 {
		return fmt.Errorf("no plottable values")
	}
	z := make([][]float64, rows)
	for i := range z {
		z[i] = make([]float64, width)
		for j := range z[i] {
			if j < len(matrix[i]) {
				z[i][j] = matrix[i][j]
			} else {
				z[i][j] = math.NaN()
			}
		}
	}
	g := valueGrid{
		xs: indexSeq(width),
		ys: indexSeq(rows),
		z:  z,
	}
	cm := moreland.SmoothBlueRed()
	if cfg.Correlation() {
		cm.SetMin(-1)
		cm.SetMax(1)
	} else {
		lo, hi := gridRange(z)
		cm.SetMin(lo)
		cm.SetMax(hi)
	}
	hm := plotter.NewHeatMap(g, cm.Palette(255))
	p.Add(hm)
	if cfg.Correlation() {
		if err := overlayCellValues(p, z); err != nil {
			res.warnf("correlation values skipped: %v", err)
		}
	}
	return nil
}

// overlayCellValues prints each matrix cell's value at its center.
func overlayCellValues(p *plot.Plot, z [][]float64) error {
	var xys plotter.XYs
	var texts []string
	for r := range z {
		for c, v := range z[r] {
			if math.IsNaN(v) {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(r)})
			texts = append(texts, fmt.Sprintf("%.2f", v))
		}
	}
	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return err
	}
	for i := range lbl.TextStyle {
		lbl.TextStyle[i].XAlign = draw.XCenter
		lbl.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(lbl)
	return nil
}

func indexSeq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func gridRange(z [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range z {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo > hi {
		return 0, 1
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

// pairedOrIndexed behaves like pairedXY but falls back to the row
// index when the x column is not numeric, so category axes still plot.
func pairedOrIndexed(tbl *dataset.Table, xcol, ycol string) ([]float64, []float64, error) {
	xs, ys, err := pairedXY(tbl, xcol, ycol)
	if err != nil {
		return nil, nil, err
	}
	if len(xs) == 0 && xcol != "" {
		return pairedXY(tbl, "", ycol)
	}
	return xs, ys, nil
}

func rescale(values []float64, lo, hi float64) {
	vlo, vhi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v < vlo {
			vlo = v
		}
		if v > vhi {
			vhi = v
		}
	}
	if vlo >= vhi || lo >= hi {
		return
	}
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		values[i] = lo + (v-vlo)/(vhi-vlo)*(hi-lo)
	}
}

func applyDashes(ln *plotter.Line, style string) {
	switch style {
	case "dash", "dashed", "dashdot":
		ln.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	case "dot", "dotted":
		ln.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	}
}
