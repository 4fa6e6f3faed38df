package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"github.com/figkit/figkit"
	"github.com/figkit/figkit/dataset"
)

func (e *Engine) renderInteractive(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) error {
	var (
		ch  htmlRenderer
		err error
	)
	switch cfg.ChartType {
	case figkit.TypeLine:
		ch, err = buildLine(res, cfg, tbl, false)
	case figkit.TypeArea:
		ch, err = buildLine(res, cfg, tbl, true)
	case figkit.TypeScatter:
		ch, err = buildScatter(res, cfg, tbl, false)
	case figkit.TypeBubble:
		ch, err = buildScatter(res, cfg, tbl, true)
	case figkit.TypeBar:
		ch, err = buildBar(res, cfg, tbl)
	case figkit.TypeWaterfall:
		ch, err = buildWaterfall(res, cfg, tbl)
	case figkit.TypeHistogram:
		ch, err = buildHistogram(res, cfg, tbl)
	case figkit.TypeBox:
		ch, err = buildBox(res, cfg, tbl)
	case figkit.TypeViolin:
		res.warnf("violin rendered as box plot on the interactive backend")
		ch, err = buildBox(res, cfg, tbl)
	case figkit.TypeHeatmap:
		ch, err = buildHeatmap(res, cfg, tbl)
	case figkit.TypeContour:
		res.warnf("contour rendered as a binned heatmap on the interactive backend")
		ch, err = buildDensity(res, cfg, tbl)
	case figkit.TypeDensity:
		ch, err = buildDensity(res, cfg, tbl)
	case figkit.TypePie:
		ch, err = buildPie(res, cfg, tbl)
	case figkit.TypeFunnel:
		ch, err = buildFunnel(res, cfg, tbl)
	case figkit.TypeTreemap:
		ch, err = buildTreemap(res, cfg, tbl)
	case figkit.TypeSunburst:
		ch, err = buildSunburst(res, cfg, tbl)
	case figkit.TypeRadar:
		ch, err = buildRadar(res, cfg, tbl)
	case figkit.TypePolar:
		res.warnf("polar rendered on a radial category grid")
		ch, err = buildPolar(res, cfg, tbl)
	case figkit.TypeParallel:
		ch, err = buildParallel(res, cfg, tbl)
	case figkit.TypeCandlestick:
		ch, err = buildCandlestick(res, cfg, tbl)
	default:
		err = fmt.Errorf("unsupported chart type %q", cfg.ChartType)
	}
	if err != nil {
		return err
	}
	if cfg.Regression.Enabled {
		attachRegression(res, ch, cfg, tbl)
	}
	res.HTML = ch
	return nil
}

// attachRegression overlays the fitted curve on any cartesian chart
// carrying an x/y mapping. Shapes without a rectangular grid warn
// instead of failing.
func attachRegression(res *Result, ch htmlRenderer, cfg figkit.ChartConfig, tbl *dataset.Table) {
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
	line := charts.NewLine()
	data := make([]opts.LineData, len(fit.Xs))
	for i := range fit.Xs {
		data[i] = opts.LineData{Value: []any{fit.Xs[i], fit.Ys[i]}}
	}
	line.AddSeries(fit.Label(cfg.Regression), data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Color: cfg.Regression.LineColor,
			Width: float32(cfg.Regression.LineWidth),
			Type:  dashOf(cfg.Regression.LineStyle),
		}))
	switch c := ch.(type) {
	case *charts.Scatter:
		c.Overlap(line)
	case *charts.Line:
		c.Overlap(line)
	case *charts.Bar:
		c.Overlap(line)
	default:
		res.warnf("regression is not drawn on %s charts", cfg.ChartType)
	}
}

func lineData(values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = opts.LineData{Value: nil}
			continue
		}
		out[i] = opts.LineData{Value: v}
	}
	return out
}

func buildLine(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table, area bool) (htmlRenderer, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(append(globalOpts(cfg, "axis"), xAxisOpts(cfg, true), yAxisOpts(cfg))...)
	if len(cfg.Y2Columns) > 0 {
		line.ExtendYAxis(secondYAxis(cfg))
	}
	line.SetXAxis(categories(tbl, cfg.XColumn, tbl.Len()))

	marks := interactiveAnnotations(res, cfg)
	lineSeriesOpts := func(i int) []charts.SeriesOpts {
		so := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{
				ShowSymbol: opts.Bool(true),
				Symbol:     symbolAt(i),
				SymbolSize: float32(cfg.MarkerSize),
			}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Width:   float32(cfg.LineWidth),
				Type:    dashOf(cfg.LineStyle),
				Opacity: float32(cfg.Opacity),
			}),
		}
		if area {
			so = append(so, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: float32(cfg.Opacity)}))
		}
		return so
	}

	cols := seriesColumns(cfg, tbl)
	if cfg.ColorColumn != "" && len(cols) > 0 {
		return lineByColor(res, line, cfg, tbl, cols[0], marks, lineSeriesOpts)
	}

	added := 0
	for i, col := range cols {
		values, err := numeric(tbl, col)
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		so := lineSeriesOpts(i)
		if added == 0 {
			so = append(so, marks...)
		}
		line.AddSeries(col, lineData(values), so...)
		added++
	}
	for i, col := range cfg.Y2Columns {
		values, err := numeric(tbl, col)
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		line.AddSeries(col, lineData(values),
			yAxisIndex(1),
			charts.WithLineChartOpts(opts.LineChart{
				ShowSymbol: opts.Bool(true),
				Symbol:     symbolAt(len(cols) + i),
				SymbolSize: float32(cfg.MarkerSize),
			}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: float32(cfg.LineWidth),
				Type:  "dashed",
			}))
		added++
	}
	if added == 0 {
		return nil, fmt.Errorf("no plottable series")
	}
	return line, nil
}

// lineByColor splits the first y column into one trace per distinct
// value of the color column, rows outside a group left as gaps.
func lineByColor(res *Result, line *charts.Line, cfg figkit.ChartConfig, tbl *dataset.Table, ycol string, marks []charts.SeriesOpts, seriesOpts func(int) []charts.SeriesOpts) (htmlRenderer, error) {
	values, err := numeric(tbl, ycol)
	if err != nil {
		return nil, err
	}
	groups, err := labels(tbl, cfg.ColorColumn)
	if err != nil {
		return nil, err
	}
	var names []string
	idx := make(map[string]int)
	rows := make([][]opts.LineData, 0)
	for i, v := range values {
		if i >= len(groups) {
			break
		}
		g, ok := idx[groups[i]]
		if !ok {
			g = len(names)
			idx[groups[i]] = g
			names = append(names, groups[i])
			gap := make([]opts.LineData, len(values))
			for k := range gap {
				gap[k] = opts.LineData{Value: nil}
			}
			rows = append(rows, gap)
		}
		if !math.IsNaN(v) {
			rows[g][i] = opts.LineData{Value: v}
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no plottable series")
	}
	for g, name := range names {
		so := seriesOpts(g)
		if g == 0 {
			so = append(so, marks...)
		}
		line.AddSeries(name, rows[g], so...)
	}
	return line, nil
}

func buildScatter(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table, bubble bool) (htmlRenderer, error) {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(append(globalOpts(cfg, "item"), xAxisOpts(cfg, false), yAxisOpts(cfg))...)

	var sizes []float64
	if bubble && cfg.SizeColumn != "" {
		v, err := numeric(tbl, cfg.SizeColumn)
		if err != nil {
			res.warnf("size column ignored: %v", err)
		} else {
			sizes = scaleSizes(v, 5, 40)
		}
	}

	point := func(x, y float64, i int) opts.ScatterData {
		size := cfg.MarkerSize
		if sizes != nil && i < len(sizes) {
			size = sizes[i]
		}
		return opts.ScatterData{
			Value:      []any{x, y},
			Symbol:     symbolOf(cfg.MarkerStyle),
			SymbolSize: int(size),
		}
	}

	marks := interactiveAnnotations(res, cfg)
	cols := seriesColumns(cfg, tbl)
	if cfg.ColorColumn != "" && len(cols) > 0 {
		xv, yv, err := alignedXY(tbl, cfg.XColumn, cols[0])
		if err != nil {
			return nil, err
		}
		names, groups, err := groupRows(tbl, cfg.ColorColumn)
		if err != nil {
			return nil, err
		}
		added := 0
		for g, name := range names {
			var data []opts.ScatterData
			for _, r := range groups[g] {
				if r >= len(xv) || r >= len(yv) || math.IsNaN(xv[r]) || math.IsNaN(yv[r]) {
					continue
				}
				data = append(data, point(xv[r], yv[r], r))
			}
			if len(data) == 0 {
				continue
			}
			so := []charts.SeriesOpts{
				charts.WithItemStyleOpts(opts.ItemStyle{Opacity: float32(cfg.Opacity)}),
			}
			if added == 0 {
				so = append(so, marks...)
			}
			sc.AddSeries(name, data, so...)
			added++
		}
		if added == 0 {
			return nil, fmt.Errorf("no plottable series")
		}
		return sc, nil
	}

	added := 0
	for _, col := range cols {
		xs, ys, err := pairedXY(tbl, cfg.XColumn, col)
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		data := make([]opts.ScatterData, len(xs))
		for i := range xs {
			data[i] = point(xs[i], ys[i], i)
		}
		so := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Opacity: float32(cfg.Opacity)}),
		}
		if added == 0 {
			so = append(so, marks...)
		}
		sc.AddSeries(col, data, so...)
		added++
	}
	if added == 0 {
		return nil, fmt.Errorf("no plottable series")
	}
	return sc, nil
}

func buildBar(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOpts(cfg, "axis"), xAxisOpts(cfg, true), yAxisOpts(cfg))...)

	marks := interactiveAnnotations(res, cfg)
	barSeriesOpts := func(first bool) []charts.SeriesOpts {
		so := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Opacity: float32(cfg.Opacity)}),
		}
		if cfg.ShowValues {
			so = append(so, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
		}
		if first {
			so = append(so, marks...)
		}
		return so
	}

	cols := seriesColumns(cfg, tbl)
	if cfg.ColorColumn != "" && len(cols) > 0 {
		cats, names, matrix, err := colorSplit(tbl, cfg.XColumn, cols[0], cfg.ColorColumn, cfg.Aggregation)
		if err != nil {
			return nil, err
		}
		bar.SetXAxis(cats)
		for n, name := range names {
			bar.AddSeries(name, barData(matrix[n]), barSeriesOpts(n == 0)...)
		}
		return bar, nil
	}

	added := 0
	var cats []string
	for _, col := range cols {
		c, values, err := aggregated(tbl, cfg.XColumn, col, cfg.Aggregation)
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		if cats == nil {
			cats = c
			bar.SetXAxis(cats)
		}
		bar.AddSeries(col, barData(values), barSeriesOpts(added == 0)...)
		added++
	}
	if added == 0 {
		return nil, fmt.Errorf("no plottable series")
	}
	return bar, nil
}

func barData(values []float64) []opts.BarData {
	out := make([]opts.BarData, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = opts.BarData{Value: nil}
			continue
		}
		out[i] = opts.BarData{Value: v}
	}
	return out
}

// colorSplit aggregates one y column per x category within each
// distinct value of the color column, one series per value. Categories
// keep their first-appearance order; empty cells stay NaN.
func colorSplit(tbl *dataset.Table, xcol, ycol, colorCol, how string) (cats, names []string, matrix [][]float64, err error) {
	values, err := numeric(tbl, ycol)
	if err != nil {
		return nil, nil, nil, err
	}
	groups, err := labels(tbl, colorCol)
	if err != nil {
		return nil, nil, nil, err
	}
	xs := categories(tbl, xcol, len(values))
	catIdx := make(map[string]int)
	nameIdx := make(map[string]int)
	cells := make(map[[2]int][]float64)
	for i, v := range values {
		if math.IsNaN(v) || i >= len(xs) || i >= len(groups) {
			continue
		}
		c, ok := catIdx[xs[i]]
		if !ok {
			c = len(cats)
			catIdx[xs[i]] = c
			cats = append(cats, xs[i])
		}
		n, ok := nameIdx[groups[i]]
		if !ok {
			n = len(names)
			nameIdx[groups[i]] = n
			names = append(names, groups[i])
		}
		cells[[2]int{n, c}] = append(cells[[2]int{n, c}], v)
	}
	if len(names) == 0 {
		return nil, nil, nil, fmt.Errorf("no plottable values")
	}
	matrix = make([][]float64, len(names))
	for n := range matrix {
		matrix[n] = make([]float64, len(cats))
		for c := range matrix[n] {
			matrix[n][c] = reduce(cells[[2]int{n, c}], how)
		}
	}
	return cats, names, matrix, nil
}

// buildWaterfall renders running totals as a stacked bar whose bottom
// series is invisible.
func buildWaterfall(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	cols := seriesColumns(cfg, tbl)
	if len(cols) == 0 {
		return nil, fmt.Errorf("no plottable series")
	}
	cats, values, err := aggregated(tbl, cfg.XColumn, cols[0], cfg.Aggregation)
	if err != nil {
		return nil, err
	}
	base := make([]opts.BarData, len(values))
	body := make([]opts.BarData, len(values))
	cum := 0.0
	for i, v := range values {
		lo := cum
		cum += v
		if v < 0 {
			lo = cum
		}
		base[i] = opts.BarData{Value: lo}
		body[i] = opts.BarData{Value: math.Abs(v)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOpts(cfg, "axis"), xAxisOpts(cfg, true), yAxisOpts(cfg))...)
	bar.SetXAxis(cats)
	bar.AddSeries("base", base,
		charts.WithBarChartOpts(opts.BarChart{Stack: "total"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "transparent"}))
	bar.AddSeries(cols[0], body,
		charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	return bar, nil
}

func buildHistogram(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	values, err := numeric(tbl, cfg.XColumn)
	if err != nil {
		return nil, err
	}
	edges, counts := binValues(values, 30)
	if counts == nil {
		return nil, fmt.Errorf("column %s has no numeric values", cfg.XColumn)
	}
	cats := make([]string, len(counts))
	data := make([]opts.BarData, len(counts))
	for i := range counts {
		cats[i] = fmt.Sprintf("%.3g", (edges[i]+edges[i+1])/2)
		data[i] = opts.BarData{Value: counts[i]}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOpts(cfg, "axis"), xAxisOpts(cfg, true), yAxisOpts(cfg))...)
	bar.SetXAxis(cats)
	bar.AddSeries(cfg.XColumn, data,
		charts.WithBarChartOpts(opts.BarChart{BarCategoryGap: "0%"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Opacity: float32(cfg.Opacity)}))
	return bar, nil
}

func buildBox(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(append(globalOpts(cfg, "item"), xAxisOpts(cfg, true), yAxisOpts(cfg))...)

	var (
		names []string
		data  []opts.BoxPlotData
	)
	for _, col := range seriesColumns(cfg, tbl) {
		values, err := numeric(tbl, col)
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		summary := fiveNumbers(dropNaN(values))
		if summary == nil {
			res.warnf("series %s skipped: no numeric values", col)
			continue
		}
		names = append(names, col)
		data = append(data, opts.BoxPlotData{Value: summary})
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no plottable series")
	}
	box.SetXAxis(names)
	box.AddSeries("distribution", data)
	return box, nil
}

func buildHeatmap(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	if cfg.Correlation() {
		return buildCorrelation(res, cfg, tbl)
	}
	cols := cfg.YColumns
	cats := categories(tbl, cfg.XColumn, tbl.Len())
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(append(globalOpts(cfg, "item"),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: cats}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: cols}),
	)...)

	var (
		data   []opts.HeatMapData
		lo, hi = math.Inf(1), math.Inf(-1)
	)
	for j, col := range cols {
		values, err := numeric(tbl, col)
		if err != nil {
			res.warnf("series %s skipped: %v", col, err)
			continue
		}
		for i, v := range values {
			if math.IsNaN(v) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
			data = append(data, opts.HeatMapData{Value: [3]any{i, j, v}})
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no plottable values")
	}
	hm.AddSeries("values", data)
	hm.SetGlobalOptions(charts.WithVisualMapOpts(opts.VisualMap{
		Calculable: opts.Bool(true),
		Min:        float32(lo),
		Max:        float32(hi),
	}))
	return hm, nil
}

func buildCorrelation(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	cols := cfg.YColumns
	matrix, err := correlationMatrix(tbl, cols)
	if err != nil {
		return nil, err
	}
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(append(globalOpts(cfg, "item"),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: cols}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: cols}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: []string{"#313695", "#FFFFFF", "#A50026"}},
		}),
	)...)
	var data []opts.HeatMapData
	for i := range matrix {
		for j, v := range matrix[i] {
			if math.IsNaN(v) {
				continue
			}
			data = append(data, opts.HeatMapData{Value: [3]any{j, i, math.Round(v*100) / 100}})
		}
	}
	hm.AddSeries("correlation", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return hm, nil
}

// buildDensity bins x against the first y column on a 20x20 grid.
func buildDensity(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	cols := seriesColumns(cfg, tbl)
	if len(cols) == 0 {
		return nil, fmt.Errorf("no plottable series")
	}
	xs, ys, err := pairedXY(tbl, cfg.XColumn, cols[0])
	if err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("no plottable values")
	}
	const bins = 20
	xe, _ := binValues(xs, bins)
	ye, _ := binValues(ys, bins)
	grid := make([][]float64, bins)
	for i := range grid {
		grid[i] = make([]float64, bins)
	}
	for i := range xs {
		bx := bucket(xs[i], xe, bins)
		by := bucket(ys[i], ye, bins)
		grid[bx][by]++
	}
	xcats := make([]string, bins)
	ycats := make([]string, bins)
	for i := 0; i < bins; i++ {
		xcats[i] = fmt.Sprintf("%.3g", (xe[i]+xe[i+1])/2)
		ycats[i] = fmt.Sprintf("%.3g", (ye[i]+ye[i+1])/2)
	}
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(append(globalOpts(cfg, "item"),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xcats}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: ycats}),
	)...)
	var (
		data []opts.HeatMapData
		hi   float64
	)
	for i := 0; i < bins; i++ {
		for j := 0; j < bins; j++ {
			if grid[i][j] == 0 {
				continue
			}
			if grid[i][j] > hi {
				hi = grid[i][j]
			}
			data = append(data, opts.HeatMapData{Value: [3]any{i, j, grid[i][j]}})
		}
	}
	hm.AddSeries("density", data)
	hm.SetGlobalOptions(charts.WithVisualMapOpts(opts.VisualMap{
		Calculable: opts.Bool(true),
		Max:        float32(hi),
	}))
	return hm, nil
}

func bucket(v float64, edges []float64, bins int) int {
	if len(edges) < 2 {
		return 0
	}
	width := edges[1] - edges[0]
	if width <= 0 {
		return 0
	}
	idx := int((v - edges[0]) / width)
	if idx < 0 {
		idx = 0
	}
	if idx >= bins {
		idx = bins - 1
	}
	return idx
}

func buildPie(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	names, values, err := namedValues(cfg, tbl)
	if err != nil {
		return nil, err
	}
	data := make([]opts.PieData, len(names))
	for i := range names {
		data[i] = opts.PieData{Name: names[i], Value: values[i]}
	}
	pie := charts.NewPie()
	pie.SetGlobalOptions(globalOpts(cfg, "item")...)
	pie.AddSeries("share", data,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"0%", "70%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}))
	return pie, nil
}

func buildFunnel(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	names, values, err := namedValues(cfg, tbl)
	if err != nil {
		return nil, err
	}
	data := make([]opts.FunnelData, len(names))
	for i := range names {
		data[i] = opts.FunnelData{Name: names[i], Value: values[i]}
	}
	fn := charts.NewFunnel()
	fn.SetGlobalOptions(globalOpts(cfg, "item")...)
	fn.AddSeries("stages", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "inside"}))
	return fn, nil
}

func buildTreemap(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	names, values, err := namedValues(cfg, tbl)
	if err != nil {
		return nil, err
	}
	nodes := make([]opts.TreeMapNode, len(names))
	for i := range names {
		nodes[i] = opts.TreeMapNode{Name: names[i], Value: int(math.Round(values[i]))}
	}
	tm := charts.NewTreeMap()
	tm.SetGlobalOptions(globalOpts(cfg, "item")...)
	tm.AddSeries("share", nodes,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return tm, nil
}

func buildSunburst(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	names, values, err := namedValues(cfg, tbl)
	if err != nil {
		return nil, err
	}
	data := make([]opts.SunBurstData, len(names))
	for i := range names {
		data[i] = opts.SunBurstData{Name: names[i], Value: values[i]}
	}
	sb := charts.NewSunburst()
	sb.SetGlobalOptions(globalOpts(cfg, "item")...)
	sb.AddSeries("share", data)
	return sb, nil
}

const radarRowCap = 12

func buildRadar(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	cols := seriesColumns(cfg, tbl)
	if len(cols) == 0 {
		return nil, fmt.Errorf("no plottable series")
	}
	indicators := make([]*opts.Indicator, len(cols))
	columns := make([][]float64, len(cols))
	for i, col := range cols {
		values, err := numeric(tbl, col)
		if err != nil {
			return nil, err
		}
		columns[i] = values
		hi := 0.0
		for _, v := range dropNaN(values) {
			if v > hi {
				hi = v
			}
		}
		indicators[i] = &opts.Indicator{Name: col, Max: float32(hi * 1.1)}
	}
	names := categories(tbl, cfg.XColumn, tbl.Len())
	rows := tbl.Len()
	if rows > radarRowCap {
		res.warnf("radar limited to the first %d rows", radarRowCap)
		rows = radarRowCap
	}
	rd := charts.NewRadar()
	rd.SetGlobalOptions(append(globalOpts(cfg, "item"),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
	)...)
	for r := 0; r < rows; r++ {
		value := make([]float64, len(cols))
		for i := range cols {
			if r < len(columns[i]) && !math.IsNaN(columns[i][r]) {
				value[i] = columns[i][r]
			}
		}
		rd.AddSeries(names[r], []opts.RadarData{{Name: names[r], Value: value}})
	}
	return rd, nil
}

// buildPolar places the x categories around the circle with one trace
// per y column.
func buildPolar(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	cats := categories(tbl, cfg.XColumn, tbl.Len())
	indicators := make([]*opts.Indicator, len(cats))
	cols := seriesColumns(cfg, tbl)
	if len(cols) == 0 {
		return nil, fmt.Errorf("no plottable series")
	}
	hi := 0.0
	columns := make([][]float64, len(cols))
	for i, col := range cols {
		values, err := numeric(tbl, col)
		if err != nil {
			return nil, err
		}
		columns[i] = values
		for _, v := range dropNaN(values) {
			if v > hi {
				hi = v
			}
		}
	}
	for i, c := range cats {
		indicators[i] = &opts.Indicator{Name: c, Max: float32(hi * 1.1)}
	}
	rd := charts.NewRadar()
	rd.SetGlobalOptions(append(globalOpts(cfg, "item"),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
	)...)
	for i, col := range cols {
		value := make([]float64, len(cats))
		for j := range cats {
			if j < len(columns[i]) && !math.IsNaN(columns[i][j]) {
				value[j] = columns[i][j]
			}
		}
		rd.AddSeries(col, []opts.RadarData{{Name: col, Value: value}})
	}
	return rd, nil
}

func buildParallel(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	cols := seriesColumns(cfg, tbl)
	if len(cols) < 2 {
		return nil, fmt.Errorf("parallel coordinates need at least two numeric columns")
	}
	axes := make([]opts.ParallelAxis, len(cols))
	columns := make([][]float64, len(cols))
	for i, col := range cols {
		values, err := numeric(tbl, col)
		if err != nil {
			return nil, err
		}
		columns[i] = values
		axes[i] = opts.ParallelAxis{Dim: i, Name: col}
	}
	pl := charts.NewParallel()
	pl.SetGlobalOptions(append(globalOpts(cfg, "item"),
		charts.WithParallelAxisList(axes),
	)...)
	var data []opts.ParallelData
	for r := 0; r < tbl.Len(); r++ {
		row := make([]any, len(cols))
		skip := false
		for i := range cols {
			if r >= len(columns[i]) || math.IsNaN(columns[i][r]) {
				skip = true
				break
			}
			row[i] = columns[i][r]
		}
		if skip {
			continue
		}
		data = append(data, opts.ParallelData{Value: row})
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no complete rows to plot")
	}
	pl.AddSeries("rows", data)
	return pl, nil
}

// buildCandlestick expects the y columns in open, high, low, close
// order.
func buildCandlestick(res *Result, cfg figkit.ChartConfig, tbl *dataset.Table) (htmlRenderer, error) {
	if len(cfg.YColumns) < 4 {
		return nil, fmt.Errorf("candlestick needs open, high, low and close columns")
	}
	var ohlc [4][]float64
	for i := 0; i < 4; i++ {
		values, err := numeric(tbl, cfg.YColumns[i])
		if err != nil {
			return nil, err
		}
		ohlc[i] = values
	}
	data := make([]opts.KlineData, 0, tbl.Len())
	for r := 0; r < tbl.Len(); r++ {
		// echarts wants open, close, lowest, highest
		data = append(data, opts.KlineData{Value: [4]float64{
			ohlc[0][r], ohlc[3][r], ohlc[2][r], ohlc[1][r],
		}})
	}
	kl := charts.NewKLine()
	kl.SetGlobalOptions(append(globalOpts(cfg, "axis"), xAxisOpts(cfg, true), yAxisOpts(cfg))...)
	kl.SetXAxis(categories(tbl, cfg.XColumn, tbl.Len()))
	kl.AddSeries("ohlc", data)
	return kl, nil
}

// seriesColumns resolves the columns plotted as series: the explicit y
// mapping, or the x column when only x is set.
func seriesColumns(cfg figkit.ChartConfig, tbl *dataset.Table) []string {
	if len(cfg.YColumns) > 0 {
		return cfg.YColumns
	}
	if cfg.XColumn != "" && cfg.XColumn != figkit.CorrelationColumn {
		return []string{cfg.XColumn}
	}
	return nil
}

// namedValues produces label/value pairs for the part-of-whole charts,
// aggregating y by the x categories.
func namedValues(cfg figkit.ChartConfig, tbl *dataset.Table) ([]string, []float64, error) {
	cols := seriesColumns(cfg, tbl)
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("no plottable series")
	}
	how := cfg.Aggregation
	if how == "" {
		how = "sum"
	}
	ycol := cols[0]
	xcol := cfg.XColumn
	if xcol == ycol {
		xcol = ""
	}
	return aggregated(tbl, xcol, ycol, how)
}

// aggregated groups y by the x categories using the requested
// aggregation, summing when none is chosen, so a repeated category
// always collapses into one tick.
func aggregated(tbl *dataset.Table, xcol, ycol, how string) ([]string, []float64, error) {
	values, err := numeric(tbl, ycol)
	if err != nil {
		return nil, nil, err
	}
	cats := categories(tbl, xcol, len(values))
	order := make([]string, 0)
	groups := make(map[string][]float64)
	for i, v := range values {
		if math.IsNaN(v) || i >= len(cats) {
			continue
		}
		key := cats[i]
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], v)
	}
	out := make([]float64, len(order))
	for i, key := range order {
		out[i] = reduce(groups[key], how)
	}
	return order, out, nil
}

func reduce(values []float64, how string) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	switch how {
	case "count":
		return float64(len(values))
	case "min":
		lo := values[0]
		for _, v := range values {
			if v < lo {
				lo = v
			}
		}
		return lo
	case "max":
		hi := values[0]
		for _, v := range values {
			if v > hi {
				hi = v
			}
		}
		return hi
	case "mean":
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	default: // sum
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum
	}
}

func fiveNumbers(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return []float64{
		sorted[0],
		stat.Quantile(0.25, stat.Empirical, sorted, nil),
		stat.Quantile(0.5, stat.Empirical, sorted, nil),
		stat.Quantile(0.75, stat.Empirical, sorted, nil),
		sorted[len(sorted)-1],
	}
}

func scaleSizes(values []float64, lo, hi float64) []float64 {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || max == min {
			out[i] = (lo + hi) / 2
			continue
		}
		out[i] = lo + (v-min)/(max-min)*(hi-lo)
	}
	return out
}
