package render

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/figkit/figkit/dataset"
)

// numeric returns the column as floats, NaN where the cell is null or
// not parseable.
func numeric(tbl *dataset.Table, name string) ([]float64, error) {
	if !hasColumn(tbl, name) {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	return tbl.Frame().Col(name).Float(), nil
}

// labels returns the column as strings.
func labels(tbl *dataset.Table, name string) ([]string, error) {
	if !hasColumn(tbl, name) {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	return tbl.Frame().Col(name).Records(), nil
}

// pairedXY pulls x and y together, dropping rows where either side is
// NaN. An empty x name yields the row index.
func pairedXY(tbl *dataset.Table, xcol, ycol string) (xs, ys []float64, err error) {
	yv, err := numeric(tbl, ycol)
	if err != nil {
		return nil, nil, err
	}
	var xv []float64
	if xcol == "" {
		xv = make([]float64, len(yv))
		for i := range xv {
			xv[i] = float64(i)
		}
	} else {
		xv, err = numeric(tbl, xcol)
		if err != nil {
			return nil, nil, err
		}
	}
	for i := range yv {
		if i >= len(xv) {
			break
		}
		if math.IsNaN(xv[i]) || math.IsNaN(yv[i]) {
			continue
		}
		xs = append(xs, xv[i])
		ys = append(ys, yv[i])
	}
	return xs, ys, nil
}

// alignedXY pulls x and y without dropping rows, so indices stay
// aligned with the table. An empty x name yields the row index.
func alignedXY(tbl *dataset.Table, xcol, ycol string) (xs, ys []float64, err error) {
	ys, err = numeric(tbl, ycol)
	if err != nil {
		return nil, nil, err
	}
	if xcol == "" {
		xs = make([]float64, len(ys))
		for i := range xs {
			xs[i] = float64(i)
		}
		return xs, ys, nil
	}
	xs, err = numeric(tbl, xcol)
	if err != nil {
		return nil, nil, err
	}
	return xs, ys, nil
}

// groupRows splits row indices by the values of a grouping column,
// first-appearance order preserved.
func groupRows(tbl *dataset.Table, col string) ([]string, [][]int, error) {
	values, err := labels(tbl, col)
	if err != nil {
		return nil, nil, err
	}
	var names []string
	idx := make(map[string]int)
	var groups [][]int
	for i, v := range values {
		g, ok := idx[v]
		if !ok {
			g = len(names)
			idx[v] = g
			names = append(names, v)
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return names, groups, nil
}

// categories returns the x labels for category axes, falling back to
// row indices when no x column is mapped.
func categories(tbl *dataset.Table, xcol string, n int) []string {
	if xcol != "" && hasColumn(tbl, xcol) {
		return tbl.Frame().Col(xcol).Records()
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprint(i)
	}
	return out
}

func hasColumn(tbl *dataset.Table, name string) bool {
	for _, c := range tbl.Columns() {
		if c == name {
			return true
		}
	}
	return false
}

// dropNaN filters NaN entries out of a single column.
func dropNaN(values []float64) []float64 {
	out := values[:0:0]
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// correlationMatrix computes pairwise Pearson correlation for the
// named columns, NaN-complete pairs excluded per cell.
func correlationMatrix(tbl *dataset.Table, cols []string) ([][]float64, error) {
	series := make([][]float64, len(cols))
	for i, name := range cols {
		v, err := numeric(tbl, name)
		if err != nil {
			return nil, err
		}
		series[i] = v
	}
	m := make([][]float64, len(cols))
	for i := range cols {
		m[i] = make([]float64, len(cols))
		for j := range cols {
			m[i][j] = pairCorrelation(series[i], series[j])
		}
	}
	return m, nil
}

func pairCorrelation(a, b []float64) float64 {
	var xs, ys []float64
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		xs = append(xs, a[i])
		ys = append(ys, b[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// binValues builds a histogram: edges spanning [min,max] split into
// bins, counts per bin.
func binValues(values []float64, bins int) (edges []float64, counts []float64) {
	values = dropNaN(values)
	if len(values) == 0 || bins < 1 {
		return nil, nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		hi = lo + 1
	}
	width := (hi - lo) / float64(bins)
	edges = make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	counts = make([]float64, bins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return edges, counts
}
