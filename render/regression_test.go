package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figkit/figkit"
)

func TestLinearFitPerfectLine(t *testing.T) {
	rc := figkit.DefaultConfig().Regression
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{1, 3, 5, 7, 9} // y = 2x + 1

	fit, err := fitRegression(rc, xs, ys)
	require.NoError(t, err)
	require.Len(t, fit.Coeffs, 2)
	assert.InDelta(t, 1, fit.Coeffs[0], 1e-9)
	assert.InDelta(t, 2, fit.Coeffs[1], 1e-9)
	assert.InDelta(t, 1, fit.R2, 1e-9)
	assert.Len(t, fit.Xs, curvePoints)
	assert.Equal(t, 0.0, fit.Xs[0])
	assert.InDelta(t, 4.0, fit.Xs[curvePoints-1], 1e-9)
}

func TestPolynomialFit(t *testing.T) {
	rc := figkit.DefaultConfig().Regression
	rc.Type = figkit.RegressionPolynomial
	rc.Degree = 2
	xs := []float64{-2, -1, 0, 1, 2}
	ys := []float64{4, 1, 0, 1, 4} // y = x^2

	fit, err := fitRegression(rc, xs, ys)
	require.NoError(t, err)
	require.Len(t, fit.Coeffs, 3)
	assert.InDelta(t, 0, fit.Coeffs[0], 1e-9)
	assert.InDelta(t, 0, fit.Coeffs[1], 1e-9)
	assert.InDelta(t, 1, fit.Coeffs[2], 1e-9)
	assert.InDelta(t, 1, fit.R2, 1e-9)
}

func TestFlatTargetScoresZero(t *testing.T) {
	rc := figkit.DefaultConfig().Regression
	fit, err := fitRegression(rc, []float64{1, 2, 3}, []float64{5, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, fit.R2)
}

func TestTooFewPoints(t *testing.T) {
	rc := figkit.DefaultConfig().Regression
	_, err := fitRegression(rc, []float64{1}, []float64{2})
	assert.Error(t, err)
}

func TestDegreeClamped(t *testing.T) {
	rc := figkit.DefaultConfig().Regression
	rc.Type = figkit.RegressionPolynomial
	rc.Degree = 99
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	ys := []float64{0, 1, 4, 9, 16, 25, 36, 49}

	fit, err := fitRegression(rc, xs, ys)
	require.NoError(t, err)
	assert.Len(t, fit.Coeffs, 7) // clamped to degree 6
}

func TestFitLabel(t *testing.T) {
	rc := figkit.DefaultConfig().Regression
	fit := &Fit{Coeffs: []float64{1, 2}, R2: 0.987}

	label := fit.Label(rc)
	assert.Contains(t, label, "y = 2x + 1")
	assert.Contains(t, label, "R²=0.987")

	rc.ShowEquation = false
	rc.ShowR2 = false
	assert.Equal(t, "trend", fit.Label(rc))
}

func TestBinValues(t *testing.T) {
	edges, counts := binValues([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 5)
	require.Len(t, edges, 6)
	require.Len(t, counts, 5)
	total := 0.0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, 10.0, total)
}

func TestFiveNumbers(t *testing.T) {
	s := fiveNumbers([]float64{1, 2, 3, 4, 5})
	require.Len(t, s, 5)
	assert.Equal(t, 1.0, s[0])
	assert.Equal(t, 3.0, s[2])
	assert.Equal(t, 5.0, s[4])
	assert.Nil(t, fiveNumbers(nil))
}

func TestReduce(t *testing.T) {
	values := []float64{2, 4, 6}
	assert.Equal(t, 12.0, reduce(values, "sum"))
	assert.Equal(t, 4.0, reduce(values, "mean"))
	assert.Equal(t, 3.0, reduce(values, "count"))
	assert.Equal(t, 2.0, reduce(values, "min"))
	assert.Equal(t, 6.0, reduce(values, "max"))
}
