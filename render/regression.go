package render

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/figkit/figkit"
)

const curvePoints = 100

// Fit is a fitted trend: coefficients in ascending powers, the r2
// score and a sampled curve ready to plot.
type Fit struct {
	Coeffs []float64
	R2     float64
	Xs     []float64
	Ys     []float64
}

// fitRegression solves the least squares polynomial for the configured
// degree. Linear is degree one, polynomial clamps to 2..6.
func fitRegression(rc figkit.RegressionConfig, xs, ys []float64) (*Fit, error) {
	if len(xs) < 2 || len(ys) < 2 {
		return nil, errors.New("need at least two points")
	}
	degree := 1
	if rc.Type == figkit.RegressionPolynomial {
		degree = rc.Degree
		if degree < 2 {
			degree = 2
		}
		if degree > 6 {
			degree = 6
		}
	}
	if len(xs) <= degree {
		return nil, fmt.Errorf("need more than %d points for degree %d", degree, degree)
	}

	coeffs, err := polyfit(xs, ys, degree)
	if err != nil {
		return nil, err
	}
	fit := &Fit{Coeffs: coeffs, R2: rsquared(xs, ys, coeffs)}

	lo, hi := xs[0], xs[0]
	for _, v := range xs {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	step := (hi - lo) / float64(curvePoints-1)
	for i := 0; i < curvePoints; i++ {
		x := lo + float64(i)*step
		fit.Xs = append(fit.Xs, x)
		fit.Ys = append(fit.Ys, polyval(coeffs, x))
	}
	return fit, nil
}

func polyfit(xs, ys []float64, degree int) ([]float64, error) {
	a := mat.NewDense(len(xs), degree+1, nil)
	b := mat.NewDense(len(ys), 1, nil)
	for i, x := range xs {
		p := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, p)
			p *= x
		}
		b.Set(i, 0, ys[i])
	}
	var qr mat.QR
	qr.Factorize(a)
	var sol mat.Dense
	if err := qr.SolveTo(&sol, false, b); err != nil {
		return nil, fmt.Errorf("least squares: %w", err)
	}
	coeffs := make([]float64, degree+1)
	for j := range coeffs {
		coeffs[j] = sol.At(j, 0)
	}
	return coeffs, nil
}

func polyval(coeffs []float64, x float64) float64 {
	y := 0.0
	for j := len(coeffs) - 1; j >= 0; j-- {
		y = y*x + coeffs[j]
	}
	return y
}

// rsquared scores the fit; a flat target yields 0 rather than a
// division by zero.
func rsquared(xs, ys, coeffs []float64) float64 {
	mean := 0.0
	for _, v := range ys {
		mean += v
	}
	mean /= float64(len(ys))

	var ssRes, ssTot float64
	for i, v := range ys {
		d := v - polyval(coeffs, xs[i])
		ssRes += d * d
		m := v - mean
		ssTot += m * m
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// Label renders the legend entry: the equation and the score, each
// only when asked for.
func (f *Fit) Label(rc figkit.RegressionConfig) string {
	var parts []string
	if rc.ShowEquation {
		parts = append(parts, f.equation())
	}
	if rc.ShowR2 {
		parts = append(parts, fmt.Sprintf("R²=%.3f", f.R2))
	}
	if len(parts) == 0 {
		return "trend"
	}
	return strings.Join(parts, ", ")
}

func (f *Fit) equation() string {
	var sb strings.Builder
	sb.WriteString("y = ")
	first := true
	for j := len(f.Coeffs) - 1; j >= 0; j-- {
		c := f.Coeffs[j]
		if math.Abs(c) < 1e-12 && len(f.Coeffs) > 1 {
			continue
		}
		if !first {
			if c >= 0 {
				sb.WriteString(" + ")
			} else {
				sb.WriteString(" - ")
				c = -c
			}
		}
		switch j {
		case 0:
			fmt.Fprintf(&sb, "%.3g", c)
		case 1:
			fmt.Fprintf(&sb, "%.3gx", c)
		default:
			fmt.Fprintf(&sb, "%.3gx^%d", c, j)
		}
		first = false
	}
	if first {
		sb.WriteString("0")
	}
	return sb.String()
}
