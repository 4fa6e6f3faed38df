package render

import (
	"image/color"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/figkit/figkit"
)

// interactiveAnnotations converts annotations into series options for
// the first series of a cartesian chart. Points and reference lines
// map onto mark points and mark lines, boxes onto mark areas; an item
// missing its end point is skipped with a warning.
func interactiveAnnotations(res *Result, cfg figkit.ChartConfig) []charts.SeriesOpts {
	var out []charts.SeriesOpts
	lines, arrows := false, false
	for _, a := range cfg.Annotations {
		switch v := a.(type) {
		case figkit.TextNote:
			out = append(out, charts.WithMarkPointNameCoordItemOpts(opts.MarkPointNameCoordItem{
				Name:       v.Text,
				Coordinate: []any{v.X, v.Y},
			}))
		case figkit.Arrow:
			if v.XEnd == nil || v.YEnd == nil {
				res.warnf("%s annotation skipped: %v", a.Kind(), annotationError{a.Kind()})
				continue
			}
			out = append(out, charts.WithMarkLineNameCoordItemOpts(opts.MarkLineNameCoordItem{
				Name:        v.Text,
				Coordinate0: []any{*v.XEnd, *v.YEnd},
				Coordinate1: []any{v.X, v.Y},
			}))
			lines, arrows = true, true
		case figkit.Segment:
			if v.XEnd == nil || v.YEnd == nil {
				res.warnf("%s annotation skipped: %v", a.Kind(), annotationError{a.Kind()})
				continue
			}
			out = append(out, charts.WithMarkLineNameCoordItemOpts(opts.MarkLineNameCoordItem{
				Coordinate0: []any{v.X, v.Y},
				Coordinate1: []any{*v.XEnd, *v.YEnd},
			}))
			lines = true
		case figkit.Box:
			if v.XEnd == nil || v.YEnd == nil {
				res.warnf("%s annotation skipped: %v", a.Kind(), annotationError{a.Kind()})
				continue
			}
			item := opts.MarkAreaNameCoordItem{
				Coordinate0: []any{v.X, v.Y},
				Coordinate1: []any{*v.XEnd, *v.YEnd},
			}
			if v.Color != "" {
				opacity := v.FillOpacity
				if opacity == 0 {
					opacity = v.Opacity
				}
				item.ItemStyle = &opts.ItemStyle{Color: v.Color, Opacity: float32(opacity)}
			}
			out = append(out, charts.WithMarkAreaNameCoordItemOpts(item))
		case figkit.VLine:
			out = append(out, charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
				Name:  v.Text,
				XAxis: v.X,
			}))
			lines = true
		case figkit.HLine:
			out = append(out, charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
				Name:  v.Text,
				YAxis: v.Y,
			}))
			lines = true
		}
	}
	if lines {
		// mark line symbols are shared per series, so any arrow turns
		// the end symbol on for all of them
		end := "none"
		if arrows {
			end = "arrow"
		}
		out = append(out, charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol: []string{"none", end},
		}))
	}
	return out
}

// plotAnnotations draws annotations onto a publication figure. Each
// item is applied independently so one bad annotation cannot take the
// figure down.
func plotAnnotations(res *Result, p *plot.Plot, cfg figkit.ChartConfig) {
	for _, a := range cfg.Annotations {
		if err := drawAnnotation(p, a); err != nil {
			res.warnf("%s annotation skipped: %v", a.Kind(), err)
		}
	}
}

func drawAnnotation(p *plot.Plot, a figkit.Annotation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = annotationError{a.Kind()}
		}
	}()
	switch v := a.(type) {
	case figkit.TextNote:
		return drawText(p, v.X, v.Y, v.Text, v.Color, float64(v.FontSize))
	case figkit.Arrow:
		if v.XEnd == nil || v.YEnd == nil {
			return annotationError{a.Kind()}
		}
		if err := drawSegment(p, *v.XEnd, *v.YEnd, v.X, v.Y, v.Color, v.LineWidth); err != nil {
			return err
		}
		return drawText(p, v.X, v.Y, v.Text, v.Color, float64(v.FontSize))
	case figkit.Segment:
		if v.XEnd == nil || v.YEnd == nil {
			return annotationError{a.Kind()}
		}
		return drawSegment(p, v.X, v.Y, *v.XEnd, *v.YEnd, v.Color, v.LineWidth)
	case figkit.Box:
		if v.XEnd == nil || v.YEnd == nil {
			return annotationError{a.Kind()}
		}
		poly, perr := plotter.NewPolygon(plotter.XYs{
			{X: v.X, Y: v.Y}, {X: *v.XEnd, Y: v.Y},
			{X: *v.XEnd, Y: *v.YEnd}, {X: v.X, Y: *v.YEnd},
		})
		if perr != nil {
			return perr
		}
		opacity := v.FillOpacity
		if opacity == 0 {
			opacity = v.Opacity
		}
		poly.Color = withAlpha(parseColor(v.Color), opacity)
		poly.LineStyle.Color = parseColor(v.Color)
		if v.LineWidth > 0 {
			poly.LineStyle.Width = vg.Points(v.LineWidth)
		}
		p.Add(poly)
		return nil
	case figkit.VLine:
		ln, perr := plotter.NewLine(plotter.XYs{{X: v.X, Y: p.Y.Min}, {X: v.X, Y: p.Y.Max}})
		if perr != nil {
			return perr
		}
		styleLine(ln, v.Color, v.LineWidth, "dash")
		p.Add(ln)
		return drawText(p, v.X, p.Y.Max, v.Text, v.Color, 0)
	case figkit.HLine:
		ln, perr := plotter.NewLine(plotter.XYs{{X: p.X.Min, Y: v.Y}, {X: p.X.Max, Y: v.Y}})
		if perr != nil {
			return perr
		}
		styleLine(ln, v.Color, v.LineWidth, "dash")
		p.Add(ln)
		return drawText(p, p.X.Max, v.Y, v.Text, v.Color, 0)
	default:
		return annotationError{a.Kind()}
	}
}

func drawText(p *plot.Plot, x, y float64, text, col string, size float64) error {
	if text == "" {
		return nil
	}
	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: x, Y: y}},
		Labels: []string{text},
	})
	if err != nil {
		return err
	}
	if col != "" {
		lbl.TextStyle[0].Color = parseColor(col)
	}
	if size > 0 {
		lbl.TextStyle[0].Font.Size = vg.Points(size)
	}
	p.Add(lbl)
	return nil
}

func drawSegment(p *plot.Plot, x1, y1, x2, y2 float64, col string, width float64) error {
	ln, err := plotter.NewLine(plotter.XYs{{X: x1, Y: y1}, {X: x2, Y: y2}})
	if err != nil {
		return err
	}
	styleLine(ln, col, width, "solid")
	p.Add(ln)
	return nil
}

func styleLine(ln *plotter.Line, col string, width float64, style string) {
	if col != "" {
		ln.Color = parseColor(col)
	}
	if width > 0 {
		ln.Width = vg.Points(width)
	}
	switch style {
	case "dash", "dashed":
		ln.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	case "dot", "dotted":
		ln.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	}
}

type annotationError struct {
	kind figkit.AnnotationKind
}

func (e annotationError) Error() string {
	return "incomplete " + string(e.kind) + " annotation"
}

// parseColor reads a #RRGGBB hex color, black on malformed input.
func parseColor(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return color.Black
	}
	hex := func(b byte) uint8 {
		switch {
		case b >= '0' && b <= '9':
			return b - '0'
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10
		}
		return 0
	}
	return color.RGBA{
		R: hex(s[1])<<4 | hex(s[2]),
		G: hex(s[3])<<4 | hex(s[4]),
		B: hex(s[5])<<4 | hex(s[6]),
		A: 0xFF,
	}
}

func withAlpha(c color.Color, opacity float64) color.Color {
	if opacity <= 0 || opacity >= 1 {
		return c
	}
	r, g, b, _ := c.RGBA()
	return color.NRGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(opacity * 255),
	}
}
