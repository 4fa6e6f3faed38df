// Package render turns a chart configuration plus a table into a
// figure. Two backends share the configuration model: an interactive
// one producing self-contained HTML and a publication one producing
// raster and vector files.
package render

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"gonum.org/v1/plot"

	"github.com/figkit/figkit"
	"github.com/figkit/figkit/dataset"
)

type Backend string

const (
	Interactive Backend = "interactive"
	Publication Backend = "publication"
)

// htmlRenderer is the piece of the go-echarts chart types the engine
// needs: all of them render themselves into a writer.
type htmlRenderer interface {
	Render(w io.Writer) error
}

// Result is a built figure plus everything that went wrong in a
// recoverable way while building it.
type Result struct {
	HTML     htmlRenderer // set by the interactive backend
	Plot     *plot.Plot   // set by the publication backend
	Backend  Backend
	Config   figkit.ChartConfig
	Warnings []string
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

type Engine struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Render builds a figure for the configuration. Column references that
// no longer exist in the table are dropped with a warning before
// validation, so a stale config degrades instead of crashing.
func (e *Engine) Render(cfg figkit.ChartConfig, tbl *dataset.Table, backend Backend) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("render panicked", zap.Any("cause", r), zap.String("chart", string(cfg.ChartType)))
			res, err = nil, fmt.Errorf("render %s: %v", cfg.ChartType, r)
		}
	}()

	res = &Result{Backend: backend}
	clean := cfg.Normalize(tbl.Columns())
	for _, w := range droppedRefs(cfg, clean) {
		res.warnf("column %q is no longer in the dataset, dropped from the config", w)
	}
	res.Config = clean

	if err := clean.Validate(); err != nil {
		return nil, err
	}

	switch backend {
	case Interactive:
		err = e.renderInteractive(res, clean, tbl)
	case Publication:
		err = e.renderPublication(res, clean, tbl)
	default:
		err = fmt.Errorf("unknown backend %q", backend)
	}
	if err != nil {
		return nil, err
	}
	e.logger.Debug("figure built",
		zap.String("chart", string(clean.ChartType)),
		zap.String("backend", string(backend)),
		zap.Int("warnings", len(res.Warnings)))
	return res, nil
}

func droppedRefs(before, after figkit.ChartConfig) []string {
	var out []string
	if before.XColumn != after.XColumn {
		out = append(out, before.XColumn)
	}
	out = append(out, missing(before.YColumns, after.YColumns)...)
	out = append(out, missing(before.Y2Columns, after.Y2Columns)...)
	for _, pair := range [][2]string{
		{before.ColorColumn, after.ColorColumn},
		{before.SizeColumn, after.SizeColumn},
		{before.FacetColumn, after.FacetColumn},
		{before.GroupBy, after.GroupBy},
	} {
		if pair[0] != pair[1] {
			out = append(out, pair[0])
		}
	}
	return out
}

func missing(before, after []string) []string {
	kept := make(map[string]bool, len(after))
	for _, c := range after {
		kept[c] = true
	}
	var out []string
	for _, c := range before {
		if !kept[c] {
			out = append(out, c)
		}
	}
	return out
}
