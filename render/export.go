package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/vg"

	"github.com/figkit/figkit"
	"github.com/figkit/figkit/dataset"
)

// ErrNeedsSnapshot is returned when a raster or vector file is asked
// of an interactive figure. The remedy is to render the same config on
// the publication backend.
var ErrNeedsSnapshot = errors.New("interactive figures export to HTML only; use the publication backend for image output")

// imageFormats are the publication export targets, keyed by extension
// without the dot.
var imageFormats = map[string]bool{
	"png": true, "svg": true, "pdf": true,
	"eps": true, "tif": true, "tiff": true, "jpg": true, "jpeg": true,
}

// WriteHTML writes the interactive figure as a self-contained page.
func (r *Result) WriteHTML(w io.Writer) error {
	if r.HTML == nil {
		return fmt.Errorf("publication figures have no HTML form, export an image instead")
	}
	return r.HTML.Render(w)
}

// WriteImage writes the publication figure in the requested format at
// the default canvas size.
func (r *Result) WriteImage(w io.Writer, format string) error {
	ec := figkit.DefaultExport()
	ec.Format = format
	return r.WriteImageWith(w, ec)
}

// WriteImageWith writes the publication figure using an explicit
// export configuration. Pixel dimensions and DPI translate into the
// physical canvas size.
func (r *Result) WriteImageWith(w io.Writer, ec figkit.ExportConfig) error {
	if r.Plot == nil {
		return ErrNeedsSnapshot
	}
	if !imageFormats[ec.Format] {
		return fmt.Errorf("unsupported image format %q", ec.Format)
	}
	if ec.Width <= 0 {
		ec.Width = figkit.DefaultWidth
	}
	if ec.Height <= 0 {
		ec.Height = figkit.DefaultHeight
	}
	if ec.DPI <= 0 {
		ec.DPI = figkit.DefaultDPI
	}
	width := vg.Length(ec.Width) / vg.Length(ec.DPI) * vg.Inch
	height := vg.Length(ec.Height) / vg.Length(ec.DPI) * vg.Inch
	wt, err := r.Plot.WriterTo(width, height, ec.Format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Export picks the output form from the file extension and writes the
// figure to path.
func (r *Result) Export(path string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if ext == "html" {
		return r.WriteHTML(f)
	}
	return r.WriteImage(f, ext)
}

// ExportItem is one figure of a batch export.
type ExportItem struct {
	Config  figkit.ChartConfig
	Table   *dataset.Table
	Backend Backend
	Path    string
}

// ExportAll renders and writes a set of figures concurrently. The
// first failure cancels the rest.
func (e *Engine) ExportAll(ctx context.Context, items []ExportItem) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, item := range items {
		item := item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.Render(item.Config, item.Table, item.Backend)
			if err != nil {
				return fmt.Errorf("%s: %w", item.Path, err)
			}
			if err := res.Export(item.Path); err != nil {
				return fmt.Errorf("%s: %w", item.Path, err)
			}
			return nil
		})
	}
	return g.Wait()
}
