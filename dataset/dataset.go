// Package dataset loads tabular files into a uniform in-memory table
// and writes filtered tables back out. The table is a gota DataFrame
// plus a note of which columns held nested values in the source.
package dataset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// MaxUploadBytes is the hard cap checked before any parsing happens.
const MaxUploadBytes = 100 << 20

type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatExcel   Format = "excel"
	FormatParquet Format = "parquet"
	FormatUnknown Format = "unknown"
)

var extensions = map[string]Format{
	".csv":     FormatCSV,
	".tsv":     FormatCSV,
	".json":    FormatJSON,
	".yaml":    FormatYAML,
	".yml":     FormatYAML,
	".xlsx":    FormatExcel,
	".xls":     FormatExcel,
	".parquet": FormatParquet,
}

// Detect maps a file name to its format by extension.
func Detect(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f
	}
	return FormatUnknown
}

// Extensions returns the accepted file extensions.
func Extensions() []string {
	return []string{".csv", ".tsv", ".json", ".yaml", ".yml", ".xlsx", ".xls", ".parquet"}
}

// Table is the in-memory representation every other package works
// with. It is replaced wholesale on a new load, never mutated.
type Table struct {
	df     dataframe.DataFrame
	nested map[string]bool
}

func (t *Table) Frame() dataframe.DataFrame { return t.df }

func (t *Table) Columns() []string { return t.df.Names() }

func (t *Table) Len() int { return t.df.Nrow() }

// Nested reports whether a column carried nested objects (lists) in
// its source document. Such columns profile as unknown.
func (t *Table) Nested(name string) bool { return t.nested[name] }

// Load reads a table from a local path or an http(s) URL, picking the
// parser from the file extension.
func Load(location string) (*Table, error) {
	format := Detect(location)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%s: unrecognized file format", location)
	}
	r, err := readFrom(location)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return LoadReader(r, format)
}

// LoadReader parses a table from a reader. The size cap is enforced
// before the content reaches any parser.
func LoadReader(r io.Reader, format Format) (*Table, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("file exceeds the %d MB limit", MaxUploadBytes>>20)
	}
	switch format {
	case FormatCSV:
		return loadCSV(data)
	case FormatJSON:
		return loadJSON(data)
	case FormatYAML:
		return loadYAML(data)
	case FormatExcel:
		return loadExcel(data)
	case FormatParquet:
		return loadParquet(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func readFrom(location string) (io.ReadCloser, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		res, err := http.Get(u.String())
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, fmt.Errorf("%s: request failed with status %s", location, res.Status)
		}
		return res.Body, nil
	case "", "file":
		fi, err := os.Stat(u.Path)
		if err == nil && fi.Size() > MaxUploadBytes {
			return nil, fmt.Errorf("%s exceeds the %d MB limit", location, MaxUploadBytes>>20)
		}
		return os.Open(u.Path)
	default:
		return nil, fmt.Errorf("%s: unsupported scheme", u.Scheme)
	}
}

func fromFrame(df dataframe.DataFrame, nested map[string]bool) (*Table, error) {
	if err := df.Error(); err != nil {
		return nil, err
	}
	if nested == nil {
		nested = make(map[string]bool)
	}
	return &Table{df: df, nested: nested}, nil
}
