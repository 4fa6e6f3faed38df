package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gopkg.in/yaml.v3"
)

var delimiters = []rune{',', ';', '\t', '|'}

// detectDelimiter counts candidate separators in a sample and keeps
// the most frequent one, comma when nothing matches.
func detectDelimiter(sample string) rune {
	best, count := ',', 0
	for _, d := range delimiters {
		if n := strings.Count(sample, string(d)); n > count {
			best, count = d, n
		}
	}
	return best
}

func loadCSV(data []byte) (*Table, error) {
	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	rd := csv.NewReader(strings.NewReader(string(data)))
	rd.Comma = detectDelimiter(string(sample))
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true

	header, err := rd.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	records := [][]string{header}
	for {
		row, err := rd.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			continue // malformed line, skip
		}
		if len(row) != len(header) {
			continue
		}
		records = append(records, row)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv has no data rows")
	}
	return fromFrame(dataframe.LoadRecords(records), nil)
}

func loadJSON(data []byte) (*Table, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return fromDocument(doc)
}

func loadYAML(data []byte) (*Table, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return fromDocument(doc)
}

// fromDocument accepts the three shapes both JSON and YAML share:
// a list of records, a mapping of equally long column lists, or a
// nested object flattened into a single record by dotted path.
func fromDocument(doc any) (*Table, error) {
	switch v := doc.(type) {
	case []any:
		records := make([]map[string]any, 0, len(v))
		for _, item := range v {
			m, ok := toStringMap(item)
			if !ok {
				return nil, fmt.Errorf("document list items must be objects")
			}
			records = append(records, m)
		}
		return buildTable(records)
	case map[string]any:
		if cols, n, ok := columnLists(v); ok {
			records := make([]map[string]any, n)
			for i := range records {
				rec := make(map[string]any, len(cols))
				for name, values := range cols {
					rec[name] = values[i]
				}
				records[i] = rec
			}
			return buildTable(records)
		}
		return buildTable([]map[string]any{v})
	default:
		return nil, fmt.Errorf("unsupported document structure")
	}
}

func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any: // yaml.v2 legacy shape, normalized defensively
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func columnLists(m map[string]any) (map[string][]any, int, bool) {
	cols := make(map[string][]any, len(m))
	n := -1
	for name, v := range m {
		list, ok := v.([]any)
		if !ok {
			return nil, 0, false
		}
		if n < 0 {
			n = len(list)
		}
		if len(list) != n {
			return nil, 0, false
		}
		cols[name] = list
	}
	if n <= 0 {
		return nil, 0, false
	}
	return cols, n, true
}

// buildTable flattens nested maps by dotted path, stringifies values
// and loads them as records. Columns that held lists keep their raw
// text and are marked nested.
func buildTable(records []map[string]any) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("document has no records")
	}
	var (
		order  []string
		seen   = make(map[string]bool)
		nested = make(map[string]bool)
		flat   = make([]map[string]string, 0, len(records))
	)
	for _, rec := range records {
		row := make(map[string]string)
		flattenInto("", rec, row, nested)
		for _, key := range sortedKeys(row) {
			if !seen[key] {
				seen[key] = true
				order = append(order, key)
			}
		}
		flat = append(flat, row)
	}
	out := make([][]string, 0, len(flat)+1)
	out = append(out, order)
	for _, row := range flat {
		line := make([]string, len(order))
		for i, name := range order {
			line[i] = row[name]
		}
		out = append(out, line)
	}
	types := make(map[string]series.Type)
	for name := range nested {
		types[name] = series.String
	}
	df := dataframe.LoadRecords(out, dataframe.WithTypes(types))
	return fromFrame(df, nested)
}

func flattenInto(prefix string, rec map[string]any, row map[string]string, nested map[string]bool) {
	for key, v := range rec {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		switch val := v.(type) {
		case map[string]any:
			flattenInto(name, val, row, nested)
		case map[any]any:
			if m, ok := toStringMap(val); ok {
				flattenInto(name, m, row, nested)
			}
		case []any:
			raw, _ := json.Marshal(val)
			row[name] = clip(string(raw), 100)
			nested[name] = true
		case nil:
			row[name] = ""
		case float64:
			row[name] = strconv.FormatFloat(val, 'g', -1, 64)
		case bool:
			row[name] = strconv.FormatBool(val)
		default:
			row[name] = fmt.Sprint(val)
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
