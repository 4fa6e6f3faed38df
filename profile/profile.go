// Package profile inspects a loaded table and reports, per column, an
// inferred kind plus the statistics the chart builder needs to make
// sensible suggestions.
package profile

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"github.com/figkit/figkit/dataset"
)

// CategoricalThreshold is the unique-value cutoff below which a string
// column counts as categorical rather than free text.
const CategoricalThreshold = 20

// dateSample caps how many values the temporal check parses.
const dateSample = 100

type Kind string

const (
	Numeric     Kind = "numeric"
	Categorical Kind = "categorical"
	Temporal    Kind = "temporal"
	Text        Kind = "text"
	Boolean     Kind = "boolean"
	Unknown     Kind = "unknown"
)

// Column is the profile of a single column.
type Column struct {
	Name           string         `json:"name"`
	Kind           Kind           `json:"kind"`
	RawType        string         `json:"raw_type"`
	NullCount      int            `json:"null_count"`
	NullPercentage float64        `json:"null_percentage"`
	UniqueN        int            `json:"unique_count"`
	Min            *float64       `json:"min,omitempty"`
	Max            *float64       `json:"max,omitempty"`
	Mean           *float64       `json:"mean,omitempty"`
	Std            *float64       `json:"std,omitempty"`
	Categories     map[string]int `json:"categories,omitempty"`
	Sample         []string       `json:"sample,omitempty"`
}

// Profile describes a whole table.
type Profile struct {
	Rows             int          `json:"rows"`
	ColumnCount      int          `json:"column_count"`
	HasMissingValues bool         `json:"has_missing_values"`
	Columns          []Column     `json:"columns"`
	MemoryBytes      int          `json:"memory_bytes"`
	Suggestions      []Suggestion `json:"suggestions"`
}

// Kinds returns column names grouped under their inferred kind.
func (p Profile) Kinds() map[Kind][]string {
	out := make(map[Kind][]string)
	for _, c := range p.Columns {
		out[c.Kind] = append(out[c.Kind], c.Name)
	}
	return out
}

// Analyze profiles every column of the table. A column whose analysis
// fails is reported as unknown instead of failing the whole profile.
func Analyze(t *dataset.Table) Profile {
	df := t.Frame()
	prof := Profile{Rows: df.Nrow()}
	for _, name := range df.Names() {
		col := Column{Name: name, Kind: Unknown}
		if !t.Nested(name) {
			col = profileColumn(name, df.Col(name))
		}
		col.RawType = string(df.Col(name).Type())
		if prof.Rows > 0 {
			col.NullPercentage = float64(col.NullCount) / float64(prof.Rows) * 100
		}
		if col.NullCount > 0 {
			prof.HasMissingValues = true
		}
		prof.Columns = append(prof.Columns, col)
		prof.MemoryBytes += columnBytes(df.Col(name))
	}
	prof.ColumnCount = len(prof.Columns)
	prof.Suggestions = suggest(prof)
	return prof
}

func profileColumn(name string, s series.Series) (col Column) {
	defer func() {
		if recover() != nil {
			col = Column{Name: name, Kind: Unknown}
		}
	}()
	col = Column{Name: name}

	values := s.Records()
	nonNull := make([]string, 0, len(values))
	for _, v := range values {
		if isNull(v) {
			col.NullCount++
			continue
		}
		nonNull = append(nonNull, v)
	}
	col.UniqueN = countUnique(nonNull)
	col.Sample = sample(nonNull, 5)
	col.Kind = classify(s, nonNull, col.UniqueN)

	switch col.Kind {
	case Numeric:
		col.Min, col.Max, col.Mean, col.Std = numericStats(s)
	case Categorical, Boolean:
		col.Categories = topCategories(nonNull, 10)
	}
	return col
}

// classify applies the decision order: boolean, temporal, numeric,
// then categorical or text by unique count. Empty columns are unknown.
func classify(s series.Series, nonNull []string, unique int) Kind {
	if len(nonNull) == 0 {
		return Unknown
	}
	if isBoolean(nonNull, unique) {
		return Boolean
	}
	if isTemporal(nonNull) {
		return Temporal
	}
	if s.Type() == series.Int || s.Type() == series.Float || allNumeric(nonNull) {
		return Numeric
	}
	if unique <= CategoricalThreshold {
		return Categorical
	}
	return Text
}

var boolTokens = map[string]bool{
	"true": true, "false": true, "0": true, "1": true,
}

func isBoolean(values []string, unique int) bool {
	if unique > 2 {
		return false
	}
	for _, v := range values {
		if !boolTokens[strings.ToLower(v)] {
			return false
		}
	}
	return true
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// isTemporal reports whether every sampled value parses under one of
// the accepted layouts. A single miss rejects the column.
func isTemporal(values []string) bool {
	if len(values) > dateSample {
		values = values[:dateSample]
	}
	for _, v := range values {
		if !parsesAsDate(v) {
			return false
		}
	}
	return true
}

func parsesAsDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func allNumeric(values []string) bool {
	for _, v := range values {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
	}
	return true
}

func isNull(v string) bool {
	return v == "" || v == "NaN" || v == "null" || v == "NA"
}

func countUnique(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

func sample(values []string, n int) []string {
	if len(values) < n {
		n = len(values)
	}
	return append([]string(nil), values[:n]...)
}

func topCategories(values []string, n int) map[string]int {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	if len(counts) <= n {
		return counts
	}
	type kv struct {
		k string
		c int
	}
	all := make([]kv, 0, len(counts))
	for k, c := range counts {
		all = append(all, kv{k, c})
	}
	for i := 0; i < n; i++ {
		best := i
		for j := i + 1; j < len(all); j++ {
			if all[j].c > all[best].c {
				best = j
			}
		}
		all[i], all[best] = all[best], all[i]
	}
	out := make(map[string]int, n)
	for _, e := range all[:n] {
		out[e.k] = e.c
	}
	return out
}

// numericStats skips NaN entries so null cells do not poison the
// aggregates. An all-null column keeps the pointers unset.
func numericStats(s series.Series) (min, max, mean, std *float64) {
	var clean []float64
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range s.Float() {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		clean = append(clean, v)
	}
	if len(clean) == 0 {
		return nil, nil, nil, nil
	}
	m := stat.Mean(clean, nil)
	var sd float64
	if len(clean) > 1 {
		sd = stat.StdDev(clean, nil)
	}
	return ptr(lo), ptr(hi), ptr(m), ptr(sd)
}

func columnBytes(s series.Series) int {
	total := 0
	for _, v := range s.Records() {
		total += len(v) + 16
	}
	return total
}

func ptr(v float64) *float64 { return &v }
