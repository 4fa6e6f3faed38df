package dataset

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Filter is one predicate applied to a column. Filters combine with
// AND when several are given.
type Filter struct {
	Column string `json:"column" yaml:"column"`
	Op     string `json:"op" yaml:"op"`
	Value  string `json:"value" yaml:"value"`
}

var comparators = map[string]series.Comparator{
	"eq":  series.Eq,
	"neq": series.Neq,
	"gt":  series.Greater,
	"gte": series.GreaterEq,
	"lt":  series.Less,
	"lte": series.LessEq,
}

// Apply returns a new table holding only the rows every filter
// accepts. The source table is left untouched.
func (t *Table) Apply(filters ...Filter) (*Table, error) {
	df := t.df
	for _, f := range filters {
		pred, err := t.predicate(f)
		if err != nil {
			return nil, err
		}
		df = df.Filter(pred)
		if err := df.Error(); err != nil {
			return nil, fmt.Errorf("filter %s %s %s: %w", f.Column, f.Op, f.Value, err)
		}
	}
	return fromFrame(df, t.nested)
}

func (t *Table) predicate(f Filter) (dataframe.F, error) {
	if !t.hasColumn(f.Column) {
		return dataframe.F{}, fmt.Errorf("unknown column %q", f.Column)
	}
	if f.Op == "contains" {
		needle := f.Value
		return dataframe.F{
			Colname:    f.Column,
			Comparator: series.CompFunc,
			Comparando: func(el series.Element) bool {
				return strings.Contains(el.String(), needle)
			},
		}, nil
	}
	cmp, ok := comparators[f.Op]
	if !ok {
		return dataframe.F{}, fmt.Errorf("unknown filter op %q", f.Op)
	}
	return dataframe.F{Colname: f.Column, Comparator: cmp, Comparando: f.Value}, nil
}

func (t *Table) hasColumn(name string) bool {
	for _, c := range t.df.Names() {
		if c == name {
			return true
		}
	}
	return false
}
