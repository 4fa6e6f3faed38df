package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figkit/figkit"
	"github.com/figkit/figkit/dataset"
)

func load(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	tbl, err := dataset.LoadReader(strings.NewReader(csv), dataset.FormatCSV)
	require.NoError(t, err)
	return tbl
}

func kindOf(t *testing.T, p Profile, name string) Kind {
	t.Helper()
	for _, c := range p.Columns {
		if c.Name == name {
			return c.Kind
		}
	}
	t.Fatalf("column %s not profiled", name)
	return Unknown
}

func TestClassifyKinds(t *testing.T) {
	tbl := load(t, strings.Join([]string{
		"num,flag,date,cat,text",
		"1.5,true,2024-01-01,red,the quick brown fox one",
		"2.5,false,2024-01-02,blue,jumped over the lazy dog",
		"3.5,true,2024-01-03,red,some other free form text",
	}, "\n"))
	p := Analyze(tbl)
	assert.Equal(t, Numeric, kindOf(t, p, "num"))
	assert.Equal(t, Boolean, kindOf(t, p, "flag"))
	assert.Equal(t, Temporal, kindOf(t, p, "date"))
	assert.Equal(t, Categorical, kindOf(t, p, "cat"))

	assert.Equal(t, 5, p.ColumnCount)
	assert.False(t, p.HasMissingValues)
	for _, c := range p.Columns {
		assert.NotEmpty(t, c.RawType, "column %s", c.Name)
	}
}

func TestNumericNeverCategorical(t *testing.T) {
	// two distinct numeric values still profile as numeric, not as a
	// low-cardinality category
	tbl := load(t, "v\n1\n2\n1\n2\n1\n")
	p := Analyze(tbl)
	assert.Equal(t, Numeric, kindOf(t, p, "v"))
}

func TestZeroOneIsBoolean(t *testing.T) {
	tbl := load(t, "b\n0\n1\n0\n1\n")
	p := Analyze(tbl)
	assert.Equal(t, Boolean, kindOf(t, p, "b"))
}

func TestSingleBadDateRejectsTemporal(t *testing.T) {
	tbl := load(t, "d\n2024-01-01\n2024-01-02\nnot-a-date\n")
	p := Analyze(tbl)
	assert.NotEqual(t, Temporal, kindOf(t, p, "d"))
}

func TestCategoricalThreshold(t *testing.T) {
	var few, many []string
	few = append(few, "c")
	many = append(many, "c")
	for i := 0; i < 60; i++ {
		few = append(few, "label"+string(rune('a'+i%CategoricalThreshold)))
		many = append(many, "label"+string(rune('a'+i%(CategoricalThreshold+5))))
	}
	p := Analyze(load(t, strings.Join(few, "\n")))
	assert.Equal(t, Categorical, kindOf(t, p, "c"))
	p = Analyze(load(t, strings.Join(many, "\n")))
	assert.Equal(t, Text, kindOf(t, p, "c"))
}

func TestNullHandling(t *testing.T) {
	tbl := load(t, "v\n1\n\n3\nNaN\n5\n")
	p := Analyze(tbl)
	col := p.Columns[0]
	assert.Equal(t, Numeric, col.Kind)
	assert.Equal(t, 2, col.NullCount)
	assert.InDelta(t, 40.0, col.NullPercentage, 1e-9)
	assert.True(t, p.HasMissingValues)
	assert.Equal(t, 1, p.ColumnCount)
	require.NotNil(t, col.Mean)
	assert.InDelta(t, 3.0, *col.Mean, 1e-9)
	require.NotNil(t, col.Min)
	assert.Equal(t, 1.0, *col.Min)
	require.NotNil(t, col.Max)
	assert.Equal(t, 5.0, *col.Max)
}

func TestAllNullColumn(t *testing.T) {
	tbl := load(t, "v,w\n,1\n,2\n")
	p := Analyze(tbl)
	col := p.Columns[0]
	assert.Equal(t, Unknown, col.Kind)
	assert.Nil(t, col.Mean)
	assert.Nil(t, col.Min)
}

func TestNestedColumnIsUnknown(t *testing.T) {
	in := `[{"tags":["a"],"n":1},{"tags":["b"],"n":2}]`
	tbl, err := dataset.LoadReader(strings.NewReader(in), dataset.FormatJSON)
	require.NoError(t, err)
	p := Analyze(tbl)
	assert.Equal(t, Unknown, kindOf(t, p, "tags"))
	assert.Equal(t, Numeric, kindOf(t, p, "n"))
}

func TestSuggestionsOrderingAndDedup(t *testing.T) {
	tbl := load(t, strings.Join([]string{
		"date,sales,cost,profit,region",
		"2024-01-01,10,4,6,north",
		"2024-01-02,12,5,7,south",
		"2024-01-03,14,6,8,north",
		"2024-01-04,11,4,7,east",
	}, "\n"))
	p := Analyze(tbl)
	require.NotEmpty(t, p.Suggestions)
	assert.LessOrEqual(t, len(p.Suggestions), 5)

	assert.Equal(t, figkit.TypeLine, p.Suggestions[0].Type)
	assert.Equal(t, 0.95, p.Suggestions[0].Score)
	for i := 1; i < len(p.Suggestions); i++ {
		assert.GreaterOrEqual(t, p.Suggestions[i-1].Score, p.Suggestions[i].Score)
	}
	seen := make(map[figkit.ChartType]bool)
	for _, s := range p.Suggestions {
		assert.False(t, seen[s.Type], "duplicate suggestion for %s", s.Type)
		seen[s.Type] = true
	}
	assert.True(t, seen[figkit.TypeHeatmap], "three numeric columns earn a correlation heatmap")
}

func TestSuggestionConfigValidates(t *testing.T) {
	tbl := load(t, "x,y\n1,2\n3,4\n5,6\n")
	p := Analyze(tbl)
	for _, s := range p.Suggestions {
		cfg := s.Config()
		assert.NoError(t, cfg.Validate(), "suggestion %s", s.Type)
	}
}
