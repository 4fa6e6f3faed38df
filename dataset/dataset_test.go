package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	cases := map[string]Format{
		"data.csv":       FormatCSV,
		"data.TSV":       FormatCSV,
		"data.json":      FormatJSON,
		"data.yaml":      FormatYAML,
		"data.yml":       FormatYAML,
		"book.xlsx":      FormatExcel,
		"events.parquet": FormatParquet,
		"notes.txt":      FormatUnknown,
		"noext":          FormatUnknown,
	}
	for name, want := range cases {
		assert.Equal(t, want, Detect(name), name)
	}
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ',', detectDelimiter("a,b,c\n1,2,3"))
	assert.Equal(t, ';', detectDelimiter("a;b;c\n1;2;3"))
	assert.Equal(t, '\t', detectDelimiter("a\tb\tc"))
	assert.Equal(t, '|', detectDelimiter("a|b|c"))
	assert.Equal(t, ',', detectDelimiter("plain text"))
}

func TestLoadCSV(t *testing.T) {
	tbl, err := LoadReader(strings.NewReader("name,score\nalice,10\nbob,12\n"), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "score"}, tbl.Columns())
	assert.Equal(t, 2, tbl.Len())
}

func TestLoadCSVSemicolon(t *testing.T) {
	tbl, err := LoadReader(strings.NewReader("name;score\nalice;10\nbob;12\n"), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "score"}, tbl.Columns())
}

func TestLoadCSVSkipsRaggedRows(t *testing.T) {
	in := "a,b\n1,2\nbroken\n3,4\n"
	tbl, err := LoadReader(strings.NewReader(in), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
}

func TestLoadJSONRecords(t *testing.T) {
	in := `[{"city":"Oslo","temp":4.5},{"city":"Lima","temp":19.0}]`
	tbl, err := LoadReader(strings.NewReader(in), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	assert.ElementsMatch(t, []string{"city", "temp"}, tbl.Columns())
}

func TestLoadJSONColumnLists(t *testing.T) {
	in := `{"x":[1,2,3],"y":[4,5,6]}`
	tbl, err := LoadReader(strings.NewReader(in), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.ElementsMatch(t, []string{"x", "y"}, tbl.Columns())
}

func TestLoadJSONNested(t *testing.T) {
	in := `[{"user":{"name":"ada","age":36},"tags":["a","b"]}]`
	tbl, err := LoadReader(strings.NewReader(in), FormatJSON)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tags", "user.age", "user.name"}, tbl.Columns())
	assert.True(t, tbl.Nested("tags"))
	assert.False(t, tbl.Nested("user.name"))
}

func TestLoadJSONScalarRoot(t *testing.T) {
	_, err := LoadReader(strings.NewReader(`42`), FormatJSON)
	assert.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	in := "- name: alpha\n  value: 1\n- name: beta\n  value: 2\n"
	tbl, err := LoadReader(strings.NewReader(in), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	assert.ElementsMatch(t, []string{"name", "value"}, tbl.Columns())
}

func TestApplyFilters(t *testing.T) {
	tbl, err := LoadReader(strings.NewReader("name,score\nalice,10\nbob,12\ncarol,8\n"), FormatCSV)
	require.NoError(t, err)

	got, err := tbl.Apply(Filter{Column: "score", Op: "gte", Value: "10"})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, 3, tbl.Len(), "source table untouched")

	got, err = tbl.Apply(Filter{Column: "name", Op: "contains", Value: "aro"})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())

	_, err = tbl.Apply(Filter{Column: "missing", Op: "eq", Value: "x"})
	assert.Error(t, err)

	_, err = tbl.Apply(Filter{Column: "name", Op: "between", Value: "x"})
	assert.Error(t, err)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tbl, err := LoadReader(strings.NewReader("a,b\n1,x\n2,y\n"), FormatCSV)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))

	again, err := LoadReader(&buf, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns(), again.Columns())
	assert.Equal(t, tbl.Len(), again.Len())
}

func TestWriteExcelRoundTrip(t *testing.T) {
	tbl, err := LoadReader(strings.NewReader("a,b\n1,x\n2,y\n"), FormatCSV)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteExcel(&buf))

	again, err := LoadReader(&buf, FormatExcel)
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns(), again.Columns())
	assert.Equal(t, tbl.Len(), again.Len())
}

func TestSizeCap(t *testing.T) {
	big := strings.NewReader(strings.Repeat("x", MaxUploadBytes+1))
	_, err := LoadReader(big, FormatCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
}
