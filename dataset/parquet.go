package dataset

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/parquet-go/parquet-go"
)

func loadParquet(data []byte) (*Table, error) {
	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	var names []string
	for _, col := range f.Schema().Columns() {
		// leaf paths; nested fields come through dotted like the
		// json loader produces
		name := col[0]
		for _, part := range col[1:] {
			name += "." + part
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("parquet file has no columns")
	}
	records := [][]string{names}
	buf := make([]parquet.Row, 128)
	for _, rg := range f.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				line := make([]string, len(names))
				for _, v := range row {
					idx := int(v.Column())
					if idx < 0 || idx >= len(line) {
						continue
					}
					line[idx] = formatValue(v)
				}
				records = append(records, line)
			}
			if err != nil {
				break
			}
		}
		rows.Close()
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("parquet file has no rows")
	}
	return fromFrame(dataframe.LoadRecords(records), nil)
}

func formatValue(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
