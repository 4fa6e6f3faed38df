package profile

import (
	"fmt"
	"sort"

	"github.com/figkit/figkit"
)

// Suggestion is a ready-to-apply chart recommendation for a table.
type Suggestion struct {
	Type     figkit.ChartType `json:"chart_type"`
	XColumn  string           `json:"x_column,omitempty"`
	YColumns []string         `json:"y_columns,omitempty"`
	Score    float64          `json:"score"`
	Reason   string           `json:"reason"`
}

// Config expands the suggestion into a full configuration.
func (s Suggestion) Config() figkit.ChartConfig {
	cfg := figkit.DefaultConfig()
	cfg.ChartType = s.Type
	cfg.XColumn = s.XColumn
	cfg.YColumns = append([]string(nil), s.YColumns...)
	return cfg
}

// suggest scores chart types against the profiled column kinds and
// keeps the five best, one per chart type.
func suggest(p Profile) []Suggestion {
	kinds := p.Kinds()
	numeric := kinds[Numeric]
	categorical := kinds[Categorical]
	temporal := kinds[Temporal]

	var out []Suggestion
	if len(temporal) > 0 && len(numeric) > 0 {
		out = append(out, Suggestion{
			Type:     figkit.TypeLine,
			XColumn:  temporal[0],
			YColumns: numeric[:min(len(numeric), 3)],
			Score:    0.95,
			Reason:   fmt.Sprintf("%s over time", joinFew(numeric)),
		})
	}
	if len(numeric) >= 2 {
		out = append(out, Suggestion{
			Type:     figkit.TypeScatter,
			XColumn:  numeric[0],
			YColumns: numeric[1:2],
			Score:    0.90,
			Reason:   fmt.Sprintf("relationship between %s and %s", numeric[0], numeric[1]),
		})
	}
	if cat := smallCategorical(p, 15); cat != "" && len(numeric) > 0 {
		out = append(out, Suggestion{
			Type:     figkit.TypeBar,
			XColumn:  cat,
			YColumns: numeric[:1],
			Score:    0.85,
			Reason:   fmt.Sprintf("%s by %s", numeric[0], cat),
		})
	}
	if len(categorical) > 0 && len(numeric) > 0 {
		out = append(out, Suggestion{
			Type:     figkit.TypeBox,
			XColumn:  categorical[0],
			YColumns: numeric[:1],
			Score:    0.75,
			Reason:   fmt.Sprintf("distribution of %s per %s", numeric[0], categorical[0]),
		})
	}
	for _, col := range numeric[:min(len(numeric), 2)] {
		out = append(out, Suggestion{
			Type:     figkit.TypeHistogram,
			XColumn:  col,
			Score:    0.70,
			Reason:   fmt.Sprintf("distribution of %s", col),
		})
	}
	if len(numeric) >= 3 {
		out = append(out, Suggestion{
			Type:     figkit.TypeHeatmap,
			XColumn:  figkit.CorrelationColumn,
			YColumns: append([]string(nil), numeric...),
			Score:    0.65,
			Reason:   "correlation across numeric columns",
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	seen := make(map[figkit.ChartType]bool)
	top := out[:0]
	for _, s := range out {
		if seen[s.Type] {
			continue
		}
		seen[s.Type] = true
		top = append(top, s)
		if len(top) == 5 {
			break
		}
	}
	return top
}

func smallCategorical(p Profile, limit int) string {
	for _, c := range p.Columns {
		if c.Kind == Categorical && c.UniqueN <= limit {
			return c.Name
		}
	}
	return ""
}

func joinFew(cols []string) string {
	n := min(len(cols), 3)
	s := cols[0]
	for _, c := range cols[1:n] {
		s += ", " + c
	}
	return s
}
