package figkit

import (
	"errors"
	"fmt"
)

// ErrNotConfigured marks a configuration that is not sufficient to
// render yet. Callers treat it as a "configure first" state, not a
// failure.
var ErrNotConfigured = errors.New("chart not configured")

// TypeSpec declares what a chart type needs from the configuration.
// The renderer, the validator and the code generator all consume this
// table, so a new chart type is added in exactly one place.
type TypeSpec struct {
	Type        ChartType
	NeedsX      bool // x_column is mandatory
	MinY        int  // minimum y_columns entries
	XOrY        bool // x_column or one y_column is enough
	DualAxis    bool // honors y2_columns
	Publication bool // supported by the publication backend
}

var typeSpecs = map[ChartType]TypeSpec{
	TypeLine:        {Type: TypeLine, XOrY: true, DualAxis: true, Publication: true},
	TypeScatter:     {Type: TypeScatter, XOrY: true, Publication: true},
	TypeBar:         {Type: TypeBar, XOrY: true, Publication: true},
	TypeHistogram:   {Type: TypeHistogram, NeedsX: true, Publication: true},
	TypeBox:         {Type: TypeBox, XOrY: true, Publication: true},
	TypeViolin:      {Type: TypeViolin, XOrY: true},
	TypeHeatmap:     {Type: TypeHeatmap, MinY: 2, Publication: true},
	TypeArea:        {Type: TypeArea, XOrY: true, DualAxis: true},
	TypePie:         {Type: TypePie, XOrY: true},
	TypeBubble:      {Type: TypeBubble, XOrY: true},
	TypeFunnel:      {Type: TypeFunnel, XOrY: true},
	TypeTreemap:     {Type: TypeTreemap, XOrY: true},
	TypeSunburst:    {Type: TypeSunburst, XOrY: true},
	TypeRadar:       {Type: TypeRadar, XOrY: true},
	TypeParallel:    {Type: TypeParallel, XOrY: true},
	TypeCandlestick: {Type: TypeCandlestick, XOrY: true},
	TypeWaterfall:   {Type: TypeWaterfall, XOrY: true},
	TypePolar:       {Type: TypePolar, XOrY: true},
	TypeContour:     {Type: TypeContour, XOrY: true},
	TypeDensity:     {Type: TypeDensity, XOrY: true},
}

// ChartTypes returns every supported chart type, in a stable order.
func ChartTypes() []ChartType {
	return []ChartType{
		TypeLine, TypeScatter, TypeBar, TypeHistogram, TypeBox,
		TypeViolin, TypeHeatmap, TypeArea, TypePie, TypeBubble,
		TypeFunnel, TypeTreemap, TypeSunburst, TypeRadar, TypeParallel,
		TypeCandlestick, TypeWaterfall, TypePolar, TypeContour,
		TypeDensity,
	}
}

// SpecOf returns the descriptor for a chart type.
func SpecOf(t ChartType) (TypeSpec, bool) {
	s, ok := typeSpecs[t]
	return s, ok
}

// Validate checks that the configuration carries enough mapping for
// its chart type. It returns an error wrapping ErrNotConfigured when
// the user still has work to do, and a plain error for unknown types.
func (c ChartConfig) Validate() error {
	spec, ok := typeSpecs[c.ChartType]
	if !ok {
		return fmt.Errorf("unsupported chart type %q", c.ChartType)
	}
	switch {
	case spec.NeedsX && c.XColumn == "":
		return fmt.Errorf("%w: %s needs an x column", ErrNotConfigured, c.ChartType)
	case spec.MinY > 0 && len(c.YColumns) < spec.MinY:
		return fmt.Errorf("%w: %s needs at least %d y columns", ErrNotConfigured, c.ChartType, spec.MinY)
	case spec.XOrY && c.XColumn == "" && len(c.YColumns) == 0:
		return fmt.Errorf("%w: %s needs an x column or a y column", ErrNotConfigured, c.ChartType)
	}
	return nil
}
