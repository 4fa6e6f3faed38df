package figkit

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type AnnotationKind string

const (
	KindText  AnnotationKind = "text"
	KindArrow AnnotationKind = "arrow"
	KindLine  AnnotationKind = "line"
	KindRect  AnnotationKind = "rect"
	KindVLine AnnotationKind = "vline"
	KindHLine AnnotationKind = "hline"
)

type ArrowHead string

const (
	HeadTriangle ArrowHead = "triangle"
	HeadOpen     ArrowHead = "open"
	HeadNone     ArrowHead = "none"
	HeadCircle   ArrowHead = "circle"
	HeadSquare   ArrowHead = "square"
	HeadDiamond  ArrowHead = "diamond"
)

// Annotation is a closed set of six shapes drawn over a chart. Each
// variant carries only the fields that mean something for it;
// serialization is a tagged union keyed on "type".
type Annotation interface {
	Kind() AnnotationKind
}

// TextNote is a floating text label.
type TextNote struct {
	Text              string  `json:"text" yaml:"text"`
	X                 float64 `json:"x" yaml:"x"`
	Y                 float64 `json:"y" yaml:"y"`
	FontSize          int     `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	Color             string  `json:"color,omitempty" yaml:"color,omitempty"`
	Opacity           float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Background        string  `json:"background,omitempty" yaml:"background,omitempty"`
	BackgroundOpacity float64 `json:"background_opacity,omitempty" yaml:"background_opacity,omitempty"`
	BorderColor       string  `json:"border_color,omitempty" yaml:"border_color,omitempty"`
	BorderWidth       float64 `json:"border_width,omitempty" yaml:"border_width,omitempty"`
	DataCoords        bool    `json:"data_coords" yaml:"data_coords"`
}

func (TextNote) Kind() AnnotationKind { return KindText }

// Arrow points from (XEnd, YEnd) to (X, Y). When the tail is not set
// it defaults to a short offset from the tip.
type Arrow struct {
	Text       string    `json:"text,omitempty" yaml:"text,omitempty"`
	X          float64   `json:"x" yaml:"x"`
	Y          float64   `json:"y" yaml:"y"`
	XEnd       *float64  `json:"x_end,omitempty" yaml:"x_end,omitempty"`
	YEnd       *float64  `json:"y_end,omitempty" yaml:"y_end,omitempty"`
	Head       ArrowHead `json:"head,omitempty" yaml:"head,omitempty"`
	FontSize   int       `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	Color      string    `json:"color,omitempty" yaml:"color,omitempty"`
	LineWidth  float64   `json:"line_width,omitempty" yaml:"line_width,omitempty"`
	DataCoords bool      `json:"data_coords" yaml:"data_coords"`
}

func (Arrow) Kind() AnnotationKind { return KindArrow }

// Segment is a free line between two points in data space.
type Segment struct {
	X         float64  `json:"x" yaml:"x"`
	Y         float64  `json:"y" yaml:"y"`
	XEnd      *float64 `json:"x_end,omitempty" yaml:"x_end,omitempty"`
	YEnd      *float64 `json:"y_end,omitempty" yaml:"y_end,omitempty"`
	Color     string   `json:"color,omitempty" yaml:"color,omitempty"`
	LineWidth float64  `json:"line_width,omitempty" yaml:"line_width,omitempty"`
}

func (Segment) Kind() AnnotationKind { return KindLine }

// Box is a filled, bordered rectangle spanning two corners.
type Box struct {
	X           float64  `json:"x" yaml:"x"`
	Y           float64  `json:"y" yaml:"y"`
	XEnd        *float64 `json:"x_end,omitempty" yaml:"x_end,omitempty"`
	YEnd        *float64 `json:"y_end,omitempty" yaml:"y_end,omitempty"`
	Color       string   `json:"color,omitempty" yaml:"color,omitempty"`
	LineWidth   float64  `json:"line_width,omitempty" yaml:"line_width,omitempty"`
	FillOpacity float64  `json:"fill_opacity,omitempty" yaml:"fill_opacity,omitempty"`
	Opacity     float64  `json:"opacity,omitempty" yaml:"opacity,omitempty"`
}

func (Box) Kind() AnnotationKind { return KindRect }

// VLine is a full-height vertical reference line.
type VLine struct {
	X         float64 `json:"x" yaml:"x"`
	Text      string  `json:"text,omitempty" yaml:"text,omitempty"`
	Color     string  `json:"color,omitempty" yaml:"color,omitempty"`
	LineWidth float64 `json:"line_width,omitempty" yaml:"line_width,omitempty"`
}

func (VLine) Kind() AnnotationKind { return KindVLine }

// HLine is a full-width horizontal reference line.
type HLine struct {
	Y         float64 `json:"y" yaml:"y"`
	Text      string  `json:"text,omitempty" yaml:"text,omitempty"`
	Color     string  `json:"color,omitempty" yaml:"color,omitempty"`
	LineWidth float64 `json:"line_width,omitempty" yaml:"line_width,omitempty"`
}

func (HLine) Kind() AnnotationKind { return KindHLine }

type Annotations []Annotation

type (
	textEnvelope struct {
		Type     AnnotationKind `json:"type" yaml:"type"`
		TextNote `yaml:",inline"`
	}
	arrowEnvelope struct {
		Type  AnnotationKind `json:"type" yaml:"type"`
		Arrow `yaml:",inline"`
	}
	segmentEnvelope struct {
		Type    AnnotationKind `json:"type" yaml:"type"`
		Segment `yaml:",inline"`
	}
	boxEnvelope struct {
		Type AnnotationKind `json:"type" yaml:"type"`
		Box  `yaml:",inline"`
	}
	vlineEnvelope struct {
		Type  AnnotationKind `json:"type" yaml:"type"`
		VLine `yaml:",inline"`
	}
	hlineEnvelope struct {
		Type  AnnotationKind `json:"type" yaml:"type"`
		HLine `yaml:",inline"`
	}
)

func envelope(a Annotation) (any, error) {
	switch v := a.(type) {
	case TextNote:
		return textEnvelope{Type: v.Kind(), TextNote: v}, nil
	case Arrow:
		return arrowEnvelope{Type: v.Kind(), Arrow: v}, nil
	case Segment:
		return segmentEnvelope{Type: v.Kind(), Segment: v}, nil
	case Box:
		return boxEnvelope{Type: v.Kind(), Box: v}, nil
	case VLine:
		return vlineEnvelope{Type: v.Kind(), VLine: v}, nil
	case HLine:
		return hlineEnvelope{Type: v.Kind(), HLine: v}, nil
	default:
		return nil, fmt.Errorf("annotation: unknown variant %T", a)
	}
}

func (as Annotations) MarshalJSON() ([]byte, error) {
	list := make([]any, 0, len(as))
	for _, a := range as {
		env, err := envelope(a)
		if err != nil {
			return nil, err
		}
		list = append(list, env)
	}
	return json.Marshal(list)
}

func (as *Annotations) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	list := make(Annotations, 0, len(raw))
	for _, msg := range raw {
		var head struct {
			Type AnnotationKind `json:"type"`
		}
		if err := json.Unmarshal(msg, &head); err != nil {
			return err
		}
		a, err := decodeAnnotation(head.Type, func(v any) error {
			return json.Unmarshal(msg, v)
		})
		if err != nil {
			return err
		}
		list = append(list, a)
	}
	*as = list
	return nil
}

func (as Annotations) MarshalYAML() (any, error) {
	list := make([]any, 0, len(as))
	for _, a := range as {
		env, err := envelope(a)
		if err != nil {
			return nil, err
		}
		list = append(list, env)
	}
	return list, nil
}

func (as *Annotations) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("annotations: expected a sequence, got %v", node.Kind)
	}
	list := make(Annotations, 0, len(node.Content))
	for _, item := range node.Content {
		var head struct {
			Type AnnotationKind `yaml:"type"`
		}
		if err := item.Decode(&head); err != nil {
			return err
		}
		a, err := decodeAnnotation(head.Type, item.Decode)
		if err != nil {
			return err
		}
		list = append(list, a)
	}
	*as = list
	return nil
}

func decodeAnnotation(kind AnnotationKind, decode func(any) error) (Annotation, error) {
	var target Annotation
	switch kind {
	case KindText:
		var v TextNote
		if err := decode(&v); err != nil {
			return nil, err
		}
		target = v
	case KindArrow:
		var v Arrow
		if err := decode(&v); err != nil {
			return nil, err
		}
		target = v
	case KindLine:
		var v Segment
		if err := decode(&v); err != nil {
			return nil, err
		}
		target = v
	case KindRect:
		var v Box
		if err := decode(&v); err != nil {
			return nil, err
		}
		target = v
	case KindVLine:
		var v VLine
		if err := decode(&v); err != nil {
			return nil, err
		}
		target = v
	case KindHLine:
		var v HLine
		if err := decode(&v); err != nil {
			return nil, err
		}
		target = v
	default:
		return nil, fmt.Errorf("annotation: unknown type %q", kind)
	}
	return target, nil
}

// Float returns a pointer for optional coordinate fields.
func Float(v float64) *float64 { return &v }
