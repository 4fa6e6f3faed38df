// Package script turns a chart configuration into a standalone Go
// program reproducing the figure outside the application.
package script

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/figkit/figkit"
	"github.com/figkit/figkit/render"
)

// Options controls the generated program.
type Options struct {
	// DataPath is the dataset the program loads, data.csv when empty.
	DataPath string
	// OutputPath overrides the figure file name. The extension must
	// match the backend.
	OutputPath string
	// ModulePath is the import root of this library.
	ModulePath string
}

func (o Options) withDefaults(backend render.Backend) Options {
	if o.DataPath == "" {
		o.DataPath = "data.csv"
	}
	if o.OutputPath == "" {
		if backend == render.Publication {
			o.OutputPath = "figure.png"
		} else {
			o.OutputPath = "figure.html"
		}
	}
	if o.ModulePath == "" {
		o.ModulePath = "github.com/figkit/figkit"
	}
	return o
}

type templateData struct {
	Options
	Backend    render.Backend
	ChartType  figkit.ChartType
	ConfigJSON string
	Columns    []string
}

var program = template.Must(template.New("program").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`// {{ .ChartType }} figure generated from a saved configuration.
// Columns used: {{ join .Columns ", " }}
package main

import (
	"fmt"
	"os"

	figkit "{{ .ModulePath }}"
	"{{ .ModulePath }}/dataset"
	"{{ .ModulePath }}/render"
)

const configJSON = {{ printf "%q" .ConfigJSON }}

func main() {
	tbl, err := dataset.Load({{ printf "%q" .DataPath }})
	if err != nil {
		fmt.Fprintln(os.Stderr, "load data:", err)
		os.Exit(1)
	}
	cfg, err := figkit.FromJSON([]byte(configJSON))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	res, err := render.New(nil).Render(cfg, tbl, render.{{ if eq .Backend "publication" }}Publication{{ else }}Interactive{{ end }})
	if err != nil {
		fmt.Fprintln(os.Stderr, "render:", err)
		os.Exit(1)
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	if err := res.Export({{ printf "%q" .OutputPath }}); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
	fmt.Println("wrote", {{ printf "%q" .OutputPath }})
}
`))

var stub = template.Must(template.New("stub").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`// {{ .ChartType }} has no publication form; the static backend draws
// {{ join .Supported ", " }}.
// Generate the interactive variant of this chart instead.
package main

func main() {}
`))

// Generate renders the program source for a configuration and backend.
// A chart type the publication backend cannot draw yields a commented
// stub rather than an error, so batch generation never stops short.
func Generate(cfg figkit.ChartConfig, backend render.Backend, o Options) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	spec, ok := figkit.SpecOf(cfg.ChartType)
	if !ok {
		return "", fmt.Errorf("unsupported chart type %q", cfg.ChartType)
	}
	if backend == render.Publication && !spec.Publication {
		var buf bytes.Buffer
		err := stub.Execute(&buf, struct {
			ChartType figkit.ChartType
			Supported []string
		}{cfg.ChartType, publicationTypes()})
		return buf.String(), err
	}
	raw, err := cfg.ToJSON()
	if err != nil {
		return "", err
	}
	data := templateData{
		Options:    o.withDefaults(backend),
		Backend:    backend,
		ChartType:  cfg.ChartType,
		ConfigJSON: string(raw),
		Columns:    usedColumns(cfg),
	}
	var buf bytes.Buffer
	if err := program.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var combined = template.Must(template.New("combined").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`// {{ .ChartType }} figure generated from a saved configuration.
// Writes the interactive HTML artifact{{ if .Publication }} and the publication image{{ end }}.
// Columns used: {{ join .Columns ", " }}
package main

import (
	"fmt"
	"os"

	figkit "{{ .ModulePath }}"
	"{{ .ModulePath }}/dataset"
	"{{ .ModulePath }}/render"
)

const configJSON = {{ printf "%q" .ConfigJSON }}

func main() {
	tbl, err := dataset.Load({{ printf "%q" .DataPath }})
	if err != nil {
		fmt.Fprintln(os.Stderr, "load data:", err)
		os.Exit(1)
	}
	cfg, err := figkit.FromJSON([]byte(configJSON))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	eng := render.New(nil)

	res, err := eng.Render(cfg, tbl, render.Interactive)
	if err != nil {
		fmt.Fprintln(os.Stderr, "render:", err)
		os.Exit(1)
	}
	if err := res.Export("figure.html"); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
	fmt.Println("wrote figure.html")
{{ if .Publication }}
	res, err = eng.Render(cfg, tbl, render.Publication)
	if err != nil {
		fmt.Fprintln(os.Stderr, "render:", err)
		os.Exit(1)
	}
	if err := res.Export({{ printf "%q" .OutputPath }}); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
	fmt.Println("wrote", {{ printf "%q" .OutputPath }})
{{ end }}}
`))

// GenerateCombined renders one program producing both backends'
// artifacts: the HTML figure always, the publication image when the
// chart type supports it.
func GenerateCombined(cfg figkit.ChartConfig, o Options) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	spec, ok := figkit.SpecOf(cfg.ChartType)
	if !ok {
		return "", fmt.Errorf("unsupported chart type %q", cfg.ChartType)
	}
	raw, err := cfg.ToJSON()
	if err != nil {
		return "", err
	}
	data := struct {
		templateData
		Publication bool
	}{
		templateData: templateData{
			Options:    o.withDefaults(render.Publication),
			Backend:    render.Publication,
			ChartType:  cfg.ChartType,
			ConfigJSON: string(raw),
			Columns:    usedColumns(cfg),
		},
		Publication: spec.Publication,
	}
	var buf bytes.Buffer
	if err := combined.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func publicationTypes() []string {
	var out []string
	for _, ct := range figkit.ChartTypes() {
		if spec, ok := figkit.SpecOf(ct); ok && spec.Publication {
			out = append(out, string(ct))
		}
	}
	return out
}

func usedColumns(cfg figkit.ChartConfig) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if name == "" || name == figkit.CorrelationColumn || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	add(cfg.XColumn)
	for _, c := range cfg.YColumns {
		add(c)
	}
	for _, c := range cfg.Y2Columns {
		add(c)
	}
	add(cfg.ColorColumn)
	add(cfg.SizeColumn)
	add(cfg.FacetColumn)
	add(cfg.GroupBy)
	if len(out) == 0 {
		out = []string{"(none)"}
	}
	return out
}
