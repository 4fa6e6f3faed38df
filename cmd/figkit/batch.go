package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/figkit/figkit"
	"github.com/figkit/figkit/dataset"
	"github.com/figkit/figkit/internal/log"
	"github.com/figkit/figkit/render"
)

// manifest describes a batch render: one dataset, many figures.
type manifest struct {
	Data    string `json:"data"`
	Figures []struct {
		Config  figkit.ChartConfig `json:"config"`
		Output  string             `json:"output"`
		Backend string             `json:"backend,omitempty"`
	} `json:"figures"`
}

var batchCmd = &cobra.Command{
	Use:   "batch MANIFEST",
	Short: "render every figure of a JSON manifest concurrently",
	Long: `Render a set of figures in one pass.

The manifest names a dataset and a list of figures, each with its own
configuration, output path and backend. Figures render concurrently;
the first failure cancels the rest.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var m manifest
		if err := json.Unmarshal(raw, &m); err != nil {
			return fmt.Errorf("parse manifest: %w", err)
		}
		if m.Data == "" || len(m.Figures) == 0 {
			return fmt.Errorf("manifest needs a data file and at least one figure")
		}
		tbl, err := dataset.Load(m.Data)
		if err != nil {
			return err
		}
		items := make([]render.ExportItem, 0, len(m.Figures))
		for _, f := range m.Figures {
			backend := render.Backend(f.Backend)
			if f.Backend == "" {
				backend = render.Interactive
			}
			items = append(items, render.ExportItem{
				Config:  f.Config,
				Table:   tbl,
				Backend: backend,
				Path:    f.Output,
			})
		}
		eng := render.New(log.Logger())
		if err := eng.ExportAll(cmd.Context(), items); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d figures\n", len(items))
		return nil
	},
}
