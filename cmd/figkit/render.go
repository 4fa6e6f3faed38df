package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/figkit/figkit"
	"github.com/figkit/figkit/dataset"
	"github.com/figkit/figkit/internal/log"
	"github.com/figkit/figkit/preset"
	"github.com/figkit/figkit/render"
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "render a chart from a dataset and a configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		configPath, _ := flags.GetString("config")
		presetName, _ := flags.GetString("preset")
		output, _ := flags.GetString("output")
		backend, _ := flags.GetString("backend")
		rawFilters, _ := flags.GetStringArray("filter")

		var (
			cfg figkit.ChartConfig
			err error
		)
		switch {
		case configPath != "":
			cfg, err = loadConfig(configPath)
		case presetName != "":
			var entry preset.Entry
			entry, err = preset.NewStore(templateDir()).Load(presetName)
			cfg = entry.Config
		default:
			err = fmt.Errorf("either --config or --preset is required")
		}
		if err != nil {
			return err
		}

		tbl, err := dataset.Load(args[0])
		if err != nil {
			return err
		}
		filters, err := parseFilters(rawFilters)
		if err != nil {
			return err
		}
		if len(filters) > 0 {
			if tbl, err = tbl.Apply(filters...); err != nil {
				return err
			}
		}

		res, err := render.New(log.Logger()).Render(cfg, tbl, render.Backend(backend))
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			log.Warn("render", zap.String("warning", w))
		}
		if err := writeFigure(res, output, flags); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", output)
		return nil
	},
}

func writeFigure(res *render.Result, output string, flags *pflag.FlagSet) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	if ext == "html" {
		return res.Export(output)
	}
	ec := figkit.DefaultExport()
	ec.Format = ext
	ec.Width, _ = flags.GetInt("width")
	ec.Height, _ = flags.GetInt("height")
	ec.DPI, _ = flags.GetInt("dpi")
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	return res.WriteImageWith(f, ec)
}

func init() {
	renderCmd.Flags().StringP("config", "c", "", "chart configuration file (json or yaml)")
	renderCmd.Flags().String("preset", "", "start from a stored preset instead of a config file")
	renderCmd.Flags().StringP("output", "o", "figure.html", "output file, format chosen by extension")
	renderCmd.Flags().StringP("backend", "b", string(render.Interactive), "interactive or publication")
	renderCmd.Flags().StringArray("filter", nil, "row filter column:op:value, repeatable")
	renderCmd.Flags().Int("width", figkit.DefaultWidth, "image width in pixels")
	renderCmd.Flags().Int("height", figkit.DefaultHeight, "image height in pixels")
	renderCmd.Flags().Int("dpi", figkit.DefaultDPI, "image resolution")
}
