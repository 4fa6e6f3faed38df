package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/figkit/figkit"
	"github.com/figkit/figkit/dataset"
	"github.com/figkit/figkit/internal/log"
)

var rootCmd = &cobra.Command{
	Use:           "figkit",
	Short:         "configuration-driven chart tool",
	Long:          "figkit loads tabular data, profiles it, and renders charts from declarative configurations.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return log.Setup(viper.GetBool("verbose"))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	viper.SetEnvPrefix("FIGKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	cobra.CheckErr(viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")))

	rootCmd.AddCommand(inspectCmd, renderCmd, codegenCmd, templateCmd, exportCmd, batchCmd)
}

// templateDir resolves the preset directory: flag, then environment,
// then the user config directory.
func templateDir() string {
	if dir := viper.GetString("template-dir"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "figkit", "presets")
}

// loadConfig reads a chart configuration from a JSON or YAML file.
func loadConfig(path string) (figkit.ChartConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return figkit.ChartConfig{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return figkit.FromYAML(data)
	default:
		return figkit.FromJSON(data)
	}
}

// parseFilters reads column:op:value triples from the --filter flag.
func parseFilters(raw []string) ([]dataset.Filter, error) {
	out := make([]dataset.Filter, 0, len(raw))
	for _, r := range raw {
		parts := strings.SplitN(r, ":", 3)
		if len(parts) != 3 {
			return nil, &badFilterError{r}
		}
		out = append(out, dataset.Filter{Column: parts[0], Op: parts[1], Value: parts[2]})
	}
	return out, nil
}

type badFilterError struct{ raw string }

func (e *badFilterError) Error() string {
	return "bad filter " + e.raw + ", want column:op:value"
}
