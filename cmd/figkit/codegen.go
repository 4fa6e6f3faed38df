package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/figkit/figkit/render"
	"github.com/figkit/figkit/script"
)

var codegenCmd = &cobra.Command{
	Use:   "codegen",
	Short: "generate a standalone Go program for a chart configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		configPath, _ := flags.GetString("config")
		backend, _ := flags.GetString("backend")
		dataPath, _ := flags.GetString("data")
		figurePath, _ := flags.GetString("figure")
		output, _ := flags.GetString("output")

		if configPath == "" {
			return fmt.Errorf("--config is required")
		}
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		opts := script.Options{DataPath: dataPath, OutputPath: figurePath}
		var src string
		if both, _ := flags.GetBool("both"); both {
			src, err = script.GenerateCombined(cfg, opts)
		} else {
			src, err = script.Generate(cfg, render.Backend(backend), opts)
		}
		if err != nil {
			return err
		}
		if output == "" || output == "-" {
			fmt.Fprint(cmd.OutOrStdout(), src)
			return nil
		}
		if err := os.WriteFile(output, []byte(src), 0o644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", output)
		return nil
	},
}

func init() {
	codegenCmd.Flags().StringP("config", "c", "", "chart configuration file (json or yaml)")
	codegenCmd.Flags().StringP("backend", "b", string(render.Interactive), "interactive or publication")
	codegenCmd.Flags().String("data", "", "dataset path the generated program loads")
	codegenCmd.Flags().String("figure", "", "figure path the generated program writes")
	codegenCmd.Flags().StringP("output", "o", "-", "source file to write, - for stdout")
	codegenCmd.Flags().Bool("both", false, "emit one program producing both backends' artifacts")
}
