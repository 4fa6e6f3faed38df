package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/figkit/figkit/preset"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "manage stored chart configurations",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "list built-in and stored presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := preset.NewStore(templateDir()).List()
		if err != nil {
			return err
		}
		for _, e := range entries {
			origin := "user"
			if e.Builtin {
				origin = "builtin"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-8s %-12s %s\n",
				e.Name, origin, e.Config.ChartType, e.Description)
		}
		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "print a preset configuration as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := preset.NewStore(templateDir()).Load(args[0])
		if err != nil {
			return err
		}
		data, err := entry.Config.ToJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var templateSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "store a configuration file under a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		description, _ := cmd.Flags().GetString("description")
		if configPath == "" {
			return fmt.Errorf("--config is required")
		}
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		if err := preset.NewStore(templateDir()).Save(args[0], description, cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "saved", args[0])
		return nil
	},
}

var templateRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "delete a stored preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := preset.NewStore(templateDir()).Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
		return nil
	},
}

func init() {
	templateCmd.PersistentFlags().String("template-dir", "", "preset directory (FIGKIT_TEMPLATE_DIR)")
	cobra.CheckErr(viper.BindPFlag("template-dir", templateCmd.PersistentFlags().Lookup("template-dir")))

	templateSaveCmd.Flags().StringP("config", "c", "", "chart configuration file (json or yaml)")
	templateSaveCmd.Flags().StringP("description", "d", "", "one-line description")

	templateCmd.AddCommand(templateListCmd, templateShowCmd, templateSaveCmd, templateRmCmd)
}
