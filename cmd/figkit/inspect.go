package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/figkit/figkit/dataset"
	"github.com/figkit/figkit/internal/log"
	"github.com/figkit/figkit/profile"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "profile a dataset and suggest charts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := dataset.Load(args[0])
		if err != nil {
			return err
		}
		log.Debug("dataset loaded",
			zap.String("file", args[0]),
			zap.Int("rows", tbl.Len()),
			zap.Int("columns", len(tbl.Columns())))

		prof := profile.Analyze(tbl)
		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}
		if asJSON {
			data, err := json.MarshalIndent(prof, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d rows, %d columns (~%d KB)\n\n",
			prof.Rows, len(prof.Columns), prof.MemoryBytes/1024)
		for _, c := range prof.Columns {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-12s nulls=%d unique=%d\n",
				c.Name, c.Kind, c.NullCount, c.UniqueN)
		}
		if len(prof.Suggestions) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "\nsuggested charts:")
			for _, s := range prof.Suggestions {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %.2f  %s\n", s.Type, s.Score, s.Reason)
			}
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("json", false, "emit the full profile as JSON")
}
