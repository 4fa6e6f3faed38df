package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/figkit/figkit/dataset"
)

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "write the (optionally filtered) dataset to CSV or Excel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		rawFilters, _ := cmd.Flags().GetStringArray("filter")

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

		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		switch strings.ToLower(filepath.Ext(output)) {
		case ".xlsx":
			err = tbl.WriteExcel(f)
		case ".csv":
			err = tbl.WriteCSV(f)
		default:
			err = fmt.Errorf("unsupported export format %q, want .csv or .xlsx", filepath.Ext(output))
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", tbl.Len(), output)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "export.csv", "output file, .csv or .xlsx")
	exportCmd.Flags().StringArray("filter", nil, "row filter column:op:value, repeatable")
}
