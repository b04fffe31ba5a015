package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/prefs"
)

func widthsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widths",
		Short: "Inspect or change stored column widths",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get [grid]",
		Short: "Print stored column widths in pixels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := prefs.Open(cfg.Prefs.DatabasePath, cfg.PrefsOptions(args[0], logger))
			if err != nil {
				return err
			}
			defer ps.Close()

			widths, err := ps.All()
			if err != nil {
				return err
			}
			cols := make([]int, 0, len(widths))
			for c := range widths {
				cols = append(cols, c)
			}
			sort.Ints(cols)
			for _, c := range cols {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\n", c, widths[c])
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [grid] [column] [width]",
		Short: "Store a column width in pixels",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := strconv.Atoi(args[1])
			if err != nil || col < 0 {
				return fmt.Errorf("invalid column %q", args[1])
			}
			width, err := strconv.Atoi(args[2])
			if err != nil || width <= 0 {
				return fmt.Errorf("invalid width %q", args[2])
			}

			ps, err := prefs.Open(cfg.Prefs.DatabasePath, cfg.PrefsOptions(args[0], logger))
			if err != nil {
				return err
			}
			ps.Set(col, width)
			return ps.Close()
		},
	})

	return cmd
}
