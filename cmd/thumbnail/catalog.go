package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/arugacyber/thumbnail"
)

var flagAt string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List fallback catalog categories and the image each one rotates to",
	RunE: func(cmd *cobra.Command, args []string) error {
		at := time.Now()
		if flagAt != "" {
			t, err := time.Parse(time.RFC3339, flagAt)
			if err != nil {
				return fmt.Errorf("invalid --at value: %w", err)
			}
			at = t
		}

		cat := thumbnail.DefaultCatalog()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tIMAGES\tCURRENT")
		for _, k := range append(cat.Keys(), thumbnail.GenericCategory) {
			pool, _ := cat.Pool(k)
			fmt.Fprintf(w, "%s\t%d\t%s\n", k, len(pool), thumbnail.Rotate(k, pool, at))
		}
		return w.Flush()
	},
}

func init() {
	catalogCmd.Flags().StringVar(&flagAt, "at", "", "show the rotation at this RFC 3339 time instead of now")
}
