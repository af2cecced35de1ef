package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arugacyber/thumbnail/internal/feed"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Resolve thumbnails for the latest entries of the configured RSS feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		thumbs := newThumbs(cfg)
		ctx := cmd.Context()

		res := feed.NewPoller(cfg.Feeds, cfg.ArticlesPerFeed).Poll(ctx)
		for _, err := range res.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}

		batch := thumbs.NewBatch()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tQUERY\tSOURCE\tURL")
		for _, e := range res.Entries {
			query := thumbs.SearchPhrase(ctx, e.Title, e.Description)
			r := batch.Resolve(ctx, query)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Title, query, r.Source, r.URL)
		}
		return w.Flush()
	},
}
