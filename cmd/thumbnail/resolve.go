package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagTitle       string
	flagDescription string
	flagJSON        bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [query...]",
	Short: "Resolve a thumbnail URL for a search phrase or an article",
	Long: `Resolve prints the thumbnail URL for the given search phrase.

With --title (and optionally --description) the phrase is derived from the article text
first, using the configured language model when available.`,
	Example: `  thumbnail resolve jaguar land rover hack
  thumbnail resolve --title "Hospital hit by ransomware" --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		if query == "" && flagTitle == "" {
			return fmt.Errorf("either a query or --title is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		thumbs := newThumbs(cfg)

		ctx := cmd.Context()
		if flagTitle != "" {
			query = thumbs.SearchPhrase(ctx, flagTitle, flagDescription)
		}
		res := thumbs.Resolve(ctx, query)

		out := cmd.OutOrStdout()
		if flagJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		fmt.Fprintln(out, res.URL)
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&flagTitle, "title", "", "article title to derive the search phrase from")
	resolveCmd.Flags().StringVar(&flagDescription, "description", "", "article description used with --title")
	resolveCmd.Flags().BoolVar(&flagJSON, "json", false, "print the full resolution as JSON")
}
