package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arugacyber/thumbnail"
	"github.com/arugacyber/thumbnail/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "thumbnail",
	Short: "Pick thumbnail images for security news articles",
	Long: `thumbnail resolves a search phrase to an image URL by querying Google Custom Search
and Unsplash, validating each hit, and falling back to a curated catalog that rotates hourly.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default $XDG_CONFIG_HOME/thumbnail/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log cascade decisions to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "thumbnail %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newThumbs builds the resolver from loaded configuration.
func newThumbs(cfg *config.Config) *thumbnail.Config {
	t := &thumbnail.Config{
		Primary:             thumbnail.NewGoogleProvider(cfg.Google.APIKey, cfg.Google.EngineID, nil),
		Secondary:           thumbnail.NewUnsplashProvider(cfg.Unsplash.AccessKey, nil),
		MinImageWidth:       cfg.Images.MinWidth,
		RejectStock:         cfg.Images.RejectStock,
		ExtraBlockedDomains: cfg.Images.BlockedDomains,
		OnPanic: func(tag string, r any) {
			slog.Error("thumbnail: recovered panic", "tag", tag, "panic", r)
		},
	}
	if cfg.KeywordsEnabled() {
		t.Keywords = thumbnail.NewOpenAIKeywords(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
	}
	for _, p := range []thumbnail.Provider{t.Primary, t.Secondary} {
		if !p.Enabled() {
			slog.Warn("thumbnail: provider not configured", "provider", p.Name())
		}
	}
	return t
}
