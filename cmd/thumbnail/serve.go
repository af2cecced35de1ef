package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arugacyber/thumbnail/internal/server"
)

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve thumbnail resolution over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		addr := cfg.Listen
		if flagListen != "" {
			addr = flagListen
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.New(newThumbs(cfg), addr).Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "listen address (overrides config)")
}
