/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/cm3d2save/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that decodes, encodes and verifies saves.

Requests under /api/v1 need the X-API-Key header when server.api_key is set
in the configuration. Prometheus metrics are served on /metrics.

Examples:
  cm3d2save serve
  cm3d2save serve --bind 0.0.0.0 --port 9300`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := container.GetConfig()
		flags := cmd.Flags()
		if flags.Changed("port") {
			cfg.Server.Port, _ = flags.GetInt("port")
		}
		if flags.Changed("bind") {
			cfg.Server.Bind, _ = flags.GetString("bind")
		}
		if flags.Changed("api-key") {
			cfg.Server.APIKey, _ = flags.GetString("api-key")
		}

		enc, err := cfg.Encoding()
		if err != nil {
			return err
		}

		// a nil store must stay a nil interface
		var archive api.Archive
		store, err := container.GetArchive()
		if err != nil {
			return err
		}
		if store != nil {
			archive = store
		}

		logger := container.GetLogger()
		if cfg.Server.APIKey == "" {
			logger.Warn("serving without authentication; set server.api_key to require X-API-Key")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		starter := container.GetServerFactory().CreateServerStarter()
		err = starter.StartServer(ctx, api.ServerConfig{
			Bind:         cfg.Server.Bind,
			Port:         cfg.Server.Port,
			APIKey:       cfg.Server.APIKey,
			MaxBodyBytes: cfg.Server.MaxBodyBytes,
			Format:       cfg.OutputFormat(),
			Indent:       cfg.Output.Indent,
			TextEncoding: enc,
		}, archive, logger)
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 9200, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().String("api-key", "", "API key required in X-API-Key (overrides config)")
}
