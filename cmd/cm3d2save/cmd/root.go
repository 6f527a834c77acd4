/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/cm3d2save/pkg/config"
	"github.com/ssargent/cm3d2save/pkg/di"
)

var container *di.Container

// SetContainer injects the dependency container used by every command
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cm3d2save",
	Short: "Custom Maid 3D2 save file converter",
	Long: `cm3d2save converts Custom Maid 3D2 save files to JSON or YAML and back.

A decoded save can be edited by hand and encoded again. Saves that are not
edited encode back to exactly the bytes they were read from. Files about to
be overwritten are first copied into a local archive.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configure(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return container.Close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if container != nil {
			container.GetLogger().Error("command failed", "error", err)
			_ = container.Close()
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: OS-specific location)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("text-encoding", "", "Text encoding of strings in save files, e.g. shift_jis")
	rootCmd.PersistentFlags().String("archive-dir", "", "Directory of the backup archive")
	rootCmd.PersistentFlags().Bool("no-archive", false, "Do not back up files before overwriting them")
}

// configure loads the config file, applies flag overrides and hands the
// result to the container
func configure(cmd *cobra.Command) error {
	if container == nil {
		return fmt.Errorf("dependency container not initialized")
	}

	configPath, _ := cmd.Flags().GetString("config")
	explicit := configPath != ""
	if !explicit {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	switch {
	case config.ConfigExists(configPath):
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case explicit && cmd.Name() != "init":
		return fmt.Errorf("config file does not exist: %s", configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("text-encoding") {
		cfg.TextEncoding, _ = flags.GetString("text-encoding")
	}
	if flags.Changed("archive-dir") {
		cfg.Archive.Dir, _ = flags.GetString("archive-dir")
	}
	if noArchive, _ := flags.GetBool("no-archive"); noArchive {
		cfg.Archive.Enabled = false
	}

	return container.Configure(cfg, cmd.ErrOrStderr())
}
