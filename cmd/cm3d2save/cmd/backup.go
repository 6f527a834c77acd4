/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/cm3d2save/pkg/save"
	"github.com/ssargent/cm3d2save/pkg/storage"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage archived copies of overwritten files",
	Long: `Every file that decode, encode or restore is about to overwrite is first
copied into the archive. These commands list, restore and delete those copies.`,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived files, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}

		entries, damaged, err := store.List()
		if err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No backups")
		}
		for _, e := range entries {
			version := "-"
			if e.Version != 0 {
				version = "v" + save.FormatVersion(e.Version)
			}
			fmt.Fprintf(out, "%s  %s  %-6s %9d  %s\n",
				e.ID, e.Time.Local().Format(time.DateTime), version, e.Size, e.Name)
		}
		if damaged > 0 {
			container.GetLogger().Warn("skipped damaged backups", "count", damaged)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <id> [path]",
	Short: "Write an archived file back to disk",
	Long: `Write an archived file back to its original path, or to path if given.
The file currently at the target is archived first, so a restore can itself
be undone.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid backup ID %q: %w", args[0], err)
		}
		store, err := openArchive()
		if err != nil {
			return err
		}

		snap, err := store.Read(id)
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}

		target := snap.Name
		if len(args) == 2 {
			target = args[1]
		}
		if err := writeOutput(container, target, snap.Data); err != nil {
			return err
		}

		container.GetLogger().Info("restored backup", "id", id.String(), "path", target, "bytes", len(snap.Data))
		fmt.Fprintln(cmd.OutOrStdout(), target)
		return nil
	},
}

var backupDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete archived files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		for _, arg := range args {
			id, err := ksuid.Parse(arg)
			if err != nil {
				return fmt.Errorf("invalid backup ID %q: %w", arg, err)
			}
			if err := store.Delete(id); err != nil {
				return fmt.Errorf("failed to delete backup: %w", err)
			}
			container.GetLogger().Info("deleted backup", "id", arg)
		}
		return nil
	},
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune <path>",
	Short: "Keep only the newest copies of one file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		if !cmd.Flags().Changed("keep") {
			keep = container.GetConfig().Archive.Keep
		}
		store, err := openArchive()
		if err != nil {
			return err
		}

		name, err := filepath.Abs(args[0])
		if err != nil {
			name = args[0]
		}
		removed, err := store.Prune(name, keep)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d backups of %s\n", removed, name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupDeleteCmd)
	backupCmd.AddCommand(backupPruneCmd)

	backupPruneCmd.Flags().Int("keep", 0, "Number of copies to keep (default: archive.keep from config)")
}

// openArchive returns the archive or an error when it is disabled
func openArchive() (*storage.SnapshotStore, error) {
	store, err := container.GetArchive()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("backup archive is disabled")
	}
	return store, nil
}
