/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file.save>",
	Short: "Show a summary of a save",
	Long: `Decode a save and print its version, header and character counts
without writing anything.

Example:
  cm3d2save info SaveData001.save`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		sc, err := container.GetCodec()
		if err != nil {
			return err
		}
		doc, err := sc.Decode(data)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", args[0], err)
		}

		out, err := yaml.Marshal(doc.Summary())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
