/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/cm3d2save/pkg/di"
	"github.com/ssargent/cm3d2save/pkg/docfmt"
	"github.com/ssargent/cm3d2save/pkg/save"
)

const saveExt = ".save"

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <file.json>",
	Short: "Convert a JSON or YAML document into a binary save",
	Long: `Convert a structured document back into a binary save.

The save is written next to the document with a .save extension unless
--output is given. An existing save at that path is archived before it is
replaced. JSON input may contain comments.

Examples:
  cm3d2save encode SaveData001.json
  cm3d2save encode slot1.yaml -o SaveData001.save`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")

		out, err := encodeFile(container, args[0], output, format)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringP("output", "o", "", "Output path (default: input path with a .save extension)")
	encodeCmd.Flags().StringP("format", "f", "", "Input format: json or yaml (default: from the extension)")
}

// encodeFile converts the document at in and returns the path it wrote
func encodeFile(c *di.Container, in, output, formatName string) (string, error) {
	var format docfmt.Format
	var err error
	if formatName != "" {
		format, err = docfmt.ParseFormat(formatName)
	} else {
		format, err = docfmt.FormatFromPath(in)
	}
	if err != nil {
		return "", err
	}

	out := output
	if out == "" {
		out = docfmt.SiblingPath(in, saveExt)
	}
	if sameFile(in, out) {
		return "", fmt.Errorf("output %s would overwrite the input", out)
	}

	text, err := os.ReadFile(in)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", in, err)
	}
	doc, err := docfmt.Unmarshal(text, format)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", in, err)
	}
	sc, err := c.GetCodec()
	if err != nil {
		return "", err
	}

	start := time.Now()
	data, err := sc.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", in, err)
	}
	elapsed := time.Since(start)

	if err := writeOutput(c, out, data); err != nil {
		return "", err
	}

	c.GetLogger().Info("encoded save",
		"path", in,
		"output", out,
		"version", save.FormatVersion(doc.Version),
		"bytes", len(data),
		"duration", elapsed,
	)
	return out, nil
}
