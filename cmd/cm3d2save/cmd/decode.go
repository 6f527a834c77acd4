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

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <file.save>",
	Short: "Convert a binary save into JSON or YAML",
	Long: `Convert a binary save into a structured document.

The document is written next to the save with the extension of the chosen
format unless --output is given. The format comes from --format, then the
extension of --output, then the configuration.

Examples:
  cm3d2save decode SaveData001.save
  cm3d2save decode SaveData001.save --format yaml
  cm3d2save decode SaveData001.save -o edited/slot1.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")

		out, err := decodeFile(container, args[0], output, format)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringP("output", "o", "", "Output path (default: input path with the format's extension)")
	decodeCmd.Flags().StringP("format", "f", "", "Output format: json or yaml")
}

// decodeFile converts the save at in and returns the path it wrote
func decodeFile(c *di.Container, in, output, formatName string) (string, error) {
	format, err := outputFormat(c, output, formatName)
	if err != nil {
		return "", err
	}
	out := output
	if out == "" {
		out = docfmt.SiblingPath(in, format.Ext())
	}
	if sameFile(in, out) {
		return "", fmt.Errorf("output %s would overwrite the input", out)
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", in, err)
	}
	sc, err := c.GetCodec()
	if err != nil {
		return "", err
	}

	start := time.Now()
	doc, err := sc.Decode(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", in, err)
	}
	elapsed := time.Since(start)

	text, err := docfmt.Marshal(doc, format, c.GetConfig().Output.Indent)
	if err != nil {
		return "", err
	}
	if err := writeOutput(c, out, text); err != nil {
		return "", err
	}

	c.GetLogger().Info("decoded save",
		"path", in,
		"output", out,
		"version", save.FormatVersion(doc.Version),
		"bytes", len(data),
		"maids", len(doc.ChrMgr.StockMaid),
		"duration", elapsed,
	)
	return out, nil
}

// outputFormat resolves the structured format for decode
func outputFormat(c *di.Container, output, formatName string) (docfmt.Format, error) {
	if formatName != "" {
		return docfmt.ParseFormat(formatName)
	}
	if output != "" {
		if f, err := docfmt.FormatFromPath(output); err == nil {
			return f, nil
		}
	}
	return c.GetConfig().OutputFormat(), nil
}
