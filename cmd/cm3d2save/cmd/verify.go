/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/cm3d2save/pkg/save"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <file.save>...",
	Short: "Check that saves encode back to identical bytes",
	Long: `Decode each save, encode it again and compare the result with the
original bytes. Nothing is written. The command fails if any file does not
decode or does not reproduce exactly.

Examples:
  cm3d2save verify SaveData001.save
  cm3d2save verify saves/*.save`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := container.GetCodec()
		if err != nil {
			return err
		}

		failed := 0
		for _, path := range args {
			res, err := verifyFile(sc, path)
			switch {
			case err != nil:
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
			case !res.Identical:
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "DIFF %s: v%s, %d bytes, re-encoded %d bytes, first difference at offset %d\n",
					path, save.FormatVersion(res.Version), res.Size, res.Encoded, res.FirstDiff)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "OK   %s: v%s, %d bytes\n", path, save.FormatVersion(res.Version), res.Size)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d files failed verification", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyFile(sc *save.Codec, path string) (*save.VerifyResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return sc.Verify(data)
}
