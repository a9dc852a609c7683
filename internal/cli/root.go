// Package cli provides the command-line interface for pairtone.
package cli

import (
	"fmt"

	"github.com/jmylchreest/pairtone/internal/version"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the full command tree. Each call returns an independent
// tree, so tests can run commands without sharing flag state.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pairtone",
		Short: "Accessible colour pairs from images",
		Long: `pairtone extracts a background colour and two contrasting text colours
from an image.

Colours are quantized with modified median cut (or k-means), then paired
so the text colours meet the WCAG AA contrast ratio of 4.5:1 against the
background, adjusting their lightness when needed.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	d := loadDefaults()
	rootCmd.AddCommand(
		newExtractCmd(d),
		newQuantizeCmd(d),
		newContrastCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), version.GetInfo())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
