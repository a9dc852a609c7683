package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pairtone/internal/colour"
)

type contrastOptions struct {
	asJSON  bool
	fix     bool
	preview string
}

// contrastResult is the JSON form of a contrast check.
type contrastResult struct {
	Background string                `json:"background"`
	Foreground string                `json:"foreground"`
	Report     colour.ContrastReport `json:"report"`
	Adjusted   *adjustedColour       `json:"adjusted,omitempty"`
}

type adjustedColour struct {
	Foreground string                `json:"foreground"`
	Report     colour.ContrastReport `json:"report"`
}

func newContrastCmd() *cobra.Command {
	var o contrastOptions

	cmd := &cobra.Command{
		Use:   "contrast <background> <foreground>",
		Short: "Check the WCAG contrast ratio of two colours",
		Long: `Print the WCAG 2.0 contrast ratio between two hex colours and whether
the pair passes AA and AAA for normal and large text.

With --fix, a failing foreground is lightened or darkened the same way
extract adjusts its text colours.

Examples:
  pairtone contrast '#1a1a2e' '#e0e0e0'
  pairtone contrast --fix 202040 3c3c5a`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContrast(cmd, args[0], args[1], &o)
		},
	}

	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&o.fix, "fix", false, "suggest an adjusted foreground when the pair fails AA")
	registerPreviewFlag(cmd.Flags(), &o.preview)
	return cmd
}

func runContrast(cmd *cobra.Command, bgArg, fgArg string, o *contrastOptions) error {
	bg, err := colour.ParseHex(bgArg)
	if err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}
	fg, err := colour.ParseHex(fgArg)
	if err != nil {
		return fmt.Errorf("invalid foreground: %w", err)
	}

	w := cmd.OutOrStdout()
	showPreview, err := previewEnabled(o.preview, w)
	if err != nil {
		return err
	}

	result := contrastResult{
		Background: bg.Hex(),
		Foreground: fg.Hex(),
		Report:     colour.RateContrast(bg, fg),
	}
	var adjusted colour.RGB
	if o.fix && !result.Report.AA {
		adjusted, _ = colour.EnsureContrast(bg, fg)
		result.Adjusted = &adjustedColour{
			Foreground: adjusted.Hex(),
			Report:     colour.RateContrast(bg, adjusted),
		}
		loggerFor(cmd).Debug("adjusted foreground", "from", fg.Hex(), "to", adjusted.Hex())
	}

	if o.asJSON {
		return writeJSON(w, result)
	}

	writeReport(w, bg, fg, result.Report, showPreview)
	if result.Adjusted != nil {
		fmt.Fprintf(w, "\nadjusted foreground: %s\n", adjusted.Hex())
		writeReport(w, bg, adjusted, result.Adjusted.Report, showPreview)
	}
	return nil
}

func writeReport(w io.Writer, bg, fg colour.RGB, r colour.ContrastReport, showPreview bool) {
	if showPreview {
		fmt.Fprintln(w, colour.ColourPreviewWithText(bg, fg, "Sample text", 24))
	}
	fmt.Fprintf(w, "contrast ratio: %.2f:1\n", r.Ratio)
	fmt.Fprintf(w, "AA normal text:  %s\n", verdict(r.AA))
	fmt.Fprintf(w, "AA large text:   %s\n", verdict(r.AALarge))
	fmt.Fprintf(w, "AAA normal text: %s\n", verdict(r.AAA))
	fmt.Fprintf(w, "AAA large text:  %s\n", verdict(r.AAALarge))
}

func verdict(pass bool) string {
	if pass {
		return "pass"
	}
	return "fail"
}
