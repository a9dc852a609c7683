package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pairtone/internal/colour"
)

// Output formats for extract.
const (
	formatHex  = "hex"
	formatRGB  = "rgb"
	formatJSON = "json"
)

type extractOptions struct {
	source  sourceFlags
	format  string
	output  string
	preview string
}

func newExtractCmd(d defaults) *cobra.Command {
	var o extractOptions

	cmd := &cobra.Command{
		Use:   "extract <image|url|directory>",
		Short: "Extract an accessible colour palette from an image",
		Long: `Extract a background colour and two text colours from an image.

The background is the colour that is both common in the image and pairs
well with the others. The text colour and alternative colour are its two
best partners, lightened or darkened towards a 4.5:1 contrast ratio.

Given a directory, a random image from it is used.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Print the palette as hex
  pairtone extract cover.jpg

  # Print the palette as JSON
  pairtone extract --format json https://example.com/cover.png

  # Show swatches and sample text
  pairtone extract --preview cover.jpg

  # Sample every pixel and quantize to 8 colours with k-means
  pairtone extract --quality 1 -c 8 -a kmeans cover.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], &o)
		},
	}

	o.source.register(cmd.Flags(), d)
	cmd.Flags().StringVarP(&o.format, "format", "f", formatHex, "output format (hex, rgb, json)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	registerPreviewFlag(cmd.Flags(), &o.preview)
	return cmd
}

func runExtract(cmd *cobra.Command, source string, o *extractOptions) error {
	switch o.format {
	case formatHex, formatRGB, formatJSON:
	default:
		return fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", o.format)
	}

	// Swatches only make sense on a terminal, never in a file.
	showPreview, err := previewEnabled(o.preview, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	showPreview = showPreview && o.output == "" && o.format != formatJSON

	res, err := o.source.extract(cmd, source)
	if err != nil {
		return err
	}

	w, closeOutput, err := outputTarget(cmd, o.output)
	if err != nil {
		return err
	}

	if err := writePalette(w, res.Palette, o.format, showPreview); err != nil {
		_ = closeOutput()
		return err
	}
	if err := closeOutput(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if o.output != "" {
		loggerFor(cmd).Info("wrote palette", "path", o.output)
	}
	return nil
}

// writePalette renders p in the given format.
func writePalette(w io.Writer, p colour.Palette, format string, showPreview bool) error {
	if format == formatJSON {
		return writeJSON(w, p)
	}

	roles := []struct {
		label string
		rgb   colour.RGB
	}{
		{"background", p.BackgroundColor},
		{"color", p.Color},
		{"alternative", p.AlternativeColor},
	}

	var b strings.Builder
	for _, r := range roles {
		value := r.rgb.Hex()
		if format == formatRGB {
			value = r.rgb.String()
		}
		if showPreview {
			fmt.Fprintf(&b, "%s  %-12s %s\n", colour.ColourPreview(r.rgb, 8), r.label, value)
		} else {
			fmt.Fprintf(&b, "%-12s %s\n", r.label, value)
		}
	}
	if showPreview {
		b.WriteString("\n")
		b.WriteString(colour.ColourPreviewWithText(p.BackgroundColor, p.Color, "The quick brown fox", 30))
		b.WriteString("\n")
		b.WriteString(colour.ColourPreviewWithText(p.BackgroundColor, p.AlternativeColor, "jumps over the lazy dog", 30))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
