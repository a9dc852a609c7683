package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pairtone/internal/colour"
)

type quantizeOptions struct {
	source  sourceFlags
	asJSON  bool
	preview string
}

func newQuantizeCmd(d defaults) *cobra.Command {
	var o quantizeOptions

	cmd := &cobra.Command{
		Use:   "quantize <image|url|directory>",
		Short: "Print the quantized colours of an image",
		Long: `Print the representative colours an image quantizes to, with the number
of sampled pixels each one stands for. This is the colour map the palette
is chosen from.

Examples:
  pairtone quantize cover.jpg
  pairtone quantize -c 16 --json cover.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuantize(cmd, args[0], &o)
		},
	}

	o.source.register(cmd.Flags(), d)
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print the colour map as JSON")
	registerPreviewFlag(cmd.Flags(), &o.preview)
	return cmd
}

func runQuantize(cmd *cobra.Command, source string, o *quantizeOptions) error {
	w := cmd.OutOrStdout()
	showPreview, err := previewEnabled(o.preview, w)
	if err != nil {
		return err
	}

	res, err := o.source.extract(cmd, source)
	if err != nil {
		return err
	}

	if o.asJSON {
		data, err := res.ColorMap.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	_, err = colorMapTable(res.ColorMap, res.Palette, showPreview).WriteTo(w)
	return err
}

// colorMapTable lists the map's colours, marking the ones the palette uses.
func colorMapTable(cm colour.ColorMap, p colour.Palette, showPreview bool) *Table {
	headers := []string{"#", "Hex", "RGB", "Pixels", "Share", "Role"}
	if showPreview {
		headers = append([]string{"Swatch"}, headers...)
	}
	table := NewTable(headers...)
	offset := len(headers) - 6
	table.AlignRight(offset, offset+3, offset+4)

	total := cm.TotalCount()
	for i, e := range cm.Entries {
		share := 0.0
		if total > 0 {
			share = 100 * float64(e.Count) / float64(total)
		}
		row := []string{
			strconv.Itoa(i + 1),
			e.Color.Hex(),
			e.Color.String(),
			strconv.Itoa(e.Count),
			fmt.Sprintf("%.1f%%", share),
			paletteRole(p, e.Color),
		}
		if showPreview {
			row = append([]string{colour.ColourPreview(e.Color, 6)}, row...)
		}
		table.AddRow(row...)
	}
	return table
}

// paletteRole names the palette slot a map colour fills. Text colours may
// have been adjusted for contrast, so only exact matches are labelled.
func paletteRole(p colour.Palette, c colour.RGB) string {
	switch c {
	case p.BackgroundColor:
		return "background"
	case p.Color:
		return "color"
	case p.AlternativeColor:
		return "alternative"
	default:
		return ""
	}
}
