package colour

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ColorMapEntry is a representative colour and the number of sampled pixels
// it stands for.
type ColorMapEntry struct {
	Color RGB `json:"color"`
	Count int `json:"count"`
}

// ColorMap is the result of quantization. Entries are ordered by the
// quantizer: for median cut that is descending population x volume.
type ColorMap struct {
	Entries []ColorMapEntry

	// boxes holds the median-cut box behind each entry, when there is one.
	boxes []*VBox
}

func newColorMap(boxes []*VBox) ColorMap {
	cm := ColorMap{
		Entries: make([]ColorMapEntry, len(boxes)),
		boxes:   boxes,
	}
	for i, box := range boxes {
		cm.Entries[i] = ColorMapEntry{Color: box.Avg(), Count: box.Count()}
	}
	return cm
}

// Len returns the number of colours in the map.
func (cm ColorMap) Len() int {
	return len(cm.Entries)
}

// Colors returns the representative colours in map order.
func (cm ColorMap) Colors() []RGB {
	colors := make([]RGB, len(cm.Entries))
	for i, e := range cm.Entries {
		colors[i] = e.Color
	}
	return colors
}

// TotalCount returns the summed population of all entries.
func (cm ColorMap) TotalCount() int {
	total := 0
	for _, e := range cm.Entries {
		total += e.Count
	}
	return total
}

// Map returns the colour of the first entry whose box contains p, or the
// nearest colour when none does.
func (cm ColorMap) Map(p Pixel) RGB {
	for i, box := range cm.boxes {
		if box.Contains(p) {
			return cm.Entries[i].Color
		}
	}
	return cm.Nearest(p)
}

// Nearest returns the entry colour closest to p in RGB space. An empty map
// returns black.
func (cm ColorMap) Nearest(p Pixel) RGB {
	var nearest RGB
	best := math.MaxFloat64
	for _, e := range cm.Entries {
		dr := float64(p.R) - float64(e.Color.R)
		dg := float64(p.G) - float64(e.Color.G)
		db := float64(p.B) - float64(e.Color.B)
		if d := dr*dr + dg*dg + db*db; d < best {
			best = d
			nearest = e.Color
		}
	}
	return nearest
}

// ToJSON converts the map to indented JSON with hex colours.
func (cm ColorMap) ToJSON() ([]byte, error) {
	type entryJSON struct {
		Hex   string `json:"hex"`
		RGB   RGB    `json:"rgb"`
		Count int    `json:"count"`
	}
	entries := make([]entryJSON, len(cm.Entries))
	for i, e := range cm.Entries {
		entries[i] = entryJSON{Hex: e.Color.Hex(), RGB: e.Color, Count: e.Count}
	}
	return json.MarshalIndent(struct {
		Count  int         `json:"count"`
		Total  int         `json:"total"`
		Colors []entryJSON `json:"colors"`
	}{Count: len(entries), Total: cm.TotalCount(), Colors: entries}, "", "  ")
}

// String returns a human-readable string representation of the map.
func (cm ColorMap) String() string {
	if len(cm.Entries) == 0 {
		return "Empty colour map"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Colour map with %d colours:\n", len(cm.Entries))
	for i, e := range cm.Entries {
		fmt.Fprintf(&sb, "  %2d: %s %8d px\n", i+1, e.Color.Hex(), e.Count)
	}
	return sb.String()
}
