// Package colour extracts representative colours from images and pairs them
// into accessible background/foreground palettes.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBA implements color.Color so an RGB can be passed anywhere the standard
// library expects a colour. The colour is always fully opaque.
func (rgb RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}.RGBA()
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ParseHex parses a "#rrggbb", "rrggbb" or "#rgb" colour string.
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 3 or 6 hex digits", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}

	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Palette is the accessible colour set chosen for an image: a background
// colour plus the two best contrasting partners found for it.
type Palette struct {
	BackgroundColor  RGB
	Color            RGB
	AlternativeColor RGB
}

// ToHex returns the palette as hex strings in background, color,
// alternative order.
func (p Palette) ToHex() []string {
	return []string{p.BackgroundColor.Hex(), p.Color.Hex(), p.AlternativeColor.Hex()}
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	BackgroundColor  string `json:"backgroundColor"`
	Color            string `json:"color"`
	AlternativeColor string `json:"alternativeColor"`
}

// MarshalJSON renders every colour as a hex string.
func (p Palette) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.toJSON())
}

// ToJSON converts the palette to indented JSON.
func (p Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.toJSON(), "", "  ")
}

func (p Palette) toJSON() PaletteJSON {
	return PaletteJSON{
		BackgroundColor:  p.BackgroundColor.Hex(),
		Color:            p.Color.Hex(),
		AlternativeColor: p.AlternativeColor.Hex(),
	}
}

// String returns a human-readable string representation of the palette.
func (p Palette) String() string {
	return fmt.Sprintf("background: %s, color: %s, alternative: %s",
		p.BackgroundColor.Hex(), p.Color.Hex(), p.AlternativeColor.Hex())
}
