package colour

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c color.Color) float64 {
	return relativeLuminance(toColorful(ToRGB(c)))
}

// relativeLuminance works on unrounded colours so intermediate results of a
// contrast search are not quantized to 8 bits.
func relativeLuminance(c colorful.Color) float64 {
	return 0.2126*gammaCorrect(c.R) + 0.7152*gammaCorrect(c.G) + 0.0722*gammaCorrect(c.B)
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// Meets WCAG AA standard for normal text at 4.5:1, large text at 3:1.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 color.Color) float64 {
	return contrastBetween(toColorful(ToRGB(c1)), toColorful(ToRGB(c2)))
}

func contrastBetween(c1, c2 colorful.Color) float64 {
	l1 := relativeLuminance(c1.Clamped())
	l2 := relativeLuminance(c2.Clamped())

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// IsLight reports whether a colour reads as light, using its YIQ brightness.
func IsLight(rgb RGB) bool {
	yiq := (int(rgb.R)*299 + int(rgb.G)*587 + int(rgb.B)*114) / 1000
	return yiq >= 128
}

// channelRange returns the spread between the largest and smallest channel,
// scaled down by ten. It is a rough saturation measure.
func channelRange(rgb RGB) float64 {
	hi := max(rgb.R, rgb.G, rgb.B)
	lo := min(rgb.R, rgb.G, rgb.B)
	return float64(hi-lo) / 10
}

// lighten raises HSL lightness by ratio of its current value.
func lighten(c colorful.Color, ratio float64) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, math.Min(1, l+l*ratio))
}

// darken lowers HSL lightness by ratio of its current value.
func darken(c colorful.Color, ratio float64) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, math.Max(0, l-l*ratio))
}

func toColorful(rgb RGB) colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
