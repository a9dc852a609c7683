package colour

const (
	// DistinctContrastRatio is the contrast a candidate must exceed to be
	// considered a different colour from the dominant one.
	DistinctContrastRatio = 1.0

	// MinimumContrastRatio is the WCAG AA ratio for normal text.
	MinimumContrastRatio = 4.5

	// contrastSteps bounds the lighten/darken search and sets its step size.
	contrastSteps = 20
)

// ColorDescriptor is a candidate partner for a dominant colour.
type ColorDescriptor struct {
	Color    RGB
	Score    float64
	Contrast float64
}

// adjustForContrast moves candidate away from dominant in HSL lightness
// until the pair reaches MinimumContrastRatio. The search lightens when the
// dominant colour is light and darkens otherwise, reverses after any step
// that lowers contrast, and gives up once a step no longer changes the
// colour or contrastSteps steps have run.
//
// It returns the best colour seen, its contrast and the number of steps
// taken. The result never has lower contrast than the unadjusted candidate.
func adjustForContrast(dominant, candidate RGB) (RGB, float64, int) {
	bg := toColorful(dominant)
	current := toColorful(candidate)
	contrast := contrastBetween(bg, current)

	best, bestContrast := candidate, contrast
	if contrast >= MinimumContrastRatio {
		return best, bestContrast, 0
	}

	delta := (MinimumContrastRatio - contrast) / contrastSteps
	lightening := IsLight(dominant)

	steps := 0
	for steps < contrastSteps && contrast < MinimumContrastRatio {
		next := darken(current, delta)
		if lightening {
			next = lighten(current, delta)
		}
		if next.Clamped().Hex() == current.Clamped().Hex() {
			break
		}
		steps++

		nextContrast := contrastBetween(bg, next)
		if nextContrast < contrast {
			lightening = !lightening
		}
		current, contrast = next, nextContrast

		rounded := fromColorful(current)
		if c := ContrastRatio(dominant, rounded); c > bestContrast {
			best, bestContrast = rounded, c
		}
	}

	return best, bestContrast, steps
}

// describePartner scores candidate as a partner for dominant. The second
// result is false when the two are not distinct enough to pair.
func describePartner(dominant, candidate RGB) (ColorDescriptor, bool) {
	if ContrastRatio(dominant, candidate) <= DistinctContrastRatio {
		return ColorDescriptor{}, false
	}

	adjusted, contrast, _ := adjustForContrast(dominant, candidate)
	return ColorDescriptor{
		Color:    adjusted,
		Score:    contrast + channelRange(candidate),
		Contrast: contrast,
	}, true
}

// EnsureContrast returns fg adjusted against bg the way pairing adjusts a
// candidate, along with the contrast it reaches.
func EnsureContrast(bg, fg RGB) (RGB, float64) {
	adjusted, contrast, _ := adjustForContrast(bg, fg)
	return adjusted, contrast
}

// WCAG levels for normal and large text.
const (
	LargeTextContrastRatio     = 3.0
	EnhancedContrastRatio      = 7.0
	EnhancedLargeContrastRatio = 4.5
)

// ContrastReport describes how a pair rates against the WCAG levels.
type ContrastReport struct {
	Ratio    float64 `json:"ratio"`
	AA       bool    `json:"aa"`
	AALarge  bool    `json:"aaLarge"`
	AAA      bool    `json:"aaa"`
	AAALarge bool    `json:"aaaLarge"`
}

// RateContrast rates the contrast between two colours.
func RateContrast(a, b RGB) ContrastReport {
	ratio := ContrastRatio(a, b)
	return ContrastReport{
		Ratio:    ratio,
		AA:       ratio >= MinimumContrastRatio,
		AALarge:  ratio >= LargeTextContrastRatio,
		AAA:      ratio >= EnhancedContrastRatio,
		AAALarge: ratio >= EnhancedLargeContrastRatio,
	}
}
