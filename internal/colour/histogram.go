package colour

const (
	// sigbits is the number of most significant bits kept per channel.
	sigbits = 5
	rshift  = 8 - sigbits

	// histogramSize is the number of buckets in the quantized colour cube.
	histogramSize = 1 << (3 * sigbits)

	// channelLevels is the number of quantized levels per channel.
	channelLevels = 1 << sigbits
)

// colorIndex returns the histogram bucket for quantized coordinates.
func colorIndex(r, g, b int) int {
	return (r << (2 * sigbits)) + (g << sigbits) + b
}

// Histogram counts sampled pixels per quantized bucket. Alongside the count
// each bucket keeps the sum of the exact channel values that landed in it, so
// box averages reproduce the source colours rather than bucket centres.
//
// A Histogram is built once and never modified; every VBox of a
// quantization run shares it.
type Histogram struct {
	counts    []int
	sums      [][3]int
	populated int
	total     int
}

// NewHistogram builds a histogram from sampled pixels.
func NewHistogram(samples []Pixel) *Histogram {
	h := &Histogram{
		counts: make([]int, histogramSize),
		sums:   make([][3]int, histogramSize),
	}
	for _, p := range samples {
		q := p.quantized()
		index := colorIndex(q[0], q[1], q[2])
		if h.counts[index] == 0 {
			h.populated++
		}
		h.counts[index]++
		h.sums[index][0] += int(p.R)
		h.sums[index][1] += int(p.G)
		h.sums[index][2] += int(p.B)
		h.total++
	}
	return h
}

// at returns the count for quantized coordinates.
func (h *Histogram) at(c [3]int) int {
	return h.counts[colorIndex(c[0], c[1], c[2])]
}

// Count returns the number of pixels in the bucket for the given quantized
// coordinates.
func (h *Histogram) Count(r, g, b int) int {
	if r < 0 || g < 0 || b < 0 || r >= channelLevels || g >= channelLevels || b >= channelLevels {
		return 0
	}
	return h.counts[colorIndex(r, g, b)]
}

// Populated returns the number of non-empty buckets.
func (h *Histogram) Populated() int {
	return h.populated
}

// Total returns the number of pixels recorded.
func (h *Histogram) Total() int {
	return h.total
}
