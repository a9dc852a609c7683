package colour

import (
	"slices"

	"github.com/hashicorp/go-hclog"
)

const (
	// MinColors and MaxColors bound the palette size a quantizer accepts.
	MinColors = 2
	MaxColors = 256

	// maxIterations caps each splitting phase.
	maxIterations = 1000

	// fractByPopulations is the share of the target reached while ranking
	// boxes by population alone.
	fractByPopulations = 0.75
)

// Quantizer reduces sampled pixels to at most maxColors representative
// colours.
type Quantizer interface {
	Quantize(samples []Pixel, maxColors int) ColorMap
}

// MedianCutQuantizer implements modified median cut quantization (MMCQ).
type MedianCutQuantizer struct {
	logger hclog.Logger
}

// NewMedianCutQuantizer creates a MedianCutQuantizer. A nil logger discards
// output.
func NewMedianCutQuantizer(logger hclog.Logger) *MedianCutQuantizer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &MedianCutQuantizer{logger: logger}
}

// Quantize is a convenience wrapper around a silent MedianCutQuantizer.
func Quantize(samples []Pixel, maxColors int) ColorMap {
	return NewMedianCutQuantizer(nil).Quantize(samples, maxColors)
}

// Quantize splits the colour space of samples into at most maxColors boxes.
// Empty input or a maxColors outside [MinColors, MaxColors] yields an empty
// ColorMap. Fewer colours are returned when the samples do not populate
// enough buckets.
func (q *MedianCutQuantizer) Quantize(samples []Pixel, maxColors int) ColorMap {
	if len(samples) == 0 || maxColors < MinColors || maxColors > MaxColors {
		return ColorMap{}
	}

	histo := NewHistogram(samples)
	q.logger.Trace("built histogram", "samples", histo.Total(), "buckets", histo.Populated())

	var retired []*VBox
	pq := newBoxQueue(byPopulation)
	pq.push(vboxFromPixels(samples, histo))

	n := q.iterate(pq, &retired, fractByPopulations*float64(maxColors))
	q.logger.Trace("population phase complete", "boxes", pq.size()+len(retired), "iterations", n)

	pq2 := newBoxQueue(byPopulationVolume)
	pq2.push(pq.drain()...)

	n = q.iterate(pq2, &retired, float64(maxColors))
	q.logger.Trace("volume phase complete", "boxes", pq2.size()+len(retired), "iterations", n)

	pq2.push(retired...)
	return newColorMap(pq2.drain())
}

// iterate splits the highest ranked box until the live and retired boxes
// together reach target. It returns the number of iterations used.
func (q *MedianCutQuantizer) iterate(pq *boxQueue, retired *[]*VBox, target float64) int {
	iterations := 0
	for iterations < maxIterations {
		if float64(pq.size()+len(*retired)) >= target {
			break
		}
		box, ok := pq.pop()
		if !ok {
			break
		}
		iterations++

		if box.Count() == 0 {
			continue
		}

		left, right := splitBox(box)
		if right == nil {
			*retired = append(*retired, left)
			continue
		}
		pq.push(left, right)
	}
	return iterations
}

// splitBox applies a median cut to box. The box is returned unsplit, with a
// nil second result, when its population sits in a single bucket.
//
// The cut runs along the longest axis whose population spans more than one
// slice. The slice holding the median pixel is found from cumulative sums,
// and the cut plane is placed halfway into the larger side beyond it:
// towards the high end when the median is nearer the low end (ties included),
// towards the low end otherwise. The plane is then nudged until both halves
// hold pixels.
func splitBox(box *VBox) (*VBox, *VBox) {
	if box.Count() <= 1 || box.histo.Populated() == 1 {
		return box, nil
	}

	axes := []axis{axisRed, axisGreen, axisBlue}
	slices.SortStableFunc(axes, func(a, b axis) int {
		return box.width(b) - box.width(a)
	})

	for _, a := range axes {
		sums := box.partialSums(a)
		if populatedSlices(sums) < 2 {
			continue
		}
		return medianCut(box, a, sums)
	}
	return box, nil
}

// populatedSlices counts the non-empty slices behind cumulative sums.
func populatedSlices(sums []int) int {
	n, prev := 0, 0
	for _, s := range sums {
		if s != prev {
			n++
		}
		prev = s
	}
	return n
}

func medianCut(box *VBox, a axis, sums []int) (*VBox, *VBox) {
	lo, hi := box.lo[a], box.hi[a]
	total := sums[len(sums)-1]
	partial := func(i int) int {
		return sums[i-lo]
	}

	for i := lo; i <= hi; i++ {
		if partial(i)*2 <= total {
			continue
		}

		left, right := i-lo, hi-i
		var cut int
		if left <= right {
			cut = min(hi-1, i+right/2)
		} else {
			cut = max(lo, i-1-(left+1)/2)
		}

		// Avoid empty halves.
		for partial(cut) == 0 {
			cut++
		}
		remaining := total - partial(cut)
		for remaining == 0 && cut > lo && partial(cut-1) != 0 {
			cut--
			remaining = total - partial(cut)
		}
		if remaining == 0 {
			return box, nil
		}

		box1, box2 := box.Copy(), box.Copy()
		box1.hi[a] = cut
		box2.lo[a] = cut + 1
		return box1, box2
	}
	return box, nil
}
