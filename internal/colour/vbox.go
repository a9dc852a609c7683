package colour

import "fmt"

// axis identifies a channel of the quantized colour cube.
type axis int

const (
	axisRed axis = iota
	axisGreen
	axisBlue
)

func (a axis) String() string {
	switch a {
	case axisRed:
		return "r"
	case axisGreen:
		return "g"
	default:
		return "b"
	}
}

// VBox is an axis-aligned box in quantized RGB space. Bounds are inclusive
// and owned by the box; the histogram is shared and read-only.
type VBox struct {
	lo, hi [3]int
	histo  *Histogram

	volume    int
	volumeSet bool
	count     int
	countSet  bool
	avg       RGB
	avgSet    bool
}

func newVBox(lo, hi [3]int, histo *Histogram) *VBox {
	return &VBox{lo: lo, hi: hi, histo: histo}
}

// vboxFromPixels returns the tightest box holding every sample.
func vboxFromPixels(pixels []Pixel, histo *Histogram) *VBox {
	lo := [3]int{channelLevels, channelLevels, channelLevels}
	hi := [3]int{-1, -1, -1}
	for _, p := range pixels {
		q := p.quantized()
		for c := range 3 {
			lo[c] = min(lo[c], q[c])
			hi[c] = max(hi[c], q[c])
		}
	}
	return newVBox(lo, hi, histo)
}

// Volume returns the number of buckets inside the box.
func (v *VBox) Volume() int {
	if !v.volumeSet {
		v.volume = v.width(axisRed) * v.width(axisGreen) * v.width(axisBlue)
		v.volumeSet = true
	}
	return v.volume
}

// Count returns the number of sampled pixels inside the box.
func (v *VBox) Count() int {
	if !v.countSet {
		n := 0
		v.each(func(c [3]int) {
			n += v.histo.at(c)
		})
		v.count = n
		v.countSet = true
	}
	return v.count
}

// Avg returns the population-weighted mean colour of the box. An empty box
// falls back to its geometric centre.
func (v *VBox) Avg() RGB {
	if v.avgSet {
		return v.avg
	}

	ntot := 0
	var sum [3]int
	v.each(func(c [3]int) {
		index := colorIndex(c[0], c[1], c[2])
		ntot += v.histo.counts[index]
		for ch := range 3 {
			sum[ch] += v.histo.sums[index][ch]
		}
	})

	if ntot > 0 {
		v.avg = RGB{R: uint8(sum[0] / ntot), G: uint8(sum[1] / ntot), B: uint8(sum[2] / ntot)}
	} else {
		const mult = 1 << rshift
		mid := func(a axis) uint8 {
			return uint8(min(255, mult*(v.lo[a]+v.hi[a]+1)/2))
		}
		v.avg = RGB{R: mid(axisRed), G: mid(axisGreen), B: mid(axisBlue)}
	}
	v.avgSet = true
	return v.avg
}

// Copy returns a box with the same bounds and histogram and a fresh cache.
func (v *VBox) Copy() *VBox {
	return newVBox(v.lo, v.hi, v.histo)
}

// Contains reports whether the pixel falls in one of the box's buckets.
func (v *VBox) Contains(p Pixel) bool {
	q := p.quantized()
	for c := range 3 {
		if q[c] < v.lo[c] || q[c] > v.hi[c] {
			return false
		}
	}
	return true
}

func (v *VBox) String() string {
	return fmt.Sprintf("vbox{r:%d-%d g:%d-%d b:%d-%d count:%d}",
		v.lo[axisRed], v.hi[axisRed], v.lo[axisGreen], v.hi[axisGreen],
		v.lo[axisBlue], v.hi[axisBlue], v.Count())
}

func (v *VBox) width(a axis) int {
	return v.hi[a] - v.lo[a] + 1
}

// each calls fn for every bucket in the box.
func (v *VBox) each(fn func(c [3]int)) {
	for r := v.lo[axisRed]; r <= v.hi[axisRed]; r++ {
		for g := v.lo[axisGreen]; g <= v.hi[axisGreen]; g++ {
			for b := v.lo[axisBlue]; b <= v.hi[axisBlue]; b++ {
				fn([3]int{r, g, b})
			}
		}
	}
}

// partialSums returns the cumulative population of the box's slices along a,
// indexed from the box's lower bound on that axis.
func (v *VBox) partialSums(a axis) []int {
	sums := make([]int, v.width(a))
	v.each(func(c [3]int) {
		sums[c[a]-v.lo[a]] += v.histo.at(c)
	})
	for i := 1; i < len(sums); i++ {
		sums[i] += sums[i-1]
	}
	return sums
}
