package colour

import (
	"cmp"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
	"slices"

	"github.com/hashicorp/go-hclog"
)

// KMeansQuantizer quantizes with k-means clustering. It is seeded from the
// sample content, so identical input always gives an identical ColorMap.
type KMeansQuantizer struct {
	maxIterations int
	convergence   float64
	maxSamples    int
	logger        hclog.Logger
}

// NewKMeansQuantizer creates a KMeansQuantizer with default settings. A nil
// logger discards output.
func NewKMeansQuantizer(logger hclog.Logger) *KMeansQuantizer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &KMeansQuantizer{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    5000,
		logger:        logger,
	}
}

// point3D represents a point in 3D RGB color space.
type point3D struct {
	R, G, B float64
}

// distance calculates the squared Euclidean distance between two points.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

// Quantize clusters samples into at most maxColors colours. Entries are
// ordered by descending population. The same degenerate-input policy as
// median cut applies.
func (q *KMeansQuantizer) Quantize(samples []Pixel, maxColors int) ColorMap {
	if len(samples) == 0 || maxColors < MinColors || maxColors > MaxColors {
		return ColorMap{}
	}

	unique := make(map[Pixel]int)
	var order []Pixel
	for _, p := range samples {
		if unique[p] == 0 {
			order = append(order, p)
		}
		unique[p]++
	}

	// Fewer distinct colours than requested: return them as they are.
	if len(order) <= maxColors {
		entries := make([]ColorMapEntry, len(order))
		for i, p := range order {
			entries[i] = ColorMapEntry{Color: RGB(p), Count: unique[p]}
		}
		return sortedColorMap(entries)
	}

	points := q.subsample(samples)
	rng := rand.New(rand.NewSource(contentSeed(samples))) // #nosec G404 -- clustering, not security
	centroids := q.initializeCentroids(rng, points, maxColors)

	assignments := make([]int, len(points))
	for iter := 0; iter < q.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := nearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if iter > 0 && float64(changed)/float64(len(points)) < 0.01 {
			q.logger.Trace("k-means converged", "iteration", iter, "reason", "assignments")
			break
		}

		next := recalculateCentroids(rng, points, assignments, len(centroids))
		movement := 0.0
		for i := range centroids {
			movement += math.Sqrt(centroids[i].distance(next[i]))
		}
		centroids = next
		if movement/float64(len(centroids)) < q.convergence {
			q.logger.Trace("k-means converged", "iteration", iter, "reason", "movement")
			break
		}
	}

	// Populations are counted over every sample, not just the subsample.
	counts := make([]int, len(centroids))
	for _, p := range samples {
		counts[nearestCentroid(point3D{float64(p.R), float64(p.G), float64(p.B)}, centroids)]++
	}

	entries := make([]ColorMapEntry, 0, len(centroids))
	for i, c := range centroids {
		if counts[i] == 0 {
			continue
		}
		entries = append(entries, ColorMapEntry{
			Color: RGB{R: clampChannel(c.R), G: clampChannel(c.G), B: clampChannel(c.B)},
			Count: counts[i],
		})
	}
	return sortedColorMap(entries)
}

// subsample strides over samples so at most maxSamples points are clustered.
func (q *KMeansQuantizer) subsample(samples []Pixel) []point3D {
	step := max(1, int(math.Ceil(float64(len(samples))/float64(q.maxSamples))))
	points := make([]point3D, 0, len(samples)/step+1)
	for i := 0; i < len(samples); i += step {
		p := samples[i]
		points = append(points, point3D{R: float64(p.R), G: float64(p.G), B: float64(p.B)})
	}
	return points
}

// initializeCentroids picks k starting centroids with k-means++.
func (q *KMeansQuantizer) initializeCentroids(rng *rand.Rand, points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		totalDistance := 0.0
		for i, point := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				minDist = math.Min(minDist, point.distance(c))
			}
			distances[i] = minDist
			totalDistance += minDist
		}

		// Every point already coincides with a centroid.
		if totalDistance == 0 {
			break
		}

		target := rng.Float64() * totalDistance
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}
	return centroids
}

func nearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := point.distance(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

func recalculateCentroids(rng *rand.Rand, points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)
	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] == 0 {
			// Empty cluster - reseed from the data.
			centroids[i] = points[rng.Intn(len(points))]
			continue
		}
		n := float64(counts[i])
		centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}
	return centroids
}

// contentSeed derives a clustering seed from the sampled colours.
func contentSeed(samples []Pixel) int64 {
	hasher := sha256.New()
	buf := make([]byte, 3)
	for _, p := range samples {
		buf[0], buf[1], buf[2] = p.R, p.G, p.B
		hasher.Write(buf)
	}
	sum := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(sum[:8])) // #nosec G115 -- seed value, wraparound is fine
}

func clampChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// sortedColorMap orders entries by descending population, keeping input
// order for ties.
func sortedColorMap(entries []ColorMapEntry) ColorMap {
	slices.SortStableFunc(entries, func(a, b ColorMapEntry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return ColorMap{Entries: entries}
}
