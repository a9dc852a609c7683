package colour

import (
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"
)

// Algorithm represents the quantization algorithm type.
type Algorithm string

const (
	// AlgorithmMedianCut uses modified median cut quantization (MMCQ).
	AlgorithmMedianCut Algorithm = "mediancut"

	// AlgorithmKMeans uses k-means clustering.
	AlgorithmKMeans Algorithm = "kmeans"
)

// DefaultColorCount is the palette size used when none (or an invalid one)
// is given.
const DefaultColorCount = 5

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmMedianCut, AlgorithmKMeans}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewQuantizer creates a Quantizer for the specified algorithm.
func NewQuantizer(alg Algorithm, logger hclog.Logger) (Quantizer, error) {
	switch alg {
	case AlgorithmMedianCut:
		return NewMedianCutQuantizer(logger), nil
	case AlgorithmKMeans:
		return NewKMeansQuantizer(logger), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// Options configures an Extractor.
type Options struct {
	Algorithm    Algorithm
	ColorCount   int
	Quality      int
	IncludeWhite bool
	Logger       hclog.Logger
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		Algorithm:  AlgorithmMedianCut,
		ColorCount: DefaultColorCount,
		Quality:    DefaultQuality,
	}
}

// Normalize replaces out-of-range values with defaults. Invalid counts and
// strides are never rejected.
func (o Options) Normalize() Options {
	if o.Algorithm == "" {
		o.Algorithm = AlgorithmMedianCut
	}
	if o.ColorCount < MinColors || o.ColorCount > MaxColors {
		o.ColorCount = DefaultColorCount
	}
	if o.Quality < 1 {
		o.Quality = DefaultQuality
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	return o
}

// Result holds everything an extraction produced.
type Result struct {
	Palette  Palette
	ColorMap ColorMap
	Samples  int
}

// Extractor runs the sample, quantize and pair pipeline. It holds no
// per-image state and is safe for concurrent use.
type Extractor struct {
	opts      Options
	quantizer Quantizer
}

// NewExtractor creates an Extractor. Only an unknown algorithm is an error.
func NewExtractor(opts Options) (*Extractor, error) {
	opts = opts.Normalize()
	q, err := NewQuantizer(opts.Algorithm, opts.Logger.Named(string(opts.Algorithm)))
	if err != nil {
		return nil, err
	}
	return &Extractor{opts: opts, quantizer: q}, nil
}

// Options returns the normalized options in use.
func (e *Extractor) Options() Options {
	return e.opts
}

// Extract converts img to a pixel buffer and extracts its palette.
func (e *Extractor) Extract(img image.Image) (Result, error) {
	if img == nil {
		return Result{}, fmt.Errorf("%w: image cannot be nil", ErrInvalidInput)
	}
	return e.ExtractPixels(PixelBufferFromImage(img))
}

// ExtractPixels extracts a palette from a decoded RGBA buffer. It fails only
// when the buffer does not match its dimensions.
func (e *Extractor) ExtractPixels(buf PixelBuffer) (Result, error) {
	if err := buf.Validate(); err != nil {
		return Result{}, err
	}

	samples := SamplePixels(buf, SampleOptions{Quality: e.opts.Quality, IncludeWhite: e.opts.IncludeWhite})
	e.opts.Logger.Debug("sampled pixels", "width", buf.Width, "height", buf.Height,
		"quality", e.opts.Quality, "samples", len(samples))

	cm := e.quantizer.Quantize(samples, e.opts.ColorCount)
	e.opts.Logger.Debug("quantized", "algorithm", e.opts.Algorithm, "requested", e.opts.ColorCount, "colours", cm.Len())

	palette := SelectPalette(cm)
	e.opts.Logger.Debug("selected palette", "background", palette.BackgroundColor.Hex(),
		"color", palette.Color.Hex(), "alternative", palette.AlternativeColor.Hex())

	return Result{Palette: palette, ColorMap: cm, Samples: len(samples)}, nil
}

// GetPalette is the one-call form of the pipeline with default settings for
// anything not given.
func GetPalette(buf PixelBuffer, colorCount, quality int) (Palette, error) {
	e, err := NewExtractor(Options{ColorCount: colorCount, Quality: quality})
	if err != nil {
		return Palette{}, err
	}
	res, err := e.ExtractPixels(buf)
	if err != nil {
		return Palette{}, err
	}
	return res.Palette, nil
}
