package cli

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/pairtone/internal/colour"
	imageloader "github.com/jmylchreest/pairtone/internal/image"
	httputil "github.com/jmylchreest/pairtone/internal/util/http"
)

// defaultMaxDimension bounds the longest side before sampling. Palettes of
// larger images barely change, while sampling cost grows with area.
const defaultMaxDimension = 512

// sourceFlags are the image input and extraction flags shared by extract
// and quantize.
type sourceFlags struct {
	colours      int
	quality      int
	algorithm    string
	maxDimension int
	includeWhite bool
	cacheDir     string
	timeout      time.Duration
}

func (f *sourceFlags) register(flags *pflag.FlagSet, d defaults) {
	flags.IntVarP(&f.colours, "colours", "c", d.Colours,
		fmt.Sprintf("number of colours to quantize to (%d-%d)", colour.MinColors, colour.MaxColors))
	flags.IntVar(&f.quality, "quality", d.Quality, "sample every Nth pixel (1 = every pixel)")
	flags.StringVarP(&f.algorithm, "algorithm", "a", d.Algorithm,
		fmt.Sprintf("quantization algorithm %v", colour.ValidAlgorithms()))
	flags.IntVar(&f.maxDimension, "max-dimension", defaultMaxDimension, "downscale so neither side exceeds this (0 = never)")
	flags.BoolVar(&f.includeWhite, "include-white", false, "sample pure white pixels")
	flags.StringVar(&f.cacheDir, "cache-dir", d.CacheDir, "keep downloaded images in this directory")
	flags.DurationVar(&f.timeout, "timeout", httputil.DefaultTimeout, "timeout for fetching image URLs")
}

// extractorOptions converts the flags into engine options.
func (f *sourceFlags) extractorOptions(logger hclog.Logger) (colour.Options, error) {
	alg := colour.Algorithm(f.algorithm)
	if !colour.IsValidAlgorithm(alg) {
		return colour.Options{}, fmt.Errorf("invalid algorithm: %s (valid: %v)", f.algorithm, colour.ValidAlgorithms())
	}
	return colour.Options{
		Algorithm:    alg,
		ColorCount:   f.colours,
		Quality:      f.quality,
		IncludeWhite: f.includeWhite,
		Logger:       logger,
	}, nil
}

// load resolves source (file, directory or URL), decodes it and applies
// the downscale limit.
func (f *sourceFlags) load(ctx context.Context, source string, logger hclog.Logger) (image.Image, error) {
	if err := imageloader.ValidateImagePath(source); err != nil {
		return nil, fmt.Errorf("invalid image path: %w", err)
	}

	resolved, err := imageloader.ResolveImagePath(source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image: %w", err)
	}
	if resolved != source {
		logger.Info("selected image from directory", "path", resolved)
	}

	loader := imageloader.NewSmartLoader(imageloader.SmartLoaderOptions{
		Fetch:    httputil.FetchOptions{Timeout: f.timeout},
		CacheDir: f.cacheDir,
		Logger:   logger.Named("loader"),
	})
	img, err := loader.Load(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	bounds := img.Bounds()
	scaled := imageloader.Downscale(img, f.maxDimension)
	if sb := scaled.Bounds(); sb != bounds {
		logger.Debug("downscaled image", "from", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
			"to", fmt.Sprintf("%dx%d", sb.Dx(), sb.Dy()))
	} else {
		logger.Debug("loaded image", "size", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()))
	}
	return scaled, nil
}

// extract loads source and runs the extraction pipeline on it.
func (f *sourceFlags) extract(cmd *cobra.Command, source string) (colour.Result, error) {
	logger := loggerFor(cmd)

	opts, err := f.extractorOptions(logger)
	if err != nil {
		return colour.Result{}, err
	}
	extractor, err := colour.NewExtractor(opts)
	if err != nil {
		return colour.Result{}, fmt.Errorf("failed to create extractor: %w", err)
	}

	img, err := f.load(cmd.Context(), source, logger)
	if err != nil {
		return colour.Result{}, err
	}

	res, err := extractor.Extract(img)
	if err != nil {
		return colour.Result{}, fmt.Errorf("failed to extract colours: %w", err)
	}
	if res.Samples == 0 {
		logger.Warn("no pixels sampled; image is transparent or white", "source", source)
	}
	return res, nil
}
