package colour

import (
	"errors"
	"fmt"
	"image"
	"iter"
	"slices"

	"golang.org/x/image/draw"
)

// ErrInvalidInput is returned when a pixel buffer does not match its
// declared dimensions.
var ErrInvalidInput = errors.New("invalid input")

const (
	// DefaultQuality is the sampling stride used when none (or an invalid
	// one) is given: every fifth pixel is inspected.
	DefaultQuality = 5

	// alphaThreshold is the minimum alpha for a pixel to be sampled.
	alphaThreshold = 125
)

// Pixel is a single sampled colour.
type Pixel struct {
	R, G, B uint8
}

// quantized returns the pixel's histogram coordinates.
func (p Pixel) quantized() [3]int {
	return [3]int{int(p.R) >> rshift, int(p.G) >> rshift, int(p.B) >> rshift}
}

func (p Pixel) isWhite() bool {
	return p.R == 255 && p.G == 255 && p.B == 255
}

// PixelBuffer is a decoded, non-premultiplied RGBA8 image in row-major order.
type PixelBuffer struct {
	Pix    []byte
	Width  int
	Height int
}

// Validate reports whether the buffer length matches Width*Height*4.
func (b PixelBuffer) Validate() error {
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidInput, b.Width, b.Height)
	}
	if want := b.Width * b.Height * 4; len(b.Pix) != want {
		return fmt.Errorf("%w: buffer holds %d bytes, %dx%d RGBA needs %d",
			ErrInvalidInput, len(b.Pix), b.Width, b.Height, want)
	}
	return nil
}

// PixelCount returns the number of pixels the buffer declares.
func (b PixelBuffer) PixelCount() int {
	return b.Width * b.Height
}

// PixelBufferFromImage converts any image into an RGBA8 buffer. Tightly
// packed NRGBA images are used without copying.
func PixelBufferFromImage(img image.Image) PixelBuffer {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Stride == width*4 {
		return PixelBuffer{Pix: nrgba.Pix[:width*height*4], Width: width, Height: height}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return PixelBuffer{Pix: dst.Pix, Width: width, Height: height}
}

// SampleOptions controls which pixels the sampler emits.
type SampleOptions struct {
	// Quality is the stride between inspected pixels. Values below 1 fall
	// back to DefaultQuality.
	Quality int

	// IncludeWhite keeps pure white (255,255,255) pixels, which are
	// otherwise skipped.
	IncludeWhite bool
}

// Samples walks the buffer every Quality pixels and yields the colour of
// each mostly opaque pixel. The sequence reads the buffer lazily and is
// bounded by both the declared pixel count and the actual buffer length.
func (b PixelBuffer) Samples(opts SampleOptions) iter.Seq[Pixel] {
	quality := opts.Quality
	if quality < 1 {
		quality = DefaultQuality
	}
	pixelCount := min(b.PixelCount(), len(b.Pix)/4)

	return func(yield func(Pixel) bool) {
		for i := 0; i < pixelCount; i += quality {
			offset := i * 4
			if b.Pix[offset+3] < alphaThreshold {
				continue
			}
			p := Pixel{R: b.Pix[offset], G: b.Pix[offset+1], B: b.Pix[offset+2]}
			if !opts.IncludeWhite && p.isWhite() {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// SamplePixels collects Samples into a slice.
func SamplePixels(b PixelBuffer, opts SampleOptions) []Pixel {
	return slices.Collect(b.Samples(opts))
}
