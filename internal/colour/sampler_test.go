package colour

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// newBuffer builds a one-row buffer from RGBA quadruples.
func newBuffer(pixels ...[4]uint8) PixelBuffer {
	pix := make([]byte, 0, len(pixels)*4)
	for _, p := range pixels {
		pix = append(pix, p[0], p[1], p[2], p[3])
	}
	return PixelBuffer{Pix: pix, Width: len(pixels), Height: 1}
}

// solidBuffer builds a width x height buffer of a single colour.
func solidBuffer(width, height int, c [4]uint8) PixelBuffer {
	pix := make([]byte, 0, width*height*4)
	for range width * height {
		pix = append(pix, c[0], c[1], c[2], c[3])
	}
	return PixelBuffer{Pix: pix, Width: width, Height: height}
}

func TestPixelBufferValidate(t *testing.T) {
	tests := []struct {
		name    string
		buf     PixelBuffer
		wantErr bool
	}{
		{name: "valid", buf: solidBuffer(3, 2, [4]uint8{1, 2, 3, 255})},
		{name: "empty", buf: PixelBuffer{}},
		{name: "short buffer", buf: PixelBuffer{Pix: make([]byte, 10), Width: 2, Height: 2}, wantErr: true},
		{name: "long buffer", buf: PixelBuffer{Pix: make([]byte, 20), Width: 2, Height: 2}, wantErr: true},
		{name: "negative width", buf: PixelBuffer{Width: -1, Height: 2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.buf.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestSamplePixelsStride(t *testing.T) {
	pixels := make([][4]uint8, 12)
	for i := range pixels {
		pixels[i] = [4]uint8{uint8(i), 0, 0, 255}
	}
	buf := newBuffer(pixels...)

	tests := []struct {
		name    string
		quality int
		want    []uint8
	}{
		{name: "every pixel", quality: 1, want: []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{name: "stride 4", quality: 4, want: []uint8{0, 4, 8}},
		{name: "zero falls back to default", quality: 0, want: []uint8{0, 5, 10}},
		{name: "negative falls back to default", quality: -3, want: []uint8{0, 5, 10}},
		{name: "stride beyond buffer", quality: 100, want: []uint8{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SamplePixels(buf, SampleOptions{Quality: tt.quality})
			if len(got) != len(tt.want) {
				t.Fatalf("SamplePixels() returned %d samples, want %d", len(got), len(tt.want))
			}
			for i, p := range got {
				if p.R != tt.want[i] {
					t.Errorf("sample %d red = %d, want %d", i, p.R, tt.want[i])
				}
			}
		})
	}
}

func TestSamplePixelsFilters(t *testing.T) {
	buf := newBuffer(
		[4]uint8{10, 20, 30, 124},   // too transparent
		[4]uint8{10, 20, 30, 125},   // kept
		[4]uint8{255, 255, 255, 255}, // white
		[4]uint8{255, 255, 254, 255}, // near white is kept
		[4]uint8{0, 0, 0, 0},         // transparent
	)

	got := SamplePixels(buf, SampleOptions{Quality: 1})
	want := []Pixel{{10, 20, 30}, {255, 255, 254}}
	if len(got) != len(want) {
		t.Fatalf("SamplePixels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}

	withWhite := SamplePixels(buf, SampleOptions{Quality: 1, IncludeWhite: true})
	if len(withWhite) != 3 {
		t.Errorf("IncludeWhite: got %d samples, want 3", len(withWhite))
	}
}

func TestSamplesStopsEarly(t *testing.T) {
	buf := solidBuffer(10, 10, [4]uint8{1, 1, 1, 255})
	n := 0
	for range buf.Samples(SampleOptions{Quality: 1}) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("iterated %d samples, want 3", n)
	}
}

func TestSamplesTruncatedBuffer(t *testing.T) {
	// Declared dimensions larger than the data must not read out of range.
	buf := PixelBuffer{Pix: []byte{1, 2, 3, 255}, Width: 4, Height: 4}
	if got := SamplePixels(buf, SampleOptions{Quality: 1}); len(got) != 1 {
		t.Errorf("SamplePixels() returned %d samples, want 1", len(got))
	}
}

func TestPixelBufferFromImage(t *testing.T) {
	t.Run("rgba", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 2, 1))
		img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		img.Set(1, 0, color.RGBA{R: 40, G: 50, B: 60, A: 255})

		buf := PixelBufferFromImage(img)
		if err := buf.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		want := []byte{10, 20, 30, 255, 40, 50, 60, 255}
		for i := range want {
			if buf.Pix[i] != want[i] {
				t.Fatalf("Pix = %v, want %v", buf.Pix, want)
			}
		}
	})

	t.Run("nrgba shares pixels", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
		buf := PixelBufferFromImage(img)
		img.Pix[0] = 99
		if buf.Pix[0] != 99 {
			t.Error("expected tightly packed NRGBA to be used without copying")
		}
	})

	t.Run("sub image", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		img.SetNRGBA(2, 2, color.NRGBA{R: 7, G: 8, B: 9, A: 255})
		sub := img.SubImage(image.Rect(2, 2, 4, 4))

		buf := PixelBufferFromImage(sub)
		if buf.Width != 2 || buf.Height != 2 {
			t.Fatalf("dimensions = %dx%d, want 2x2", buf.Width, buf.Height)
		}
		if err := buf.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if buf.Pix[0] != 7 || buf.Pix[1] != 8 || buf.Pix[2] != 9 {
			t.Errorf("first pixel = %v, want [7 8 9]", buf.Pix[:3])
		}
	})
}
