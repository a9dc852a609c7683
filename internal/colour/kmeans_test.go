package colour

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKMeansFewDistinctColours(t *testing.T) {
	q := NewKMeansQuantizer(nil)
	samples := append(repeatPixel(Pixel{200, 10, 10}, 3), repeatPixel(Pixel{10, 10, 200}, 9)...)

	cm := q.Quantize(samples, 5)
	want := []ColorMapEntry{
		{Color: RGB{R: 10, G: 10, B: 200}, Count: 9},
		{Color: RGB{R: 200, G: 10, B: 10}, Count: 3},
	}
	if diff := cmp.Diff(want, cm.Entries); diff != "" {
		t.Errorf("Quantize() mismatch (-want +got):\n%s", diff)
	}
}

func TestKMeansDegenerateInput(t *testing.T) {
	q := NewKMeansQuantizer(nil)
	if cm := q.Quantize(nil, 5); cm.Len() != 0 {
		t.Errorf("Quantize(nil) returned %d colours", cm.Len())
	}
	if cm := q.Quantize(randomSamples(1, 10), 1); cm.Len() != 0 {
		t.Errorf("Quantize(maxColors=1) returned %d colours", cm.Len())
	}
}

func TestKMeansClusters(t *testing.T) {
	q := NewKMeansQuantizer(nil)
	samples := randomSamples(5, 8000)

	for _, k := range []int{2, 6, 16} {
		cm := q.Quantize(samples, k)
		if cm.Len() == 0 || cm.Len() > k {
			t.Errorf("k=%d: got %d colours", k, cm.Len())
		}
		if total := cm.TotalCount(); total != len(samples) {
			t.Errorf("k=%d: total count %d, want %d", k, total, len(samples))
		}
		for i := 1; i < cm.Len(); i++ {
			if cm.Entries[i].Count > cm.Entries[i-1].Count {
				t.Errorf("k=%d: entry %d outranks entry %d", k, i, i-1)
			}
		}
	}
}

func TestKMeansSeparatesClusters(t *testing.T) {
	q := NewKMeansQuantizer(nil)
	var samples []Pixel
	for i := range 300 {
		d := uint8(i % 6)
		samples = append(samples, Pixel{240 - d, 20 + d, 20}, Pixel{20, 20 + d, 240 - d})
	}

	cm := q.Quantize(samples, 2)
	if cm.Len() != 2 {
		t.Fatalf("Quantize() returned %d colours, want 2", cm.Len())
	}
	for _, e := range cm.Entries {
		if e.Count != 300 {
			t.Errorf("cluster %v holds %d pixels, want 300", e.Color, e.Count)
		}
	}
}

func TestKMeansDeterministic(t *testing.T) {
	q := NewKMeansQuantizer(nil)
	samples := randomSamples(11, 6000)
	first := q.Quantize(samples, 8)
	again := q.Quantize(samples, 8)
	if diff := cmp.Diff(first.Entries, again.Entries); diff != "" {
		t.Errorf("Quantize() not deterministic (-first +again):\n%s", diff)
	}
}

func TestContentSeed(t *testing.T) {
	a := randomSamples(1, 50)
	b := randomSamples(2, 50)
	if contentSeed(a) != contentSeed(a) {
		t.Error("contentSeed() should be stable")
	}
	if contentSeed(a) == contentSeed(b) {
		t.Error("contentSeed() should differ for different samples")
	}
}
