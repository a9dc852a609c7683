package colour

import (
	"encoding/json"
	"image/color"
	"strings"
	"testing"
)

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{
			name:  "red",
			color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
			want:  RGB{R: 255, G: 0, B: 0},
		},
		{
			name:  "white",
			color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
			want:  RGB{R: 255, G: 255, B: 255},
		},
		{
			name:  "black",
			color: color.RGBA{R: 0, G: 0, B: 0, A: 255},
			want:  RGB{R: 0, G: 0, B: 0},
		},
		{
			name:  "rgb round trip",
			color: RGB{R: 12, G: 34, B: 56},
			want:  RGB{R: 12, G: 34, B: 56},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRGB(tt.color)
			if got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255, G: 0, B: 0}, want: "#ff0000"},
		{name: "green", rgb: RGB{R: 0, G: 255, B: 0}, want: "#00ff00"},
		{name: "blue", rgb: RGB{R: 0, G: 0, B: 255}, want: "#0000ff"},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: "#808080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRGBString(t *testing.T) {
	rgb := RGB{R: 255, G: 0, B: 10}
	if got, want := rgb.String(), "rgb(255, 0, 10)"; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "with hash", input: "#1a2b3c", want: RGB{R: 0x1a, G: 0x2b, B: 0x3c}},
		{name: "without hash", input: "FF8000", want: RGB{R: 255, G: 128, B: 0}},
		{name: "short form", input: "#fff", want: RGB{R: 255, G: 255, B: 255}},
		{name: "surrounding space", input: " #000000 ", want: RGB{}},
		{name: "wrong length", input: "#12345", wantErr: true},
		{name: "not hex", input: "#gggggg", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseHex(%q) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPaletteToJSON(t *testing.T) {
	p := Palette{
		BackgroundColor:  RGB{R: 0, G: 0, B: 0},
		Color:            RGB{R: 255, G: 255, B: 255},
		AlternativeColor: RGB{R: 255, G: 0, B: 0},
	}

	jsonBytes, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	jsonStr := string(jsonBytes)
	for _, want := range []string{
		`"backgroundColor": "#000000"`,
		`"color": "#ffffff"`,
		`"alternativeColor": "#ff0000"`,
	} {
		if !strings.Contains(jsonStr, want) {
			t.Errorf("ToJSON() missing %s in:\n%s", want, jsonStr)
		}
	}

	var decoded PaletteJSON
	if err := json.Unmarshal(jsonBytes, &decoded); err != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", err)
	}
}

func TestPaletteMarshalJSON(t *testing.T) {
	p := Palette{Color: RGB{R: 1, G: 2, B: 3}}
	b, err := json.Marshal(struct {
		Palette Palette `json:"palette"`
	}{p})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"palette":{"backgroundColor":"#000000","color":"#010203","alternativeColor":"#000000"}}`
	if string(b) != want {
		t.Errorf("json.Marshal() = %s, want %s", b, want)
	}
}

func TestPaletteToHex(t *testing.T) {
	p := Palette{
		BackgroundColor:  RGB{R: 0x11, G: 0x22, B: 0x33},
		Color:            RGB{R: 0xaa, G: 0xbb, B: 0xcc},
		AlternativeColor: RGB{R: 0xde, G: 0xad, B: 0x00},
	}
	want := []string{"#112233", "#aabbcc", "#dead00"}
	got := p.ToHex()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToHex()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
