package palette

import (
	"testing"

	"github.com/ironsheep/clean-crosshair/internal/crosshair"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want crosshair.Pixel
	}{
		{"six digit", "#FF8040", crosshair.Pixel{R: 255, G: 128, B: 64, A: 255}},
		{"lower case", "#ff8040", crosshair.Pixel{R: 255, G: 128, B: 64, A: 255}},
		{"no hash", "00FF00", crosshair.Pixel{G: 255, A: 255}},
		{"three digit", "#F0F", crosshair.Pixel{R: 255, B: 255, A: 255}},
		{"with alpha", "#0A141E80", crosshair.Pixel{R: 10, G: 20, B: 30, A: 128}},
		{"zero alpha", "#FFFFFF00", crosshair.Pixel{R: 255, G: 255, B: 255}},
		{"swatch", "Orange", crosshair.Pixel{R: 255, G: 127, A: 255}},
		{"transparent swatch", "transparent", crosshair.Transparent},
		{"padded", "  red ", crosshair.Pixel{R: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#12345", "#GGGGGG", "#FFFFFFZZ", "chartreuse"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestHex(t *testing.T) {
	if got := Hex(crosshair.Pixel{R: 255, G: 128, B: 64, A: 32}); got != "#FF804020" {
		t.Errorf("Hex: got %s", got)
	}
}

func TestParseHexRoundTrip(t *testing.T) {
	for _, s := range Swatches {
		got, err := Parse(Hex(s.Pixel))
		if err != nil {
			t.Fatalf("Parse(Hex(%s)) failed: %v", s.Name, err)
		}
		if got != s.Pixel {
			t.Errorf("%s: got %v, want %v", s.Name, got, s.Pixel)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name    string
		p       crosshair.Pixel
		h, s, l int
	}{
		{"red", crosshair.Pixel{R: 255, A: 255}, 0, 100, 50},
		{"green", crosshair.Pixel{G: 255, A: 255}, 120, 100, 50},
		{"blue", crosshair.Pixel{B: 255, A: 255}, 240, 100, 50},
		{"white", crosshair.White, 0, 0, 100},
		{"black", crosshair.Pixel{A: 255}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Describe(tt.p)
			if info.HSL.H != tt.h || info.HSL.S != tt.s || info.HSL.L != tt.l {
				t.Errorf("HSL: got %+v, want (%d,%d,%d)", info.HSL, tt.h, tt.s, tt.l)
			}
			if !info.Drawn {
				t.Error("opaque color should be drawn")
			}
		})
	}

	if Describe(crosshair.Transparent).Drawn {
		t.Error("transparent pixel should not be drawn")
	}
}
