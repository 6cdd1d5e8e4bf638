// Package palette parses and describes crosshair draw colors.
package palette

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ironsheep/clean-crosshair/internal/crosshair"
	"github.com/lucasb-eyer/go-colorful"
)

// Swatch is a named quick-pick color.
type Swatch struct {
	Name  string          `json:"name"`
	Pixel crosshair.Pixel `json:"pixel"`
}

// Swatches are the common colors offered next to the color picker.
var Swatches = []Swatch{
	{"white", crosshair.Pixel{R: 255, G: 255, B: 255, A: 255}},
	{"red", crosshair.Pixel{R: 255, G: 0, B: 0, A: 255}},
	{"green", crosshair.Pixel{R: 0, G: 255, B: 0, A: 255}},
	{"blue", crosshair.Pixel{R: 0, G: 0, B: 255, A: 255}},
	{"yellow", crosshair.Pixel{R: 255, G: 255, B: 0, A: 255}},
	{"cyan", crosshair.Pixel{R: 0, G: 255, B: 255, A: 255}},
	{"magenta", crosshair.Pixel{R: 255, G: 0, B: 255, A: 255}},
	{"orange", crosshair.Pixel{R: 255, G: 127, B: 0, A: 255}},
	{"purple", crosshair.Pixel{R: 127, G: 0, B: 127, A: 255}},
	{"pink", crosshair.Pixel{R: 255, G: 127, B: 127, A: 255}},
	{"transparent", crosshair.Transparent},
}

// Lookup returns the swatch with the given name, ignoring case.
func Lookup(name string) (crosshair.Pixel, bool) {
	for _, s := range Swatches {
		if strings.EqualFold(s.Name, name) {
			return s.Pixel, true
		}
	}
	return crosshair.Pixel{}, false
}

// Parse converts a color string to a pixel.
//
// Accepted forms:
//   - "#RGB" and "#RRGGBB": opaque colors
//   - "#RRGGBBAA": color with explicit alpha
//   - a swatch name such as "red" (case-insensitive)
//
// The leading '#' is optional for hex forms.
func Parse(s string) (crosshair.Pixel, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return crosshair.Pixel{}, fmt.Errorf("empty color string")
	}
	if p, ok := Lookup(s); ok {
		return p, nil
	}

	hex := strings.TrimPrefix(s, "#")
	alpha := uint8(255)
	switch len(hex) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return crosshair.Pixel{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return crosshair.Pixel{}, fmt.Errorf("invalid hex color length: %q", s)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return crosshair.Pixel{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return crosshair.Pixel{R: r, G: g, B: b, A: alpha}, nil
}

// Hex formats a pixel as "#RRGGBBAA".
func Hex(p crosshair.Pixel) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", p.R, p.G, p.B, p.A)
}

// HSLColor is a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// Info describes a pixel in the formats returned by the tool server.
type Info struct {
	Hex   string          `json:"hex"`   // "#RRGGBBAA"
	RGBA  crosshair.Pixel `json:"rgba"`  // Channel values
	HSL   HSLColor        `json:"hsl"`   // Alpha ignored
	Drawn bool            `json:"drawn"` // False when alpha is 0
}

// Describe returns p in hex, RGBA and HSL form.
func Describe(p crosshair.Pixel) Info {
	c := colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
	h, s, l := c.Hsl()
	return Info{
		Hex:   Hex(p),
		RGBA:  p,
		HSL:   HSLColor{H: int(math.Round(h)) % 360, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
		Drawn: !p.IsTransparent(),
	}
}
