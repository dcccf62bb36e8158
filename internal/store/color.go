package store

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is a display color, one byte per channel. It marshals as [r, g, b].
type RGB [3]uint8

// paletteHueStep is the golden angle in degrees.
const paletteHueStep = 137.508

const (
	paletteSaturation = 0.65
	paletteLightness  = 0.60
)

// TagColor returns the palette color for the index-th tag. The palette is
// deterministic: the same index always yields the same color.
func TagColor(index int) RGB {
	if index < 0 {
		index = 0
	}
	hue := math.Mod(float64(index)*paletteHueStep, 360)
	return fromColorful(colorful.Hsl(hue, paletteSaturation, paletteLightness))
}

// MixColors blends two colors by channel-wise average.
func MixColors(a, b RGB) RGB {
	return fromColorful(a.colorful().BlendRgb(b.colorful(), 0.5))
}

// ReadableTextColor picks a dark or light foreground for text drawn over bg.
func ReadableTextColor(bg RGB) RGB {
	luminance := 0.299*float64(bg[0]) + 0.587*float64(bg[1]) + 0.114*float64(bg[2])
	if luminance > 150 {
		return RGB{30, 30, 30}
	}
	return RGB{230, 230, 230}
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

func ParseHexColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGB{}, fmt.Errorf("%w: empty color", ErrInvalid)
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return RGB{}, fmt.Errorf("%w: color %q (use #rrggbb)", ErrInvalid, s)
	}
	return fromColorful(c), nil
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c[0]) / 255,
		G: float64(c[1]) / 255,
		B: float64(c[2]) / 255,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}
