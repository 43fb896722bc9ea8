// Package colorize maps visitation indices to colors through a 3D Hilbert
// curve.
//
// For a lattice of scale s the per-axis color range is colorSize = s². The
// index is converted to a point of the Hilbert cube with side
// 2^Bits(colorSize); each coordinate is then stretched onto a channel value.
// Nearby indices therefore land on nearby colors, which is what makes the
// tree's branches visible in the final image.
package colorize

import (
	"image/color"
	"math/big"
	"math/bits"

	"github.com/hsluv/hsluv-go"

	apperr "github.com/matzehuels/hilbertmaze/pkg/errors"
	"github.com/matzehuels/hilbertmaze/pkg/hilbert"
)

// Palette selects how a Hilbert point becomes a color.
type Palette string

const (
	// RGB maps the three coordinates directly onto red, green and blue.
	RGB Palette = "rgb"
	// HSLuv maps the coordinates onto hue, saturation and lightness in the
	// perceptually uniform HSLuv space.
	HSLuv Palette = "hsluv"
)

// Palettes lists the supported palettes.
var Palettes = []string{string(RGB), string(HSLuv)}

// ParsePalette validates name and returns the matching palette.
func ParsePalette(name string) (Palette, error) {
	if err := apperr.ValidateToken(apperr.ErrCodeInvalidPalette, "palette", name, Palettes); err != nil {
		return "", err
	}
	return Palette(name), nil
}

// Base is the raw Hilbert point behind a color, one coordinate per channel.
type Base [3]uint8

// Bits returns the per-axis Hilbert precision for colorSize: the base-2
// logarithm of the next power of two at or above it, or 8 when colorSize < 1.
func Bits(colorSize int) int {
	if colorSize < 1 {
		return 8
	}
	return bits.Len(uint(colorSize - 1))
}

// Colorizer converts visitation indices for one scale into colors.
type Colorizer struct {
	palette   Palette
	colorSize int
	bits      int
}

// New returns a colorizer for scale. An empty palette selects RGB.
func New(scale int, palette Palette) *Colorizer {
	if palette == "" {
		palette = RGB
	}
	colorSize := scale * scale
	return &Colorizer{
		palette:   palette,
		colorSize: colorSize,
		bits:      Bits(colorSize),
	}
}

// ColorSize returns the per-axis color range, scale².
func (c *Colorizer) ColorSize() int { return c.colorSize }

// Bits returns the per-axis Hilbert precision in use.
func (c *Colorizer) Bits() int { return c.bits }

// Base returns the Hilbert point for index.
func (c *Colorizer) Base(index *big.Int) Base {
	p := hilbert.Point(index, c.bits, 3)
	return Base{uint8(p[0]), uint8(p[1]), uint8(p[2])}
}

// Color returns the opaque color for index.
func (c *Colorizer) Color(index *big.Int) color.RGBA {
	b := c.Base(index)
	if c.palette == HSLuv {
		return c.hsluv(b)
	}
	return color.RGBA{c.channel(b[0]), c.channel(b[1]), c.channel(b[2]), 0xff}
}

// channel stretches a coordinate in [0, colorSize-1] onto [0, 255] with
// floor division. When colorSize is not a power of two the cube is larger
// than colorSize and coordinates past colorSize-1 wrap modulo 256.
func (c *Colorizer) channel(v uint8) uint8 {
	if c.colorSize <= 1 {
		return 0
	}
	return uint8(int(v)*255/(c.colorSize-1))
}

func (c *Colorizer) hsluv(b Base) color.RGBA {
	side := float64(int(1) << uint(c.bits))
	frac := func(v uint8) float64 {
		if side == 1 {
			return 0
		}
		return float64(v) / (side - 1)
	}
	r, g, bl := hsluv.HsluvToRGB(
		360*float64(b[0])/side,
		40+60*frac(b[1]),
		20+65*frac(b[2]),
	)
	return color.RGBA{
		unit(r),
		unit(g),
		unit(bl),
		0xff,
	}
}

func unit(v float64) uint8 {
	return uint8(max(0, min(1, v)) * 0xff)
}
