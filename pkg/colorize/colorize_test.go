package colorize

import (
	"image/color"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/matzehuels/hilbertmaze/pkg/errors"
)

func TestBits(t *testing.T) {
	tests := []struct {
		colorSize int
		want      int
	}{
		{-1, 8},
		{0, 8},
		{1, 0},
		{2, 1},
		{4, 2},
		{5, 3},
		{9, 4},
		{16, 4},
		{225, 8},
		{256, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Bits(tt.colorSize), "colorSize=%d", tt.colorSize)
	}
}

func TestColorScaleOne(t *testing.T) {
	c := New(1, RGB)
	assert.Equal(t, 0, c.Bits())
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, c.Color(big.NewInt(0)))
}

func TestColorScaleTwo(t *testing.T) {
	c := New(2, RGB)
	require.Equal(t, 4, c.ColorSize())
	require.Equal(t, 2, c.Bits())

	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, c.Color(big.NewInt(0)))
	assert.Equal(t, Base{0, 0, 1}, c.Base(big.NewInt(7)))
	assert.Equal(t, color.RGBA{0, 0, 85, 0xff}, c.Color(big.NewInt(7)))
	assert.Equal(t, color.RGBA{255, 0, 0, 0xff}, c.Color(big.NewInt(63)))
}

func TestChannel(t *testing.T) {
	c := New(3, RGB)
	require.Equal(t, 9, c.ColorSize())
	assert.Equal(t, uint8(0), c.channel(0))
	assert.Equal(t, uint8(31), c.channel(1))
	assert.Equal(t, uint8(255), c.channel(8))
	assert.Equal(t, uint8(30), c.channel(9), "286 wraps to 30")
	assert.Equal(t, uint8(222), c.channel(15), "478 wraps to 222")
}

// At scale 3 the cube side is 16 but colorSize is 9, so the curve passes
// coordinates above 8 and their channels wrap instead of saturating.
func TestColorWrapsPastColorSize(t *testing.T) {
	c := New(3, RGB)
	wrapped := 0
	for i := int64(0); i < 729; i++ {
		idx := big.NewInt(i)
		b := c.Base(idx)
		col := c.Color(idx)
		got := []uint8{col.R, col.G, col.B}
		for k, v := range b {
			assert.Equal(t, uint8(int(v)*255/8), got[k], "index=%d axis=%d", i, k)
			if v > 8 {
				wrapped++
				assert.NotEqual(t, uint8(255), got[k], "index=%d axis=%d", i, k)
			}
		}
	}
	assert.Positive(t, wrapped)
}

func TestColorRange(t *testing.T) {
	c := New(2, RGB)
	seen := make(map[color.RGBA]bool)
	for i := int64(0); i < 64; i++ {
		col := c.Color(big.NewInt(i))
		assert.Equal(t, uint8(0xff), col.A)
		for _, ch := range []uint8{col.R, col.G, col.B} {
			assert.Contains(t, []uint8{0, 85, 170, 255}, ch)
		}
		seen[col] = true
	}
	assert.Len(t, seen, 64)
}

func TestHSLuvPalette(t *testing.T) {
	c := New(2, HSLuv)
	seen := make(map[color.RGBA]bool)
	for i := int64(0); i < 64; i++ {
		col := c.Color(big.NewInt(i))
		assert.Equal(t, uint8(0xff), col.A)
		seen[col] = true
	}
	assert.Greater(t, len(seen), 1)
	assert.NotEqual(t, New(2, RGB).Color(big.NewInt(40)), c.Color(big.NewInt(40)))

	// A single-color scale must not divide by zero.
	assert.Equal(t, uint8(0xff), New(1, HSLuv).Color(big.NewInt(0)).A)
}

func TestDefaultPalette(t *testing.T) {
	assert.Equal(t, New(2, RGB).Color(big.NewInt(9)), New(2, "").Color(big.NewInt(9)))
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette("hsluv")
	require.NoError(t, err)
	assert.Equal(t, HSLuv, p)

	_, err = ParsePalette("cmyk")
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeInvalidPalette, apperr.GetCode(err))
}
