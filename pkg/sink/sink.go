// Package sink encodes generated images into output formats and writes them
// to a filesystem.
//
// Raster formats go through the standard and x/image encoders. The SVG sink
// draws one rectangle per horizontal run of equal pixels, which keeps files
// for smooth Hilbert gradients far below one element per pixel.
package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	apperr "github.com/matzehuels/hilbertmaze/pkg/errors"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatSVG  = "svg"
)

// Formats lists the supported output formats.
var Formats = []string{FormatPNG, FormatBMP, FormatTIFF, FormatSVG}

// MaxZoom is the largest accepted upscale factor.
const MaxZoom = 64

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	return apperr.ValidateToken(apperr.ErrCodeInvalidFormat, "format", format, Formats)
}

// ParseFormats splits a comma-separated format list, trims and lower-cases
// each entry, drops duplicates, and validates the result.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "no output format given")
	}
	return out, nil
}

// Filename returns the artifact name for a run: img-{scale}-{seed}.{format}.
func Filename(scale int, seed uint64, format string) string {
	return fmt.Sprintf("img-%d-%d.%s", scale, seed, format)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatSVG:
		return encodeSVG(w, img)
	}
	return apperr.New(apperr.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

// EncodeBytes is Encode into a fresh buffer.
func EncodeBytes(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Zoom upscales img by an integer factor with nearest-neighbour sampling so
// every cell stays a crisp square. A factor of 1 returns img unchanged.
func Zoom(img image.Image, factor int) (image.Image, error) {
	if err := apperr.ValidateZoom(factor, MaxZoom); err != nil {
		return nil, err
	}
	if factor == 1 {
		return img, nil
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}

func encodeSVG(w io.Writer, img image.Image) error {
	b := img.Bounds()
	canvas := svg.New(w)
	canvas.Start(b.Dx(), b.Dy(), `shape-rendering="crispEdges"`)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		x := b.Min.X
		for x < b.Max.X {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			run := 1
			for x+run < b.Max.X && color.RGBAModel.Convert(img.At(x+run, y)).(color.RGBA) == c {
				run++
			}
			canvas.Rect(x-b.Min.X, y-b.Min.Y, run, 1, canvas.RGB(int(c.R), int(c.G), int(c.B)))
			x += run
		}
	}
	canvas.End()
	return nil
}
