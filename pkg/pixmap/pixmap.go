// Package pixmap holds the square RGB buffer produced by a generation run.
package pixmap

import (
	"image"
	"image/color"

	"github.com/matzehuels/hilbertmaze/pkg/lattice"
)

// Pixmap is a size×size RGB image with one pixel per lattice vertex.
//
// As an image.Image the vertex (row, col) is the pixel at x = row, y = col,
// so the image is the lattice transposed.
type Pixmap struct {
	// Pix holds the pixels as R, G, B triples in x-major order: the pixel
	// at (x, y) starts at Pix[3*(x*Size+y)].
	Pix  []uint8
	Size int
}

// New returns a black pixmap of side size.
func New(size int) *Pixmap {
	return &Pixmap{Pix: make([]uint8, 3*size*size), Size: size}
}

func (p *Pixmap) offset(row, col int) int {
	return 3 * (row*p.Size + col)
}

// Set paints the pixel of v. Alpha is ignored.
func (p *Pixmap) Set(v lattice.Vertex, c color.RGBA) {
	i := p.offset(v.Row, v.Col)
	p.Pix[i], p.Pix[i+1], p.Pix[i+2] = c.R, c.G, c.B
}

// Cell returns the color of v.
func (p *Pixmap) Cell(v lattice.Vertex) color.RGBA {
	i := p.offset(v.Row, v.Col)
	return color.RGBA{p.Pix[i], p.Pix[i+1], p.Pix[i+2], 0xff}
}

// ColorModel implements image.Image.
func (p *Pixmap) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (p *Pixmap) Bounds() image.Rectangle { return image.Rect(0, 0, p.Size, p.Size) }

// At implements image.Image. Points outside the bounds are transparent.
func (p *Pixmap) At(x, y int) color.Color {
	if !image.Pt(x, y).In(p.Bounds()) {
		return color.RGBA{}
	}
	return p.Cell(lattice.Vertex{Row: x, Col: y})
}

// RGBA copies the pixmap into a standard *image.RGBA.
func (p *Pixmap) RGBA() *image.RGBA {
	img := image.NewRGBA(p.Bounds())
	for x := 0; x < p.Size; x++ {
		for y := 0; y < p.Size; y++ {
			img.SetRGBA(x, y, p.Cell(lattice.Vertex{Row: x, Col: y}))
		}
	}
	return img
}
