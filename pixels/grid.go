// Package pixels defines the rectangular RGB pixel grid that carries hidden data,
// and an in-memory implementation of it.
package pixels

import (
	"fmt"
)

// Reader is a read-only view of a pixel grid. Pixels are addressed by (x, y)
// with 0 <= x < width and 0 <= y < height.
type Reader interface {
	Size() (width, height int)
	RGB(x, y int) (r, g, b uint8)
}

// Grid is a mutable pixel grid.
type Grid interface {
	Reader
	SetRGB(x, y int, r, g, b uint8)
}

// RGB is an in-memory 8-bit RGB grid. Pix holds 3 bytes per pixel in
// row-major order: the pixel at (x, y) starts at Pix[(y*Width+x)*3].
type RGB struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRGB returns a zeroed grid of the given dimensions.
func NewRGB(width, height int) (*RGB, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid grid dimensions; expected: >= 0, given: %dx%d", width, height)
	}
	return &RGB{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}, nil
}

func (g *RGB) Size() (int, int) {
	return g.Width, g.Height
}

func (g *RGB) RGB(x, y int) (uint8, uint8, uint8) {
	i := g.offset(x, y)
	return g.Pix[i], g.Pix[i+1], g.Pix[i+2]
}

func (g *RGB) SetRGB(x, y int, r, gr, b uint8) {
	i := g.offset(x, y)
	g.Pix[i], g.Pix[i+1], g.Pix[i+2] = r, gr, b
}

// Clone returns a deep copy of the grid.
func (g *RGB) Clone() *RGB {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &RGB{Width: g.Width, Height: g.Height, Pix: pix}
}

func (g *RGB) offset(x, y int) int {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		panic(fmt.Sprintf("pixel (%d, %d) out of range %dx%d", x, y, g.Width, g.Height))
	}
	return (y*g.Width + x) * 3
}
