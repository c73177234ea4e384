package pixels

import (
	"image"
	"image/color"
)

// FromImage copies img into a new RGB grid. Pixels are converted to
// non-premultiplied 8-bit color and the alpha channel is dropped.
func FromImage(img image.Image) *RGB {
	bounds := img.Bounds()
	grid := &RGB{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    make([]uint8, bounds.Dx()*bounds.Dy()*3),
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			grid.SetRGB(x, y, c.R, c.G, c.B)
		}
	}

	return grid
}

// Image returns an opaque image with the grid's pixels.
func (g *RGB) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			r, gr, b := g.RGB(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: gr, B: b, A: 0xFF})
		}
	}
	return img
}
