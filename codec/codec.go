// Package codec hides a bitstream in the least-significant bits of a pixel
// grid's color channels, one bit per channel slot.
package codec

import (
	"github.com/spacemeshos/steg/bitstream"
	"github.com/spacemeshos/steg/pixels"
	"github.com/spacemeshos/steg/shared"
)

// Encode writes bits into the LSBs of the first len(bits) slots of grid.
// Higher-order bits and slots past len(bits) are left untouched.
// If bits does not fit, grid is not modified and a *shared.CapacityError is returned.
func Encode(grid pixels.Grid, bits []bitstream.Bit) error {
	width, height := grid.Size()
	available := Capacity(width, height)
	if uint64(len(bits)) > available {
		return &shared.CapacityError{
			Required:  uint64(len(bits)),
			Available: available,
		}
	}

	for i := 0; i < len(bits); {
		slot := SlotAt(uint64(i), height)
		var ch [ChannelsPerPixel]uint8
		ch[0], ch[1], ch[2] = grid.RGB(slot.X, slot.Y)

		// Fill the remaining channels of this pixel.
		for c := slot.Channel; c < ChannelsPerPixel && i < len(bits); c++ {
			ch[c] = ch[c]&0xFE | bits[i].Uint8()
			i++
		}

		grid.SetRGB(slot.X, slot.Y, ch[0], ch[1], ch[2])
	}

	return nil
}

// Decode returns the LSB of every slot of grid, in traversal order.
// The result holds exactly Capacity(grid.Size()) bits.
func Decode(grid pixels.Reader) []bitstream.Bit {
	width, height := grid.Size()
	bits := make([]bitstream.Bit, 0, Capacity(width, height))
	if width <= 0 || height <= 0 {
		return bits
	}

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			r, g, b := grid.RGB(x, y)
			bits = append(bits, bitstream.FromLSB(r), bitstream.FromLSB(g), bitstream.FromLSB(b))
		}
	}

	return bits
}
