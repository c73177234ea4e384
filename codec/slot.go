package codec

import "fmt"

// ChannelsPerPixel is the number of channel slots each pixel provides.
const ChannelsPerPixel = 3

// Channel is a color channel of a pixel. Channels are visited in declaration order.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// Slot is one channel of one pixel.
type Slot struct {
	X, Y    int
	Channel Channel
}

// SlotAt maps a slot index to its pixel and channel for a grid of the given height.
// Pixels are visited with x in the outer loop and y in the inner loop,
// and within a pixel red, green, then blue.
func SlotAt(index uint64, height int) Slot {
	pixel := index / ChannelsPerPixel
	return Slot{
		X:       int(pixel / uint64(height)),
		Y:       int(pixel % uint64(height)),
		Channel: Channel(index % ChannelsPerPixel),
	}
}

// Capacity returns the number of channel slots in a width x height grid.
func Capacity(width, height int) uint64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return uint64(width) * uint64(height) * ChannelsPerPixel
}
