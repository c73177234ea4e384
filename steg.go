// Package steg hides byte payloads in the least-significant bits of RGB pixel
// grids and recovers them.
//
// A payload is framed with a 32-bit Big-Endian length prefix and written one
// bit per color channel, visiting pixels column by column (x outer, y inner)
// and channels in red, green, blue order. Decoding reads every channel's LSB
// and trusts the length prefix to find the end of the payload.
package steg

import (
	"code.cloudfoundry.org/bytefmt"

	"github.com/spacemeshos/steg/codec"
	"github.com/spacemeshos/steg/framing"
	"github.com/spacemeshos/steg/pixels"
	"github.com/spacemeshos/steg/shared"
)

// Stego embeds and extracts payloads. It holds no per-call state and is safe
// for concurrent use on distinct grids.
type Stego struct {
	logger shared.Logger
}

func New(opts ...OptionFunc) *Stego {
	options := applyOpts(opts...)
	return &Stego{logger: options.logger}
}

// Embed writes payload into grid. On error grid is left unmodified.
func (s *Stego) Embed(grid pixels.Grid, payload []byte) error {
	bits, err := framing.Frame(payload)
	if err != nil {
		return err
	}

	if err := codec.Encode(grid, bits); err != nil {
		return err
	}

	capacity := Capacity(grid)
	s.logger.Debug("embed: payload %v (%d bytes), %d/%d slots used",
		bytefmt.ByteSize(uint64(len(payload))), len(payload), len(bits), capacity)
	return nil
}

// Extract recovers the payload embedded in grid.
func (s *Stego) Extract(grid pixels.Reader) ([]byte, error) {
	bits := codec.Decode(grid)
	capacity := uint64(len(bits))

	declared, err := framing.DeclaredLength(bits)
	if err != nil {
		return nil, err
	}
	if framing.FramedLen(uint64(declared)) > capacity {
		return nil, &shared.MalformedCarrierError{
			Declared: uint64(declared),
			Capacity: capacity,
		}
	}

	payload, err := framing.Parse(bits)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("extract: payload %v (%d bytes), capacity %d slots",
		bytefmt.ByteSize(uint64(len(payload))), len(payload), capacity)
	return payload, nil
}

// EmbedString embeds the UTF-8 bytes of message.
func (s *Stego) EmbedString(grid pixels.Grid, message string) error {
	return s.Embed(grid, []byte(message))
}

// ExtractString extracts a payload and returns it as a string.
func (s *Stego) ExtractString(grid pixels.Reader) (string, error) {
	payload, err := s.Extract(grid)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// Embed writes payload into grid, see Stego.Embed.
func Embed(grid pixels.Grid, payload []byte) error {
	return New().Embed(grid, payload)
}

// Extract recovers the payload embedded in grid, see Stego.Extract.
func Extract(grid pixels.Reader) ([]byte, error) {
	return New().Extract(grid)
}

// Capacity returns the number of channel slots in grid.
func Capacity(grid pixels.Reader) uint64 {
	return codec.Capacity(grid.Size())
}

// MaxPayload returns the largest payload, in bytes, grid can hold.
func MaxPayload(grid pixels.Reader) uint64 {
	capacity := Capacity(grid)
	if capacity < framing.LengthPrefixBits {
		return 0
	}
	n := (capacity - framing.LengthPrefixBits) / 8
	if n > framing.MaxPayloadLength {
		n = framing.MaxPayloadLength
	}
	return n
}
