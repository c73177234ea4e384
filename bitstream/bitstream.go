// Package bitstream provides wrappers for io.Writer and io.Reader to allow
// bit-granularity access to the stream, following the MSB pattern, where
// most-significant bits are written/read first.
package bitstream

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

// FromLSB returns the least-significant bit of v.
func FromLSB(v uint8) Bit {
	return v&1 == 1
}

// Uint8 returns 1 for One and 0 for Zero.
func (b Bit) Uint8() uint8 {
	if b {
		return 1
	}
	return 0
}
