package bitstream

import (
	"io"
)

// BitWriter writes bits to an io.Writer.
type BitWriter struct {
	stream    io.Writer
	pending   [1]byte
	alignment uint8
}

// NewWriter returns a new instance of BitWriter.
func NewWriter(w io.Writer) *BitWriter {
	bw := new(BitWriter)
	bw.stream = w
	bw.alignment = 0 // most-significant bit
	return bw
}

// Write writes the first numBits of data to the stream, regardless of the alignment.
// A trailing partial byte contributes its MS bits.
func (bw *BitWriter) Write(data []byte, numBits int) error {
	var idx int
	for numBits >= 8 {
		if err := bw.WriteByte(data[idx]); err != nil {
			return err
		}
		numBits -= 8
		idx++
	}

	if numBits == 0 {
		return nil
	}

	last := data[idx]
	for ; numBits > 0; numBits-- {
		if err := bw.WriteBit(last&0x80 != 0); err != nil {
			return err
		}
		last <<= 1
	}

	return nil
}

// WriteBits writes each bit, in order.
func (bw *BitWriter) WriteBits(bits []Bit) error {
	for _, bit := range bits {
		if err := bw.WriteBit(bit); err != nil {
			return err
		}
	}
	return nil
}

// WriteUint64BE writes the numBits LS bits of val, MSB first, regardless of the alignment.
func (bw *BitWriter) WriteUint64BE(val uint64, numBits int) error {
	// Eliminate unnecessary MS bits.
	val <<= 64 - uint(numBits)

	// Write bytes in Big-Endian order.
	for numBits >= 8 {
		if err := bw.WriteByte(byte(val >> 56)); err != nil {
			return err
		}
		val <<= 8
		numBits -= 8
	}

	// Write the remaining bits.
	for numBits > 0 {
		if err := bw.WriteBit((val >> 63) == 1); err != nil {
			return err
		}
		val <<= 1
		numBits--
	}

	return nil
}

// WriteByte writes a single byte to the stream, regardless of the alignment.
// If the byte is to be split due to alignment, its MS bits complete the pending byte.
func (bw *BitWriter) WriteByte(b byte) error {
	// Fill the pending byte LS bits with MS bits.
	bw.pending[0] |= b >> bw.alignment

	if err := bw.flushPending(); err != nil {
		return err
	}

	// Fill the new pending byte MS bits with the remaining LS bits.
	bw.pending[0] = b << (8 - bw.alignment)

	return nil
}

// WriteBit writes a single bit to the stream, MSB first.
func (bw *BitWriter) WriteBit(bit Bit) error {
	if bit {
		bw.pending[0] |= 0x80 >> bw.alignment
	}

	bw.alignment++

	if bw.alignment == 8 {
		if err := bw.flushPending(); err != nil {
			return err
		}
		bw.pending[0] = 0
		bw.alignment = 0
	}

	return nil
}

func (bw *BitWriter) flushPending() error {
	n, err := bw.stream.Write(bw.pending[:])
	if err != nil {
		return err
	}
	if n != 1 {
		return io.ErrShortWrite
	}
	return nil
}
