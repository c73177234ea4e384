package bitstream

import (
	"io"
)

// BitReader reads bits from an io.Reader.
type BitReader struct {
	stream  io.Reader
	pending [1]byte
	// Number of unread LS bits in pending.
	remaining uint8
}

// NewReader returns a new instance of BitReader.
func NewReader(r io.Reader) *BitReader {
	b := new(BitReader)
	b.stream = r
	return b
}

// ReadBits reads the next numBits from the stream as individual bits.
func (br *BitReader) ReadBits(numBits int) ([]Bit, error) {
	bits := make([]Bit, 0, numBits)
	for ; numBits > 0; numBits-- {
		bit, err := br.ReadBit()
		if err != nil {
			return nil, err
		}
		bits = append(bits, bit)
	}
	return bits, nil
}

// ReadUint64BE reads the next numBits from the stream as uint64 in Big-Endian byte order,
// regardless of the alignment.
func (br *BitReader) ReadUint64BE(numBits int) (uint64, error) {
	var val uint64

	for numBits >= 8 {
		byt, err := br.ReadByte()
		if err != nil {
			return 0, err
		}

		val = uint64(byt) | (val << 8)
		numBits -= 8
	}

	for numBits > 0 {
		bit, err := br.ReadBit()
		if err != nil {
			return 0, err
		}

		val = val<<1 | uint64(bit.Uint8())
		numBits--
	}

	return val, nil
}

// ReadByte reads the next single byte from the stream, regardless of the alignment.
// io.EOF is returned only if no bits were left; a partially available byte
// yields io.ErrUnexpectedEOF.
func (br *BitReader) ReadByte() (byte, error) {
	if br.remaining == 0 {
		if _, err := io.ReadFull(br.stream, br.pending[:]); err != nil {
			return 0, err
		}
		return br.pending[0], nil
	}

	// The byte stream is not aligned.
	// Use the current pending LS bits as MS bits, combined with the next byte MS bits.

	current := br.pending[0] << (8 - br.remaining)
	if _, err := io.ReadFull(br.stream, br.pending[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}

	current |= br.pending[0] >> br.remaining

	return current, nil
}

// ReadBit reads the next single bit from the stream, MSB first.
func (br *BitReader) ReadBit() (Bit, error) {
	if br.remaining == 0 {
		if _, err := io.ReadFull(br.stream, br.pending[:]); err != nil {
			return Zero, err
		}
		br.remaining = 8
	}
	br.remaining--

	return Bit((br.pending[0]>>br.remaining)&1 == 1), nil
}
