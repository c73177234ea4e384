// Package framing converts byte payloads to and from a self-describing bitstream:
// a 32-bit Big-Endian length prefix followed by the payload bits, MSB first.
package framing

import (
	"bytes"
	"fmt"
	"math"

	"github.com/spacemeshos/steg/bitstream"
	"github.com/spacemeshos/steg/shared"
)

const (
	// LengthPrefixBits is the width of the length prefix. It is part of the
	// carrier format and must not change.
	LengthPrefixBits = 32

	// MaxPayloadLength is the largest payload length the prefix can express, in bytes.
	MaxPayloadLength = math.MaxUint32
)

// FramedLen returns the number of bits a payload of payloadLen bytes occupies once framed.
func FramedLen(payloadLen uint64) uint64 {
	return LengthPrefixBits + 8*payloadLen
}

// Frame returns the length prefix followed by the bits of each payload byte.
// The result holds exactly FramedLen(len(payload)) bits.
func Frame(payload []byte) ([]bitstream.Bit, error) {
	if uint64(len(payload)) > MaxPayloadLength {
		return nil, fmt.Errorf("%w; expected: <= %d bytes, given: %d", shared.ErrPayloadTooLarge, uint64(MaxPayloadLength), len(payload))
	}

	buf := bytes.NewBuffer(make([]byte, 0, LengthPrefixBits/8+len(payload)))
	bw := bitstream.NewWriter(buf)
	if err := bw.WriteUint64BE(uint64(len(payload)), LengthPrefixBits); err != nil {
		return nil, err
	}
	if err := bw.Write(payload, 8*len(payload)); err != nil {
		return nil, err
	}

	return bitstream.NewReader(buf).ReadBits(int(FramedLen(uint64(len(payload)))))
}

// DeclaredLength parses the length prefix of bits.
func DeclaredLength(bits []bitstream.Bit) (uint32, error) {
	if len(bits) < LengthPrefixBits {
		return 0, &shared.TruncatedStreamError{
			Required:  LengthPrefixBits,
			Available: uint64(len(bits)),
		}
	}

	var buf bytes.Buffer
	if err := bitstream.NewWriter(&buf).WriteBits(bits[:LengthPrefixBits]); err != nil {
		return 0, err
	}

	declared, err := bitstream.NewReader(&buf).ReadUint64BE(LengthPrefixBits)
	if err != nil {
		return 0, err
	}
	return uint32(declared), nil
}

// Unframe parses the length prefix and returns exactly the payload bits it declares.
// Trailing bits are ignored. The returned slice aliases bits.
func Unframe(bits []bitstream.Bit) (uint32, []bitstream.Bit, error) {
	declared, err := DeclaredLength(bits)
	if err != nil {
		return 0, nil, err
	}

	required := FramedLen(uint64(declared))
	if uint64(len(bits)) < required {
		return 0, nil, &shared.TruncatedStreamError{
			Declared:  uint64(declared),
			Required:  required,
			Available: uint64(len(bits)),
		}
	}

	return declared, bits[LengthPrefixBits:required], nil
}

// BitsToBytes packs bits into bytes, MSB first. len(bits) must be a multiple of 8.
func BitsToBytes(bits []bitstream.Bit) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("%w; given: %d bits", shared.ErrUnalignedBits, len(bits))
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(bits)/8))
	bw := bitstream.NewWriter(buf)
	if err := bw.WriteBits(bits); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Parse unframes bits and packs the payload into bytes.
func Parse(bits []bitstream.Bit) ([]byte, error) {
	_, payloadBits, err := Unframe(bits)
	if err != nil {
		return nil, err
	}
	return BitsToBytes(payloadBits)
}
