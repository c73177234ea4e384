// Package persistence stores embed receipts: small XDR-encoded sidecar files
// describing what was hidden in a carrier.
package persistence

import (
	"bytes"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nullstyle/go-xdr/xdr3"
	"github.com/spacemeshos/sha256-simd"

	"github.com/spacemeshos/steg/codec"
	"github.com/spacemeshos/steg/framing"
	"github.com/spacemeshos/steg/pixels"
	"github.com/spacemeshos/steg/shared"
)

const (
	ReceiptVersion = 1
	receiptSuffix  = ".receipt"
)

var ErrReceiptNotExist = errors.New("receipt doesn't exist")

// Receipt describes a payload embedded in a carrier.
type Receipt struct {
	Version       uint32
	Width         uint32
	Height        uint32
	PayloadLength uint32
	SlotsUsed     uint64
	Digest        []byte
}

// NewReceipt returns the receipt of payload embedded in grid.
func NewReceipt(grid pixels.Reader, payload []byte) *Receipt {
	width, height := grid.Size()
	digest := sha256.Sum256(payload)
	return &Receipt{
		Version:       ReceiptVersion,
		Width:         uint32(width),
		Height:        uint32(height),
		PayloadLength: uint32(len(payload)),
		SlotsUsed:     framing.FramedLen(uint64(len(payload))),
		Digest:        digest[:],
	}
}

// Utilization returns the fraction of the carrier's slots the payload occupies.
func (r *Receipt) Utilization() float64 {
	capacity := codec.Capacity(int(r.Width), int(r.Height))
	if capacity == 0 {
		return 0
	}
	return float64(r.SlotsUsed) / float64(capacity)
}

// Verify checks that payload, extracted from grid, matches the receipt.
func (r *Receipt) Verify(grid pixels.Reader, payload []byte) error {
	width, height := grid.Size()
	if uint32(width) != r.Width || uint32(height) != r.Height {
		return shared.ConfigMismatchError{
			Param:    "dimensions",
			Expected: fmt.Sprintf("%dx%d", r.Width, r.Height),
			Found:    fmt.Sprintf("%dx%d", width, height),
		}
	}

	if uint32(len(payload)) != r.PayloadLength {
		return shared.ConfigMismatchError{
			Param:    "PayloadLength",
			Expected: strconv.FormatUint(uint64(r.PayloadLength), 10),
			Found:    strconv.Itoa(len(payload)),
		}
	}

	digest := sha256.Sum256(payload)
	if subtle.ConstantTimeCompare(digest[:], r.Digest) != 1 {
		return shared.ConfigMismatchError{
			Param:    "Digest",
			Expected: hex.EncodeToString(r.Digest),
			Found:    hex.EncodeToString(digest[:]),
		}
	}

	return nil
}

// ReceiptPath returns the receipt filename for a carrier file.
func ReceiptPath(carrierPath string) string {
	return carrierPath + receiptSuffix
}

func SaveReceipt(filename string, receipt *Receipt) error {
	err := os.MkdirAll(filepath.Dir(filename), shared.OwnerReadWriteExec)
	if err != nil && !os.IsExist(err) {
		return fmt.Errorf("dir creation failure: %w", err)
	}

	var w bytes.Buffer
	_, err = xdr.Marshal(&w, receipt)
	if err != nil {
		return fmt.Errorf("serialization failure: %w", err)
	}

	err = os.WriteFile(filename, w.Bytes(), shared.OwnerReadWrite)
	if err != nil {
		return fmt.Errorf("write to disk failure: %w", err)
	}

	return nil
}

func LoadReceipt(filename string) (*Receipt, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrReceiptNotExist
		}
		return nil, fmt.Errorf("read file failure: %w", err)
	}

	receipt := &Receipt{}
	_, err = xdr.Unmarshal(bytes.NewReader(data), receipt)
	if err != nil {
		return nil, fmt.Errorf("deserialization failure: %w", err)
	}

	if receipt.Version != ReceiptVersion {
		return nil, shared.ConfigMismatchError{
			Param:    "Version",
			Expected: strconv.Itoa(ReceiptVersion),
			Found:    strconv.FormatUint(uint64(receipt.Version), 10),
		}
	}

	return receipt, nil
}
