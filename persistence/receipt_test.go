package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/steg/pixels"
	"github.com/spacemeshos/steg/shared"
)

func TestReceipt_SaveLoad(t *testing.T) {
	req := require.New(t)

	grid, err := pixels.NewRGB(4, 4)
	req.NoError(err)
	receipt := NewReceipt(grid, []byte("Hi"))
	req.Equal(uint64(48), receipt.SlotsUsed)
	req.Len(receipt.Digest, 32)
	req.InDelta(1.0, receipt.Utilization(), 1e-9)

	filename := ReceiptPath(filepath.Join(t.TempDir(), "out", "stego_image.png"))
	req.Equal("stego_image.png.receipt", filepath.Base(filename))
	req.NoError(SaveReceipt(filename, receipt))

	loaded, err := LoadReceipt(filename)
	req.NoError(err)
	req.Equal(receipt, loaded)
	req.NoError(loaded.Verify(grid, []byte("Hi")))
}

func TestReceipt_Mismatch(t *testing.T) {
	req := require.New(t)

	grid, err := pixels.NewRGB(8, 8)
	req.NoError(err)
	receipt := NewReceipt(grid, []byte("payload"))

	other, err := pixels.NewRGB(8, 9)
	req.NoError(err)

	for _, tc := range []struct {
		grid    pixels.Reader
		payload []byte
		param   string
	}{
		{grid: other, payload: []byte("payload"), param: "dimensions"},
		{grid: grid, payload: []byte("payloa"), param: "PayloadLength"},
		{grid: grid, payload: []byte("PAYLOAD"), param: "Digest"},
	} {
		err := receipt.Verify(tc.grid, tc.payload)
		req.True(errors.Is(err, shared.ErrReceiptMismatch))

		var merr shared.ConfigMismatchError
		req.True(errors.As(err, &merr))
		req.Equal(tc.param, merr.Param)
	}
}

func TestLoadReceipt_Missing(t *testing.T) {
	_, err := LoadReceipt(filepath.Join(t.TempDir(), "missing.receipt"))
	require.Equal(t, ErrReceiptNotExist, err)
}

func TestLoadReceipt_Corrupt(t *testing.T) {
	req := require.New(t)

	filename := filepath.Join(t.TempDir(), "corrupt.receipt")
	req.NoError(os.WriteFile(filename, []byte{0x01, 0x02}, shared.OwnerReadWrite))

	_, err := LoadReceipt(filename)
	req.Error(err)
}

func TestLoadReceipt_Version(t *testing.T) {
	req := require.New(t)

	grid, err := pixels.NewRGB(4, 4)
	req.NoError(err)
	receipt := NewReceipt(grid, nil)
	receipt.Version = 99

	filename := filepath.Join(t.TempDir(), "v99.receipt")
	req.NoError(SaveReceipt(filename, receipt))

	_, err = LoadReceipt(filename)
	var merr shared.ConfigMismatchError
	req.True(errors.As(err, &merr))
	req.Equal("Version", merr.Param)
}
