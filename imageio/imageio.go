// Package imageio reads carriers from image containers and writes them back
// to a lossless container.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/ricochet2200/go-disk-usage/du"

	"github.com/spacemeshos/steg/config"
	"github.com/spacemeshos/steg/pixels"
	"github.com/spacemeshos/steg/shared"
)

var (
	ErrLossyFormat       = errors.New("lossy container format would corrupt embedded data")
	ErrUnsupportedFormat = errors.New("unsupported container format")
	ErrInsufficientSpace = errors.New("insufficient disk space")
)

var (
	lossyExtensions    = map[string]bool{".jpg": true, ".jpeg": true, ".jfif": true, ".webp": true}
	losslessExtensions = map[string]string{".png": config.FormatPNG}
)

const defaultSaveFileMode = os.FileMode(0644)

// Decode reads an image from r and converts it to an RGB grid.
// Any registered decoder (png, jpeg, gif) is accepted.
func Decode(r io.Reader) (*pixels.RGB, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return pixels.FromImage(img), format, nil
}

// Load reads the image at path.
func Load(path string) (*pixels.RGB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	grid, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %v: %w", path, err)
	}
	return grid, nil
}

// FormatFromPath returns the container format implied by the extension of path.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if lossyExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrLossyFormat, ext)
	}
	format, ok := losslessExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return format, nil
}

// Encode writes grid to w in the given container format.
func Encode(w io.Writer, grid *pixels.RGB, format string) error {
	switch strings.ToLower(format) {
	case config.FormatPNG:
		return png.Encode(w, grid.Image())
	case "jpeg", "jpg":
		return fmt.Errorf("%w: %q", ErrLossyFormat, format)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// AvailableSpace returns the free disk space, in bytes, of the volume holding path.
func AvailableSpace(path string) uint64 {
	usage := du.NewDiskUsage(path)
	return usage.Available()
}

// Saver writes carriers to disk.
type Saver struct {
	format       string
	minFreeSpace uint64
	logger       shared.Logger
}

func NewSaver(cfg *config.Config, logger shared.Logger) *Saver {
	return &Saver{
		format:       cfg.OutputFormat,
		minFreeSpace: cfg.MinFreeSpace,
		logger:       logger,
	}
}

// Save encodes grid and writes it to path. The file is replaced atomically,
// and only if the volume keeps at least minFreeSpace bytes available afterwards.
func (s *Saver) Save(path string, grid *pixels.RGB) error {
	if format, err := FormatFromPath(path); err != nil {
		return err
	} else if format != strings.ToLower(s.format) {
		return fmt.Errorf("%w: %v is %q, configured output format is %q", ErrUnsupportedFormat, path, format, s.format)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, grid, s.format); err != nil {
		return fmt.Errorf("serialization failure: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, shared.OwnerReadWriteExec); err != nil {
		return fmt.Errorf("dir creation failure: %w", err)
	}

	size := uint64(buf.Len())
	available := AvailableSpace(dir)
	if available < size || available-size < s.minFreeSpace {
		return fmt.Errorf("%w: required: %v (+%v reserved), available: %v", ErrInsufficientSpace,
			bytefmt.ByteSize(size), bytefmt.ByteSize(s.minFreeSpace), bytefmt.ByteSize(available))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write to disk failure: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write to disk failure: %w", err)
	}
	if err := tmp.Chmod(defaultSaveFileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("write to disk failure: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write to disk failure: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write to disk failure: %w", err)
	}

	s.logger.Info("saved carrier %dx%d to %v (%v)", grid.Width, grid.Height, path, bytefmt.ByteSize(size))
	return nil
}
