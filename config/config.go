package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spacemeshos/smutil"
)

const (
	FormatPNG = "png"

	MaxMaxPayloadSize = 1<<32 - 1
	MinMaxPayloadSize = 1
)

const (
	DefaultDataDirName    = "data"
	DefaultOutputFileName = "stego_image.png"
	DefaultOutputFormat   = FormatPNG
	DefaultMaxPayloadSize = 64 << 20 // 64MB.
	DefaultWriteReceipt   = true
	DefaultMinFreeSpace   = 1 << 20 // 1MB.
	DefaultLogLevel       = "info"
)

var (
	DefaultDataDir = filepath.Join(smutil.GetUserHomeDirectory(), "steg", DefaultDataDirName)

	supportedFormats = []string{FormatPNG}
)

type Config struct {
	DataDir string `mapstructure:"datadir"`

	// OutputFormat is the container carriers are written in. Only lossless formats are accepted.
	OutputFormat string `mapstructure:"format"`

	// MaxPayloadSize bounds the payload read from a file or flag, in bytes.
	MaxPayloadSize uint64 `mapstructure:"max-payload"`

	// WriteReceipt persists an embed receipt next to every written carrier.
	WriteReceipt bool `mapstructure:"receipt"`

	// MinFreeSpace is the disk space, in bytes, that must remain available after writing a carrier.
	MinFreeSpace uint64 `mapstructure:"min-free-space"`

	LogLevel string `mapstructure:"loglevel"`
}

func (cfg *Config) Validate() error {
	if cfg.DataDir == "" {
		return fmt.Errorf("invalid `DataDir`; expected: non-empty path, given: %q", cfg.DataDir)
	}

	format := strings.ToLower(cfg.OutputFormat)
	supported := false
	for _, f := range supportedFormats {
		if f == format {
			supported = true
		}
	}
	if !supported {
		return fmt.Errorf("invalid `OutputFormat`; expected: one of %v, given: %q", supportedFormats, cfg.OutputFormat)
	}

	if cfg.MaxPayloadSize > MaxMaxPayloadSize {
		return fmt.Errorf("invalid `MaxPayloadSize`; expected: <= %d, given: %d", uint64(MaxMaxPayloadSize), cfg.MaxPayloadSize)
	}

	if cfg.MaxPayloadSize < MinMaxPayloadSize {
		return fmt.Errorf("invalid `MaxPayloadSize`; expected: >= %d, given: %d", MinMaxPayloadSize, cfg.MaxPayloadSize)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "dpanic", "panic", "fatal":
	default:
		return fmt.Errorf("invalid `LogLevel`; expected: one of debug, info, warn, error, dpanic, panic, fatal, given: %q", cfg.LogLevel)
	}

	return nil
}

// OutputPath returns the default path for a written carrier.
func (cfg *Config) OutputPath() string {
	return filepath.Join(cfg.DataDir, DefaultOutputFileName)
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:        DefaultDataDir,
		OutputFormat:   DefaultOutputFormat,
		MaxPayloadSize: DefaultMaxPayloadSize,
		WriteReceipt:   DefaultWriteReceipt,
		MinFreeSpace:   DefaultMinFreeSpace,
		LogLevel:       DefaultLogLevel,
	}
}
