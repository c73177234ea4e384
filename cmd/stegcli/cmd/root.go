package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spacemeshos/steg/config"
	"github.com/spacemeshos/steg/shared"
)

var (
	// Version is the version of the binary.
	Version string

	// Commit is the commit hash of the binary.
	Commit string

	cfg    = config.DefaultConfig()
	logger = shared.Logger(shared.DisabledLogger{})

	cfgFile string
	zapLog  *zap.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stegcli",
	Short: "Hide data in the least-significant bits of an image",
	Long: `stegcli embeds an arbitrary payload in the low-order bits of an image's
red, green and blue channels, and recovers it. The output is always written
to a lossless container (PNG): re-encoding a carrier with a lossy format
destroys the hidden data.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd.Flags())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if zapLog != nil {
			_ = zapLog.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "path to configuration file (toml, yaml or json)")

	flags.String("datadir", cfg.DataDir, "directory carriers are written to by default")
	flags.String("format", cfg.OutputFormat, "output container format (png)")
	flags.Uint64("max-payload", cfg.MaxPayloadSize, "max payload size, in bytes")
	flags.Bool("receipt", cfg.WriteReceipt, "write an embed receipt next to the output carrier")
	flags.Uint64("min-free-space", cfg.MinFreeSpace, "disk space, in bytes, to keep available when writing a carrier")
	flags.String("loglevel", cfg.LogLevel, "log level (debug, info, warn, error, dpanic, panic, fatal)")
}

// loadConfig merges defaults, the config file and CLI flags, in increasing priority.
func loadConfig(flags *pflag.FlagSet) error {
	vip := viper.New()

	if cfgFile != "" {
		vip.SetConfigFile(smutil.GetCanonicalPath(cfgFile))
		if err := vip.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := vip.BindPFlags(flags); err != nil {
		return err
	}

	loaded := config.DefaultConfig()
	if err := vip.Unmarshal(loaded); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	loaded.DataDir = smutil.GetCanonicalPath(loaded.DataDir)

	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	l, err := shared.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	zapLog = l
	logger = shared.NewZapLogger(l)
	flags.Visit(func(f *pflag.Flag) {
		logger.Debug("flag: --%v=%v", f.Name, f.Value)
	})
	logger.Debug("config: %+v", *cfg)

	return nil
}

var errMissingPayload = errors.New("exactly one of --message or --file is required")
