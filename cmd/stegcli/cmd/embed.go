package cmd

import (
	"errors"
	"fmt"
	"os"

	"code.cloudfoundry.org/bytefmt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spacemeshos/steg"
	"github.com/spacemeshos/steg/imageio"
	"github.com/spacemeshos/steg/persistence"
	"github.com/spacemeshos/steg/shared"
)

var embedOpts struct {
	in      string
	out     string
	message string
	file    string
}

// embedCmd represents the embed command.
var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Hide a message or file in an image",
	Long: `Embed writes the payload, prefixed with its 32-bit length, into the
least-significant bits of the input image's channels and saves the result as PNG.
The payload must fit: 32 + 8 * payload bytes <= width * height * 3.
An empty --message embeds an empty payload.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readPayload(cmd.Flags())
		if err != nil {
			return err
		}

		grid, err := imageio.Load(embedOpts.in)
		if err != nil {
			return err
		}

		s := steg.New(steg.WithLogger(logger))
		if err := s.Embed(grid, payload); err != nil {
			var cerr *shared.CapacityError
			if errors.As(err, &cerr) {
				return fmt.Errorf("%w; %v can hold at most %v", err, embedOpts.in, bytefmt.ByteSize(steg.MaxPayload(grid)))
			}
			return err
		}

		out := embedOpts.out
		if out == "" {
			out = cfg.OutputPath()
		}
		if err := imageio.NewSaver(cfg, logger).Save(out, grid); err != nil {
			return err
		}

		if cfg.WriteReceipt {
			receipt := persistence.NewReceipt(grid, payload)
			if err := persistence.SaveReceipt(persistence.ReceiptPath(out), receipt); err != nil {
				return err
			}
			logger.Debug("receipt: %d/%d slots used (%.2f%%)",
				receipt.SlotsUsed, steg.Capacity(grid), receipt.Utilization()*100)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Image encoded: %v\n", out)
		return nil
	},
}

// readPayload returns the payload given by --message or --file. An explicitly
// empty --message embeds an empty payload.
func readPayload(flags *pflag.FlagSet) ([]byte, error) {
	hasMessage, hasFile := flags.Changed("message"), flags.Changed("file")
	switch {
	case hasMessage && hasFile:
		return nil, errMissingPayload
	case hasMessage:
		if uint64(len(embedOpts.message)) > cfg.MaxPayloadSize {
			return nil, fmt.Errorf("%w; expected: <= %d bytes, given: %d", shared.ErrPayloadTooLarge, cfg.MaxPayloadSize, len(embedOpts.message))
		}
		return []byte(embedOpts.message), nil
	case hasFile:
		info, err := os.Stat(embedOpts.file)
		if err != nil {
			return nil, err
		}
		if uint64(info.Size()) > cfg.MaxPayloadSize {
			return nil, fmt.Errorf("%w; expected: <= %d bytes, given: %d", shared.ErrPayloadTooLarge, cfg.MaxPayloadSize, info.Size())
		}
		return os.ReadFile(embedOpts.file)
	default:
		return nil, errMissingPayload
	}
}

func init() {
	rootCmd.AddCommand(embedCmd)

	embedCmd.Flags().StringVarP(&embedOpts.in, "in", "i", "", "input image (png, jpeg or gif)")
	embedCmd.Flags().StringVarP(&embedOpts.out, "out", "o", "", "output image (default <datadir>/stego_image.png)")
	embedCmd.Flags().StringVarP(&embedOpts.message, "message", "m", "", "message to hide")
	embedCmd.Flags().StringVarP(&embedOpts.file, "file", "f", "", "file to hide")
	_ = embedCmd.MarkFlagRequired("in")
}
