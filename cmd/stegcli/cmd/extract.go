package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/steg"
	"github.com/spacemeshos/steg/imageio"
	"github.com/spacemeshos/steg/shared"
)

var extractOpts struct {
	in  string
	out string
}

// extractCmd represents the extract command.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Recover the payload hidden in an image",
	Long: `Extract reads the least-significant bits of every channel of the input image,
parses the 32-bit length prefix and returns exactly the declared payload.
Without --out the payload is written to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		grid, err := imageio.Load(extractOpts.in)
		if err != nil {
			return err
		}

		payload, err := steg.New(steg.WithLogger(logger)).Extract(grid)
		if err != nil {
			return err
		}

		if extractOpts.out == "" {
			_, err := cmd.OutOrStdout().Write(payload)
			return err
		}

		if err := os.WriteFile(extractOpts.out, payload, shared.OwnerReadWrite); err != nil {
			return fmt.Errorf("write to disk failure: %w", err)
		}
		logger.Info("extracted %d bytes to %v", len(payload), extractOpts.out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOpts.in, "in", "i", "", "carrier image")
	extractCmd.Flags().StringVarP(&extractOpts.out, "out", "o", "", "file to write the payload to")
	_ = extractCmd.MarkFlagRequired("in")
}
