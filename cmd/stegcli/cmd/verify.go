package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/steg"
	"github.com/spacemeshos/steg/imageio"
	"github.com/spacemeshos/steg/persistence"
)

var verifyOpts struct {
	in      string
	receipt string
}

// verifyCmd represents the verify command.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a carrier against its embed receipt",
	Long: `Verify extracts the payload of a carrier and compares its dimensions, length
and SHA-256 digest with the receipt written by embed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		receiptPath := verifyOpts.receipt
		if receiptPath == "" {
			receiptPath = persistence.ReceiptPath(verifyOpts.in)
		}
		receipt, err := persistence.LoadReceipt(receiptPath)
		if err != nil {
			return fmt.Errorf("%v: %w", receiptPath, err)
		}

		grid, err := imageio.Load(verifyOpts.in)
		if err != nil {
			return err
		}

		payload, err := steg.New(steg.WithLogger(logger)).Extract(grid)
		if err != nil {
			return err
		}

		if err := receipt.Verify(grid, payload); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d bytes, %.2f%% of capacity\n",
			receipt.PayloadLength, receipt.Utilization()*100)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&verifyOpts.in, "in", "i", "", "carrier image")
	verifyCmd.Flags().StringVarP(&verifyOpts.receipt, "receipt-file", "r", "", "receipt file (default <in>.receipt)")
	_ = verifyCmd.MarkFlagRequired("in")
}
