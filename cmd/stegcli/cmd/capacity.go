package cmd

import (
	"fmt"
	"strconv"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/steg"
	"github.com/spacemeshos/steg/imageio"
)

// capacityCmd represents the capacity command.
var capacityCmd = &cobra.Command{
	Use:   "capacity <image>...",
	Short: "Print how much data images can hold",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data := make([][]string, 0, len(args))
		for _, path := range args {
			grid, err := imageio.Load(path)
			if err != nil {
				return err
			}

			maxPayload := steg.MaxPayload(grid)
			data = append(data, []string{
				path,
				fmt.Sprintf("%dx%d", grid.Width, grid.Height),
				strconv.FormatUint(steg.Capacity(grid), 10),
				strconv.FormatUint(maxPayload, 10),
				bytefmt.ByteSize(maxPayload),
			})
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"image", "size", "slots", "max payload", "human"})
		table.SetBorder(true)
		table.AppendBulk(data)
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}
