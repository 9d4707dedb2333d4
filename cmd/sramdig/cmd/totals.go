package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sramdig/sramdig/pkg/report"
	"github.com/sramdig/sramdig/pkg/table"
)

// totalsCmd represents the totals command
var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Sum decoded times per player across every table",
	Long: `Decode every configured table and aggregate the times per 3-character
player name, sorted by combined total.

Example:
  sramdig --save race.srm totals`,
	RunE: func(cmd *cobra.Command, args []string) error {
		img, l, ok := analysisFrom(cmd)
		if !ok {
			return fmt.Errorf("save image not loaded")
		}

		decoded, err := table.DecodeAll(img.Bytes(), l.Tables)
		if err != nil {
			return fmt.Errorf("failed to decode tables: %w", err)
		}

		var all []table.Entry
		for _, name := range l.TableNames() {
			all = append(all, decoded[name]...)
		}
		cmd.Print(report.RenderTotals(report.PlayerTotals(all)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(totalsCmd)
}
