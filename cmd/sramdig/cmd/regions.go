package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sramdig/sramdig/pkg/region"
	"github.com/sramdig/sramdig/pkg/report"
)

// regionsCmd represents the regions command
var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Partition the main chunk into blank and data regions",
	Long: `Partition the save image's main chunk into blank filler runs and data
regions, tagging each region with the landmarks it contains.

Example:
  sramdig --save race.srm regions --min-run 16`,
	RunE: func(cmd *cobra.Command, args []string) error {
		img, l, ok := analysisFrom(cmd)
		if !ok {
			return fmt.Errorf("save image not loaded")
		}

		minRun, _ := cmd.Flags().GetInt("min-run")
		if minRun <= 0 {
			minRun = l.MinBlankRun
		}

		infos := region.Summary(img.Bytes(), l.MainChunk, l.BlankByte, minRun, l.Landmarks)
		cmd.Print(report.RenderRegions(infos))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
	regionsCmd.Flags().Int("min-run", 0, "Minimum filler run length to count as blank (default from layout)")
}
