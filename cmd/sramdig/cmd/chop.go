package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sramdig/sramdig/pkg/region"
)

// chopCmd represents the chop command
var chopCmd = &cobra.Command{
	Use:   "chop <label>",
	Short: "Bound the region forward from a landmark",
	Long: `Bound an inspection window starting at the named landmark and running
until the next sufficiently long run of filler bytes, so the window does
not overrun into an adjacent table.

Example:
  sramdig --save race.srm chop "track 1 top 3"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, l, ok := analysisFrom(cmd)
		if !ok {
			return fmt.Errorf("save image not loaded")
		}

		for _, lm := range l.Landmarks {
			if lm.Label != args[0] {
				continue
			}
			r := region.LandmarkRegion(img.Bytes(), l.MainChunk, lm, l.BlankByte, l.MinBlankRun)
			cmd.Printf("%s  %s  %d bytes\n", lm.Label, r, r.Len())
			return nil
		}

		labels := make([]string, 0, len(l.Landmarks))
		for _, lm := range l.Landmarks {
			labels = append(labels, lm.Label)
		}
		return fmt.Errorf("unknown landmark %q (have: %v)", args[0], labels)
	},
}

func init() {
	rootCmd.AddCommand(chopCmd)
}
