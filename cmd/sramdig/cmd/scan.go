package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sramdig/sramdig/pkg/detect"
	"github.com/sramdig/sramdig/pkg/report"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a byte range for plausible time windows",
	Long: `Scan a range of the main chunk for byte windows that plausibly encode
a race time, using the duplicate-triplet and record-layout heuristics,
and print the selected overlay per row. Findings are hypotheses for
manual verification, not confirmed decodes.

Offsets accept decimal or 0x-prefixed hex.

Example:
  sramdig --save race.srm scan --start 0x0947 --end 0x0B00`,
	RunE: func(cmd *cobra.Command, args []string) error {
		img, l, ok := analysisFrom(cmd)
		if !ok {
			return fmt.Errorf("save image not loaded")
		}

		bounds := l.MainChunk
		var err error
		if bounds.Start, err = offsetFlag(cmd, "start", bounds.Start); err != nil {
			return err
		}
		if bounds.End, err = offsetFlag(cmd, "end", bounds.End); err != nil {
			return err
		}
		if bounds.Start < l.MainChunk.Start || bounds.End > l.MainChunk.End {
			return fmt.Errorf("scan bounds %s outside main chunk %s (the mirror is never scanned)", bounds, l.MainChunk)
		}

		opts := detect.DefaultOptions()
		opts.RowWidth = l.RowWidth
		if v, _ := cmd.Flags().GetInt("row-width"); v > 0 {
			opts.RowWidth = v
		}
		if v, _ := cmd.Flags().GetInt("min-cs"); v > 0 {
			opts.MinCentis = v
		}
		if v, _ := cmd.Flags().GetInt("max-cs"); v > 0 {
			opts.MaxCentis = v
		}

		overlays := detect.Scan(img.Bytes(), bounds, opts)
		if len(overlays) == 0 {
			cmd.Println("no candidates")
			return nil
		}
		cmd.Print(report.RenderOverlays(overlays))
		return nil
	},
}

// offsetFlag parses a decimal or 0x-prefixed hex offset flag, keeping
// fallback when the flag is unset.
func offsetFlag(cmd *cobra.Command, name string, fallback int) (int, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s offset %q", name, raw)
	}
	return int(v), nil
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().String("start", "", "Scan start offset (default: main chunk start)")
	scanCmd.Flags().String("end", "", "Scan end offset (default: main chunk end)")
	scanCmd.Flags().Int("row-width", 0, "Row width in bytes (default from layout)")
	scanCmd.Flags().Int("min-cs", 0, "Lower plausibility bound in centiseconds")
	scanCmd.Flags().Int("max-cs", 0, "Upper plausibility bound in centiseconds")
}
