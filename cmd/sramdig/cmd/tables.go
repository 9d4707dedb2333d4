package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sramdig/sramdig/pkg/report"
	"github.com/sramdig/sramdig/pkg/table"
)

// tablesCmd represents the tables command
var tablesCmd = &cobra.Command{
	Use:   "tables [name]",
	Short: "Decode the known record tables",
	Long: `Decode one named table, or every configured table when no name is
given, and print the entries with names and formatted times.

Example:
  sramdig --save race.srm tables championship`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, l, ok := analysisFrom(cmd)
		if !ok {
			return fmt.Errorf("save image not loaded")
		}

		names := l.TableNames()
		if len(args) == 1 {
			names = args[:1]
		}

		for _, name := range names {
			spec, ok := l.Table(name)
			if !ok {
				return fmt.Errorf("unknown table %q (have: %v)", name, l.TableNames())
			}
			entries, err := table.Decode(img.Bytes(), spec)
			if err != nil {
				return fmt.Errorf("failed to decode %q: %w", name, err)
			}
			cmd.Print(report.RenderEntries(name, entries))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
