package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sramdig/sramdig/pkg/layout"
)

// layoutCmd groups layout-file operations
var layoutCmd = &cobra.Command{
	Use:         "layout",
	Short:       "Inspect and manage layout files",
	Annotations: map[string]string{"skipLoad": "true"},
}

// layoutInitCmd represents the layout init command
var layoutInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write the built-in layout to a yaml file",
	Long: `Write the built-in save-image layout to a yaml file as a starting
point for describing an alternate save format.

Example:
  sramdig layout init ./my-layout.yaml`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{"skipLoad": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := layout.Save(layout.Default(), args[0]); err != nil {
			return err
		}
		cmd.Printf("Wrote layout to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.AddCommand(layoutInitCmd)
}
