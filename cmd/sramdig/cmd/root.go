package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sramdig/sramdig/pkg/di"
	"github.com/sramdig/sramdig/pkg/layout"
	"github.com/sramdig/sramdig/pkg/savefile"
)

// context keys for the loaded analysis inputs
type ctxKey string

const (
	ctxImage  ctxKey = "image"
	ctxLayout ctxKey = "layout"
)

var container *di.Container

// SetContainer injects the dependency container from main.
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sramdig",
	Short: "sramdig - save-image leaderboard decoder and scanner",
	Long: `sramdig decodes the leaderboard tables of a fixed-layout save-image
dump and heuristically scans its unmapped regions for byte windows that
plausibly encode race times.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that only manipulate layout files run without a dump.
		if cmd.Annotations["skipLoad"] == "true" {
			return nil
		}

		layoutPath, _ := cmd.Flags().GetString("layout")
		savePath, _ := cmd.Flags().GetString("save")

		l := layout.Default()
		if layoutPath != "" {
			var err error
			if l, err = layout.Load(layoutPath); err != nil {
				return fmt.Errorf("failed to load layout: %w", err)
			}
		}

		if savePath == "" {
			return fmt.Errorf("--save is required")
		}
		img, err := savefile.Load(savePath)
		if err != nil {
			return fmt.Errorf("failed to load save image: %w", err)
		}
		if !img.CoversMainChunk(l) {
			return fmt.Errorf("image is %d bytes, smaller than the main chunk %s", img.Len(), l.MainChunk)
		}

		ctx := context.WithValue(cmd.Context(), ctxImage, img)
		ctx = context.WithValue(ctx, ctxLayout, l)
		cmd.SetContext(ctx)
		return nil
	},
}

// analysisFrom pulls the loaded image and layout out of the command
// context.
func analysisFrom(cmd *cobra.Command) (*savefile.Image, *layout.Layout, bool) {
	img, ok := cmd.Context().Value(ctxImage).(*savefile.Image)
	if !ok {
		return nil, nil, false
	}
	l, ok := cmd.Context().Value(ctxLayout).(*layout.Layout)
	if !ok {
		return nil, nil, false
	}
	return img, l, true
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("save", "s", "", "Path to the save-image dump")
	rootCmd.PersistentFlags().StringP("layout", "l", "", "Path to a layout yaml overriding the built-in one")
}
