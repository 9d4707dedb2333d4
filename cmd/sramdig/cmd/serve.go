package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sramdig/sramdig/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP inspection server",
	Long: `Start an HTTP server exposing the loaded save image for inspection:
decoded tables, region summaries, scan overlays and player totals, plus
Prometheus metrics on /metrics.

Examples:
  sramdig --save race.srm serve --port 8080
  sramdig --save race.srm serve --api-key mysecret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		img, l, ok := analysisFrom(cmd)
		if !ok {
			return fmt.Errorf("save image not loaded")
		}

		port, _ := cmd.Flags().GetInt("port")
		apiKey, _ := cmd.Flags().GetString("api-key")

		if off, err := img.VerifyMirror(l); err != nil {
			cmd.Printf("Warning: mirror not verified: %v\n", err)
		} else if off >= 0 {
			cmd.Printf("Warning: mirror diverges from main chunk at 0x%04X\n", off)
		}

		analysis := api.Analysis{Image: img, Layout: l}
		config := api.ServerConfig{Port: port, APIKey: apiKey}

		starter := container.GetServerStarter()
		if err := starter(analysis, config); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("api-key", "", "API key protecting the analysis routes (empty disables auth)")
}
