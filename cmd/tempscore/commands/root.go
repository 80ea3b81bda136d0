package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	providersFile string
	verbose       bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tempscore",
	Short: "Portfolio temperature scoring service",
	Long: `tempscore computes portfolio-level temperature scores.

It resolves emissions-reduction targets from configured data providers,
validates them, scores every company/scope/time-frame combination and
aggregates the scores into portfolio statistics with a coverage metric.

Examples:
  tempscore serve
  tempscore score --portfolio portfolio.json
  tempscore providers`,
}

// Execute runs the root command. It is called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&providersFile, "providers", "", "providers config file (default from PROVIDERS_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
