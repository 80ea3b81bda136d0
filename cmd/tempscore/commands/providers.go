package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// providersCmd lists the configured data providers and their health.
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List configured data providers",
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	for _, p := range a.registry.All() {
		probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		status := "ok"
		if err := p.Health(probeCtx); err != nil {
			status = fmt.Sprintf("unavailable (%v)", err)
		}
		cancel()

		fmt.Printf("%-20s %-10s %s\n", p.Name(), p.Type(), status)
	}

	return nil
}
