package cmd

import (
	"fmt"

	"github.com/theirongolddev/gastos/internal/config"
	"github.com/theirongolddev/gastos/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	cfg, err = tui.RunSetup(cfg)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Printf("  Service: %s\n", cfg.API.BaseURL)
	fmt.Println()
	fmt.Println("  Next: gastos login, or gastos tui for the dashboard.")
	return nil
}
