package cmd

import (
	"fmt"

	"github.com/theirongolddev/gastos/internal/config"
	"github.com/theirongolddev/gastos/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagAPIURL != "" {
		cfg.API.BaseURL = flagAPIURL
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [API]")
	fmt.Printf("    Base URL: %s\n", cfg.API.BaseURL)
	if cfg.API.TimeoutSec > 0 {
		fmt.Printf("    Timeout:  %ds\n", cfg.API.TimeoutSec)
	} else {
		fmt.Println("    Timeout:  none")
	}
	fmt.Println()

	statePath := cfg.General.StatePath
	if statePath == "" {
		statePath = store.DefaultPath()
	}
	fmt.Println("  [General]")
	fmt.Printf("    State:       %s\n", statePath)
	fmt.Printf("    Date format: %s\n", cfg.General.DateFormat)
	fmt.Printf("    Currency:    %s\n", cfg.General.Currency)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Printf("    File:  %s\n", cfg.LogFile())
	fmt.Println()

	fmt.Println("  [Watch]")
	fmt.Printf("    Address:  %s\n", cfg.Watch.Addr)
	fmt.Printf("    Interval: %ds\n", cfg.Watch.IntervalSec)
	fmt.Printf("    Events:   %d\n", cfg.Watch.EventsBuffer)
	fmt.Println()

	fmt.Println("  Run `gastos setup` to reconfigure.")
	return nil
}
