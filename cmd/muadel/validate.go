package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muadel/muadel/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	fmt.Println("Configuration valid")
	fmt.Printf("  Scale:         %s\n", cfg.Scale.Active)
	fmt.Printf("  Default limit: %d/day\n", cfg.Ledger.DefaultLimit)
	fmt.Printf("  Entitlements:  %s\n", cfg.Entitlements.Mode)
	fmt.Printf("  Database:      %s\n", cfg.Database.Path)
	if cfg.Assistant.ProxyURL != "" {
		fmt.Printf("  Proxy:         %s\n", cfg.Assistant.ProxyURL)
	} else {
		fmt.Println("  Proxy:         (offline defaults)")
	}
	return nil
}
