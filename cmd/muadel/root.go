package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muadel/muadel/bootstrap"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "muadel",
	Short: "GPA calculator with a CV builder and gated AI assistance",
	Long: `Muadel computes semester and cumulative GPAs on the 5-point and
4-point Saudi university scales, keeps a semester history, builds a CV
document, and fronts an AI text assistant with a daily usage quota.

Quick start:
  muadel gpa compute -r "تفاضل:3:A" -r "فيزياء:4:B+"
  muadel semesters list
  muadel serve      # diagnostics endpoint + config hot reload

Management:
  muadel usage      # View today's quota
  muadel cv         # Manage the CV profile
  muadel validate   # Validate configuration`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "muadel.yaml", "config file path")
}

// openApp wires the full application for one-shot commands. Callers must
// Shutdown when done.
func openApp() (*bootstrap.App, error) {
	path := cfgFile
	if _, err := os.Stat(path); err != nil {
		// Fall back to env-only config when the default file is absent.
		path = ""
	}
	return bootstrap.New(path)
}
