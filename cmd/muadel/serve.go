package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muadel/muadel/bootstrap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run with the diagnostics endpoint and config hot reload",
	Long: `Run the application resident: the config file is watched for
changes (SIGHUP also triggers a reload) and, when enabled, a diagnostics
HTTP endpoint serves /healthz and Prometheus metrics.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.New(cfgFile)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	return app.Run()
}
