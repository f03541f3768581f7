package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Show or switch the active grade scale",
	Long: `Show or switch the active grade scale ("5" or "4").

The choice persists across sessions. Saved semesters keep the scale they
were computed under; the cumulative average only aggregates semesters on
the active scale.`,
}

var scaleShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active scale",
	RunE:  runScaleShow,
}

var scaleSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Switch the active scale",
	Args:  cobra.ExactArgs(1),
	RunE:  runScaleSet,
}

func init() {
	rootCmd.AddCommand(scaleCmd)
	scaleCmd.AddCommand(scaleShowCmd)
	scaleCmd.AddCommand(scaleSetCmd)
}

func runScaleShow(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Shutdown()

	scale := app.Calculator.Scale()
	fmt.Printf("Active scale: %s (max %.1f)\n", scale.ID, scale.Max)
	return nil
}

func runScaleSet(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Shutdown()

	if err := app.Calculator.SetScale(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Active scale set to %s\n", args[0])
	return nil
}
