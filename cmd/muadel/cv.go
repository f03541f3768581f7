package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muadel/muadel/domain/cv"
)

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Manage the CV profile and render the document",
	Long: `Manage the stored CV profile.

The profile is imported and exported as JSON; render produces the styled
HTML document.

Examples:
  muadel cv import profile.json
  muadel cv export
  muadel cv render --out cv.html`,
}

var cvImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a profile from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCVImport,
}

var cvExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the stored profile as JSON",
	RunE:  runCVExport,
}

var cvRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the profile to an HTML document",
	RunE:  runCVRender,
}

var cvOutPath string

func init() {
	rootCmd.AddCommand(cvCmd)

	cvCmd.AddCommand(cvImportCmd)
	cvCmd.AddCommand(cvExportCmd)
	cvCmd.AddCommand(cvRenderCmd)

	cvRenderCmd.Flags().StringVar(&cvOutPath, "out", "cv.html", "output file path")
}

func runCVImport(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var profile cv.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return fmt.Errorf("parse profile: %w", err)
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Shutdown()

	if err := app.CV.Save(cmd.Context(), profile); err != nil {
		return err
	}
	fmt.Println("Profile imported.")
	return nil
}

func runCVExport(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Shutdown()

	profile, err := app.CV.Profile(cmd.Context())
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runCVRender(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Shutdown()

	doc, err := app.CV.Render(cmd.Context())
	if err != nil {
		return err
	}
	if err := os.WriteFile(cvOutPath, []byte(doc), 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", cvOutPath)
	return nil
}
