package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muadel/muadel/app"
)

var assistantCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Generate assisted text for the CV and job features",
	Long: `Generate text through the completion proxy, subject to the
daily quota. Repeated prompts are answered from the response cache
without spending quota.

Features: summary, coverLetter, jobMatch (premium).

Examples:
  muadel assistant generate --feature summary --prompt "خريج علوم حاسب، معدل 4.33"
  muadel assistant generate --feature coverLetter --prompt "وظيفة مطور برمجيات في الرياض"`,
}

var assistantGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate text for a feature",
	RunE:  runAssistantGenerate,
}

var (
	assistantFeature string
	assistantPrompt  string
	assistantUser    string
)

func init() {
	rootCmd.AddCommand(assistantCmd)
	assistantCmd.AddCommand(assistantGenerateCmd)

	assistantGenerateCmd.Flags().StringVar(&assistantFeature, "feature", "", "feature name (required)")
	assistantGenerateCmd.Flags().StringVar(&assistantPrompt, "prompt", "", "prompt text (required)")
	assistantGenerateCmd.Flags().StringVar(&assistantUser, "user", "local", "user ID for the entitlement check")
	assistantGenerateCmd.MarkFlagRequired("feature")
	assistantGenerateCmd.MarkFlagRequired("prompt")
}

func runAssistantGenerate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Shutdown()

	res, err := a.Assistant.Generate(cmd.Context(), assistantUser, assistantFeature, assistantPrompt)
	switch {
	case errors.Is(err, app.ErrQuotaExceeded):
		return fmt.Errorf("daily quota for %s is used up, try again tomorrow or upgrade", assistantFeature)
	case errors.Is(err, app.ErrPremiumRequired):
		return fmt.Errorf("%s requires a premium subscription", assistantFeature)
	case err != nil:
		return err
	}

	fmt.Println(res.Content)
	if res.Fallback {
		fmt.Println("\n(offline default; the assistant service was unreachable)")
	}
	return nil
}
