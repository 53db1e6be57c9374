package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/groepsplan/internal/pipeline"
)

var buildPromptCmd = &cobra.Command{
	Use:   "build-prompt",
	Short: "Build the generation prompt for an inputs file",
	Long: "Build the prompt for scratch wizard answers or upload inputs. With --experiment the variant is " +
		"assigned from the inputs unless --variant names one.",
	RunE: runBuildPrompt,
}

var (
	buildPromptInput      string
	buildPromptKind       string
	buildPromptExperiment string
	buildPromptVariant    string
	buildPromptOutput     string
	buildPromptJSON       bool
)

func init() {
	buildPromptCmd.Flags().StringVarP(&buildPromptInput, "in", "i", "", "Path to inputs JSON file")
	buildPromptCmd.Flags().StringVar(&buildPromptKind, "kind", kindScratch, "Input kind: scratch or upload")
	buildPromptCmd.Flags().StringVar(&buildPromptExperiment, "experiment", "", "Experiment id")
	buildPromptCmd.Flags().StringVar(&buildPromptVariant, "variant", "", "Variant name (requires --experiment)")
	buildPromptCmd.Flags().StringVarP(&buildPromptOutput, "out", "o", "", "Write the prompt to this file instead of stdout")
	buildPromptCmd.Flags().BoolVar(&buildPromptJSON, "json", false, "Print prompt, experiment and variant as JSON")

	rootCmd.AddCommand(buildPromptCmd)
}

func runBuildPrompt(cmd *cobra.Command, _ []string) error {
	req, err := readRequest(buildPromptInput, buildPromptKind)
	if err != nil {
		return err
	}

	prompt, err := pipeline.BuildPrompt(req.Inputs(), buildPromptExperiment, buildPromptVariant)
	if err != nil {
		return fmt.Errorf("failed to build prompt: %w", err)
	}

	if buildPromptJSON {
		return writeJSON(cmd.OutOrStdout(), prompt)
	}
	if err := writeOutput(cmd.OutOrStdout(), buildPromptOutput, prompt.Text); err != nil {
		return err
	}
	if prompt.Variant != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Variant: %s / %s\n", prompt.Experiment, prompt.Variant)
	}
	return nil
}
