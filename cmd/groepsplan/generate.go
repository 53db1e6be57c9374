package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/groepsplan/internal/compliance"
	"github.com/jonathan/groepsplan/internal/observability"
	"github.com/jonathan/groepsplan/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a groepsplan with the LLM",
	Long: "Build the prompt for an inputs file, generate the plan, regenerate drafts that are incomplete " +
		"or not in Dutch, and report compliance and quality.",
	RunE: runGenerate,
}

var (
	generateInput      string
	generateKind       string
	generateExperiment string
	generateVariant    string
	generateOutput     string
	generateJSON       bool
	generateQuiet      bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "in", "i", "", "Path to inputs JSON file")
	generateCmd.Flags().StringVar(&generateKind, "kind", kindScratch, "Input kind: scratch or upload")
	generateCmd.Flags().StringVar(&generateExperiment, "experiment", "", "Experiment id (defaults to generation.experiment)")
	generateCmd.Flags().StringVar(&generateVariant, "variant", "", "Variant name (requires an experiment)")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Write the markdown to this file")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Print the full result as JSON")
	generateCmd.Flags().BoolVarP(&generateQuiet, "quiet", "q", false, "Do not print progress")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	req, err := readRequest(generateInput, generateKind)
	if err != nil {
		return err
	}
	req.Experiment = generateExperiment
	req.Variant = generateVariant
	if !generateQuiet {
		req.OnProgress = func(e pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", e.Step, e.Message)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.New(pipeline.Options{
		Client:      client,
		Tier:        cfg.LLM.Tier,
		MaxAttempts: cfg.Generation.MaxAttempts,
		Mode:        compliance.ModeFromStrict(cfg.Compliance.Strict),
		Experiment:  cfg.Generation.Experiment,
		Timeout:     cfg.Generation.Timeout,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	res, err := p.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if generateJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	if generateOutput != "" {
		if err := writeOutput(cmd.OutOrStdout(), generateOutput, res.RawText); err != nil {
			return err
		}
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintGeneration(res)
	printer.PrintCompliance(res.Document.ComplianceChecks)
	printer.PrintQuality(res.Quality)
	if generateOutput == "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", res.RawText)
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", generateOutput)
	}
	return nil
}
