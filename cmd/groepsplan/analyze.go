package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/groepsplan/internal/compliance"
	"github.com/jonathan/groepsplan/internal/observability"
	"github.com/jonathan/groepsplan/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Parse a groepsplan and check it against the inspection dimensions",
	Long:  "Parse a markdown groepsplan into sections and metadata, score it on the six inspection dimensions and run the quality checks.",
	RunE:  runAnalyze,
}

var (
	analyzeInput  string
	analyzeStrict bool
	analyzeJSON   bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "in", "i", "", "Path to markdown file")
	analyzeCmd.Flags().BoolVar(&analyzeStrict, "strict", false, "Use the strict compliance threshold")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the analysis as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analyzeInput == "" {
		return fmt.Errorf("--in is required")
	}
	content, err := os.ReadFile(analyzeInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	analysis := pipeline.Analyze(string(content), compliance.ModeFromStrict(analyzeStrict))
	if analyzeJSON {
		return writeJSON(cmd.OutOrStdout(), analysis)
	}

	p := observability.NewPrinter(cmd.OutOrStdout())
	p.PrintSections(analysis.Document)
	p.PrintCompliance(analysis.Document.ComplianceChecks)
	p.PrintQuality(analysis.Quality)
	for _, fe := range analysis.SchemaErrors {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: schema: %s: %s\n", fe.Field, fe.Message)
	}
	return nil
}
