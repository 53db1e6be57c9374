package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/groepsplan/internal/ingestion"
	"github.com/jonathan/groepsplan/internal/observability"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract text and prefill fields from a previous plan",
	Long: "Read a previous groepsplan (.md, .txt, .html or .xlsx), convert it to text and prefill the upload " +
		"fields. With --enrich the LLM fills the fields the parser could not find.",
	RunE: runExtract,
}

var (
	extractInput  string
	extractEnrich bool
	extractJSON   bool
	extractText   bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInput, "in", "i", "", "Path to the previous plan")
	extractCmd.Flags().BoolVar(&extractEnrich, "enrich", false, "Fill missing fields with the LLM")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Print the extraction as JSON")
	extractCmd.Flags().BoolVar(&extractText, "text", false, "Also print the extracted text")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	if extractInput == "" {
		return fmt.Errorf("--in is required")
	}
	ext, err := ingestion.ExtractFile(extractInput)
	if err != nil {
		return err
	}

	if extractEnrich && !ext.Prefill.Complete() {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := context.Background()
		client, err := newLLMClient(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()

		if err := ext.Enrich(ctx, client); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: enrichment failed: %v\n", err)
		}
	}

	if extractJSON {
		return writeJSON(cmd.OutOrStdout(), ext)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintExtraction(ext)
	if extractText {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", ext.Text)
	}
	return nil
}
