package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/groepsplan/internal/config"
	"github.com/jonathan/groepsplan/internal/llm"
	"github.com/jonathan/groepsplan/internal/logging"
	"github.com/jonathan/groepsplan/internal/pipeline"
	"github.com/jonathan/groepsplan/internal/schemas"
	"github.com/jonathan/groepsplan/internal/types"
	"github.com/jonathan/groepsplan/internal/validation"
)

// Input kinds accepted by --kind.
const (
	kindScratch = "scratch"
	kindUpload  = "upload"
)

// newLLMClient creates the model client. Tests replace it with a mock.
var newLLMClient = func(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set GROEPSPLAN_LLM_API_KEY or GEMINI_API_KEY)")
	}
	return llm.NewClient(ctx, cfg.LLM.ModelConfig(), cfg.LLM.APIKey)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *zap.Logger {
	logger, err := logging.New(cfg.Log.Mode)
	if err != nil {
		return logging.Nop()
	}
	return logger
}

// readRequest reads an inputs JSON file of the given kind, checks it against its schema
// and the input rules, and returns it as a pipeline request.
func readRequest(path, kind string) (pipeline.Request, error) {
	if path == "" {
		return pipeline.Request{}, fmt.Errorf("--in is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("failed to read input file: %w", err)
	}

	switch kind {
	case kindScratch:
		if err := schemas.Validate(schemas.ScratchInputs, data); err != nil {
			return pipeline.Request{}, err
		}
		var in types.ScratchInputs
		if err := json.Unmarshal(data, &in); err != nil {
			return pipeline.Request{}, fmt.Errorf("failed to parse input file: %w", err)
		}
		if err := validation.ValidateScratch(in); err != nil {
			return pipeline.Request{}, err
		}
		return pipeline.Request{Scratch: &in}, nil
	case kindUpload:
		if err := schemas.Validate(schemas.UploadInputs, data); err != nil {
			return pipeline.Request{}, err
		}
		var in types.UploadPromptInputs
		if err := json.Unmarshal(data, &in); err != nil {
			return pipeline.Request{}, fmt.Errorf("failed to parse input file: %w", err)
		}
		if err := validation.ValidateUpload(in); err != nil {
			return pipeline.Request{}, err
		}
		return pipeline.Request{Upload: &in}, nil
	default:
		return pipeline.Request{}, fmt.Errorf("unknown --kind %q (want %s or %s)", kind, kindScratch, kindUpload)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeOutput writes content to path, or to w when path is empty.
func writeOutput(w io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(w, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
