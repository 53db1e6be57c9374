// Package pipeline orchestrates a groepsplan generation: prompt, model call, parse and scoring.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/groepsplan/internal/compliance"
	"github.com/jonathan/groepsplan/internal/db"
	"github.com/jonathan/groepsplan/internal/llm"
	"github.com/jonathan/groepsplan/internal/logging"
	"github.com/jonathan/groepsplan/internal/metrics"
	"github.com/jonathan/groepsplan/internal/prompts"
	"github.com/jonathan/groepsplan/internal/schemas"
	"github.com/jonathan/groepsplan/internal/types"
	"github.com/jonathan/groepsplan/internal/validation"
)

// Progress steps
const (
	StepValidate   = "validate"
	StepPrompt     = "prompt"
	StepGenerate   = "generate"
	StepRegenerate = "regenerate"
	StepParse      = "parse"
	StepAnalyze    = "analyze"
	StepSave       = "save"
	StepComplete   = "complete"
)

// Progress categories
const (
	CategoryInput      = "input"
	CategoryGeneration = "generation"
	CategoryAnalysis   = "analysis"
	CategoryStorage    = "storage"
)

// Regeneration reasons, matching the correction prompts.
const (
	ReasonIncomplete = "incomplete"
	ReasonLanguage   = "language"
)

// DefaultMaxAttempts is used when Options.MaxAttempts is not set.
const DefaultMaxAttempts = 3

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Store persists finished generations. *db.DB satisfies it.
type Store interface {
	SaveDocument(ctx context.Context, doc *db.Document) error
}

// Options configures a Pipeline.
type Options struct {
	Client      llm.Client
	Tier        llm.ModelTier
	MaxAttempts int
	Mode        compliance.Mode
	// Experiment is used when a request names none. Empty means no variant.
	Experiment string
	Timeout    time.Duration
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	Store      Store
}

// Pipeline runs generations against one model client.
type Pipeline struct {
	opts   Options
	logger *zap.Logger
}

// New creates a Pipeline. Client is required.
func New(opts Options) (*Pipeline, error) {
	if opts.Client == nil {
		return nil, errors.New("pipeline: llm client is required")
	}
	if opts.Tier == "" {
		opts.Tier = llm.TierAdvanced
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	return &Pipeline{opts: opts, logger: logging.OrNop(opts.Logger)}, nil
}

// Request is a single generation. Exactly one of Scratch and Upload must be set.
type Request struct {
	Scratch    *types.ScratchInputs      `json:"scratch,omitempty"`
	Upload     *types.UploadPromptInputs `json:"upload,omitempty"`
	Experiment string                    `json:"experiment,omitempty"`
	Variant    string                    `json:"variant,omitempty"`
	Kind       string                    `json:"kind,omitempty"`
	TeacherID  string                    `json:"-"`
	OnProgress ProgressCallback          `json:"-"`
}

// Inputs returns whichever of Scratch and Upload is set.
func (r *Request) Inputs() prompts.Inputs {
	if r.Scratch != nil {
		return *r.Scratch
	}
	return *r.Upload
}

// Result is the outcome of a generation.
type Result struct {
	RunID         string                     `json:"run_id"`
	DocumentID    *uuid.UUID                 `json:"document_id,omitempty"`
	Prompt        string                     `json:"prompt"`
	Experiment    string                     `json:"experiment,omitempty"`
	Variant       string                     `json:"variant,omitempty"`
	RawText       string                     `json:"raw_text"`
	Document      *types.ParsedGroepsplan    `json:"document"`
	Quality       []types.QualityCheckResult `json:"quality"`
	SchemaErrors  []schemas.FieldError       `json:"schema_errors,omitempty"`
	Attempts      int                        `json:"attempts"`
	Regenerations []string                   `json:"regenerations,omitempty"`
	// Flags are the heuristics still raised by the final text.
	Flags []string `json:"flags,omitempty"`
}

type run struct {
	id  string
	req *Request
}

func (r *run) emit(step, category, message string, content any) {
	if r.req.OnProgress != nil {
		r.req.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    r.id,
			Content:  content,
		})
	}
}

// Run executes one generation. Input errors are returned as *validation.InputError,
// transport failures on every attempt as *GenerationError.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	r := &run{id: uuid.NewString(), req: &req}
	log := p.logger.With(zap.String("run_id", r.id))

	if err := validateRequest(&req); err != nil {
		p.opts.Metrics.ObserveGeneration(req.Variant, metrics.OutcomeInvalid)
		return nil, err
	}
	r.emit(StepValidate, CategoryInput, "Invoer gevalideerd", nil)

	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	in := req.Inputs()
	experiment := req.Experiment
	if experiment == "" {
		experiment = p.opts.Experiment
	}
	prompt, err := BuildPrompt(in, experiment, req.Variant)
	if err != nil {
		p.opts.Metrics.ObserveGeneration(req.Variant, metrics.OutcomeInvalid)
		return nil, err
	}

	res := &Result{RunID: r.id, Prompt: prompt.Text, Experiment: prompt.Experiment, Variant: prompt.Variant}
	if prompt.Variant != "" {
		log = log.With(zap.String("experiment", prompt.Experiment), zap.String("variant", prompt.Variant))
	}
	r.emit(StepPrompt, CategoryInput, fmt.Sprintf("Prompt opgebouwd (%d tekens)", len(res.Prompt)), map[string]string{
		"experiment": res.Experiment,
		"variant":    res.Variant,
	})

	if err := p.generate(ctx, r, log, res); err != nil {
		p.opts.Metrics.ObserveGeneration(res.Variant, metrics.OutcomeFailed)
		return nil, err
	}

	analysis := Analyze(res.RawText, p.opts.Mode)
	doc, checks := analysis.Document, analysis.Quality
	complianceResult := doc.ComplianceChecks
	res.Document, res.Quality, res.SchemaErrors = doc, checks, analysis.SchemaErrors
	r.emit(StepParse, CategoryAnalysis, fmt.Sprintf("%d onderdelen herkend", len(doc.Sections)), doc.Metadata)
	if len(analysis.SchemaErrors) > 0 {
		log.Warn("parsed document does not match schema", zap.Int("errors", len(analysis.SchemaErrors)))
	}

	failed := types.FailedChecks(checks)
	p.opts.Metrics.ObserveComplianceScore(complianceResult.Overall)
	p.opts.Metrics.ObserveQualityFailures(failed)
	p.opts.Metrics.ObserveGeneration(res.Variant, metrics.OutcomeSuccess)
	r.emit(StepAnalyze, CategoryAnalysis, fmt.Sprintf("Compliance %d/10, inspectieproof: %t", complianceResult.Overall, complianceResult.InspectieProof), map[string]any{
		"compliance": complianceResult,
		"quality":    checks,
	})
	log.Info("generation analysed",
		zap.Int("attempts", res.Attempts),
		zap.Int("compliance", complianceResult.Overall),
		zap.Bool("inspectie_proof", complianceResult.InspectieProof),
		zap.Strings("quality_failed", failed))

	p.save(ctx, r, log, res)

	r.emit(StepComplete, CategoryGeneration, "Groepsplan gereed", res)
	return res, nil
}

// generate calls the model until a text passes the heuristics or attempts run out.
// A flagged text is kept when no better one arrives.
func (p *Pipeline) generate(ctx context.Context, r *run, log *zap.Logger, res *Result) error {
	prompt := res.Prompt
	var (
		lastErr error
		got     bool
	)
	for attempt := 1; attempt <= p.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		res.Attempts = attempt
		r.emit(StepGenerate, CategoryGeneration, fmt.Sprintf("Poging %d van %d", attempt, p.opts.MaxAttempts), nil)

		text, err := p.opts.Client.GenerateContent(ctx, prompt, p.opts.Tier)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			lastErr = err
			log.Warn("model call failed", zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		text = llm.CleanMarkdownBlock(text)
		res.RawText = text
		got = true

		res.Flags = flags(text)
		if len(res.Flags) == 0 {
			return nil
		}
		if attempt == p.opts.MaxAttempts {
			log.Warn("keeping flagged text, attempts exhausted", zap.Strings("flags", res.Flags))
			return nil
		}

		reason := res.Flags[0]
		res.Regenerations = append(res.Regenerations, reason)
		p.opts.Metrics.ObserveRegeneration(reason)
		log.Info("regenerating", zap.Int("attempt", attempt), zap.String("reason", reason))
		r.emit(StepRegenerate, CategoryGeneration, "Tekst wordt opnieuw gegenereerd: "+reason, nil)
		prompt = res.Prompt + prompts.CorrectionSuffix(reason)
	}

	if got {
		return nil
	}
	return &GenerationError{Attempts: res.Attempts, Reason: "model returned no text", Cause: lastErr}
}

func (p *Pipeline) save(ctx context.Context, r *run, log *zap.Logger, res *Result) {
	if p.opts.Store == nil || r.req.TeacherID == "" {
		return
	}
	doc := newDocument(r.req, res)
	if err := p.opts.Store.SaveDocument(ctx, doc); err != nil {
		log.Error("failed to save document", zap.Error(err))
		return
	}
	res.DocumentID = &doc.ID
	r.emit(StepSave, CategoryStorage, "Groepsplan opgeslagen", map[string]string{"id": doc.ID.String()})
}

func newDocument(req *Request, res *Result) *db.Document {
	kind := req.Kind
	if kind == "" {
		kind = db.KindGroepsplan
	}
	doc := &db.Document{
		TeacherID:       req.TeacherID,
		Kind:            kind,
		Groep:           res.Document.Metadata.Groep,
		Vakgebied:       res.Document.Metadata.Vakgebied,
		Prompt:          res.Prompt,
		RawText:         res.RawText,
		Parsed:          res.Document,
		Quality:         res.Quality,
		ComplianceScore: res.Document.ComplianceChecks.Overall,
		InspectieProof:  res.Document.ComplianceChecks.InspectieProof,
		Attempts:        res.Attempts,
	}
	switch {
	case req.Scratch != nil:
		groep, vak := req.Scratch.Groep, string(req.Scratch.Vakgebied)
		doc.Groep, doc.Vakgebied = &groep, &vak
	case req.Upload != nil:
		if req.Upload.Groep > 0 {
			groep := req.Upload.Groep
			doc.Groep = &groep
		}
		vak := req.Upload.NewVakgebied
		doc.Vakgebied = &vak
	}
	if res.Variant != "" {
		exp, variant := res.Experiment, res.Variant
		doc.Experiment, doc.Variant = &exp, &variant
	}
	return doc
}

func validateRequest(req *Request) error {
	if (req.Scratch == nil) == (req.Upload == nil) {
		return &validation.InputError{
			Code: validation.CodeInvalidInput,
			Errors: []validation.FieldError{{
				Field:   "inputs",
				Message: "precies een van scratch of upload is verplicht",
			}},
		}
	}
	if req.Kind != "" && !db.ValidKind(req.Kind) {
		return &validation.InputError{
			Code: validation.CodeInvalidInput,
			Errors: []validation.FieldError{{
				Field:    "kind",
				Message:  "onbekend documenttype",
				Expected: []string{db.KindGroepsplan, db.KindOPP, db.KindDifferentiatie},
				Actual:   req.Kind,
			}},
		}
	}
	if req.Scratch != nil {
		return validation.ValidateScratch(*req.Scratch)
	}
	return validation.ValidateUpload(*req.Upload)
}
