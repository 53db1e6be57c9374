package pipeline

import (
	"fmt"

	"github.com/jonathan/groepsplan/internal/experiments"
	"github.com/jonathan/groepsplan/internal/prompts"
)

// Prompt is a built prompt and the experiment arm it came from.
type Prompt struct {
	Text       string `json:"prompt"`
	Experiment string `json:"experiment,omitempty"`
	Variant    string `json:"variant,omitempty"`
}

// BuildPrompt builds the prompt for in. With an experiment and a variant name the named arm is
// applied; with only an experiment the arm is assigned from the inputs' subject key; with neither
// the base prompt is returned. Inputs must already be validated.
func BuildPrompt(in prompts.Inputs, experiment, variant string) (Prompt, error) {
	if experiment == "" {
		if variant != "" {
			return Prompt{}, fmt.Errorf("variant %q requires an experiment: %w", variant, experiments.ErrUnknownExperiment)
		}
		return Prompt{Text: prompts.Build(in)}, nil
	}

	var (
		v   experiments.Variant
		err error
	)
	if variant != "" {
		v, err = experiments.Lookup(experiment, variant)
	} else {
		v, err = experiments.SelectVariant(experiment, in.SubjectKey())
	}
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{
		Text:       experiments.BuildPromptWithVariant(v, in),
		Experiment: v.Experiment,
		Variant:    v.Name,
	}, nil
}
