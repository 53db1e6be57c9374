// Package experiments wraps base prompts with named A/B variants and assigns variants deterministically.
package experiments

import (
	_ "embed"
	"fmt"
	"hash/fnv"

	"github.com/jonathan/groepsplan/internal/prompts"
	"gopkg.in/yaml.v3"
)

//go:embed experiments.yaml
var definitions []byte

// Variant is one arm of a prompt experiment.
type Variant struct {
	Name       string `json:"name"`
	Experiment string `json:"experiment"`
	Dimension  string `json:"dimension"`
	Weight     int    `json:"weight"`

	decorate decorator
}

// Apply wraps base with the variant's decoration. The result always contains base unchanged.
func (v Variant) Apply(base string, in prompts.Inputs) string {
	if v.decorate == nil {
		return base
	}
	d := v.decorate(in)
	return d.Before + base + d.After
}

// Experiment is a named set of weighted variants.
type Experiment struct {
	ID          string    `json:"id"`
	Dimension   string    `json:"dimension"`
	Description string    `json:"description"`
	Variants    []Variant `json:"variants"`
}

type fileFormat struct {
	Experiments []struct {
		ID          string `yaml:"id"`
		Dimension   string `yaml:"dimension"`
		Description string `yaml:"description"`
		Variants    []struct {
			Name   string `yaml:"name"`
			Weight int    `yaml:"weight"`
		} `yaml:"variants"`
	} `yaml:"experiments"`
}

var catalog = mustLoad(definitions)

func mustLoad(data []byte) []Experiment {
	exps, err := load(data)
	if err != nil {
		panic(fmt.Sprintf("experiments: %v", err))
	}
	return exps
}

func load(data []byte) ([]Experiment, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse experiment definitions: %w", err)
	}

	exps := make([]Experiment, 0, len(f.Experiments))
	for _, e := range f.Experiments {
		if len(e.Variants) == 0 {
			return nil, fmt.Errorf("experiment %q has no variants", e.ID)
		}
		exp := Experiment{ID: e.ID, Dimension: e.Dimension, Description: e.Description}
		for _, v := range e.Variants {
			dec, ok := decorators[v.Name]
			if !ok {
				return nil, fmt.Errorf("experiment %q: %w %q", e.ID, ErrUnknownVariant, v.Name)
			}
			if v.Weight <= 0 {
				return nil, fmt.Errorf("experiment %q: variant %q needs a positive weight", e.ID, v.Name)
			}
			exp.Variants = append(exp.Variants, Variant{
				Name:       v.Name,
				Experiment: e.ID,
				Dimension:  e.Dimension,
				Weight:     v.Weight,
				decorate:   dec,
			})
		}
		exps = append(exps, exp)
	}
	return exps, nil
}

// Experiments returns every defined experiment in definition order.
func Experiments() []Experiment {
	out := make([]Experiment, len(catalog))
	for i, e := range catalog {
		out[i] = e
		out[i].Variants = append([]Variant(nil), e.Variants...)
	}
	return out
}

func find(experimentID string) (Experiment, error) {
	for _, e := range catalog {
		if e.ID == experimentID {
			return e, nil
		}
	}
	return Experiment{}, fmt.Errorf("%w: %q", ErrUnknownExperiment, experimentID)
}

// PromptVariants returns the variants of an experiment keyed by variant name.
func PromptVariants(experimentID string) (map[string]Variant, error) {
	exp, err := find(experimentID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Variant, len(exp.Variants))
	for _, v := range exp.Variants {
		out[v.Name] = v
	}
	return out, nil
}

// Lookup returns a single named variant of an experiment.
func Lookup(experimentID, name string) (Variant, error) {
	variants, err := PromptVariants(experimentID)
	if err != nil {
		return Variant{}, err
	}
	v, ok := variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q in experiment %q", ErrUnknownVariant, name, experimentID)
	}
	return v, nil
}

// BuildPromptWithVariant builds the base prompt for in and applies the variant to it.
func BuildPromptWithVariant(v Variant, in prompts.Inputs) string {
	return v.Apply(prompts.Build(in), in)
}

// SelectVariant assigns a variant by hashing the experiment id and subject key into the weighted buckets.
// The same pair always yields the same variant.
func SelectVariant(experimentID, subjectKey string) (Variant, error) {
	exp, err := find(experimentID)
	if err != nil {
		return Variant{}, err
	}

	total := 0
	for _, v := range exp.Variants {
		total += v.Weight
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(experimentID + ":" + subjectKey))
	bucket := int(h.Sum32() % uint32(total))

	for _, v := range exp.Variants {
		if bucket < v.Weight {
			return v, nil
		}
		bucket -= v.Weight
	}
	return exp.Variants[len(exp.Variants)-1], nil
}
