package experiments

import "errors"

var (
	// ErrUnknownExperiment is returned for an experiment id that is not defined.
	ErrUnknownExperiment = errors.New("unknown experiment")
	// ErrUnknownVariant is returned for a variant name that is not part of the experiment.
	ErrUnknownVariant = errors.New("unknown variant")
)
