// Package recipe holds preprocessing steps that are estimated on a fold's
// analysis set and applied at training time only. Subsampling steps correct
// class imbalance before model fitting; they are skipped for assessment data
// so held-out sets keep the dataset's real class prevalence.
package recipe

import (
	"golang.org/x/exp/rand"

	"github.com/kiteco/classbalance/dataset"
)

// Mode distinguishes the two application contexts of a fitted step.
type Mode int

const (
	// Training applies the step's transformation.
	Training Mode = iota
	// Evaluation passes data through unchanged. Steps that resample rows
	// must never alter assessment data.
	Evaluation
)

// Step is a preprocessing step before fitting. Fit estimates the step on an
// analysis set; the returned FittedStep is only valid for the set it was
// fitted on.
type Step interface {
	Fit(analysis dataset.Dataset, rng *rand.Rand) (FittedStep, error)
}

// FittedStep applies a fitted step. Apply with Evaluation mode returns ds
// unchanged.
type FittedStep interface {
	Apply(ds dataset.Dataset, mode Mode) dataset.Dataset
}
