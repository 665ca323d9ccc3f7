// Package eval fits and scores the classifier across cross-validation folds,
// with and without training-time subsampling, and assembles the per-fold
// results table.
package eval

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/kiteco/classbalance/compare"
	"github.com/kiteco/classbalance/dataset"
	"github.com/kiteco/classbalance/metrics"
	"github.com/kiteco/classbalance/qda"
	"github.com/kiteco/classbalance/recipe"
	"github.com/kiteco/classbalance/resample"
	"github.com/kiteco/classbalance/workerpool"
)

// DefaultCutoff is the posterior-probability cutoff for hard class
// predictions.
const DefaultCutoff = 0.5

// Prediction is one assessment-set row's outcome: the true class, the hard
// prediction at the evaluation cutoff, and the posterior probability of the
// minority class.
type Prediction struct {
	Truth        dataset.Class
	Predicted    dataset.Class
	MinorityProb float64
}

// Evaluate trains a QDA model on the fold's analysis set and scores the
// fold's assessment set. When step is non-nil it is fitted on the analysis
// set and applied in training mode before the model fit; the assessment set
// is never touched by the step.
func Evaluate(ds dataset.Dataset, fold resample.Fold, step recipe.Step, cutoff float64, rng *rand.Rand) ([]Prediction, error) {
	if cutoff <= 0 || cutoff >= 1 {
		return nil, dataset.Inputf("cutoff must be in (0, 1), got %g", cutoff)
	}

	analysis := ds.Subset(fold.Analysis)
	if step != nil {
		fitted, err := step.Fit(analysis, rng)
		if err != nil {
			return nil, errors.Wrap(err, "fitting preprocessor")
		}
		analysis = fitted.Apply(analysis, recipe.Training)
	}

	model, err := qda.Fit(analysis)
	if err != nil {
		return nil, errors.Wrap(err, "fitting model")
	}

	assessment := ds.Subset(fold.Assessment)
	preds := make([]Prediction, assessment.Len())
	for i, o := range assessment.Obs {
		class, prob, err := model.Predict(o.Features, cutoff)
		if err != nil {
			return nil, errors.Wrapf(err, "scoring assessment row %d", i)
		}
		preds[i] = Prediction{Truth: o.Class, Predicted: class, MinorityProb: prob}
	}
	return preds, nil
}

// Options configures a full resampled comparison run.
type Options struct {
	// Step is the subsampling step for the "sampled" condition. Defaults
	// to DownSample with equal counts.
	Step recipe.Step
	// Cutoff for hard predictions; DefaultCutoff when zero.
	Cutoff float64
	// Seed drives the per-fold sampling rngs. Fold rngs are derived from
	// (Seed, repeat, fold) so results do not depend on evaluation order.
	Seed uint64
	// Workers bounds fold-level parallelism; NumCPU when zero.
	Workers int
}

// Resamples evaluates every fold under both conditions and collects the
// per-fold metric pairs. Folds run in parallel; rows are merged by fold
// identity, so the pairing in the returned table is independent of completion
// order. Any fold failure aborts the run: a failed fold is reported, never
// silently dropped, since dropping it would bias the comparison.
func Resamples(ds dataset.Dataset, folds []resample.Fold, opts Options) (compare.Table, error) {
	if len(folds) == 0 {
		return nil, dataset.Inputf("no folds to evaluate")
	}
	step := opts.Step
	if step == nil {
		step = recipe.DownSample{}
	}
	cutoff := opts.Cutoff
	if cutoff == 0 {
		cutoff = DefaultCutoff
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	minority := ds.Minority()
	table := make(compare.Table, len(folds))

	var mu sync.Mutex
	var firstErr error
	jobs := make([]workerpool.Job, len(folds))
	for i := range folds {
		i := i
		fold := folds[i]
		jobs[i] = func() error {
			row, err := evaluateFold(ds, fold, step, cutoff, minority, opts.Seed)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = errors.Wrapf(err, "fold %s", fold.Name())
				}
				mu.Unlock()
				return err
			}
			mu.Lock()
			table[i] = row
			mu.Unlock()
			return nil
		}
	}

	pool := workerpool.New(workers)
	pool.Add(jobs)
	pool.Wait()
	pool.Stop()

	if firstErr != nil {
		return nil, firstErr
	}
	table.Sort()
	return table, nil
}

// evaluateFold runs both conditions on one fold and computes its metric pair.
func evaluateFold(ds dataset.Dataset, fold resample.Fold, step recipe.Step, cutoff float64, minority dataset.Class, seed uint64) (compare.Row, error) {
	rng := foldRNG(seed, fold)

	sampled, err := Evaluate(ds, fold, step, cutoff, rng)
	if err != nil {
		return compare.Row{}, errors.Wrap(err, "sampled condition")
	}
	normal, err := Evaluate(ds, fold, nil, cutoff, rng)
	if err != nil {
		return compare.Row{}, errors.Wrap(err, "normal condition")
	}

	row := compare.Row{Repeat: fold.Repeat, Fold: fold.Number}
	if row.SampledROC, row.SampledJ, err = score(sampled, minority); err != nil {
		return compare.Row{}, errors.Wrap(err, "sampled condition")
	}
	if row.NormalROC, row.NormalJ, err = score(normal, minority); err != nil {
		return compare.Row{}, errors.Wrap(err, "normal condition")
	}
	return row, nil
}

func score(preds []Prediction, minority dataset.Class) (roc, j float64, err error) {
	probs := make([]float64, len(preds))
	truth := make([]dataset.Class, len(preds))
	predicted := make([]dataset.Class, len(preds))
	for i, p := range preds {
		probs[i] = p.MinorityProb
		truth[i] = p.Truth
		predicted[i] = p.Predicted
	}
	if roc, err = metrics.ROCAUC(probs, truth, minority); err != nil {
		return 0, 0, err
	}
	if j, err = metrics.JIndex(truth, predicted, minority); err != nil {
		return 0, 0, err
	}
	return roc, j, nil
}

// foldRNG derives a deterministic rng per fold so sampling does not depend on
// which worker evaluates it first.
func foldRNG(seed uint64, fold resample.Fold) *rand.Rand {
	derived := seed
	derived = derived*1000003 + uint64(fold.Repeat)
	derived = derived*1000003 + uint64(fold.Number)
	return rand.New(rand.NewSource(derived))
}
