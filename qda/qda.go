// Package qda fits quadratic discriminant analysis models: a generative
// two-class classifier with per-class mean and covariance estimates and a
// quadratic decision boundary.
package qda

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/kiteco/classbalance/dataset"
)

// SingularModelError reports a degenerate per-class covariance matrix, e.g. a
// feature that is constant within a class or too few rows to estimate the
// covariance. It is always surfaced to the caller, never suppressed.
type SingularModelError struct {
	Class dataset.Class
	// Feature names the offending feature when one can be identified.
	Feature string
}

func (e SingularModelError) Error() string {
	if e.Feature != "" {
		return fmt.Sprintf("singular covariance for %s: feature %s is degenerate", e.Class, e.Feature)
	}
	return fmt.Sprintf("singular covariance for %s", e.Class)
}

type classStats struct {
	logPrior float64
	mean     *mat.VecDense
	chol     *mat.Cholesky
	logDet   float64
}

// Model is a fitted quadratic discriminant classifier.
type Model struct {
	dim      int
	minority dataset.Class
	stats    map[dataset.Class]classStats
}

// Fit estimates class priors, means and covariances from ds.
func Fit(ds dataset.Dataset) (*Model, error) {
	d := ds.NumFeatures()
	if d == 0 || ds.Len() == 0 {
		return nil, dataset.Inputf("cannot fit on an empty dataset")
	}

	m := &Model{
		dim:      d,
		minority: ds.Minority(),
		stats:    make(map[dataset.Class]classStats, len(dataset.Classes)),
	}
	for _, c := range dataset.Classes {
		idx := ds.ClassIndices(c)
		if len(idx) == 0 {
			return nil, dataset.EmptyClassError{Class: c}
		}
		if len(idx) <= d {
			return nil, SingularModelError{Class: c}
		}

		rows := mat.NewDense(len(idx), d, nil)
		for i, row := range idx {
			rows.SetRow(i, ds.Obs[row].Features)
		}

		mean := mat.NewVecDense(d, nil)
		col := make([]float64, len(idx))
		for j := 0; j < d; j++ {
			mat.Col(col, j, rows)
			lo, hi := col[0], col[0]
			for _, v := range col {
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
			if lo == hi {
				return nil, SingularModelError{Class: c, Feature: ds.Names[j]}
			}
			mean.SetVec(j, stat.Mean(col, nil))
		}

		cov := mat.NewSymDense(d, nil)
		stat.CovarianceMatrix(cov, rows, nil)
		chol := new(mat.Cholesky)
		if ok := chol.Factorize(cov); !ok {
			return nil, SingularModelError{Class: c}
		}

		m.stats[c] = classStats{
			logPrior: math.Log(float64(len(idx)) / float64(ds.Len())),
			mean:     mean,
			chol:     chol,
			logDet:   chol.LogDet(),
		}
	}
	return m, nil
}

// Minority reports the minority class the model was fitted against.
func (m *Model) Minority() dataset.Class {
	return m.minority
}

// discriminant is the per-class quadratic score: log prior - log|Sigma|/2 -
// Mahalanobis^2/2. The class with the larger score is the posterior argmax.
func (m *Model) discriminant(c dataset.Class, features []float64) float64 {
	s := m.stats[c]
	x := mat.NewVecDense(m.dim, features)
	dist := stat.Mahalanobis(x, s.mean, s.chol)
	return s.logPrior - 0.5*s.logDet - 0.5*dist*dist
}

// PosteriorMinority returns the posterior probability that features belong to
// the minority class.
func (m *Model) PosteriorMinority(features []float64) (float64, error) {
	if len(features) != m.dim {
		return 0, dataset.Inputf("feature vector has %d values, model expects %d", len(features), m.dim)
	}
	other := dataset.Class2
	if m.minority == dataset.Class2 {
		other = dataset.Class1
	}
	diff := m.discriminant(other, features) - m.discriminant(m.minority, features)
	return 1 / (1 + math.Exp(diff)), nil
}

// Predict returns the hard class under the given posterior-probability cutoff
// together with the minority-class posterior.
func (m *Model) Predict(features []float64, cutoff float64) (dataset.Class, float64, error) {
	p, err := m.PosteriorMinority(features)
	if err != nil {
		return 0, 0, err
	}
	if p >= cutoff {
		return m.minority, p, nil
	}
	if m.minority == dataset.Class1 {
		return dataset.Class2, p, nil
	}
	return dataset.Class1, p, nil
}
