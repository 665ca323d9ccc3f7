package compare

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kiteco/classbalance/dataset"
)

// PosteriorConfig controls the Gibbs sampler behind Posterior.
type PosteriorConfig struct {
	// Draws kept after burn-in. Defaults to 4000 when zero.
	Draws int
	// Burn is the number of discarded warm-up iterations. Defaults to 1000
	// when zero.
	Burn int
	// Seed makes the posterior deterministic.
	Seed uint64
}

// PosteriorSummary describes the posterior over the systematic
// between-condition effect.
type PosteriorSummary struct {
	// Mean is the posterior mean of the effect (sampled minus normal).
	Mean float64
	// Lower and Upper bound the central 95% credible interval.
	Lower float64
	Upper float64
	// ProbPositive is the posterior probability that the effect favors the
	// subsampled condition.
	ProbPositive float64
}

// prior hyperparameters: mu ~ N(0, 1), sigma^2 ~ InvGamma(1, 0.01). Metric
// differences live in [-2, 2], so these are weakly informative.
const (
	priorMuVar   = 1.0
	priorShape   = 1.0
	priorRate    = 0.01
	credibleTail = 0.025
)

// Posterior estimates the systematic effect underlying the per-fold
// differences with a normal likelihood and conjugate Gibbs sampling over the
// effect mean and variance. The same diffs and seed always produce the same
// summary.
func Posterior(diffs []float64, cfg PosteriorConfig) (PosteriorSummary, error) {
	if len(diffs) == 0 {
		return PosteriorSummary{}, dataset.Inputf("no differences to analyze")
	}
	draws := cfg.Draws
	if draws <= 0 {
		draws = 4000
	}
	burn := cfg.Burn
	if burn <= 0 {
		burn = 1000
	}

	n := float64(len(diffs))
	var sum float64
	for _, d := range diffs {
		sum += d
	}
	mean := sum / n

	src := rand.NewSource(cfg.Seed)
	stdNormal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	mu := mean
	sigma2 := 0.01
	kept := make([]float64, 0, draws)
	for i := 0; i < burn+draws; i++ {
		// mu | sigma2, data
		prec := 1/priorMuVar + n/sigma2
		condMean := (n * mean / sigma2) / prec
		mu = condMean + stdNormal.Rand()/math.Sqrt(prec)

		// sigma2 | mu, data: sample the precision from its Gamma
		// conditional and invert
		var ss float64
		for _, d := range diffs {
			ss += (d - mu) * (d - mu)
		}
		gamma := distuv.Gamma{Alpha: priorShape + n/2, Beta: priorRate + ss/2, Src: src}
		sigma2 = 1 / gamma.Rand()

		if i >= burn {
			kept = append(kept, mu)
		}
	}

	sort.Float64s(kept)
	var total, positive float64
	for _, v := range kept {
		total += v
		if v > 0 {
			positive++
		}
	}
	return PosteriorSummary{
		Mean:         total / float64(len(kept)),
		Lower:        quantile(kept, credibleTail),
		Upper:        quantile(kept, 1-credibleTail),
		ProbPositive: positive / float64(len(kept)),
	}, nil
}

// quantile reads the q-th quantile from sorted values.
func quantile(sorted []float64, q float64) float64 {
	idx := int(q * float64(len(sorted)-1))
	return sorted[idx]
}
