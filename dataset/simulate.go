package dataset

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SimConfig controls the two-class simulation.
type SimConfig struct {
	// Rows is the number of observations to simulate.
	Rows int
	// Intercept shifts the latent linear predictor. Zero gives a roughly
	// balanced dataset; 10 gives roughly a 90/10 majority/minority split.
	Intercept float64
	// Noise is the number of uninformative standard-normal features
	// appended to the informative ones. Defaults to 5 when negative.
	Noise int
	// Seed drives all random draws. The same seed and config always
	// reproduce the same dataset.
	Seed uint64
}

// correlation between the two informative linear features
const twoFactorRho = 0.65

// Simulate produces a labeled two-class dataset from a latent logistic model:
// two correlated linear features, their interaction, one quadratic feature,
// and Noise uninformative features. Class1 is the event of interest; the
// probability of Class1 shrinks as Intercept grows, which is how the caller
// dials in class imbalance.
func Simulate(cfg SimConfig) (Dataset, error) {
	if cfg.Rows <= 0 {
		return Dataset{}, Inputf("simulation rows must be positive, got %d", cfg.Rows)
	}
	noise := cfg.Noise
	if noise < 0 {
		noise = 5
	}

	src := rand.NewSource(cfg.Seed)
	stdNormal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}

	names := []string{"two_factor_1", "two_factor_2", "non_linear_1"}
	for i := 0; i < noise; i++ {
		names = append(names, fmt.Sprintf("noise_%d", i+1))
	}

	obs := make([]Observation, cfg.Rows)
	for i := range obs {
		a := stdNormal.Rand()
		b := twoFactorRho*a + math.Sqrt(1-twoFactorRho*twoFactorRho)*stdNormal.Rand()
		nl := stdNormal.Rand()

		feats := make([]float64, 0, len(names))
		feats = append(feats, a, b, nl)
		for j := 0; j < noise; j++ {
			feats = append(feats, stdNormal.Rand())
		}

		lp := -cfg.Intercept/2 + 2.2*a + 2.0*b - 1.5*a*b + 0.8*nl*nl
		p := 1 / (1 + math.Exp(-lp))

		class := Class2
		if uniform.Rand() < p {
			class = Class1
		}
		obs[i] = Observation{Features: feats, Class: class}
	}

	return Dataset{Names: names, Obs: obs}, nil
}
