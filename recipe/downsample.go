package recipe

import (
	"sort"

	"golang.org/x/exp/rand"

	"github.com/kiteco/classbalance/dataset"
)

// DownSample removes majority-class rows until the majority count is at most
// Under times the minority count. All minority rows are retained.
type DownSample struct {
	// Under is the majority:minority ratio after sampling. Zero or
	// negative means 1 (equal counts).
	Under float64
}

type fittedDownSample struct {
	keep []int
}

// Fit selects which analysis rows to retain: every minority row plus a simple
// random sample of majority rows, without replacement.
func (s DownSample) Fit(analysis dataset.Dataset, rng *rand.Rand) (FittedStep, error) {
	ratio := s.Under
	if ratio <= 0 {
		ratio = 1
	}

	minority := analysis.Minority()
	minorityIdx := analysis.ClassIndices(minority)
	if len(minorityIdx) == 0 {
		return nil, dataset.EmptyClassError{Class: minority}
	}
	majorityIdx := analysis.ClassIndices(analysis.Majority())

	target := int(ratio * float64(len(minorityIdx)))
	if target > len(majorityIdx) {
		target = len(majorityIdx)
	}
	rng.Shuffle(len(majorityIdx), func(i, j int) {
		majorityIdx[i], majorityIdx[j] = majorityIdx[j], majorityIdx[i]
	})

	keep := append(append([]int{}, minorityIdx...), majorityIdx[:target]...)
	sort.Ints(keep)
	return fittedDownSample{keep: keep}, nil
}

func (f fittedDownSample) Apply(ds dataset.Dataset, mode Mode) dataset.Dataset {
	if mode == Evaluation {
		return ds
	}
	return ds.Subset(f.keep)
}
