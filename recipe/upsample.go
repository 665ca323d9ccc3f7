package recipe

import (
	"golang.org/x/exp/rand"

	"github.com/kiteco/classbalance/dataset"
)

// UpSample replicates minority-class rows, sampled with replacement, until
// the minority count reaches Over times the majority count. All original rows
// are retained.
type UpSample struct {
	// Over is the minority:majority ratio after sampling. Zero or negative
	// means 1 (equal counts).
	Over float64
}

type fittedUpSample struct {
	keep []int
}

// Fit selects the analysis rows to emit: every original row plus extra draws
// of minority rows.
func (s UpSample) Fit(analysis dataset.Dataset, rng *rand.Rand) (FittedStep, error) {
	ratio := s.Over
	if ratio <= 0 {
		ratio = 1
	}

	minority := analysis.Minority()
	minorityIdx := analysis.ClassIndices(minority)
	if len(minorityIdx) == 0 {
		return nil, dataset.EmptyClassError{Class: minority}
	}
	majorityCount := len(analysis.ClassIndices(analysis.Majority()))

	target := int(ratio * float64(majorityCount))
	keep := make([]int, 0, analysis.Len()+target)
	for i := 0; i < analysis.Len(); i++ {
		keep = append(keep, i)
	}
	for extra := target - len(minorityIdx); extra > 0; extra-- {
		keep = append(keep, minorityIdx[rng.Intn(len(minorityIdx))])
	}
	return fittedUpSample{keep: keep}, nil
}

func (f fittedUpSample) Apply(ds dataset.Dataset, mode Mode) dataset.Dataset {
	if mode == Evaluation {
		return ds
	}
	return ds.Subset(f.keep)
}
