// Package resample generates repeated stratified cross-validation folds.
package resample

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/kiteco/classbalance/dataset"
)

// Fold is one train/test split: Analysis indexes the rows used for fitting,
// Assessment the held-out rows used for scoring. Both index into the dataset
// the fold was generated from. Folds are immutable once created.
type Fold struct {
	// Repeat and Number identify the fold; both are 1-based.
	Repeat int
	Number int

	Analysis   []int
	Assessment []int
}

// Name returns an identifier like "Fold03.Rep1".
func (f Fold) Name() string {
	return fmt.Sprintf("Fold%02d.Rep%d", f.Number, f.Repeat)
}

// VFold produces repeats*v folds of ds, stratified by class: within each
// repeat the assessment sets partition the dataset exactly once, and each
// partition's class ratio approximates the full dataset's. The same seed and
// inputs always reproduce identical fold membership.
//
// It fails when v exceeds the dataset size or when any class has fewer than v
// rows, since stratification would then leave some assessment set without that
// class.
func VFold(ds dataset.Dataset, v, repeats int, seed uint64) ([]Fold, error) {
	if v < 2 {
		return nil, dataset.Inputf("v-fold requires v >= 2, got %d", v)
	}
	if repeats < 1 {
		return nil, dataset.Inputf("v-fold requires at least one repeat, got %d", repeats)
	}
	if v > ds.Len() {
		return nil, dataset.Inputf("v=%d exceeds dataset size %d", v, ds.Len())
	}
	for _, c := range dataset.Classes {
		if n := len(ds.ClassIndices(c)); n < v {
			return nil, dataset.Inputf("class %s has %d rows, fewer than v=%d", c, n, v)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	var folds []Fold
	for rep := 1; rep <= repeats; rep++ {
		assessment := make([][]int, v)

		// Round-robin each class's shuffled rows across the v folds so
		// every assessment set gets its proportional share.
		for _, c := range dataset.Classes {
			idx := ds.ClassIndices(c)
			rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
			for i, row := range idx {
				assessment[i%v] = append(assessment[i%v], row)
			}
		}

		for num := 0; num < v; num++ {
			sort.Ints(assessment[num])
			held := make(map[int]bool, len(assessment[num]))
			for _, row := range assessment[num] {
				held[row] = true
			}
			analysis := make([]int, 0, ds.Len()-len(assessment[num]))
			for row := 0; row < ds.Len(); row++ {
				if !held[row] {
					analysis = append(analysis, row)
				}
			}
			folds = append(folds, Fold{
				Repeat:     rep,
				Number:     num + 1,
				Analysis:   analysis,
				Assessment: assessment[num],
			})
		}
	}
	return folds, nil
}
