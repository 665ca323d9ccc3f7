// Package compare aggregates per-fold metric pairs into a paired comparison
// of the subsampled and baseline conditions.
package compare

import (
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/kiteco/classbalance/dataset"
)

// Metric names one of the two computed performance measures.
type Metric string

const (
	// ROC is the area under the ROC curve.
	ROC Metric = "roc_auc"
	// J is Youden's J index at the prediction cutoff.
	J Metric = "j_index"
)

// Row holds one fold's metric pair per metric: the subsampled ("sampled") and
// baseline ("normal") values. The collected rows are the only artifact that
// survives the per-fold evaluation.
type Row struct {
	Repeat     int     `csv:"repeat"`
	Fold       int     `csv:"fold"`
	SampledROC float64 `csv:"sampled_roc"`
	NormalROC  float64 `csv:"normal_roc"`
	SampledJ   float64 `csv:"sampled_j"`
	NormalJ    float64 `csv:"normal_j"`
}

func (r Row) pair(m Metric) (sampled, normal float64) {
	if m == ROC {
		return r.SampledROC, r.NormalROC
	}
	return r.SampledJ, r.NormalJ
}

// Table is the per-fold results table, ordered by (repeat, fold).
type Table []Row

// Sort orders the table by (repeat, fold) so pairing is stable regardless of
// the order folds were evaluated in.
func (t Table) Sort() {
	sort.Slice(t, func(i, j int) bool {
		if t[i].Repeat != t[j].Repeat {
			return t[i].Repeat < t[j].Repeat
		}
		return t[i].Fold < t[j].Fold
	})
}

// Diffs returns the per-fold signed differences, sampled minus normal.
func (t Table) Diffs(m Metric) []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		sampled, normal := r.pair(m)
		out[i] = sampled - normal
	}
	return out
}

// MeanDiff returns the mean of the per-fold differences.
func (t Table) MeanDiff(m Metric) (float64, error) {
	if len(t) == 0 {
		return 0, dataset.Inputf("empty results table")
	}
	return stats.Mean(t.Diffs(m))
}

// Summary describes one metric's paired distribution across folds.
type Summary struct {
	SampledMean float64
	NormalMean  float64
	MeanDiff    float64
	MedianDiff  float64
	StdDevDiff  float64
}

// Summarize computes descriptive statistics for one metric across the table.
func (t Table) Summarize(m Metric) (Summary, error) {
	if len(t) == 0 {
		return Summary{}, dataset.Inputf("empty results table")
	}
	sampled := make([]float64, len(t))
	normal := make([]float64, len(t))
	for i, r := range t {
		sampled[i], normal[i] = r.pair(m)
	}
	diffs := t.Diffs(m)

	var s Summary
	var err error
	if s.SampledMean, err = stats.Mean(sampled); err != nil {
		return Summary{}, err
	}
	if s.NormalMean, err = stats.Mean(normal); err != nil {
		return Summary{}, err
	}
	if s.MeanDiff, err = stats.Mean(diffs); err != nil {
		return Summary{}, err
	}
	if s.MedianDiff, err = stats.Median(diffs); err != nil {
		return Summary{}, err
	}
	if s.StdDevDiff, err = stats.StandardDeviation(diffs); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// WriteCSV persists the table.
func (t Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	rows := []Row(t)
	return errors.Wrap(gocsv.MarshalFile(&rows, f), "writing results table")
}

// ReadCSV loads a table written by WriteCSV.
func ReadCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	var rows []Row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, errors.Wrap(err, "reading results table")
	}
	return Table(rows), nil
}
