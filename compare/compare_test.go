package compare

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

func sampleTable() Table {
	return Table{
		{Repeat: 1, Fold: 1, SampledROC: 0.90, NormalROC: 0.92, SampledJ: 0.60, NormalJ: 0.30},
		{Repeat: 1, Fold: 2, SampledROC: 0.88, NormalROC: 0.89, SampledJ: 0.55, NormalJ: 0.35},
		{Repeat: 2, Fold: 1, SampledROC: 0.91, NormalROC: 0.90, SampledJ: 0.65, NormalJ: 0.25},
		{Repeat: 2, Fold: 2, SampledROC: 0.87, NormalROC: 0.88, SampledJ: 0.50, NormalJ: 0.40},
	}
}

func TestSortStableByRepeatFold(t *testing.T) {
	tbl := sampleTable()
	shuffled := Table{tbl[3], tbl[0], tbl[2], tbl[1]}
	shuffled.Sort()
	assert.Equal(t, tbl, shuffled)
}

func TestDiffsAndMeanDiff(t *testing.T) {
	tbl := sampleTable()

	diffs := tbl.Diffs(J)
	require.Len(t, diffs, 4)
	assert.InDelta(t, 0.30, diffs[0], 1e-12)

	mean, err := tbl.MeanDiff(J)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, mean, 1e-12)

	meanROC, err := tbl.MeanDiff(ROC)
	require.NoError(t, err)
	assert.InDelta(t, -0.0075, meanROC, 1e-12)
}

func TestSummarize(t *testing.T) {
	tbl := sampleTable()
	s, err := tbl.Summarize(J)
	require.NoError(t, err)
	assert.InDelta(t, 0.575, s.SampledMean, 1e-12)
	assert.InDelta(t, 0.325, s.NormalMean, 1e-12)
	assert.InDelta(t, 0.25, s.MeanDiff, 1e-12)
}

func TestEmptyTableErrors(t *testing.T) {
	var tbl Table
	_, err := tbl.MeanDiff(J)
	require.Error(t, err)
	_, err = tbl.Summarize(ROC)
	require.Error(t, err)
}

func TestCSVRoundTrip(t *testing.T) {
	tbl := sampleTable()
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, tbl.WriteCSV(path))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, tbl, got)
}

func TestPosteriorDeterministic(t *testing.T) {
	diffs := []float64{0.2, 0.3, 0.25, 0.31, 0.18, 0.27}
	cfg := PosteriorConfig{Draws: 500, Burn: 200, Seed: 77}

	a, err := Posterior(diffs, cfg)
	require.NoError(t, err)
	b, err := Posterior(diffs, cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPosteriorRecoversEffect(t *testing.T) {
	src := rand.NewSource(13)
	noise := distuv.Normal{Mu: 0.3, Sigma: 0.05, Src: src}
	diffs := make([]float64, 50)
	for i := range diffs {
		diffs[i] = noise.Rand()
	}

	s, err := Posterior(diffs, PosteriorConfig{Seed: 21})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, s.Mean, 0.05)
	assert.True(t, s.Lower < s.Mean && s.Mean < s.Upper)
	assert.True(t, s.ProbPositive > 0.99, "clear positive effect, got %f", s.ProbPositive)
}

func TestPosteriorCenteredEffect(t *testing.T) {
	src := rand.NewSource(14)
	noise := distuv.Normal{Mu: 0, Sigma: 0.1, Src: src}
	diffs := make([]float64, 60)
	var sum float64
	for i := range diffs {
		diffs[i] = noise.Rand()
		sum += diffs[i]
	}
	for i := range diffs {
		diffs[i] -= sum / float64(len(diffs))
	}

	s, err := Posterior(diffs, PosteriorConfig{Seed: 22})
	require.NoError(t, err)
	assert.True(t, s.Lower < 0 && s.Upper > 0,
		"interval should straddle zero: [%f, %f]", s.Lower, s.Upper)
}

func TestPosteriorEmpty(t *testing.T) {
	_, err := Posterior(nil, PosteriorConfig{})
	require.Error(t, err)
}

func TestPlotsWriteFiles(t *testing.T) {
	tbl := sampleTable()
	dir := t.TempDir()

	ba := filepath.Join(dir, "bland_altman.png")
	require.NoError(t, BlandAltman(tbl, J, ba))
	info, err := os.Stat(ba)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)

	ps := filepath.Join(dir, "paired.png")
	require.NoError(t, PairedScatter(tbl, ROC, ps))
	info, err = os.Stat(ps)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}
