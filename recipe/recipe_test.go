package recipe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/kiteco/classbalance/dataset"
)

func imbalanced(t *testing.T, minority, majority int) dataset.Dataset {
	t.Helper()
	ds := dataset.Dataset{Names: []string{"x"}}
	for i := 0; i < minority; i++ {
		ds.Obs = append(ds.Obs, dataset.Observation{Features: []float64{float64(i)}, Class: dataset.Class1})
	}
	for i := 0; i < majority; i++ {
		ds.Obs = append(ds.Obs, dataset.Observation{Features: []float64{float64(100 + i)}, Class: dataset.Class2})
	}
	return ds
}

func TestDownSampleEqualCounts(t *testing.T) {
	ds := imbalanced(t, 20, 180)
	fitted, err := DownSample{}.Fit(ds, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	out := fitted.Apply(ds, Training)
	counts := out.Counts()
	assert.Equal(t, 20, counts[dataset.Class1])
	assert.Equal(t, 20, counts[dataset.Class2])
}

func TestDownSampleKeepsAllMinorityRows(t *testing.T) {
	ds := imbalanced(t, 15, 85)
	fitted, err := DownSample{}.Fit(ds, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	out := fitted.Apply(ds, Training)
	var minorityFeatures []float64
	for _, o := range out.Obs {
		if o.Class == dataset.Class1 {
			minorityFeatures = append(minorityFeatures, o.Features[0])
		}
	}
	require.Len(t, minorityFeatures, 15)
	for i := 0; i < 15; i++ {
		assert.Contains(t, minorityFeatures, float64(i))
	}
}

func TestDownSampleEvaluationPassThrough(t *testing.T) {
	ds := imbalanced(t, 10, 90)
	fitted, err := DownSample{}.Fit(ds, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	out := fitted.Apply(ds, Evaluation)
	require.Equal(t, ds.Len(), out.Len())
	for i := range ds.Obs {
		assert.Equal(t, ds.Obs[i], out.Obs[i])
	}
}

func TestDownSampleUnderRatio(t *testing.T) {
	ds := imbalanced(t, 10, 90)
	fitted, err := DownSample{Under: 2}.Fit(ds, rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	counts := fitted.Apply(ds, Training).Counts()
	assert.Equal(t, 10, counts[dataset.Class1])
	assert.Equal(t, 20, counts[dataset.Class2])
}

func TestDownSampleDeterministic(t *testing.T) {
	ds := imbalanced(t, 12, 88)
	a, err := DownSample{}.Fit(ds, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	b, err := DownSample{}.Fit(ds, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	assert.Equal(t, a.Apply(ds, Training), b.Apply(ds, Training))
}

func TestDownSampleEmptyMinority(t *testing.T) {
	ds := imbalanced(t, 0, 40)
	_, err := DownSample{}.Fit(ds, rand.New(rand.NewSource(5)))
	var emptyErr dataset.EmptyClassError
	require.True(t, errors.As(err, &emptyErr))
}

func TestUpSampleEqualCounts(t *testing.T) {
	ds := imbalanced(t, 10, 90)
	fitted, err := UpSample{}.Fit(ds, rand.New(rand.NewSource(6)))
	require.NoError(t, err)

	out := fitted.Apply(ds, Training)
	counts := out.Counts()
	assert.Equal(t, 90, counts[dataset.Class1])
	assert.Equal(t, 90, counts[dataset.Class2])
}

func TestUpSampleKeepsOriginalRows(t *testing.T) {
	ds := imbalanced(t, 5, 45)
	fitted, err := UpSample{}.Fit(ds, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	out := fitted.Apply(ds, Training)
	require.True(t, out.Len() >= ds.Len())
	for i := range ds.Obs {
		assert.Equal(t, ds.Obs[i], out.Obs[i], "original row %d not retained", i)
	}
}

func TestUpSampleEvaluationPassThrough(t *testing.T) {
	ds := imbalanced(t, 5, 45)
	fitted, err := UpSample{}.Fit(ds, rand.New(rand.NewSource(8)))
	require.NoError(t, err)

	out := fitted.Apply(ds, Evaluation)
	assert.Equal(t, ds, out)
}

func TestUpSampleEmptyMinority(t *testing.T) {
	ds := imbalanced(t, 0, 30)
	_, err := UpSample{}.Fit(ds, rand.New(rand.NewSource(10)))
	var emptyErr dataset.EmptyClassError
	require.True(t, errors.As(err, &emptyErr))
}
