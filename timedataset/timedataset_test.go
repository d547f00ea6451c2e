package timedataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weeklyT(n int) []time.Time {
	t := make([]time.Time, 0, n)
	start := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		t = append(t, start.Add(time.Duration(i)*Week))
	}
	return t
}

func TestNewDataset(t *testing.T) {
	validT := weeklyT(4)
	gapT := []time.Time{
		validT[0],
		validT[1],
		validT[1].Add(3 * Week),
		validT[1].Add(4 * Week),
	}

	testData := map[string]struct {
		t        []time.Time
		y        []float64
		expected *Dataset
		err      error
	}{
		"no training data": {
			err: ErrNoTrainingData,
		},
		"length mismatch": {
			y:   []float64{1},
			err: ErrDatasetLenMismatch,
		},
		"non increasing time": {
			t: []time.Time{
				time.Date(2020, 1, 13, 0, 0, 0, 0, time.UTC),
				time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrNonMonotonic,
		},
		"gap wider than cadence": {
			t:   gapT,
			y:   []float64{1, 2, 3, 4},
			err: ErrIrregularCadence,
		},
		"valid": {
			t: validT,
			y: []float64{1, 2, 3, 4},
			expected: &Dataset{
				T: validT,
				Y: []float64{1, 2, 3, 4},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds, err := NewDataset(td.t, td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, ds)
		})
	}
}

func TestDatasetCopy(t *testing.T) {
	ds, err := NewDataset(weeklyT(3), []float64{1, 2, 3})
	require.Nil(t, err)
	require.Nil(t, ds.AddCovariate("rainfall_mm", []float64{10, 20, 30}))

	cp := ds.Copy()
	cp.Y[0] = 99
	cp.Covariates["rainfall_mm"][0] = 99

	assert.Equal(t, 1.0, ds.Y[0])
	assert.Equal(t, 10.0, ds.Covariates["rainfall_mm"][0])
}

func TestDatasetSlice(t *testing.T) {
	ds, err := NewDataset(weeklyT(5), []float64{1, 2, 3, 4, 5})
	require.Nil(t, err)
	require.Nil(t, ds.AddCovariate("rainfall_mm", []float64{10, 20, 30, 40, 50}))

	window, err := ds.Slice(1, 4)
	require.Nil(t, err)
	assert.Equal(t, 3, window.Len())
	assert.Equal(t, []float64{2, 3, 4}, window.Y)
	assert.Equal(t, []float64{20, 30, 40}, window.Covariates["rainfall_mm"])

	// the window is a deep copy
	window.Y[0] = 99
	assert.Equal(t, 2.0, ds.Y[1])

	_, err = ds.Slice(3, 2)
	assert.ErrorIs(t, err, ErrInvalidSliceRange)
	_, err = ds.Slice(-1, 2)
	assert.ErrorIs(t, err, ErrInvalidSliceRange)
	_, err = ds.Slice(0, 6)
	assert.ErrorIs(t, err, ErrInvalidSliceRange)
}

func TestAddCovariate(t *testing.T) {
	ds, err := NewDataset(weeklyT(3), []float64{1, 2, 3})
	require.Nil(t, err)

	assert.ErrorIs(t, ds.AddCovariate("rainfall_mm", []float64{1}), ErrDatasetLenMismatch)
	require.Nil(t, ds.AddCovariate("rainfall_mm", []float64{1, 2, 3}))
	assert.ErrorIs(t, ds.AddCovariate("rainfall_mm", []float64{4, 5, 6}), ErrDuplicateCovariate)
}
