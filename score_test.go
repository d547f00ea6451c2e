package denguecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScores(t *testing.T) {
	testData := map[string]struct {
		predicted []float64
		actual    []float64
		expected  *Scores
		err       error
	}{
		"length mismatch": {
			predicted: []float64{1},
			actual:    []float64{1, 2},
			err:       ErrScoreLenMismatch,
		},
		"empty": {
			err: ErrNoObservations,
		},
		"all nan": {
			predicted: []float64{1, 2},
			actual:    []float64{math.NaN(), math.NaN()},
			err:       ErrNoObservations,
		},
		"mape excludes zero actuals": {
			predicted: []float64{5, 11, 19},
			actual:    []float64{0, 10, 20},
			expected: &Scores{
				MAPE:        7.5,
				MAE:         7.0 / 3.0,
				RMSE:        math.Sqrt((25.0 + 1.0 + 1.0) / 3.0),
				SampleCount: 3,
			},
		},
		"perfect": {
			predicted: []float64{10, 20},
			actual:    []float64{10, 20},
			expected: &Scores{
				MAPE:        0,
				MAE:         0,
				RMSE:        0,
				SampleCount: 2,
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			scores, err := NewScores(td.predicted, td.actual)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.InDelta(t, td.expected.MAPE, scores.MAPE, 1e-12)
			assert.InDelta(t, td.expected.MAE, scores.MAE, 1e-12)
			assert.InDelta(t, td.expected.RMSE, scores.RMSE, 1e-12)
			assert.Equal(t, td.expected.SampleCount, scores.SampleCount)
		})
	}
}

func TestScoresFlatten(t *testing.T) {
	s := &Scores{MAPE: 7.5, MAE: 2.0, RMSE: 3.0, SampleCount: 10}

	assert.Equal(t, map[string]float64{
		"mape": 7.5,
		"mae":  2.0,
		"rmse": 3.0,
	}, s.Flatten(""))

	assert.Equal(t, map[string]float64{
		"holdout_mape": 7.5,
		"holdout_mae":  2.0,
		"holdout_rmse": 3.0,
	}, s.Flatten("holdout"))
}
