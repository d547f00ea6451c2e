package denguecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldoutEvaluate(t *testing.T) {
	d := simulatedDataset(t, 208, 300.0, 200.0, 10.0)

	scores, err := HoldoutEvaluate(d, 12, nil)
	require.Nil(t, err)

	assert.Equal(t, 12, scores.SampleCount)
	// a clean seasonal series stays well within a 50% error out of
	// sample
	assert.Less(t, scores.MAPE, 50.0)
	assert.Greater(t, scores.RMSE, 0.0)
}

func TestHoldoutEvaluateErrors(t *testing.T) {
	d := simulatedDataset(t, 208, 300.0, 200.0, 10.0)

	testData := map[string]struct {
		holdout int
		err     error
	}{
		"zero holdout":     {0, ErrNonPositiveHoldout},
		"negative holdout": {-5, ErrNonPositiveHoldout},
		"holdout too big":  {208, ErrHoldoutTooLarge},
		"train too small":  {200, ErrBelowTrainingMinimum},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := HoldoutEvaluate(d, td.holdout, nil)
			assert.ErrorIs(t, err, td.err)
		})
	}

	_, err := HoldoutEvaluate(nil, 12, nil)
	assert.ErrorIs(t, err, ErrEmptyTimeDataset)
}

func TestHoldoutEvaluateDoesNotMutateInput(t *testing.T) {
	d := simulatedDataset(t, 208, 300.0, 200.0, 10.0)
	snapshot := d.Copy()

	_, err := HoldoutEvaluate(d, 12, nil)
	require.Nil(t, err)

	assert.Equal(t, snapshot, d)
}
