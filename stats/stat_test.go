package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOutliers(t *testing.T) {
	testData := map[string]struct {
		y        []float64
		expected []int
	}{
		"no outliers": {
			y:        []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			expected: nil,
		},
		"single spike": {
			y: []float64{
				1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
				11, 12, 13, 14, 15, 16, 17, 18, 19, 1000,
			},
			expected: []int{19},
		},
		"spike and dip": {
			y: []float64{
				-1000, 2, 3, 4, 5, 6, 7, 8, 9, 10,
				11, 12, 13, 14, 15, 16, 17, 18, 19, 1000,
			},
			expected: []int{0, 19},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, DetectOutliers(td.y, 0.1, 0.9, 1.0))
		})
	}
}

func TestVarianceInflationFactor(t *testing.T) {
	// x1 is an exact linear function of x0 so both report a VIF R2 of 1
	features := map[string][]float64{
		"x0": {1, 2, 3, 4, 5},
		"x1": {2, 4, 6, 8, 10},
	}

	vif, err := VarianceInflationFactor(features)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, vif["x0"], 1e-8)
	assert.InDelta(t, 1.0, vif["x1"], 1e-8)
}

func TestVarianceInflationFactorErrors(t *testing.T) {
	_, err := VarianceInflationFactor(map[string][]float64{"x0": {1, 2}})
	assert.ErrorIs(t, err, ErrMinimumFeatures)

	_, err = VarianceInflationFactor(map[string][]float64{"x0": {1}, "x1": {2}})
	assert.ErrorIs(t, err, ErrFeatureLen)

	_, err = VarianceInflationFactor(map[string][]float64{"x0": {1, 2}, "x1": {2, 3, 4}})
	assert.ErrorIs(t, err, ErrFeatureLenMismatch)
}
