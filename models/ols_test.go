package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestOLSRegression(t *testing.T) {
	// y = 2 + 3*x0 + 4*x1
	tol := 1e-8
	testData := map[string]struct {
		x         [][]float64
		y         []float64
		opt       *OLSOptions
		intercept float64
		coef      []float64
	}{
		"model intercept": {
			x: [][]float64{
				{0, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y:         []float64{2, 31, 109, 62, 87},
			opt:       nil,
			intercept: 2.0,
			coef:      []float64{3.0, 4.0},
		},
		"no intercept": {
			x: [][]float64{
				{0, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y:         []float64{0, 29, 107, 60, 85},
			opt:       &OLSOptions{FitIntercept: false},
			intercept: 0.0,
			coef:      []float64{3.0, 4.0},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			m := len(td.y)
			n := len(td.x[0])
			xData := make([]float64, 0, m*n)
			for _, row := range td.x {
				xData = append(xData, row...)
			}
			x := mat.NewDense(m, n, xData)
			y := mat.NewDense(m, 1, td.y)

			ols, err := NewOLSRegression(td.opt)
			require.Nil(t, err)
			require.Nil(t, ols.Fit(x, y))

			assert.InDelta(t, td.intercept, ols.Intercept(), tol)
			assert.InDeltaSlice(t, td.coef, ols.Coef(), tol)

			predicted, err := ols.Predict(x)
			require.Nil(t, err)
			assert.InDeltaSlice(t, td.y, predicted, tol)

			r2, err := ols.Score(x, y)
			require.Nil(t, err)
			assert.InDelta(t, 1.0, r2, tol)
		})
	}
}

func TestOLSRegressionErrors(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(2, 1, []float64{1, 2})

	ols, err := NewOLSRegression(nil)
	require.Nil(t, err)

	assert.ErrorIs(t, ols.Fit(nil, y), ErrNoTrainingMatrix)
	assert.ErrorIs(t, ols.Fit(x, nil), ErrNoTargetMatrix)
	assert.ErrorIs(t, ols.Fit(x, y), ErrTargetLenMismatch)
}
