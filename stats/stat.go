// Package stats has supporting statistics for robust fitting and
// covariate diagnostics.
package stats

import (
	"errors"
	"math"
	"sort"

	"github.com/epilab-sg/denguecast/models"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrMinimumFeatures    = errors.New("need at least 2 features to compute VIF")
	ErrFeatureLenMismatch = errors.New("some feature length is not consistent")
	ErrFeatureLen         = errors.New("must have at least 2 points per feature")
)

// DetectOutliers returns the indexes of values falling outside the
// Tukey fences drawn around the given percentile range. Used to mask
// one-off reporting artifacts before the final fit; epidemic waves wide
// enough to span multiple windows survive the fences.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	yCopy := make([]float64, len(y))
	copy(yCopy, y)
	sort.Float64s(yCopy)
	lowerIdx := int(math.Floor(float64(len(yCopy)) * lowerPerc))
	upperIdx := int(math.Ceil(float64(len(yCopy)) * upperPerc))
	if upperIdx >= len(yCopy) {
		upperIdx = len(yCopy) - 1
	}

	lower := yCopy[lowerIdx]
	upper := yCopy[upperIdx]
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i := 0; i < len(y); i++ {
		if y[i] >= upper || y[i] <= lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}

// VarianceInflationFactor regresses each covariate on all the others
// and reports the R² per covariate. Values close to 1 flag collinear
// covariates that add no information to the model.
func VarianceInflationFactor(features map[string][]float64) (map[string]float64, error) {
	if len(features) < 2 {
		return nil, ErrMinimumFeatures
	}

	var m int
	for _, feat := range features {
		if len(feat) < 2 {
			return nil, ErrFeatureLen
		}
		if m == 0 {
			m = len(feat)
			continue
		}
		if m != len(feat) {
			return nil, ErrFeatureLenMismatch
		}
	}

	n := len(features) - 1
	vif := make(map[string]float64, len(features))
	x := mat.NewDense(m, n, nil)
	y := mat.NewDense(m, 1, nil)

	for label, labelFeature := range features {
		y.SetCol(0, labelFeature)
		c := 0
		for otherLabel, otherLabelFeature := range features {
			if otherLabel == label {
				continue
			}
			x.SetCol(c, otherLabelFeature)
			c++
		}

		ols, err := models.NewOLSRegression(nil)
		if err != nil {
			return nil, err
		}
		if err := ols.Fit(x, y); err != nil {
			return nil, err
		}
		predicted, err := ols.Predict(x)
		if err != nil {
			return nil, err
		}
		vif[label] = stat.RSquaredFrom(predicted, labelFeature, nil)
	}
	return vif, nil
}
