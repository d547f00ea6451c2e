package denguecast

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrScoreLenMismatch = errors.New("predicted and actual have different lengths")
	ErrNoObservations   = errors.New("no observations to score")
)

// Scores are out-of-sample accuracy metrics comparing forecasted case
// counts against withheld observations. These measure forecasting skill
// and must not be conflated with the in-sample fit scores reported by
// the series model.
type Scores struct {
	// MAPE is reported as a percentage and averages only over non-zero
	// actuals since a percent error against a zero count is undefined.
	MAPE float64 `json:"mape"`
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`

	// SampleCount is the number of scored observations after dropping
	// NaN pairs.
	SampleCount int `json:"sample_count"`
}

// NewScores calculates the accuracy metrics given the predicted and
// actual values. NaN pairs are skipped.
func NewScores(predicted, actual []float64) (*Scores, error) {
	if len(predicted) != len(actual) {
		return nil, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrScoreLenMismatch)
	}

	var absSum, sqSum, pctSum float64
	var n, nPct int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		diff := actual[i] - predicted[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
		n++

		if actual[i] != 0 {
			pctSum += math.Abs(diff / actual[i])
			nPct++
		}
	}
	if n == 0 {
		return nil, ErrNoObservations
	}

	s := &Scores{
		MAE:         absSum / float64(n),
		RMSE:        math.Sqrt(sqSum / float64(n)),
		SampleCount: n,
	}
	if nPct > 0 {
		s.MAPE = pctSum / float64(nPct) * 100.0
	}
	return s, nil
}

// Flatten returns the metrics as a map for structured logging and
// report generation, with keys prefixed by the given string.
func (s *Scores) Flatten(prefix string) map[string]float64 {
	if prefix != "" {
		prefix += "_"
	}
	return map[string]float64{
		prefix + "mape": s.MAPE,
		prefix + "mae":  s.MAE,
		prefix + "rmse": s.RMSE,
	}
}
