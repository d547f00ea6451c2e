// Package timedataset validates and carries the weekly case-count time
// series consumed by model training and forecasting. Upstream data
// ingestion is expected to have already merged, cleaned, and backfilled
// the raw sources.
package timedataset

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrNonMonotonic       = errors.New("time feature is not monotonically increasing")
	ErrDatasetLenMismatch = errors.New("time feature has a different length than observations")
	ErrIrregularCadence   = errors.New("gap wider than one period between observations")
	ErrDuplicateCovariate = errors.New("covariate already registered")
	ErrCannotInferFreq    = errors.New("cannot infer frequency from less than two samples")
	ErrInvalidSliceRange  = errors.New("invalid slice range")
)

// Dataset represents a weekly time series of case counts along with any
// named numeric covariates, e.g. rainfall or search-trend proxies. All
// slices have the same length and dates are strictly increasing with no
// gap wider than one period.
type Dataset struct {
	T          []time.Time
	Y          []float64
	Covariates map[string][]float64
}

// NewDataset returns a validated Dataset given a date and case count
// slice, copying both.
func NewDataset(t []time.Time, y []float64) (*Dataset, error) {
	if len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time feature has length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrDatasetLenMismatch,
		)
	}

	var lastT time.Time
	for i, currT := range t {
		if !currT.After(lastT) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMonotonic)
		}
		lastT = currT
	}

	if len(t) > 2 {
		freq, err := TimeSlice(t).EstimateFreq()
		if err != nil {
			return nil, err
		}
		for i := 1; i < len(t); i++ {
			if t[i].Sub(t[i-1]) > freq {
				return nil, fmt.Errorf("gap of %s after %s exceeds period %s, %w",
					t[i].Sub(t[i-1]), t[i-1].Format(time.DateOnly), freq, ErrIrregularCadence,
				)
			}
		}
	}

	tSeries := make([]time.Time, len(t))
	ySeries := make([]float64, len(t))
	copy(tSeries, t)
	copy(ySeries, y)
	return &Dataset{
		T: tSeries,
		Y: ySeries,
	}, nil
}

// AddCovariate registers a named covariate series. The covariate must
// align with the dates of the dataset.
func (d *Dataset) AddCovariate(name string, vals []float64) error {
	if len(vals) != len(d.T) {
		return fmt.Errorf(
			"covariate %q has length of %d, but dataset has a length of %d, %w",
			name, len(vals), len(d.T), ErrDatasetLenMismatch,
		)
	}
	if _, exists := d.Covariates[name]; exists {
		return fmt.Errorf("%q, %w", name, ErrDuplicateCovariate)
	}
	if d.Covariates == nil {
		d.Covariates = make(map[string][]float64)
	}
	series := make([]float64, len(vals))
	copy(series, vals)
	d.Covariates[name] = series
	return nil
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.T)
}

// Copy deep copies the dataset so mutating the source can never reach
// the copy.
func (d *Dataset) Copy() *Dataset {
	tSeries := make([]time.Time, len(d.T))
	ySeries := make([]float64, len(d.Y))
	copy(tSeries, d.T)
	copy(ySeries, d.Y)

	var cov map[string][]float64
	if d.Covariates != nil {
		cov = make(map[string][]float64, len(d.Covariates))
		for name, vals := range d.Covariates {
			series := make([]float64, len(vals))
			copy(series, vals)
			cov[name] = series
		}
	}
	return &Dataset{
		T:          tSeries,
		Y:          ySeries,
		Covariates: cov,
	}
}

// Slice returns a deep copied window of the dataset over [i, j).
func (d *Dataset) Slice(i, j int) (*Dataset, error) {
	if i < 0 || j > len(d.T) || i >= j {
		return nil, fmt.Errorf("[%d, %d) on %d records, %w", i, j, len(d.T), ErrInvalidSliceRange)
	}
	window := &Dataset{
		T: d.T[i:j],
		Y: d.Y[i:j],
	}
	out := window.Copy()
	if d.Covariates != nil {
		out.Covariates = make(map[string][]float64, len(d.Covariates))
		for name, vals := range d.Covariates {
			series := make([]float64, j-i)
			copy(series, vals[i:j])
			out.Covariates[name] = series
		}
	}
	return out, nil
}
