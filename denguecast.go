// Package denguecast forecasts weekly dengue case counts. A Forecaster
// pairs two linear models: a series model decomposing the counts into
// trend, early-history changepoints, and yearly seasonality, and an
// uncertainty model fit on the rolling spread of the series residual
// which widens the interval through historically volatile periods.
// Forecasted counts and interval bounds are clamped to be non-negative.
package denguecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/epilab-sg/denguecast/forecast"
	"github.com/epilab-sg/denguecast/stats"
	"github.com/epilab-sg/denguecast/timedataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptyTimeDataset     = errors.New("no time dataset or uninitialized")
	ErrBelowTrainingMinimum = errors.New("fewer observations than the configured training minimum")
	ErrInsufficientResidual = errors.New("insufficient samples from residual after outlier removal")
	ErrNoOptionsInModel     = errors.New("no options set in model")
	ErrNonPositiveHorizon   = errors.New("forecast horizon must be at least one period")
	ErrUntrainedForecaster  = errors.New("forecaster must be fit before forecasting")
	ErrCannotInferInterval  = errors.New("cannot infer interval from training data time")
)

const (
	MinResidualWindow       = 2
	MinResidualSize         = 2
	MinResidualWindowFactor = 4
)

// Forecaster fits the dengue case-count model and generates forecasts
// with uncertainty intervals.
type Forecaster struct {
	opt *Options

	seriesForecast      *forecast.Forecast
	uncertaintyForecast *forecast.Forecast

	fitTrainingData *timedataset.Dataset
	fitResults      *Results
	residual        []float64
}

// New creates a Forecaster with the provided options. If none are
// provided the weekly dengue defaults are used.
func New(opt *Options) (*Forecaster, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}

	f := &Forecaster{opt: opt}

	seriesForecast, err := forecast.New(f.opt.SeriesOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize series forecast, %w", err)
	}
	f.seriesForecast = seriesForecast

	uncertaintyForecast, err := forecast.New(f.opt.UncertaintyOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize uncertainty forecast, %w", err)
	}
	f.uncertaintyForecast = uncertaintyForecast
	return f, nil
}

// NewFromModel rebuilds a Forecaster from a serialized model produced
// by a previous call to Model. The instance forecasts immediately
// without retraining.
func NewFromModel(model Model) (*Forecaster, error) {
	if model.Options == nil {
		return nil, ErrNoOptionsInModel
	}
	opt := model.Options
	opt.SeriesOptions = model.Series.Options
	opt.UncertaintyOptions = model.Residual.Options

	seriesForecast, err := forecast.NewFromModel(model.Series)
	if err != nil {
		return nil, fmt.Errorf("unable to load series model, %w", err)
	}
	uncertaintyForecast, err := forecast.NewFromModel(model.Residual)
	if err != nil {
		return nil, fmt.Errorf("unable to load uncertainty model, %w", err)
	}
	return &Forecaster{
		opt:                 opt,
		seriesForecast:      seriesForecast,
		uncertaintyForecast: uncertaintyForecast,
	}, nil
}

// Fit trains the series and uncertainty models on the dataset. The
// input is deep copied first so later mutation of the caller's dataset
// cannot reach the fit state.
func (f *Forecaster) Fit(d *timedataset.Dataset) error {
	if d == nil || d.Len() == 0 {
		return ErrEmptyTimeDataset
	}
	if minPeriods := f.opt.MinTrainingPeriods; minPeriods > 0 && d.Len() < minPeriods {
		return fmt.Errorf("%d observations with a minimum of %d, %w",
			d.Len(), minPeriods, ErrBelowTrainingMinimum)
	}

	f.fitTrainingData = d.Copy()
	td := d.Copy()

	residual, err := f.fitSeriesWithOutliers(td.T, td.Y)
	if err != nil {
		return err
	}
	f.residual = residual

	if err := f.fitUncertainty(td.T, residual); err != nil {
		return err
	}

	f.fitResults, err = f.Predict(d.T)
	if err != nil {
		return fmt.Errorf("unable to get predicted values from training set, %w", err)
	}
	return nil
}

// fitSeriesWithOutliers iterates series fits, masking residual outliers
// between passes when outlier options are set. Masked points become NaN
// in the training target and are dropped by the next fit.
func (f *Forecaster) fitSeriesWithOutliers(t []time.Time, y []float64) ([]float64, error) {
	numPasses := 0
	if f.opt.OutlierOptions != nil {
		numPasses = f.opt.OutlierOptions.NumPasses
	}

	var residual []float64
	for pass := 0; pass <= numPasses; pass++ {
		if err := f.seriesForecast.Fit(t, y); err != nil {
			return nil, fmt.Errorf("unable to fit case count series, %w", err)
		}
		residual = f.seriesForecast.Residuals()

		if f.opt.OutlierOptions == nil {
			break
		}

		outlierIdxs := stats.DetectOutliers(
			residual,
			f.opt.OutlierOptions.LowerPercentile,
			f.opt.OutlierOptions.UpperPercentile,
			f.opt.OutlierOptions.TukeyFactor,
		)
		if len(outlierIdxs) == 0 {
			break
		}
		for _, idx := range outlierIdxs {
			y[idx] = math.NaN()
		}
	}
	return residual, nil
}

// fitUncertainty models the rolling window standard deviation of the
// series residual scaled by the configured z-score. Windows containing
// masked outliers produce NaN spreads and are dropped by the fit.
func (f *Forecaster) fitUncertainty(t []time.Time, residual []float64) error {
	if len(residual) < MinResidualSize {
		return ErrInsufficientResidual
	}

	// limit the window to a quarter of the residual series
	if len(residual)/MinResidualWindowFactor < f.opt.ResidualWindow {
		f.opt.ResidualWindow = len(residual) / MinResidualWindowFactor
	}
	if f.opt.ResidualWindow < MinResidualWindow {
		f.opt.ResidualWindow = MinResidualWindow
	}
	window := f.opt.ResidualWindow

	numWindows := len(residual) - window + 1
	stddevSeries := make([]float64, numWindows)
	for i := 0; i < numWindows; i++ {
		_, stddev := stat.MeanStdDev(residual[i:i+window], nil)
		stddevSeries[i] = f.opt.ResidualZscore * stddev
	}

	// shift by half the window since the rolling stddev behaves like a
	// FIR filter with a group delay of window/2
	start := window / 2
	end := len(t) - window/2 - window%2 + 1

	if err := f.uncertaintyForecast.Fit(t[start:end], stddevSeries); err != nil {
		return fmt.Errorf("unable to fit residual spread, %w", err)
	}
	return nil
}

// Forecast projects the fit forward by horizon periods past the end of
// the training data, returning the in-sample fit followed by the future
// projection. HorizonStart marks where the projection begins.
func (f *Forecaster) Forecast(horizon int) (*Results, error) {
	if f.fitTrainingData == nil {
		return nil, ErrUntrainedForecaster
	}
	if horizon <= 0 {
		return nil, fmt.Errorf("got %d, %w", horizon, ErrNonPositiveHorizon)
	}

	trainT := f.fitTrainingData.T
	if len(trainT) < 2 {
		return nil, ErrCannotInferInterval
	}
	period := f.seriesForecast.Period()
	if period <= 0 {
		period = trainT[1].Sub(trainT[0])
	}

	t := make([]time.Time, 0, len(trainT)+horizon)
	t = append(t, trainT...)
	lastTime := trainT[len(trainT)-1]
	for i := 1; i <= horizon; i++ {
		t = append(t, lastTime.Add(time.Duration(i)*period))
	}
	return f.Predict(t)
}

// Predict generates the forecast, upper, and lower values for any set
// of time samples. Negative case counts are not meaningful so all three
// series are clamped at zero after the interval is formed.
func (f *Forecaster) Predict(t []time.Time) (*Results, error) {
	seriesRes, seriesComp, err := f.seriesForecast.Predict(t)
	if err != nil {
		return nil, fmt.Errorf("unable to predict case count series, %w", err)
	}
	uncertaintyRes, uncertaintyComp, err := f.uncertaintyForecast.Predict(t)
	if err != nil {
		return nil, fmt.Errorf("unable to predict residual spread, %w", err)
	}

	// the interval half-width is a spread estimate and must not dip
	// below zero
	for i := range uncertaintyRes {
		if uncertaintyRes[i] < 0.0 {
			uncertaintyRes[i] = 0.0
		}
	}

	upper := make([]float64, len(seriesRes))
	lower := make([]float64, len(seriesRes))
	copy(upper, seriesRes)
	copy(lower, seriesRes)
	floats.Add(upper, uncertaintyRes)
	floats.Sub(lower, uncertaintyRes)

	clampNonNegative(seriesRes)
	clampNonNegative(upper)
	clampNonNegative(lower)

	return &Results{
		T:                     t,
		Forecast:              seriesRes,
		Upper:                 upper,
		Lower:                 lower,
		SeriesComponents:      seriesComp,
		UncertaintyComponents: uncertaintyComp,
		HorizonStart:          f.horizonStart(t),
	}, nil
}

// horizonStart counts the leading time points covered by the training
// range, assuming the input is in increasing order.
func (f *Forecaster) horizonStart(t []time.Time) int {
	trainEnd := f.seriesForecast.TrainEndTime()
	for i, tPnt := range t {
		if tPnt.After(trainEnd) {
			return i
		}
	}
	return len(t)
}

func clampNonNegative(vals []float64) {
	for i, v := range vals {
		if v < 0.0 {
			vals[i] = 0.0
		}
	}
}

// Residuals returns the difference between the final series fit and the
// training data.
func (f *Forecaster) Residuals() []float64 {
	return copyFloats(f.residual)
}

// TrendComponent returns the fit trend formed by the growth term and
// changepoints.
func (f *Forecaster) TrendComponent() []float64 {
	return f.seriesForecast.TrendComponent()
}

// SeasonalityComponent returns the fit yearly seasonal component.
func (f *Forecaster) SeasonalityComponent() []float64 {
	return f.seriesForecast.SeasonalityComponent()
}

// SeriesIntercept returns the intercept of the series fit.
func (f *Forecaster) SeriesIntercept() float64 {
	return f.seriesForecast.Intercept()
}

// SeriesCoefficients returns the series coefficients keyed by component
// label.
func (f *Forecaster) SeriesCoefficients() (map[string]float64, error) {
	return f.seriesForecast.Coefficients()
}

// UncertaintyIntercept returns the intercept of the uncertainty fit.
func (f *Forecaster) UncertaintyIntercept() float64 {
	return f.uncertaintyForecast.Intercept()
}

// UncertaintyCoefficients returns the uncertainty coefficients keyed by
// component label.
func (f *Forecaster) UncertaintyCoefficients() (map[string]float64, error) {
	return f.uncertaintyForecast.Coefficients()
}

// FitScores returns the in-sample scores of the series fit.
func (f *Forecaster) FitScores() forecast.Scores {
	return f.seriesForecast.Scores()
}

// TrainingData returns the training data used to fit the current model.
func (f *Forecaster) TrainingData() *timedataset.Dataset {
	return f.fitTrainingData
}

// FitResults returns the in-sample fit with forecast, upper, and lower
// values.
func (f *Forecaster) FitResults() *Results {
	return f.fitResults
}

// Model returns a serializable representation of the options, series
// model, and uncertainty model, usable with NewFromModel to skip the
// training step.
func (f *Forecaster) Model() (Model, error) {
	seriesModel, err := f.seriesForecast.Model()
	if err != nil {
		return Model{}, fmt.Errorf("unable to fetch series model, %w", err)
	}
	uncertaintyModel, err := f.uncertaintyForecast.Model()
	if err != nil {
		return Model{}, fmt.Errorf("unable to fetch uncertainty model, %w", err)
	}
	return Model{
		Options:  f.opt,
		Series:   seriesModel,
		Residual: uncertaintyModel,
	}, nil
}

// SeriesModelEq returns the series fit as y ~ b + m1x1 + m2x2 ...
func (f *Forecaster) SeriesModelEq() (string, error) {
	return f.seriesForecast.ModelEq()
}

// UncertaintyModelEq returns the uncertainty fit as y ~ b + m1x1 + m2x2 ...
func (f *Forecaster) UncertaintyModelEq() (string, error) {
	return f.uncertaintyForecast.ModelEq()
}
