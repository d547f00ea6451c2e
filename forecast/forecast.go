// Package forecast fits a single additive linear model of a weekly case
// count series. The series is decomposed into an intercept, a growth
// term, trend changepoints restricted to the leading fraction of the
// history, yearly fourier seasonality, and optional holiday indicator
// regressors. With the log transform enabled the decomposition happens
// on log1p of the counts so seasonal amplitude scales with the trend
// level.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/epilab-sg/denguecast/feature"
	"github.com/epilab-sg/denguecast/models"
	"github.com/epilab-sg/denguecast/timedataset"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrUninitializedForecast    = errors.New("uninitialized forecast")
	ErrInsufficientTrainingData = errors.New("insufficient training data after removing NaNs")
	ErrNoModelCoefficients      = errors.New("no model coefficients from fit")
	ErrUntrainedForecast        = errors.New("model must be fit before predicting")
)

// Forecast represents a single fit of the series model. A new fit
// always produces a new Forecast; fitting never mutates a previously
// trained instance.
type Forecast struct {
	opt    *Options
	scores *Scores // in-sample fit quality

	fLabels *feature.Labels

	trainStartTime time.Time
	trainEndTime   time.Time
	period         time.Duration

	residual        []float64
	trainComponents Components

	coef      []float64
	intercept float64
	trained   bool
}

// New creates a new forecast instance with the given options. If none
// are provided the weekly dengue defaults are used.
func New(opt *Options) (*Forecast, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	return &Forecast{opt: opt}, nil
}

// NewFromModel rebuilds a forecast instance from a serialized Model.
// The instance can be used for inference immediately without retraining.
func NewFromModel(model Model) (*Forecast, error) {
	fLabels, err := model.Weights.FeatureLabels()
	if err != nil {
		return nil, err
	}

	f := &Forecast{
		opt:            model.Options,
		scores:         model.Scores,
		fLabels:        fLabels,
		trainStartTime: model.TrainStartTime,
		trainEndTime:   model.TrainEndTime,
		period:         model.Period,
		intercept:      model.Weights.Intercept,
		coef:           model.Weights.Coefficients(),
		trained:        true,
	}
	return f, nil
}

func (f *Forecast) generateFeatures(t []time.Time) feature.Set {
	x := generateGrowthFeatures(t, f.opt, f.trainStartTime, f.trainEndTime)
	x.Update(generateSeasonalityFeatures(t, f.opt))
	x.Update(generateChangepointFeatures(t, f.opt.ChangepointOptions.Changepoints, f.trainEndTime))
	x.Update(f.opt.HolidayOptions.generateHolidayFeatures(t, f.period))
	return x
}

// Fit trains the model on the input series. NaN values are dropped from
// training but retained in the residual and score calculations.
func (f *Forecast) Fit(t []time.Time, y []float64) error {
	if f == nil {
		return ErrUninitializedForecast
	}
	if len(t) != len(y) {
		return fmt.Errorf(
			"time feature has length of %d, but values has a length of %d, %w",
			len(t), len(y), timedataset.ErrDatasetLenMismatch,
		)
	}

	var lastT time.Time
	for i, currT := range t {
		if !currT.After(lastT) {
			return fmt.Errorf("non-monotonic at %d, %w", i, timedataset.ErrNonMonotonic)
		}
		lastT = currT
	}

	trainingT := make([]time.Time, 0, len(t))
	trainingY := make([]float64, 0, len(y))
	for i := 0; i < len(t); i++ {
		if math.IsNaN(y[i]) {
			continue
		}
		trainingT = append(trainingT, t[i])
		trainingY = append(trainingY, y[i])
	}
	if len(trainingT) <= 1 {
		return ErrInsufficientTrainingData
	}

	f.trainStartTime = trainingT[0]
	f.trainEndTime = trainingT[len(trainingT)-1]
	period, err := timedataset.TimeSlice(trainingT).EstimateFreq()
	if err != nil {
		return err
	}
	f.period = period

	if len(f.opt.ChangepointOptions.Changepoints) == 0 && f.opt.ChangepointOptions.Auto {
		if f.opt.ChangepointOptions.AutoNumChangepoints == 0 {
			f.opt.ChangepointOptions.AutoNumChangepoints = DefaultAutoNumChangepoints
		}
		f.opt.ChangepointOptions.Changepoints = generateAutoChangepoints(
			trainingT,
			f.opt.ChangepointOptions.AutoNumChangepoints,
			f.opt.ChangepointOptions.Fraction,
		)
	}

	x := f.generateFeatures(trainingT)
	f.fLabels = x.Labels()

	target := make([]float64, len(trainingY))
	copy(target, trainingY)
	if f.opt.LogTransform {
		for i, v := range target {
			target[i] = math.Log1p(v)
		}
	}

	designMx := x.Matrix(false)
	targetMx := mat.NewDense(len(target), 1, target)

	lassoOpt := f.opt.newLassoOptions()
	lassoOpt.Lambda = 0.0
	lambdas := f.opt.Regularization
	switch {
	case len(lambdas) == 1:
		lassoOpt.Lambda = lambdas[0]
	case len(lambdas) > 1:
		lambda, err := models.SelectLambda(designMx, targetMx, lambdas, lassoOpt)
		if err != nil {
			return fmt.Errorf("unable to select regularization lambda, %w", err)
		}
		lassoOpt.Lambda = lambda
	}

	lr, err := models.NewLassoRegression(lassoOpt)
	if err != nil {
		return err
	}
	if err := lr.Fit(designMx, targetMx); err != nil {
		return fmt.Errorf("unable to fit series model, %w", err)
	}
	f.intercept = lr.Intercept()
	f.coef = lr.Coef()
	f.trained = true

	// score and compute residuals over the full input including the NaN
	// masked rows
	predicted, comp, err := f.Predict(t)
	if err != nil {
		return err
	}
	f.trainComponents = comp

	scores, err := NewScores(predicted, y)
	if err != nil {
		return err
	}
	f.scores = scores

	residual := make([]float64, len(t))
	for i := range residual {
		residual[i] = y[i] - predicted[i]
	}
	f.residual = residual

	return nil
}

// Predict takes a slice of times in any order and produces the
// predicted case counts for those times given a trained model.
func (f *Forecast) Predict(t []time.Time) ([]float64, Components, error) {
	if f == nil {
		return nil, Components{}, ErrUninitializedForecast
	}
	if !f.trained {
		return nil, Components{}, ErrUntrainedForecast
	}

	x := f.generateFeatures(t)

	trendSet := make(feature.Set)
	seasonalitySet := make(feature.Set)
	eventSet := make(feature.Set)
	for label, feat := range x {
		switch feat.F.Type() {
		case feature.FeatureTypeGrowth, feature.FeatureTypeChangepoint:
			trendSet[label] = feat
		case feature.FeatureTypeSeasonality:
			seasonalitySet[label] = feat
		case feature.FeatureTypeEvent:
			eventSet[label] = feat
		}
	}

	res := f.runInference(x, true)
	trend := f.runInference(trendSet, true)
	if f.opt.LogTransform {
		for i := range res {
			res[i] = math.Expm1(res[i])
		}
		for i := range trend {
			trend[i] = math.Expm1(trend[i])
		}
	}

	comp := Components{
		Trend:       trend,
		Seasonality: f.runInference(seasonalitySet, false),
		Event:       f.runInference(eventSet, false),
	}
	return res, comp, nil
}

func (f *Forecast) runInference(x feature.Set, withIntercept bool) []float64 {
	if len(x) == 0 {
		return nil
	}

	xLabels := x.Labels()
	n := xLabels.Len()
	if withIntercept {
		n++
	}

	weights := make([]float64, 0, n)
	if withIntercept {
		weights = append(weights, f.intercept)
	}
	for _, xFeat := range xLabels.Labels() {
		if wIdx, exists := f.fLabels.Index(xFeat); exists {
			weights = append(weights, f.coef[wIdx])
		} else {
			weights = append(weights, 0.0)
		}
	}

	wMx := mat.NewDense(1, n, weights)
	featMx := x.Matrix(withIntercept).T()

	var resMx mat.Dense
	resMx.Mul(wMx, featMx)
	return mat.Row(nil, 0, &resMx)
}

// FeatureLabels returns the slice of feature labels in the order of the
// coefficients
func (f *Forecast) FeatureLabels() []feature.Feature {
	if f == nil || f.fLabels == nil {
		return nil
	}
	return f.fLabels.Labels()
}

// Coefficients returns the model coefficients keyed by the string
// representation of each feature label
func (f *Forecast) Coefficients() (map[string]float64, error) {
	if f == nil {
		return nil, ErrUninitializedForecast
	}
	labels := f.fLabels.Labels()
	if len(labels) == 0 || len(f.coef) == 0 {
		return nil, ErrNoModelCoefficients
	}
	coef := make(map[string]float64, len(f.coef))
	for i := 0; i < len(f.coef); i++ {
		coef[labels[i].String()] = f.coef[i]
	}
	return coef, nil
}

// Intercept returns the intercept of the forecast model
func (f *Forecast) Intercept() float64 {
	if f == nil {
		return 0
	}
	return f.intercept
}

// TrainEndTime returns the last observed training time.
func (f *Forecast) TrainEndTime() time.Time {
	if f == nil {
		return time.Time{}
	}
	return f.trainEndTime
}

// Period returns the sampling period inferred from the training data.
func (f *Forecast) Period() time.Duration {
	if f == nil {
		return 0
	}
	return f.period
}

// Scores returns the in-sample fit scores.
func (f *Forecast) Scores() Scores {
	if f == nil || f.scores == nil {
		return Scores{}
	}
	return *f.scores
}

// Residuals returns the difference between the training data and the
// fit values on the case-count scale.
func (f *Forecast) Residuals() []float64 {
	if f == nil {
		return nil
	}
	res := make([]float64, len(f.residual))
	copy(res, f.residual)
	return res
}

// TrendComponent returns the trend determined by the growth term and
// changepoints after fitting.
func (f *Forecast) TrendComponent() []float64 {
	if f == nil {
		return nil
	}
	res := make([]float64, len(f.trainComponents.Trend))
	copy(res, f.trainComponents.Trend)
	return res
}

// SeasonalityComponent returns the yearly seasonal component after
// fitting.
func (f *Forecast) SeasonalityComponent() []float64 {
	if f == nil {
		return nil
	}
	res := make([]float64, len(f.trainComponents.Seasonality))
	copy(res, f.trainComponents.Seasonality)
	return res
}

// Model returns the serializable format of the fit composed of the
// options, intercept, labeled coefficients, and fit scores.
func (f *Forecast) Model() (Model, error) {
	if f == nil {
		return Model{}, ErrUninitializedForecast
	}
	if !f.trained {
		return Model{}, ErrUntrainedForecast
	}

	labels := f.fLabels.Labels()
	fws := make([]FeatureWeight, 0, len(f.coef))
	for i, c := range f.coef {
		fws = append(fws, FeatureWeight{
			Labels: labels[i].Decode(),
			Type:   labels[i].Type(),
			Value:  c,
		})
	}
	m := Model{
		TrainStartTime: f.trainStartTime,
		TrainEndTime:   f.trainEndTime,
		Period:         f.period,
		Options:        f.opt,
		Scores:         f.scores,
		Weights: Weights{
			Intercept: f.intercept,
			Coef:      fws,
		},
	}
	return m, nil
}

// ModelEq returns a string representation of the model linear equation
// in the format of y ~ b + m1x1 + m2x2 + ...
func (f *Forecast) ModelEq() (string, error) {
	if f == nil {
		return "", ErrUninitializedForecast
	}

	coef, err := f.Coefficients()
	if err != nil {
		return "", err
	}

	eq := fmt.Sprintf("y ~ %.2f", f.Intercept())
	for _, label := range f.fLabels.Labels() {
		w := coef[label.String()]
		if w == 0 {
			continue
		}
		eq += fmt.Sprintf("+%.2f*%s", w, label)
	}
	return eq, nil
}
