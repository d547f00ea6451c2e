package denguecast

import (
	"github.com/epilab-sg/denguecast/forecast"
)

const (
	// DefaultResidualWindow is the rolling window, in weekly periods,
	// used to estimate the local residual spread for the uncertainty
	// bands. A quarter of observations smooths over single-week
	// reporting noise without flattening epidemic-year variance.
	DefaultResidualWindow = 13

	// DefaultResidualZscore scales the rolling residual stddev to a
	// two-sided 95% interval.
	DefaultResidualZscore = 1.96

	// DefaultMinTrainingPeriods requires two full yearly cycles so the
	// seasonal fourier terms are identified from repeated seasons rather
	// than a single wave.
	DefaultMinTrainingPeriods = 104
)

// OutlierOptions masks one-off reporting artifacts between fit passes
// using Tukey fences on the fit residual. Masking is off by default;
// epidemic waves are the signal of interest and wide spikes that span
// multiple weeks survive the fences anyway.
type OutlierOptions struct {
	NumPasses       int     `json:"num_passes"`
	UpperPercentile float64 `json:"upper_percentile"`
	LowerPercentile float64 `json:"lower_percentile"`
	TukeyFactor     float64 `json:"tukey_factor"`
}

// NewOutlierOptions returns conservative defaults for residual outlier
// masking.
func NewOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		NumPasses:       3,
		UpperPercentile: 0.9,
		LowerPercentile: 0.1,
		TukeyFactor:     1.0,
	}
}

// Options configures a Forecaster pairing the case-count series model
// with the uncertainty model fit on the rolling residual spread.
type Options struct {
	SeriesOptions      *forecast.Options `json:"series_options"`
	UncertaintyOptions *forecast.Options `json:"uncertainty_options"`

	OutlierOptions *OutlierOptions `json:"outlier_options"`

	// ResidualWindow is the rolling stddev window size and is capped at
	// a quarter of the available residual during fitting.
	ResidualWindow int `json:"residual_window"`

	// ResidualZscore scales the rolling residual stddev into the
	// interval half-width.
	ResidualZscore float64 `json:"residual_zscore"`

	// MinTrainingPeriods rejects training sets shorter than this many
	// observations.
	MinTrainingPeriods int `json:"min_training_periods"`
}

// NewDefaultOptions returns the forecaster options tuned for weekly
// dengue case counts with a 95% uncertainty interval.
func NewDefaultOptions() *Options {
	uncertaintyOpt := forecast.NewDefaultOptions()
	// the rolling residual spread is already non-negative and roughly
	// stationary, so model it on the raw scale with a light seasonal
	// term and no changepoints
	uncertaintyOpt.LogTransform = false
	uncertaintyOpt.ChangepointOptions = forecast.ChangepointOptions{}
	uncertaintyOpt.YearlyOrders = 3

	return &Options{
		SeriesOptions:      forecast.NewDefaultOptions(),
		UncertaintyOptions: uncertaintyOpt,
		ResidualWindow:     DefaultResidualWindow,
		ResidualZscore:     DefaultResidualZscore,
		MinTrainingPeriods: DefaultMinTrainingPeriods,
	}
}
