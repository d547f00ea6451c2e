package forecast

import (
	"github.com/epilab-sg/denguecast/changepoint"
	"github.com/epilab-sg/denguecast/models"
)

const (
	// DefaultAutoNumChangepoints is the number of uniformly spaced trend
	// changepoints generated when none are supplied.
	DefaultAutoNumChangepoints = 10

	// DefaultChangepointFraction restricts auto changepoints to the
	// leading portion of the training range. Trend shifts learned near
	// the end of the history have no future data to validate against and
	// tend to overfit the boundary.
	DefaultChangepointFraction = 0.40

	// DefaultYearlyOrders is the number of fourier pairs modelling the
	// yearly dengue cycle.
	DefaultYearlyOrders = 10
)

// Options configures a single linear series fit. The input cadence is
// weekly so there are no sub-weekly seasonal terms to configure.
type Options struct {
	// LogTransform fits on log1p of the case counts so that seasonal
	// swings scale with the trend level instead of staying a fixed
	// amplitude.
	LogTransform bool `json:"log_transform"`

	// GrowthType is the base trend regressor, feature.GrowthLinear or
	// empty for an intercept-only base.
	GrowthType string `json:"growth_type"`

	ChangepointOptions ChangepointOptions `json:"changepoint_options"`

	// YearlyOrders enables the yearly seasonal fourier terms when
	// positive.
	YearlyOrders int `json:"yearly_orders"`

	HolidayOptions HolidayOptions `json:"holiday_options"`

	// Regularization holds the lasso lambda candidates. A single value
	// is used as-is; multiple candidates are scored on a temporal
	// validation split and the best is kept. 0.0 converges to OLS.
	Regularization []float64 `json:"regularization"`

	Iterations int     `json:"iterations"`
	Tolerance  float64 `json:"tolerance"`
}

// NewDefaultOptions returns the forecast options tuned for weekly
// dengue case counts.
func NewDefaultOptions() *Options {
	return &Options{
		LogTransform: true,
		GrowthType:   "linear",
		ChangepointOptions: ChangepointOptions{
			Auto:                true,
			AutoNumChangepoints: DefaultAutoNumChangepoints,
			Fraction:            DefaultChangepointFraction,
		},
		YearlyOrders:   DefaultYearlyOrders,
		Regularization: []float64{1.0},
	}
}

func (o *Options) newLassoOptions() *models.LassoOptions {
	lassoOpt := models.NewDefaultLassoOptions()
	if o.Iterations > 0 {
		lassoOpt.Iterations = o.Iterations
	}
	if o.Tolerance > 0 {
		lassoOpt.Tolerance = o.Tolerance
	}
	return lassoOpt
}

// ChangepointOptions configures how trend changepoints are placed.
// Explicit changepoints take precedence; otherwise Auto generates
// AutoNumChangepoints uniformly over the leading Fraction of the
// training range.
type ChangepointOptions struct {
	Changepoints        []changepoint.Changepoint `json:"changepoints"`
	Auto                bool                      `json:"auto"`
	AutoNumChangepoints int                       `json:"auto_num_changepoints"`
	Fraction            float64                   `json:"fraction"`
}
