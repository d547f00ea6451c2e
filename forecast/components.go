package forecast

// Components is the decomposition of a prediction. Trend is on the
// case-count scale. With a log transformed fit the seasonality and
// event components are reported on the log scale as additive factors.
type Components struct {
	Trend       []float64 `json:"trend"`
	Seasonality []float64 `json:"seasonality"`
	Event       []float64 `json:"event"`
}
