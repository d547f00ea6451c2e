package denguecast

import (
	"time"

	"github.com/epilab-sg/denguecast/forecast"
)

// Results carries the point forecast and uncertainty interval per time
// point along with the fitted model components. All values are clamped
// to be non-negative since a negative case count is not meaningful.
type Results struct {
	T        []time.Time `json:"time"`
	Forecast []float64   `json:"forecast"`
	Upper    []float64   `json:"upper"`
	Lower    []float64   `json:"lower"`

	SeriesComponents      forecast.Components `json:"series_components"`
	UncertaintyComponents forecast.Components `json:"uncertainty_components"`

	// HorizonStart is the index of the first time point after the
	// training range. Entries before it are in-sample fits.
	HorizonStart int `json:"horizon_start"`
}

// Copy deep copies the results so downstream transforms, e.g. scenario
// overlays, can never reach back into the source.
func (r *Results) Copy() *Results {
	if r == nil {
		return nil
	}
	t := make([]time.Time, len(r.T))
	copy(t, r.T)
	return &Results{
		T:                     t,
		Forecast:              copyFloats(r.Forecast),
		Upper:                 copyFloats(r.Upper),
		Lower:                 copyFloats(r.Lower),
		SeriesComponents:      copyComponents(r.SeriesComponents),
		UncertaintyComponents: copyComponents(r.UncertaintyComponents),
		HorizonStart:          r.HorizonStart,
	}
}

// Horizon returns only the forecasted rows past the training range.
func (r *Results) Horizon() []Row {
	rows := r.Rows()
	if r.HorizonStart > len(rows) {
		return nil
	}
	return rows[r.HorizonStart:]
}

// Rows flattens the results into one record per time point for report
// generation.
func (r *Results) Rows() []Row {
	rows := make([]Row, 0, len(r.T))
	for i, tPnt := range r.T {
		row := Row{
			Date:     tPnt,
			Forecast: r.Forecast[i],
			Lower:    r.Lower[i],
			Upper:    r.Upper[i],
		}
		if i < len(r.SeriesComponents.Trend) {
			row.Trend = r.SeriesComponents.Trend[i]
		}
		rows = append(rows, row)
	}
	return rows
}

// Row is a single reportable forecast record.
type Row struct {
	Date     time.Time `json:"date"`
	Forecast float64   `json:"forecast"`
	Lower    float64   `json:"lower"`
	Upper    float64   `json:"upper"`
	Trend    float64   `json:"trend"`
}

func copyFloats(src []float64) []float64 {
	if src == nil {
		return nil
	}
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}

func copyComponents(c forecast.Components) forecast.Components {
	return forecast.Components{
		Trend:       copyFloats(c.Trend),
		Seasonality: copyFloats(c.Seasonality),
		Event:       copyFloats(c.Event),
	}
}
