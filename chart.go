package denguecast

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/epilab-sg/denguecast/timedataset"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineTSeries generates an echart multi-line chart for some arbitrary
// time/value combination. Each series must have the same length as the
// input time slice. NaN values render as gaps.
func LineTSeries(title string, seriesName []string, t []time.Time, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			if math.IsNaN(y[i][j]) {
				lineData[i] = append(lineData[i], opts.LineData{Value: "-"})
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(t)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}
	return line
}

// LineForecaster generates an echart line chart for a fit result
// plotting the observed case counts along with the forecast, upper, and
// lower values over the fit and projected range.
func LineForecaster(trainingData *timedataset.Dataset, res *Results) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Weekly Case Forecast",
			},
		),
	)

	lineDataActual := make([]opts.LineData, 0, len(res.T))
	lineDataForecast := make([]opts.LineData, 0, len(res.T))
	lineDataUpper := make([]opts.LineData, 0, len(res.T))
	lineDataLower := make([]opts.LineData, 0, len(res.T))

	for i := 0; i < len(res.T); i++ {
		if i < trainingData.Len() && !math.IsNaN(trainingData.Y[i]) {
			lineDataActual = append(lineDataActual, opts.LineData{Value: trainingData.Y[i]})
		} else {
			lineDataActual = append(lineDataActual, opts.LineData{Value: "-"})
		}
		lineDataForecast = append(lineDataForecast, opts.LineData{Value: res.Forecast[i]})
		lineDataUpper = append(lineDataUpper, opts.LineData{Value: res.Upper[i]})
		lineDataLower = append(lineDataLower, opts.LineData{Value: res.Lower[i]})
	}

	line.SetXAxis(res.T).
		AddSeries("Observed", lineDataActual).
		AddSeries("Forecast", lineDataForecast).
		AddSeries("Upper", lineDataUpper).
		AddSeries("Lower", lineDataLower)
	return line
}

// LineComparison overlays a baseline forecast with a transformed one,
// e.g. an intervention scenario, over the same time axis.
func LineComparison(title string, baseline, scenario *Results) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	lineDataBaseline := make([]opts.LineData, 0, len(baseline.T))
	lineDataScenario := make([]opts.LineData, 0, len(scenario.T))
	for i := 0; i < len(baseline.T); i++ {
		lineDataBaseline = append(lineDataBaseline, opts.LineData{Value: baseline.Forecast[i]})
	}
	for i := 0; i < len(scenario.T); i++ {
		lineDataScenario = append(lineDataScenario, opts.LineData{Value: scenario.Forecast[i]})
	}

	line.SetXAxis(baseline.T).
		AddSeries("Baseline", lineDataBaseline).
		AddSeries("Scenario", lineDataScenario)
	return line
}

// PlotOpts sets the horizon to forecast out when plotting. By default
// 10% of the training size is projected.
type PlotOpts struct {
	HorizonCnt int
}

// PlotFit renders an html page showing the fit with its projection,
// the model components, and the fit residual.
func (f *Forecaster) PlotFit(w io.Writer, opt *PlotOpts) error {
	td := f.TrainingData()
	if td == nil {
		return ErrUntrainedForecaster
	}

	horizonCnt := td.Len() / 10
	if opt != nil && opt.HorizonCnt > 0 {
		horizonCnt = opt.HorizonCnt
	}
	if horizonCnt < 1 {
		horizonCnt = 1
	}

	res, err := f.Forecast(horizonCnt)
	if err != nil {
		return fmt.Errorf("unable to forecast plot horizon, %w", err)
	}

	residuals := f.Residuals()
	for len(residuals) < len(res.T) {
		residuals = append(residuals, math.NaN())
	}

	page := components.NewPage()
	page.AddCharts(
		LineForecaster(td, res),
		LineTSeries(
			"Forecast Components",
			[]string{"Trend", "Seasonality"},
			res.T,
			[][]float64{
				res.SeriesComponents.Trend,
				res.SeriesComponents.Seasonality,
			},
		),
		LineTSeries(
			"Fit Residual",
			[]string{"Residual"},
			res.T,
			[][]float64{residuals},
		),
	)
	return page.Render(w)
}
