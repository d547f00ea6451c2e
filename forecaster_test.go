package denguecast

import (
	"math/rand"
	"testing"
	"time"

	"github.com/epilab-sg/denguecast/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simulatedDataset(tb testing.TB, n int, base, amp, noise float64) *timedataset.Dataset {
	tb.Helper()

	nowFunc := func() time.Time {
		return time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	}
	tSeries := timedataset.GenerateWeeklyT(n, nowFunc)

	rnd := rand.New(rand.NewSource(42))
	y := make([]float64, 0, n)
	wave := timedataset.GenerateYearlyWaveY(tSeries, amp, 1.0, 0)
	for i := 0; i < n; i++ {
		y = append(y, base+wave[i]+rnd.NormFloat64()*noise)
	}
	timedataset.Series(y).ClampMin(0)

	d, err := timedataset.NewDataset(tSeries, y)
	require.Nil(tb, err)
	return d
}

func TestForecasterFit(t *testing.T) {
	d := simulatedDataset(t, 208, 300.0, 200.0, 10.0)

	f, err := New(nil)
	require.Nil(t, err)
	require.Nil(t, f.Fit(d))

	res := f.FitResults()
	require.NotNil(t, res)
	assert.Len(t, res.Forecast, d.Len())
	assert.Equal(t, d.Len(), res.HorizonStart)

	scores := f.FitScores()
	assert.Greater(t, scores.R2, 0.9)
}

func TestForecasterFitErrors(t *testing.T) {
	f, err := New(nil)
	require.Nil(t, err)

	assert.ErrorIs(t, f.Fit(nil), ErrEmptyTimeDataset)

	short := simulatedDataset(t, 52, 300.0, 200.0, 10.0)
	assert.ErrorIs(t, f.Fit(short), ErrBelowTrainingMinimum)
}

func TestForecasterFitCopiesInput(t *testing.T) {
	d := simulatedDataset(t, 208, 300.0, 200.0, 10.0)

	f, err := New(nil)
	require.Nil(t, err)
	require.Nil(t, f.Fit(d))

	before, err := f.Forecast(8)
	require.Nil(t, err)

	// mutating the caller's dataset must not change the fit state
	for i := range d.Y {
		d.Y[i] = 0
	}
	after, err := f.Forecast(8)
	require.Nil(t, err)
	assert.Equal(t, before.Forecast, after.Forecast)
}

func TestForecasterForecast(t *testing.T) {
	d := simulatedDataset(t, 208, 300.0, 200.0, 10.0)

	f, err := New(nil)
	require.Nil(t, err)
	require.Nil(t, f.Fit(d))

	horizon := 16
	res, err := f.Forecast(horizon)
	require.Nil(t, err)

	require.Len(t, res.T, d.Len()+horizon)
	assert.Equal(t, d.Len(), res.HorizonStart)

	// future points continue at the weekly cadence
	for i := res.HorizonStart; i < len(res.T); i++ {
		assert.Equal(t, timedataset.Week, res.T[i].Sub(res.T[i-1]))
	}

	for i := range res.Forecast {
		assert.True(t, res.Lower[i] <= res.Forecast[i], "lower above forecast at %d", i)
		assert.True(t, res.Forecast[i] <= res.Upper[i], "forecast above upper at %d", i)
	}

	rows := res.Horizon()
	assert.Len(t, rows, horizon)
}

func TestForecasterForecastErrors(t *testing.T) {
	f, err := New(nil)
	require.Nil(t, err)
	_, err = f.Forecast(8)
	assert.ErrorIs(t, err, ErrUntrainedForecaster)

	d := simulatedDataset(t, 208, 300.0, 200.0, 10.0)
	require.Nil(t, f.Fit(d))
	_, err = f.Forecast(0)
	assert.ErrorIs(t, err, ErrNonPositiveHorizon)
	_, err = f.Forecast(-3)
	assert.ErrorIs(t, err, ErrNonPositiveHorizon)
}

func TestForecasterClampsNegative(t *testing.T) {
	// a low baseline with a deep seasonal trough drives the raw lower
	// band, and at times the point forecast, below zero
	d := simulatedDataset(t, 208, 30.0, 35.0, 15.0)

	f, err := New(nil)
	require.Nil(t, err)
	require.Nil(t, f.Fit(d))

	res, err := f.Forecast(26)
	require.Nil(t, err)

	for i := range res.Forecast {
		assert.GreaterOrEqual(t, res.Forecast[i], 0.0)
		assert.GreaterOrEqual(t, res.Upper[i], 0.0)
		assert.GreaterOrEqual(t, res.Lower[i], 0.0)
		assert.True(t, res.Lower[i] <= res.Forecast[i] && res.Forecast[i] <= res.Upper[i])
	}
}

func TestForecasterWithOutlierMasking(t *testing.T) {
	d := simulatedDataset(t, 208, 300.0, 200.0, 10.0)
	// inject a one-week reporting artifact
	d.Y[100] += 5000.0

	opt := NewDefaultOptions()
	opt.OutlierOptions = NewOutlierOptions()

	f, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, f.Fit(d))

	res := f.FitResults()
	// the masked spike is not reproduced by the fit
	assert.Less(t, res.Forecast[100], 2000.0)
}
