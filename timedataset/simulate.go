package timedataset

import (
	"math"
	"math/rand/v2"
	"time"
)

const Week = 7 * 24 * time.Hour

// GenerateWeeklyT generates n Monday-anchored weekly time points ending
// just before the reference time.
func GenerateWeeklyT(n int, nowFunc func() time.Time) []time.Time {
	now := nowFunc().UTC()
	// walk back to the most recent Monday midnight
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for monday.Weekday() != time.Monday {
		monday = monday.Add(-24 * time.Hour)
	}

	t := make([]time.Time, 0, n)
	start := monday.Add(-time.Duration(n) * Week)
	for i := 0; i < n; i++ {
		t = append(t, start.Add(Week*time.Duration(i)))
	}
	return t
}

// Series is a mutable synthetic series used to compose simulated
// outbreak shapes for tests and examples.
type Series []float64

func (s Series) Add(src Series) Series {
	for i := range s {
		s[i] += src[i]
	}
	return s
}

// ClampMin floors every value at min, matching the fact that case
// counts cannot be negative.
func (s Series) ClampMin(min float64) Series {
	for i := range s {
		if s[i] < min {
			s[i] = min
		}
	}
	return s
}

// GenerateConstY generates a constant baseline level of cases.
func GenerateConstY(n int, val float64) Series {
	y := make([]float64, n)
	for i := range y {
		y[i] = val
	}
	return Series(y)
}

// GenerateYearlyWaveY generates a sinusoid with the given amplitude and
// order over the yearly cycle, mimicking monsoon-driven seasonality.
func GenerateYearlyWaveY(t []time.Time, amp, order, timeOffsetSec float64) Series {
	const yearSec = 365.25 * 24 * 3600
	y := make([]float64, len(t))
	for i := range t {
		y[i] = amp * math.Sin(2.0*math.Pi*order/yearSec*(float64(t[i].Unix())+timeOffsetSec))
	}
	return Series(y)
}

// GenerateNoise generates gaussian reporting noise scaled by scale.
func GenerateNoise(t []time.Time, scale float64) Series {
	y := make([]float64, len(t))
	for i := range y {
		y[i] = rand.NormFloat64() * scale
	}
	return Series(y)
}

// GenerateTrendChange generates a trend shift at chpt with a level jump
// and a per-week slope afterwards, zero before.
func GenerateTrendChange(t []time.Time, chpt time.Time, bias, slopePerWeek float64) Series {
	y := make([]float64, len(t))
	for i := range t {
		if !t[i].Before(chpt) {
			weeks := t[i].Sub(chpt).Hours() / 24 / 7
			y[i] = bias + slopePerWeek*weeks
		}
	}
	return Series(y)
}
