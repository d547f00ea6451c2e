package forecast

import (
	"math"
	"strconv"
	"time"

	"github.com/epilab-sg/denguecast/changepoint"
	"github.com/epilab-sg/denguecast/feature"
)

const yearSeconds = 365.25 * 24 * 3600

// generateGrowthFeatures produces the base trend regressor scaling from
// 0 at train start to 1 at train end. Future times extrapolate past 1.
func generateGrowthFeatures(t []time.Time, opt *Options, trainStart, trainEnd time.Time) feature.Set {
	feat := make(feature.Set)
	if opt.GrowthType != feature.GrowthLinear {
		return feat
	}
	span := trainEnd.Sub(trainStart).Seconds()
	if span == 0 {
		return feat
	}

	growth := make([]float64, len(t))
	for i, tPnt := range t {
		growth[i] = tPnt.Sub(trainStart).Seconds() / span
	}
	f := feature.NewGrowth(feature.GrowthLinear)
	feat[f.String()] = feature.Data{
		F:    f,
		Data: growth,
	}
	return feat
}

// generateSeasonalityFeatures produces the yearly fourier pairs up to
// the configured order.
func generateSeasonalityFeatures(t []time.Time, opt *Options) feature.Set {
	feat := make(feature.Set)
	if opt.YearlyOrders <= 0 {
		return feat
	}

	epoch := make([]float64, len(t))
	for i, tPnt := range t {
		epoch[i] = float64(tPnt.Unix())
	}

	for order := 1; order <= opt.YearlyOrders; order++ {
		omega := 2.0 * math.Pi * float64(order) / yearSeconds
		sinFeat := make([]float64, len(t))
		cosFeat := make([]float64, len(t))
		for i, e := range epoch {
			rad := omega * e
			sinFeat[i] = math.Sin(rad)
			cosFeat[i] = math.Cos(rad)
		}

		sinLabel := feature.NewSeasonality("yearly", feature.FourierCompSin, order)
		cosLabel := feature.NewSeasonality("yearly", feature.FourierCompCos, order)
		feat[sinLabel.String()] = feature.Data{F: sinLabel, Data: sinFeat}
		feat[cosLabel.String()] = feature.Data{F: cosLabel, Data: cosFeat}
	}
	return feat
}

// generateAutoChangepoints places n changepoints uniformly over the
// leading fraction of the training range.
func generateAutoChangepoints(t []time.Time, n int, fraction float64) []changepoint.Changepoint {
	if len(t) == 0 || n <= 0 {
		return nil
	}
	if fraction <= 0 || fraction > 1 {
		fraction = DefaultChangepointFraction
	}

	minTime := t[0]
	window := time.Duration(float64(t[len(t)-1].Sub(minTime)) * fraction)
	step := window.Nanoseconds() / int64(n)

	chpts := make([]changepoint.Changepoint, 0, n)
	for i := 0; i < n; i++ {
		chpts = append(chpts, changepoint.New(
			"auto_"+strconv.Itoa(i),
			minTime.Add(time.Duration(step*int64(i))),
		))
	}
	return chpts
}

// generateChangepointFeatures produces a bias and slope regressor per
// changepoint, both zero before the changepoint time. The slope is
// normalized so it reaches 1 at the training end time.
func generateChangepointFeatures(t []time.Time, chpts []changepoint.Changepoint, trainEnd time.Time) feature.Set {
	feat := make(feature.Set)

	for j, chpt := range chpts {
		bias := make([]float64, len(t))
		slope := make([]float64, len(t))
		deltaT := trainEnd.Sub(chpt.T).Seconds()
		for i, tPnt := range t {
			if tPnt.Before(chpt.T) {
				continue
			}
			bias[i] = 1.0
			if deltaT > 0 {
				slope[i] = tPnt.Sub(chpt.T).Seconds() / deltaT
			}
		}

		name := chpt.Name
		if name == "" {
			name = strconv.Itoa(j)
		}
		biasLabel := feature.NewChangepoint(name, feature.ChangepointCompBias)
		slopeLabel := feature.NewChangepoint(name, feature.ChangepointCompSlope)
		feat[biasLabel.String()] = feature.Data{F: biasLabel, Data: bias}
		feat[slopeLabel.String()] = feature.Data{F: slopeLabel, Data: slope}
	}
	return feat
}
