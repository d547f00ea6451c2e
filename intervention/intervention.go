// Package intervention overlays vector-control and vaccination
// scenarios onto a baseline case forecast. Scenarios scale the
// projected counts down by a phased-in efficacy and never mutate the
// baseline, so multiple scenarios can be compared against one fit.
package intervention

import (
	"errors"
	"fmt"

	"github.com/epilab-sg/denguecast"
)

var (
	ErrUnknownStrategy    = errors.New("unknown intervention strategy")
	ErrInvalidEfficacy    = errors.New("efficacy must be between 0 and 1")
	ErrNegativeStart      = errors.New("start offset must not be negative")
	ErrNonPositiveRamp    = errors.New("ramp length must be at least one period")
	ErrNoBaselineForecast = errors.New("no baseline forecast to transform")
)

// Strategy identifies which intervention program a scenario models.
type Strategy string

const (
	StrategyNone      Strategy = "none"
	StrategyWolbachia Strategy = "wolbachia"
	StrategyDengvaxia Strategy = "dengvaxia"
	StrategyCombined  Strategy = "combined"
)

const (
	// DefaultRampLength phases an intervention in over four weekly
	// periods before it reaches full effect.
	DefaultRampLength = 4

	// Program efficacies from published trial estimates: Wolbachia
	// deployment and Dengvaxia vaccination.
	DefaultWolbachiaEfficacy = 0.77
	DefaultDengvaxiaEfficacy = 0.819
)

// Scenario describes a single intervention overlay. StartOffset counts
// weekly periods past the end of the observed history before the
// program begins; RampLength is the number of periods over which the
// effect phases in linearly.
type Scenario struct {
	Strategy Strategy `json:"strategy"`

	WolbachiaEfficacy float64 `json:"wolbachia_efficacy"`
	DengvaxiaEfficacy float64 `json:"dengvaxia_efficacy"`

	StartOffset int `json:"start_offset"`
	RampLength  int `json:"ramp_length"`
}

// NewScenario returns a scenario for the given strategy with the
// published default efficacies and ramp.
func NewScenario(strategy Strategy) Scenario {
	return Scenario{
		Strategy:          strategy,
		WolbachiaEfficacy: DefaultWolbachiaEfficacy,
		DengvaxiaEfficacy: DefaultDengvaxiaEfficacy,
		RampLength:        DefaultRampLength,
	}
}

// Validate checks the scenario parameters before transforming a
// forecast.
func (s Scenario) Validate() error {
	switch s.Strategy {
	case StrategyNone, StrategyWolbachia, StrategyDengvaxia, StrategyCombined:
	default:
		return fmt.Errorf("%q, %w", s.Strategy, ErrUnknownStrategy)
	}
	if s.WolbachiaEfficacy < 0 || s.WolbachiaEfficacy > 1 {
		return fmt.Errorf("wolbachia %f, %w", s.WolbachiaEfficacy, ErrInvalidEfficacy)
	}
	if s.DengvaxiaEfficacy < 0 || s.DengvaxiaEfficacy > 1 {
		return fmt.Errorf("dengvaxia %f, %w", s.DengvaxiaEfficacy, ErrInvalidEfficacy)
	}
	if s.StartOffset < 0 {
		return fmt.Errorf("got %d, %w", s.StartOffset, ErrNegativeStart)
	}
	if s.RampLength < 1 {
		return fmt.Errorf("got %d, %w", s.RampLength, ErrNonPositiveRamp)
	}
	return nil
}

// Efficacy returns the steady-state case reduction fraction for the
// scenario strategy. Combined programs compose as independent layers of
// protection rather than summing, which keeps the result below 1.
func (s Scenario) Efficacy() float64 {
	switch s.Strategy {
	case StrategyWolbachia:
		return s.WolbachiaEfficacy
	case StrategyDengvaxia:
		return s.DengvaxiaEfficacy
	case StrategyCombined:
		return 1.0 - (1.0-s.WolbachiaEfficacy)*(1.0-s.DengvaxiaEfficacy)
	default:
		return 0.0
	}
}

// Apply transforms a baseline forecast into the scenario counterfactual.
// Projected counts from the program start are scaled by 1-efficacy,
// with the efficacy ramping linearly over RampLength periods. Points
// before the start, including the entire in-sample fit, are untouched.
// The baseline is deep copied and never mutated.
func Apply(baseline *denguecast.Results, s Scenario) (*denguecast.Results, error) {
	if baseline == nil || len(baseline.T) == 0 {
		return nil, ErrNoBaselineForecast
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	res := baseline.Copy()
	if s.Strategy == StrategyNone {
		return res, nil
	}

	efficacy := s.Efficacy()
	start := baseline.HorizonStart + s.StartOffset
	for i := start; i < len(res.T); i++ {
		phased := efficacy
		if k := i - start; k < s.RampLength {
			phased = efficacy * float64(k+1) / float64(s.RampLength)
		}
		multiplier := 1.0 - phased
		res.Forecast[i] *= multiplier
		res.Upper[i] *= multiplier
		res.Lower[i] *= multiplier
	}
	return res, nil
}

// CasesAverted sums the projected case reduction of the scenario
// relative to its baseline over the forecast horizon.
func CasesAverted(baseline, scenario *denguecast.Results) float64 {
	var averted float64
	for i := baseline.HorizonStart; i < len(baseline.Forecast) && i < len(scenario.Forecast); i++ {
		averted += baseline.Forecast[i] - scenario.Forecast[i]
	}
	return averted
}
