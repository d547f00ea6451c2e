package costbenefit

import (
	"fmt"

	"github.com/epilab-sg/denguecast/intervention"
)

// EvaluateScenario runs the dynamic multi-year cost-benefit arithmetic
// for an intervention scenario. Cases averted accrue per year across
// the horizon for every strategy; costs follow each program's model,
// with Wolbachia deployment paid every year and the Dengvaxia campaign
// paid once. A combined strategy sums both cost models and averts
// cases at the composed efficacy.
func EvaluateScenario(s intervention.Scenario, years int, annualCases float64, p Params) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	if years <= 0 {
		return Result{}, fmt.Errorf("got %d, %w", years, ErrNonPositiveYears)
	}
	if annualCases < 0 {
		return Result{}, fmt.Errorf("got %f, %w", annualCases, ErrNonPositiveCases)
	}

	if s.Strategy == intervention.StrategyNone {
		return Result{CostPerDALY: Undefined}, nil
	}

	casesAverted := annualCases * s.Efficacy() * float64(years)

	var totalCost float64
	switch s.Strategy {
	case intervention.StrategyWolbachia:
		totalCost = p.WolbachiaCostPerPerson * p.Population * float64(years)
	case intervention.StrategyDengvaxia:
		totalCost = p.DengvaxiaCostPerPerson * p.Population
	case intervention.StrategyCombined:
		totalCost = p.WolbachiaCostPerPerson*p.Population*float64(years) +
			p.DengvaxiaCostPerPerson*p.Population
	}

	return newResult(totalCost, casesAverted, p.DALYPerCase), nil
}
