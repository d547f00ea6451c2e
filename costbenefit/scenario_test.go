package costbenefit

import (
	"testing"

	"github.com/epilab-sg/denguecast/intervention"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateScenario(t *testing.T) {
	p := DefaultParams()
	annualCases := 35068.0
	years := 5

	wolbCost := p.WolbachiaCostPerPerson * p.Population * float64(years)
	dengCost := p.DengvaxiaCostPerPerson * p.Population

	testData := map[string]struct {
		scenario     intervention.Scenario
		totalCost    float64
		casesAverted float64
		defined      bool
	}{
		"none": {
			scenario: intervention.NewScenario(intervention.StrategyNone),
		},
		"wolbachia recurs annually": {
			scenario:     intervention.NewScenario(intervention.StrategyWolbachia),
			totalCost:    wolbCost,
			casesAverted: annualCases * 0.77 * float64(years),
			defined:      true,
		},
		"dengvaxia pays once": {
			scenario:     intervention.NewScenario(intervention.StrategyDengvaxia),
			totalCost:    dengCost,
			casesAverted: annualCases * 0.819 * float64(years),
			defined:      true,
		},
		"combined sums both cost models": {
			scenario:     intervention.NewScenario(intervention.StrategyCombined),
			totalCost:    wolbCost + dengCost,
			casesAverted: annualCases * (1.0 - (1.0-0.77)*(1.0-0.819)) * float64(years),
			defined:      true,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			r, err := EvaluateScenario(td.scenario, years, annualCases, p)
			require.Nil(t, err)

			assert.InDelta(t, td.totalCost, r.TotalCost, 1e-6)
			assert.InDelta(t, td.casesAverted, r.CasesAverted, 1e-6)
			assert.InDelta(t, td.casesAverted*p.DALYPerCase, r.DALYsAverted, 1e-6)
			assert.Equal(t, td.defined, r.CostPerDALY.Defined())
		})
	}
}

func TestEvaluateScenarioErrors(t *testing.T) {
	p := DefaultParams()

	_, err := EvaluateScenario(intervention.NewScenario(intervention.StrategyWolbachia), 0, 35068, p)
	assert.ErrorIs(t, err, ErrNonPositiveYears)

	_, err = EvaluateScenario(intervention.NewScenario(intervention.StrategyWolbachia), 5, -1, p)
	assert.ErrorIs(t, err, ErrNonPositiveCases)

	_, err = EvaluateScenario(intervention.Scenario{Strategy: "fogging", RampLength: 4}, 5, 35068, p)
	assert.ErrorIs(t, err, intervention.ErrUnknownStrategy)
}

func TestEvaluateScenarioOneYear(t *testing.T) {
	// at a one year horizon the dynamic wolbachia arithmetic collapses
	// to the static reference analysis
	p := DefaultParams()
	r, err := EvaluateScenario(intervention.NewScenario(intervention.StrategyWolbachia), 1, 35068, p)
	require.Nil(t, err)

	a := Analyze(35068, 2020, p, nil)
	assert.InDelta(t, a.Wolbachia.TotalCost, r.TotalCost, 1e-6)
	assert.InDelta(t, a.Wolbachia.CasesAverted, r.CasesAverted, 1e-6)
}
