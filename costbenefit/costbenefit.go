// Package costbenefit converts intervention case reductions into
// monetary cost and DALY-averted outcomes. It supports a static
// analysis over a known reference-year case total and a dynamic
// multi-year scenario evaluation, both sharing the same core
// arithmetic: cases averted scale with efficacy, DALYs averted scale
// with cases, and cost per DALY guards the zero-benefit division with
// an explicit undefined sentinel.
package costbenefit

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNonPositiveYears = errors.New("scenario horizon must be at least one year")
	ErrNonPositiveCases = errors.New("baseline cases must not be negative")
)

// Ratio is a cost per DALY averted in USD. A zero-benefit intervention
// has an undefined ratio, carried as +Inf so comparisons still order
// it after every defined ratio. The undefined state serializes as JSON
// null rather than an unrepresentable infinity.
type Ratio float64

// Undefined is the ratio of an intervention with zero modeled benefit.
var Undefined = Ratio(math.Inf(1))

// Defined reports whether the ratio is a finite cost per DALY.
func (r Ratio) Defined() bool {
	return !math.IsInf(float64(r), 1)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%g", float64(r))), nil
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Undefined
		return nil
	}
	var v float64
	if _, err := fmt.Sscanf(string(data), "%g", &v); err != nil {
		return fmt.Errorf("unable to parse cost per DALY %q, %w", data, err)
	}
	*r = Ratio(v)
	return nil
}

// Params are the population and intervention cost assumptions. The
// defaults reflect the 2020 Singapore reference scenario.
type Params struct {
	Population float64 `json:"population"`

	// Per-person program costs in USD. Wolbachia deployment recurs
	// annually while Dengvaxia vaccination is a one-time campaign, a
	// structural asymmetry applied in scenario evaluation.
	WolbachiaCostPerPerson float64 `json:"wolbachia_cost_per_person_usd"`
	DengvaxiaCostPerPerson float64 `json:"dengvaxia_cost_per_person_usd"`

	DALYPerCase float64 `json:"daly_per_case"`

	WolbachiaEfficacy float64 `json:"wolbachia_efficacy"`
	DengvaxiaEfficacy float64 `json:"dengvaxia_efficacy"`
}

// DefaultParams returns the published 2020 Singapore assumptions.
func DefaultParams() Params {
	return Params{
		Population:             5686000,
		WolbachiaCostPerPerson: 4.75,
		DengvaxiaCostPerPerson: 391.00,
		DALYPerCase:            0.045,
		WolbachiaEfficacy:      0.77,
		DengvaxiaEfficacy:      0.819,
	}
}

// Result holds the cost-effectiveness outcome of a single intervention
// program.
type Result struct {
	TotalCost    float64 `json:"total_cost_usd"`
	CasesAverted float64 `json:"cases_averted"`
	DALYsAverted float64 `json:"dalys_averted"`
	CostPerDALY  Ratio   `json:"cost_per_daly_averted_usd"`
}

// newResult derives the DALY outcomes from a cost and case reduction.
func newResult(totalCost, casesAverted, dalyPerCase float64) Result {
	dalysAverted := casesAverted * dalyPerCase
	costPerDALY := Undefined
	if dalysAverted > 0 {
		costPerDALY = Ratio(totalCost / dalysAverted)
	}
	return Result{
		TotalCost:    totalCost,
		CasesAverted: casesAverted,
		DALYsAverted: dalysAverted,
		CostPerDALY:  costPerDALY,
	}
}

// ProjectionPoint is the cumulative impact at one year of a multi-year
// scenario. Values are a straight-line share of the scenario totals,
// suitable for display but not for year-by-year accounting since the
// one-time cost model front-loads spending in reality.
type ProjectionPoint struct {
	Year         int     `json:"year"`
	CasesAverted float64 `json:"cumulative_cases_averted"`
	Cost         float64 `json:"cumulative_cost_usd"`
}

// Projection interpolates the scenario totals across the horizon.
func Projection(r Result, years int) []ProjectionPoint {
	if years <= 0 {
		return nil
	}
	points := make([]ProjectionPoint, 0, years)
	for y := 1; y <= years; y++ {
		frac := float64(y) / float64(years)
		points = append(points, ProjectionPoint{
			Year:         y,
			CasesAverted: r.CasesAverted * frac,
			Cost:         r.TotalCost * frac,
		})
	}
	return points
}
