package costbenefit

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/goccy/go-json"
)

// Metadata records the assumptions behind an analysis for the report
// artifact.
type Metadata struct {
	BaseYear    int       `json:"base_year"`
	TotalCases  float64   `json:"total_cases_analyzed"`
	Population  float64   `json:"population"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Summary compares the two intervention programs.
type Summary struct {
	MostCostEffective string `json:"most_cost_effective_intervention"`

	// CostDifferencePerDALY and CostSavingsPercent compare the two
	// cost-per-DALY ratios, the latter relative to the more expensive
	// program.
	CostDifferencePerDALY float64 `json:"cost_difference_per_daly_usd"`
	CostSavingsPercent    float64 `json:"cost_savings_percent"`

	Assessments []Assessment `json:"threshold_assessments"`
}

// Analysis is the full static cost-benefit artifact for a reference
// year.
type Analysis struct {
	Metadata  Metadata `json:"analysis_metadata"`
	Wolbachia Result   `json:"wolbachia"`
	Dengvaxia Result   `json:"dengvaxia"`
	Summary   Summary  `json:"analysis_summary"`
}

// Analyze runs the static cost-benefit comparison of both intervention
// programs against an observed reference-year case total. Each program
// is costed as a one-year whole-population deployment.
func Analyze(totalCases float64, baseYear int, p Params, thresholds []Threshold) Analysis {
	wolbachia := newResult(
		p.Population*p.WolbachiaCostPerPerson,
		totalCases*p.WolbachiaEfficacy,
		p.DALYPerCase,
	)
	dengvaxia := newResult(
		p.Population*p.DengvaxiaCostPerPerson,
		totalCases*p.DengvaxiaEfficacy,
		p.DALYPerCase,
	)

	mostCostEffective := "dengvaxia"
	if wolbachia.CostPerDALY < dengvaxia.CostPerDALY {
		mostCostEffective = "wolbachia"
	}

	var costDifference, costSavingsPct float64
	if wolbachia.CostPerDALY.Defined() && dengvaxia.CostPerDALY.Defined() {
		a := float64(wolbachia.CostPerDALY)
		b := float64(dengvaxia.CostPerDALY)
		costDifference = math.Abs(a - b)
		if larger := math.Max(a, b); larger > 0 {
			costSavingsPct = costDifference / larger * 100.0
		}
	}

	assessments := make([]Assessment, 0, 2*len(thresholds))
	assessments = append(assessments, Assess("wolbachia", wolbachia.CostPerDALY, thresholds)...)
	assessments = append(assessments, Assess("dengvaxia", dengvaxia.CostPerDALY, thresholds)...)

	return Analysis{
		Metadata: Metadata{
			BaseYear:    baseYear,
			TotalCases:  totalCases,
			Population:  p.Population,
			GeneratedAt: time.Now().UTC(),
		},
		Wolbachia: wolbachia,
		Dengvaxia: dengvaxia,
		Summary: Summary{
			MostCostEffective:     mostCostEffective,
			CostDifferencePerDALY: costDifference,
			CostSavingsPercent:    costSavingsPct,
			Assessments:           assessments,
		},
	}
}

// Save writes the analysis artifact as JSON.
func (a Analysis) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("unable to encode analysis, %w", err)
	}
	return nil
}

// LoadAnalysis reads a JSON analysis artifact previously written by
// Save.
func LoadAnalysis(r io.Reader) (Analysis, error) {
	var a Analysis
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return Analysis{}, fmt.Errorf("unable to decode analysis, %w", err)
	}
	return a, nil
}
