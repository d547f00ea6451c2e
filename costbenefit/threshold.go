package costbenefit

// Threshold is an externally supplied cost-per-DALY cutoff. A program
// at or under the cutoff is considered cost-effective against that
// standard.
type Threshold struct {
	Name  string  `json:"name"`
	Value float64 `json:"value_usd"`
}

// WHOThresholdSingapore is the WHO cost-effectiveness threshold in USD
// per DALY averted for Singapore.
const WHOThresholdSingapore = 1800

// DefaultThresholds returns the published cost-per-DALY cutoffs used
// to categorize interventions for Singapore.
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Name: "WHO (Singapore)", Value: WHOThresholdSingapore},
		{Name: "Singapore Conservative", Value: 30364},
		{Name: "Singapore Research Target", Value: 60039},
		{Name: "WHO (Very High HDI)", Value: 82703},
		{Name: "Not Cost-Effective", Value: 166255},
	}
}

// Assessment records whether a program meets one cutoff.
type Assessment struct {
	Intervention string  `json:"intervention"`
	Threshold    string  `json:"threshold"`
	Value        float64 `json:"threshold_value_usd"`
	Meets        bool    `json:"meets_threshold"`
}

// Assess compares a cost-per-DALY ratio against each cutoff. An
// undefined ratio meets none of them.
func Assess(name string, costPerDALY Ratio, thresholds []Threshold) []Assessment {
	assessments := make([]Assessment, 0, len(thresholds))
	for _, th := range thresholds {
		assessments = append(assessments, Assessment{
			Intervention: name,
			Threshold:    th.Name,
			Value:        th.Value,
			Meets:        costPerDALY.Defined() && float64(costPerDALY) <= th.Value,
		})
	}
	return assessments
}
