package costbenefit

import (
	"bytes"
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze2020Reference(t *testing.T) {
	a := Analyze(35068, 2020, DefaultParams(), DefaultThresholds())

	assert.InDelta(t, 27008500.0, a.Wolbachia.TotalCost, 1e-6)
	assert.InDelta(t, 27002.36, a.Wolbachia.CasesAverted, 1e-6)
	assert.InDelta(t, 1215.1062, a.Wolbachia.DALYsAverted, 1e-4)
	require.True(t, a.Wolbachia.CostPerDALY.Defined())
	assert.InDelta(t, 22227.0, float64(a.Wolbachia.CostPerDALY), 2.0)

	assert.InDelta(t, 2223226000.0, a.Dengvaxia.TotalCost, 1e-3)
	require.True(t, a.Dengvaxia.CostPerDALY.Defined())

	assert.Equal(t, "wolbachia", a.Summary.MostCostEffective)
	assert.Greater(t, a.Summary.CostSavingsPercent, 90.0)
	assert.Equal(t, 2020, a.Metadata.BaseYear)
	assert.False(t, a.Metadata.GeneratedAt.IsZero())

	// neither program clears the WHO threshold for Singapore
	for _, assessment := range a.Summary.Assessments {
		if assessment.Threshold == "WHO (Singapore)" {
			assert.False(t, assessment.Meets)
		}
	}
}

func TestAnalyzeZeroCases(t *testing.T) {
	a := Analyze(0, 2020, DefaultParams(), nil)

	assert.Equal(t, 0.0, a.Wolbachia.CasesAverted)
	assert.Equal(t, 0.0, a.Wolbachia.DALYsAverted)
	assert.False(t, a.Wolbachia.CostPerDALY.Defined())
	assert.False(t, a.Dengvaxia.CostPerDALY.Defined())
	assert.Equal(t, 0.0, a.Summary.CostDifferencePerDALY)
}

func TestRatioJSON(t *testing.T) {
	testData := map[string]struct {
		ratio    Ratio
		expected string
	}{
		"defined":   {Ratio(22226.5), "22226.5"},
		"undefined": {Undefined, "null"},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(td.ratio)
			require.Nil(t, err)
			assert.Equal(t, td.expected, string(data))

			var loaded Ratio
			require.Nil(t, json.Unmarshal(data, &loaded))
			assert.Equal(t, td.ratio, loaded)
		})
	}
}

func TestRatioOrdering(t *testing.T) {
	// the undefined sentinel always loses a lower-is-better comparison
	assert.True(t, Ratio(1.0) < Undefined)
	assert.True(t, math.IsInf(float64(Undefined), 1))
}

func TestAnalysisRoundTrip(t *testing.T) {
	a := Analyze(35068, 2020, DefaultParams(), DefaultThresholds())

	var buf bytes.Buffer
	require.Nil(t, a.Save(&buf))

	loaded, err := LoadAnalysis(&buf)
	require.Nil(t, err)

	assert.Equal(t, a.Wolbachia, loaded.Wolbachia)
	assert.Equal(t, a.Dengvaxia, loaded.Dengvaxia)
	assert.Equal(t, a.Summary.MostCostEffective, loaded.Summary.MostCostEffective)
}

func TestProjection(t *testing.T) {
	r := Result{TotalCost: 1000.0, CasesAverted: 500.0}

	points := Projection(r, 5)
	require.Len(t, points, 5)

	// straight-line accumulation to the totals
	assert.InDelta(t, 200.0, points[0].Cost, 1e-9)
	assert.InDelta(t, 100.0, points[0].CasesAverted, 1e-9)
	assert.InDelta(t, 1000.0, points[4].Cost, 1e-9)
	assert.InDelta(t, 500.0, points[4].CasesAverted, 1e-9)

	assert.Nil(t, Projection(r, 0))
}

func TestAssess(t *testing.T) {
	thresholds := []Threshold{
		{Name: "strict", Value: 100},
		{Name: "loose", Value: 100000},
	}

	assessments := Assess("wolbachia", Ratio(22226.5), thresholds)
	require.Len(t, assessments, 2)
	assert.False(t, assessments[0].Meets)
	assert.True(t, assessments[1].Meets)

	for _, a := range Assess("none", Undefined, thresholds) {
		assert.False(t, a.Meets)
	}
}
