// Package feature provides the typed labels for every regressor the
// forecast model can learn a weight for. Each feature knows how to
// render itself as a stable string key and how to decode into a label
// map for serialization.
package feature

type FeatureType string

const (
	FeatureTypeGrowth      FeatureType = "growth"
	FeatureTypeChangepoint FeatureType = "changepoint"
	FeatureTypeSeasonality FeatureType = "seasonality"
	FeatureTypeEvent       FeatureType = "event"
)

type Feature interface {
	String() string
	Type() FeatureType
	Decode() map[string]string
}
