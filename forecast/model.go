package forecast

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/epilab-sg/denguecast/feature"
)

var ErrUnknownFeatureType = errors.New("unknown feature type")

// Model is the serializable format of a fit. It round-trips through
// NewFromModel without loss of forecasting behavior, which is what lets
// a model be fit once and reused across process runs.
type Model struct {
	TrainStartTime time.Time     `json:"train_start_time"`
	TrainEndTime   time.Time     `json:"train_end_time"`
	Period         time.Duration `json:"period_ns"`
	Options        *Options      `json:"options"`
	Scores         *Scores       `json:"scores"`
	Weights        Weights       `json:"weights"`
}

// Weights stores the intercept and labeled coefficients of a fit.
type Weights struct {
	Intercept float64         `json:"intercept"`
	Coef      []FeatureWeight `json:"coefficients"`
}

// FeatureLabels returns all of the feature labels in the same order as
// the coefficients
func (w *Weights) FeatureLabels() (*feature.Labels, error) {
	labels := make([]feature.Feature, 0, len(w.Coef))
	for _, fw := range w.Coef {
		feat, err := fw.ToFeature()
		if err != nil {
			return nil, err
		}
		labels = append(labels, feat)
	}
	return feature.NewLabels(labels), nil
}

// Coefficients returns a slice copy of the coefficients ignoring the
// intercept.
func (w *Weights) Coefficients() []float64 {
	coef := make([]float64, 0, len(w.Coef))
	for _, fw := range w.Coef {
		coef = append(coef, fw.Value)
	}
	return coef
}

// FeatureWeight pairs a typed feature label with its fit coefficient.
type FeatureWeight struct {
	Labels map[string]string   `json:"labels"`
	Type   feature.FeatureType `json:"type"`
	Value  float64             `json:"value"`
}

// ToFeature transforms the Type and Labels back into a feature label
func (fw *FeatureWeight) ToFeature() (feature.Feature, error) {
	if fw == nil {
		return nil, ErrUnknownFeatureType
	}

	bytes, err := json.Marshal(fw.Labels)
	if err != nil {
		return nil, err
	}

	var feat feature.Feature
	switch fw.Type {
	case feature.FeatureTypeGrowth:
		feat = new(feature.Growth)
	case feature.FeatureTypeChangepoint:
		feat = new(feature.Changepoint)
	case feature.FeatureTypeSeasonality:
		feat = new(feature.Seasonality)
	case feature.FeatureTypeEvent:
		feat = new(feature.Event)
	default:
		return nil, ErrUnknownFeatureType
	}
	if err := json.Unmarshal(bytes, feat); err != nil {
		return nil, err
	}
	return feat, nil
}
