package denguecast

import (
	"fmt"
	"io"

	"github.com/epilab-sg/denguecast/forecast"
	"github.com/goccy/go-json"
)

// Model is the serializable representation of a trained Forecaster. It
// round-trips through NewFromModel without loss of forecasting
// behavior, which lets a weekly pipeline fit once and reuse the model
// across runs.
type Model struct {
	Options  *Options       `json:"options"`
	Series   forecast.Model `json:"series_model"`
	Residual forecast.Model `json:"residual_model"`
}

// Save writes the model as JSON.
func (m Model) Save(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("unable to encode model, %w", err)
	}
	return nil
}

// LoadModel reads a JSON model previously written by Save.
func LoadModel(r io.Reader) (Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Model{}, fmt.Errorf("unable to decode model, %w", err)
	}
	return m, nil
}
