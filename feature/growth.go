package feature

import (
	"encoding/json"
	"fmt"
)

const GrowthLinear = "linear"

// Growth is the base trend regressor. A linear growth feature scales
// from 0 at the start of training to 1 at the training end time.
type Growth struct {
	Name string `json:"name"`
}

func NewGrowth(name string) *Growth {
	return &Growth{name}
}

func (g Growth) String() string {
	return fmt.Sprintf("growth_%s", g.Name)
}

func (g Growth) Type() FeatureType {
	return FeatureTypeGrowth
}

func (g Growth) Decode() map[string]string {
	return map[string]string{"name": g.Name}
}

func (g *Growth) UnmarshalJSON(data []byte) error {
	var labels struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	g.Name = labels.Name
	return nil
}
