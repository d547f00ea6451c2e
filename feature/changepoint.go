package feature

import (
	"encoding/json"
	"fmt"
)

type ChangepointComp string

const (
	ChangepointCompBias  ChangepointComp = "bias"
	ChangepointCompSlope ChangepointComp = "slope"
)

// Changepoint is one half of a trend shift regressor. Every changepoint
// contributes a bias feature (level jump) and a slope feature (trend
// change) after its time.
type Changepoint struct {
	Name string          `json:"name"`
	Comp ChangepointComp `json:"changepoint_component"`
}

func NewChangepoint(name string, comp ChangepointComp) *Changepoint {
	return &Changepoint{name, comp}
}

func (c Changepoint) String() string {
	return fmt.Sprintf("chpnt_%s_%s", c.Name, c.Comp)
}

func (c Changepoint) Type() FeatureType {
	return FeatureTypeChangepoint
}

func (c Changepoint) Decode() map[string]string {
	return map[string]string{
		"name":                  c.Name,
		"changepoint_component": string(c.Comp),
	}
}

func (c *Changepoint) UnmarshalJSON(data []byte) error {
	var labels struct {
		Name string          `json:"name"`
		Comp ChangepointComp `json:"changepoint_component"`
	}
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	c.Name = labels.Name
	c.Comp = labels.Comp
	return nil
}
