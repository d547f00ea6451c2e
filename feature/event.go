package feature

import (
	"encoding/json"
	"fmt"
)

// Event is an indicator regressor for weeks overlapping a known
// calendar event, e.g. a public holiday week where case reporting dips.
type Event struct {
	Name string `json:"name"`
}

func NewEvent(name string) *Event {
	return &Event{name}
}

func (e Event) String() string {
	return fmt.Sprintf("event_%s", e.Name)
}

func (e Event) Type() FeatureType {
	return FeatureTypeEvent
}

func (e Event) Decode() map[string]string {
	return map[string]string{"name": e.Name}
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var labels struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	e.Name = labels.Name
	return nil
}
