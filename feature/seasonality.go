package feature

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type FourierComp string

const (
	FourierCompSin FourierComp = "sin"
	FourierCompCos FourierComp = "cos"
)

// Seasonality is a single fourier term of a seasonal cycle, e.g. the
// third order sine of the yearly dengue cycle.
type Seasonality struct {
	Name        string      `json:"name"`
	FourierComp FourierComp `json:"fourier_component"`
	Order       int         `json:"order"`
}

func NewSeasonality(name string, fcomp FourierComp, order int) *Seasonality {
	return &Seasonality{name, fcomp, order}
}

func (s Seasonality) String() string {
	return fmt.Sprintf("seas_%s_%02d_%s", s.Name, s.Order, s.FourierComp)
}

func (s Seasonality) Type() FeatureType {
	return FeatureTypeSeasonality
}

func (s Seasonality) Decode() map[string]string {
	return map[string]string{
		"name":              s.Name,
		"fourier_component": string(s.FourierComp),
		"order":             strconv.Itoa(s.Order),
	}
}

func (s *Seasonality) UnmarshalJSON(data []byte) error {
	var labels struct {
		Name        string      `json:"name"`
		FourierComp FourierComp `json:"fourier_component"`
		Order       string      `json:"order"`
	}
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	s.Name = labels.Name
	s.FourierComp = labels.FourierComp

	order, err := strconv.Atoi(labels.Order)
	if err != nil {
		return err
	}
	s.Order = order
	return nil
}
