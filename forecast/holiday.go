package forecast

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/epilab-sg/denguecast/feature"
	"github.com/rickar/cal/v2"
)

// Fixed-date Singapore public holidays. Case reporting dips around
// these weeks, so they are offered as indicator regressors. Movable
// lunar holidays are not derivable from a day-of-month rule and can be
// appended by the caller per year.
var (
	NewYearsDay = &cal.Holiday{
		Name:  "New Year's Day",
		Month: time.January,
		Day:   1,
		Func:  cal.CalcDayOfMonth,
	}
	LabourDay = &cal.Holiday{
		Name:  "Labour Day",
		Month: time.May,
		Day:   1,
		Func:  cal.CalcDayOfMonth,
	}
	NationalDay = &cal.Holiday{
		Name:  "National Day",
		Month: time.August,
		Day:   9,
		Func:  cal.CalcDayOfMonth,
	}
	ChristmasDay = &cal.Holiday{
		Name:  "Christmas Day",
		Month: time.December,
		Day:   25,
		Func:  cal.CalcDayOfMonth,
	}
)

// SingaporeHolidays returns the fixed-date public holidays used as
// default reporting regressors.
func SingaporeHolidays() []*cal.Holiday {
	return []*cal.Holiday{NewYearsDay, LabourDay, NationalDay, ChristmasDay}
}

// HolidayOptions configures indicator features for weeks overlapping a
// public holiday.
type HolidayOptions struct {
	Enabled  bool           `json:"enabled"`
	Holidays []*cal.Holiday `json:"-"`
}

// holidayDef is the serialized form of a holiday. Only fixed-date
// holidays survive a round-trip; movable holidays must be re-registered
// by the caller after loading a model.
type holidayDef struct {
	Name  string     `json:"name"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

func (h HolidayOptions) MarshalJSON() ([]byte, error) {
	defs := make([]holidayDef, 0, len(h.Holidays))
	for _, hol := range h.Holidays {
		defs = append(defs, holidayDef{
			Name:  hol.Name,
			Month: hol.Month,
			Day:   hol.Day,
		})
	}
	return json.Marshal(struct {
		Enabled  bool         `json:"enabled"`
		Holidays []holidayDef `json:"holidays"`
	}{
		Enabled:  h.Enabled,
		Holidays: defs,
	})
}

func (h *HolidayOptions) UnmarshalJSON(data []byte) error {
	var opts struct {
		Enabled  bool         `json:"enabled"`
		Holidays []holidayDef `json:"holidays"`
	}
	if err := json.Unmarshal(data, &opts); err != nil {
		return err
	}
	h.Enabled = opts.Enabled
	h.Holidays = make([]*cal.Holiday, 0, len(opts.Holidays))
	for _, def := range opts.Holidays {
		h.Holidays = append(h.Holidays, &cal.Holiday{
			Name:  def.Name,
			Month: def.Month,
			Day:   def.Day,
			Func:  cal.CalcDayOfMonth,
		})
	}
	return nil
}

// generateHolidayFeatures emits one indicator feature per holiday with
// a 1.0 for every weekly bucket containing an observed instance of the
// holiday.
func (h HolidayOptions) generateHolidayFeatures(t []time.Time, period time.Duration) feature.Set {
	feat := make(feature.Set)
	if !h.Enabled || len(t) == 0 {
		return feat
	}

	startYear := t[0].Year()
	endYear := t[len(t)-1].Add(period).Year()

	for _, hol := range h.Holidays {
		mask := make([]float64, len(t))
		for year := startYear; year <= endYear; year++ {
			_, observed := hol.Calc(year)
			for i, tPnt := range t {
				if !observed.Before(tPnt) && observed.Before(tPnt.Add(period)) {
					mask[i] = 1.0
				}
			}
		}
		f := feature.NewEvent(strings.ReplaceAll(strings.ToLower(hol.Name), " ", "_"))
		feat[f.String()] = feature.Data{
			F:    f,
			Data: mask,
		}
	}
	return feat
}
