package forecast

import (
	"testing"
	"time"

	"github.com/epilab-sg/denguecast/timedataset"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHolidayFeatures(t *testing.T) {
	// weekly buckets over 2023 starting on a Monday
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	tSeries := make([]time.Time, 0, 52)
	for i := 0; i < 52; i++ {
		tSeries = append(tSeries, start.Add(time.Duration(i)*timedataset.Week))
	}

	opt := HolidayOptions{
		Enabled:  true,
		Holidays: SingaporeHolidays(),
	}
	feat := opt.generateHolidayFeatures(tSeries, timedataset.Week)
	require.Len(t, feat, 4)

	nationalDay := feat["event_national_day"].Data
	require.Len(t, nationalDay, 52)

	var flagged int
	for i, v := range nationalDay {
		if v == 1.0 {
			flagged++
			// the flagged week contains Aug 9
			aug9 := time.Date(2023, 8, 9, 0, 0, 0, 0, time.UTC)
			assert.False(t, aug9.Before(tSeries[i]))
			assert.True(t, aug9.Before(tSeries[i].Add(timedataset.Week)))
		}
	}
	assert.Equal(t, 1, flagged)
}

func TestGenerateHolidayFeaturesDisabled(t *testing.T) {
	opt := HolidayOptions{Holidays: SingaporeHolidays()}
	assert.Empty(t, opt.generateHolidayFeatures([]time.Time{time.Now()}, timedataset.Week))
}

func TestHolidayOptionsRoundTrip(t *testing.T) {
	opt := HolidayOptions{
		Enabled:  true,
		Holidays: SingaporeHolidays(),
	}

	data, err := json.Marshal(opt)
	require.Nil(t, err)

	var loaded HolidayOptions
	require.Nil(t, json.Unmarshal(data, &loaded))

	assert.True(t, loaded.Enabled)
	require.Len(t, loaded.Holidays, len(opt.Holidays))
	for i, hol := range loaded.Holidays {
		assert.Equal(t, opt.Holidays[i].Name, hol.Name)
		assert.Equal(t, opt.Holidays[i].Month, hol.Month)
		assert.Equal(t, opt.Holidays[i].Day, hol.Day)

		// a rebuilt holiday still resolves to a concrete date
		_, observed := hol.Calc(2024)
		assert.False(t, observed.IsZero())
	}
}
