package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 30}, got)

	got, err = ParseTimeOfDay("16:45:30")
	require.NoError(t, err)
	assert.Equal(t, "16:45:30", got.String())

	_, err = ParseTimeOfDay("9am")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

func TestTimeOfDayBefore(t *testing.T) {
	nine, _ := ParseTimeOfDay("09:00")
	five, _ := ParseTimeOfDay("17:00")

	assert.True(t, nine.Before(five))
	assert.False(t, five.Before(nine))
	assert.False(t, nine.Before(nine))
}

func TestTimeOfDayAt(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	start, _ := ParseTimeOfDay("09:00")
	anchored := start.At(2024, time.September, 2, ny)
	assert.Equal(t, "2024-09-02 09:00:00", anchored.Format("2006-01-02 15:04:05"))
	assert.Equal(t, ny, anchored.Location())
}

func TestTimeOfDayJSON(t *testing.T) {
	interval := WorkingInterval{DayOfWeek: Monday}
	interval.StartTime, _ = ParseTimeOfDay("09:00")
	interval.EndTime, _ = ParseTimeOfDay("17:00")

	data, err := json.Marshal(interval)
	require.NoError(t, err)
	assert.JSONEq(t, `{"day_of_week":"Mon","start_time":"09:00:00","end_time":"17:00:00"}`, string(data))

	var decoded WorkingInterval
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, interval.StartTime, decoded.StartTime)
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay

	require.NoError(t, tod.Scan("10:15:00"))
	assert.Equal(t, TimeOfDay{Hour: 10, Minute: 15}, tod)

	require.NoError(t, tod.Scan([]byte("08:00:00")))
	assert.Equal(t, TimeOfDay{Hour: 8}, tod)

	require.NoError(t, tod.Scan(time.Date(2000, 1, 1, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeOfDay{Hour: 13, Minute: 45}, tod)

	assert.Error(t, tod.Scan(42))
}

func TestWorkingIntervalValidate(t *testing.T) {
	start, _ := ParseTimeOfDay("09:00")
	end, _ := ParseTimeOfDay("17:00")

	interval := &WorkingInterval{DayOfWeek: Monday, StartTime: start, EndTime: end}
	assert.NoError(t, interval.Validate())

	interval.StartTime, interval.EndTime = end, start
	assert.Error(t, interval.Validate())

	interval.StartTime = interval.EndTime
	assert.Error(t, interval.Validate())

	interval = &WorkingInterval{DayOfWeek: "Funday", StartTime: start, EndTime: end}
	assert.Error(t, interval.Validate())
}
