package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		date string
		want Weekday
	}{
		{"2024-09-02", Monday},
		{"2024-09-03", Tuesday},
		{"2024-09-04", Wednesday},
		{"2024-09-05", Thursday},
		{"2024-09-06", Friday},
		{"2024-09-07", Saturday},
		{"2024-09-08", Sunday},
	}

	for _, tt := range tests {
		date, err := time.Parse("2006-01-02", tt.date)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, WeekdayOf(date), "date %s", tt.date)
	}
}

func TestWeekdayRank(t *testing.T) {
	for i, day := range Weekdays {
		assert.Equal(t, i+1, day.Rank())
	}
	assert.Zero(t, Weekday("Xyz").Rank())
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("Wed")
	assert.NoError(t, err)
	assert.Equal(t, Wednesday, day)

	_, err = ParseWeekday("Wednesday")
	assert.Error(t, err)
}
