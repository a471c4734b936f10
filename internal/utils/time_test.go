package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:00", 480, false},
		{"23:59", 1439, false},
		{"8:00", 0, true},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAtClockKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	date := time.Date(2026, 3, 14, 17, 45, 0, 0, loc)

	got := AtClock(date, 8*60+30)

	assert.Equal(t, time.Date(2026, 3, 14, 8, 30, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestDayBounds(t *testing.T) {
	date := time.Date(2026, 1, 31, 13, 0, 0, 0, time.UTC)
	start, end := DayBounds(date)

	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestDayKeyIgnoresLocation(t *testing.T) {
	utcMidnight := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	local := time.Date(2026, 5, 2, 23, 0, 0, 0, time.FixedZone("X", -5*60*60))

	assert.Equal(t, 20260502, DayKey(utcMidnight))
	assert.Equal(t, DayKey(utcMidnight), DayKey(local))
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = LoadLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = LoadLocation("Mars/Olympus")
	assert.Error(t, err)
}
