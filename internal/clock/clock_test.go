package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFallsBackToUTC(t *testing.T) {
	c := New("Not/AZone")
	assert.Equal(t, time.UTC, c.Location())

	c = New("America/New_York")
	assert.Equal(t, "America/New_York", c.Location().String())
}

func TestRoundTrip(t *testing.T) {
	c := New("Europe/Berlin")

	instant := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
	local := c.ToLocal(instant)
	back := c.ToUTC(local)

	assert.True(t, instant.Equal(back))
	assert.Equal(t, c.Location(), local.Location())
}

func TestSameLocalDayAcrossUTCBoundary(t *testing.T) {
	c := New("Australia/Sydney") // UTC+10/+11

	// 14:30 UTC and 23:30 UTC on the same UTC day are different local days.
	a := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC) // 20:30 local Jun 1
	b := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC) // 01:30 local Jun 2
	assert.False(t, c.SameLocalDay(a, b))

	// 23:50 UTC May 31 and 00:10 UTC Jun 1 are the same local day.
	a = time.Date(2025, 5, 31, 23, 50, 0, 0, time.UTC)
	b = time.Date(2025, 6, 1, 0, 10, 0, 0, time.UTC)
	assert.True(t, c.SameLocalDay(a, b))
}

func TestDaysBetween(t *testing.T) {
	c := New("America/Chicago")

	late := time.Date(2025, 4, 2, 3, 0, 0, 0, time.UTC)  // Apr 1 local, 22:00
	early := time.Date(2025, 4, 2, 14, 0, 0, 0, time.UTC) // Apr 2 local, 09:00

	assert.Equal(t, 1, c.DaysBetween(late, early))
	assert.Equal(t, -1, c.DaysBetween(early, late))
	assert.Equal(t, 0, c.DaysBetween(early, early))

	threeLater := early.Add(72 * time.Hour)
	assert.Equal(t, 3, c.DaysBetween(early, threeLater))
}

func TestDaysBetweenAcrossSpringForward(t *testing.T) {
	c := New("America/New_York") // DST begins Mar 8 2026, a 23-hour day
	loc := c.Location()

	sat := time.Date(2026, 3, 7, 21, 0, 0, 0, loc)
	sun := time.Date(2026, 3, 8, 9, 0, 0, 0, loc)
	mon := time.Date(2026, 3, 9, 9, 0, 0, 0, loc)

	// Skipping the short transition day is still a two-day gap.
	assert.Equal(t, 2, c.DaysBetween(sat, mon))
	assert.Equal(t, 1, c.DaysBetween(sat, sun))
	assert.Equal(t, 1, c.DaysBetween(sun, mon))
}

func TestDaysBetweenAcrossFallBack(t *testing.T) {
	c := New("America/New_York") // DST ends Nov 1 2026, a 25-hour day
	loc := c.Location()

	sat := time.Date(2026, 10, 31, 21, 0, 0, 0, loc)
	sun := time.Date(2026, 11, 1, 9, 0, 0, 0, loc)
	mon := time.Date(2026, 11, 2, 9, 0, 0, 0, loc)

	assert.Equal(t, 2, c.DaysBetween(sat, mon))
	assert.Equal(t, 1, c.DaysBetween(sat, sun))
	assert.Equal(t, 1, c.DaysBetween(sun, mon))
}

func TestMinutesOfDay(t *testing.T) {
	c := New("UTC")
	at := time.Date(2025, 1, 1, 20, 1, 30, 0, time.UTC)
	assert.Equal(t, 20*60+1, c.MinutesOfDay(at))
}

func TestParseHHMM(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:00", 0, true},
		{"09:60", 0, true},
		{"0900", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseHHMM(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
