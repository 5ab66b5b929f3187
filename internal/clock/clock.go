// Package clock owns timezone normalization. All day-boundary comparisons in the
// bot go through a Clock so that stored UTC instants and local wall-clock times
// never get compared directly.
package clock

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

type Clock struct {
	loc *time.Location
}

// New resolves the given IANA zone name. An invalid or empty name falls back to
// UTC with a warning so a misconfigured deployment still starts.
func New(timezone string) *Clock {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		slog.Warn("invalid timezone, falling back to UTC", "timezone", timezone, "error", err)
		loc = time.UTC
	}
	return &Clock{loc: loc}
}

func NewFixed(loc *time.Location) *Clock {
	return &Clock{loc: loc}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// NowLocal returns the current instant in the configured timezone.
func (c *Clock) NowLocal() time.Time {
	return time.Now().In(c.loc)
}

// ToLocal converts an instant to the configured timezone. Instants loaded from
// the store are UTC; a caller passing a zero-offset time gets the same wall
// clock the store recorded, shifted into local time.
func (c *Clock) ToLocal(t time.Time) time.Time {
	return t.In(c.loc)
}

// ToUTC normalizes an instant to UTC for storage.
func (c *Clock) ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// LocalDate returns the local calendar date of an instant, anchored at local
// midnight so date arithmetic stays in one zone.
func (c *Clock) LocalDate(t time.Time) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, c.loc)
}

// SameLocalDay reports whether two instants fall on the same local calendar date.
func (c *Clock) SameLocalDay(a, b time.Time) bool {
	return c.LocalDate(a).Equal(c.LocalDate(b))
}

// DaysBetween returns the number of local calendar days from a to b.
// Consecutive days return 1 regardless of the wall-clock times involved.
// The local dates are re-anchored in UTC before subtracting so that a DST
// transition day, which is 23 or 25 wall-clock hours long, still counts as
// exactly one day.
func (c *Clock) DaysBetween(a, b time.Time) int {
	da := c.LocalDate(a)
	db := c.LocalDate(b)
	ua := time.Date(da.Year(), da.Month(), da.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(db.Year(), db.Month(), db.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// MinutesOfDay returns the local time-of-day of an instant in minutes since
// midnight.
func (c *Clock) MinutesOfDay(t time.Time) int {
	lt := t.In(c.loc)
	return lt.Hour()*60 + lt.Minute()
}

// ParseHHMM validates an "HH:MM" 24h time-of-day string and returns it as
// minutes since midnight.
func ParseHHMM(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}
