package model

import (
	"strings"
	"time"
)

// BusStopSeparator joins a human-readable stop name with its "lat,lon"
// coordinates inside the bus_origin/bus_destination columns.
const BusStopSeparator = "::"

type MorningBriefingPrefs struct {
	UserID         string    `db:"user_id"`
	OptedIn        bool      `db:"opted_in"`
	Location       *string   `db:"location"`
	GreetingTime   string    `db:"greeting_time"` // HH:MM, local
	BusOrigin      *string   `db:"bus_origin"`
	BusDestination *string   `db:"bus_destination"`
	CreatedAt      time.Time `db:"created_at"`
}

// BusStop splits a stored "name::lat,lon" value. ok is false when the column
// is empty or missing coordinates.
func BusStop(stored *string) (name, coords string, ok bool) {
	if stored == nil {
		return "", "", false
	}
	parts := strings.SplitN(*stored, BusStopSeparator, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

type EventCountdown struct {
	UserID            string    `db:"user_id"`
	EventName         string    `db:"event_name"`
	EventDate         string    `db:"event_date"` // YYYY-MM-DD
	IncludeInBriefing bool      `db:"include_in_briefing"`
	CreatedAt         time.Time `db:"created_at"`
}

type Affirmation struct {
	ID      int64  `db:"id"`
	Tone    string `db:"tone"`
	Message string `db:"message"`
}
