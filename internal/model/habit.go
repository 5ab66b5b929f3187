package model

import (
	"time"
)

type Habit struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	ReminderTime string    `db:"reminder_time"` // HH:MM, local
	ExpiryTime   *string   `db:"expiry_time"`   // HH:MM, local; nil = no expiry window
	Description  *string   `db:"description"`
	CreatedAt    time.Time `db:"created_at"`
}

func (h *Habit) HasExpiry() bool {
	return h.ExpiryTime != nil && *h.ExpiryTime != ""
}

// UserHabitProgress is a per-(user, habit) streak row. LastCheckIn is a UTC
// instant; day-boundary comparisons happen in local time via clock.Clock.
type UserHabitProgress struct {
	UserID        string     `db:"user_id"`
	HabitID       int64      `db:"habit_id"`
	CurrentStreak int        `db:"current_streak"`
	LastCheckIn   *time.Time `db:"last_check_in"`
}

type HabitParticipant struct {
	HabitID int64  `db:"habit_id"`
	UserID  string `db:"user_id"`
}

// HabitUpdate is a typed partial update: nil fields are left untouched.
type HabitUpdate struct {
	Name         *string
	ReminderTime *string
	ExpiryTime   *string
	Description  *string
}
