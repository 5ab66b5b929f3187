package scheduler

import (
	"log/slog"
	"time"

	"github.com/Sneethan/gntle-habits/internal/clock"
)

// recoveryWindowMinutes is how far back a reminder can be and still be worth
// re-sending after a restart.
const recoveryWindowMinutes = 60

// RecoverMissedReminders compensates for downtime: any habit whose reminder
// time passed within the last hour (wraparound across midnight included) and
// whose check-in window is still open gets its reminder re-sent once.
func (s *Scheduler) RecoverMissedReminders(now time.Time) {
	habits, err := s.habits.Habits()
	if err != nil {
		slog.Error("missed-reminder recovery failed to load habits", "error", err)
		return
	}

	tod := s.clk.MinutesOfDay(now)
	for _, habit := range habits {
		reminder, err := clock.ParseHHMM(habit.ReminderTime)
		if err != nil {
			continue
		}

		// Minutes since the reminder should have fired, modulo the day so a
		// 23:50 reminder is still "10 minutes ago" at 00:00.
		sinceReminder := (tod - reminder + 24*60) % (24 * 60)
		if sinceReminder >= recoveryWindowMinutes {
			continue
		}

		if s.streaks.WindowClosedAt(habit, now) {
			continue
		}

		slog.Info("re-sending missed reminder", "habit", habit.Name, "minutes_late", sinceReminder)
		s.runReminder(habit.ID)
	}
}
