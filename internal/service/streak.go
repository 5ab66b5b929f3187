package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Sneethan/gntle-habits/internal/clock"
	"github.com/Sneethan/gntle-habits/internal/model"
	"github.com/Sneethan/gntle-habits/internal/repository"
)

// Streak milestones worth celebrating.
var milestones = map[int]bool{7: true, 30: true, 100: true, 365: true}

type CheckInResult struct {
	HabitName string
	Streak    int
	Milestone bool
}

// StreakService is the check-in state machine. It holds the raw connection
// pool rather than repositories because the whole attempt - habit lookup,
// window gate, progress read, upsert - must share one immediate transaction
// so that two concurrent check-ins for the same (user, habit) serialize on
// the store's write lock instead of both succeeding.
type StreakService struct {
	db  *sqlx.DB
	clk *clock.Clock
}

func NewStreakService(db *sqlx.DB, clk *clock.Clock) *StreakService {
	return &StreakService{db: db, clk: clk}
}

// EffectiveStreak is the single authoritative streak-decay rule: a stored
// streak still counts while the last check-in is today or yesterday in local
// time; anything staler has lapsed to zero. Both the check-in arithmetic and
// the streak board read through this function so the two paths cannot
// disagree.
func EffectiveStreak(clk *clock.Clock, streak int, lastCheckIn *time.Time, now time.Time) int {
	if lastCheckIn == nil {
		return 0
	}
	gap := clk.DaysBetween(*lastCheckIn, now)
	if gap < 0 || gap > 1 {
		return 0
	}
	if streak < 0 {
		return 0
	}
	return streak
}

// AttemptCheckIn validates and records a check-in for (userID, habitID) at
// the given instant.
//
// Outcomes:
//   - repository.ErrHabitNotFound: stale button, habit was deleted
//   - ErrExpired: today's check-in window has closed
//   - ErrAlreadyCheckedIn: a check-in already landed on today's local date
//   - otherwise the new streak, with Milestone set at 7/30/100/365 days
//
// Everything runs in one transaction; on any failure the attempt rolls back
// with no partial streak update visible.
func (s *StreakService) AttemptCheckIn(ctx context.Context, userID string, habitID int64, at time.Time) (*CheckInResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin check-in: %w", err)
	}
	defer tx.Rollback()

	habit := &model.Habit{}
	err = tx.GetContext(ctx, habit, `SELECT * FROM habits WHERE id = $1`, habitID)
	if err == sql.ErrNoRows {
		return nil, repository.ErrHabitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load habit: %w", err)
	}

	if s.windowClosed(habit, at) {
		return nil, ErrExpired
	}

	progress := &model.UserHabitProgress{}
	err = tx.GetContext(ctx, progress,
		`SELECT * FROM user_habits WHERE user_id = $1 AND habit_id = $2`, userID, habitID)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	hadProgress := err == nil

	if hadProgress && progress.LastCheckIn != nil && s.clk.SameLocalDay(*progress.LastCheckIn, at) {
		return nil, ErrAlreadyCheckedIn
	}

	var streak int
	if hadProgress {
		streak = EffectiveStreak(s.clk, progress.CurrentStreak, progress.LastCheckIn, at) + 1
	} else {
		streak = 1
	}
	// Contractual clamp: a negative stored streak heals to 1, never 0.
	if streak < 1 {
		streak = 1
	}

	checkedInAt := s.clk.ToUTC(at).Truncate(time.Second)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_habits (user_id, habit_id, current_streak, last_check_in)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, habit_id) DO UPDATE SET current_streak = $3, last_check_in = $4`,
		userID, habitID, streak, checkedInAt,
	)
	if err != nil {
		return nil, fmt.Errorf("record check-in: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("commit check-in: %w", err)
	}

	return &CheckInResult{
		HabitName: habit.Name,
		Streak:    streak,
		Milestone: milestones[streak],
	}, nil
}

// windowClosed applies the midnight-crossing rule: with expiry at or after
// the reminder the window is same-day and closes after the expiry minute;
// with expiry before the reminder the window runs past midnight and is only
// closed between the expiry and the next reminder.
func (s *StreakService) windowClosed(habit *model.Habit, at time.Time) bool {
	if !habit.HasExpiry() {
		return false
	}
	expiry, err := clock.ParseHHMM(*habit.ExpiryTime)
	if err != nil {
		return false
	}
	reminder, err := clock.ParseHHMM(habit.ReminderTime)
	if err != nil {
		return false
	}

	tod := s.clk.MinutesOfDay(at)
	if expiry >= reminder {
		return tod > expiry
	}
	return tod > expiry && tod < reminder
}

// WindowClosedAt exposes the window rule for the scheduler's missed-reminder
// recovery, which must not re-send a reminder whose window already closed.
func (s *StreakService) WindowClosedAt(habit *model.Habit, at time.Time) bool {
	return s.windowClosed(habit, at)
}

// TodayUTCRange returns today's local calendar date as a [start, end) UTC
// instant range, for store queries that filter on "checked in today".
func (s *StreakService) TodayUTCRange(now time.Time) (time.Time, time.Time) {
	start := s.clk.LocalDate(now)
	end := start.AddDate(0, 0, 1)
	return start.UTC(), end.UTC()
}
