package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sneethan/gntle-habits/internal/clock"
	"github.com/Sneethan/gntle-habits/internal/db"
	"github.com/Sneethan/gntle-habits/internal/model"
	"github.com/Sneethan/gntle-habits/internal/repository"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init(filepath.Join(t.TempDir(), "test.db"), 2)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(database.DB))

	t.Cleanup(func() { database.Close() })
	return database
}

func createHabit(t *testing.T, database *sqlx.DB, name, reminderTime string, expiryTime *string) int64 {
	t.Helper()

	repo := repository.NewHabitRepository(database)
	id, err := repo.Create(&model.Habit{
		Name:         name,
		ReminderTime: reminderTime,
		ExpiryTime:   expiryTime,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return id
}

func TestAttemptCheckInFirstTime(t *testing.T) {
	database := newTestDB(t)
	clk := clock.NewFixed(time.UTC)
	svc := NewStreakService(database, clk)
	habitID := createHabit(t, database, "meds", "09:00", nil)

	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	result, err := svc.AttemptCheckIn(context.Background(), "user1", habitID, at)

	require.NoError(t, err)
	assert.Equal(t, "meds", result.HabitName)
	assert.Equal(t, 1, result.Streak)
	assert.False(t, result.Milestone)
}

func TestAttemptCheckInSameDayIsRejected(t *testing.T) {
	database := newTestDB(t)
	clk := clock.NewFixed(time.UTC)
	svc := NewStreakService(database, clk)
	habitID := createHabit(t, database, "meds", "09:00", nil)

	morning := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err := svc.AttemptCheckIn(context.Background(), "user1", habitID, morning)
	require.NoError(t, err)

	evening := time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)
	_, err = svc.AttemptCheckIn(context.Background(), "user1", habitID, evening)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	// The rejected attempt must not have touched the row.
	var streak int
	require.NoError(t, database.Get(&streak,
		`SELECT current_streak FROM user_habits WHERE user_id = 'user1' AND habit_id = ?`, habitID))
	assert.Equal(t, 1, streak)
}

func TestAttemptCheckInConsecutiveDays(t *testing.T) {
	database := newTestDB(t)
	clk := clock.NewFixed(time.UTC)
	svc := NewStreakService(database, clk)
	habitID := createHabit(t, database, "meds", "09:00", nil)

	day1 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)

	for i, at := range []time.Time{day1, day2, day3} {
		result, err := svc.AttemptCheckIn(context.Background(), "user1", habitID, at)
		require.NoError(t, err)
		assert.Equal(t, i+1, result.Streak)
	}
}

func TestAttemptCheckInAfterGapResets(t *testing.T) {
	database := newTestDB(t)
	clk := clock.NewFixed(time.UTC)
	svc := NewStreakService(database, clk)
	habitID := createHabit(t, database, "meds", "09:00", nil)

	day1 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err := svc.AttemptCheckIn(context.Background(), "user1", habitID, day1)
	require.NoError(t, err)

	// Two full days missed: the stored streak has lapsed.
	day4 := day1.AddDate(0, 0, 3)
	result, err := svc.AttemptCheckIn(context.Background(), "user1", habitID, day4)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
}

func TestAttemptCheckInAfterExpiry(t *testing.T) {
	database := newTestDB(t)
	clk := clock.NewFixed(time.UTC)
	svc := NewStreakService(database, clk)
	expiry := "09:00"
	habitID := createHabit(t, database, "meds", "08:00", &expiry)

	late := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err := svc.AttemptCheckIn(context.Background(), "user1", habitID, late)
	assert.ErrorIs(t, err, ErrExpired)

	// A rejected check-in never creates a progress row.
	var count int
	require.NoError(t, database.Get(&count,
		`SELECT COUNT(*) FROM user_habits WHERE user_id = 'user1' AND habit_id = ?`, habitID))
	assert.Equal(t, 0, count)
}

func TestAttemptCheckInMidnightCrossingWindow(t *testing.T) {
	database := newTestDB(t)
	clk := clock.NewFixed(time.UTC)
	svc := NewStreakService(database, clk)

	// Expiry before reminder: the window runs from 22:00 past midnight to
	// 02:00 the next day.
	expiry := "02:00"
	habitID := createHabit(t, database, "wind-down", "22:00", &expiry)

	open := time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC)
	_, err := svc.AttemptCheckIn(context.Background(), "user1", habitID, open)
	require.NoError(t, err)

	closed := time.Date(2026, 3, 4, 3, 0, 0, 0, time.UTC)
	_, err = svc.AttemptCheckIn(context.Background(), "user1", habitID, closed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestAttemptCheckInUnknownHabit(t *testing.T) {
	database := newTestDB(t)
	clk := clock.NewFixed(time.UTC)
	svc := NewStreakService(database, clk)

	_, err := svc.AttemptCheckIn(context.Background(), "user1", 999, time.Now())
	assert.ErrorIs(t, err, repository.ErrHabitNotFound)
}

func TestAttemptCheckInMilestone(t *testing.T) {
	database := newTestDB(t)
	clk := clock.NewFixed(time.UTC)
	svc := NewStreakService(database, clk)
	habitID := createHabit(t, database, "meds", "09:00", nil)

	yesterday := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := database.Exec(
		`INSERT INTO user_habits (user_id, habit_id, current_streak, last_check_in) VALUES (?, ?, 6, ?)`,
		"user1", habitID, yesterday)
	require.NoError(t, err)

	result, err := svc.AttemptCheckIn(context.Background(), "user1", habitID,
		time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 7, result.Streak)
	assert.True(t, result.Milestone)
}

func TestAttemptCheckInHealsNegativeStreak(t *testing.T) {
	database := newTestDB(t)
	clk := clock.NewFixed(time.UTC)
	svc := NewStreakService(database, clk)
	habitID := createHabit(t, database, "meds", "09:00", nil)

	// Progress with no recorded check-in instant behaves like a fresh start.
	_, err := database.Exec(
		`INSERT INTO user_habits (user_id, habit_id, current_streak, last_check_in) VALUES (?, ?, 5, NULL)`,
		"user1", habitID)
	require.NoError(t, err)

	result, err := svc.AttemptCheckIn(context.Background(), "user1", habitID,
		time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
}

func TestEffectiveStreak(t *testing.T) {
	clk := clock.NewFixed(time.UTC)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	today := now.Add(-2 * time.Hour)
	yesterday := now.AddDate(0, 0, -1)
	threeDaysAgo := now.AddDate(0, 0, -3)

	assert.Equal(t, 0, EffectiveStreak(clk, 5, nil, now))
	assert.Equal(t, 5, EffectiveStreak(clk, 5, &today, now))
	assert.Equal(t, 5, EffectiveStreak(clk, 5, &yesterday, now))
	assert.Equal(t, 0, EffectiveStreak(clk, 5, &threeDaysAgo, now))
	assert.Equal(t, 0, EffectiveStreak(clk, -2, &today, now))
}

func TestAttemptCheckInAcrossSpringForward(t *testing.T) {
	database := newTestDB(t)
	eastern, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	clk := clock.NewFixed(eastern)
	svc := NewStreakService(database, clk)
	habitID := createHabit(t, database, "meds", "09:00", nil)

	// DST begins Mar 8 2026; the transition day is only 23 hours long.
	sat := time.Date(2026, 3, 7, 9, 0, 0, 0, eastern)
	sun := time.Date(2026, 3, 8, 9, 0, 0, 0, eastern)
	mon := time.Date(2026, 3, 9, 9, 0, 0, 0, eastern)

	_, err = svc.AttemptCheckIn(context.Background(), "user1", habitID, sat)
	require.NoError(t, err)

	// Consecutive days across the transition still increment.
	result, err := svc.AttemptCheckIn(context.Background(), "user1", habitID, sun)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak)

	result, err = svc.AttemptCheckIn(context.Background(), "user2", habitID, sat)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)

	// Skipping the short day is a real two-day gap: the streak resets.
	result, err = svc.AttemptCheckIn(context.Background(), "user2", habitID, mon)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
}

func TestAttemptCheckInAcrossFallBack(t *testing.T) {
	database := newTestDB(t)
	eastern, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	clk := clock.NewFixed(eastern)
	svc := NewStreakService(database, clk)
	habitID := createHabit(t, database, "meds", "09:00", nil)

	// DST ends Nov 1 2026; the transition day is 25 hours long.
	sat := time.Date(2026, 10, 31, 9, 0, 0, 0, eastern)
	mon := time.Date(2026, 11, 2, 9, 0, 0, 0, eastern)

	_, err = svc.AttemptCheckIn(context.Background(), "user1", habitID, sat)
	require.NoError(t, err)

	result, err := svc.AttemptCheckIn(context.Background(), "user1", habitID, mon)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
}

func TestEffectiveStreakAcrossSpringForward(t *testing.T) {
	eastern, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	clk := clock.NewFixed(eastern)

	lastCheckIn := time.Date(2026, 3, 7, 9, 0, 0, 0, eastern).UTC()

	sunday := time.Date(2026, 3, 8, 12, 0, 0, 0, eastern)
	assert.Equal(t, 4, EffectiveStreak(clk, 4, &lastCheckIn, sunday))

	// Two local days later, even though fewer than 48 wall-clock hours passed.
	monday := time.Date(2026, 3, 9, 8, 0, 0, 0, eastern)
	assert.Equal(t, 0, EffectiveStreak(clk, 4, &lastCheckIn, monday))
}

func TestEffectiveStreakAcrossLocalMidnight(t *testing.T) {
	sydney, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)
	clk := clock.NewFixed(sydney)

	// 23:30 and 00:30 local are consecutive days, one hour apart.
	lastCheckIn := time.Date(2026, 3, 9, 23, 30, 0, 0, sydney).UTC()
	now := time.Date(2026, 3, 10, 0, 30, 0, 0, sydney)

	assert.Equal(t, 3, EffectiveStreak(clk, 3, &lastCheckIn, now))
}
