package scheduler

import (
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sneethan/gntle-habits/internal/clock"
	"github.com/Sneethan/gntle-habits/internal/db"
	"github.com/Sneethan/gntle-habits/internal/model"
	"github.com/Sneethan/gntle-habits/internal/repository"
	"github.com/Sneethan/gntle-habits/internal/service"
)

type fakeMessenger struct {
	mu    sync.Mutex
	sends []string // channel ids, in order
}

func (f *fakeMessenger) Send(channelID, content string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, channelID)
	return "msg-1", nil
}

func (f *fakeMessenger) Delete(channelID, messageID string) error { return nil }
func (f *fakeMessenger) SendDM(userID, content string) error      { return nil }

func (f *fakeMessenger) sent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends)
}

type fakeBoards struct{}

func (fakeBoards) RefreshStreakBoard() error { return nil }
func (fakeBoards) RefreshDebtBoard() error   { return nil }

func newTestScheduler(t *testing.T) (*Scheduler, *sqlx.DB, *fakeMessenger) {
	t.Helper()

	database, err := db.Init(filepath.Join(t.TempDir(), "test.db"), 2)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(database.DB))
	t.Cleanup(func() { database.Close() })

	clk := clock.NewFixed(time.UTC)
	messenger := &fakeMessenger{}

	habits := repository.NewHabitRepository(database)
	participants := repository.NewParticipantRepository(database)
	messages := repository.NewMessageRepository(database)
	streaks := service.NewStreakService(database, clk)
	restock := service.NewRestockService(repository.NewRestockRepository(database), clk)

	s := New(
		habits, participants, messages,
		streaks, restock, nil,
		fakeBoards{}, messenger, clk,
		"channel-1", 15,
	)
	return s, database, messenger
}

func addHabit(t *testing.T, database *sqlx.DB, name, reminderTime string, expiryTime *string) int64 {
	t.Helper()
	id, err := repository.NewHabitRepository(database).Create(&model.Habit{
		Name:         name,
		ReminderTime: reminderTime,
		ExpiryTime:   expiryTime,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return id
}

func TestRescheduleAllIsIdempotent(t *testing.T) {
	s, database, _ := newTestScheduler(t)

	expiry := "21:00"
	id1 := addHabit(t, database, "meds", "09:00", nil)
	id2 := addHabit(t, database, "journal", "20:00", &expiry)

	require.NoError(t, s.RescheduleAll())
	require.NoError(t, s.RescheduleAll())

	ids := s.JobIDs()
	sort.Strings(ids)
	assert.Equal(t, []string{
		expiryJobID(id2),
		reminderJobID(id1),
		reminderJobID(id2),
	}, ids)
}

func TestRescheduleAllDropsDeletedHabits(t *testing.T) {
	s, database, _ := newTestScheduler(t)

	id := addHabit(t, database, "meds", "09:00", nil)
	require.NoError(t, s.RescheduleAll())
	assert.Contains(t, s.JobIDs(), reminderJobID(id))

	require.NoError(t, repository.NewHabitRepository(database).Delete(id))
	require.NoError(t, s.RescheduleAll())
	assert.Empty(t, s.JobIDs())
}

func TestRescheduleAllSkipsBadTimes(t *testing.T) {
	s, database, _ := newTestScheduler(t)

	// Bypass the service validation to simulate a legacy bad row.
	_, err := database.Exec(
		`INSERT INTO habits (name, reminder_time, created_at) VALUES ('broken', 'whenever', ?)`,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, s.RescheduleAll())
	assert.Empty(t, s.JobIDs())
}

func TestHhmmToCron(t *testing.T) {
	spec, err := hhmmToCron("09:30")
	require.NoError(t, err)
	assert.Equal(t, "30 9 * * *", spec)

	spec, err = hhmmToCron("00:00")
	require.NoError(t, err)
	assert.Equal(t, "0 0 * * *", spec)

	_, err = hhmmToCron("9:30")
	assert.Error(t, err)
}

func recoverAt(t *testing.T, s *Scheduler, hhmm string) {
	t.Helper()
	minutes, err := clock.ParseHHMM(hhmm)
	require.NoError(t, err)
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
	s.RecoverMissedReminders(now)
}

func TestRecoverMissedRemindersWithinWindow(t *testing.T) {
	s, database, messenger := newTestScheduler(t)

	id := addHabit(t, database, "meds", "09:00", nil)
	require.NoError(t, repository.NewParticipantRepository(database).Join(id, "user1"))

	recoverAt(t, s, "09:30")
	assert.Equal(t, 1, messenger.sent())
}

func TestRecoverMissedRemindersTooLate(t *testing.T) {
	s, database, messenger := newTestScheduler(t)

	id := addHabit(t, database, "meds", "09:00", nil)
	require.NoError(t, repository.NewParticipantRepository(database).Join(id, "user1"))

	recoverAt(t, s, "10:00")
	assert.Equal(t, 0, messenger.sent())
}

func TestRecoverMissedRemindersSkipsClosedWindow(t *testing.T) {
	s, database, messenger := newTestScheduler(t)

	expiry := "09:15"
	id := addHabit(t, database, "meds", "09:00", &expiry)
	require.NoError(t, repository.NewParticipantRepository(database).Join(id, "user1"))

	recoverAt(t, s, "09:30")
	assert.Equal(t, 0, messenger.sent())
}

func TestRecoverMissedRemindersAcrossMidnight(t *testing.T) {
	s, database, messenger := newTestScheduler(t)

	id := addHabit(t, database, "wind-down", "23:50", nil)
	require.NoError(t, repository.NewParticipantRepository(database).Join(id, "user1"))

	recoverAt(t, s, "00:10")
	assert.Equal(t, 1, messenger.sent())
}

func TestRunReminderTracksMessage(t *testing.T) {
	s, database, messenger := newTestScheduler(t)

	id := addHabit(t, database, "meds", "09:00", nil)
	require.NoError(t, repository.NewParticipantRepository(database).Join(id, "user1"))

	s.runReminder(id)
	require.Equal(t, 1, messenger.sent())

	tracked, err := repository.NewMessageRepository(database).Reminder(id)
	require.NoError(t, err)
	require.NotNil(t, tracked)
	assert.Equal(t, "channel-1", tracked.ChannelID)
	assert.Equal(t, "msg-1", tracked.MessageID)
}

func TestRunReminderSkipsWhenEveryoneCheckedIn(t *testing.T) {
	s, database, messenger := newTestScheduler(t)

	id := addHabit(t, database, "meds", "09:00", nil)
	require.NoError(t, repository.NewParticipantRepository(database).Join(id, "user1"))

	// user1 checked in moments ago, so nobody is pending.
	_, err := database.Exec(
		`INSERT INTO user_habits (user_id, habit_id, current_streak, last_check_in) VALUES ('user1', ?, 1, ?)`,
		id, time.Now().UTC().Truncate(time.Second))
	require.NoError(t, err)

	s.runReminder(id)
	assert.Equal(t, 0, messenger.sent())
}

func TestRunExpiryDeletesTrackedMessage(t *testing.T) {
	s, database, _ := newTestScheduler(t)

	id := addHabit(t, database, "meds", "09:00", nil)
	messages := repository.NewMessageRepository(database)
	require.NoError(t, messages.SetReminder(&model.ReminderMessage{
		HabitID:   id,
		ChannelID: "channel-1",
		MessageID: "msg-1",
	}))

	s.runExpiry(id)

	tracked, err := messages.Reminder(id)
	require.NoError(t, err)
	assert.Nil(t, tracked)
}
