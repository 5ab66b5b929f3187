// Package scheduler owns the bot's timed behavior: per-habit reminder and
// expiry jobs, the fixed dashboard/restock/briefing ticks, and startup
// recovery of reminders missed during downtime. Jobs are identified by stable
// string ids so reconciliation can replace them without duplicates.
package scheduler

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"

	"github.com/Sneethan/gntle-habits/internal/clock"
	"github.com/Sneethan/gntle-habits/internal/repository"
	"github.com/Sneethan/gntle-habits/internal/service"
)

// Fixed job ids; habit jobs use the reminder_<id>/expiry_<id> form.
const (
	jobStreakBoard  = "update_streaks"
	jobDebtBoard    = "update_debts"
	jobRestockScan  = "check_restock"
	jobBriefingTick = "briefing_tick"
)

// restockLeadDays is how far ahead the daily scan warns about refills.
const restockLeadDays = 3

// Messenger is the slice of the chat platform the scheduler needs.
type Messenger interface {
	Send(channelID, content string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error)
	Delete(channelID, messageID string) error
	SendDM(userID, content string) error
}

// Boards abstracts the dashboard renderer.
type Boards interface {
	RefreshStreakBoard() error
	RefreshDebtBoard() error
}

type Scheduler struct {
	cron *cron.Cron

	mu   sync.Mutex
	jobs map[string]cron.EntryID

	habits       repository.HabitRepository
	participants repository.ParticipantRepository
	messages     repository.MessageRepository
	streaks      *service.StreakService
	restock      *service.RestockService
	briefing     *service.BriefingService

	boards    Boards
	messenger Messenger
	clk       *clock.Clock

	channelID      string
	streakInterval int
}

func New(
	habits repository.HabitRepository,
	participants repository.ParticipantRepository,
	messages repository.MessageRepository,
	streaks *service.StreakService,
	restock *service.RestockService,
	briefing *service.BriefingService,
	boards Boards,
	messenger Messenger,
	clk *clock.Clock,
	channelID string,
	streakInterval int,
) *Scheduler {
	return &Scheduler{
		cron:           cron.New(cron.WithLocation(clk.Location())),
		jobs:           make(map[string]cron.EntryID),
		habits:         habits,
		participants:   participants,
		messages:       messages,
		streaks:        streaks,
		restock:        restock,
		briefing:       briefing,
		boards:         boards,
		messenger:      messenger,
		clk:            clk,
		channelID:      channelID,
		streakInterval: streakInterval,
	}
}

// Start registers the fixed jobs, reconciles the habit jobs and starts the
// cron loop.
func (s *Scheduler) Start() error {
	s.addJob(jobStreakBoard, fmt.Sprintf("*/%d * * * *", s.streakInterval), s.runStreakBoard)
	s.addJob(jobDebtBoard, "0 */4 * * *", s.runDebtBoard)
	s.addJob(jobRestockScan, "0 9 * * *", s.runRestockScan)
	s.addJob(jobBriefingTick, "* * * * *", s.runBriefingTick)

	err := s.RescheduleAll()
	if err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("scheduler started", "timezone", s.clk.Location().String())
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RescheduleAll tears down every habit-specific job and re-registers one
// reminder job and, when an expiry time is set, one expiry job per habit.
// Safe to call repeatedly; the final job set only depends on the habit rows.
func (s *Scheduler) RescheduleAll() error {
	habits, err := s.habits.Habits()
	if err != nil {
		return fmt.Errorf("load habits for scheduling: %w", err)
	}

	s.mu.Lock()
	for id, entry := range s.jobs {
		if isHabitJob(id) {
			s.cron.Remove(entry)
			delete(s.jobs, id)
		}
	}
	s.mu.Unlock()

	for _, habit := range habits {
		habit := habit

		spec, err := hhmmToCron(habit.ReminderTime)
		if err != nil {
			slog.Warn("skipping habit with bad reminder time", "habit", habit.Name, "error", err)
			continue
		}
		s.addJob(reminderJobID(habit.ID), spec, func() { s.runReminder(habit.ID) })

		if habit.HasExpiry() {
			spec, err = hhmmToCron(*habit.ExpiryTime)
			if err != nil {
				slog.Warn("skipping habit with bad expiry time", "habit", habit.Name, "error", err)
				continue
			}
			s.addJob(expiryJobID(habit.ID), spec, func() { s.runExpiry(habit.ID) })
		}
	}

	slog.Debug("habit jobs reconciled", "habits", len(habits))
	return nil
}

// JobIDs returns the current job id set, sorted by map iteration order being
// irrelevant to callers (tests sort).
func (s *Scheduler) JobIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.jobs))
	for id := range s.jobs {
		ids = append(ids, id)
	}
	return ids
}

// addJob registers fn under the given id, replacing any previous entry with
// that id.
func (s *Scheduler) addJob(id, spec string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.jobs[id]; ok {
		s.cron.Remove(old)
	}

	entry, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		slog.Error("failed to register job", "id", id, "spec", spec, "error", err)
		delete(s.jobs, id)
		return
	}
	s.jobs[id] = entry
}

func reminderJobID(habitID int64) string {
	return fmt.Sprintf("reminder_%d", habitID)
}

func expiryJobID(habitID int64) string {
	return fmt.Sprintf("expiry_%d", habitID)
}

func isHabitJob(id string) bool {
	return strings.HasPrefix(id, "reminder_") || strings.HasPrefix(id, "expiry_")
}

// hhmmToCron converts a local "HH:MM" time-of-day into a daily cron spec.
func hhmmToCron(hhmm string) (string, error) {
	minutes, err := clock.ParseHHMM(hhmm)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d * * *", minutes%60, minutes/60), nil
}
