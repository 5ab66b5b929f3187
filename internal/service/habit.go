package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Sneethan/gntle-habits/internal/clock"
	"github.com/Sneethan/gntle-habits/internal/model"
	"github.com/Sneethan/gntle-habits/internal/repository"
)

// Rescheduler is notified after any habit mutation so the cron job set can be
// reconciled. Implemented by scheduler.Scheduler.
type Rescheduler interface {
	RescheduleAll() error
}

type HabitService struct {
	repo         repository.HabitRepository
	participants repository.ParticipantRepository
	progress     repository.ProgressRepository
	clk          *clock.Clock
	rescheduler  Rescheduler
}

func NewHabitService(
	repo repository.HabitRepository,
	participants repository.ParticipantRepository,
	progress repository.ProgressRepository,
	clk *clock.Clock,
) *HabitService {
	return &HabitService{
		repo:         repo,
		participants: participants,
		progress:     progress,
		clk:          clk,
	}
}

// SetRescheduler breaks the construction cycle between the habit service and
// the scheduler (the scheduler needs habits; habit mutations need the
// scheduler).
func (s *HabitService) SetRescheduler(r Rescheduler) {
	s.rescheduler = r
}

func (s *HabitService) Create(name, reminderTime string, expiryTime, description *string, creatorID string) (*model.Habit, error) {
	if name == "" {
		return nil, inputErrorf("Habit name cannot be empty.")
	}
	_, err := clock.ParseHHMM(reminderTime)
	if err != nil {
		return nil, inputErrorf("Please use HH:MM format for times (e.g., 09:00, 14:30).")
	}
	if expiryTime != nil && *expiryTime != "" {
		_, err = clock.ParseHHMM(*expiryTime)
		if err != nil {
			return nil, inputErrorf("Please use HH:MM format for times (e.g., 09:00, 14:30).")
		}
	}

	habit := &model.Habit{
		Name:         name,
		ReminderTime: reminderTime,
		ExpiryTime:   expiryTime,
		Description:  description,
		CreatedAt:    s.clk.ToUTC(time.Now()).Truncate(time.Second),
	}

	id, err := s.repo.Create(habit)
	if err != nil {
		return nil, err
	}
	habit.ID = id

	// The creator is a participant by default; reminders without recipients
	// help nobody.
	err = s.participants.Join(id, creatorID)
	if err != nil {
		return nil, fmt.Errorf("join creator to habit: %w", err)
	}

	s.reschedule()
	return habit, nil
}

func (s *HabitService) Update(name string, update model.HabitUpdate) error {
	if update.ReminderTime != nil {
		_, err := clock.ParseHHMM(*update.ReminderTime)
		if err != nil {
			return inputErrorf("Please use HH:MM format for times (e.g., 09:00, 14:30).")
		}
	}
	if update.ExpiryTime != nil && *update.ExpiryTime != "" {
		_, err := clock.ParseHHMM(*update.ExpiryTime)
		if err != nil {
			return inputErrorf("Please use HH:MM format for times (e.g., 09:00, 14:30).")
		}
	}

	habit, err := s.repo.ByName(name)
	if err != nil {
		return err
	}

	err = s.repo.Update(habit.ID, update)
	if err != nil {
		return err
	}

	s.reschedule()
	return nil
}

func (s *HabitService) Delete(name string) error {
	habit, err := s.repo.ByName(name)
	if err != nil {
		return err
	}

	// Progress and participant rows cascade with the habit row.
	err = s.repo.Delete(habit.ID)
	if err != nil {
		return err
	}

	s.reschedule()
	return nil
}

func (s *HabitService) ByName(name string) (*model.Habit, error) {
	return s.repo.ByName(name)
}

func (s *HabitService) Habits() ([]*model.Habit, error) {
	return s.repo.Habits()
}

func (s *HabitService) Join(habitName, userID string) error {
	habit, err := s.repo.ByName(habitName)
	if err != nil {
		return err
	}
	return s.participants.Join(habit.ID, userID)
}

func (s *HabitService) Leave(habitName, userID string) error {
	habit, err := s.repo.ByName(habitName)
	if err != nil {
		return err
	}
	return s.participants.Leave(habit.ID, userID)
}

// NudgeEntry is one line of /habit nudge output: a habit the user has not
// checked in for today, with their current effective streak.
type NudgeEntry struct {
	HabitName string
	Streak    int
}

func (s *HabitService) PendingNudges(userID string, now time.Time) ([]NudgeEntry, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return nil, err
	}

	progressRows, err := s.progress.ForUser(userID)
	if err != nil {
		return nil, err
	}
	byHabit := make(map[int64]*model.UserHabitProgress, len(progressRows))
	for _, p := range progressRows {
		byHabit[p.HabitID] = p
	}

	var entries []NudgeEntry
	for _, habit := range habits {
		p := byHabit[habit.ID]
		if p != nil && p.LastCheckIn != nil && s.clk.SameLocalDay(*p.LastCheckIn, now) {
			continue
		}
		streak := 0
		if p != nil {
			streak = EffectiveStreak(s.clk, p.CurrentStreak, p.LastCheckIn, now)
		}
		entries = append(entries, NudgeEntry{HabitName: habit.Name, Streak: streak})
	}

	return entries, nil
}

func (s *HabitService) reschedule() {
	if s.rescheduler == nil {
		return
	}
	err := s.rescheduler.RescheduleAll()
	if err != nil {
		// Mutation already committed; the job set self-heals on the next
		// mutation or restart.
		slog.Warn("failed to reschedule habit jobs", "error", err)
	}
}
