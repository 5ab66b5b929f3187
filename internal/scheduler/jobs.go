package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Sneethan/gntle-habits/internal/model"
)

// runReminder posts a check-in prompt mentioning every participant who has
// not checked in for the habit today, and tracks the message for later expiry
// cleanup. Failures are logged and swallowed; background ticks never
// propagate errors.
func (s *Scheduler) runReminder(habitID int64) {
	if s.channelID == "" {
		return
	}

	habit, err := s.habits.ByID(habitID)
	if err != nil {
		slog.Warn("reminder for unknown habit", "habit_id", habitID, "error", err)
		return
	}

	now := s.clk.NowLocal()
	start, end := s.streaks.TodayUTCRange(now)
	pending, err := s.participants.PendingToday(habitID, start, end)
	if err != nil {
		slog.Error("failed to load pending participants", "habit_id", habitID, "error", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	mentions := make([]string, len(pending))
	for i, userID := range pending {
		mentions[i] = fmt.Sprintf("<@%s>", userID)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("✨ Time for: %s", habit.Name),
		Description: "Click the button below to check in!",
		Color:       0x57F287,
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "✨ Check In",
					Style:    discordgo.SuccessButton,
					CustomID: fmt.Sprintf("checkin_%d", habitID),
				},
			},
		},
	}

	messageID, err := s.messenger.Send(s.channelID, strings.Join(mentions, " ")+" Time to check in!", embed, components)
	if err != nil {
		slog.Error("failed to send habit reminder", "habit", habit.Name, "error", err)
		return
	}

	err = s.messages.SetReminder(&model.ReminderMessage{
		HabitID:   habitID,
		ChannelID: s.channelID,
		MessageID: messageID,
	})
	if err != nil {
		slog.Error("failed to track reminder message", "habit", habit.Name, "error", err)
	}
}

// runExpiry retracts the outstanding reminder for a habit, if any. A missing
// message is fine; someone checked in and the button cleanup already removed
// it.
func (s *Scheduler) runExpiry(habitID int64) {
	tracked, err := s.messages.Reminder(habitID)
	if err != nil {
		slog.Error("failed to load tracked reminder", "habit_id", habitID, "error", err)
		return
	}
	if tracked == nil {
		return
	}

	err = s.messenger.Delete(tracked.ChannelID, tracked.MessageID)
	if err != nil {
		slog.Debug("reminder message already gone", "habit_id", habitID, "error", err)
	}

	err = s.messages.ClearReminder(habitID)
	if err != nil {
		slog.Error("failed to clear tracked reminder", "habit_id", habitID, "error", err)
	}
}

func (s *Scheduler) runStreakBoard() {
	err := s.boards.RefreshStreakBoard()
	if err != nil {
		slog.Error("streak board refresh failed", "error", err)
	}
}

func (s *Scheduler) runDebtBoard() {
	err := s.boards.RefreshDebtBoard()
	if err != nil {
		slog.Error("debt board refresh failed", "error", err)
	}
}

// runRestockScan warns about items needing a refill in restockLeadDays days.
func (s *Scheduler) runRestockScan() {
	if s.channelID == "" {
		return
	}

	items, err := s.restock.DueSoon(s.clk.NowLocal(), restockLeadDays)
	if err != nil {
		slog.Error("restock scan failed", "error", err)
		return
	}
	if len(items) == 0 {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🔄 Upcoming Restocks",
		Description: "Items that need restocking soon:",
		Color:       0x5865F2,
	}
	for _, item := range items {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("<@%s>'s %s", item.UserID, item.ItemName),
			Value: fmt.Sprintf("Needs restocking in %d days", restockLeadDays),
		})
	}

	_, err = s.messenger.Send(s.channelID, "", embed, nil)
	if err != nil {
		slog.Error("failed to send restock reminder", "error", err)
	}
}

// runBriefingTick polls for users whose greeting time matches the current
// local minute. Granularity is one minute by design; a tick skew larger than
// that misses the delivery, which is acceptable at this scale.
func (s *Scheduler) runBriefingTick() {
	now := s.clk.NowLocal()
	due, err := s.briefing.DueAt(now.Format("15:04"))
	if err != nil {
		slog.Error("briefing tick query failed", "error", err)
		return
	}

	for _, prefs := range due {
		prefs := prefs
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			text, err := s.briefing.Compose(ctx, prefs.UserID, now)
			if err != nil {
				slog.Error("failed to compose briefing", "user_id", prefs.UserID, "error", err)
				return
			}
			err = s.messenger.SendDM(prefs.UserID, text)
			if err != nil {
				slog.Warn("failed to deliver briefing", "user_id", prefs.UserID, "error", err)
			}
		}()
	}
}
