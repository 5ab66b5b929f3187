package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Sneethan/gntle-habits/internal/model"
)

func (b *Bot) handleHabit(i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	sub, opts := subcommand(data)
	userID := interactionUserID(i)

	switch sub {
	case "create":
		name := opts["name"].StringValue()
		habit, err := b.habits.Create(
			name,
			opts["reminder-time"].StringValue(),
			optString(opts, "expiry-time"),
			optString(opts, "description"),
			userID,
		)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		msg := fmt.Sprintf("✨ Created habit **%s** with a daily reminder at %s. You're in!", habit.Name, habit.ReminderTime)
		if habit.HasExpiry() {
			msg += fmt.Sprintf(" Check-ins close at %s.", *habit.ExpiryTime)
		}
		b.respond(i, msg, false)

	case "list":
		habits, err := b.habits.Habits()
		if err != nil {
			b.respondErr(i, err)
			return
		}
		if len(habits) == 0 {
			b.respond(i, "No habits yet. Create one with `/habit create`!", true)
			return
		}
		var sb strings.Builder
		for _, h := range habits {
			fmt.Fprintf(&sb, "• **%s** · reminder %s", h.Name, h.ReminderTime)
			if h.HasExpiry() {
				fmt.Fprintf(&sb, " · closes %s", *h.ExpiryTime)
			}
			if h.Description != nil && *h.Description != "" {
				fmt.Fprintf(&sb, "\n  %s", *h.Description)
			}
			sb.WriteString("\n")
		}
		b.respondEmbed(i, &discordgo.MessageEmbed{
			Title:       "📋 Habits",
			Description: sb.String(),
			Color:       0x57F287,
		}, true)

	case "edit":
		name := opts["name"].StringValue()
		update := model.HabitUpdate{
			Name:         optString(opts, "new-name"),
			ReminderTime: optString(opts, "reminder-time"),
			ExpiryTime:   optString(opts, "expiry-time"),
			Description:  optString(opts, "description"),
		}
		if update.Name == nil && update.ReminderTime == nil && update.ExpiryTime == nil && update.Description == nil {
			b.respond(i, "You need to provide at least one field to update.", true)
			return
		}
		err := b.habits.Update(name, update)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("Updated **%s**. Reminder schedules have been refreshed.", name), true)

	case "delete":
		name := opts["name"].StringValue()
		err := b.habits.Delete(name)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("Deleted habit **%s** and its streaks.", name), false)

	case "join":
		name := opts["name"].StringValue()
		err := b.habits.Join(name, userID)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("You joined **%s**. You'll be pinged at reminder time!", name), true)

	case "leave":
		name := opts["name"].StringValue()
		err := b.habits.Leave(name, userID)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("You left **%s**. No more reminders for it.", name), true)

	case "nudge":
		entries, err := b.habits.PendingNudges(userID, time.Now())
		if err != nil {
			b.respondErr(i, err)
			return
		}
		if len(entries) == 0 {
			b.respond(i, "All caught up! Every habit is checked in for today. 🎉", true)
			return
		}
		var sb strings.Builder
		sb.WriteString("Still open today:\n")
		for _, entry := range entries {
			if entry.Streak > 0 {
				fmt.Fprintf(&sb, "• **%s** (streak: %d, don't lose it!)\n", entry.HabitName, entry.Streak)
			} else {
				fmt.Fprintf(&sb, "• **%s**\n", entry.HabitName)
			}
		}
		b.respond(i, sb.String(), true)

	default:
		b.respond(i, "Unknown subcommand.", true)
	}
}
