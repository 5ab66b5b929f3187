package discord

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Sneethan/gntle-habits/internal/clock"
	"github.com/Sneethan/gntle-habits/internal/repository"
	"github.com/Sneethan/gntle-habits/internal/service"
)

// checkinPrefix keys the persistent check-in buttons. The habit id rides in
// the custom id so buttons keep working across restarts without any in-memory
// view state.
const checkinPrefix = "checkin_"

// Geocoder resolves a free-form address to the "display::lat,lon" storage
// form used for bus stops.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (string, error)
}

type Bot struct {
	session *Session

	habits       *service.HabitService
	streaks      *service.StreakService
	restock      *service.RestockService
	debts        *service.DebtService
	briefing     *service.BriefingService
	affirmations *service.AffirmationService

	participants repository.ParticipantRepository
	messages     repository.MessageRepository

	geocoder Geocoder
	clk      *clock.Clock
}

func NewBot(
	session *Session,
	habits *service.HabitService,
	streaks *service.StreakService,
	restock *service.RestockService,
	debts *service.DebtService,
	briefing *service.BriefingService,
	affirmations *service.AffirmationService,
	participants repository.ParticipantRepository,
	messages repository.MessageRepository,
	geocoder Geocoder,
	clk *clock.Clock,
) *Bot {
	return &Bot{
		session:      session,
		habits:       habits,
		streaks:      streaks,
		restock:      restock,
		debts:        debts,
		briefing:     briefing,
		affirmations: affirmations,
		participants: participants,
		messages:     messages,
		geocoder:     geocoder,
		clk:          clk,
	}
}

// Install wires the interaction handler onto the gateway session. Call before
// Open so no interaction slips through during startup.
func (b *Bot) Install() {
	b.session.Raw().AddHandler(b.onInteraction)
}

// RegisterCommands overwrites the global application command set. Requires an
// open session; the application id comes from the gateway identity.
func (b *Bot) RegisterCommands() error {
	appID := b.session.Raw().State.User.ID
	_, err := b.session.Raw().ApplicationCommandBulkOverwrite(appID, "", commandDefinitions)
	return err
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.onCommand(i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.onAutocomplete(i)
	case discordgo.InteractionMessageComponent:
		b.onComponent(i)
	}
}

func (b *Bot) onCommand(i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "habit":
		b.handleHabit(i, data)
	case "restock":
		b.handleRestock(i, data)
	case "debt":
		b.handleDebt(i, data)
	case "briefing":
		b.handleBriefing(i, data)
	default:
		b.respond(i, "Unknown command.", true)
	}
}

func (b *Bot) onComponent(i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	if strings.HasPrefix(customID, checkinPrefix) {
		habitID, err := strconv.ParseInt(strings.TrimPrefix(customID, checkinPrefix), 10, 64)
		if err != nil {
			b.respond(i, "That button doesn't work anymore.", true)
			return
		}
		b.handleCheckIn(i, habitID)
	}
}

// handleCheckIn runs the streak state machine for a button press and replies
// with an affirmation on success. When the press completes the habit for
// everyone, the reminder message is retired early.
func (b *Bot) handleCheckIn(i *discordgo.InteractionCreate, habitID int64) {
	userID := interactionUserID(i)
	now := time.Now()

	result, err := b.streaks.AttemptCheckIn(context.Background(), userID, habitID, now)
	if err != nil {
		b.respondErr(i, err)
		return
	}

	msg := b.affirmations.Random()
	msg += "\n🔥 **" + result.HabitName + "** streak: " + strconv.Itoa(result.Streak) + " day" + plural(result.Streak)
	if result.Milestone {
		msg += "\n🎉 That's a " + strconv.Itoa(result.Streak) + "-day milestone. Amazing!"
	}
	b.respond(i, msg, true)

	b.retireReminderIfDone(habitID, now)
}

// retireReminderIfDone deletes the tracked reminder message once every
// participant has checked in for today. Best effort; the expiry job cleans up
// whatever is left.
func (b *Bot) retireReminderIfDone(habitID int64, now time.Time) {
	start, end := b.streaks.TodayUTCRange(now)
	pending, err := b.participants.PendingToday(habitID, start, end)
	if err != nil || len(pending) > 0 {
		return
	}

	tracked, err := b.messages.Reminder(habitID)
	if err != nil || tracked == nil {
		return
	}
	err = b.session.Delete(tracked.ChannelID, tracked.MessageID)
	if err != nil {
		slog.Debug("reminder message already gone", "habit_id", habitID, "error", err)
	}
	err = b.messages.ClearReminder(habitID)
	if err != nil {
		slog.Error("failed to clear tracked reminder", "habit_id", habitID, "error", err)
	}
}

func (b *Bot) onAutocomplete(i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != "debt" || len(data.Options) == 0 {
		return
	}

	var prefix string
	for _, opt := range data.Options[0].Options {
		if opt.Focused {
			prefix = opt.StringValue()
			break
		}
	}

	names, err := b.debts.AccountNames(interactionUserID(i), prefix, 25)
	if err != nil {
		slog.Warn("account autocomplete failed", "error", err)
		return
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(names))
	for idx, name := range names {
		choices[idx] = &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name}
	}

	err = b.session.Raw().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		slog.Warn("autocomplete response failed", "error", err)
	}
}

func (b *Bot) respond(i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := b.session.Raw().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		slog.Error("interaction response failed", "error", err)
	}
}

func (b *Bot) respondEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := b.session.Raw().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		slog.Error("interaction response failed", "error", err)
	}
}

// respondErr maps service and repository errors onto the friendly ephemeral
// messages users see. Unexpected errors are logged and masked.
func (b *Bot) respondErr(i *discordgo.InteractionCreate, err error) {
	b.respond(i, errorMessage(err), true)
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		return "You've already checked in today. See you tomorrow! 💙"
	case errors.Is(err, service.ErrExpired):
		return "The check-in window for this habit has closed for today. Tomorrow is a fresh start!"
	case errors.Is(err, repository.ErrHabitNotFound):
		return "That habit doesn't exist anymore."
	case errors.Is(err, repository.ErrHabitExists):
		return "A habit with that name already exists."
	case errors.Is(err, repository.ErrItemNotFound):
		return "You're not tracking an item with that name."
	case errors.Is(err, repository.ErrItemExists):
		return "You're already tracking an item with that name."
	case errors.Is(err, repository.ErrAccountNotFound):
		return "You don't have a debt account with that name."
	case errors.Is(err, repository.ErrAccountExists):
		return "You already have a debt account with that name."
	case errors.Is(err, repository.ErrEventNotFound):
		return "You don't have a countdown with that name."
	case errors.Is(err, repository.ErrEventExists):
		return "You already have a countdown with that name."
	case errors.Is(err, repository.ErrPrefsNotFound):
		return "You haven't set up morning briefings yet. Try `/briefing opt-in`."
	case service.IsInputError(err):
		return err.Error()
	}
	slog.Error("command failed", "error", err)
	return "Something went wrong on my end. Please try again."
}

// interactionUserID works in both guild channels and DMs.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// subcommand splits an interaction into its subcommand name and an
// option-by-name map.
func subcommand(data discordgo.ApplicationCommandInteractionData) (string, map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if len(data.Options) == 0 {
		return "", nil
	}
	sub := data.Options[0]
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		opts[opt.Name] = opt
	}
	return sub.Name, opts
}

func optString(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) *string {
	opt, ok := opts[name]
	if !ok {
		return nil
	}
	v := opt.StringValue()
	return &v
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
