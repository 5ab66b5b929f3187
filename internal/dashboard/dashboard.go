// Package dashboard renders the long-lived channel boards: the streak
// leaderboard and the public debt overview. Each board is a single message
// that gets edited in place; its identity is persisted so edits survive
// restarts instead of piling up new messages.
package dashboard

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Sneethan/gntle-habits/internal/clock"
	"github.com/Sneethan/gntle-habits/internal/model"
	"github.com/Sneethan/gntle-habits/internal/repository"
	"github.com/Sneethan/gntle-habits/internal/service"
)

const leaderboardSize = 10

// leaderboardFetch over-fetches so that rows dropped by the decay filter or
// user pruning do not leave the board short while valid lower-ranked streaks
// exist.
const leaderboardFetch = leaderboardSize * 5

// Messenger is the slice of the chat platform the boards need. DisplayName
// resolving to an error means the user left the server.
type Messenger interface {
	Send(channelID, content string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error)
	Edit(channelID, messageID string, embed *discordgo.MessageEmbed) error
	DisplayName(userID string) (string, error)
}

type Renderer struct {
	progress  repository.ProgressRepository
	debts     repository.DebtRepository
	messages  repository.MessageRepository
	messenger Messenger
	clk       *clock.Clock
	channelID string
	printer   *message.Printer
}

func New(
	progress repository.ProgressRepository,
	debts repository.DebtRepository,
	messages repository.MessageRepository,
	messenger Messenger,
	clk *clock.Clock,
	channelID string,
) *Renderer {
	return &Renderer{
		progress:  progress,
		debts:     debts,
		messages:  messages,
		messenger: messenger,
		clk:       clk,
		channelID: channelID,
		printer:   message.NewPrinter(language.English),
	}
}

// RefreshStreakBoard re-renders the leaderboard from the stored rows. Streaks
// are displayed through the same decay rule the check-in uses, so a lapsed
// streak shows as gone even before its row is rewritten. Rows belonging to
// users who left the server are pruned.
func (r *Renderer) RefreshStreakBoard() error {
	if r.channelID == "" {
		return nil
	}

	rows, err := r.progress.Leaderboard(leaderboardFetch)
	if err != nil {
		return fmt.Errorf("load leaderboard: %w", err)
	}

	now := r.clk.NowLocal()
	var b strings.Builder
	rank := 0
	for _, row := range rows {
		if rank >= leaderboardSize {
			break
		}
		var lastCheckIn *time.Time
		if row.LastCheckIn.Valid {
			lastCheckIn = &row.LastCheckIn.Time
		}
		streak := service.EffectiveStreak(r.clk, row.CurrentStreak, lastCheckIn, now)
		if streak == 0 {
			continue
		}

		name, err := r.messenger.DisplayName(row.UserID)
		if err != nil {
			slog.Info("pruning streaks for unresolvable user", "user_id", row.UserID)
			err = r.progress.DeleteForUser(row.UserID)
			if err != nil {
				slog.Error("failed to prune user streaks", "user_id", row.UserID, "error", err)
			}
			continue
		}

		rank++
		fmt.Fprintf(&b, "%s **%s** · %s · %d day%s 🔥\n",
			rankEmoji(rank), name, row.HabitName, streak, plural(streak))
	}

	if b.Len() == 0 {
		b.WriteString("No active streaks yet. Check in to a habit to get on the board!")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Streak Leaderboard",
		Description: b.String(),
		Color:       0xFEE75C,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Updated " + now.Format("Jan 2 15:04")},
	}
	return r.upsertBoard(model.DashboardStreaks, embed)
}

// RefreshDebtBoard re-renders the public debt overview, grouped by owner with
// a payoff progress bar per account.
func (r *Renderer) RefreshDebtBoard() error {
	if r.channelID == "" {
		return nil
	}

	accounts, err := r.debts.PublicAccounts()
	if err != nil {
		return fmt.Errorf("load public accounts: %w", err)
	}

	embed := &discordgo.MessageEmbed{
		Title: "💰 Debt Paydown Tracker",
		Color: 0x57F287,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Updated " + r.clk.NowLocal().Format("Jan 2 15:04"),
		},
	}

	if len(accounts) == 0 {
		embed.Description = "No public debt accounts tracked."
		return r.upsertBoard(model.DashboardDebts, embed)
	}

	// PublicAccounts orders by user then name, so grouping is a single pass.
	var (
		owner   string
		section strings.Builder
	)
	flush := func() {
		if owner == "" {
			return
		}
		name, err := r.messenger.DisplayName(owner)
		if err != nil {
			name = "Unknown"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s's accounts", name),
			Value: section.String(),
		})
		section.Reset()
	}

	for _, account := range accounts {
		if account.UserID != owner {
			flush()
			owner = account.UserID
		}
		pct := account.PercentPaid()
		fmt.Fprintf(&section, "**%s** · %s of %s remaining\n%s %.0f%% paid\n",
			account.Name,
			r.money(account.CurrentBalance.InexactFloat64()),
			r.money(account.InitialBalance.InexactFloat64()),
			progressBar(pct, 10),
			pct,
		)
	}
	flush()

	var totalInitial, totalCurrent float64
	for _, account := range accounts {
		totalInitial += account.InitialBalance.InexactFloat64()
		totalCurrent += account.CurrentBalance.InexactFloat64()
	}
	embed.Description = r.printer.Sprintf("**%s** paid down of **%s** tracked.",
		r.money(totalInitial-totalCurrent), r.money(totalInitial))

	return r.upsertBoard(model.DashboardDebts, embed)
}

// upsertBoard edits the tracked board message, falling back to posting a new
// one when it was never created or was deleted by hand.
func (r *Renderer) upsertBoard(name string, embed *discordgo.MessageEmbed) error {
	tracked, err := r.messages.Dashboard(name)
	if err != nil {
		return fmt.Errorf("load board identity: %w", err)
	}

	if tracked != nil {
		err = r.messenger.Edit(tracked.ChannelID, tracked.MessageID, embed)
		if err == nil {
			return nil
		}
		slog.Warn("board message gone, recreating", "board", name, "error", err)
	}

	messageID, err := r.messenger.Send(r.channelID, "", embed, nil)
	if err != nil {
		return fmt.Errorf("post board %s: %w", name, err)
	}
	return r.messages.SetDashboard(&model.DashboardMessage{
		Name:      name,
		ChannelID: r.channelID,
		MessageID: messageID,
	})
}

func (r *Renderer) money(v float64) string {
	return r.printer.Sprintf("$%.2f", v)
}

// progressBar renders pct (0-100) as a fixed-width bar of filled blocks.
func progressBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func rankEmoji(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return fmt.Sprintf("%d.", rank)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
