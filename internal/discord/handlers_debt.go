package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"

	"github.com/Sneethan/gntle-habits/internal/model"
)

const historyLimit = 10

func (b *Bot) handleDebt(i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	sub, opts := subcommand(data)
	userID := interactionUserID(i)

	switch sub {
	case "add":
		balance := decimal.NewFromFloat(opts["balance"].FloatValue())
		var rate *decimal.Decimal
		if opt, ok := opts["interest-rate"]; ok {
			r := decimal.NewFromFloat(opt.FloatValue())
			rate = &r
		}
		isPublic := true
		if opt, ok := opts["public"]; ok {
			isPublic = opt.BoolValue()
		}

		account, err := b.debts.AddAccount(
			userID,
			opts["name"].StringValue(),
			balance,
			rate,
			optString(opts, "due-date"),
			optString(opts, "description"),
			isPublic,
		)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("💰 Added account **%s** with a balance of $%s.",
			account.Name, account.CurrentBalance.StringFixed(2)), true)

	case "list":
		accounts, err := b.debts.Accounts(userID, true)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		if len(accounts) == 0 {
			b.respond(i, "You have no debt accounts. Add one with `/debt add`!", true)
			return
		}
		var sb strings.Builder
		for _, account := range accounts {
			visibility := "🔒"
			if account.IsPublic {
				visibility = "🌐"
			}
			fmt.Fprintf(&sb, "%s **%s** · $%s of $%s remaining (%.0f%% paid)\n",
				visibility, account.Name,
				account.CurrentBalance.StringFixed(2),
				account.InitialBalance.StringFixed(2),
				account.PercentPaid())
		}
		b.respondEmbed(i, &discordgo.MessageEmbed{
			Title:       "💰 Debt Accounts",
			Description: sb.String(),
			Color:       0x57F287,
		}, true)

	case "payment":
		amount := decimal.NewFromFloat(opts["amount"].FloatValue())
		account, err := b.debts.RecordPayment(
			userID,
			opts["name"].StringValue(),
			amount,
			optString(opts, "date"),
			optString(opts, "notes"),
			time.Now(),
		)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		msg := fmt.Sprintf("✅ Recorded a $%s payment on **%s**. New balance: $%s.",
			amount.StringFixed(2), account.Name, account.CurrentBalance.StringFixed(2))
		if account.CurrentBalance.IsZero() {
			msg += "\n🎉 That account is fully paid off. Incredible work!"
		}
		b.respond(i, msg, true)

	case "charge":
		amount := decimal.NewFromFloat(opts["amount"].FloatValue())
		account, err := b.debts.RecordCharge(
			userID,
			opts["name"].StringValue(),
			amount,
			optString(opts, "description"),
			time.Now(),
		)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("Recorded a $%s charge on **%s**. New balance: $%s.",
			amount.StringFixed(2), account.Name, account.CurrentBalance.StringFixed(2)), true)

	case "edit":
		update := model.DebtAccountUpdate{
			Name:        optString(opts, "new-name"),
			DueDate:     optString(opts, "due-date"),
			Description: optString(opts, "description"),
		}
		if opt, ok := opts["balance"]; ok {
			v := decimal.NewFromFloat(opt.FloatValue())
			update.Balance = &v
		}
		if opt, ok := opts["interest-rate"]; ok {
			v := decimal.NewFromFloat(opt.FloatValue())
			update.InterestRate = &v
		}
		if opt, ok := opts["public"]; ok {
			v := opt.BoolValue()
			update.IsPublic = &v
		}

		err := b.debts.EditAccount(userID, opts["name"].StringValue(), update, time.Now())
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, "Account updated.", true)

	case "delete":
		name := opts["name"].StringValue()
		err := b.debts.DeleteAccount(userID, name)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("Deleted account **%s** and its payment history.", name), true)

	case "history":
		account, payments, err := b.debts.History(userID, opts["name"].StringValue(), historyLimit)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		if len(payments) == 0 {
			b.respond(i, fmt.Sprintf("No payments recorded on **%s** yet.", account.Name), true)
			return
		}
		var sb strings.Builder
		for _, p := range payments {
			kind := "💸 Payment"
			if p.Amount.IsNegative() {
				kind = "📈 Charge"
			}
			fmt.Fprintf(&sb, "%s · $%s on %s", kind, p.Amount.Abs().StringFixed(2), p.PaymentDate)
			if p.Description != nil && *p.Description != "" {
				fmt.Fprintf(&sb, " · %s", *p.Description)
			}
			sb.WriteString("\n")
		}
		b.respondEmbed(i, &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("History · %s", account.Name),
			Description: sb.String(),
			Color:       0x5865F2,
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("Current balance $%s", account.CurrentBalance.StringFixed(2)),
			},
		}, true)

	default:
		b.respond(i, "Unknown subcommand.", true)
	}
}
