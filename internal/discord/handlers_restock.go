package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleRestock(i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	sub, opts := subcommand(data)
	userID := interactionUserID(i)

	switch sub {
	case "add":
		item, err := b.restock.Track(userID, opts["item"].StringValue(), int(opts["days"].IntValue()))
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("📦 Tracking **%s**, next restock on %s.", item.ItemName, item.RefillDate), true)

	case "done":
		item, err := b.restock.MarkDone(userID, opts["item"].StringValue())
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("✅ Restocked **%s**! Next restock on %s.", item.ItemName, item.RefillDate), true)

	case "list":
		items, err := b.restock.Items(userID)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		if len(items) == 0 {
			b.respond(i, "You're not tracking any items. Add one with `/restock add`!", true)
			return
		}
		var sb strings.Builder
		for _, item := range items {
			fmt.Fprintf(&sb, "• **%s** · next restock %s (every %d days)\n",
				item.ItemName, item.RefillDate, item.DaysBetweenRefills)
		}
		b.respondEmbed(i, &discordgo.MessageEmbed{
			Title:       "📦 Restock Items",
			Description: sb.String(),
			Color:       0x5865F2,
		}, true)

	case "remove":
		name := opts["item"].StringValue()
		err := b.restock.Untrack(userID, name)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("Stopped tracking **%s**.", name), true)

	default:
		b.respond(i, "Unknown subcommand.", true)
	}
}
