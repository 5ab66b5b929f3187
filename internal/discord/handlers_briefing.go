package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Sneethan/gntle-habits/internal/model"
)

const geocodeTimeout = 10 * time.Second

func (b *Bot) handleBriefing(i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	sub, opts := subcommand(data)
	userID := interactionUserID(i)

	switch sub {
	case "opt-in":
		greetingTime := opts["time"].StringValue()
		err := b.briefing.OptIn(userID, greetingTime, optString(opts, "location"))
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("☀️ You're in! A morning briefing will land in your DMs at %s.", greetingTime), true)

	case "opt-out":
		err := b.briefing.OptOut(userID)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, "Briefings stopped. Come back any time with `/briefing opt-in`.", true)

	case "set-location":
		location := opts["location"].StringValue()
		err := b.briefing.SetLocation(userID, location)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("Weather location set to **%s**.", location), true)

	case "set-time":
		greetingTime := opts["time"].StringValue()
		err := b.briefing.SetTime(userID, greetingTime)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("Briefing time set to %s.", greetingTime), true)

	case "set-bus-origin":
		b.setBusStop(i, userID, opts, true)

	case "set-bus-destination":
		b.setBusStop(i, userID, opts, false)

	case "status":
		b.briefingStatus(i, userID)

	case "countdown-add":
		includeInBriefing := true
		if opt, ok := opts["in-briefing"]; ok {
			includeInBriefing = opt.BoolValue()
		}
		event, err := b.briefing.AddCountdown(userID, opts["event"].StringValue(), opts["date"].StringValue(), includeInBriefing)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		days, err := b.briefing.DaysUntil(event.EventDate, time.Now())
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("📅 Counting down to **%s**: %d days to go!", event.EventName, days), true)

	case "countdown-list":
		events, err := b.briefing.Countdowns(userID)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		if len(events) == 0 {
			b.respond(i, "No countdowns yet. Add one with `/briefing countdown-add`!", true)
			return
		}
		now := time.Now()
		var sb strings.Builder
		for _, event := range events {
			days, err := b.briefing.DaysUntil(event.EventDate, now)
			if err != nil {
				continue
			}
			switch {
			case days < 0:
				fmt.Fprintf(&sb, "• **%s** was %d days ago (%s)\n", event.EventName, -days, event.EventDate)
			case days == 0:
				fmt.Fprintf(&sb, "• **%s** is TODAY! 🎉\n", event.EventName)
			default:
				fmt.Fprintf(&sb, "• **%s** in %d days (%s)\n", event.EventName, days, event.EventDate)
			}
		}
		b.respondEmbed(i, &discordgo.MessageEmbed{
			Title:       "📅 Countdowns",
			Description: sb.String(),
			Color:       0xFEE75C,
		}, true)

	case "countdown-remove":
		name := opts["event"].StringValue()
		err := b.briefing.RemoveCountdown(userID, name)
		if err != nil {
			b.respondErr(i, err)
			return
		}
		b.respond(i, fmt.Sprintf("Removed the countdown for **%s**.", name), true)

	case "test":
		text, err := b.briefing.Compose(context.Background(), userID, time.Now())
		if err != nil {
			b.respondErr(i, err)
			return
		}
		err = b.session.SendDM(userID, text)
		if err != nil {
			b.respond(i, "I couldn't DM you. Check that DMs from server members are allowed.", true)
			return
		}
		b.respond(i, "Sent! Check your DMs. 📬", true)

	default:
		b.respond(i, "Unknown subcommand.", true)
	}
}

func (b *Bot) setBusStop(i *discordgo.InteractionCreate, userID string, opts map[string]*discordgo.ApplicationCommandInteractionDataOption, isOrigin bool) {
	nickname := opts["nickname"].StringValue()
	address := opts["address"].StringValue()

	ctx, cancel := context.WithTimeout(context.Background(), geocodeTimeout)
	defer cancel()

	geocoded, err := b.geocoder.Resolve(ctx, address)
	if err != nil {
		b.respond(i, "Could not find coordinates for that address. Please try a more specific address.", true)
		return
	}

	err = b.briefing.SetBusStop(userID, nickname, geocoded, isOrigin)
	if err != nil {
		b.respondErr(i, err)
		return
	}

	direction := "origin"
	if !isOrigin {
		direction = "destination"
	}
	b.respond(i, fmt.Sprintf("🚌 Bus %s set to **%s**.", direction, nickname), true)
}

func (b *Bot) briefingStatus(i *discordgo.InteractionCreate, userID string) {
	prefs, err := b.briefing.Prefs(userID)
	if err != nil {
		b.respondErr(i, err)
		return
	}

	var sb strings.Builder
	if prefs.OptedIn {
		fmt.Fprintf(&sb, "✅ Opted in, delivered at **%s**\n", prefs.GreetingTime)
	} else {
		sb.WriteString("❌ Opted out\n")
	}
	if prefs.Location != nil && *prefs.Location != "" {
		fmt.Fprintf(&sb, "📍 Location: %s\n", *prefs.Location)
	}
	if name, _, ok := model.BusStop(prefs.BusOrigin); ok {
		fmt.Fprintf(&sb, "🚏 Bus origin: %s\n", name)
	}
	if name, _, ok := model.BusStop(prefs.BusDestination); ok {
		fmt.Fprintf(&sb, "🏁 Bus destination: %s\n", name)
	}

	b.respondEmbed(i, &discordgo.MessageEmbed{
		Title:       "☀️ Briefing Settings",
		Description: sb.String(),
		Color:       0xFEE75C,
	}, true)
}
