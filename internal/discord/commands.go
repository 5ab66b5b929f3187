package discord

import "github.com/bwmarrin/discordgo"

// commandDefinitions is the full slash command surface, registered as global
// application commands on startup.
var commandDefinitions = []*discordgo.ApplicationCommand{
	{
		Name:        "habit",
		Description: "Manage shared habits and streaks",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "create",
				Description: "Create a new habit",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "name", Description: "Habit name", Type: discordgo.ApplicationCommandOptionString, Required: true},
					{Name: "reminder-time", Description: "Daily reminder time (HH:MM)", Type: discordgo.ApplicationCommandOptionString, Required: true},
					{Name: "expiry-time", Description: "Check-in window close time (HH:MM)", Type: discordgo.ApplicationCommandOptionString},
					{Name: "description", Description: "What this habit is about", Type: discordgo.ApplicationCommandOptionString},
				},
			},
			{
				Name:        "list",
				Description: "List all habits",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "edit",
				Description: "Change a habit's schedule or description",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "name", Description: "Habit name", Type: discordgo.ApplicationCommandOptionString, Required: true},
					{Name: "new-name", Description: "Rename the habit", Type: discordgo.ApplicationCommandOptionString},
					{Name: "reminder-time", Description: "Daily reminder time (HH:MM)", Type: discordgo.ApplicationCommandOptionString},
					{Name: "expiry-time", Description: "Check-in window close time (HH:MM)", Type: discordgo.ApplicationCommandOptionString},
					{Name: "description", Description: "What this habit is about", Type: discordgo.ApplicationCommandOptionString},
				},
			},
			{
				Name:        "delete",
				Description: "Delete a habit and all its progress",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "name", Description: "Habit name", Type: discordgo.ApplicationCommandOptionString, Required: true},
				},
			},
			{
				Name:        "join",
				Description: "Join a habit's reminders",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "name", Description: "Habit name", Type: discordgo.ApplicationCommandOptionString, Required: true},
				},
			},
			{
				Name:        "leave",
				Description: "Leave a habit's reminders",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "name", Description: "Habit name", Type: discordgo.ApplicationCommandOptionString, Required: true},
				},
			},
			{
				Name:        "nudge",
				Description: "See which habits you haven't checked in for today",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
		},
	},
	{
		Name:        "restock",
		Description: "Track items that need regular restocking",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "add",
				Description: "Track a new item",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "item", Description: "Item name", Type: discordgo.ApplicationCommandOptionString, Required: true},
					{Name: "days", Description: "Days until it needs restocking", Type: discordgo.ApplicationCommandOptionInteger, Required: true},
				},
			},
			{
				Name:        "done",
				Description: "Mark an item as restocked",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "item", Description: "Item name", Type: discordgo.ApplicationCommandOptionString, Required: true},
				},
			},
			{
				Name:        "list",
				Description: "List your tracked items",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "remove",
				Description: "Stop tracking an item",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "item", Description: "Item name", Type: discordgo.ApplicationCommandOptionString, Required: true},
				},
			},
		},
	},
	{
		Name:        "debt",
		Description: "Track debt paydown",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "add",
				Description: "Add a debt account",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "name", Description: "Account name", Type: discordgo.ApplicationCommandOptionString, Required: true},
					{Name: "balance", Description: "Current balance", Type: discordgo.ApplicationCommandOptionNumber, Required: true},
					{Name: "interest-rate", Description: "Annual interest rate (%)", Type: discordgo.ApplicationCommandOptionNumber},
					{Name: "due-date", Description: "Payment due date (YYYY-MM-DD)", Type: discordgo.ApplicationCommandOptionString},
					{Name: "description", Description: "Notes about this account", Type: discordgo.ApplicationCommandOptionString},
					{Name: "public", Description: "Show on the shared dashboard (default true)", Type: discordgo.ApplicationCommandOptionBoolean},
				},
			},
			{
				Name:        "list",
				Description: "List your debt accounts",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "payment",
				Description: "Record a payment",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "name", Description: "Account name", Type: discordgo.ApplicationCommandOptionString, Required: true, Autocomplete: true},
					{Name: "amount", Description: "Payment amount", Type: discordgo.ApplicationCommandOptionNumber, Required: true},
					{Name: "date", Description: "Payment date (YYYY-MM-DD, default today)", Type: discordgo.ApplicationCommandOptionString},
					{Name: "notes", Description: "Notes about this payment", Type: discordgo.ApplicationCommandOptionString},
				},
			},
			{
				Name:        "charge",
				Description: "Record a charge or fee",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "name", Description: "Account name", Type: discordgo.ApplicationCommandOptionString, Required: true, Autocomplete: true},
					{Name: "amount", Description: "Charge amount", Type: discordgo.ApplicationCommandOptionNumber, Required: true},
					{Name: "description", Description: "What the charge was for", Type: discordgo.ApplicationCommandOptionString},
				},
			},
			{
				Name:        "edit",
				Description: "Edit an account",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "name", Description: "Account name", Type: discordgo.ApplicationCommandOptionString, Required: true, Autocomplete: true},
					{Name: "new-name", Description: "Rename the account", Type: discordgo.ApplicationCommandOptionString},
					{Name: "balance", Description: "Set the current balance", Type: discordgo.ApplicationCommandOptionNumber},
					{Name: "interest-rate", Description: "Set the interest rate (%)", Type: discordgo.ApplicationCommandOptionNumber},
					{Name: "due-date", Description: "Set the due date (YYYY-MM-DD)", Type: discordgo.ApplicationCommandOptionString},
					{Name: "description", Description: "Set the description", Type: discordgo.ApplicationCommandOptionString},
					{Name: "public", Description: "Show on the shared dashboard", Type: discordgo.ApplicationCommandOptionBoolean},
				},
			},
			{
				Name:        "delete",
				Description: "Delete an account and its history",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "name", Description: "Account name", Type: discordgo.ApplicationCommandOptionString, Required: true, Autocomplete: true},
				},
			},
			{
				Name:        "history",
				Description: "Show recent payments for an account",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "name", Description: "Account name", Type: discordgo.ApplicationCommandOptionString, Required: true, Autocomplete: true},
				},
			},
		},
	},
	{
		Name:        "briefing",
		Description: "Personal morning briefings",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "opt-in",
				Description: "Start receiving a morning briefing DM",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "time", Description: "Delivery time (HH:MM, local)", Type: discordgo.ApplicationCommandOptionString, Required: true},
					{Name: "location", Description: "Location for weather", Type: discordgo.ApplicationCommandOptionString},
				},
			},
			{
				Name:        "opt-out",
				Description: "Stop receiving briefings",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "set-location",
				Description: "Set your weather location",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "location", Description: "City or place name", Type: discordgo.ApplicationCommandOptionString, Required: true},
				},
			},
			{
				Name:        "set-time",
				Description: "Set your delivery time",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "time", Description: "Delivery time (HH:MM, local)", Type: discordgo.ApplicationCommandOptionString, Required: true},
				},
			},
			{
				Name:        "set-bus-origin",
				Description: "Set the bus stop you leave from",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "nickname", Description: "Short name for the stop", Type: discordgo.ApplicationCommandOptionString, Required: true},
					{Name: "address", Description: "Address of the stop", Type: discordgo.ApplicationCommandOptionString, Required: true},
				},
			},
			{
				Name:        "set-bus-destination",
				Description: "Set the bus stop you travel to",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "nickname", Description: "Short name for the stop", Type: discordgo.ApplicationCommandOptionString, Required: true},
					{Name: "address", Description: "Address of the stop", Type: discordgo.ApplicationCommandOptionString, Required: true},
				},
			},
			{
				Name:        "status",
				Description: "Show your briefing settings",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "countdown-add",
				Description: "Add an event countdown",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "event", Description: "Event name", Type: discordgo.ApplicationCommandOptionString, Required: true},
					{Name: "date", Description: "Event date (YYYY-MM-DD)", Type: discordgo.ApplicationCommandOptionString, Required: true},
					{Name: "in-briefing", Description: "Include in your morning briefing (default true)", Type: discordgo.ApplicationCommandOptionBoolean},
				},
			},
			{
				Name:        "countdown-list",
				Description: "List your event countdowns",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "countdown-remove",
				Description: "Remove an event countdown",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{Name: "event", Description: "Event name", Type: discordgo.ApplicationCommandOptionString, Required: true},
				},
			},
			{
				Name:        "test",
				Description: "Send yourself a briefing right now",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
		},
	},
}
