package model

// Dashboard names used as keys in dashboard_messages.
const (
	DashboardStreaks = "streaks"
	DashboardDebts   = "debts"
)

type DashboardMessage struct {
	Name      string `db:"name"`
	ChannelID string `db:"channel_id"`
	MessageID string `db:"message_id"`
}

type ReminderMessage struct {
	HabitID   int64  `db:"habit_id"`
	ChannelID string `db:"channel_id"`
	MessageID string `db:"message_id"`
}
