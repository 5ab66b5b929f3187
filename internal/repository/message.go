package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Sneethan/gntle-habits/internal/model"
)

// MessageRepository tracks the identities of long-lived Discord messages
// (dashboards, outstanding reminders) so they survive restarts.
type MessageRepository interface {
	Dashboard(name string) (*model.DashboardMessage, error)
	SetDashboard(msg *model.DashboardMessage) error

	Reminder(habitID int64) (*model.ReminderMessage, error)
	SetReminder(msg *model.ReminderMessage) error
	ClearReminder(habitID int64) error
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Dashboard(name string) (*model.DashboardMessage, error) {
	msg := &model.DashboardMessage{}
	err := r.db.Get(msg, `SELECT * FROM dashboard_messages WHERE name = $1`, name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *messageRepository) SetDashboard(msg *model.DashboardMessage) error {
	query := `INSERT INTO dashboard_messages (name, channel_id, message_id) VALUES ($1, $2, $3)
	          ON CONFLICT (name) DO UPDATE SET channel_id = $2, message_id = $3`
	_, err := r.db.Exec(query, msg.Name, msg.ChannelID, msg.MessageID)
	return err
}

func (r *messageRepository) Reminder(habitID int64) (*model.ReminderMessage, error) {
	msg := &model.ReminderMessage{}
	err := r.db.Get(msg, `SELECT * FROM reminder_messages WHERE habit_id = $1`, habitID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *messageRepository) SetReminder(msg *model.ReminderMessage) error {
	query := `INSERT INTO reminder_messages (habit_id, channel_id, message_id) VALUES ($1, $2, $3)
	          ON CONFLICT (habit_id) DO UPDATE SET channel_id = $2, message_id = $3`
	_, err := r.db.Exec(query, msg.HabitID, msg.ChannelID, msg.MessageID)
	return err
}

func (r *messageRepository) ClearReminder(habitID int64) error {
	_, err := r.db.Exec(`DELETE FROM reminder_messages WHERE habit_id = $1`, habitID)
	return err
}
