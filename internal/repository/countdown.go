package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Sneethan/gntle-habits/internal/model"
)

var (
	ErrEventNotFound = errors.New("event countdown not found")
	ErrEventExists   = errors.New("event countdown already exists")
)

type CountdownRepository interface {
	Create(event *model.EventCountdown) error
	ForUser(userID string) ([]*model.EventCountdown, error)
	ForBriefing(userID string) ([]*model.EventCountdown, error)
	Delete(userID, eventName string) error
}

type countdownRepository struct {
	db *sqlx.DB
}

func NewCountdownRepository(db *sqlx.DB) CountdownRepository {
	return &countdownRepository{db: db}
}

func (r *countdownRepository) Create(event *model.EventCountdown) error {
	query := `INSERT INTO event_countdowns (user_id, event_name, event_date, include_in_briefing, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, event.UserID, event.EventName, event.EventDate, event.IncludeInBriefing, event.CreatedAt)
	if isUniqueViolation(err) {
		return ErrEventExists
	}
	return err
}

func (r *countdownRepository) ForUser(userID string) ([]*model.EventCountdown, error) {
	var events []*model.EventCountdown
	query := `SELECT * FROM event_countdowns WHERE user_id = $1 ORDER BY event_date ASC`

	err := r.db.Select(&events, query, userID)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *countdownRepository) ForBriefing(userID string) ([]*model.EventCountdown, error) {
	var events []*model.EventCountdown
	query := `SELECT * FROM event_countdowns
	          WHERE user_id = $1 AND include_in_briefing = 1
	          ORDER BY event_date ASC`

	err := r.db.Select(&events, query, userID)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *countdownRepository) Delete(userID, eventName string) error {
	result, err := r.db.Exec(`DELETE FROM event_countdowns WHERE user_id = $1 AND event_name = $2`, userID, eventName)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEventNotFound
	}

	return nil
}
