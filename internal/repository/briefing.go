package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Sneethan/gntle-habits/internal/model"
)

var ErrPrefsNotFound = errors.New("briefing preferences not found")

type BriefingRepository interface {
	Prefs(userID string) (*model.MorningBriefingPrefs, error)
	// Upsert creates the row with defaults on first touch, then applies the
	// non-nil fields. optedIn is applied only when non-nil so that setting a
	// location does not silently opt a user in.
	Upsert(userID string, optedIn *bool, location, greetingTime, busOrigin, busDestination *string, now time.Time) error
	// DueAt returns opted-in users whose greeting time equals the given HH:MM.
	DueAt(hhmm string) ([]*model.MorningBriefingPrefs, error)
}

type briefingRepository struct {
	db *sqlx.DB
}

func NewBriefingRepository(db *sqlx.DB) BriefingRepository {
	return &briefingRepository{db: db}
}

func (r *briefingRepository) Prefs(userID string) (*model.MorningBriefingPrefs, error) {
	prefs := &model.MorningBriefingPrefs{}
	query := `SELECT * FROM morning_briefing_prefs WHERE user_id = $1`

	err := r.db.Get(prefs, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrPrefsNotFound
	}
	if err != nil {
		return nil, err
	}

	return prefs, nil
}

func (r *briefingRepository) Upsert(userID string, optedIn *bool, location, greetingTime, busOrigin, busDestination *string, now time.Time) error {
	var optedInInt *int
	if optedIn != nil {
		v := 0
		if *optedIn {
			v = 1
		}
		optedInInt = &v
	}

	query := `INSERT INTO morning_briefing_prefs
	          (user_id, opted_in, location, greeting_time, bus_origin, bus_destination, created_at)
	          VALUES ($1, COALESCE($2, 0), $3, COALESCE($4, '07:00'), $5, $6, $7)
	          ON CONFLICT (user_id) DO UPDATE SET
	            opted_in = COALESCE($2, opted_in),
	            location = COALESCE($3, location),
	            greeting_time = COALESCE($4, greeting_time),
	            bus_origin = COALESCE($5, bus_origin),
	            bus_destination = COALESCE($6, bus_destination)`

	_, err := r.db.Exec(query, userID, optedInInt, location, greetingTime, busOrigin, busDestination, now)
	return err
}

func (r *briefingRepository) DueAt(hhmm string) ([]*model.MorningBriefingPrefs, error) {
	var prefs []*model.MorningBriefingPrefs
	query := `SELECT * FROM morning_briefing_prefs WHERE opted_in = 1 AND greeting_time = $1`

	err := r.db.Select(&prefs, query, hhmm)
	if err != nil {
		return nil, err
	}

	return prefs, nil
}
