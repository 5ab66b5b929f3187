package repository

import (
	"time"

	"github.com/jmoiron/sqlx"
)

type ParticipantRepository interface {
	Join(habitID int64, userID string) error
	Leave(habitID int64, userID string) error
	Participants(habitID int64) ([]string, error)
	// PendingToday returns participants of a habit with no check-in inside
	// [dayStartUTC, dayEndUTC), the UTC instant range of today's local date.
	PendingToday(habitID int64, dayStartUTC, dayEndUTC time.Time) ([]string, error)
}

type participantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Join(habitID int64, userID string) error {
	query := `INSERT INTO habit_participants (habit_id, user_id) VALUES ($1, $2)
	          ON CONFLICT (habit_id, user_id) DO NOTHING`
	_, err := r.db.Exec(query, habitID, userID)
	return err
}

func (r *participantRepository) Leave(habitID int64, userID string) error {
	_, err := r.db.Exec(`DELETE FROM habit_participants WHERE habit_id = $1 AND user_id = $2`, habitID, userID)
	return err
}

func (r *participantRepository) Participants(habitID int64) ([]string, error) {
	var users []string
	err := r.db.Select(&users, `SELECT user_id FROM habit_participants WHERE habit_id = $1 ORDER BY user_id`, habitID)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// PendingToday left-joins progress restricted to today's local day, expressed
// as a UTC instant range so the comparison never mixes zones.
func (r *participantRepository) PendingToday(habitID int64, dayStartUTC, dayEndUTC time.Time) ([]string, error) {
	var users []string
	query := `SELECT DISTINCT hp.user_id
	          FROM habit_participants hp
	          LEFT JOIN user_habits uh
	            ON hp.habit_id = uh.habit_id
	            AND hp.user_id = uh.user_id
	            AND uh.last_check_in >= $2
	            AND uh.last_check_in < $3
	          WHERE hp.habit_id = $1
	            AND uh.user_id IS NULL
	          ORDER BY hp.user_id`

	err := r.db.Select(&users, query, habitID, dayStartUTC, dayEndUTC)
	if err != nil {
		return nil, err
	}
	return users, nil
}
