package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Sneethan/gntle-habits/internal/model"
)

var ErrProgressNotFound = errors.New("progress not found")

// ProgressRepository reads streak rows outside of the check-in transaction.
// The check-in itself runs its reads and the upsert on one transaction inside
// service.StreakService, so the dashboard and nudge paths here are read-only.
type ProgressRepository interface {
	ByUserAndHabit(userID string, habitID int64) (*model.UserHabitProgress, error)
	ForUser(userID string) ([]*model.UserHabitProgress, error)
	Leaderboard(limit int) ([]*StreakRow, error)
	DeleteForUser(userID string) error
}

// StreakRow joins progress with its habit name for rendering.
type StreakRow struct {
	UserID        string       `db:"user_id"`
	HabitID       int64        `db:"habit_id"`
	HabitName     string       `db:"habit_name"`
	CurrentStreak int          `db:"current_streak"`
	LastCheckIn   sql.NullTime `db:"last_check_in"`
}

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) ByUserAndHabit(userID string, habitID int64) (*model.UserHabitProgress, error) {
	progress := &model.UserHabitProgress{}
	query := `SELECT * FROM user_habits WHERE user_id = $1 AND habit_id = $2`

	err := r.db.Get(progress, query, userID, habitID)
	if err == sql.ErrNoRows {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}

	return progress, nil
}

func (r *progressRepository) ForUser(userID string) ([]*model.UserHabitProgress, error) {
	var rows []*model.UserHabitProgress
	query := `SELECT * FROM user_habits WHERE user_id = $1`

	err := r.db.Select(&rows, query, userID)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *progressRepository) Leaderboard(limit int) ([]*StreakRow, error) {
	var rows []*StreakRow
	query := `SELECT uh.user_id, uh.habit_id, h.name AS habit_name, uh.current_streak, uh.last_check_in
	          FROM user_habits uh
	          JOIN habits h ON uh.habit_id = h.id
	          WHERE uh.current_streak > 0
	          ORDER BY uh.current_streak DESC
	          LIMIT $1`

	err := r.db.Select(&rows, query, limit)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// DeleteForUser removes progress for users that can no longer be resolved on
// the platform.
func (r *progressRepository) DeleteForUser(userID string) error {
	_, err := r.db.Exec(`DELETE FROM user_habits WHERE user_id = $1`, userID)
	return err
}
