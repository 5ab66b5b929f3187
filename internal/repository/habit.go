package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Sneethan/gntle-habits/internal/model"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrHabitExists   = errors.New("habit already exists")
)

type HabitRepository interface {
	Create(habit *model.Habit) (int64, error)
	ByID(id int64) (*model.Habit, error)
	ByName(name string) (*model.Habit, error)
	Habits() ([]*model.Habit, error)
	Update(id int64, update model.HabitUpdate) error
	Delete(id int64) error
}

type habitRepository struct {
	db *sqlx.DB
}

func NewHabitRepository(db *sqlx.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(habit *model.Habit) (int64, error) {
	query := `INSERT INTO habits (name, reminder_time, expiry_time, description, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	res, err := r.db.Exec(query,
		habit.Name,
		habit.ReminderTime,
		habit.ExpiryTime,
		habit.Description,
		habit.CreatedAt,
	)
	if isUniqueViolation(err) {
		return 0, ErrHabitExists
	}
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *habitRepository) ByID(id int64) (*model.Habit, error) {
	habit := &model.Habit{}
	query := `SELECT * FROM habits WHERE id = $1`

	err := r.db.Get(habit, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}

	return habit, nil
}

func (r *habitRepository) ByName(name string) (*model.Habit, error) {
	habit := &model.Habit{}
	query := `SELECT * FROM habits WHERE name = $1`

	err := r.db.Get(habit, query, name)
	if err == sql.ErrNoRows {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}

	return habit, nil
}

func (r *habitRepository) Habits() ([]*model.Habit, error) {
	var habits []*model.Habit
	query := `SELECT * FROM habits ORDER BY created_at ASC`

	err := r.db.Select(&habits, query)
	if err != nil {
		return nil, err
	}

	return habits, nil
}

// Update applies a typed partial update. The statement is fixed; nil fields
// keep their stored value via COALESCE.
func (r *habitRepository) Update(id int64, update model.HabitUpdate) error {
	query := `UPDATE habits
	          SET name = COALESCE($1, name),
	              reminder_time = COALESCE($2, reminder_time),
	              expiry_time = COALESCE($3, expiry_time),
	              description = COALESCE($4, description)
	          WHERE id = $5`

	result, err := r.db.Exec(query,
		update.Name,
		update.ReminderTime,
		update.ExpiryTime,
		update.Description,
		id,
	)
	if isUniqueViolation(err) {
		return ErrHabitExists
	}
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrHabitNotFound
	}

	return nil
}

func (r *habitRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrHabitNotFound
	}

	return nil
}

// isUniqueViolation detects sqlite unique-constraint failures without tying
// the repositories to a driver-specific error type.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
