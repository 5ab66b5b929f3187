package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Sneethan/gntle-habits/internal/model"
)

type AffirmationRepository interface {
	Random(tone string) (*model.Affirmation, error)
}

type affirmationRepository struct {
	db *sqlx.DB
}

func NewAffirmationRepository(db *sqlx.DB) AffirmationRepository {
	return &affirmationRepository{db: db}
}

// Random picks one affirmation for the given tone, falling back to any tone
// when none match.
func (r *affirmationRepository) Random(tone string) (*model.Affirmation, error) {
	affirmation := &model.Affirmation{}
	query := `SELECT * FROM affirmations WHERE tone = $1 ORDER BY RANDOM() LIMIT 1`

	err := r.db.Get(affirmation, query, tone)
	if err == sql.ErrNoRows {
		err = r.db.Get(affirmation, `SELECT * FROM affirmations ORDER BY RANDOM() LIMIT 1`)
	}
	if err == sql.ErrNoRows {
		return &model.Affirmation{Tone: tone, Message: "Great job! 🌟"}, nil
	}
	if err != nil {
		return nil, err
	}

	return affirmation, nil
}
