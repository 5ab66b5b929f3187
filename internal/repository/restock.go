package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Sneethan/gntle-habits/internal/model"
)

var (
	ErrItemNotFound = errors.New("restock item not found")
	ErrItemExists   = errors.New("restock item already exists")
)

type RestockRepository interface {
	Create(item *model.RestockItem) error
	ByName(userID, itemName string) (*model.RestockItem, error)
	ForUser(userID string) ([]*model.RestockItem, error)
	SetRefillDate(userID, itemName, refillDate string) error
	// DueOn returns items whose refill date equals the given YYYY-MM-DD date.
	DueOn(date string) ([]*model.RestockItem, error)
	Delete(userID, itemName string) error
}

type restockRepository struct {
	db *sqlx.DB
}

func NewRestockRepository(db *sqlx.DB) RestockRepository {
	return &restockRepository{db: db}
}

func (r *restockRepository) Create(item *model.RestockItem) error {
	query := `INSERT INTO restock_items (user_id, item_name, refill_date, days_between_refills)
	          VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, item.UserID, item.ItemName, item.RefillDate, item.DaysBetweenRefills)
	if isUniqueViolation(err) {
		return ErrItemExists
	}
	return err
}

func (r *restockRepository) ByName(userID, itemName string) (*model.RestockItem, error) {
	item := &model.RestockItem{}
	query := `SELECT * FROM restock_items WHERE user_id = $1 AND item_name = $2`

	err := r.db.Get(item, query, userID, itemName)
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *restockRepository) ForUser(userID string) ([]*model.RestockItem, error) {
	var items []*model.RestockItem
	query := `SELECT * FROM restock_items WHERE user_id = $1 ORDER BY refill_date ASC`

	err := r.db.Select(&items, query, userID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *restockRepository) SetRefillDate(userID, itemName, refillDate string) error {
	result, err := r.db.Exec(
		`UPDATE restock_items SET refill_date = $1 WHERE user_id = $2 AND item_name = $3`,
		refillDate, userID, itemName,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *restockRepository) DueOn(date string) ([]*model.RestockItem, error) {
	var items []*model.RestockItem
	query := `SELECT * FROM restock_items WHERE refill_date = $1 ORDER BY user_id, item_name`

	err := r.db.Select(&items, query, date)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *restockRepository) Delete(userID, itemName string) error {
	result, err := r.db.Exec(`DELETE FROM restock_items WHERE user_id = $1 AND item_name = $2`, userID, itemName)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrItemNotFound
	}

	return nil
}
