package model

type RestockItem struct {
	UserID             string `db:"user_id"`
	ItemName           string `db:"item_name"`
	RefillDate         string `db:"refill_date"` // YYYY-MM-DD, local
	DaysBetweenRefills int    `db:"days_between_refills"`
}
