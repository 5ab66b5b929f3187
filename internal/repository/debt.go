package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Sneethan/gntle-habits/internal/model"
)

var (
	ErrAccountNotFound = errors.New("debt account not found")
	ErrAccountExists   = errors.New("debt account already exists")
)

type DebtRepository interface {
	CreateAccount(account *model.DebtAccount) error
	AccountByName(userID, name string) (*model.DebtAccount, error)
	AccountsForUser(userID string, includePrivate bool) ([]*model.DebtAccount, error)
	PublicAccounts() ([]*model.DebtAccount, error)
	SearchAccountNames(userID, prefix string, limit int) ([]string, error)
	DeleteAccount(accountID string) error

	// ApplyLedgerEntry records one payment row and the matching balance update
	// in a single transaction. newBalance is the caller-computed post-entry
	// balance; the pair is what keeps initial - Σamounts = current.
	ApplyLedgerEntry(accountID string, payment *model.DebtPayment, newBalance decimal.Decimal, updatedAt time.Time) error

	// UpdateAccount applies a typed partial update; when update.Balance is set,
	// adjustment records the synthetic payment row for the audit trail.
	UpdateAccount(accountID string, update model.DebtAccountUpdate, adjustment *model.DebtPayment, updatedAt time.Time) error

	Payments(accountID string, limit int) ([]*model.DebtPayment, error)
	PaymentSum(accountID string) (decimal.Decimal, error)
}

type debtRepository struct {
	db *sqlx.DB
}

func NewDebtRepository(db *sqlx.DB) DebtRepository {
	return &debtRepository{db: db}
}

func (r *debtRepository) CreateAccount(account *model.DebtAccount) error {
	query := `INSERT INTO debt_accounts
	          (id, user_id, name, current_balance, initial_balance, interest_rate,
	           due_date, description, is_public, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		account.ID,
		account.UserID,
		account.Name,
		account.CurrentBalance,
		account.InitialBalance,
		account.InterestRate,
		account.DueDate,
		account.Description,
		account.IsPublic,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrAccountExists
	}
	return err
}

func (r *debtRepository) AccountByName(userID, name string) (*model.DebtAccount, error) {
	account := &model.DebtAccount{}
	query := `SELECT * FROM debt_accounts WHERE user_id = $1 AND name = $2`

	err := r.db.Get(account, query, userID, name)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (r *debtRepository) AccountsForUser(userID string, includePrivate bool) ([]*model.DebtAccount, error) {
	var accounts []*model.DebtAccount
	query := `SELECT * FROM debt_accounts WHERE user_id = $1`
	if !includePrivate {
		query += ` AND is_public = 1`
	}
	query += ` ORDER BY CAST(current_balance AS REAL) DESC`

	err := r.db.Select(&accounts, query, userID)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *debtRepository) PublicAccounts() ([]*model.DebtAccount, error) {
	var accounts []*model.DebtAccount
	query := `SELECT * FROM debt_accounts WHERE is_public = 1 ORDER BY user_id, name`

	err := r.db.Select(&accounts, query)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *debtRepository) SearchAccountNames(userID, prefix string, limit int) ([]string, error) {
	var names []string
	query := `SELECT name FROM debt_accounts WHERE user_id = $1 AND name LIKE $2 ORDER BY name LIMIT $3`

	err := r.db.Select(&names, query, userID, "%"+prefix+"%", limit)
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (r *debtRepository) DeleteAccount(accountID string) error {
	result, err := r.db.Exec(`DELETE FROM debt_accounts WHERE id = $1`, accountID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *debtRepository) ApplyLedgerEntry(accountID string, payment *model.DebtPayment, newBalance decimal.Decimal, updatedAt time.Time) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO debt_payments (id, account_id, amount, payment_date, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		payment.ID, accountID, payment.Amount, payment.PaymentDate, payment.Description, payment.CreatedAt,
	)
	if err != nil {
		return err
	}

	result, err := tx.Exec(
		`UPDATE debt_accounts SET current_balance = $1, updated_at = $2 WHERE id = $3`,
		newBalance, updatedAt, accountID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAccountNotFound
	}

	return tx.Commit()
}

func (r *debtRepository) UpdateAccount(accountID string, update model.DebtAccountUpdate, adjustment *model.DebtPayment, updatedAt time.Time) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// is_public needs an explicit int because COALESCE cannot distinguish a
	// stored false from an absent field otherwise.
	var isPublic *int
	if update.IsPublic != nil {
		v := 0
		if *update.IsPublic {
			v = 1
		}
		isPublic = &v
	}

	var balance *string
	if update.Balance != nil {
		s := update.Balance.String()
		balance = &s
	}
	var rate *string
	if update.InterestRate != nil {
		s := update.InterestRate.String()
		rate = &s
	}

	query := `UPDATE debt_accounts
	          SET name = COALESCE($1, name),
	              current_balance = COALESCE($2, current_balance),
	              interest_rate = COALESCE($3, interest_rate),
	              due_date = COALESCE($4, due_date),
	              description = COALESCE($5, description),
	              is_public = COALESCE($6, is_public),
	              updated_at = $7
	          WHERE id = $8`

	result, err := tx.Exec(query,
		update.Name,
		balance,
		rate,
		update.DueDate,
		update.Description,
		isPublic,
		updatedAt,
		accountID,
	)
	if isUniqueViolation(err) {
		return ErrAccountExists
	}
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAccountNotFound
	}

	if adjustment != nil {
		_, err = tx.Exec(
			`INSERT INTO debt_payments (id, account_id, amount, payment_date, description, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			adjustment.ID, accountID, adjustment.Amount, adjustment.PaymentDate, adjustment.Description, adjustment.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *debtRepository) Payments(accountID string, limit int) ([]*model.DebtPayment, error) {
	var payments []*model.DebtPayment
	query := `SELECT * FROM debt_payments WHERE account_id = $1 ORDER BY payment_date DESC, created_at DESC LIMIT $2`

	err := r.db.Select(&payments, query, accountID, limit)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// PaymentSum adds the signed ledger amounts exactly; summing decimal strings
// in SQL would round through floats.
func (r *debtRepository) PaymentSum(accountID string) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	query := `SELECT amount FROM debt_payments WHERE account_id = $1`

	err := r.db.Select(&amounts, query, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}
	return sum, nil
}
