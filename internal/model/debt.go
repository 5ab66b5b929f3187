package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DebtAccount struct {
	ID             string          `db:"id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	InterestRate   decimal.Decimal `db:"interest_rate"`
	DueDate        *string         `db:"due_date"` // YYYY-MM-DD
	Description    *string         `db:"description"`
	IsPublic       bool            `db:"is_public"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// PercentPaid returns how much of the initial balance has been cleared,
// 0-100. Accounts opened at zero count as fully paid.
func (a *DebtAccount) PercentPaid() float64 {
	if a.InitialBalance.IsZero() {
		return 100
	}
	paid := a.InitialBalance.Sub(a.CurrentBalance)
	pct, _ := paid.Div(a.InitialBalance).Mul(decimal.NewFromInt(100)).Float64()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// DebtPayment records one ledger movement. Positive amounts are payments that
// reduce the balance; negative amounts are charges or manual adjustments that
// increase it.
type DebtPayment struct {
	ID          string          `db:"id"`
	AccountID   string          `db:"account_id"`
	Amount      decimal.Decimal `db:"amount"`
	PaymentDate string          `db:"payment_date"` // YYYY-MM-DD
	Description *string         `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
}

// DebtAccountUpdate is a typed partial update: nil fields are left untouched.
type DebtAccountUpdate struct {
	Name         *string
	Balance      *decimal.Decimal
	InterestRate *decimal.Decimal
	DueDate      *string
	Description  *string
	IsPublic     *bool
}

func (u *DebtAccountUpdate) IsEmpty() bool {
	return u.Name == nil && u.Balance == nil && u.InterestRate == nil &&
		u.DueDate == nil && u.Description == nil && u.IsPublic == nil
}
