package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sneethan/gntle-habits/internal/clock"
	"github.com/Sneethan/gntle-habits/internal/model"
	"github.com/Sneethan/gntle-habits/internal/repository"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDebtLedgerReconciles(t *testing.T) {
	database := newTestDB(t)
	svc := NewDebtService(repository.NewDebtRepository(database), clock.NewFixed(time.UTC))
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := svc.AddAccount("user1", "Car Loan", dec("1000"), nil, nil, nil, true)
	require.NoError(t, err)

	account, err := svc.RecordPayment("user1", "Car Loan", dec("100"), nil, nil, now)
	require.NoError(t, err)
	assert.True(t, account.CurrentBalance.Equal(dec("900")), "got %s", account.CurrentBalance)

	account, err = svc.RecordPayment("user1", "Car Loan", dec("50"), nil, nil, now)
	require.NoError(t, err)
	assert.True(t, account.CurrentBalance.Equal(dec("850")), "got %s", account.CurrentBalance)

	account, err = svc.RecordCharge("user1", "Car Loan", dec("20"), nil, now)
	require.NoError(t, err)
	assert.True(t, account.CurrentBalance.Equal(dec("870")), "got %s", account.CurrentBalance)

	// initial - Σamounts = 1000 - (100 + 50 - 20) = 870 = current
	drift, err := svc.LedgerDrift("user1", "Car Loan")
	require.NoError(t, err)
	assert.True(t, drift.IsZero(), "ledger drift %s", drift)
}

func TestDebtOverpaymentClampsAtZero(t *testing.T) {
	database := newTestDB(t)
	svc := NewDebtService(repository.NewDebtRepository(database), clock.NewFixed(time.UTC))
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := svc.AddAccount("user1", "Card", dec("30"), nil, nil, nil, true)
	require.NoError(t, err)

	account, err := svc.RecordPayment("user1", "Card", dec("50"), nil, nil, now)
	require.NoError(t, err)
	assert.True(t, account.CurrentBalance.IsZero())

	// The full reported amount stays in the ledger even though the balance
	// clamped.
	_, payments, err := svc.History("user1", "Card", 10)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.True(t, payments[0].Amount.Equal(dec("50")))
}

func TestDebtBalanceEditRecordsAdjustment(t *testing.T) {
	database := newTestDB(t)
	svc := NewDebtService(repository.NewDebtRepository(database), clock.NewFixed(time.UTC))
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := svc.AddAccount("user1", "Card", dec("500"), nil, nil, nil, true)
	require.NoError(t, err)

	newBalance := dec("400")
	err = svc.EditAccount("user1", "Card", model.DebtAccountUpdate{Balance: &newBalance}, now)
	require.NoError(t, err)

	account, payments, err := svc.History("user1", "Card", 10)
	require.NoError(t, err)
	assert.True(t, account.CurrentBalance.Equal(dec("400")))
	require.Len(t, payments, 1)
	// The synthetic adjustment is the inverse of the balance change, so the
	// ledger still reconciles.
	assert.True(t, payments[0].Amount.Equal(dec("100")))

	drift, err := svc.LedgerDrift("user1", "Card")
	require.NoError(t, err)
	assert.True(t, drift.IsZero(), "ledger drift %s", drift)
}

func TestDebtAddAccountValidation(t *testing.T) {
	database := newTestDB(t)
	svc := NewDebtService(repository.NewDebtRepository(database), clock.NewFixed(time.UTC))

	_, err := svc.AddAccount("user1", "", dec("10"), nil, nil, nil, true)
	assert.True(t, IsInputError(err))

	_, err = svc.AddAccount("user1", "Card", dec("-10"), nil, nil, nil, true)
	assert.True(t, IsInputError(err))

	_, err = svc.AddAccount("user1", "Card", dec("10"), nil, nil, nil, true)
	require.NoError(t, err)
	_, err = svc.AddAccount("user1", "Card", dec("10"), nil, nil, nil, true)
	assert.ErrorIs(t, err, repository.ErrAccountExists)
}

func TestDebtEditRequiresAField(t *testing.T) {
	database := newTestDB(t)
	svc := NewDebtService(repository.NewDebtRepository(database), clock.NewFixed(time.UTC))

	_, err := svc.AddAccount("user1", "Card", dec("10"), nil, nil, nil, true)
	require.NoError(t, err)

	err = svc.EditAccount("user1", "Card", model.DebtAccountUpdate{}, time.Now())
	assert.True(t, IsInputError(err))
}

func TestDebtPercentPaid(t *testing.T) {
	account := &model.DebtAccount{
		InitialBalance: dec("200"),
		CurrentBalance: dec("50"),
	}
	assert.InDelta(t, 75.0, account.PercentPaid(), 0.01)

	zero := &model.DebtAccount{InitialBalance: decimal.Zero, CurrentBalance: decimal.Zero}
	assert.Equal(t, 100.0, zero.PercentPaid())
}
