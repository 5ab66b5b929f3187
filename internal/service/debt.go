package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sneethan/gntle-habits/internal/clock"
	"github.com/Sneethan/gntle-habits/internal/model"
	"github.com/Sneethan/gntle-habits/internal/repository"
)

type DebtService struct {
	repo repository.DebtRepository
	clk  *clock.Clock
}

func NewDebtService(repo repository.DebtRepository, clk *clock.Clock) *DebtService {
	return &DebtService{repo: repo, clk: clk}
}

func (s *DebtService) AddAccount(userID, name string, balance decimal.Decimal, interestRate *decimal.Decimal, dueDate, description *string, isPublic bool) (*model.DebtAccount, error) {
	if name == "" {
		return nil, inputErrorf("Account name cannot be empty.")
	}
	if balance.IsNegative() {
		return nil, inputErrorf("Balance must be a positive number.")
	}
	rate := decimal.Zero
	if interestRate != nil {
		if interestRate.IsNegative() {
			return nil, inputErrorf("Interest rate cannot be negative.")
		}
		rate = *interestRate
	}
	if dueDate != nil {
		_, err := time.Parse(dateLayout, *dueDate)
		if err != nil {
			return nil, inputErrorf("Due date must be in YYYY-MM-DD format.")
		}
	}

	now := s.clk.ToUTC(time.Now()).Truncate(time.Second)
	account := &model.DebtAccount{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           name,
		CurrentBalance: balance,
		InitialBalance: balance,
		InterestRate:   rate,
		DueDate:        dueDate,
		Description:    description,
		IsPublic:       isPublic,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.repo.CreateAccount(account)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// RecordPayment applies a positive payment, reducing the balance. Balances
// never go below zero; an overpayment is still recorded in full so the ledger
// keeps what the user reported.
func (s *DebtService) RecordPayment(userID, accountName string, amount decimal.Decimal, date, notes *string, now time.Time) (*model.DebtAccount, error) {
	if !amount.IsPositive() {
		return nil, inputErrorf("Payment amount must be positive.")
	}
	paymentDate, err := s.resolveDate(date, now)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.AccountByName(userID, accountName)
	if err != nil {
		return nil, err
	}

	newBalance := account.CurrentBalance.Sub(amount)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}

	payment := &model.DebtPayment{
		ID:          uuid.New().String(),
		AccountID:   account.ID,
		Amount:      amount,
		PaymentDate: paymentDate,
		Description: notes,
		CreatedAt:   s.clk.ToUTC(now).Truncate(time.Second),
	}

	err = s.repo.ApplyLedgerEntry(account.ID, payment, newBalance, payment.CreatedAt)
	if err != nil {
		return nil, err
	}

	account.CurrentBalance = newBalance
	return account, nil
}

// RecordCharge applies a charge or fee, increasing the balance. Charges are
// stored as negative ledger amounts.
func (s *DebtService) RecordCharge(userID, accountName string, amount decimal.Decimal, description *string, now time.Time) (*model.DebtAccount, error) {
	if !amount.IsPositive() {
		return nil, inputErrorf("The charge amount must be greater than zero.")
	}

	account, err := s.repo.AccountByName(userID, accountName)
	if err != nil {
		return nil, err
	}

	newBalance := account.CurrentBalance.Add(amount)
	desc := description
	if desc == nil {
		d := fmt.Sprintf("Charge/Fee: $%s", amount.StringFixed(2))
		desc = &d
	}

	payment := &model.DebtPayment{
		ID:          uuid.New().String(),
		AccountID:   account.ID,
		Amount:      amount.Neg(),
		PaymentDate: s.clk.ToLocal(now).Format(dateLayout),
		Description: desc,
		CreatedAt:   s.clk.ToUTC(now).Truncate(time.Second),
	}

	err = s.repo.ApplyLedgerEntry(account.ID, payment, newBalance, payment.CreatedAt)
	if err != nil {
		return nil, err
	}

	account.CurrentBalance = newBalance
	return account, nil
}

// EditAccount applies a typed partial update. A balance edit records a
// synthetic adjustment payment so the ledger still reconciles.
func (s *DebtService) EditAccount(userID, accountName string, update model.DebtAccountUpdate, now time.Time) error {
	if update.IsEmpty() {
		return inputErrorf("You need to provide at least one field to update.")
	}
	if update.Balance != nil && update.Balance.IsNegative() {
		return inputErrorf("Balance must be a positive number.")
	}
	if update.InterestRate != nil && update.InterestRate.IsNegative() {
		return inputErrorf("Interest rate cannot be negative.")
	}
	if update.DueDate != nil {
		_, err := time.Parse(dateLayout, *update.DueDate)
		if err != nil {
			return inputErrorf("Due date must be in YYYY-MM-DD format.")
		}
	}

	account, err := s.repo.AccountByName(userID, accountName)
	if err != nil {
		return err
	}

	var adjustment *model.DebtPayment
	if update.Balance != nil {
		diff := update.Balance.Sub(account.CurrentBalance)
		if !diff.IsZero() {
			sign := ""
			if diff.IsPositive() {
				sign = "+"
			}
			note := fmt.Sprintf("Balance manually adjusted by %s$%s", sign, diff.Abs().StringFixed(2))
			adjustment = &model.DebtPayment{
				ID:          uuid.New().String(),
				AccountID:   account.ID,
				Amount:      diff.Neg(), // adjustments are the inverse of payments
				PaymentDate: s.clk.ToLocal(now).Format(dateLayout),
				Description: &note,
				CreatedAt:   s.clk.ToUTC(now).Truncate(time.Second),
			}
		}
	}

	return s.repo.UpdateAccount(account.ID, update, adjustment, s.clk.ToUTC(now).Truncate(time.Second))
}

func (s *DebtService) DeleteAccount(userID, accountName string) error {
	account, err := s.repo.AccountByName(userID, accountName)
	if err != nil {
		return err
	}
	return s.repo.DeleteAccount(account.ID)
}

func (s *DebtService) Accounts(userID string, includePrivate bool) ([]*model.DebtAccount, error) {
	return s.repo.AccountsForUser(userID, includePrivate)
}

func (s *DebtService) PublicAccounts() ([]*model.DebtAccount, error) {
	return s.repo.PublicAccounts()
}

func (s *DebtService) AccountNames(userID, prefix string, limit int) ([]string, error) {
	return s.repo.SearchAccountNames(userID, prefix, limit)
}

func (s *DebtService) History(userID, accountName string, limit int) (*model.DebtAccount, []*model.DebtPayment, error) {
	account, err := s.repo.AccountByName(userID, accountName)
	if err != nil {
		return nil, nil, err
	}

	payments, err := s.repo.Payments(account.ID, limit)
	if err != nil {
		return nil, nil, err
	}

	return account, payments, nil
}

// LedgerDrift returns initial - Σpayments - current for an account; zero means
// the ledger reconciles.
func (s *DebtService) LedgerDrift(userID, accountName string) (decimal.Decimal, error) {
	account, err := s.repo.AccountByName(userID, accountName)
	if err != nil {
		return decimal.Zero, err
	}

	sum, err := s.repo.PaymentSum(account.ID)
	if err != nil {
		return decimal.Zero, err
	}

	return account.InitialBalance.Sub(sum).Sub(account.CurrentBalance), nil
}

func (s *DebtService) resolveDate(date *string, now time.Time) (string, error) {
	if date == nil || *date == "" {
		return s.clk.ToLocal(now).Format(dateLayout), nil
	}
	_, err := time.Parse(dateLayout, *date)
	if err != nil {
		return "", inputErrorf("Date must be in YYYY-MM-DD format.")
	}
	return *date, nil
}
