package core

import (
	"errors"
	"time"
)

// TxnKind distinguishes the two transaction variants.
type TxnKind string

const (
	Income  TxnKind = "INCOME"
	Expense TxnKind = "EXPENSE"
)

type (
	// User is one registered end-user, keyed by the stable LINE user ID.
	// Users are created through the LIFF registration path; a chat
	// message from an unknown LINE ID is rejected, never auto-registered.
	User struct {
		ID        int64     `json:"id"`
		LineID    string    `json:"lineId"`
		Name      string    `json:"name,omitempty"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Transaction is one recorded income or expense event. CreatedAt is
	// also the effective date; there is no user-supplied date.
	Transaction struct {
		ID        int64     `json:"id"`
		UserID    int64     `json:"userId"`
		Kind      TxnKind   `json:"type"`
		Amount    int64     `json:"amount"`
		Note      string    `json:"note,omitempty"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Summary holds aggregate totals over one window. Net is income
	// minus expense and may be negative.
	Summary struct {
		Income  int64 `json:"incomeTotal"`
		Expense int64 `json:"expenseTotal"`
		Net     int64 `json:"netTotal"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrMissingLineID = errors.New("LINE ID is required")
)

func (k TxnKind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	}
	return ErrInvalidKind
}

// Validate checks the persistence invariants: a known kind and a
// strictly positive integral amount.
func (t Transaction) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// NewSummary pairs the two sums with their derived net figure.
func NewSummary(income, expense int64) Summary {
	return Summary{Income: income, Expense: expense, Net: income - expense}
}
