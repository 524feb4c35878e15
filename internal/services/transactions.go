// Package services orchestrates the domain logic over the storage and
// messaging collaborators.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rubjai/internal/core"
)

// ErrNotRecordable is returned when Record receives an intent that is
// not a parsed transaction.
var ErrNotRecordable = errors.New("intent does not describe a transaction")

// TransactionStore is the slice of the storage layer the service needs.
type TransactionStore interface {
	InsertTransaction(ctx context.Context, userID int64, kind core.TxnKind, amount int64, note string) (*core.Transaction, error)
	SumAmount(ctx context.Context, userID int64, kind core.TxnKind, w core.Window) (int64, error)
	ListTransactions(ctx context.Context, userID int64, w core.Window) ([]core.Transaction, error)
}

// EventPublisher emits transaction events for downstream consumers.
// Implemented by *amqp.Client.
type EventPublisher interface {
	PublishTransactionRecorded(ctx context.Context, txn *core.Transaction) error
}

// TransactionService records transactions and computes summaries.
type TransactionService struct {
	store  TransactionStore
	events EventPublisher
}

// NewTransactionService wires the service. events may be nil, in which
// case recording skips event publishing.
func NewTransactionService(store TransactionStore, events EventPublisher) *TransactionService {
	return &TransactionService{store: store, events: events}
}

// Record persists one transaction for user and returns the chat
// confirmation text. Every call inserts a new row: the webhook carries
// no idempotency key, so a redelivered event records again.
func (s *TransactionService) Record(ctx context.Context, user *core.User, intent core.Intent) (string, error) {
	if intent.Type != core.IntentRecord {
		return "", ErrNotRecordable
	}
	if err := (core.Transaction{Kind: intent.Kind, Amount: intent.Amount}).Validate(); err != nil {
		return "", err
	}

	saved, err := s.store.InsertTransaction(ctx, user.ID, intent.Kind, intent.Amount, intent.Note)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	if s.events != nil {
		// Best effort: the write already succeeded, a lost event must
		// not fail the chat interaction.
		if err := s.events.PublishTransactionRecorded(ctx, saved); err != nil {
			slog.ErrorContext(ctx, "Failed to publish transaction event",
				"id", saved.ID, "user_id", saved.UserID, "error", err)
		}
	}

	return core.ConfirmationMessage(saved.Kind, saved.Amount, saved.Note), nil
}

// Summarize totals income and expense inside the window. Sums are
// always computed live from the store, never cached.
func (s *TransactionService) Summarize(ctx context.Context, userID int64, w core.Window) (core.Summary, error) {
	income, err := s.store.SumAmount(ctx, userID, core.Income, w)
	if err != nil {
		return core.Summary{}, fmt.Errorf("sum income: %w", err)
	}
	expense, err := s.store.SumAmount(ctx, userID, core.Expense, w)
	if err != nil {
		return core.Summary{}, fmt.Errorf("sum expense: %w", err)
	}
	return core.NewSummary(income, expense), nil
}

// SummarizeMonth totals the calendar month containing now, the window
// every chat summary uses.
func (s *TransactionService) SummarizeMonth(ctx context.Context, userID int64, now time.Time) (core.Summary, error) {
	return s.Summarize(ctx, userID, core.CurrentMonth(now))
}

// List returns the user's transactions inside the window, newest first.
func (s *TransactionService) List(ctx context.Context, userID int64, w core.Window) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, userID, w)
}
