package amqp

import (
	"testing"
	"time"

	"rubjai/internal/core"
)

func TestNewTransactionRecordedMessage(t *testing.T) {
	txn := &core.Transaction{
		ID:        12,
		UserID:    7,
		Kind:      core.Expense,
		Amount:    300,
		Note:      "กาแฟ",
		CreatedAt: time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC),
	}

	msg := NewTransactionRecordedMessage(txn)

	if msg.ID != 12 || msg.UserID != 7 || msg.Kind != core.Expense || msg.Amount != 300 {
		t.Errorf("message = %+v", msg)
	}
	if !msg.CreatedAt.Equal(txn.CreatedAt) {
		t.Errorf("createdAt = %v, want the row timestamp", msg.CreatedAt)
	}
	if msg.Timestamp.IsZero() {
		t.Error("timestamp must record when the event was built")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	parsed, err := TransactionRecordedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if parsed.ID != msg.ID || parsed.Note != "กาแฟ" {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestTransactionRecordedMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := TransactionRecordedMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected a parse error")
	}
}
