package amqp

import (
	"encoding/json"
	"time"

	"rubjai/internal/core"
)

// TransactionRecordedMessage notifies downstream consumers that one
// transaction was written. It carries the full row; consumers do not
// need database access to act on it.
type TransactionRecordedMessage struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"userId"`
	Kind      core.TxnKind `json:"kind"`
	Amount    int64        `json:"amount"`
	Note      string       `json:"note,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewTransactionRecordedMessage builds the event for a saved transaction.
func NewTransactionRecordedMessage(txn *core.Transaction) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		ID:        txn.ID,
		UserID:    txn.UserID,
		Kind:      txn.Kind,
		Amount:    txn.Amount,
		Note:      txn.Note,
		CreatedAt: txn.CreatedAt,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionRecordedMessageFromJSON parses a message from JSON bytes.
func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
