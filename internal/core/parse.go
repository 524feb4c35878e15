// Package core holds the domain model and the pure chat-command logic:
// parsing, time-window derivation and reply formatting. It performs no I/O.
package core

import (
	"regexp"
	"strconv"
	"strings"
)

// SummaryKeyword requests the current-month summary ("สรุปผล").
// It matches exactly after trimming, with no parameters.
const SummaryKeyword = "สรุปผล"

// commandRe matches "รับ <amount> [#note]" (income) and
// "จ่าย <amount> [#note]" (expense). The amount is a digit run that may
// contain thousands-separator commas; the note is everything after '#'.
var commandRe = regexp.MustCompile(`^(รับ|จ่าย)\s+([\d,]+)(?:\s*#(.+))?$`)

// IntentType classifies one line of chat text.
type IntentType int

const (
	IntentUnrecognized IntentType = iota
	IntentRecord
	IntentSummary
)

// Intent is the transient result of interpreting one line of chat text.
// Kind, Amount and Note are meaningful only when Type is IntentRecord.
type Intent struct {
	Type   IntentType
	Kind   TxnKind
	Amount int64
	Note   string
}

// ParseCommand extracts a transaction intent from free-form chat text.
// Separator commas are stripped before conversion and the amount is
// truncated toward zero; anything that is not the summary keyword and
// does not match the grammar with an amount > 0 is unrecognized.
func ParseCommand(text string) Intent {
	trimmed := strings.TrimSpace(text)
	if trimmed == SummaryKeyword {
		return Intent{Type: IntentSummary}
	}

	m := commandRe.FindStringSubmatch(trimmed)
	if m == nil {
		return Intent{}
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err != nil || amount <= 0 || amount >= 1<<63 {
		return Intent{}
	}

	kind := Income
	if m[1] == "จ่าย" {
		kind = Expense
	}

	return Intent{
		Type:   IntentRecord,
		Kind:   kind,
		Amount: int64(amount),
		Note:   strings.TrimSpace(m[3]),
	}
}
