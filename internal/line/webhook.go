package line

// WebhookBody is the JSON envelope of one webhook delivery. A delivery
// may batch several independent events.
type WebhookBody struct {
	Events []Event `json:"events"`
}

// Event is one user-originated notification. Only events with
// Type "message" carrying a text Message are acted on; everything else
// is ignored silently.
type Event struct {
	Type       string  `json:"type"`
	ReplyToken string  `json:"replyToken,omitempty"`
	Source     Source  `json:"source"`
	Message    Message `json:"message"`
}

// Source identifies the sender by LINE user ID.
type Source struct {
	UserID string `json:"userId"`
}

// Message is the message part of an event.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
