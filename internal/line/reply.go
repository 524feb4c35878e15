package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultReplyEndpoint is the LINE Messaging API reply endpoint.
const DefaultReplyEndpoint = "https://api.line.me/v2/bot/message/reply"

// ReplyClient sends text replies for single-use reply tokens. A client
// constructed without an access token is a silent no-op, so the rest of
// the pipeline works in environments without chat credentials.
type ReplyClient struct {
	accessToken string
	endpoint    string
	httpClient  *http.Client
}

// ReplyOption customizes a ReplyClient.
type ReplyOption func(*ReplyClient)

// WithEndpoint overrides the reply endpoint URL.
func WithEndpoint(url string) ReplyOption {
	return func(c *ReplyClient) { c.endpoint = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ReplyOption {
	return func(c *ReplyClient) { c.httpClient = hc }
}

func NewReplyClient(accessToken string, opts ...ReplyOption) *ReplyClient {
	c := &ReplyClient{
		accessToken: accessToken,
		endpoint:    DefaultReplyEndpoint,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Reply posts one text message for the given reply token. One attempt,
// no retries: the token is consumed either way, so failures are only
// good for server-side logging.
func (c *ReplyClient) Reply(ctx context.Context, replyToken, text string) error {
	if c.accessToken == "" {
		slog.WarnContext(ctx, "LINE access token not configured, skipping reply")
		return nil
	}

	body, err := json.Marshal(replyRequest{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post reply: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("reply API status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	slog.DebugContext(ctx, "Reply sent", "status", resp.StatusCode)
	return nil
}
