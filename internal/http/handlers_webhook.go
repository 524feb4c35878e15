package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"rubjai/internal/core"
	"rubjai/internal/line"
)

// maxWebhookBody bounds how much of a delivery is read before
// signature verification.
const maxWebhookBody = 1 << 20

// handleLineWebhook is the inbound chat path: verify the signature
// over the exact raw bytes, then fan the batched events out. Once
// signature and JSON parsing pass the endpoint always answers 200
// {ok:true}; per-event failures are logged and swallowed so the
// platform does not redeliver the whole batch.
func (s *Server) handleLineWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid body")
		return
	}

	if !line.VerifySignature(s.channelSecret, body, r.Header.Get(line.SignatureHeader)) {
		slog.WarnContext(r.Context(), "Webhook signature rejected", "client_ip", clientIP(r))
		writeMessage(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var payload line.WebhookBody
	if err := json.Unmarshal(body, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Events in one delivery are independent (distinct users,
	// independent inserts), so they run concurrently and are awaited
	// jointly. Completion order does not matter.
	g, ctx := errgroup.WithContext(r.Context())
	for _, event := range payload.Events {
		g.Go(func() error {
			s.handleEvent(ctx, event)
			return nil
		})
	}
	_ = g.Wait()

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleEvent processes one chat event: resolve the user, parse the
// command, record or summarize, reply. Failures end the event with a
// log line, nothing more.
func (s *Server) handleEvent(ctx context.Context, event line.Event) {
	if event.Type != "message" || event.Message.Type != "text" {
		return
	}
	lineID := event.Source.UserID
	text := event.Message.Text
	if lineID == "" || text == "" {
		return
	}

	user, err := s.users.FindUserByLineID(ctx, lineID)
	if err != nil {
		slog.ErrorContext(ctx, "User lookup failed", "line_id", lineID, "error", err)
		return
	}
	if user == nil {
		s.reply(ctx, event.ReplyToken, core.ReplyUnknownUser)
		return
	}

	intent := core.ParseCommand(text)
	switch intent.Type {
	case core.IntentSummary:
		now := s.now()
		summary, err := s.txns.SummarizeMonth(ctx, user.ID, now)
		if err != nil {
			slog.ErrorContext(ctx, "Summary failed", "user_id", user.ID, "error", err)
			return
		}
		s.reply(ctx, event.ReplyToken, core.SummaryMessage(now, summary))

	case core.IntentRecord:
		confirmation, err := s.txns.Record(ctx, user, intent)
		if err != nil {
			slog.ErrorContext(ctx, "Record failed", "user_id", user.ID, "error", err)
			return
		}
		s.reply(ctx, event.ReplyToken, confirmation)

	default:
		s.reply(ctx, event.ReplyToken, core.ReplyInvalidFormat)
	}
}

// reply sends a chat reply when the event carries a reply token. The
// token is single-use, so failures are logged, never retried and never
// surfaced to the chat user.
func (s *Server) reply(ctx context.Context, replyToken, text string) {
	if replyToken == "" {
		return
	}
	if err := s.replier.Reply(ctx, replyToken, text); err != nil {
		slog.ErrorContext(ctx, "Reply failed", "error", err)
	}
}
