// Package http exposes the webhook and web API over a chi router.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rubjai/internal/core"
	"rubjai/internal/liff"
	"rubjai/internal/services"
)

// UserDirectory resolves local users from LINE identities.
type UserDirectory interface {
	FindUserByLineID(ctx context.Context, lineID string) (*core.User, error)
}

// TransactionRecorder records, summarizes and lists transactions.
// Implemented by *services.TransactionService.
type TransactionRecorder interface {
	Record(ctx context.Context, user *core.User, intent core.Intent) (string, error)
	SummarizeMonth(ctx context.Context, userID int64, now time.Time) (core.Summary, error)
	List(ctx context.Context, userID int64, w core.Window) ([]core.Transaction, error)
}

// Registrar upserts users by LINE identity.
type Registrar interface {
	Register(ctx context.Context, lineID, name string) (services.RegisterResult, error)
}

// Replier sends a chat reply for a single-use reply token.
type Replier interface {
	Reply(ctx context.Context, replyToken, text string) error
}

// Deps are the collaborators the server is handed; the caller owns
// their lifecycle (connection pools included).
type Deps struct {
	ChannelSecret string
	Users         UserDirectory
	Transactions  TransactionRecorder
	Registrar     Registrar
	Replier       Replier
	Tokens        *liff.Verifier
}

// Server is the HTTP front of the service.
type Server struct {
	http.Server

	channelSecret string
	users         UserDirectory
	txns          TransactionRecorder
	registrar     Registrar
	replier       Replier
	tokens        *liff.Verifier

	// now is swapped in tests to pin window derivation.
	now func() time.Time
}

// NewServer configures routes and middleware, returning a
// ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	s := &Server{
		Server: http.Server{
			Addr:           addr,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		channelSecret: deps.ChannelSecret,
		users:         deps.Users,
		txns:          deps.Transactions,
		registrar:     deps.Registrar,
		replier:       deps.Replier,
		tokens:        deps.Tokens,
		now:           time.Now,
	}

	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/line/webhook", s.handleLineWebhook)
		r.Get("/transactions", s.handleListTransactions)
		r.Post("/register", s.handleRegister)
		r.Get("/users/{lineID}", s.handleGetUser)
	})

	s.Handler = r
	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
