// Package storage is the durable SQLite store for users and
// transactions. Timestamps are persisted as epoch milliseconds so
// window bounds compare numerically.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"rubjai/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database at
// dbPath and applies pending migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// FindUserByLineID returns the user registered under the LINE user ID,
// or nil when no such user exists.
func (r *SQLiteRepository) FindUserByLineID(ctx context.Context, lineID string) (*core.User, error) {
	var (
		u         core.User
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, line_id, name, created_at FROM users WHERE line_id = ?`,
		lineID,
	).Scan(&u.ID, &u.LineID, &u.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by line id: %w", err)
	}
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &u, nil
}

// CreateUser registers a new user for the LINE identity. The unique
// index on line_id rejects duplicate registrations.
func (r *SQLiteRepository) CreateUser(ctx context.Context, lineID, name string) (*core.User, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (line_id, name, created_at) VALUES (?, ?, ?)`,
		lineID, name, now.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("user insert id: %w", err)
	}

	slog.InfoContext(ctx, "User created", "id", id, "line_id", lineID)

	return &core.User{
		ID:        id,
		LineID:    lineID,
		Name:      name,
		CreatedAt: now,
	}, nil
}

// UpdateUserName stores a changed display name for an existing user.
func (r *SQLiteRepository) UpdateUserName(ctx context.Context, lineID, name string) (*core.User, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ? WHERE line_id = ?`,
		name, lineID,
	)
	if err != nil {
		return nil, fmt.Errorf("update user name: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("update user name: no user with line id %q", lineID)
	}
	return r.FindUserByLineID(ctx, lineID)
}

// InsertTransaction appends one transaction row stamped with the
// current time. There is no update or merge path; every call creates a
// new row.
func (r *SQLiteRepository) InsertTransaction(ctx context.Context, userID int64, kind core.TxnKind, amount int64, note string) (*core.Transaction, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, kind, amount, note, created_at) VALUES (?, ?, ?, ?, ?)`,
		userID, string(kind), amount, note, now.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("transaction insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"user_id", userID,
		"kind", string(kind),
		"amount", amount)

	return &core.Transaction{
		ID:        id,
		UserID:    userID,
		Kind:      kind,
		Amount:    amount,
		Note:      note,
		CreatedAt: now,
	}, nil
}

// ListTransactions returns the user's transactions created inside the
// window, newest first.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID int64, w core.Window) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, kind, amount, note, created_at
		 FROM transactions
		 WHERE user_id = ? AND created_at >= ? AND created_at < ?
		 ORDER BY created_at DESC, id DESC`,
		userID, w.Start.UnixMilli(), w.End.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]core.Transaction, 0)
	for rows.Next() {
		var (
			t         core.Transaction
			kind      string
			createdAt int64
		)
		if err := rows.Scan(&t.ID, &t.UserID, &kind, &t.Amount, &t.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Kind = core.TxnKind(kind)
		t.CreatedAt = time.UnixMilli(createdAt).UTC()
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txns, nil
}

// SumAmount totals the user's transactions of one kind inside the
// window. No matching rows sum to zero.
func (r *SQLiteRepository) SumAmount(ctx context.Context, userID int64, kind core.TxnKind, w core.Window) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM transactions
		 WHERE user_id = ? AND kind = ? AND created_at >= ? AND created_at < ?`,
		userID, string(kind), w.Start.UnixMilli(), w.End.UnixMilli(),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum %s amounts: %w", kind, err)
	}
	return total, nil
}
