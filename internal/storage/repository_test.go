package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"rubjai/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "rubjai.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestUserLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	found, err := repo.FindUserByLineID(ctx, "U-missing")
	if err != nil {
		t.Fatalf("find missing user: %v", err)
	}
	if found != nil {
		t.Fatalf("missing user must be nil, got %+v", found)
	}

	created, err := repo.CreateUser(ctx, "U-abc", "สมชาย")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.ID == 0 {
		t.Error("created user must get an id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("created user must be timestamped")
	}

	found, err = repo.FindUserByLineID(ctx, "U-abc")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if found == nil || found.ID != created.ID || found.Name != "สมชาย" {
		t.Fatalf("find user = %+v, want %+v", found, created)
	}
	if !found.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at round trip: got %v, want %v", found.CreatedAt, created.CreatedAt)
	}

	if _, err := repo.CreateUser(ctx, "U-abc", "someone else"); err == nil {
		t.Error("duplicate line_id must be rejected")
	}

	updated, err := repo.UpdateUserName(ctx, "U-abc", "สมหญิง")
	if err != nil {
		t.Fatalf("update user name: %v", err)
	}
	if updated.Name != "สมหญิง" || updated.ID != created.ID {
		t.Errorf("updated user = %+v", updated)
	}

	if _, err := repo.UpdateUserName(ctx, "U-missing", "x"); err == nil {
		t.Error("renaming an unknown user must fail")
	}
}

func TestInsertAndListTransactions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "U-txn", "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	other, err := repo.CreateUser(ctx, "U-other", "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	first, err := repo.InsertTransaction(ctx, user.ID, core.Income, 1500, "เงินเดือน")
	if err != nil {
		t.Fatalf("insert income: %v", err)
	}
	second, err := repo.InsertTransaction(ctx, user.ID, core.Expense, 300, "")
	if err != nil {
		t.Fatalf("insert expense: %v", err)
	}
	if _, err := repo.InsertTransaction(ctx, other.ID, core.Expense, 999, ""); err != nil {
		t.Fatalf("insert for other user: %v", err)
	}

	// Duplicate command: a second identical insert is a second row.
	dup, err := repo.InsertTransaction(ctx, user.ID, core.Expense, 300, "")
	if err != nil {
		t.Fatalf("insert duplicate: %v", err)
	}
	if dup.ID == second.ID {
		t.Error("identical transactions must still be distinct rows")
	}

	window := core.CurrentMonth(time.Now())
	txns, err := repo.ListTransactions(ctx, user.ID, window)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("listed %d transactions, want 3", len(txns))
	}
	// Newest first, even when timestamps collide inside one millisecond.
	if txns[0].ID != dup.ID || txns[2].ID != first.ID {
		t.Errorf("order = [%d %d %d], want newest first", txns[0].ID, txns[1].ID, txns[2].ID)
	}
	if txns[2].Kind != core.Income || txns[2].Amount != 1500 || txns[2].Note != "เงินเดือน" {
		t.Errorf("round-tripped transaction = %+v", txns[2])
	}

	past := core.MonthWindow(2020, time.January, time.UTC)
	txns, err = repo.ListTransactions(ctx, user.ID, past)
	if err != nil {
		t.Fatalf("list past window: %v", err)
	}
	if len(txns) != 0 {
		t.Errorf("past window must be empty, got %d rows", len(txns))
	}
}

func TestSumAmount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "U-sum", "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	for _, in := range []struct {
		kind   core.TxnKind
		amount int64
	}{
		{core.Income, 1000},
		{core.Income, 200},
		{core.Expense, 300},
	} {
		if _, err := repo.InsertTransaction(ctx, user.ID, in.kind, in.amount, ""); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	window := core.CurrentMonth(time.Now())

	income, err := repo.SumAmount(ctx, user.ID, core.Income, window)
	if err != nil {
		t.Fatalf("sum income: %v", err)
	}
	if income != 1200 {
		t.Errorf("income = %d, want 1200", income)
	}

	expense, err := repo.SumAmount(ctx, user.ID, core.Expense, window)
	if err != nil {
		t.Fatalf("sum expense: %v", err)
	}
	if expense != 300 {
		t.Errorf("expense = %d, want 300", expense)
	}

	empty, err := repo.SumAmount(ctx, user.ID, core.Income, core.MonthWindow(2020, time.January, time.UTC))
	if err != nil {
		t.Fatalf("sum empty window: %v", err)
	}
	if empty != 0 {
		t.Errorf("empty window sum = %d, want 0", empty)
	}
}

func TestInvalidRowsRejectedBySchema(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "U-checks", "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := repo.InsertTransaction(ctx, user.ID, "TRANSFER", 10, ""); err == nil {
		t.Error("unknown kind must violate the check constraint")
	}
	if _, err := repo.InsertTransaction(ctx, user.ID, core.Income, 0, ""); err == nil {
		t.Error("zero amount must violate the check constraint")
	}
	if _, err := repo.InsertTransaction(ctx, 99999, core.Income, 10, ""); err == nil {
		t.Error("unknown user must violate the foreign key")
	}
}
