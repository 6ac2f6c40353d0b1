package session

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"emsconsole/internal/gateway"
	"emsconsole/internal/platform/crypto"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestPostgresStoreCreateSealsToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	sealer, err := crypto.New(testKey)
	if err != nil {
		t.Fatalf("sealer: %v", err)
	}
	now := time.Now()
	sess := Session{ID: "s-1", Token: "tok", Role: RoleAdmin, User: gateway.User{FirstName: "Asha"}, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO console_sessions")).
		WithArgs("s-1", pgxmock.AnyArg(), pgxmock.AnyArg(), RoleAdmin, false, now, sess.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPostgresStore(mock, sealer)
	if err := store.Create(context.Background(), sess); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreGetOpensToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	sealer, _ := crypto.New(testKey)
	sealed, err := sealer.SealString("upstream-token")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	created := time.Now().Add(-time.Minute)
	expires := time.Now().Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM console_sessions")).
		WithArgs("s-1", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"token_sealed", "user_json", "role", "welcome_shown", "created_at", "expires_at"}).
			AddRow(sealed, []byte(`{"firstName":"Ravi","role":"EMPLOYEE"}`), RoleEmployee, true, created, expires))

	store := NewPostgresStore(mock, sealer)
	sess, err := store.Get(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.Token != "upstream-token" || sess.User.FirstName != "Ravi" || !sess.WelcomeShown {
		t.Fatalf("unexpected session %+v", sess)
	}
}

func TestPostgresStoreGetMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM console_sessions")).
		WithArgs("nope", pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	store := NewPostgresStore(mock, nil)
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresStoreMarkWelcomeShown(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE console_sessions SET welcome_shown = true")).
		WithArgs("s-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE console_sessions SET welcome_shown = true")).
		WithArgs("s-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	store := NewPostgresStore(mock, nil)
	first, err := store.MarkWelcomeShown(context.Background(), "s-1")
	if err != nil || !first {
		t.Fatalf("expected first mark to win, got %v %v", first, err)
	}
	second, err := store.MarkWelcomeShown(context.Background(), "s-1")
	if err != nil || second {
		t.Fatalf("expected second mark to lose, got %v %v", second, err)
	}
}

func TestPostgresStoreDeleteExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM console_sessions WHERE expires_at <= $1")).
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	removed, err := NewPostgresStore(mock, nil).DeleteExpired(context.Background(), now)
	if err != nil || removed != 3 {
		t.Fatalf("expected 3 removed, got %d %v", removed, err)
	}
}
