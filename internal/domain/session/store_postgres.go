package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"emsconsole/internal/platform/crypto"
)

// DB is the subset of pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps sessions in console_sessions. Upstream tokens are
// sealed before they are written.
type PostgresStore struct {
	DB     DB
	Sealer *crypto.Sealer
	now    func() time.Time
}

func NewPostgresStore(db DB, sealer *crypto.Sealer) *PostgresStore {
	return &PostgresStore{DB: db, Sealer: sealer, now: time.Now}
}

func (s *PostgresStore) Create(ctx context.Context, sess Session) error {
	sealed, err := s.Sealer.SealString(sess.Token)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	user, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO console_sessions (id, token_sealed, user_json, role, welcome_shown, created_at, expires_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, sess.ID, sealed, user, sess.Role, sess.WelcomeShown, sess.CreatedAt, sess.ExpiresAt)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Session, error) {
	out := Session{ID: id}
	var sealed, user []byte
	err := s.DB.QueryRow(ctx, `
    SELECT token_sealed, user_json, role, welcome_shown, created_at, expires_at
    FROM console_sessions
    WHERE id = $1 AND expires_at > $2
  `, id, s.now()).Scan(&sealed, &user, &out.Role, &out.WelcomeShown, &out.CreatedAt, &out.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	if out.Token, err = s.Sealer.OpenString(sealed); err != nil {
		return Session{}, fmt.Errorf("open token: %w", err)
	}
	if err := json.Unmarshal(user, &out.User); err != nil {
		return Session{}, fmt.Errorf("decode user: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) MarkWelcomeShown(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE console_sessions SET welcome_shown = true
    WHERE id = $1 AND welcome_shown = false
  `, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM console_sessions WHERE id = $1", id)
	return err
}

func (s *PostgresStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM console_sessions WHERE expires_at <= $1", now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
