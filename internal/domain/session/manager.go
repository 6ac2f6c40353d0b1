package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"emsconsole/internal/gateway"
)

// Authenticator performs the upstream login.
type Authenticator interface {
	Login(ctx context.Context, in gateway.LoginRequest) (gateway.LoginResult, error)
}

type Manager struct {
	Store Store
	auth  Authenticator
	ttl   time.Duration
	now   func() time.Time
}

func NewManager(store Store, auth Authenticator, ttl time.Duration) *Manager {
	return &Manager{Store: store, auth: auth, ttl: ttl, now: time.Now}
}

// Login authenticates upstream and records token, user and role in a new
// session. Nothing is persisted when the upstream call fails.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	res, err := m.auth.Login(ctx, gateway.LoginRequest{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		return Session{}, err
	}
	if strings.TrimSpace(res.Token) == "" {
		return Session{}, ErrMissingToken
	}

	now := m.now()
	sess := Session{
		ID:        uuid.NewString(),
		Token:     res.Token,
		User:      res.User,
		Role:      NormalizeRole(res.User.Role),
		CreatedAt: now,
		ExpiresAt: m.expiry(res.Token, now),
	}
	if err := m.Store.Create(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// expiry caps the session at the upstream token's exp claim, read
// unverified, when the token carries one.
func (m *Manager) expiry(token string, now time.Time) time.Time {
	expires := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return expires
	}
	if exp := claims.ExpiresAt.Time; exp.After(now) && exp.Before(expires) {
		return exp
	}
	return expires
}

// Resolve returns the live session for id.
func (m *Manager) Resolve(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, ErrNotFound
	}
	sess, err := m.Store.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Expired(m.now()) {
		_ = m.Store.Delete(ctx, id)
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// Logout drops the session and everything it held. Unknown ids are not an
// error.
func (m *Manager) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.Store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// TakeWelcome returns the welcome notice the first time it is called for a
// session and false on every later call.
func (m *Manager) TakeWelcome(ctx context.Context, sess Session) (string, bool, error) {
	if sess.WelcomeShown {
		return "", false, nil
	}
	first, err := m.Store.MarkWelcomeShown(ctx, sess.ID)
	if err != nil || !first {
		return "", false, err
	}
	return WelcomeMessage(sess), true, nil
}

func WelcomeMessage(sess Session) string {
	if sess.IsAdmin() {
		return "Welcome Admin"
	}
	return "Hello " + sess.User.FirstName
}

// Sweep removes expired sessions.
func (m *Manager) Sweep(ctx context.Context) (int64, error) {
	return m.Store.DeleteExpired(ctx, m.now())
}
