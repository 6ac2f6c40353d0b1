package session

import (
	"errors"
	"strings"
	"time"

	"emsconsole/internal/gateway"
)

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrMissingToken = errors.New("login response carried no token")
)

// Session is the console's record of a logged-in user. The browser only
// ever sees its ID, inside a signed cookie.
type Session struct {
	ID           string
	Token        string
	User         gateway.User
	Role         string
	WelcomeShown bool
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// View is the part of a session that is safe to hand to the browser.
type View struct {
	User      gateway.User `json:"user"`
	Role      string       `json:"role"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func (s Session) View() View {
	return View{User: s.User, Role: s.Role, ExpiresAt: s.ExpiresAt}
}

// NormalizeRole maps the upstream role string onto the console roles.
func NormalizeRole(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), RoleAdmin) {
		return RoleAdmin
	}
	return RoleEmployee
}
