package session

import (
	"context"
	"time"
)

type Store interface {
	Create(ctx context.Context, s Session) error
	// Get returns ErrNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (Session, error)
	// MarkWelcomeShown sets the welcome flag and reports whether this call
	// was the one that set it.
	MarkWelcomeShown(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
