package middleware

import (
	"context"
	"errors"
	"net/http"

	"emsconsole/internal/domain/session"
	"emsconsole/internal/platform/logger"
	"emsconsole/internal/transport/http/api"
)

// APIPrefix is where the console routes are mounted.
const APIPrefix = "/console/api"

type ctxKey string

const ctxKeySession ctxKey = "session"

// RequireSession resolves the session named by the console cookie. Without
// a live session the caller is sent to the login screen and the stale
// cookie is dropped.
func RequireSession(manager *session.Manager, codec *session.CookieCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := codec.Read(r)
			if err != nil {
				unauthorized(w, r)
				return
			}
			sess, err := manager.Resolve(r.Context(), id)
			if errors.Is(err, session.ErrNotFound) {
				codec.Clear(w)
				unauthorized(w, r)
				return
			}
			if err != nil {
				logger.FromContext(r.Context()).Error().Err(err).Msg("session lookup failed")
				api.Fail(w, http.StatusInternalServerError, "session_error", "session lookup failed", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	api.FailWithData(w, http.StatusUnauthorized, "unauthorized", "authentication required",
		map[string]string{"redirect": "/login"}, GetRequestID(r.Context()))
}

func WithSession(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, sess)
}

func GetSession(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(ctxKeySession).(session.Session)
	return sess, ok
}

// SessionOrFail returns the request's session, writing a 401 when the
// route was mounted without RequireSession.
func SessionOrFail(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	sess, ok := GetSession(r.Context())
	if !ok {
		unauthorized(w, r)
	}
	return sess, ok
}
