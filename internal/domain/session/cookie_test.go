package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCookieRoundTrip(t *testing.T) {
	codec := NewCookieCodec("0123456789abcdef0123456789abcdef", true)
	sess := Session{ID: "sess-1", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}

	rec := httptest.NewRecorder()
	if err := codec.Write(rec, sess); err != nil {
		t.Fatalf("write cookie: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].HttpOnly || !cookies[0].Secure {
		t.Fatalf("unexpected cookies %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	id, err := codec.Read(req)
	if err != nil || id != "sess-1" {
		t.Fatalf("expected sess-1, got %q %v", id, err)
	}
}

func TestCookieRejectsForeignSignature(t *testing.T) {
	sess := Session{ID: "sess-1", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	value, err := NewCookieCodec("secret-a", false).Encode(sess)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := NewCookieCodec("secret-b", false).Decode(value); err != ErrInvalidCookie {
		t.Fatalf("expected ErrInvalidCookie, got %v", err)
	}
}

func TestCookieRejectsExpired(t *testing.T) {
	codec := NewCookieCodec("secret", false)
	value, _ := codec.Encode(Session{ID: "s", CreatedAt: time.Now().Add(-2 * time.Hour), ExpiresAt: time.Now().Add(-time.Hour)})
	if _, err := codec.Decode(value); err != ErrInvalidCookie {
		t.Fatalf("expected expired cookie to be rejected, got %v", err)
	}
}

func TestReadWithoutCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := NewCookieCodec("", false).Read(req); err != ErrInvalidCookie {
		t.Fatalf("expected ErrInvalidCookie, got %v", err)
	}
}
