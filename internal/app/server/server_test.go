package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/platform/config"
	"emsconsole/internal/platform/metrics"
	"emsconsole/internal/transport/http/api"
)

func fakeUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in gateway.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.Header().Set("Content-Type", "application/json")
		if in.Password != "secret@1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		role := "EMPLOYEE"
		if strings.HasPrefix(in.Email, "admin") {
			role = "ADMIN"
		}
		_ = json.NewEncoder(w).Encode(gateway.LoginResult{
			Token: "upstream-" + role,
			User:  gateway.User{FirstName: "Asha", Email: in.Email, Role: role},
		})
	})
	mux.HandleFunc("/cards/dashboard-cards", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer upstream-ADMIN" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"totalEmployees":12,"activeEmployees":10,"departments":3,"thisMonthPayroll":5000}}`))
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"employees":[{"id":1,"firstName":"Ravi"},{"id":2,"firstName":"Meera"}],"totalPages":6}}`))
	})
	mux.HandleFunc("/enums", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"departments":["HR","IT"],"positions":["Manager"],"statuses":["ACTIVE"]}`))
	})
	mux.HandleFunc("/profile/me", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":5,"firstName":"Asha"}}`))
	})
	mux.HandleFunc("/payroll/7/download", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 slip"))
	})
	mux.HandleFunc("/payroll/8/download", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"You can only download your own slips"}`))
	})
	mux.HandleFunc("/payroll/9/download", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/auth/change-password", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"message":"Password updated"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type console struct {
	t       *testing.T
	handler http.Handler
}

func newConsole(t *testing.T) *console {
	t.Helper()
	upstream := fakeUpstream(t)
	cfg := config.Config{
		Environment:        "test",
		APIBaseURL:         upstream.URL,
		SessionTTL:         time.Hour,
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 1000,
		MetricsEnabled:     true,
	}
	collector := metrics.New()
	client := gateway.New(gateway.Options{BaseURL: upstream.URL, Transport: http.DefaultTransport, Metrics: collector})
	return &console{t: t, handler: NewRouter(Deps{
		Config:   cfg,
		Client:   client,
		Sessions: session.NewManager(session.NewMemoryStore(), client, cfg.SessionTTL),
		Cookies:  session.NewCookieCodec("0123456789abcdef0123456789abcdef", false),
		Metrics:  collector,
	})}
}

func (c *console) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, "/console/api"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func (c *console) login(email string) *http.Cookie {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": "secret@1"}, nil)
	if rec.Code != http.StatusOK {
		c.t.Fatalf("login %s: expected 200, got %d: %s", email, rec.Code, rec.Body.String())
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName && ck.Value != "" {
			return ck
		}
	}
	c.t.Fatal("expected session cookie")
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) (api.Envelope, map[string]any) {
	t.Helper()
	var env api.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	data, _ := env.Data.(map[string]any)
	return env, data
}

func TestLoginValidationAndUpstreamMessage(t *testing.T) {
	c := newConsole(t)

	rec := c.do(http.MethodPost, "/auth/login", map[string]string{"email": "not-an-email"}, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	rec = c.do(http.MethodPost, "/auth/login", map[string]string{"email": "asha@example.com", "password": "wrong"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	env, _ := decode(t, rec)
	if env.Error == nil || env.Error.Message != "Invalid credentials" {
		t.Fatalf("expected upstream message verbatim, got %+v", env.Error)
	}
}

func TestAdminDashboardWelcomeOnce(t *testing.T) {
	c := newConsole(t)
	cookie := c.login("admin@example.com")

	rec := c.do(http.MethodGet, "/dashboard", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	_, data := decode(t, rec)
	if data["welcome"] != "Welcome Admin" {
		t.Fatalf("expected welcome notice, got %v", data["welcome"])
	}
	if recent, _ := data["recentEmployees"].([]any); len(recent) != 2 {
		t.Fatalf("expected two recent employees, got %v", data["recentEmployees"])
	}

	rec = c.do(http.MethodGet, "/dashboard", nil, cookie)
	_, data = decode(t, rec)
	if _, shown := data["welcome"]; shown {
		t.Fatal("expected welcome only once per session")
	}
}

func TestRoleGuards(t *testing.T) {
	c := newConsole(t)
	employeeCookie := c.login("asha@example.com")
	adminCookie := c.login("admin@example.com")

	tests := []struct {
		name   string
		path   string
		cookie *http.Cookie
		want   int
	}{
		{name: "anonymous dashboard", path: "/dashboard", want: http.StatusUnauthorized},
		{name: "employee list as employee", path: "/employees", cookie: employeeCookie, want: http.StatusForbidden},
		{name: "payroll options as employee", path: "/payroll/options", cookie: employeeCookie, want: http.StatusForbidden},
		{name: "employee list as admin", path: "/employees?page=1", cookie: adminCookie, want: http.StatusOK},
		{name: "menu as employee", path: "/menu", cookie: employeeCookie, want: http.StatusOK},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := c.do(http.MethodGet, tc.path, nil, tc.cookie)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSlipDownload(t *testing.T) {
	c := newConsole(t)
	cookie := c.login("asha@example.com")

	rec := c.do(http.MethodGet, "/payroll/slips/7/download", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="salary-slip-7.pdf"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Fatal("expected slip bytes passed through")
	}
}

func TestSlipDownloadFailures(t *testing.T) {
	c := newConsole(t)
	cookie := c.login("asha@example.com")

	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantMsg    string
	}{
		{name: "upstream refuses", id: "8", wantStatus: http.StatusForbidden, wantMsg: "You can only download your own slips"},
		{name: "upstream error", id: "9", wantStatus: http.StatusBadGateway, wantMsg: "Failed to download salary slip."},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := c.do(http.MethodGet, "/payroll/slips/"+tc.id+"/download", nil, cookie)
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Disposition"); got != "" {
				t.Fatalf("expected no attachment on failure, got %q", got)
			}
			env, _ := decode(t, rec)
			if env.Success || env.Error == nil || env.Error.Message != tc.wantMsg {
				t.Fatalf("expected failure message %q, got %+v", tc.wantMsg, env.Error)
			}
		})
	}
}

func TestLogoutAndPasswordChangeEndSession(t *testing.T) {
	c := newConsole(t)

	cookie := c.login("asha@example.com")
	if rec := c.do(http.MethodPost, "/auth/logout", nil, cookie); rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rec.Code)
	}
	if rec := c.do(http.MethodGet, "/auth/session", nil, cookie); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected session gone after logout, got %d", rec.Code)
	}

	cookie = c.login("asha@example.com")
	weak := map[string]string{"newPassword": "abc", "confirmPassword": "abc"}
	if rec := c.do(http.MethodPost, "/auth/change-password", weak, cookie); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for weak password, got %d", rec.Code)
	}
	strong := map[string]string{"newPassword": "better@12", "confirmPassword": "better@12"}
	rec := c.do(http.MethodPost, "/auth/change-password", strong, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, data := decode(t, rec); data["message"] != "Password updated" {
		t.Fatalf("expected upstream message, got %v", data)
	}
	if rec := c.do(http.MethodGet, "/auth/session", nil, cookie); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected session gone after password change, got %d", rec.Code)
	}
}

func TestFormsLiveValidation(t *testing.T) {
	c := newConsole(t)

	if rec := c.do(http.MethodGet, "/forms/apply_leave", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected schema, got %d", rec.Code)
	}
	if rec := c.do(http.MethodGet, "/forms/nope", nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown form, got %d", rec.Code)
	}

	rec := c.do(http.MethodPost, "/forms/apply_leave/validate", map[string]any{
		"field":  "fromDate",
		"values": map[string]string{"fromDate": "2024-05-10", "toDate": "2024-05-01"},
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	_, data := decode(t, rec)
	errs, _ := data["errors"].(map[string]any)
	if errs["toDate"] != "To date cannot be before From date" {
		t.Fatalf("expected dependent toDate error, got %v", errs)
	}
	if _, touched := errs["description"]; touched {
		t.Fatal("live validation must not report untouched fields")
	}
}

func TestHealthAndMetrics(t *testing.T) {
	c := newConsole(t)
	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rec := httptest.NewRecorder()
		c.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
