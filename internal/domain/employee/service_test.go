package employee

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"emsconsole/internal/domain/forms"
	"emsconsole/internal/domain/listing"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/validation"
)

type upstream struct {
	enumsStatus int
	posts       int32
	hits        int32
}

func (u *upstream) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&u.hits, 1)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/enums":
			if u.enumsStatus != 0 {
				w.WriteHeader(u.enumsStatus)
				return
			}
			_ = json.NewEncoder(w).Encode(gateway.Enums{
				Departments: []string{"Engineering", "HR"},
				Positions:   []string{"Engineer", "Manager"},
				Statuses:    []string{"Active", "Inactive"},
			})
		case r.URL.Path == "/users" && r.Method == http.MethodGet:
			if r.URL.Query().Get("page") != "2" {
				t.Errorf("expected page 2, got %q", r.URL.RawQuery)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
				"totalPages": 3,
				"employees": []gateway.Employee{
					{ID: 1, FirstName: "Asha", Department: "HR", Status: "Active"},
					{ID: 2, FirstName: "Ravi", Department: "Engineering", Status: "Active"},
					{ID: 3, FirstName: "Meera", Department: "HR", Status: "Inactive"},
				},
			}})
		case r.URL.Path == "/users" && r.Method == http.MethodPost:
			atomic.AddInt32(&u.posts, 1)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Employee created"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newService(t *testing.T, u *upstream) *Service {
	t.Helper()
	srv := httptest.NewServer(u.handler(t))
	t.Cleanup(srv.Close)
	client := gateway.New(gateway.Options{BaseURL: srv.URL, Transport: http.DefaultTransport})
	return NewService(client, listing.NewSequencer())
}

var admin = session.Session{ID: "s1", Token: "tok", Role: session.RoleAdmin}

func TestListSecondOfThreePages(t *testing.T) {
	svc := newService(t, &upstream{})
	view, err := svc.List(context.Background(), admin, listing.NewPageRequest(2, 5), listing.Filter{Department: "HR", Status: listing.AllStatuses})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !view.Pager.HasPrevious || !view.Pager.HasNext || view.Pager.TotalPages != 3 {
		t.Fatalf("unexpected pager %+v", view.Pager)
	}
	if len(view.Items) != 2 || view.Items[0].FirstName != "Asha" {
		t.Fatalf("expected HR rows only, got %+v", view.Items)
	}
	if len(view.Enums.Departments) != 2 {
		t.Fatalf("expected enums alongside the page, got %+v", view.Enums)
	}
}

func TestListFailsWhenEnumsFail(t *testing.T) {
	svc := newService(t, &upstream{enumsStatus: http.StatusInternalServerError})
	if _, err := svc.List(context.Background(), admin, listing.NewPageRequest(2, 5), listing.Filter{}); err == nil {
		t.Fatal("expected list to fail with enums")
	}
}

func TestCreateShortFirstNameNeverCallsUpstream(t *testing.T) {
	u := &upstream{}
	svc := newService(t, u)
	_, err := svc.Create(context.Background(), admin, gateway.EmployeeInput{
		FirstName: "Al", LastName: "Smith", Email: "al@example.com", JoiningDate: "2024-01-15",
	})
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Fields()["firstName"] != "Minimum 3 characters" {
		t.Fatalf("expected firstName length error, got %v", err)
	}
	if got := atomic.LoadInt32(&u.hits); got != 0 {
		t.Fatalf("expected no upstream call at all, got %d", got)
	}
}

func TestCreateChecksDepartmentAgainstEnums(t *testing.T) {
	u := &upstream{}
	svc := newService(t, u)
	in := gateway.EmployeeInput{
		FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", JoiningDate: "2024-01-15",
		Department: "Sales",
	}
	_, err := svc.Create(context.Background(), admin, in)
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Fields()["department"] != "Select a valid option" {
		t.Fatalf("expected department option error, got %v", err)
	}

	in.Department = "HR"
	ack, err := svc.Create(context.Background(), admin, in)
	if err != nil || !ack.Success {
		t.Fatalf("expected create to succeed, got %+v %v", ack, err)
	}
	if atomic.LoadInt32(&u.posts) != 1 {
		t.Fatalf("expected one upstream call, got %d", u.posts)
	}
}

func TestDeleteFallbackMessage(t *testing.T) {
	svc := newService(t, &upstream{})
	_, err := svc.Delete(context.Background(), admin, 99)
	var fault *forms.Fault
	if !errors.As(err, &fault) || fault.Message != MsgDeleteFailed || fault.HTTPStatus() != http.StatusNotFound {
		t.Fatalf("expected delete fault, got %v", err)
	}
}
