package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"emsconsole/internal/domain/forms"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/validation"
)

func newService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(gateway.New(gateway.Options{BaseURL: srv.URL, Transport: http.DefaultTransport}))
}

func TestSaveEducationSkipsEmptyGroups(t *testing.T) {
	var calls int32
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/profile/education" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": 1}})
	})

	sess := session.Session{ID: "s", Token: "tok"}
	if _, err := svc.SaveEducation(context.Background(), sess, gateway.EducationInfo{UDegree: "BSc", UCGPA: 8.2}); err != nil {
		t.Fatalf("save education: %v", err)
	}
	_, err := svc.SaveEducation(context.Background(), sess, gateway.EducationInfo{PCGPA: 11})
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Fields()["pCGPA"] != "CGPA must be between 0 and 10" {
		t.Fatalf("expected CGPA range error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}
}

func TestSavePersonalSurfacesServerMessage(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Profile locked"})
	})

	in := gateway.PersonalInfo{
		FatherName: "Mohan", FatherContact: "9876543210",
		MotherName: "Lata", MotherContact: "9876543211",
		Address: "12 Park Street, Pune", DateOfBirth: "1990-02-01",
	}
	_, err := svc.SavePersonal(context.Background(), session.Session{Token: "tok"}, in)
	var fault *forms.Fault
	if !errors.As(err, &fault) || fault.Message != "Profile locked" || fault.HTTPStatus() != http.StatusBadRequest {
		t.Fatalf("expected upstream fault, got %v", err)
	}
}
