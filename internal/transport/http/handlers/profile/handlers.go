package profilehandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"emsconsole/internal/domain/profile"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/transport/http/api"
	"emsconsole/internal/transport/http/middleware"
	"emsconsole/internal/transport/http/shared"
)

type Handler struct {
	Service *profile.Service
}

func NewHandler(service *profile.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.handleMe)
		r.Post("/basic", save(h.Service.SaveBasic, profile.MsgBasicFailed))
		r.Post("/personal", save(h.Service.SavePersonal, profile.MsgPersonalFailed))
		r.Post("/education", save(h.Service.SaveEducation, profile.MsgEducationFailed))
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	me, err := h.Service.Me(r.Context(), sess)
	if err != nil {
		shared.WriteError(w, r, err, "failed to load profile")
		return
	}
	api.Success(w, me, middleware.GetRequestID(r.Context()))
}

// save builds the handler shared by the three profile sections: decode the
// section, submit it, return the updated record.
func save[T any](submit func(context.Context, session.Session, T) (gateway.Employee, error), fallback string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionOrFail(w, r)
		if !ok {
			return
		}
		var payload T
		if !shared.DecodeJSON(w, r, &payload) {
			return
		}
		emp, err := submit(r.Context(), sess, payload)
		if err != nil {
			shared.WriteError(w, r, err, fallback)
			return
		}
		api.Success(w, emp, middleware.GetRequestID(r.Context()))
	}
}
