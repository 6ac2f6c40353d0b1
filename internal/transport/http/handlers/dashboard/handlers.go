package dashboardhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"emsconsole/internal/domain/dashboard"
	"emsconsole/internal/transport/http/api"
	"emsconsole/internal/transport/http/middleware"
	"emsconsole/internal/transport/http/shared"
)

type Handler struct {
	Service *dashboard.Service
}

func NewHandler(service *dashboard.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleDashboard)
	r.Get("/menu", h.handleMenu)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	view, err := h.Service.Load(r.Context(), sess)
	if err != nil {
		shared.WriteError(w, r, err, "failed to load dashboard")
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMenu(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	api.Success(w, dashboard.Menu(sess.Role), middleware.GetRequestID(r.Context()))
}
