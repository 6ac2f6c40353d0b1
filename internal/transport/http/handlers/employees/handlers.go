package employeehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"emsconsole/internal/domain/employee"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/transport/http/api"
	"emsconsole/internal/transport/http/middleware"
	"emsconsole/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireRole(session.RoleAdmin))
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Get("/{id}/edit", h.handleEditView)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	view, err := h.Service.List(r.Context(), sess, shared.ParsePage(r), shared.ParseFilter(r))
	if err != nil {
		shared.WriteError(w, r, err, "failed to list employees")
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	id, ok := shared.PathID(w, r, "id")
	if !ok {
		return
	}
	emp, err := h.Service.Get(r.Context(), sess, id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to load employee")
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEditView(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	id, ok := shared.PathID(w, r, "id")
	if !ok {
		return
	}
	view, err := h.Service.EditView(r.Context(), sess, id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to load employee")
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	var payload gateway.EmployeeInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	ack, err := h.Service.Create(r.Context(), sess, payload)
	if err != nil {
		shared.WriteError(w, r, err, employee.MsgCreateFailed)
		return
	}
	if ack.Message == "" {
		ack.Message = "Employee created successfully! OTP sent to their email."
	}
	api.Created(w, ack, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	id, ok := shared.PathID(w, r, "id")
	if !ok {
		return
	}
	var payload gateway.EmployeeInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	emp, err := h.Service.Update(r.Context(), sess, id, payload)
	if err != nil {
		shared.WriteError(w, r, err, employee.MsgUpdateFailed)
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	id, ok := shared.PathID(w, r, "id")
	if !ok {
		return
	}
	ack, err := h.Service.Delete(r.Context(), sess, id)
	if err != nil {
		shared.WriteError(w, r, err, employee.MsgDeleteFailed)
		return
	}
	api.Success(w, ack, middleware.GetRequestID(r.Context()))
}
