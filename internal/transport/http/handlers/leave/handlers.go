package leavehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"emsconsole/internal/domain/leave"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/transport/http/api"
	"emsconsole/internal/transport/http/middleware"
	"emsconsole/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	admin := middleware.RequireRole(session.RoleAdmin)

	r.Route("/leave-types", func(r chi.Router) {
		r.Get("/", h.handleListTypes)
		r.Get("/{id}", h.handleGetType)
		r.With(admin).Post("/", h.handleCreateType)
		r.With(admin).Put("/{id}", h.handleUpdateType)
		r.With(admin).Delete("/{id}", h.handleDeleteType)
	})
	r.Route("/leaves", func(r chi.Router) {
		r.Post("/", h.handleApply)
		r.Get("/mine", h.handleHistory)
		r.With(admin).Get("/", h.handleList)
		r.With(admin).Get("/{id}", h.handleGet)
		r.With(admin).Get("/{id}/edit", h.handleEditView)
		r.With(admin).Put("/{id}", h.handleUpdate)
	})
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	types, err := h.Service.ListTypes(r.Context(), sess)
	if err != nil {
		shared.WriteError(w, r, err, "failed to list leave types")
		return
	}
	api.Success(w, types, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetType(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	id, ok := shared.PathID(w, r, "id")
	if !ok {
		return
	}
	lt, err := h.Service.GetType(r.Context(), sess, id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to load leave type")
		return
	}
	api.Success(w, lt, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateType(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	var payload gateway.LeaveTypeInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	ack, err := h.Service.CreateType(r.Context(), sess, payload)
	if err != nil {
		shared.WriteError(w, r, err, leave.MsgTypeCreateFailed)
		return
	}
	api.Created(w, ack, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateType(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	id, ok := shared.PathID(w, r, "id")
	if !ok {
		return
	}
	var payload gateway.LeaveTypeInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	lt, err := h.Service.UpdateType(r.Context(), sess, id, payload)
	if err != nil {
		shared.WriteError(w, r, err, leave.MsgTypeUpdateFailed)
		return
	}
	api.Success(w, lt, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteType(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	id, ok := shared.PathID(w, r, "id")
	if !ok {
		return
	}
	ack, err := h.Service.DeleteType(r.Context(), sess, id)
	if err != nil {
		shared.WriteError(w, r, err, leave.MsgTypeDeleteFailed)
		return
	}
	api.Success(w, ack, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	var payload gateway.LeaveInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	l, err := h.Service.Apply(r.Context(), sess, payload)
	if err != nil {
		shared.WriteError(w, r, err, leave.MsgApplyFailed)
		return
	}
	api.Created(w, l, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	rows, err := h.Service.History(r.Context(), sess)
	if err != nil {
		shared.WriteError(w, r, err, "failed to load leave history")
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	page, err := h.Service.List(r.Context(), sess, shared.ParsePage(r))
	if err != nil {
		shared.WriteError(w, r, err, "failed to list leaves")
		return
	}
	api.Success(w, page, middleware.GetRequestID(r.Context()))
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
	l, err := h.Service.Get(r.Context(), sess, id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to load leave")
		return
	}
	api.Success(w, leave.HistoryEntry{Leave: l, Days: leave.Days(l)}, middleware.GetRequestID(r.Context()))
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
		shared.WriteError(w, r, err, "failed to load leave")
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
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
	var payload gateway.LeaveInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	l, err := h.Service.Update(r.Context(), sess, id, payload)
	if err != nil {
		shared.WriteError(w, r, err, leave.MsgUpdateFailed)
		return
	}
	api.Success(w, l, middleware.GetRequestID(r.Context()))
}
