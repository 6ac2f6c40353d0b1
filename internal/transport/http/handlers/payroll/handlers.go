package payrollhandler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"emsconsole/internal/domain/payroll"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/platform/logger"
	"emsconsole/internal/transport/http/api"
	"emsconsole/internal/transport/http/middleware"
	"emsconsole/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
}

func NewHandler(service *payroll.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	admin := middleware.RequireRole(session.RoleAdmin)

	r.Route("/payroll", func(r chi.Router) {
		r.With(admin).Post("/process", h.handleProcess)
		r.With(admin).Get("/", h.handleList)
		r.With(admin).Get("/options", h.handleOptions)
		r.With(admin).Get("/employees/{id}", h.handleEmployeePayroll)
		r.Get("/mine", h.handleMine)
		r.Get("/mine/statement.pdf", h.handleStatement)
		r.Get("/slips/{id}", h.handleSlip)
		r.Get("/slips/{id}/download", h.handleDownload)
	})
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	var payload gateway.ProcessPayrollRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	p, err := h.Service.Process(r.Context(), sess, payload)
	if err != nil {
		shared.WriteError(w, r, err, payroll.MsgProcessFailed)
		return
	}
	api.Created(w, p, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	view, err := h.Service.List(r.Context(), sess, shared.ParsePage(r), shared.ParseFilter(r))
	if err != nil {
		shared.WriteError(w, r, err, "failed to list payroll")
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	opts, err := h.Service.EmployeeOptions(r.Context(), sess)
	if err != nil {
		shared.WriteError(w, r, err, "failed to load employees")
		return
	}
	api.Success(w, opts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmployeePayroll(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	id, ok := shared.PathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Service.EmployeePayroll(r.Context(), sess, id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to load payroll")
		return
	}
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	history, err := h.Service.Mine(r.Context(), sess)
	if err != nil {
		shared.WriteError(w, r, err, "failed to load payroll history")
		return
	}
	api.Success(w, history, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	pdf, err := h.Service.Statement(r.Context(), sess)
	if err != nil {
		shared.WriteError(w, r, err, "failed to render statement")
		return
	}
	writeAttachment(w, r, payroll.StatementName, "application/pdf", pdf)
}

func (h *Handler) handleSlip(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	id, ok := shared.PathID(w, r, "id")
	if !ok {
		return
	}
	slip, err := h.Service.Slip(r.Context(), sess, id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to load salary slip")
		return
	}
	api.Success(w, slip, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionOrFail(w, r)
	if !ok {
		return
	}
	id, ok := shared.PathID(w, r, "id")
	if !ok {
		return
	}
	slip, err := h.Service.Download(r.Context(), sess, id)
	if err != nil {
		shared.WriteError(w, r, err, payroll.MsgDownloadFailed)
		return
	}
	writeAttachment(w, r, slip.Name, slip.ContentType, slip.Data)
}

func writeAttachment(w http.ResponseWriter, r *http.Request, name, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.FromContext(r.Context()).Warn().Err(err).Str("file", name).Msg("attachment write failed")
	}
}
