package formshandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"emsconsole/internal/domain/forms"
	"emsconsole/internal/gateway"
	"emsconsole/internal/platform/logger"
	"emsconsole/internal/platform/metrics"
	"emsconsole/internal/transport/http/api"
	"emsconsole/internal/transport/http/middleware"
	"emsconsole/internal/transport/http/shared"
	"emsconsole/internal/validation"
)

// Handler exposes the form schemas and the live validation the browser
// calls as the user types.
type Handler struct {
	Client  *gateway.Client
	Metrics *metrics.Collector
	Now     func() time.Time
}

func NewHandler(client *gateway.Client, collector *metrics.Collector) *Handler {
	return &Handler{Client: client, Metrics: collector, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/forms", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{form}", h.handleGet)
		r.Post("/{form}/validate", h.handleValidate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.Success(w, validation.Names(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schema(w, r)
	if !ok {
		return
	}
	api.Success(w, schema, middleware.GetRequestID(r.Context()))
}

type validatePayload struct {
	// Field is the input that just changed. Empty means the whole form is
	// being submitted.
	Field  string            `json:"field"`
	Values validation.Values `json:"values"`
}

type liveResult struct {
	Errors map[string]string `json:"errors"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schema(w, r)
	if !ok {
		return
	}
	var payload validatePayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	requestID := middleware.GetRequestID(r.Context())
	if payload.Values == nil {
		payload.Values = validation.Values{}
	}
	env := h.env(r, schema)

	if payload.Field != "" {
		if _, known := schema.Field(payload.Field); !known {
			api.Fail(w, http.StatusBadRequest, "unknown_field", "unknown field "+payload.Field, requestID)
			return
		}
		api.Success(w, liveResult{Errors: validation.Live(schema, payload.Field, payload.Values, env)}, requestID)
		return
	}

	result := validation.ValidateForm(schema, payload.Values, env)
	if !result.OK() {
		h.Metrics.RecordValidationFailure()
		shared.FailValidation(w, requestID, result)
		return
	}
	api.Success(w, liveResult{Errors: map[string]string{}}, requestID)
}

func (h *Handler) schema(w http.ResponseWriter, r *http.Request) (*validation.Schema, bool) {
	schema, ok := validation.Lookup(chi.URLParam(r, "form"))
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "unknown form", middleware.GetRequestID(r.Context()))
	}
	return schema, ok
}

// env loads the enum option sets only for forms that reference them.
func (h *Handler) env(r *http.Request, schema *validation.Schema) validation.Env {
	env := validation.Env{Now: h.Now}
	if !schema.UsesOptions() {
		return env
	}
	enums, err := h.Client.Enums(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Warn().Err(err).Str("form", schema.Name).Msg("enum options unavailable")
		return env
	}
	env = forms.EnumEnv(enums)
	env.Now = h.Now
	return env
}
