package shared

import (
	"errors"
	"net/http"

	"emsconsole/internal/domain/forms"
	"emsconsole/internal/domain/listing"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/platform/logger"
	"emsconsole/internal/platform/requestctx"
	"emsconsole/internal/transport/http/api"
	"emsconsole/internal/validation"
)

// WriteError maps a service error onto the envelope. fallback is the
// user-facing text used when the upstream sent no message of its own.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	requestID := requestctx.GetRequestID(r.Context())

	var verr *validation.Error
	if errors.As(err, &verr) {
		FailValidation(w, requestID, verr.Result)
		return
	}

	var fault *forms.Fault
	if errors.As(err, &fault) {
		logFault(r, err, fault.HTTPStatus())
		api.Fail(w, fault.HTTPStatus(), codeFor(fault.HTTPStatus()), fault.Message, requestID)
		return
	}

	switch {
	case errors.Is(err, listing.ErrSuperseded):
		api.Fail(w, http.StatusConflict, "superseded", "request replaced by a newer one", requestID)
		return
	case errors.Is(err, gateway.ErrNoToken), errors.Is(err, session.ErrNotFound):
		api.FailWithData(w, http.StatusUnauthorized, "unauthorized", "authentication required",
			map[string]string{"redirect": "/login"}, requestID)
		return
	}

	status := http.StatusInternalServerError
	var gerr *gateway.Error
	if errors.As(err, &gerr) {
		status = http.StatusBadGateway
		if gerr.Status >= 400 && gerr.Status < 500 {
			status = gerr.Status
		}
	}
	logFault(r, err, status)
	api.Fail(w, status, codeFor(status), gateway.Message(err, fallback), requestID)
}

func logFault(r *http.Request, err error, status int) {
	event := logger.FromContext(r.Context()).Warn()
	if status >= 500 {
		event = logger.FromContext(r.Context()).Error()
	}
	event.Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusBadGateway:
		return "upstream_error"
	}
	if status >= 500 {
		return "internal_error"
	}
	return "request_failed"
}
