package shared

import (
	"net/http"

	"emsconsole/internal/transport/http/api"
	"emsconsole/internal/validation"
)

// FailValidation writes the blocked-submission response: the generic notice
// plus one entry per offending field.
func FailValidation(w http.ResponseWriter, requestID string, result validation.Result) {
	api.FailWithDetails(
		w,
		http.StatusUnprocessableEntity,
		"validation_error",
		validation.GenericMessage,
		map[string]any{"fields": result.Issues(), "errors": result.Errors},
		requestID,
	)
}

// Reject validates values against the named form and writes the failure
// when there is one.
func Reject(w http.ResponseWriter, requestID string, form string, values validation.Values, env validation.Env) bool {
	result := validation.ValidateForm(validation.Must(form), values, env)
	if result.OK() {
		return false
	}
	FailValidation(w, requestID, result)
	return true
}
