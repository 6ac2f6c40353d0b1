package forms

import (
	"emsconsole/internal/gateway"
	"emsconsole/internal/validation"
)

// EnumEnv exposes the loaded department, position and status sets to
// choice fields.
func EnumEnv(e gateway.Enums) validation.Env {
	return validation.Env{Options: map[string][]string{
		"departments": e.Departments,
		"positions":   e.Positions,
		"statuses":    e.Statuses,
	}}
}
