package forms

import (
	"context"
	"errors"
	"net/http"

	"emsconsole/internal/gateway"
	"emsconsole/internal/validation"
)

// Fault is an upstream failure translated for the user. Message is the
// server's own text when it sent one, the form's fallback otherwise.
type Fault struct {
	Status  int
	Message string
	Err     error
}

func (f *Fault) Error() string { return f.Message }

func (f *Fault) Unwrap() error { return f.Err }

// HTTPStatus passes client errors through and reports everything else as a
// bad gateway.
func (f *Fault) HTTPStatus() int {
	if f.Status >= 400 && f.Status < 500 {
		return f.Status
	}
	return http.StatusBadGateway
}

// NewFault wraps an upstream error with the form's fallback message.
func NewFault(err error, fallback string) *Fault {
	status := gateway.Status(err)
	if errors.Is(err, gateway.ErrNoToken) {
		status = http.StatusUnauthorized
	}
	return &Fault{Status: status, Message: gateway.Message(err, fallback), Err: err}
}

// Submit validates values against schema and only then calls send. A failed
// validation returns *validation.Error without touching the network; a failed
// send returns *Fault.
func Submit[T any](ctx context.Context, schema *validation.Schema, values validation.Values, env validation.Env, fallback string, send func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := validation.ValidateForm(schema, values, env).Err(); err != nil {
		return zero, err
	}
	out, err := send(ctx)
	if err != nil {
		return zero, NewFault(err, fallback)
	}
	return out, nil
}

// SubmitWithOptions is Submit for forms whose choice fields need option sets
// from the upstream. A first pass without options blocks presence, length
// and format failures before any network call; load runs only once that
// pass is clean.
func SubmitWithOptions[T any](ctx context.Context, schema *validation.Schema, values validation.Values, load func(context.Context) validation.Env, fallback string, send func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := validation.ValidateForm(schema, values, validation.Env{}).Err(); err != nil {
		return zero, err
	}
	var env validation.Env
	if schema.UsesOptions() {
		env = load(ctx)
	}
	return Submit(ctx, schema, values, env, fallback, send)
}
