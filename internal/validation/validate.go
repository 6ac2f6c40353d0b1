package validation

import "strings"

// ValidateField derives the error for a single field from the current
// values. An empty string means the field is valid; unknown fields are
// always valid.
func ValidateField(s *Schema, name string, values Values, env Env) string {
	f, ok := s.Field(name)
	if !ok {
		return ""
	}
	return check(f, values, env)
}

func check(f *FieldSpec, values Values, env Env) string {
	v := strings.TrimSpace(values[f.Name])
	if v == "" || (f.Sentinel != "" && v == f.Sentinel) {
		if f.Required {
			return f.message(f.Messages.Required, f.Label+" is required")
		}
		return ""
	}
	return rules[f.Kind](f, v, values, env)
}

// Affected returns the changed field followed by every field whose rule
// reads it, in schema order.
func Affected(s *Schema, name string) []string {
	if _, ok := s.Field(name); !ok {
		return nil
	}
	out := []string{name}
	for _, f := range s.Fields {
		if f.Name == name {
			continue
		}
		if f.NotBefore == name || f.Equals == name {
			out = append(out, f.Name)
		}
	}
	return out
}

// Live re-derives the slots touched by a change to one field. The result
// holds an entry for every affected field, empty when it is now valid, so
// callers can clear stale messages.
func Live(s *Schema, name string, values Values, env Env) map[string]string {
	affected := Affected(s, name)
	out := make(map[string]string, len(affected))
	for _, field := range affected {
		out[field] = ValidateField(s, field, values, env)
	}
	return out
}

// Result is the outcome of whole-form validation.
type Result struct {
	Form   string
	Errors map[string]string
	order  []string
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

// Issue is one field error in schema order.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (r Result) Issues() []Issue {
	out := make([]Issue, 0, len(r.Errors))
	for _, name := range r.order {
		if msg, ok := r.Errors[name]; ok {
			out = append(out, Issue{Field: name, Message: msg})
		}
	}
	return out
}

// Err returns a *Error when the form failed, nil otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Result: r}
}

// ValidateForm re-derives every field from the submitted values.
func ValidateForm(s *Schema, values Values, env Env) Result {
	r := Result{Form: s.Name, Errors: map[string]string{}}
	for i := range s.Fields {
		f := &s.Fields[i]
		r.order = append(r.order, f.Name)
		if msg := check(f, values, env); msg != "" {
			r.Errors[f.Name] = msg
		}
	}
	return r
}
