package validation

// GenericMessage is the notice shown when a submission is blocked.
const GenericMessage = "Please fix validation errors"

// Error reports a form that failed whole-form validation.
type Error struct {
	Result Result
}

func (e *Error) Error() string { return GenericMessage }

func (e *Error) Fields() map[string]string { return e.Result.Errors }
