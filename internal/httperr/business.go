package httperr

import "errors"

// Kind classifies a business error so the boundary layer can pick the
// right HTTP status without inspecting codes.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindConflict      Kind = "conflict"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
	KindState         Kind = "state"
)

// Conflict reason codes shared by the validator and its callers.
const (
	CodeInPast              = "in_past"
	CodeOutsideAvailability = "outside_availability"
	CodeSlotTaken           = "slot_taken"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrValidation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func ErrConflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func ErrAuthorization(code, message string) error {
	return BusinessError{Kind: KindAuthorization, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func ErrState(code, message string) error {
	return BusinessError{Kind: KindState, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns the error's kind, or "" for non-business errors.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
