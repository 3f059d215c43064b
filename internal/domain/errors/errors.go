package errors

import (
	"errors"
	"strings"
)

var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrReasonRequired       = errors.New("rejection reason is required")
	ErrTransitionNotAllowed = errors.New("transition not allowed")
)

// ErrManagerApprovalRequired guards TTO rejection of requests that never
// passed the manager stage.
var ErrManagerApprovalRequired = &transitionError{msg: "request must be approved by manager before TTO can reject it"}

// ErrRequestNotApproved guards order creation for requests that have not
// cleared the full approval chain.
var ErrRequestNotApproved = &transitionError{msg: "request must be fully approved before tires can be ordered"}

type transitionError struct {
	msg string
}

func (e *transitionError) Error() string { return e.msg }

func (e *transitionError) Unwrap() error { return ErrTransitionNotAllowed }

// ValidationError carries the complete list of field violations for a
// submitted request. Rules are never checked fail-fast.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NewValidationError builds ValidationError from accumulated violations.
func NewValidationError(violations []string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// AsValidation extracts ValidationError from an error chain.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
