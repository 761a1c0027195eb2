// ABOUTME: Typed error taxonomy for controller operations
// ABOUTME: ValidationError and ConflictError are recoverable; store errors propagate raw

package tracker

import "errors"

// ValidationError reports malformed or missing required input. Always
// recoverable by the caller re-prompting.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ConflictError reports a uniqueness or invariant violation, such as a
// duplicate username or an operation that would leave zero admins.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
