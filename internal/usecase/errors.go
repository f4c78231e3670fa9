package usecase

import "errors"

// ErrForbidden is returned when an actor touches a resource they do not own
// and is not an admin.
var ErrForbidden = errors.New("forbidden")

// DomainError is a user-correctable validation failure. No storage was
// touched; the caller should fix the input, not retry.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// ConflictError means the requested state transition lost to an existing
// claim (zip already owned by someone else). Reported separately from
// validation so the UI can offer the waitlist path.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func IsConflictError(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// TechnicalError is a transient infrastructure failure. Idempotent operations
// (claim, bootstrap) are safe to retry.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
