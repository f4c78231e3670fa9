package entity

import "errors"

var (
	// ErrTerritoryUnavailable means the zip is actively claimed by another
	// user. Distinct from validation errors so callers can offer the
	// waitlist instead of a retry.
	ErrTerritoryUnavailable = errors.New("territory unavailable")

	ErrTerritoryNotFound = errors.New("territory not found")
	ErrLeadNotFound      = errors.New("lead not found")
	ErrProfileNotFound   = errors.New("profile not found")
)
