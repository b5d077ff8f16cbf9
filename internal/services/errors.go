// internal/services/errors.go
package services

import "errors"

// Sentinel errors returned (wrapped) by services. Handlers map them to HTTP statuses.
var (
	ErrValidation       = errors.New("validation")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrPaymentsDisabled = errors.New("payments disabled")
)
