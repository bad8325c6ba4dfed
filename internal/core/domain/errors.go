// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	ErrEmptyCandidate = errors.New("candidate cannot be empty")
	ErrInvalidOutcome = errors.New("invalid probe outcome")
	ErrDetailMismatch = errors.New("detail is only valid for errored results")
)
