// Package errors defines the typed errors shared across the fund-movement
// engine and its HTTP surface.
package errors

// DomainError is a typed, caller-actionable error with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
