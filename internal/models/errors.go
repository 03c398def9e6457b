package models

import (
	"errors"
	"fmt"
)

// DomainError represents a business rule violation raised by the domain
// model. It is distinct from infrastructure errors so handlers can map it
// to a 400-class response.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error with a formatted message
func NewDomainError(format string, args ...any) *DomainError {
	return &DomainError{Message: fmt.Sprintf(format, args...)}
}

// IsDomainError reports whether err is (or wraps) a domain rule violation
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
