// Package errors defines the domain error taxonomy shared by the
// service and handler layers.
package errors

import (
	stderrors "errors"
)

// DomainError is a client-facing failure with a stable code and the
// HTTP status handlers map it to.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// AsDomain reports whether err is (or wraps) a DomainError.
func AsDomain(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}
