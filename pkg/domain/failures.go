package domain

import (
	"errors"
	"fmt"
)

// Infrastructure failures, opaque to the caller beyond their kind. Use cases
// classify a collaborator error exactly once, at the point the call returns,
// and never retry.
var (
	ErrAccountsUnavailable     = errors.New("accounts repository unavailable")
	ErrTransactionsUnavailable = errors.New("transactions repository unavailable")
	ErrRatesUnavailable        = errors.New("exchange rates unavailable")
)

// InvalidRequestError carries the one constraint violation a use case
// surfaces for a rejected request.
type InvalidRequestError struct {
	Violation ConstraintViolation
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Violation.Subject, e.Violation.Violation)
}

// InvalidRequest builds the use-case error for a failed rule.
func InvalidRequest(subject string, violation Violation) error {
	return &InvalidRequestError{Violation: ConstraintViolation{Subject: subject, Violation: violation}}
}

// AsInvalidRequest unwraps err into an InvalidRequestError, if it is one.
func AsInvalidRequest(err error) (*InvalidRequestError, bool) {
	var ir *InvalidRequestError
	ok := errors.As(err, &ir)
	return ir, ok
}
