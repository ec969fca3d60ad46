package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable indicates the backing store could not be reached or
	// failed unexpectedly. The enclosing operation is abandoned, never
	// silently retried.
	ErrStoreUnavailable = errors.New("backing store unavailable")
	// ErrDuplicatePurchaseID indicates a uniqueness conflict on the purchase
	// id at commit time, i.e. a race against a concurrent session.
	ErrDuplicatePurchaseID = errors.New("purchase id already exists")
	// ErrInvalidCredential indicates the username/password pair did not
	// authenticate. The operator should retry their password.
	ErrInvalidCredential = errors.New("invalid username or password")
	// ErrWrongInterface indicates the credential is valid but registered for
	// the other program surface. The operator should switch programs, not
	// retry.
	ErrWrongInterface = errors.New("account is registered for the other interface")
)

// ValidationError is a local, field-level syntactic rejection. Always
// recoverable by re-prompting the same field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ReferentialError means the value is syntactically fine but does not exist
// or does not agree with already-accepted fields. Recoverable by
// re-prompting.
type ReferentialError struct {
	Field  string
	Reason string
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
