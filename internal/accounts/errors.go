package accounts

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateAccount   = errors.New("duplicate account")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidAccount     = errors.New("invalid account")
)

// DuplicateAccountError reports an Email or Username already in the store.
type DuplicateAccountError struct {
	Field string // "Email" or "Username"
	Value string
}

func (e *DuplicateAccountError) Error() string {
	return fmt.Sprintf("an account with %s %q already exists", e.Field, e.Value)
}

func (e *DuplicateAccountError) Is(target error) bool {
	return target == ErrDuplicateAccount
}

// ValidationError reports a field of a new account that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidAccount
}
