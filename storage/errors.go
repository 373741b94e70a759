package storage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the entity does not exist or lies outside the
	// caller's ownership scope. The two cases are deliberately
	// indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrTxFailed indicates a multi-row atomic write failed and was rolled
	// back; no partial state is observable.
	ErrTxFailed = errors.New("transaction failed")
)

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requireText validates that a required text field is non-blank.
func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: "this field may not be blank"}
	}
	return nil
}
