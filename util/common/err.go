package common

import (
	"errors"
	"fmt"
)

// NewErrorf formats a message into a plain error value.
func NewErrorf(format string, a ...any) error {
	return errors.New(fmt.Sprintf(format, a...))
}

// Combine joins errs, dropping nils; returns nil when nothing is left.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}
