package domain

import (
	"errors"
	"fmt"
)

// ErrSubmitInFlight is returned while a previous submission has not settled.
var ErrSubmitInFlight = errors.New("a ticket submission is already in progress")

type ErrCommand struct {
	Name string
	Err  error
}

func (e ErrCommand) Error() string {
	return fmt.Sprintf("command %s: %v", e.Name, e.Err)
}

func (e ErrCommand) Unwrap() error {
	return e.Err
}

type ErrValidation struct {
	Field  string
	Reason string
}

func (e ErrValidation) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type ErrUnsupportedPlatform struct {
	Platform string
}

func (e ErrUnsupportedPlatform) Error() string {
	return fmt.Sprintf("unsupported platform: %s", e.Platform)
}
