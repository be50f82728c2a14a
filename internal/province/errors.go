package province

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidType = errors.New("input is not a string")
	ErrEmptyInput  = errors.New("text cannot be empty")
	ErrNoMatch     = errors.New("province or territory could not be identified")
)

// InvalidTypeError is returned by IdentifyValue for non-string values.
type InvalidTypeError struct {
	Value any
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("expected input to be string, got %T", e.Value)
}

func (e *InvalidTypeError) Unwrap() error { return ErrInvalidType }

// NoMatchError names the input that cleared none of the escalation tiers.
type NoMatchError struct {
	Input string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no unique province/territory identified for '%s'", e.Input)
}

func (e *NoMatchError) Unwrap() error { return ErrNoMatch }
