package chart

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument indicates a caller broke a configuration contract:
// mismatched paired inputs, an out-of-range parameter or an unknown
// enumeration value.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError describes which argument was rejected and why.
type ArgumentError struct {
	Name   string
	Value  interface{}
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%v: %s", e.Name, e.Value, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalidArg(name string, value interface{}, format string, args ...interface{}) error {
	return &ArgumentError{
		Name:   name,
		Value:  value,
		Reason: fmt.Sprintf(format, args...),
	}
}
