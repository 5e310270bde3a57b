package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownIdentifier   = errors.New("unknown identifier")
	ErrObjectNotFound      = errors.New("object not found")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnresolvedDuplicate = errors.New("unresolved duplicate")
)

// UnknownIdentifierError reports text that matches no catalog grammar.
type UnknownIdentifierError struct {
	Text string
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("the name %q is not recognized", e.Text)
}

func (e *UnknownIdentifierError) Unwrap() error { return ErrUnknownIdentifier }

// NotFoundError reports a well-formed identifier with no catalog record.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("object named %s not found in the database", e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrObjectNotFound }

// CoordinatesError reports malformed coordinate text or a record that has
// no coordinates where they are required.
type CoordinatesError struct {
	Input  string
	Reason string
}

func (e *CoordinatesError) Error() string {
	if e.Input == "" {
		return "invalid coordinates: " + e.Reason
	}
	return fmt.Sprintf("invalid coordinates %q: %s", e.Input, e.Reason)
}

func (e *CoordinatesError) Unwrap() error { return ErrInvalidCoordinates }

// DuplicateChainError reports a duplicate record whose redirect could not be
// followed to a main record within the allowed number of hops.
type DuplicateChainError struct {
	Chain  []string
	Reason string
}

func (e *DuplicateChainError) Error() string {
	return fmt.Sprintf("duplicate %v: %s", e.Chain, e.Reason)
}

func (e *DuplicateChainError) Unwrap() error { return ErrUnresolvedDuplicate }

// InvalidArgf builds an ErrInvalidArgument with a formatted message.
func InvalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
