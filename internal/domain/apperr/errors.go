// Package apperr defines the business error taxonomy shared by all
// usecases. Every error here aborts the enclosing transaction and maps
// 1:1 onto an HTTP status in the adapter layer; none are retryable.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError: the caller supplied a value the domain rejects.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError: the entity does not exist inside the caller's
// organization. Organization scoping is a security boundary, so a
// cross-org ID looks identical to a missing one.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// StateConflictError: the action is legal in principle but not in the
// entity's current state. Current/Required give the caller enough to
// build an actionable message.
type StateConflictError struct {
	Entity   string
	ID       string
	Action   string
	Current  string
	Required string
}

func (e *StateConflictError) Error() string {
	if e.Required == "" {
		return fmt.Sprintf("cannot %s %s %s in state %s", e.Action, e.Entity, e.ID, e.Current)
	}
	return fmt.Sprintf("cannot %s %s %s: state is %s, requires %s", e.Action, e.Entity, e.ID, e.Current, e.Required)
}

func StateConflict(entity, id, action, current, required string) *StateConflictError {
	return &StateConflictError{Entity: entity, ID: id, Action: action, Current: current, Required: required}
}

// PermissionError: role or ownership mismatch. Distinct from
// StateConflict so the adapter can answer 403 rather than 409.
type PermissionError struct {
	Action string
	Reason string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("not allowed to %s: %s", e.Action, e.Reason)
}

func Permission(action, reason string) *PermissionError {
	return &PermissionError{Action: action, Reason: reason}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsStateConflict(err error) bool {
	var e *StateConflictError
	return errors.As(err, &e)
}

func IsPermission(err error) bool {
	var e *PermissionError
	return errors.As(err, &e)
}
