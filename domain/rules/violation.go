// Package rules implements the scheduling rules as pure validation
// functions over the current entity snapshot. Nothing in this package
// mutates state; callers decide whether to commit.
package rules

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a rejected mutation. The string values
// are the wire-level error codes surfaced to API clients.
type Kind string

const (
	// KindValidation indicates malformed input such as a blank title or
	// an inverted date range.
	KindValidation Kind = "VALIDATION_ERROR"
	// KindNotFound indicates a referenced user or task does not exist.
	KindNotFound Kind = "NOT_FOUND"
	// KindInactiveUser indicates an assignment target is not active.
	KindInactiveUser Kind = "INACTIVE_USER"
	// KindScheduleConflict indicates the target already holds an
	// overlapping task.
	KindScheduleConflict Kind = "SCHEDULE_CONFLICT"
	// KindInvalidTransition indicates the requested status is not the
	// valid next state.
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	// KindUserHasTasks indicates a user still holding tasks cannot be
	// deactivated.
	KindUserHasTasks Kind = "USER_HAS_TASKS"
	// KindInternal indicates an unexpected storage fault. The operation
	// is aborted and prior state left intact.
	KindInternal Kind = "INTERNAL_ERROR"
)

// Violation is a rejected mutation with a specific reason. It is returned
// in-band in service responses so the kind survives the service-bus
// boundary, and also implements error for in-process use.
type Violation struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Kind, v.Message)
}

// New creates a Violation with a formatted message.
func New(kind Kind, format string, args ...any) *Violation {
	return &Violation{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a NOT_FOUND violation for the given entity and ID.
func NotFound(entity, id string) *Violation {
	return New(KindNotFound, "%s not found: %s", entity, id)
}

// AsViolation unwraps err into a Violation if it carries one.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
