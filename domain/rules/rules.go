package rules

import (
	"strings"

	"github.com/example/taskflow/domain/task"
	"github.com/example/taskflow/domain/user"
)

// ValidateUserName checks the input for user creation.
func ValidateUserName(name string) *Violation {
	if strings.TrimSpace(name) == "" {
		return New(KindValidation, "name must not be blank")
	}
	return nil
}

// ValidateTaskCreation checks the input for task creation. Creation never
// assigns a user, so no scheduling rules apply here.
func ValidateTaskCreation(title string, start, end task.Date) *Violation {
	if strings.TrimSpace(title) == "" {
		return New(KindValidation, "title must not be blank")
	}
	if start.IsZero() || end.IsZero() {
		return New(KindValidation, "start_date and end_date are required")
	}
	if end.Before(start) {
		return New(KindValidation, "start_date must not be after end_date")
	}
	return nil
}

// ValidateAssignment checks whether t may be assigned to target, given
// every task currently held by target. Reassigning a task to the user who
// already holds it is permitted: the task itself is excluded from the
// overlap check.
func ValidateAssignment(t *task.Task, target *user.User, held []*task.Task) *Violation {
	if !target.Active() {
		return New(KindInactiveUser, "user %q is inactive", target.Name)
	}
	for _, other := range held {
		if other.ID == t.ID {
			continue
		}
		if t.Overlaps(other) {
			return New(KindScheduleConflict,
				"task overlaps with %q (%s to %s)",
				other.Title, other.StartDate, other.EndDate)
		}
	}
	return nil
}

// ValidateStatusTransition checks whether requested is the immediate
// successor of current. Requesting the current status again is rejected
// rather than treated as a no-op success.
func ValidateStatusTransition(current, requested task.Status) *Violation {
	if !requested.Valid() {
		return New(KindValidation, "unknown status %q", string(requested))
	}
	if !current.CanTransitionTo(requested) {
		return New(KindInvalidTransition,
			"cannot transition from %s to %s", current, requested)
	}
	return nil
}

// ValidateDeactivation checks whether target may be set inactive. A user
// still holding tasks cannot be deactivated, otherwise assigned tasks
// would reference an inactive user.
func ValidateDeactivation(target *user.User, held []*task.Task) *Violation {
	if len(held) > 0 {
		return New(KindUserHasTasks,
			"user %q still holds %d task(s); reassign them first",
			target.Name, len(held))
	}
	return nil
}
