package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/taskflow/domain/task"
	"github.com/example/taskflow/domain/user"
)

func day(n int) task.Date {
	return task.NewDate(2024, time.January, n)
}

func newTask(id, title string, start, end int) *task.Task {
	return &task.Task{
		ID:        id,
		Title:     title,
		StartDate: day(start),
		EndDate:   day(end),
		Status:    task.StatusPending,
	}
}

func TestValidateUserName(t *testing.T) {
	assert.Nil(t, ValidateUserName("Alice"))

	for _, name := range []string{"", "   ", "\t\n"} {
		v := ValidateUserName(name)
		require.NotNil(t, v, "name %q should be rejected", name)
		assert.Equal(t, KindValidation, v.Kind)
	}
}

func TestValidateTaskCreation(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		assert.Nil(t, ValidateTaskCreation("Report", day(1), day(5)))
	})

	t.Run("single day range is valid", func(t *testing.T) {
		assert.Nil(t, ValidateTaskCreation("Standup", day(3), day(3)))
	})

	t.Run("blank title rejected", func(t *testing.T) {
		v := ValidateTaskCreation("   ", day(1), day(5))
		require.NotNil(t, v)
		assert.Equal(t, KindValidation, v.Kind)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		v := ValidateTaskCreation("Report", day(10), day(1))
		require.NotNil(t, v)
		assert.Equal(t, KindValidation, v.Kind)
	})

	t.Run("missing dates rejected", func(t *testing.T) {
		v := ValidateTaskCreation("Report", task.Date{}, day(5))
		require.NotNil(t, v)
		assert.Equal(t, KindValidation, v.Kind)
	})
}

func TestValidateAssignment(t *testing.T) {
	active := &user.User{ID: "u1", Name: "Alice", Status: user.StatusActive}
	inactive := &user.User{ID: "u2", Name: "Bob", Status: user.StatusInactive}

	t.Run("active user with no tasks", func(t *testing.T) {
		assert.Nil(t, ValidateAssignment(newTask("t1", "Report", 1, 5), active, nil))
	})

	t.Run("inactive user rejected", func(t *testing.T) {
		v := ValidateAssignment(newTask("t1", "Report", 1, 5), inactive, nil)
		require.NotNil(t, v)
		assert.Equal(t, KindInactiveUser, v.Kind)
	})

	t.Run("overlapping task rejected", func(t *testing.T) {
		held := []*task.Task{newTask("t1", "Report", 1, 5)}
		v := ValidateAssignment(newTask("t2", "Audit", 3, 10), active, held)
		require.NotNil(t, v)
		assert.Equal(t, KindScheduleConflict, v.Kind)
		assert.Contains(t, v.Message, "Report")
	})

	t.Run("shared boundary day rejected", func(t *testing.T) {
		held := []*task.Task{newTask("t1", "Report", 1, 5)}
		v := ValidateAssignment(newTask("t2", "Audit", 5, 9), active, held)
		require.NotNil(t, v)
		assert.Equal(t, KindScheduleConflict, v.Kind)
	})

	t.Run("adjacent ranges accepted", func(t *testing.T) {
		held := []*task.Task{newTask("t1", "Report", 1, 5)}
		assert.Nil(t, ValidateAssignment(newTask("t2", "Audit", 6, 9), active, held))
	})

	t.Run("reassigning to current holder accepted", func(t *testing.T) {
		report := newTask("t1", "Report", 1, 5)
		assert.Nil(t, ValidateAssignment(report, active, []*task.Task{report}),
			"the task itself must be excluded from the overlap check")
	})

	t.Run("inactive user checked before overlap", func(t *testing.T) {
		held := []*task.Task{newTask("t1", "Report", 1, 5)}
		v := ValidateAssignment(newTask("t2", "Audit", 3, 10), inactive, held)
		require.NotNil(t, v)
		assert.Equal(t, KindInactiveUser, v.Kind)
	})
}

func TestValidateStatusTransition(t *testing.T) {
	allowed := []struct{ from, to task.Status }{
		{task.StatusPending, task.StatusInProgress},
		{task.StatusInProgress, task.StatusCompleted},
	}
	for _, tc := range allowed {
		assert.Nil(t, ValidateStatusTransition(tc.from, tc.to),
			"%s -> %s should be allowed", tc.from, tc.to)
	}

	rejected := []struct{ from, to task.Status }{
		{task.StatusPending, task.StatusCompleted},
		{task.StatusInProgress, task.StatusPending},
		{task.StatusCompleted, task.StatusPending},
		{task.StatusCompleted, task.StatusInProgress},
		// Same-status requests are rejections, not no-op successes.
		{task.StatusPending, task.StatusPending},
		{task.StatusInProgress, task.StatusInProgress},
		{task.StatusCompleted, task.StatusCompleted},
	}
	for _, tc := range rejected {
		v := ValidateStatusTransition(tc.from, tc.to)
		require.NotNil(t, v, "%s -> %s should be rejected", tc.from, tc.to)
		assert.Equal(t, KindInvalidTransition, v.Kind)
	}

	t.Run("unknown status", func(t *testing.T) {
		v := ValidateStatusTransition(task.StatusPending, task.Status("archived"))
		require.NotNil(t, v)
		assert.Equal(t, KindValidation, v.Kind)
	})
}

func TestValidateDeactivation(t *testing.T) {
	alice := &user.User{ID: "u1", Name: "Alice", Status: user.StatusActive}

	assert.Nil(t, ValidateDeactivation(alice, nil))

	v := ValidateDeactivation(alice, []*task.Task{newTask("t1", "Report", 1, 5)})
	require.NotNil(t, v)
	assert.Equal(t, KindUserHasTasks, v.Kind)
}

func TestAsViolation(t *testing.T) {
	v, ok := AsViolation(New(KindNotFound, "task not found: t1"))
	require.True(t, ok)
	assert.Equal(t, KindNotFound, v.Kind)

	_, ok = AsViolation(assert.AnError)
	assert.False(t, ok)
}
