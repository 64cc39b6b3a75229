package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/example/taskflow/domain/task"
	"github.com/example/taskflow/events"
)

func TestActivityLogRecordsEvents(t *testing.T) {
	m := NewModule()
	ctx := context.Background()

	require.NoError(t, m.handleTaskCreated(ctx, events.TaskCreatedEvent{
		TaskID:    "t-1",
		Title:     "Report",
		StartDate: domain.NewDate(2024, time.January, 1),
		EndDate:   domain.NewDate(2024, time.January, 5),
	}, nil))
	require.NoError(t, m.handleTaskAssigned(ctx, events.TaskAssignedEvent{
		TaskID: "t-1", Title: "Report", UserID: "u-1",
	}, nil))
	require.NoError(t, m.handleStatusChanged(ctx, events.TaskStatusChangedEvent{
		TaskID: "t-1", From: "pending", To: "in_progress",
	}, nil))

	entries := m.Activity()
	require.Len(t, entries, 3)
	assert.Equal(t, "task_created", entries[0].Type)
	assert.Equal(t, "task_assigned", entries[1].Type)
	assert.Equal(t, "task_status_changed", entries[2].Type)
	assert.Contains(t, entries[1].Message, "u-1")
	assert.Contains(t, entries[2].Message, "in_progress")
}

func TestActivityReturnsCopy(t *testing.T) {
	m := NewModule()

	require.NoError(t, m.handleTaskCreated(context.Background(), events.TaskCreatedEvent{
		TaskID: "t-1", Title: "Report",
	}, nil))

	entries := m.Activity()
	entries[0].Message = "mutated"

	assert.NotEqual(t, "mutated", m.Activity()[0].Message)
}

func TestRecordIsConcurrencySafe(t *testing.T) {
	m := NewModule()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.handleTaskAssigned(context.Background(), events.TaskAssignedEvent{
				TaskID: "t-1", Title: "Report", UserID: "u-1",
			}, nil)
		}()
	}
	wg.Wait()

	assert.Len(t, m.Activity(), writers)
}
