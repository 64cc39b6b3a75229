package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/taskflow/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ActivityEntry is a logged task activity notification.
type ActivityEntry struct {
	TaskID    string    `json:"task_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationModule keeps an in-memory activity log of task events.
// It subscribes to domain events as a driven adapter.
type NotificationModule struct {
	entries []ActivityEntry
	mu      sync.RWMutex
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)

func NewModule() *NotificationModule {
	return &NotificationModule{
		entries: make([]ActivityEntry, 0),
	}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskAssignedV1, m.handleTaskAssigned, m); err != nil {
		return fmt.Errorf("failed to register TaskAssigned consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskStatusChangedV1, m.handleStatusChanged, m); err != nil {
		return fmt.Errorf("failed to register TaskStatusChanged consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TaskCreated, TaskAssigned, TaskStatusChanged")
	return nil
}

func (m *NotificationModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	log.Printf("[notification] TASK_CREATED: %s (%s to %s)", event.Title, event.StartDate, event.EndDate)
	m.record(event.TaskID, "task_created",
		fmt.Sprintf("Task %q created for %s to %s", event.Title, event.StartDate, event.EndDate))
	return nil
}

func (m *NotificationModule) handleTaskAssigned(_ context.Context, event events.TaskAssignedEvent, _ *mono.Msg) error {
	log.Printf("[notification] TASK_ASSIGNED: task %s -> user %s", event.TaskID, event.UserID)
	m.record(event.TaskID, "task_assigned",
		fmt.Sprintf("Task %q assigned to user %s", event.Title, event.UserID))
	return nil
}

func (m *NotificationModule) handleStatusChanged(_ context.Context, event events.TaskStatusChangedEvent, _ *mono.Msg) error {
	log.Printf("[notification] TASK_STATUS_CHANGED: task %s %s -> %s", event.TaskID, event.From, event.To)
	m.record(event.TaskID, "task_status_changed",
		fmt.Sprintf("Task %s moved from %s to %s", event.TaskID, event.From, event.To))
	return nil
}

func (m *NotificationModule) record(taskID, entryType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, ActivityEntry{
		TaskID:    taskID,
		Type:      entryType,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Activity returns a copy of the recorded activity log.
func (m *NotificationModule) Activity() []ActivityEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]ActivityEntry, len(m.entries))
	copy(result, m.entries)
	return result
}

func (m *NotificationModule) Start(_ context.Context) error {
	log.Println("[notification] Module started - listening for task events")
	return nil
}

func (m *NotificationModule) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}
