package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module
// communication. This is the adapter that implements TaskPort.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the task module received via
// SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// CreateTask creates a task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, req *CreateTaskRequest) (*CreateTaskResponse, error) {
	var resp CreateTaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create-task",
		json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("create-task service call failed: %w", err)
	}
	return &resp, nil
}

// GetTask retrieves a task by ID via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, taskID string) (*GetTaskResponse, error) {
	req := GetTaskRequest{TaskID: taskID}
	var resp GetTaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-task",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get-task service call failed: %w", err)
	}
	return &resp, nil
}

// ListTasks lists tasks, optionally filtered by user, via the list-tasks
// service.
func (a *taskAdapter) ListTasks(ctx context.Context, userID string) (*ListTasksResponse, error) {
	req := ListTasksRequest{UserID: userID}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-tasks",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-tasks service call failed: %w", err)
	}
	return &resp, nil
}

// AssignTask assigns a task to a user via the assign-task service.
func (a *taskAdapter) AssignTask(ctx context.Context, taskID, userID string) (*AssignTaskResponse, error) {
	req := AssignTaskRequest{TaskID: taskID, UserID: userID}
	var resp AssignTaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "assign-task",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("assign-task service call failed: %w", err)
	}
	return &resp, nil
}

// UpdateTaskStatus advances a task's status via the update-task-status
// service.
func (a *taskAdapter) UpdateTaskStatus(ctx context.Context, taskID, status string) (*UpdateTaskStatusResponse, error) {
	req := UpdateTaskStatusRequest{TaskID: taskID, Status: status}
	var resp UpdateTaskStatusResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update-task-status",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("update-task-status service call failed: %w", err)
	}
	return &resp, nil
}

// SetUserStatus changes a user's status via the set-user-status service.
func (a *taskAdapter) SetUserStatus(ctx context.Context, userID, status string) (*SetUserStatusResponse, error) {
	req := SetUserStatusRequest{UserID: userID, Status: status}
	var resp SetUserStatusResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "set-user-status",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("set-user-status service call failed: %w", err)
	}
	return &resp, nil
}
