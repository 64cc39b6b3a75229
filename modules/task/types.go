package task

import (
	"context"
	"time"

	"github.com/example/taskflow/domain/rules"
	domain "github.com/example/taskflow/domain/task"
	"github.com/example/taskflow/modules/user"
)

// TaskInfo represents a task in service responses. UserID is null when
// the task is unassigned.
type TaskInfo struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	StartDate domain.Date   `json:"start_date"`
	EndDate   domain.Date   `json:"end_date"`
	Status    domain.Status `json:"status"`
	UserID    *string       `json:"user_id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Title     string      `json:"title"`
	StartDate domain.Date `json:"start_date"`
	EndDate   domain.Date `json:"end_date"`
}

// CreateTaskResponse is the response for creating a task.
type CreateTaskResponse struct {
	Task      *TaskInfo        `json:"task,omitempty"`
	Violation *rules.Violation `json:"violation,omitempty"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID string `json:"task_id"`
}

// GetTaskResponse is the response for getting a task.
type GetTaskResponse struct {
	Task      *TaskInfo        `json:"task,omitempty"`
	Violation *rules.Violation `json:"violation,omitempty"`
}

// ListTasksRequest is the request for listing tasks, optionally filtered
// by assigned user.
type ListTasksRequest struct {
	UserID string `json:"user_id,omitempty"`
}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []TaskInfo `json:"tasks"`
	Total int        `json:"total"`
}

// AssignTaskRequest is the request for assigning a task to a user.
type AssignTaskRequest struct {
	TaskID string `json:"task_id"`
	UserID string `json:"user_id"`
}

// AssignTaskResponse is the response for assigning a task.
type AssignTaskResponse struct {
	Task      *TaskInfo        `json:"task,omitempty"`
	Violation *rules.Violation `json:"violation,omitempty"`
}

// UpdateTaskStatusRequest is the request for advancing a task's status.
type UpdateTaskStatusRequest struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// UpdateTaskStatusResponse is the response for a status change.
type UpdateTaskStatusResponse struct {
	Task      *TaskInfo        `json:"task,omitempty"`
	Violation *rules.Violation `json:"violation,omitempty"`
}

// SetUserStatusRequest is the request for changing a user's status. The
// operation lives in this module so it serializes with assignment under
// the same per-user lock.
type SetUserStatusRequest struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// SetUserStatusResponse is the response for a user status change.
type SetUserStatusResponse struct {
	User      *user.UserInfo   `json:"user,omitempty"`
	Violation *rules.Violation `json:"violation,omitempty"`
}

// TaskPort defines the interface driving adapters use to reach the rules
// engine (hexagonal port).
type TaskPort interface {
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*CreateTaskResponse, error)
	GetTask(ctx context.Context, taskID string) (*GetTaskResponse, error)
	ListTasks(ctx context.Context, userID string) (*ListTasksResponse, error)
	AssignTask(ctx context.Context, taskID, userID string) (*AssignTaskResponse, error)
	UpdateTaskStatus(ctx context.Context, taskID, status string) (*UpdateTaskStatusResponse, error)
	SetUserStatus(ctx context.Context, userID, status string) (*SetUserStatusResponse, error)
}

// toTaskInfo converts a domain Task to its response form.
func toTaskInfo(t *domain.Task) *TaskInfo {
	return &TaskInfo{
		ID:        t.ID,
		Title:     t.Title,
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		Status:    t.Status,
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
