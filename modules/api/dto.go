package api

import domain "github.com/example/taskflow/domain/task"

// CreateUserBody is the HTTP request for creating a user.
type CreateUserBody struct {
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

// CreateTaskBody is the HTTP request for creating a task. Dates must be
// YYYY-MM-DD; malformed dates fail body parsing.
type CreateTaskBody struct {
	Title     string      `json:"title"`
	StartDate domain.Date `json:"start_date"`
	EndDate   domain.Date `json:"end_date"`
}

// AssignBody is the HTTP request for assigning a task.
type AssignBody struct {
	UserID string `json:"user_id"`
}

// StatusBody is the HTTP request for a status change (task or user).
type StatusBody struct {
	Status string `json:"status"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors. Error carries the
// machine-readable kind, Message the human-readable reason.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
