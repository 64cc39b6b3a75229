package user

import (
	"context"
	"time"

	"github.com/example/taskflow/domain/rules"
	domain "github.com/example/taskflow/domain/user"
)

// UserInfo represents a user in service responses.
type UserInfo struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Status    domain.Status `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CreateUserRequest is the request for creating a user.
type CreateUserRequest struct {
	Name string `json:"name"`
	// Status is optional; blank defaults to active.
	Status string `json:"status,omitempty"`
}

// CreateUserResponse is the response for creating a user.
type CreateUserResponse struct {
	User      *UserInfo        `json:"user,omitempty"`
	Violation *rules.Violation `json:"violation,omitempty"`
}

// GetUserRequest is the request for getting a user.
type GetUserRequest struct {
	UserID string `json:"user_id"`
}

// GetUserResponse is the response for getting a user.
type GetUserResponse struct {
	User      *UserInfo        `json:"user,omitempty"`
	Violation *rules.Violation `json:"violation,omitempty"`
}

// ListUsersRequest is the request for listing users.
type ListUsersRequest struct{}

// ListUsersResponse is the response for listing users.
type ListUsersResponse struct {
	Users []UserInfo `json:"users"`
	Total int        `json:"total"`
}

// SaveUserRequest is the request for persisting a user's status. This is
// a plain store write: rule checks happen in the task module before it
// calls this service.
type SaveUserRequest struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// SaveUserResponse is the response for saving a user.
type SaveUserResponse struct {
	User      *UserInfo        `json:"user,omitempty"`
	Violation *rules.Violation `json:"violation,omitempty"`
}

// UserPort defines the interface other modules use to reach user storage
// (hexagonal port).
type UserPort interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*CreateUserResponse, error)
	GetUser(ctx context.Context, userID string) (*GetUserResponse, error)
	ListUsers(ctx context.Context) (*ListUsersResponse, error)
	SaveUser(ctx context.Context, userID, status string) (*SaveUserResponse, error)
}

// toUserInfo converts a domain User to its response form.
func toUserInfo(u *domain.User) *UserInfo {
	return &UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
