package user

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// userAdapter wraps ServiceContainer for type-safe cross-module
// communication. This is the adapter that implements UserPort.
type userAdapter struct {
	container mono.ServiceContainer
}

// NewUserAdapter creates a new adapter for user services.
// container is the ServiceContainer from the user module received via
// SetDependencyServiceContainer.
func NewUserAdapter(container mono.ServiceContainer) UserPort {
	if container == nil {
		panic("user adapter requires non-nil ServiceContainer")
	}
	return &userAdapter{container: container}
}

// CreateUser creates a user via the create-user service.
func (a *userAdapter) CreateUser(ctx context.Context, req *CreateUserRequest) (*CreateUserResponse, error) {
	var resp CreateUserResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create-user",
		json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("create-user service call failed: %w", err)
	}
	return &resp, nil
}

// GetUser retrieves a user by ID via the get-user service.
func (a *userAdapter) GetUser(ctx context.Context, userID string) (*GetUserResponse, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-user",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get-user service call failed: %w", err)
	}
	return &resp, nil
}

// ListUsers lists all users via the list-users service.
func (a *userAdapter) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	req := ListUsersRequest{}
	var resp ListUsersResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-users",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-users service call failed: %w", err)
	}
	return &resp, nil
}

// SaveUser persists a user's status via the save-user service.
func (a *userAdapter) SaveUser(ctx context.Context, userID, status string) (*SaveUserResponse, error) {
	req := SaveUserRequest{UserID: userID, Status: status}
	var resp SaveUserResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "save-user",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("save-user service call failed: %w", err)
	}
	return &resp, nil
}
