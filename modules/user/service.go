package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/taskflow/domain/rules"
	domain "github.com/example/taskflow/domain/user"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// createUser handles the create-user service request.
func (m *UserModule) createUser(_ context.Context, req CreateUserRequest, _ *mono.Msg) (CreateUserResponse, error) {
	if v := rules.ValidateUserName(req.Name); v != nil {
		return CreateUserResponse{Violation: v}, nil
	}

	status := domain.StatusActive
	if req.Status != "" {
		status = domain.Status(req.Status)
		if !status.Valid() {
			return CreateUserResponse{
				Violation: rules.New(rules.KindValidation, "unknown status %q", req.Status),
			}, nil
		}
	}

	u := &domain.User{
		ID:     uuid.New().String(),
		Name:   strings.TrimSpace(req.Name),
		Status: status,
	}
	if err := m.repo.Create(u); err != nil {
		return CreateUserResponse{}, fmt.Errorf("failed to save user: %w", err)
	}

	return CreateUserResponse{User: toUserInfo(u)}, nil
}

// getUser handles the get-user service request.
func (m *UserModule) getUser(_ context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	u, err := m.repo.FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return GetUserResponse{Violation: rules.NotFound("user", req.UserID)}, nil
		}
		return GetUserResponse{}, err
	}
	return GetUserResponse{User: toUserInfo(u)}, nil
}

// listUsers handles the list-users service request.
func (m *UserModule) listUsers(_ context.Context, _ ListUsersRequest, _ *mono.Msg) (ListUsersResponse, error) {
	users, err := m.repo.FindAll()
	if err != nil {
		return ListUsersResponse{}, err
	}

	resp := ListUsersResponse{
		Users: make([]UserInfo, 0, len(users)),
		Total: len(users),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, *toUserInfo(u))
	}
	return resp, nil
}

// saveUser handles the save-user service request. It is a plain keyed
// write; the caller has already validated the change.
func (m *UserModule) saveUser(_ context.Context, req SaveUserRequest, _ *mono.Msg) (SaveUserResponse, error) {
	u, err := m.repo.FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return SaveUserResponse{Violation: rules.NotFound("user", req.UserID)}, nil
		}
		return SaveUserResponse{}, err
	}

	status := domain.Status(req.Status)
	if !status.Valid() {
		return SaveUserResponse{
			Violation: rules.New(rules.KindValidation, "unknown status %q", req.Status),
		}, nil
	}

	u.Status = status
	if err := m.repo.Save(u); err != nil {
		return SaveUserResponse{}, fmt.Errorf("failed to save user: %w", err)
	}
	return SaveUserResponse{User: toUserInfo(u)}, nil
}
