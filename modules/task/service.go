package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/example/taskflow/domain/rules"
	domain "github.com/example/taskflow/domain/task"
	userdomain "github.com/example/taskflow/domain/user"
	"github.com/example/taskflow/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// timeNow is stubbed in tests.
var timeNow = time.Now

// createTask handles the create-task service request. New tasks start
// pending and unassigned, so no lock is needed.
func (m *TaskModule) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (CreateTaskResponse, error) {
	if v := rules.ValidateTaskCreation(req.Title, req.StartDate, req.EndDate); v != nil {
		return CreateTaskResponse{Violation: v}, nil
	}

	t := &domain.Task{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(req.Title),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.StatusPending,
	}
	if err := m.repo.Create(t); err != nil {
		return CreateTaskResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	m.publishTaskCreated(t)
	return CreateTaskResponse{Task: toTaskInfo(t)}, nil
}

// getTask handles the get-task service request.
func (m *TaskModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (GetTaskResponse, error) {
	t, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return GetTaskResponse{Violation: rules.NotFound("task", req.TaskID)}, nil
		}
		return GetTaskResponse{}, err
	}
	return GetTaskResponse{Task: toTaskInfo(t)}, nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	var (
		tasks []*domain.Task
		err   error
	)
	if req.UserID != "" {
		tasks, err = m.repo.FindByUserID(req.UserID)
	} else {
		tasks, err = m.repo.FindAll()
	}
	if err != nil {
		return ListTasksResponse{}, err
	}

	resp := ListTasksResponse{
		Tasks: make([]TaskInfo, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, *toTaskInfo(t))
	}
	return resp, nil
}

// assignTask handles the assign-task service request. The task and the
// target user are locked for the whole read-validate-write sequence so
// concurrent assignments against the same user serialize.
func (m *TaskModule) assignTask(ctx context.Context, req AssignTaskRequest, _ *mono.Msg) (AssignTaskResponse, error) {
	release := m.locks.Acquire(taskKey(req.TaskID), userKey(req.UserID))
	defer release()

	t, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AssignTaskResponse{Violation: rules.NotFound("task", req.TaskID)}, nil
		}
		return AssignTaskResponse{}, err
	}

	target, v, err := m.loadUser(ctx, req.UserID)
	if err != nil {
		return AssignTaskResponse{}, err
	}
	if v != nil {
		return AssignTaskResponse{Violation: v}, nil
	}

	held, err := m.repo.FindByUserID(req.UserID)
	if err != nil {
		return AssignTaskResponse{}, err
	}

	if v := rules.ValidateAssignment(t, target, held); v != nil {
		return AssignTaskResponse{Violation: v}, nil
	}

	t.UserID = &req.UserID
	if err := m.repo.Save(t); err != nil {
		return AssignTaskResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	m.publishTaskAssigned(t)
	return AssignTaskResponse{Task: toTaskInfo(t)}, nil
}

// updateTaskStatus handles the update-task-status service request. The
// task is locked so concurrent status changes serialize.
func (m *TaskModule) updateTaskStatus(_ context.Context, req UpdateTaskStatusRequest, _ *mono.Msg) (UpdateTaskStatusResponse, error) {
	release := m.locks.Acquire(taskKey(req.TaskID))
	defer release()

	t, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return UpdateTaskStatusResponse{Violation: rules.NotFound("task", req.TaskID)}, nil
		}
		return UpdateTaskStatusResponse{}, err
	}

	requested := domain.Status(req.Status)
	if v := rules.ValidateStatusTransition(t.Status, requested); v != nil {
		return UpdateTaskStatusResponse{Violation: v}, nil
	}

	from := t.Status
	t.Status = requested
	if err := m.repo.Save(t); err != nil {
		return UpdateTaskStatusResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	m.publishStatusChanged(t, from)
	return UpdateTaskStatusResponse{Task: toTaskInfo(t)}, nil
}

// setUserStatus handles the set-user-status service request. It lives in
// this module rather than the user module because deactivation must
// serialize against assignment under the same per-user lock: otherwise a
// concurrent assign could attach a task to a user mid-deactivation.
func (m *TaskModule) setUserStatus(ctx context.Context, req SetUserStatusRequest, _ *mono.Msg) (SetUserStatusResponse, error) {
	requested := userdomain.Status(req.Status)
	if !requested.Valid() {
		return SetUserStatusResponse{
			Violation: rules.New(rules.KindValidation, "unknown status %q", req.Status),
		}, nil
	}

	release := m.locks.Acquire(userKey(req.UserID))
	defer release()

	target, v, err := m.loadUser(ctx, req.UserID)
	if err != nil {
		return SetUserStatusResponse{}, err
	}
	if v != nil {
		return SetUserStatusResponse{Violation: v}, nil
	}

	if requested == userdomain.StatusInactive {
		held, err := m.repo.FindByUserID(req.UserID)
		if err != nil {
			return SetUserStatusResponse{}, err
		}
		if v := rules.ValidateDeactivation(target, held); v != nil {
			return SetUserStatusResponse{Violation: v}, nil
		}
	}

	saved, err := m.userPort.SaveUser(ctx, req.UserID, string(requested))
	if err != nil {
		return SetUserStatusResponse{}, err
	}
	if saved.Violation != nil {
		return SetUserStatusResponse{Violation: saved.Violation}, nil
	}
	return SetUserStatusResponse{User: saved.User}, nil
}

// loadUser fetches a user snapshot through the user port and converts it
// to the domain form the rules functions expect.
func (m *TaskModule) loadUser(ctx context.Context, userID string) (*userdomain.User, *rules.Violation, error) {
	resp, err := m.userPort.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}
	if resp.Violation != nil {
		return nil, resp.Violation, nil
	}
	return &userdomain.User{
		ID:     resp.User.ID,
		Name:   resp.User.Name,
		Status: resp.User.Status,
	}, nil, nil
}

// Event publishing is best-effort; failures are logged, never surfaced.

func (m *TaskModule) publishTaskCreated(t *domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskCreatedEvent{
		TaskID:    t.ID,
		Title:     t.Title,
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		CreatedAt: t.CreatedAt,
	}
	if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskCreated event for task %s: %v", t.ID, err)
	}
}

func (m *TaskModule) publishTaskAssigned(t *domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskAssignedEvent{
		TaskID:     t.ID,
		Title:      t.Title,
		UserID:     t.AssignedTo(),
		AssignedAt: timeNow(),
	}
	if err := events.TaskAssignedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskAssigned event for task %s: %v", t.ID, err)
	}
}

func (m *TaskModule) publishStatusChanged(t *domain.Task, from domain.Status) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskStatusChangedEvent{
		TaskID:    t.ID,
		From:      string(from),
		To:        string(t.Status),
		ChangedAt: timeNow(),
	}
	if err := events.TaskStatusChangedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskStatusChanged event for task %s: %v", t.ID, err)
	}
}
