package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/taskflow/config"
	"github.com/example/taskflow/domain/rules"
	domain "github.com/example/taskflow/domain/task"
	userdomain "github.com/example/taskflow/domain/user"
	"github.com/example/taskflow/modules/task"
	"github.com/example/taskflow/modules/user"
)

// fakeTaskPort stubs the rules engine behind the HTTP layer. Each test
// sets only the functions it exercises.
type fakeTaskPort struct {
	createTask       func(ctx context.Context, req *task.CreateTaskRequest) (*task.CreateTaskResponse, error)
	getTask          func(ctx context.Context, taskID string) (*task.GetTaskResponse, error)
	listTasks        func(ctx context.Context, userID string) (*task.ListTasksResponse, error)
	assignTask       func(ctx context.Context, taskID, userID string) (*task.AssignTaskResponse, error)
	updateTaskStatus func(ctx context.Context, taskID, status string) (*task.UpdateTaskStatusResponse, error)
	setUserStatus    func(ctx context.Context, userID, status string) (*task.SetUserStatusResponse, error)
}

func (f *fakeTaskPort) CreateTask(ctx context.Context, req *task.CreateTaskRequest) (*task.CreateTaskResponse, error) {
	return f.createTask(ctx, req)
}

func (f *fakeTaskPort) GetTask(ctx context.Context, taskID string) (*task.GetTaskResponse, error) {
	return f.getTask(ctx, taskID)
}

func (f *fakeTaskPort) ListTasks(ctx context.Context, userID string) (*task.ListTasksResponse, error) {
	return f.listTasks(ctx, userID)
}

func (f *fakeTaskPort) AssignTask(ctx context.Context, taskID, userID string) (*task.AssignTaskResponse, error) {
	return f.assignTask(ctx, taskID, userID)
}

func (f *fakeTaskPort) UpdateTaskStatus(ctx context.Context, taskID, status string) (*task.UpdateTaskStatusResponse, error) {
	return f.updateTaskStatus(ctx, taskID, status)
}

func (f *fakeTaskPort) SetUserStatus(ctx context.Context, userID, status string) (*task.SetUserStatusResponse, error) {
	return f.setUserStatus(ctx, userID, status)
}

// fakeUserStorePort stubs user storage behind the HTTP layer.
type fakeUserStorePort struct {
	createUser func(ctx context.Context, req *user.CreateUserRequest) (*user.CreateUserResponse, error)
	getUser    func(ctx context.Context, userID string) (*user.GetUserResponse, error)
	listUsers  func(ctx context.Context) (*user.ListUsersResponse, error)
	saveUser   func(ctx context.Context, userID, status string) (*user.SaveUserResponse, error)
}

func (f *fakeUserStorePort) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.CreateUserResponse, error) {
	return f.createUser(ctx, req)
}

func (f *fakeUserStorePort) GetUser(ctx context.Context, userID string) (*user.GetUserResponse, error) {
	return f.getUser(ctx, userID)
}

func (f *fakeUserStorePort) ListUsers(ctx context.Context) (*user.ListUsersResponse, error) {
	return f.listUsers(ctx)
}

func (f *fakeUserStorePort) SaveUser(ctx context.Context, userID, status string) (*user.SaveUserResponse, error) {
	return f.saveUser(ctx, userID, status)
}

// newTestApp wires the routes onto an in-process Fiber app without
// starting a listener.
func newTestApp(taskPort task.TaskPort, userPort user.UserPort) *fiber.App {
	m := &APIModule{
		cfg:         config.Config{HTTPAddr: ":0"},
		taskAdapter: taskPort,
		userAdapter: userPort,
	}
	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})
	m.setupRoutes()
	return m.app
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func rawJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(&fakeTaskPort{}, &fakeUserStorePort{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateTaskEndpoint(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		tp := &fakeTaskPort{
			createTask: func(_ context.Context, req *task.CreateTaskRequest) (*task.CreateTaskResponse, error) {
				return &task.CreateTaskResponse{Task: &task.TaskInfo{
					ID:        "t-1",
					Title:     req.Title,
					StartDate: req.StartDate,
					EndDate:   req.EndDate,
					Status:    domain.StatusPending,
				}}, nil
			},
		}
		app := newTestApp(tp, &fakeUserStorePort{})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/tasks", fiber.Map{
			"title": "Report", "start_date": "2024-01-01", "end_date": "2024-01-05",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var info task.TaskInfo
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
		assert.Equal(t, "t-1", info.ID)
		assert.Equal(t, "2024-01-01", info.StartDate.String())
	})

	t.Run("malformed date is a validation error", func(t *testing.T) {
		app := newTestApp(&fakeTaskPort{}, &fakeUserStorePort{})

		resp, err := app.Test(rawJSONRequest(http.MethodPost, "/tasks",
			`{"title":"Report","start_date":"01/05/2024","end_date":"2024-01-05"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, string(rules.KindValidation), decodeError(t, resp).Error)
	})

	t.Run("rule violation maps to 400", func(t *testing.T) {
		tp := &fakeTaskPort{
			createTask: func(context.Context, *task.CreateTaskRequest) (*task.CreateTaskResponse, error) {
				return &task.CreateTaskResponse{
					Violation: rules.New(rules.KindValidation, "end_date before start_date"),
				}, nil
			},
		}
		app := newTestApp(tp, &fakeUserStorePort{})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/tasks", fiber.Map{
			"title": "Report", "start_date": "2024-01-10", "end_date": "2024-01-01",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		e := decodeError(t, resp)
		assert.Equal(t, string(rules.KindValidation), e.Error)
		assert.Contains(t, e.Message, "end_date")
	})
}

func TestGetTaskEndpoint(t *testing.T) {
	tp := &fakeTaskPort{
		getTask: func(_ context.Context, taskID string) (*task.GetTaskResponse, error) {
			if taskID != "t-1" {
				return &task.GetTaskResponse{Violation: rules.NotFound("task", taskID)}, nil
			}
			return &task.GetTaskResponse{Task: &task.TaskInfo{ID: "t-1", Title: "Report"}}, nil
		},
	}
	app := newTestApp(tp, &fakeUserStorePort{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/tasks/t-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/tasks/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, string(rules.KindNotFound), decodeError(t, resp).Error)
}

func TestAssignTaskEndpoint(t *testing.T) {
	t.Run("schedule conflict maps to 400", func(t *testing.T) {
		tp := &fakeTaskPort{
			assignTask: func(context.Context, string, string) (*task.AssignTaskResponse, error) {
				return &task.AssignTaskResponse{
					Violation: rules.New(rules.KindScheduleConflict, "overlaps with task \"Report\""),
				}, nil
			},
		}
		app := newTestApp(tp, &fakeUserStorePort{})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/tasks/t-2/assign", AssignBody{UserID: "u-1"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		e := decodeError(t, resp)
		assert.Equal(t, string(rules.KindScheduleConflict), e.Error)
		assert.Contains(t, e.Message, "Report")
	})

	t.Run("inactive user maps to 400", func(t *testing.T) {
		tp := &fakeTaskPort{
			assignTask: func(context.Context, string, string) (*task.AssignTaskResponse, error) {
				return &task.AssignTaskResponse{
					Violation: rules.New(rules.KindInactiveUser, "user \"Bob\" is inactive"),
				}, nil
			},
		}
		app := newTestApp(tp, &fakeUserStorePort{})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/tasks/t-1/assign", AssignBody{UserID: "u-2"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, string(rules.KindInactiveUser), decodeError(t, resp).Error)
	})

	t.Run("transport fault maps to 500", func(t *testing.T) {
		tp := &fakeTaskPort{
			assignTask: func(context.Context, string, string) (*task.AssignTaskResponse, error) {
				return nil, assert.AnError
			},
		}
		app := newTestApp(tp, &fakeUserStorePort{})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/tasks/t-1/assign", AssignBody{UserID: "u-1"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, string(rules.KindInternal), decodeError(t, resp).Error)
	})
}

func TestUpdateTaskStatusEndpoint(t *testing.T) {
	tp := &fakeTaskPort{
		updateTaskStatus: func(_ context.Context, taskID, status string) (*task.UpdateTaskStatusResponse, error) {
			if status != "in_progress" {
				return &task.UpdateTaskStatusResponse{
					Violation: rules.New(rules.KindInvalidTransition, "cannot change status from pending to %s", status),
				}, nil
			}
			return &task.UpdateTaskStatusResponse{Task: &task.TaskInfo{ID: taskID, Status: domain.StatusInProgress}}, nil
		},
	}
	app := newTestApp(tp, &fakeUserStorePort{})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/tasks/t-1/status", StatusBody{Status: "in_progress"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/tasks/t-1/status", StatusBody{Status: "completed"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, string(rules.KindInvalidTransition), decodeError(t, resp).Error)
}

func TestListTasksEndpoint(t *testing.T) {
	tp := &fakeTaskPort{
		listTasks: func(_ context.Context, userID string) (*task.ListTasksResponse, error) {
			tasks := []task.TaskInfo{{ID: "t-1"}, {ID: "t-2"}}
			if userID == "u-1" {
				tasks = tasks[:1]
			}
			return &task.ListTasksResponse{Tasks: tasks, Total: len(tasks)}, nil
		},
	}
	app := newTestApp(tp, &fakeUserStorePort{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/tasks", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var all []task.TaskInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	assert.Len(t, all, 2)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/tasks?user_id=u-1", nil))
	require.NoError(t, err)

	var mine []task.TaskInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mine))
	assert.Len(t, mine, 1)
}

func TestCreateUserEndpoint(t *testing.T) {
	up := &fakeUserStorePort{
		createUser: func(_ context.Context, req *user.CreateUserRequest) (*user.CreateUserResponse, error) {
			if req.Name == "" {
				return &user.CreateUserResponse{
					Violation: rules.New(rules.KindValidation, "name must not be blank"),
				}, nil
			}
			return &user.CreateUserResponse{User: &user.UserInfo{
				ID: "u-1", Name: req.Name, Status: userdomain.StatusActive, CreatedAt: time.Now(),
			}}, nil
		},
	}
	app := newTestApp(&fakeTaskPort{}, up)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/users", CreateUserBody{Name: "Alice"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Alice")

	resp, err = app.Test(jsonRequest(http.MethodPost, "/users", CreateUserBody{Name: ""}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, string(rules.KindValidation), decodeError(t, resp).Error)
}

func TestSetUserStatusEndpoint(t *testing.T) {
	t.Run("deactivation blocked while tasks are held", func(t *testing.T) {
		tp := &fakeTaskPort{
			setUserStatus: func(context.Context, string, string) (*task.SetUserStatusResponse, error) {
				return &task.SetUserStatusResponse{
					Violation: rules.New(rules.KindUserHasTasks, "user holds 2 assigned tasks"),
				}, nil
			},
		}
		app := newTestApp(tp, &fakeUserStorePort{})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/users/u-1/status", StatusBody{Status: "inactive"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, string(rules.KindUserHasTasks), decodeError(t, resp).Error)
	})

	t.Run("accepted change returns the user", func(t *testing.T) {
		tp := &fakeTaskPort{
			setUserStatus: func(_ context.Context, userID, status string) (*task.SetUserStatusResponse, error) {
				return &task.SetUserStatusResponse{User: &user.UserInfo{
					ID: userID, Name: "Alice", Status: userdomain.Status(status),
				}}, nil
			},
		}
		app := newTestApp(tp, &fakeUserStorePort{})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/users/u-1/status", StatusBody{Status: "inactive"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var info user.UserInfo
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
		assert.Equal(t, userdomain.StatusInactive, info.Status)
	})
}
