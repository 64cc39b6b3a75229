package api

import (
	"log"

	"github.com/example/taskflow/domain/rules"
	"github.com/example/taskflow/modules/task"
	"github.com/example/taskflow/modules/user"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes() {
	m.app.Get("/health", m.healthHandler)

	m.app.Post("/users", m.createUser)
	m.app.Get("/users", m.listUsers)
	m.app.Post("/users/:id/status", m.setUserStatus)

	m.app.Post("/tasks", m.createTask)
	m.app.Get("/tasks", m.listTasks)
	m.app.Get("/tasks/:id", m.getTask)
	m.app.Post("/tasks/:id/assign", m.assignTask)
	m.app.Post("/tasks/:id/status", m.updateTaskStatus)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
		},
	})
}

// createUser handles POST /users.
func (m *APIModule) createUser(c *fiber.Ctx) error {
	var body CreateUserBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err)
	}

	resp, err := m.userAdapter.CreateUser(c.Context(), &user.CreateUserRequest{
		Name:   body.Name,
		Status: body.Status,
	})
	if err != nil {
		return internalError(c, err)
	}
	if resp.Violation != nil {
		return writeViolation(c, resp.Violation)
	}
	return c.Status(fiber.StatusCreated).JSON(resp.User)
}

// listUsers handles GET /users.
func (m *APIModule) listUsers(c *fiber.Ctx) error {
	resp, err := m.userAdapter.ListUsers(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(resp.Users)
}

// setUserStatus handles POST /users/:id/status. Status changes go
// through the rules engine, not user storage directly.
func (m *APIModule) setUserStatus(c *fiber.Ctx) error {
	var body StatusBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err)
	}

	resp, err := m.taskAdapter.SetUserStatus(c.Context(), c.Params("id"), body.Status)
	if err != nil {
		return internalError(c, err)
	}
	if resp.Violation != nil {
		return writeViolation(c, resp.Violation)
	}
	return c.JSON(resp.User)
}

// createTask handles POST /tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var body CreateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err)
	}

	resp, err := m.taskAdapter.CreateTask(c.Context(), &task.CreateTaskRequest{
		Title:     body.Title,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
	})
	if err != nil {
		return internalError(c, err)
	}
	if resp.Violation != nil {
		return writeViolation(c, resp.Violation)
	}
	return c.Status(fiber.StatusCreated).JSON(resp.Task)
}

// listTasks handles GET /tasks.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	resp, err := m.taskAdapter.ListTasks(c.Context(), c.Query("user_id", ""))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(resp.Tasks)
}

// getTask handles GET /tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	resp, err := m.taskAdapter.GetTask(c.Context(), c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	if resp.Violation != nil {
		return writeViolation(c, resp.Violation)
	}
	return c.JSON(resp.Task)
}

// assignTask handles POST /tasks/:id/assign.
func (m *APIModule) assignTask(c *fiber.Ctx) error {
	var body AssignBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err)
	}

	resp, err := m.taskAdapter.AssignTask(c.Context(), c.Params("id"), body.UserID)
	if err != nil {
		return internalError(c, err)
	}
	if resp.Violation != nil {
		return writeViolation(c, resp.Violation)
	}
	return c.JSON(resp.Task)
}

// updateTaskStatus handles POST /tasks/:id/status.
func (m *APIModule) updateTaskStatus(c *fiber.Ctx) error {
	var body StatusBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err)
	}

	resp, err := m.taskAdapter.UpdateTaskStatus(c.Context(), c.Params("id"), body.Status)
	if err != nil {
		return internalError(c, err)
	}
	if resp.Violation != nil {
		return writeViolation(c, resp.Violation)
	}
	return c.JSON(resp.Task)
}

// writeViolation maps a rule violation to its HTTP representation.
func writeViolation(c *fiber.Ctx, v *rules.Violation) error {
	status := fiber.StatusBadRequest
	switch v.Kind {
	case rules.KindNotFound:
		status = fiber.StatusNotFound
	case rules.KindInternal:
		status = fiber.StatusInternalServerError
	}
	log.Printf("[api] RULE_VIOLATION: %s: %s", v.Kind, v.Message)
	return c.Status(status).JSON(ErrorResponse{
		Error:   string(v.Kind),
		Message: v.Message,
	})
}

// badRequest reports an unparseable request body.
func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   string(rules.KindValidation),
		Message: err.Error(),
	})
}

// internalError reports a transport or storage fault. The operation was
// aborted; prior state is intact.
func internalError(c *fiber.Ctx, err error) error {
	log.Printf("[api] internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   string(rules.KindInternal),
		Message: "operation aborted, state unchanged",
	})
}
