package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/taskflow/config"
	"github.com/example/taskflow/events"
	"github.com/example/taskflow/modules/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/taskflow/domain/task"
)

// TaskModule is the rules engine (core domain). Every mutating operation
// runs as a per-entity critical section: load snapshot, validate against
// the scheduling rules, then commit or reject atomically.
type TaskModule struct {
	cfg      config.Config
	db       *gorm.DB
	repo     *Repository
	userPort user.UserPort
	eventBus mono.EventBus
	locks    *entityLocker
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.DependentModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule(cfg config.Config) *TaskModule {
	return &TaskModule{
		cfg:   cfg,
		locks: newEntityLocker(),
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// Dependencies returns the list of module dependencies.
func (m *TaskModule) Dependencies() []string {
	return []string{"user"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *TaskModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "user" {
		m.userPort = user.NewUserAdapter(container)
	}
}

// SetEventBus receives the event bus from the framework.
func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskAssignedV1.ToBase(),
		events.TaskStatusChangedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func() error{
		"create-task": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "create-task", json.Unmarshal, json.Marshal, m.createTask)
		},
		"get-task": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "get-task", json.Unmarshal, json.Marshal, m.getTask)
		},
		"list-tasks": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "list-tasks", json.Unmarshal, json.Marshal, m.listTasks)
		},
		"assign-task": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "assign-task", json.Unmarshal, json.Marshal, m.assignTask)
		},
		"update-task-status": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "update-task-status", json.Unmarshal, json.Marshal, m.updateTaskStatus)
		},
		"set-user-status": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "set-user-status", json.Unmarshal, json.Marshal, m.setUserStatus)
		},
	}

	for name, register := range services {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[task] Registered services: create-task, get-task, list-tasks, assign-task, update-task-status, set-user-status")
	return nil
}

// Start opens the database connection and runs migrations.
func (m *TaskModule) Start(_ context.Context) error {
	if m.userPort == nil {
		return fmt.Errorf("userPort dependency not set")
	}
	if m.eventBus == nil {
		log.Println("[task] Warning: eventBus not set, events will not be published")
	}

	logLevel := logger.Silent
	if m.cfg.DBDebug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := m.db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.repo = NewRepository(m.db)

	if m.cfg.SeedDemoData {
		if err := m.seedDemoTasks(); err != nil {
			return fmt.Errorf("failed to seed demo tasks: %w", err)
		}
	}

	log.Println("[task] Module started (depends on: user)")
	return nil
}

// Stop closes the database connection.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health reports the health of the module.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("failed to get sql.DB: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("database ping failed: %v", err)}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"driver": "sqlite", "path": m.cfg.DBPath},
	}
}

// seedDemoTasks inserts demo tasks on first start. IDs of the demo users
// seeded by the user module are fixed, so the references line up.
func (m *TaskModule) seedDemoTasks() error {
	n, err := m.repo.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	alice, bob := "user-1", "user-2"
	today := domain.DateOf(timeNow())
	demoTasks := []*domain.Task{
		{
			ID: "task-1", Title: "Design System Review",
			StartDate: today, EndDate: today.AddDays(2),
			Status: domain.StatusPending, UserID: &alice,
		},
		{
			ID: "task-2", Title: "API Integration",
			StartDate: today.AddDays(1), EndDate: today.AddDays(5),
			Status: domain.StatusPending, UserID: &bob,
		},
		{
			ID: "task-3", Title: "Documentation",
			StartDate: today.AddDays(3), EndDate: today.AddDays(4),
			Status: domain.StatusPending,
		},
	}
	for _, t := range demoTasks {
		if err := m.repo.Create(t); err != nil {
			return err
		}
	}
	log.Printf("[task] Seeded %d demo tasks", len(demoTasks))
	return nil
}
