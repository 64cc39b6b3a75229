package user

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/taskflow/config"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/taskflow/domain/user"
)

// UserModule provides user storage services backed by GORM + SQLite.
// It holds no scheduling rules: status changes are validated by the task
// module and persisted here via the save-user service.
type UserModule struct {
	cfg  config.Config
	db   *gorm.DB
	repo *Repository
}

// Compile-time interface checks.
var _ mono.Module = (*UserModule)(nil)
var _ mono.ServiceProviderModule = (*UserModule)(nil)
var _ mono.HealthCheckableModule = (*UserModule)(nil)

// NewModule creates a new UserModule.
func NewModule(cfg config.Config) *UserModule {
	return &UserModule{cfg: cfg}
}

// Name returns the module name.
func (m *UserModule) Name() string {
	return "user"
}

// RegisterServices registers request-reply services in the service container.
func (m *UserModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-user", json.Unmarshal, json.Marshal, m.createUser,
	); err != nil {
		return fmt.Errorf("failed to register create-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-user", json.Unmarshal, json.Marshal, m.getUser,
	); err != nil {
		return fmt.Errorf("failed to register get-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-users", json.Unmarshal, json.Marshal, m.listUsers,
	); err != nil {
		return fmt.Errorf("failed to register list-users service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "save-user", json.Unmarshal, json.Marshal, m.saveUser,
	); err != nil {
		return fmt.Errorf("failed to register save-user service: %w", err)
	}

	log.Printf("[user] Registered services: create-user, get-user, list-users, save-user")
	return nil
}

// Start opens the database connection and runs migrations.
func (m *UserModule) Start(_ context.Context) error {
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

	if err := m.db.AutoMigrate(&domain.User{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.repo = NewRepository(m.db)

	if m.cfg.SeedDemoData {
		if err := m.seedDemoUsers(); err != nil {
			return fmt.Errorf("failed to seed demo users: %w", err)
		}
	}

	log.Println("[user] Module started")
	return nil
}

// Stop closes the database connection.
func (m *UserModule) Stop(_ context.Context) error {
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
	log.Println("[user] Module stopped")
	return nil
}

// Health reports the health of the module.
func (m *UserModule) Health(ctx context.Context) mono.HealthStatus {
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

// seedDemoUsers inserts well-known demo users on first start.
func (m *UserModule) seedDemoUsers() error {
	n, err := m.repo.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	demoUsers := []*domain.User{
		{ID: "user-1", Name: "Alice Smith", Status: domain.StatusActive},
		{ID: "user-2", Name: "Bob Jones", Status: domain.StatusActive},
		{ID: "user-3", Name: "Charlie Davis", Status: domain.StatusInactive},
	}
	for _, u := range demoUsers {
		if err := m.repo.Create(u); err != nil {
			return err
		}
	}
	log.Printf("[user] Seeded %d demo users", len(demoUsers))
	return nil
}
