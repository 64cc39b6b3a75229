package main

import (
	"context"
	"log"
	"os"

	"github.com/example/taskflow/config"
	"github.com/example/taskflow/modules/api"
	"github.com/example/taskflow/modules/notification"
	"github.com/example/taskflow/modules/task"
	"github.com/example/taskflow/modules/user"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== TaskFlow - Task Scheduling Service ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: independent modules first, then modules with dependencies.
	app.Register(user.NewModule(cfg))         // Entity store (no dependencies)
	app.Register(notification.NewModule())    // Event consumer (subscribes to task events)
	app.Register(task.NewModule(cfg))         // Rules engine (depends on user, emits events)
	app.Register(api.NewModule(cfg))          // Driving adapter (depends on task and user)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Scheduling rules enforced by the task module:")
	log.Println("  - Tasks may only be assigned to active users")
	log.Println("  - A user never holds two tasks with overlapping date ranges")
	log.Println("  - Task status only advances pending -> in_progress -> completed")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost%s):", cfg.HTTPAddr)
	log.Println("  POST   /users             - Create a user")
	log.Println("  GET    /users             - List users")
	log.Println("  POST   /users/:id/status  - Change a user's status")
	log.Println("  POST   /tasks             - Create a task")
	log.Println("  GET    /tasks             - List tasks (?user_id= filters)")
	log.Println("  GET    /tasks/:id         - Get a task by ID")
	log.Println("  POST   /tasks/:id/assign  - Assign a task to a user")
	log.Println("  POST   /tasks/:id/status  - Advance a task's status")
	log.Println("  GET    /health            - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
