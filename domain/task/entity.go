package task

import "time"

// Status represents the state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// successor is the transition table: each status maps to the only status
// it may advance to. Completed is terminal and has no entry.
var successor = map[Status]Status{
	StatusPending:    StatusInProgress,
	StatusInProgress: StatusCompleted,
}

// Valid reports whether s is a known task status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is the immediate successor of s.
// Repeating the current status does not count as a transition.
func (s Status) CanTransitionTo(next Status) bool {
	return successor[s] == next
}

// Task is the core domain entity representing a unit of work with a
// date range, a status and an optional assigned user.
type Task struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	StartDate Date      `gorm:"type:date;not null" json:"start_date"`
	EndDate   Date      `gorm:"type:date;not null" json:"end_date"`
	Status    Status    `gorm:"size:16;not null;default:pending" json:"status"`
	UserID    *string   `gorm:"size:36;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}

// Assigned reports whether the task is held by a user.
func (t *Task) Assigned() bool {
	return t.UserID != nil && *t.UserID != ""
}

// AssignedTo returns the holder's user ID, or "" when unassigned.
func (t *Task) AssignedTo() string {
	if t.UserID == nil {
		return ""
	}
	return *t.UserID
}

// Overlaps reports whether the date ranges of t and other intersect.
// Bounds are inclusive: tasks sharing a single day overlap.
func (t *Task) Overlaps(other *Task) bool {
	return Overlaps(t.StartDate, t.EndDate, other.StartDate, other.EndDate)
}
