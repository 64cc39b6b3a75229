package user

import "time"

// Status represents the availability of a user for assignment.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is a known user status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User is the core domain entity representing an assignable person.
type User struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Status    Status    `gorm:"size:16;not null;default:active" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Active reports whether the user may receive task assignments.
func (u *User) Active() bool {
	return u.Status == StatusActive
}
