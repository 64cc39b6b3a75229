package user

import (
	"errors"
	"fmt"

	domain "github.com/example/taskflow/domain/user"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a user is not found.
var ErrNotFound = errors.New("user not found")

// Repository provides access to user storage. It performs no rule logic.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new user to the database.
func (r *Repository) Create(u *domain.User) error {
	if err := r.db.Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by ID.
func (r *Repository) FindByID(id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// FindAll retrieves all users.
func (r *Repository) FindAll() ([]*domain.User, error) {
	var users []*domain.User
	if err := r.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	return users, nil
}

// Save persists the full state of an existing user.
func (r *Repository) Save(u *domain.User) error {
	if err := r.db.Save(u).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// Count returns the number of stored users.
func (r *Repository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&domain.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
