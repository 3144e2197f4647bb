// Package store persists users, projects and tasks with ownership
// scoping: every query, update and delete is restricted to records
// whose owner field equals the calling user's id. A record that exists
// but belongs to someone else is reported exactly like a record that
// does not exist, so ownership can never be probed through the API.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dhruv-809/mini-project-manager/models"
)

// ErrNotFound is returned when a record is absent or owned by another
// user. The two causes are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned by CreateUser when the email is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid field: %s", e.Field)
}

// ProjectUpdate is a partial update; nil fields are left untouched.
type ProjectUpdate struct {
	Title       *string
	Description *string
}

// TaskUpdate is a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	DueDate     *models.Date
}

// NewTask holds the required fields for task creation.
type NewTask struct {
	Title       string
	Description string
	Status      models.TaskStatus
	DueDate     models.Date
}

// Store is the ownership-scoped persistence boundary. The userID
// argument on every method is the single filter-injection point: no
// operation can reach a record the caller does not own.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)

	ListProjects(ctx context.Context, userID string) ([]models.Project, error)
	CreateProject(ctx context.Context, userID, title, description string) (models.Project, error)
	UpdateProject(ctx context.Context, userID, projectID string, upd ProjectUpdate) (models.Project, error)
	// DeleteProject cascades: all tasks referencing the project are
	// removed together with the project itself.
	DeleteProject(ctx context.Context, userID, projectID string) error

	ListTasks(ctx context.Context, userID, projectID string) ([]models.Task, error)
	CreateTask(ctx context.Context, userID, projectID string, nt NewTask) (models.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, upd TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}

func validateProject(title, description string) error {
	if title == "" {
		return &ValidationError{Field: "title"}
	}
	if description == "" {
		return &ValidationError{Field: "description"}
	}
	return nil
}

func (nt NewTask) validate() error {
	if nt.Title == "" {
		return &ValidationError{Field: "title"}
	}
	if nt.Description == "" {
		return &ValidationError{Field: "description"}
	}
	if !nt.Status.Valid() {
		return &ValidationError{Field: "status"}
	}
	if nt.DueDate.IsZero() {
		return &ValidationError{Field: "dueDate"}
	}
	return nil
}

func (upd TaskUpdate) validate() error {
	if upd.Status != nil && !upd.Status.Valid() {
		return &ValidationError{Field: "status"}
	}
	return nil
}
