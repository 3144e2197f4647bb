package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User represents a registered account.
type User struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Omit from JSON output for security
	CreatedAt    time.Time `json:"createdAt"`
}

// Project is a container for tasks, owned by exactly one user.
// The owner is fixed at creation and never changes.
type Project struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
}

// TaskStatus enumerates the allowed task states.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "ToDo"
	StatusInProgress TaskStatus = "In-Progress"
	StatusDone       TaskStatus = "Done"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task belongs to a project. UserID is a denormalized copy of the
// project owner's id, set at creation.
type Task struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     Date       `json:"dueDate"`
	ProjectID   string     `json:"projectId"`
	UserID      string     `json:"userId"`
}

// Claims defines the information stored in the JWT.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component. On the wire it is
// "YYYY-MM-DD"; full RFC 3339 timestamps are accepted on input and
// truncated to their date.
type Date struct {
	time.Time
}

// ParseDate parses "YYYY-MM-DD" into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date %s: expected a JSON string", b)
	}
	s := string(b[1 : len(b)-1])
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	d.Time = t.UTC().Truncate(24 * time.Hour)
	return nil
}

// CredentialsRequest is the body of register and login requests.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateProjectRequest is the body of POST /projects.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateProjectRequest is the body of PUT /projects/{id}. Nil fields
// are left untouched.
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     Date       `json:"dueDate"`
	ProjectID   string     `json:"projectId"`
}

// UpdateTaskRequest is the body of PUT /tasks/{id}. Nil fields are
// left untouched.
type UpdateTaskRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Status      *TaskStatus `json:"status"`
	DueDate     *Date       `json:"dueDate"`
}
