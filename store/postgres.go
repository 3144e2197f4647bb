package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dhruv-809/mini-project-manager/models"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// Postgres implements Store on top of database/sql with lib/pq.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an open database connection.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3) RETURNING created_at`,
		u.ID, u.Email, u.PasswordHash,
	).Scan(&u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *Postgres) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (s *Postgres) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, user_id FROM projects WHERE user_id = $1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.UserID); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (s *Postgres) CreateProject(ctx context.Context, userID, title, description string) (models.Project, error) {
	if err := validateProject(title, description); err != nil {
		return models.Project{}, err
	}
	p := models.Project{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		UserID:      userID,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, title, description, user_id) VALUES ($1, $2, $3, $4)`,
		p.ID, p.Title, p.Description, p.UserID,
	)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

func (s *Postgres) UpdateProject(ctx context.Context, userID, projectID string, upd ProjectUpdate) (models.Project, error) {
	var p models.Project
	err := s.db.QueryRowContext(ctx,
		`UPDATE projects
		    SET title = COALESCE($3, title), description = COALESCE($4, description)
		  WHERE id = $1 AND user_id = $2
		  RETURNING id, title, description, user_id`,
		projectID, userID, upd.Title, upd.Description,
	).Scan(&p.ID, &p.Title, &p.Description, &p.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

// DeleteProject removes the project and every task referencing it in a
// single transaction. Tasks go first so that a failure mid-way can only
// leave a task-less project behind, never orphaned tasks.
func (s *Postgres) DeleteProject(ctx context.Context, userID, projectID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete project: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM projects WHERE id = $1 AND user_id = $2`,
		projectID, userID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check project: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("delete project tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, projectID, userID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete project: %w", err)
	}
	return nil
}

// projectOwned reports whether the project exists and belongs to userID.
func (s *Postgres) projectOwned(ctx context.Context, userID, projectID string) error {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM projects WHERE id = $1 AND user_id = $2`,
		projectID, userID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check project: %w", err)
	}
	return nil
}

func (s *Postgres) ListTasks(ctx context.Context, userID, projectID string) ([]models.Task, error) {
	// The project check runs even though tasks carry their own owner id:
	// listing must not reveal whether a foreign project exists.
	if err := s.projectOwned(ctx, userID, projectID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, status, due_date, project_id, user_id
		   FROM tasks WHERE project_id = $1 ORDER BY created_at ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		var due time.Time
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &due, &t.ProjectID, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.DueDate = models.Date{Time: due}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (s *Postgres) CreateTask(ctx context.Context, userID, projectID string, nt NewTask) (models.Task, error) {
	// Ownership first: a request against a project the caller cannot
	// see answers NotFound even when the payload is also invalid.
	if err := s.projectOwned(ctx, userID, projectID); err != nil {
		return models.Task{}, err
	}
	if err := nt.validate(); err != nil {
		return models.Task{}, err
	}

	t := models.Task{
		ID:          uuid.NewString(),
		Title:       nt.Title,
		Description: nt.Description,
		Status:      nt.Status,
		DueDate:     nt.DueDate,
		ProjectID:   projectID,
		UserID:      userID,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, due_date, project_id, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Title, t.Description, string(t.Status), t.DueDate.Time, t.ProjectID, t.UserID,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (s *Postgres) UpdateTask(ctx context.Context, userID, taskID string, upd TaskUpdate) (models.Task, error) {
	if err := upd.validate(); err != nil {
		return models.Task{}, err
	}

	var status *string
	if upd.Status != nil {
		v := string(*upd.Status)
		status = &v
	}
	var due *time.Time
	if upd.DueDate != nil {
		v := upd.DueDate.Time
		due = &v
	}

	var t models.Task
	var dueOut time.Time
	err := s.db.QueryRowContext(ctx,
		`UPDATE tasks
		    SET title = COALESCE($3, title),
		        description = COALESCE($4, description),
		        status = COALESCE($5, status),
		        due_date = COALESCE($6, due_date)
		  WHERE id = $1 AND user_id = $2
		  RETURNING id, title, description, status, due_date, project_id, user_id`,
		taskID, userID, upd.Title, upd.Description, status, due,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Status, &dueOut, &t.ProjectID, &t.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	t.DueDate = models.Date{Time: dueOut}
	return t, nil
}

func (s *Postgres) DeleteTask(ctx context.Context, userID, taskID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
