package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dhruv-809/mini-project-manager/models"
)

// Memory is an in-process Store used by tests and by dev mode when no
// database is configured. Listings come back in insertion order.
type Memory struct {
	mu       sync.Mutex
	users    map[string]models.User    // by id
	emails   map[string]string         // email -> user id
	projects map[string]models.Project // by id
	tasks    map[string]models.Task    // by id

	projectOrder []string
	taskOrder    []string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]models.User),
		emails:   make(map[string]string),
		projects: make(map[string]models.Project),
		tasks:    make(map[string]models.Task),
	}
}

func (s *Memory) CreateUser(_ context.Context, email, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[email]; taken {
		return models.User{}, ErrDuplicateEmail
	}
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.ID] = u
	s.emails[email] = u.ID
	return u, nil
}

func (s *Memory) UserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emails[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return s.users[id], nil
}

func (s *Memory) ListProjects(_ context.Context, userID string) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := []models.Project{}
	for _, id := range s.projectOrder {
		if p, ok := s.projects[id]; ok && p.UserID == userID {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (s *Memory) CreateProject(_ context.Context, userID, title, description string) (models.Project, error) {
	if err := validateProject(title, description); err != nil {
		return models.Project{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Project{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		UserID:      userID,
	}
	s.projects[p.ID] = p
	s.projectOrder = append(s.projectOrder, p.ID)
	return p, nil
}

func (s *Memory) UpdateProject(_ context.Context, userID, projectID string, upd ProjectUpdate) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return models.Project{}, ErrNotFound
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	s.projects[projectID] = p
	return p, nil
}

// DeleteProject removes the project's tasks before the project record,
// matching the ordering the SQL implementation gets from its
// transaction: a failure part-way can only strand an empty project.
func (s *Memory) DeleteProject(_ context.Context, userID, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return ErrNotFound
	}
	for id, t := range s.tasks {
		if t.ProjectID == projectID {
			delete(s.tasks, id)
		}
	}
	delete(s.projects, projectID)

	s.taskOrder = pruneOrder(s.taskOrder, func(id string) bool {
		_, ok := s.tasks[id]
		return ok
	})
	s.projectOrder = pruneOrder(s.projectOrder, func(id string) bool {
		_, ok := s.projects[id]
		return ok
	})
	return nil
}

// pruneOrder drops ids whose records are gone so the order slices do
// not grow without bound across deletes.
func pruneOrder(order []string, alive func(string) bool) []string {
	kept := order[:0]
	for _, id := range order {
		if alive(id) {
			kept = append(kept, id)
		}
	}
	return kept
}

func (s *Memory) ListTasks(_ context.Context, userID, projectID string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return nil, ErrNotFound
	}
	tasks := []models.Task{}
	for _, id := range s.taskOrder {
		if t, ok := s.tasks[id]; ok && t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *Memory) CreateTask(_ context.Context, userID, projectID string, nt NewTask) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ownership first: a request against a project the caller cannot
	// see answers NotFound even when the payload is also invalid.
	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return models.Task{}, ErrNotFound
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
	s.tasks[t.ID] = t
	s.taskOrder = append(s.taskOrder, t.ID)
	return t, nil
}

func (s *Memory) UpdateTask(_ context.Context, userID, taskID string, upd TaskUpdate) (models.Task, error) {
	if err := upd.validate(); err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok || t.UserID != userID {
		return models.Task{}, ErrNotFound
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.DueDate != nil {
		t.DueDate = *upd.DueDate
	}
	s.tasks[taskID] = t
	return t, nil
}

func (s *Memory) DeleteTask(_ context.Context, userID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok || t.UserID != userID {
		return ErrNotFound
	}
	delete(s.tasks, taskID)
	s.taskOrder = pruneOrder(s.taskOrder, func(id string) bool {
		_, ok := s.tasks[id]
		return ok
	})
	return nil
}
