package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/dhruv-809/mini-project-manager/middleware"
	"github.com/dhruv-809/mini-project-manager/models"
	"github.com/dhruv-809/mini-project-manager/store"
)

var errBackendDown = errors.New("dial tcp 10.0.0.7:5432: connection refused")

// downStore fails every operation, standing in for an unreachable
// database.
type downStore struct{}

func (downStore) fail() error { return fmt.Errorf("select: %w", errBackendDown) }

func (d downStore) CreateUser(context.Context, string, string) (models.User, error) {
	return models.User{}, d.fail()
}
func (d downStore) UserByEmail(context.Context, string) (models.User, error) {
	return models.User{}, d.fail()
}
func (d downStore) ListProjects(context.Context, string) ([]models.Project, error) {
	return nil, d.fail()
}
func (d downStore) CreateProject(context.Context, string, string, string) (models.Project, error) {
	return models.Project{}, d.fail()
}
func (d downStore) UpdateProject(context.Context, string, string, store.ProjectUpdate) (models.Project, error) {
	return models.Project{}, d.fail()
}
func (d downStore) DeleteProject(context.Context, string, string) error { return d.fail() }
func (d downStore) ListTasks(context.Context, string, string) ([]models.Task, error) {
	return nil, d.fail()
}
func (d downStore) CreateTask(context.Context, string, string, store.NewTask) (models.Task, error) {
	return models.Task{}, d.fail()
}
func (d downStore) UpdateTask(context.Context, string, string, store.TaskUpdate) (models.Task, error) {
	return models.Task{}, d.fail()
}
func (d downStore) DeleteTask(context.Context, string, string) error { return d.fail() }

// A store outage surfaces as an opaque 500: fixed message, no internal
// detail leaking to the caller.
func TestStoreFailureIsOpaque(t *testing.T) {
	h := NewHandlers(downStore{}, zap.NewNop(), testJWTKey)

	cases := []struct {
		name    string
		handler http.HandlerFunc
		method  string
		path    string
		body    string
	}{
		{"list projects", h.ListProjects, "GET", "/projects", ""},
		{"create project", h.CreateProject, "POST", "/projects", `{"title":"T","description":"D"}`},
		{"delete project", h.DeleteProject, "DELETE", "/projects/p1", ""},
		{"list tasks", h.ListTasks, "GET", "/tasks/p1", ""},
		{"register", h.Register, "POST", "/auth/register", `{"email":"a@b.c","password":"p"}`},
		{"login", h.Login, "POST", "/auth/login", `{"email":"a@b.c","password":"p"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := newBodyRequest(tc.method, tc.path, tc.body)
			req = req.WithContext(middleware.WithUserID(req.Context(), "u1"))
			rec := httptest.NewRecorder()
			tc.handler(rec, req)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"message":"Server error"}`, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func newBodyRequest(method, path, body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(method, path, nil)
	}
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
