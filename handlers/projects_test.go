package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruv-809/mini-project-manager/models"
)

func TestProjectCRUD(t *testing.T) {
	e := newTestEnv(t)
	token, user := e.register("a@b.c")

	p := e.createProject(token, "Launch", "v1")
	assert.Equal(t, "Launch", p.Title)
	assert.Equal(t, user.ID, p.UserID)

	rec := e.do("GET", "/projects", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var projects []models.Project
	e.decode(rec, &projects)
	require.Len(t, projects, 1)
	assert.Equal(t, p.ID, projects[0].ID)

	title := "Launch v2"
	rec = e.do("PUT", projectPath(p.ID), token, models.UpdateProjectRequest{Title: &title})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Project
	e.decode(rec, &updated)
	assert.Equal(t, "Launch v2", updated.Title)
	assert.Equal(t, "v1", updated.Description)

	rec = e.do("DELETE", projectPath(p.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do("GET", "/projects", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	projects = nil
	e.decode(rec, &projects)
	assert.Empty(t, projects)
}

func TestCreateProjectMissingFields(t *testing.T) {
	e := newTestEnv(t)
	token, _ := e.register("a@b.c")

	rec := e.do("POST", "/projects", token, models.CreateProjectRequest{Description: "v1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = e.do("POST", "/projects", token, models.CreateProjectRequest{Title: "Launch"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmptyProjectListIsJSONArray(t *testing.T) {
	e := newTestEnv(t)
	token, _ := e.register("a@b.c")

	rec := e.do("GET", "/projects", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

// Another user's project must produce the same 404 as a project that
// never existed.
func TestForeignProjectLooksAbsent(t *testing.T) {
	e := newTestEnv(t)
	ownerToken, _ := e.register("owner@b.c")
	otherToken, _ := e.register("other@b.c")

	p := e.createProject(ownerToken, "Launch", "v1")

	title := "stolen"
	foreign := e.do("PUT", projectPath(p.ID), otherToken, models.UpdateProjectRequest{Title: &title})
	missing := e.do("PUT", projectPath("no-such-id"), otherToken, models.UpdateProjectRequest{Title: &title})
	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, missing.Body.String(), foreign.Body.String())

	rec := e.do("DELETE", projectPath(p.ID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do("GET", "/projects", otherToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var projects []models.Project
	e.decode(rec, &projects)
	assert.Empty(t, projects)

	// The owner still sees it, untouched.
	rec = e.do("GET", "/projects", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	projects = nil
	e.decode(rec, &projects)
	require.Len(t, projects, 1)
	assert.Equal(t, "Launch", projects[0].Title)
}

func TestDeleteProjectCascades(t *testing.T) {
	e := newTestEnv(t)
	token, _ := e.register("a@b.c")

	p := e.createProject(token, "Launch", "v1")
	e.createTask(token, p.ID, "Write spec")
	e.createTask(token, p.ID, "Ship it")

	rec := e.do("DELETE", projectPath(p.ID), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do("GET", "/tasks/"+p.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Deleting again is a clean 404.
	rec = e.do("DELETE", projectPath(p.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
