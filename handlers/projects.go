package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dhruv-809/mini-project-manager/middleware"
	"github.com/dhruv-809/mini-project-manager/models"
	"github.com/dhruv-809/mini-project-manager/store"
)

// userID pulls the authenticated principal out of the request context.
// The auth middleware guarantees it is set on every protected route.
func (h *Handlers) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Error("user id missing from request context")
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return id, ok
}

// ListProjects returns every project owned by the caller.
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	projects, err := h.store.ListProjects(r.Context(), uid)
	if err != nil {
		h.respondStoreError(w, err, "Project not found")
		return
	}
	respondWithJSON(w, http.StatusOK, projects)
}

// CreateProject creates a project owned by the caller.
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	project, err := h.store.CreateProject(r.Context(), uid, req.Title, req.Description)
	if err != nil {
		h.respondStoreError(w, err, "Project not found")
		return
	}

	h.logger.Info("project created", zap.String("projectId", project.ID), zap.String("userId", uid))
	respondWithJSON(w, http.StatusCreated, project)
}

// UpdateProject applies a partial update to a project the caller owns.
func (h *Handlers) UpdateProject(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}
	projectID := mux.Vars(r)["id"]

	var req models.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	project, err := h.store.UpdateProject(r.Context(), uid, projectID, store.ProjectUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.respondStoreError(w, err, "Project not found")
		return
	}
	respondWithJSON(w, http.StatusOK, project)
}

// DeleteProject removes a project and all of its tasks.
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}
	projectID := mux.Vars(r)["id"]

	if err := h.store.DeleteProject(r.Context(), uid, projectID); err != nil {
		h.respondStoreError(w, err, "Project not found")
		return
	}

	h.logger.Info("project deleted", zap.String("projectId", projectID), zap.String("userId", uid))
	w.WriteHeader(http.StatusNoContent)
}
