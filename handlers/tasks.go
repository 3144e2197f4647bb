package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dhruv-809/mini-project-manager/models"
	"github.com/dhruv-809/mini-project-manager/store"
)

// ListTasks returns all tasks under a project the caller owns.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}
	projectID := mux.Vars(r)["projectId"]

	tasks, err := h.store.ListTasks(r.Context(), uid, projectID)
	if err != nil {
		h.respondStoreError(w, err, "Project not found")
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

// CreateTask creates a task under a project the caller owns.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	task, err := h.store.CreateTask(r.Context(), uid, req.ProjectID, store.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.respondStoreError(w, err, "Project not found")
		return
	}

	h.logger.Info("task created", zap.String("taskId", task.ID), zap.String("projectId", task.ProjectID))
	respondWithJSON(w, http.StatusCreated, task)
}

// UpdateTask applies a partial update to a task the caller owns.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}
	taskID := mux.Vars(r)["id"]

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	task, err := h.store.UpdateTask(r.Context(), uid, taskID, store.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.respondStoreError(w, err, "Task not found")
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

// DeleteTask removes a task the caller owns.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}
	taskID := mux.Vars(r)["id"]

	if err := h.store.DeleteTask(r.Context(), uid, taskID); err != nil {
		h.respondStoreError(w, err, "Task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
