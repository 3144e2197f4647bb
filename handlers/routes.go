package handlers

import (
	"github.com/gorilla/mux"

	"github.com/dhruv-809/mini-project-manager/middleware"
)

// Router builds the full route table. Auth routes are public; every
// other route goes through the JWT middleware, so no handler runs
// without an authenticated user id in context.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")

	protected := r.PathPrefix("/").Subrouter()
	protected.Use(middleware.Auth(h.jwtKey, h.logger))

	protected.HandleFunc("/projects", h.ListProjects).Methods("GET")
	protected.HandleFunc("/projects", h.CreateProject).Methods("POST")
	protected.HandleFunc("/projects/{id}", h.UpdateProject).Methods("PUT")
	protected.HandleFunc("/projects/{id}", h.DeleteProject).Methods("DELETE")

	protected.HandleFunc("/tasks/{projectId}", h.ListTasks).Methods("GET")
	protected.HandleFunc("/tasks", h.CreateTask).Methods("POST")
	protected.HandleFunc("/tasks/{id}", h.UpdateTask).Methods("PUT")
	protected.HandleFunc("/tasks/{id}", h.DeleteTask).Methods("DELETE")

	return r
}
