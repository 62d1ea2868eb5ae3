package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mukesh.dev/internal/services"
)

// ProjectHandler serves the featured project cards as JSON
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: ps}
}

// ListProjects handles GET /api/projects. ?tech= narrows the cards to those
// built with that technology, matched case-insensitively; order is kept.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	if tech := r.URL.Query().Get("tech"); tech != "" {
		respondJSON(w, http.StatusOK, h.projectService.ByTechnology(tech))
		return
	}
	respondJSON(w, http.StatusOK, h.projectService.GetAll())
}

// GetProject handles GET /api/projects/{id}. Unknown ids map to 404 through
// services.ErrProjectNotFound.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	project, err := h.projectService.GetByID(id)
	if err != nil {
		status := httpStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("looking up project", "id", id, "error", err)
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, project)
}
