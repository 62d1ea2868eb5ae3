package handlers

import (
	"net/http"

	"mukesh.dev/internal/services"
)

// ContentHandler serves the portfolio content as JSON
type ContentHandler struct {
	contentService *services.ContentService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(cs *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: cs}
}

// GetProfile handles GET /api/profile
func (h *ContentHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.contentService.Profile())
}

// ListNav handles GET /api/nav
func (h *ContentHandler) ListNav(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.contentService.Nav())
}

// ListSkills handles GET /api/skills
func (h *ContentHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.contentService.Skills())
}

// ListInternships handles GET /api/internships
func (h *ContentHandler) ListInternships(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.contentService.Internships())
}
