package services

import (
	"errors"
	"fmt"
	"strings"

	"mukesh.dev/internal/models"
)

// ErrProjectNotFound is returned for an unknown project id
var ErrProjectNotFound = errors.New("project not found")

// ProjectService handles project-related operations
type ProjectService struct {
	projects []models.Project
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects []models.Project) *ProjectService {
	return &ProjectService{projects: projects}
}

// GetAll returns all projects in display order
func (s *ProjectService) GetAll() []models.Project {
	return append([]models.Project(nil), s.projects...)
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(id string) (*models.Project, error) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			p := s.projects[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}

// ByTechnology returns the projects that list tech, in display order
func (s *ProjectService) ByTechnology(tech string) []models.Project {
	out := []models.Project{}
	for _, p := range s.projects {
		for _, t := range p.Technologies {
			if strings.EqualFold(t, tech) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
