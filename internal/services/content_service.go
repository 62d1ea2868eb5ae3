package services

import (
	"mukesh.dev/internal/content"
	"mukesh.dev/internal/models"
)

// ContentService serves the read-only page content
type ContentService struct {
	portfolio *models.Portfolio
}

// NewContentService creates a ContentService over a private copy of p
func NewContentService(p *models.Portfolio) *ContentService {
	return &ContentService{portfolio: content.Clone(p)}
}

// Portfolio returns a copy of all content
func (s *ContentService) Portfolio() *models.Portfolio {
	return content.Clone(s.portfolio)
}

// Profile returns the personal copy
func (s *ContentService) Profile() models.Profile {
	return s.Portfolio().Profile
}

// Nav returns the navigation links in order
func (s *ContentService) Nav() []models.NavItem {
	return s.Portfolio().Nav
}

// Skills returns the skill categories in order
func (s *ContentService) Skills() []models.SkillCategory {
	return s.Portfolio().Skills
}

// Internships returns the internships in order
func (s *ContentService) Internships() []models.Internship {
	return s.Portfolio().Internships
}

// Projects returns a ProjectService over the projects
func (s *ContentService) Projects() *ProjectService {
	return NewProjectService(s.Portfolio().Projects)
}
